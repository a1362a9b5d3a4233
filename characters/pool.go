package characters

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Character is one entry in the casting pool.
type Character struct {
	Name         string   `json:"name"`
	Traits       []string `json:"traits"`
	Style        string   `json:"style"`
	TypicalRoles []string `json:"typical_roles"`
	AgeRange     string   `json:"age_range"`
}

// database holds traits and typical roles for known names, keyed by
// normalized lookup name.
var database = map[string]Character{
	"tom holland": {
		Name:         "Tom Holland",
		Traits:       []string{"youthful", "energetic", "expressive", "charismatic", "relatable"},
		Style:        "young, athletic build, boyish charm, expressive face",
		TypicalRoles: []string{"young hero", "protagonist", "action hero", "friendly character"},
		AgeRange:     "20-30",
	},
	"murphy": {
		Name:         "Murphy (Cillian Murphy)",
		Traits:       []string{"intense", "expressive eyes", "stoic", "intelligent", "determined"},
		Style:        "striking features, thin build, intense blue eyes, versatile looks",
		TypicalRoles: []string{"brooding hero", "scientist", "complex character", "protagonist"},
		AgeRange:     "35-50",
	},
	"ross": {
		Name:         "Ross (David Schwimmer)",
		Traits:       []string{"nerdy", "awkward", "intelligent", "comedic", "passionate"},
		Style:        "tall, curly hair, nerdy but attractive, expressive",
		TypicalRoles: []string{"comedy relief", "nerdy character", "romantic lead", "intellectual"},
		AgeRange:     "35-55",
	},
	"phoebe": {
		Name:         "Phoebe (Lisa Kudrow)",
		Traits:       []string{"quirky", "eccentric", "free-spirited", "funny", "musical"},
		Style:        "blonde hair, unique looks, expressive, bohemian style",
		TypicalRoles: []string{"eccentric character", "comic relief", "free spirit", "mystical figure"},
		AgeRange:     "35-55",
	},
	"joey": {
		Name:         "Joey (Matt LeBlanc)",
		Traits:       []string{"charming", "simple-minded", "lovable", "food-loving", "ladies man"},
		Style:        "handsome in a rugged way, muscular build, charming smile",
		TypicalRoles: []string{"lovable fool", "romantic lead", "comic character", "action hero"},
		AgeRange:     "35-55",
	},
	"henry cavill": {
		Name:         "Henry Cavill",
		Traits:       []string{"strong", "charismatic", "action-hero", "intense", "commanding"},
		Style:        "rugged handsome, athletic build, short dark hair, strong jawline",
		TypicalRoles: []string{"warrior", "soldier", "leader", "hero", "action star"},
		AgeRange:     "30-45",
	},
	"scarlett johansson": {
		Name:         "Scarlett Johansson",
		Traits:       []string{"fierce", "intelligent", "mysterious", "confident", "strong presence"},
		Style:        "striking features, versatile looks, fit physique",
		TypicalRoles: []string{"action hero", "spy", "warrior", "enigmatic figure"},
		AgeRange:     "25-40",
	},
	"zendaya": {
		Name:         "Zendaya",
		Traits:       []string{"youthful", "expressive", "dynamic", "modern", "confident"},
		Style:        "versatile looks, slender, striking eyes, fashionable",
		TypicalRoles: []string{"young hero", "rebel", "modern warrior", "protagonist"},
		AgeRange:     "18-30",
	},
	"keanu reeves": {
		Name:         "Keanu Reeves",
		Traits:       []string{"stoic", "skilled fighter", "determined", "relatable", "cool"},
		Style:        "aged but fit, calm demeanor, martial arts physique",
		TypicalRoles: []string{"lone warrior", "assassin", "chosen one", "reluctant hero"},
		AgeRange:     "40-60",
	},
	"anya taylor-joy": {
		Name:         "Anya Taylor-Joy",
		Traits:       []string{"ethereal", "intense", "calculating", "mysterious", "striking"},
		Style:        "striking features, blonde hair, intense gaze, slender",
		TypicalRoles: []string{"enigmatic figure", "calculating villain", "mystical character"},
		AgeRange:     "20-30",
	},
	"jason momoa": {
		Name:         "Jason Momoa",
		Traits:       []string{"massive", "intimidating", "wild", "powerful", "gentle giant"},
		Style:        "very tall, muscular, long hair, beard, imposing presence",
		TypicalRoles: []string{"barbarian", "guardian", "warrior", "king"},
		AgeRange:     "30-50",
	},
	"margot robbie": {
		Name:         "Margot Robbie",
		Traits:       []string{"charismatic", "playful", "intense", "transformative", "versatile"},
		Style:        "versatile beauty, expressive, physically fit",
		TypicalRoles: []string{"villain", "warrior", "anti-hero", "complex character"},
		AgeRange:     "25-40",
	},
}

var (
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	titleCaser      = cases.Title(language.English)
)

const poolCacheKey = "character_pool"

// Pool loads and caches the character list parsed from a flat
// comma-separated names file.
type Pool struct {
	FilePath string
	cache    *gocache.Cache
}

func NewPool(filePath string) *Pool {
	return &Pool{
		FilePath: filePath,
		cache:    gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Load parses the configured names file. Known names pick up their full
// database entry; unknown names get a generic synthesized one. The parsed
// pool is cached for a few minutes since the file rarely changes.
func (p *Pool) Load() ([]Character, error) {
	if cached, found := p.cache.Get(poolCacheKey); found {
		return cached.([]Character), nil
	}

	content, err := os.ReadFile(p.FilePath)
	if err != nil {
		return nil, fmt.Errorf("read characters file: %w", err)
	}

	pool := ParseNames(string(content))
	p.cache.Set(poolCacheKey, pool, gocache.DefaultExpiration)
	return pool, nil
}

// ParseNames turns a comma-separated name list into characters. Parenthetical
// annotations like "(from interstellar)" are stripped before lookup.
func ParseNames(content string) []Character {
	var pool []Character
	for _, rawName := range strings.Split(strings.TrimSpace(content), ",") {
		rawName = strings.TrimSpace(rawName)
		if rawName == "" {
			continue
		}

		lookupKey := strings.TrimSpace(parentheticalRe.ReplaceAllString(strings.ToLower(rawName), " "))
		if known, ok := database[lookupKey]; ok {
			pool = append(pool, known)
			continue
		}

		pool = append(pool, Character{
			Name:         titleCaser.String(rawName),
			Traits:       []string{"actor", "performer"},
			Style:        "standard appearance",
			TypicalRoles: []string{"character", "supporting role"},
			AgeRange:     "unknown",
		})
	}
	return pool
}

// DefaultPool returns the built-in character table, for when no names file
// is available.
func DefaultPool() []Character {
	pool := make([]Character, 0, len(database))
	for _, c := range database {
		pool = append(pool, c)
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].Name < pool[j].Name })
	return pool
}
