package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/ernurtorekul/cinema/llm"
	"github.com/ernurtorekul/cinema/models"
)

// CharacterAgent assigns characters to scenes, either by LLM casting
// (ai_decides) or by a deterministic round-robin (manual).
type CharacterAgent struct {
	LLM    llm.Generator
	APIKey string
}

func (a *CharacterAgent) Process(ctx context.Context, scenes []models.Scene, config *CharacterConfig) (*CharacterAnalysis, error) {
	if config == nil {
		return emptyCharacterAnalysis(), nil
	}

	if config.Mode == "manual" {
		if len(config.Characters) == 0 {
			return emptyCharacterAnalysis(), nil
		}
		return manualAssign(scenes, config.Characters), nil
	}

	return a.aiAssign(ctx, scenes, config)
}

func (a *CharacterAgent) aiAssign(ctx context.Context, scenes []models.Scene, config *CharacterConfig) (*CharacterAnalysis, error) {
	characters := mergeCharacterList(config.MustInclude, config.Pool)
	if len(characters) == 0 {
		return emptyCharacterAnalysis(), nil
	}

	prompt := buildCastingPrompt(scenes, characters)
	response := a.LLM.Generate(ctx, llm.Request{
		Prompt:   prompt,
		Provider: llm.ProviderGemini,
		APIKey:   a.APIKey,
	})

	if llm.IsFallback(response) {
		log.Printf("Character casting fell back to first-character assignment")
		return fallbackAssignment(scenes, characters), nil
	}

	raw, ok := llm.ExtractJSON(response)
	if ok {
		var analysis CharacterAnalysis
		if err := json.Unmarshal(raw, &analysis); err == nil {
			if analysis.Assignments == nil {
				analysis.Assignments = []SceneAssignment{}
			}
			if analysis.ConsistencyMap == nil {
				analysis.ConsistencyMap = map[string]CharacterRecord{}
			}
			return &analysis, nil
		} else {
			log.Printf("Failed to parse character response: %v", err)
		}
	}

	return emptyCharacterAnalysis(), nil
}

// mergeCharacterList places must-include characters first and appends the
// pool, dropping pool entries whose name duplicates a must-include entry.
func mergeCharacterList(mustInclude, pool []CharacterInput) []CharacterInput {
	merged := make([]CharacterInput, 0, len(mustInclude)+len(pool))
	for _, c := range mustInclude {
		c.Priority = "must_include"
		merged = append(merged, c)
	}
	for _, c := range pool {
		duplicate := false
		for _, m := range mustInclude {
			if m.Name == c.Name {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		c.Priority = "pool"
		merged = append(merged, c)
	}
	return merged
}

func buildCastingPrompt(scenes []models.Scene, characters []CharacterInput) string {
	var charDescriptions []string
	var mustIncludeNames []string
	for _, c := range characters {
		desc := fmt.Sprintf("- %s: Traits [%s]", c.Name, strings.Join(c.Traits, ", "))
		if len(c.TypicalRoles) > 0 {
			desc += fmt.Sprintf(", Typical Roles [%s]", strings.Join(c.TypicalRoles, ", "))
		}
		if c.Style != "" {
			desc += fmt.Sprintf(", Style: %s", c.Style)
		}
		if c.Priority == "must_include" {
			desc += " (MUST INCLUDE)"
			mustIncludeNames = append(mustIncludeNames, c.Name)
		}
		charDescriptions = append(charDescriptions, desc)
	}

	var sceneDescriptions []string
	for _, s := range scenes {
		desc := fmt.Sprintf("Scene %d: %s", s.SceneNumber, s.Description)
		if s.Mood != "" {
			desc += fmt.Sprintf(" (Mood: %s)", s.Mood)
		}
		if len(s.Actions) > 0 {
			actions := s.Actions
			if len(actions) > 3 {
				actions = actions[:3]
			}
			desc += fmt.Sprintf(" - Actions: %s", strings.Join(actions, ", "))
		}
		sceneDescriptions = append(sceneDescriptions, desc)
	}

	mustIncludeStr := "None - AI decides"
	if len(mustIncludeNames) > 0 {
		mustIncludeStr = strings.Join(mustIncludeNames, ", ")
	}

	return fmt.Sprintf(`You are a casting director AI. Assign the BEST characters to each scene based on what makes narrative sense.

%s

AVAILABLE CELEBRITIES/CHARACTERS:
%s

CHARACTERS THAT MUST BE INCLUDED: %s

SCENES TO CAST:
%s

INSTRUCTIONS:
1. Analyze each scene's mood, action, and requirements
2. Match characters whose TRAITS and TYPICAL ROLES fit each scene
3. Prioritize "MUST INCLUDE" characters - give them important roles
4. For intense/action scenes: choose characters with traits like "strong", "action-hero", "fierce", "intense"
5. For mysterious/stealth scenes: choose characters with traits like "mysterious", "calculating", "cool"
6. For emotional scenes: choose characters with traits like "emotional", "expressive"
7. A scene can have 0-2 characters (don't force characters if they don't fit)
8. Keep consistent casting - the same character should look similar across scenes

For each character assigned, provide:
- Their name
- Expression: Based on scene mood and character traits
- Pose: Appropriate for the action (e.g., "crouching", "standing tall", "drawing weapon")
- Action: What they're specifically doing in this scene
- Costume notes: Based on their style + scene requirements

Return ONLY valid JSON in this format:
{
  "assignments": [
    {
      "scene_id": 1,
      "characters": [
        {
          "name": "CharacterName",
          "expression": "focused, wary",
          "pose": "crouching behind cover",
          "action": "scanning area for threats",
          "costume_notes": "tactical gear matching their style, dust on clothes"
        }
      ]
    }
  ],
  "consistency_map": {
    "CharacterName": {
      "base_traits": ["trait1", "trait2"],
      "costume": "base costume description",
      "appearances": [1, 3]
    }
  }
}`,
		llm.ActingReference, strings.Join(charDescriptions, "\n"), mustIncludeStr, strings.Join(sceneDescriptions, "\n"))
}

// fallbackAssignment places only the first character on only the first scene
// with fixed generic values. Used when the provider itself failed.
func fallbackAssignment(scenes []models.Scene, characters []CharacterInput) *CharacterAnalysis {
	if len(scenes) == 0 || len(characters) == 0 {
		return emptyCharacterAnalysis()
	}
	first := characters[0]
	sceneID := scenes[0].SceneNumber
	return &CharacterAnalysis{
		Assignments: []SceneAssignment{
			{
				SceneID: sceneID,
				Characters: []SceneCharacter{
					{
						Name:         first.Name,
						Expression:   "determined",
						Pose:         "standing",
						Action:       "observing",
						CostumeNotes: costumeOrDefault(first.Style),
					},
				},
			},
		},
		ConsistencyMap: map[string]CharacterRecord{
			first.Name: {
				BaseTraits:  first.Traits,
				Costume:     first.Style,
				Appearances: []int{sceneID},
			},
		},
	}
}

func costumeOrDefault(style string) string {
	if style == "" {
		return "standard attire"
	}
	return style
}

// manualAssign distributes characters across scenes without an LLM call:
// character j appears in scene i iff (i+j) mod len(characters) is below
// min(2, len(characters)). A pure function of the indices, so re-runs with
// the same inputs produce identical assignments.
func manualAssign(scenes []models.Scene, characters []CharacterInput) *CharacterAnalysis {
	analysis := emptyCharacterAnalysis()
	for _, c := range characters {
		analysis.ConsistencyMap[c.Name] = CharacterRecord{
			BaseTraits:  c.Traits,
			Costume:     c.Style,
			Appearances: []int{},
		}
	}

	perScene := 2
	if len(characters) < perScene {
		perScene = len(characters)
	}

	for i, scene := range scenes {
		var cast []SceneCharacter
		for j, c := range characters {
			if (i+j)%len(characters) >= perScene {
				continue
			}
			cast = append(cast, SceneCharacter{
				Name:         c.Name,
				Expression:   "focused",
				Pose:         "standing",
				Action:       "observing",
				CostumeNotes: c.Style,
			})
			record := analysis.ConsistencyMap[c.Name]
			record.Appearances = append(record.Appearances, scene.SceneNumber)
			analysis.ConsistencyMap[c.Name] = record
		}
		if len(cast) > 0 {
			analysis.Assignments = append(analysis.Assignments, SceneAssignment{
				SceneID:    scene.SceneNumber,
				Characters: cast,
			})
		}
	}
	return analysis
}
