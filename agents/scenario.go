package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ernurtorekul/cinema/llm"
	"github.com/ernurtorekul/cinema/models"
	"github.com/ernurtorekul/cinema/store"
)

// sceneBreakdown is the structured output requested from the scenario LLM call.
type sceneBreakdown struct {
	Scenes        []rawScene `json:"scenes" jsonschema_description:"Ordered list of scenes the scenario breaks down into"`
	TotalDuration float64    `json:"total_duration" jsonschema_description:"Total duration of all scenes in seconds"`
}

type rawScene struct {
	ID           int      `json:"id" jsonschema_description:"1-based scene number in play order"`
	Description  string   `json:"description" jsonschema_description:"Cinematic description of what happens"`
	Actions      []string `json:"actions" jsonschema_description:"3-4 specific actionable events"`
	Duration     float64  `json:"duration" jsonschema_description:"Scene length in seconds"`
	Mood         string   `json:"mood" jsonschema_description:"Primary emotional tone"`
	Camera       string   `json:"camera,omitempty" jsonschema_description:"Suggested camera approach"`
	Lighting     string   `json:"lighting,omitempty" jsonschema_description:"Lighting style"`
	Enhancements string   `json:"enhancements,omitempty" jsonschema_description:"Color and visual effects notes"`
}

var sceneBreakdownSchema = llm.GenerateSchema[sceneBreakdown]()

var pacingGuidance = map[string]string{
	"fast":  "Use quick cuts, dynamic camera movements, high energy",
	"slow":  "Use longer takes, measured pacing, contemplative mood",
	"mixed": "Vary pacing - build tension then release",
}

// ScenarioAgent decomposes a free-text scenario into an ordered scene list.
// The numbering it assigns is the single source of truth for every later
// stage.
type ScenarioAgent struct {
	LLM    llm.Generator
	Store  store.Store
	APIKey string
}

func (a *ScenarioAgent) Process(ctx context.Context, projectID, scenario string, constraints Constraints) (*ScenarioAnalysis, error) {
	prompt := a.buildPrompt(scenario, constraints)

	response := a.LLM.Generate(ctx, llm.Request{
		Prompt:     prompt,
		Provider:   llm.ProviderOpenAI,
		APIKey:     a.APIKey,
		Schema:     sceneBreakdownSchema,
		SchemaName: "scene_breakdown",
	})

	breakdown, ok := a.parse(response)
	if !ok {
		log.Printf("Scenario analysis for project %s fell back to single-scene breakdown", projectID)
		breakdown = fallbackBreakdown(scenario, constraints)
	}

	scenes := normalizeScenes(projectID, breakdown.Scenes)
	if err := a.Store.ReplaceScenes(ctx, projectID, scenes); err != nil {
		return nil, fmt.Errorf("persist scenes: %w", err)
	}

	total := breakdown.TotalDuration
	if total <= 0 {
		total = float64(constraints.TotalDuration)
	}

	return &ScenarioAnalysis{
		Scenes:        scenes,
		TotalDuration: total,
		SceneCount:    len(scenes),
	}, nil
}

func (a *ScenarioAgent) buildPrompt(scenario string, constraints Constraints) string {
	sceneGuidance := "Break down into an appropriate number of scenes based on the scenario complexity (typically 2-5 scenes)"
	sceneCount := "AI decide based on scenario complexity"
	if constraints.SceneCountTarget > 0 {
		sceneGuidance = fmt.Sprintf("Break down into exactly %d scenes", constraints.SceneCountTarget)
		sceneCount = fmt.Sprintf("%d", constraints.SceneCountTarget)
	}

	pacing, ok := pacingGuidance[constraints.Pacing]
	if !ok {
		pacing = "Mixed pacing with variation"
	}

	return fmt.Sprintf(`You are a professional film director and cinematographer. Analyze this scenario for a %s.

SCENARIO: %s

%s

CONSTRAINTS:
- Total duration: %d seconds
- Scene count: %s
- Pacing approach: %s

%s. For each scene provide:

1. DESCRIPTION: Vivid, cinematic description of what happens
2. ACTIONS: 3-4 specific, actionable events (use strong verbs)
3. DURATION: Appropriate length in seconds (considering total duration)
4. MOOD: Primary emotional tone (e.g., "tense, mysterious with underlying threat")
5. CAMERA: Suggested camera approach (e.g., "wide establishing shot, slow dolly in")
6. LIGHTING: Lighting style (e.g., "low key blue moonlight for mystery")
7. ENHANCEMENTS: Visual effects or color notes

Think like a director: Each scene should advance the story, create emotional impact, and use cinematic language.

Return ONLY valid JSON:
{
  "scenes": [
    {
      "id": 1,
      "description": "Cinematic description with clear visual and action",
      "actions": ["specific action 1", "specific action 2", "specific action 3"],
      "duration": 10,
      "mood": "primary emotion, secondary feeling",
      "camera": "camera movement and positioning",
      "lighting": "lighting setup and mood",
      "enhancements": "color, effects, visual notes"
    }
  ],
  "total_duration": 30
}`,
		constraints.Type, scenario, llm.CinematographyReference,
		constraints.TotalDuration, sceneCount, pacing, sceneGuidance)
}

func (a *ScenarioAgent) parse(response string) (*sceneBreakdown, bool) {
	if llm.IsFallback(response) {
		return nil, false
	}
	raw, ok := llm.ExtractJSON(response)
	if !ok {
		return nil, false
	}
	var breakdown sceneBreakdown
	if err := json.Unmarshal(raw, &breakdown); err != nil {
		log.Printf("Failed to parse scenario response: %v", err)
		return nil, false
	}
	if len(breakdown.Scenes) == 0 {
		return nil, false
	}
	return &breakdown, true
}

// fallbackBreakdown builds the single-scene stand-in used on total parse
// failure: first 100 characters of the scenario, 10 seconds, dramatic mood.
func fallbackBreakdown(scenario string, constraints Constraints) *sceneBreakdown {
	total := float64(constraints.TotalDuration)
	if total <= 0 {
		total = 15
	}
	return &sceneBreakdown{
		Scenes: []rawScene{
			{
				ID:          1,
				Description: truncate(scenario, 100) + "...",
				Actions:     []string{"main action"},
				Duration:    10,
				Mood:        "dramatic",
			},
		},
		TotalDuration: total,
	}
}

// normalizeScenes assigns fresh identifiers and renumbers scenes
// sequentially from 1 in list order, regardless of the ids the model
// returned.
func normalizeScenes(projectID string, raw []rawScene) []models.Scene {
	scenes := make([]models.Scene, 0, len(raw))
	for i, s := range raw {
		duration := s.Duration
		if duration <= 0 {
			duration = 10
		}
		scenes = append(scenes, models.Scene{
			ID:           uuid.NewString(),
			ProjectID:    projectID,
			SceneNumber:  i + 1,
			Description:  s.Description,
			Duration:     duration,
			Mood:         s.Mood,
			Actions:      s.Actions,
			Camera:       s.Camera,
			Lighting:     s.Lighting,
			Enhancements: s.Enhancements,
		})
	}
	return scenes
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
