package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ernurtorekul/cinema/llm"
	"github.com/ernurtorekul/cinema/models"
)

// SourceAgent maps production rules from uploaded source material onto the
// scene list as time-stamped breakdowns.
type SourceAgent struct {
	LLM    llm.Generator
	APIKey string
}

func (a *SourceAgent) Process(ctx context.Context, scenes []models.Scene, sourceRules string) (*SourceAnalysis, error) {
	scenesJSON, err := json.MarshalIndent(scenes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scenes: %w", err)
	}

	prompt := fmt.Sprintf(`Given these scenes:
%s

And these production/cinematography rules:
%s

Provide second-by-second breakdown for each scene:
- Camera angle/movement
- Transition in/out
- Lighting notes
- Visual style cues

Return ONLY valid JSON in this format:
{
  "scene_instructions": [
    {
      "scene_id": 1,
      "breakdown": [
        {
          "time": "0-2s",
          "camera": "Wide shot, slow push-in",
          "lighting": "Low key, blue moonlight",
          "action": "Alex emerges from shadows"
        }
      ],
      "transition_in": "fade from black",
      "transition_out": "cut to scene 2"
    }
  ]
}`, scenesJSON, sourceRules)

	response := a.LLM.Generate(ctx, llm.Request{
		Prompt:   prompt,
		Provider: llm.ProviderGemini,
		APIKey:   a.APIKey,
	})

	if !llm.IsFallback(response) {
		if raw, ok := llm.ExtractJSON(response); ok {
			var analysis SourceAnalysis
			if err := json.Unmarshal(raw, &analysis); err != nil {
				log.Printf("Failed to parse source response: %v", err)
			} else {
				if analysis.SceneInstructions == nil {
					analysis.SceneInstructions = []SceneInstruction{}
				}
				return &analysis, nil
			}
		}
	}

	return &SourceAnalysis{SceneInstructions: []SceneInstruction{}}, nil
}
