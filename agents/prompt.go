package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"

	"github.com/ernurtorekul/cinema/llm"
	"github.com/ernurtorekul/cinema/models"
)

// PromptAgent turns scenes into production-ready image and video generation
// prompts. One camera/lens/aperture combination is drawn per invocation and
// threaded through every prompt as a continuity hint.
type PromptAgent struct {
	LLM    llm.Generator
	APIKey string
	Rand   *rand.Rand
}

// promptScene is the trimmed view of a scene sent to the model.
type promptScene struct {
	ID          int      `json:"id"`
	Description string   `json:"description"`
	Mood        string   `json:"mood"`
	Actions     []string `json:"actions"`
	Camera      string   `json:"camera"`
	Lighting    string   `json:"lighting"`
}

// DefaultStyleGuide is used when the caller supplies none.
func DefaultStyleGuide() *StyleGuide {
	guide := &StyleGuide{
		VisualStyle:  "cinematic, dramatic lighting",
		ColorGrading: "teal and orange, high contrast",
	}
	guide.BasePrompts.Quality = "8K, ultra detailed, photorealistic"
	guide.BasePrompts.Lighting = "dramatic lighting, volumetric fog"
	return guide
}

func (a *PromptAgent) Process(ctx context.Context, scenes []models.Scene, styleGuide *StyleGuide) (*PromptGeneration, error) {
	if styleGuide == nil {
		styleGuide = DefaultStyleGuide()
	}
	params := llm.RandomCameraParams(a.Rand)

	scenesData := make([]promptScene, 0, len(scenes))
	for _, s := range scenes {
		scenesData = append(scenesData, promptScene{
			ID:          s.SceneNumber,
			Description: s.Description,
			Mood:        s.Mood,
			Actions:     s.Actions,
			Camera:      s.Camera,
			Lighting:    s.Lighting,
		})
	}
	scenesJSON, err := json.MarshalIndent(scenesData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scenes: %w", err)
	}

	prompt := buildPromptGenerationPrompt(string(scenesJSON), params, styleGuide)
	response := a.LLM.Generate(ctx, llm.Request{
		Prompt:   prompt,
		Provider: llm.ProviderClaude,
		APIKey:   a.APIKey,
	})

	if !llm.IsFallback(response) {
		if raw, ok := llm.ExtractJSON(response); ok {
			var generation PromptGeneration
			if err := json.Unmarshal(raw, &generation); err != nil {
				log.Printf("Failed to parse prompts response: %v", err)
			} else if len(generation.ScenePrompts) > 0 {
				return &generation, nil
			}
		}
	}

	log.Printf("Prompt generation fell back to single-scene prompts")
	return fallbackPrompts(scenes, params), nil
}

func buildPromptGenerationPrompt(scenesJSON string, params llm.CameraParams, guide *StyleGuide) string {
	return fmt.Sprintf(`You are a professional cinematographer and visual effects artist. Generate production-ready AI image and video prompts.

%s

SCENES TO GENERATE PROMPTS FOR:
%s

STYLE GUIDE:
- Visual style: %s
- Color grading: %s
- Base quality keywords: %s
- Base lighting keywords: %s

For EACH scene, generate DETAILED prompts:

IMAGE PROMPTS must include:
1. Technical specs: 8K resolution, photorealistic, cinematic color grading
2. Camera: %s with %s at %s %s
3. Subject: Detailed description of who/what is in frame
4. Action: What is happening (use active verbs)
5. Lighting: Specific lighting setup (motivated practicals, three-point, etc.)
6. Color: Color grading approach (e.g., "teal shadows with warm skin tones", "monochromatic blue for isolation")
7. Atmosphere: Environmental elements (fog, dust, particles)
8. Composition: Frame arrangement (rule of thirds, center frame for power, etc.)

VIDEO PROMPTS must include:
1. Camera movement: Specific motion (dolly in/out, tracking, crane, pan, tilt, handheld)
2. Speed: Pace of movement (slow push for intimacy, fast whip for action)
3. Subject action: What happens during the shot
4. Duration: Length in seconds
5. Technical: Camera, lens, aperture for continuity

Return ONLY valid JSON:
{
  "scene_prompts": [
    {
      "scene_id": 1,
      "image_prompts": [
        {
          "time": "0-5s",
          "prompt": "8K photorealistic cinematic shot, %s with %s at %s %s. [DETAILED SCENE DESCRIPTION]. Three-point lighting with warm key and cool fill. Teal and orange color grading with high contrast. Atmospheric volumetric fog. Rule of thirds composition."
        }
      ],
      "video_prompts": [
        {
          "time": "0-5s",
          "prompt": "Slow dolly in toward subject, increasing tension and intimacy. Camera pushes in from wide shot to medium close-up over 5 seconds.",
          "camera": "%s",
          "lens": "%s",
          "aperture": "%s"
        }
      ]
    }
  ]
}`,
		llm.CinematographyReference, scenesJSON,
		guide.VisualStyle, guide.ColorGrading,
		guide.BasePrompts.Quality, guide.BasePrompts.Lighting,
		params.Camera, params.Lens, params.FocalLength, params.Aperture,
		params.Camera, params.Lens, params.FocalLength, params.Aperture,
		params.Camera, params.Lens, params.Aperture)
}

// fallbackPrompts builds one scene entry from the first scene's description
// and the chosen camera parameters.
func fallbackPrompts(scenes []models.Scene, params llm.CameraParams) *PromptGeneration {
	description := "Scene"
	sceneID := 1
	if len(scenes) > 0 {
		if scenes[0].Description != "" {
			description = scenes[0].Description
		}
		sceneID = scenes[0].SceneNumber
	}
	return &PromptGeneration{
		ScenePrompts: []ScenePrompts{
			{
				SceneID: sceneID,
				ImagePrompts: []ImagePrompt{
					{
						Time: "0-5s",
						Prompt: fmt.Sprintf("8K cinematic shot, %s, %s with %s %s %s, teal and orange grading, dramatic lighting",
							description, params.Camera, params.Lens, params.FocalLength, params.Aperture),
						NegativePrompt: "blurry, low quality, cartoon",
					},
				},
				VideoPrompts: []VideoPrompt{
					{
						Time:     "0-5s",
						Prompt:   "Slow push-in towards subject",
						Camera:   params.Camera,
						Lens:     params.Lens,
						Aperture: params.Aperture,
					},
				},
			},
		},
	}
}
