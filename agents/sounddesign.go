package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ernurtorekul/cinema/llm"
	"github.com/ernurtorekul/cinema/models"
)

// SoundDesignAgent produces per-scene music, effect, ambience and cue
// recommendations plus a project-level audio arc.
type SoundDesignAgent struct {
	LLM    llm.Generator
	APIKey string
}

type soundScene struct {
	ID          int      `json:"id"`
	Description string   `json:"description"`
	Mood        string   `json:"mood"`
	Duration    float64  `json:"duration"`
	Actions     []string `json:"actions"`
}

func (a *SoundDesignAgent) Process(ctx context.Context, scenes []models.Scene) (*AudioDesign, error) {
	scenesData := make([]soundScene, 0, len(scenes))
	for _, s := range scenes {
		duration := s.Duration
		if duration <= 0 {
			duration = 10
		}
		scenesData = append(scenesData, soundScene{
			ID:          s.SceneNumber,
			Description: s.Description,
			Mood:        s.Mood,
			Duration:    duration,
			Actions:     s.Actions,
		})
	}
	scenesJSON, err := json.MarshalIndent(scenesData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scenes: %w", err)
	}

	prompt := buildSoundDesignPrompt(string(scenesJSON))
	response := a.LLM.Generate(ctx, llm.Request{
		Prompt:   prompt,
		Provider: llm.ProviderGemini,
		APIKey:   a.APIKey,
	})

	if !llm.IsFallback(response) {
		if raw, ok := llm.ExtractJSON(response); ok {
			var design AudioDesign
			if err := json.Unmarshal(raw, &design); err != nil {
				log.Printf("Failed to parse audio response: %v", err)
			} else if len(design.SceneDesigns) > 0 {
				return &design, nil
			}
		}
	}

	log.Printf("Sound design fell back to generic scene entry")
	return fallbackAudioDesign(scenes), nil
}

func buildSoundDesignPrompt(scenesJSON string) string {
	return fmt.Sprintf(`You are a professional sound designer and supervising sound editor. Create cinematic audio design for these scenes.

SCENES:
%s

SOUND DESIGN PRINCIPLES:
- MUSIC EMOTIONAL ARC: Match music energy to scene emotional journey
- SONIC MOTIFS: Recurring themes for characters/ideas
- PACING SYNC: Music rhythm should match visual cutting rhythm
- SOUND BRIDGES: Use ambiences and SFX to smooth transitions
- DYNAMIC RANGE: Use quiet-to-loud contrast for impact
- FREQUENCY SPECTRUM: Balance bass, mids, and highs for clarity

For EACH scene, provide:

1. MUSIC COMPOSITION:
- Style: Specific genre (e.g., "dark cinematic orchestral with electronic elements")
- Tempo: BPM with pacing note
- Instruments: Detailed instrumentation (specific instruments, not just "strings")
- Energy level: 1-10 with emotional justification
- Arc: How music evolves during the scene
- Fade in/out: Precise timing
- Reference: Similar music for search (e.g., "Hans Zimmer Dunkirk style")

2. SOUND EFFECTS (layered, specific):
- Timestamp: Exact moment
- Sound type: Specific, descriptive (e.g., "metallic sword hiss, magical resonance")
- Duration: Precise length
- Volume: With context (e.g., "low under dialogue")
- Variation: Performance note (e.g., "slow release, trailing tail")

3. AMBIENCE/BED:
- Base: Environmental description
- Elements: 3-5 specific sounds
- Intensity: Low/Medium/High with purpose

4. AUDIO CUES (transitional):
- Timestamp: Exact moment
- Type: fade_in, fade_out, transition_hit, accent, stinger, swell
- Description: What this accomplishes narratively

Return ONLY valid JSON:
{
  "audio_design": [
    {
      "scene_id": 1,
      "scene_duration": 10,
      "music": {
        "style": "dark cinematic orchestral with deep synth bass",
        "tempo_bpm": 80,
        "instruments": ["solo cello melody", "low drones", "subtle percussion", "swelling strings"],
        "energy_level": 4,
        "arc": "starts quiet, builds to crest at 7s, fades to ambient",
        "fade_in": "0-2s from silence",
        "fade_out": "8-10s trailing dissonance",
        "search_prompts": ["cinematic tension underscore", "mystery drone ambient"]
      },
      "sound_effects": [
        {
          "timestamp": "0:00",
          "sound_type": "slow metallic resonance, magical sword awakening",
          "duration": "3s",
          "volume": "medium, building",
          "variation": "low frequency pulse with high frequency overtones"
        }
      ],
      "ambience": {
        "base": "ancient stone cave sub-bass with distant water drip",
        "elements": ["low 40Hz rumble", "occasional water drops", "subtle air movement"],
        "intensity": "low, creating unease"
      },
      "audio_cues": [
        {
          "timestamp": "0:00",
          "cue_type": "fade_in_music",
          "description": "Music enters with ambient drone under sword discovery"
        }
      ]
    }
  ],
  "overall_audio_arc": {
    "energy_curve": "building to climax at scene 3",
    "key_moments": [{"time": "0:00", "event": "establishing mystery", "energy": 2}]
  }
}`, scenesJSON)
}

// fallbackAudioDesign derives one generic entry from the first scene's mood
// and duration.
func fallbackAudioDesign(scenes []models.Scene) *AudioDesign {
	sceneID := 1
	duration := 10.0
	mood := "dramatic"
	if len(scenes) > 0 {
		sceneID = scenes[0].SceneNumber
		if scenes[0].Duration > 0 {
			duration = scenes[0].Duration
		}
		if scenes[0].Mood != "" {
			mood = scenes[0].Mood
		}
	}
	return &AudioDesign{
		SceneDesigns: []SceneAudioDesign{
			{
				SceneID:       sceneID,
				SceneDuration: duration,
				Music: MusicRecommendation{
					Style:         "dark cinematic",
					TempoBPM:      90,
					Instruments:   []string{"strings", "brass"},
					EnergyLevel:   5,
					FadeIn:        "0-1s",
					FadeOut:       "-1s",
					SearchPrompts: []string{"cinematic tension"},
				},
				SoundEffects: []SoundEffect{
					{
						Timestamp: "0:00",
						SoundType: "ambient drone",
						Duration:  "5s",
						Volume:    "low",
						Variation: "atmospheric",
					},
				},
				Ambience: Ambience{
					Base:      mood + " atmosphere",
					Elements:  []string{},
					Intensity: "low",
				},
				AudioCues: []AudioCue{},
			},
		},
		OverallAudioArc: AudioArc{
			EnergyCurve: "building",
			KeyMoments:  []KeyMoment{},
		},
	}
}
