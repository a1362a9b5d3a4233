package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/ernurtorekul/cinema/llm"
	"github.com/ernurtorekul/cinema/models"
)

func TestSoundDesignFallback(t *testing.T) {
	agent := &SoundDesignAgent{LLM: &stubLLM{}}
	scenes := []models.Scene{
		{SceneNumber: 1, Description: "opening", Mood: "eerie", Duration: 14},
		{SceneNumber: 2, Description: "chase", Mood: "frantic", Duration: 6},
	}

	design, err := agent.Process(context.Background(), scenes)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(design.SceneDesigns) != 1 {
		t.Fatalf("fallback should produce one entry, got %d", len(design.SceneDesigns))
	}
	entry := design.SceneDesigns[0]
	if entry.SceneID != 1 || entry.SceneDuration != 14 {
		t.Errorf("entry %+v, want first scene's id and duration", entry)
	}
	if entry.Ambience.Base != "eerie atmosphere" {
		t.Errorf("ambience base %q", entry.Ambience.Base)
	}
	if entry.Music.Style != "dark cinematic" || entry.Music.TempoBPM != 90 || entry.Music.EnergyLevel != 5 {
		t.Errorf("music %+v", entry.Music)
	}
	if design.OverallAudioArc.EnergyCurve != "building" {
		t.Errorf("energy curve %q", design.OverallAudioArc.EnergyCurve)
	}
}

func TestSoundDesignFallbackNoScenes(t *testing.T) {
	agent := &SoundDesignAgent{LLM: &stubLLM{}}
	design, err := agent.Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	entry := design.SceneDesigns[0]
	if entry.SceneID != 1 || entry.SceneDuration != 10 || entry.Ambience.Base != "dramatic atmosphere" {
		t.Errorf("empty-input fallback %+v", entry)
	}
}

func TestSoundDesignParsesResponse(t *testing.T) {
	response := "```json\n" + `{
  "audio_design": [
    {
      "scene_id": 1,
      "scene_duration": 14,
      "music": {"style": "orchestral", "tempo_bpm": 110, "instruments": ["strings"], "energy_level": 7, "fade_in": "0-1s", "fade_out": "13-14s", "search_prompts": ["epic chase"]},
      "sound_effects": [],
      "ambience": {"base": "city night", "elements": ["traffic"], "intensity": "medium"},
      "audio_cues": []
    }
  ],
  "overall_audio_arc": {"energy_curve": "rising", "key_moments": []}
}` + "\n```"
	stub := &stubLLM{responses: map[llm.Provider]string{llm.ProviderGemini: response}}
	agent := &SoundDesignAgent{LLM: stub}

	scenes := []models.Scene{{SceneNumber: 1, Description: "chase", Mood: "frantic", Duration: 14}}
	design, err := agent.Process(context.Background(), scenes)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if design.SceneDesigns[0].Music.TempoBPM != 110 {
		t.Errorf("tempo %d, want 110 from response", design.SceneDesigns[0].Music.TempoBPM)
	}
	if design.OverallAudioArc.EnergyCurve != "rising" {
		t.Errorf("energy curve %q", design.OverallAudioArc.EnergyCurve)
	}
	if !strings.Contains(stub.requests[0].Prompt, "chase") {
		t.Error("prompt should include the scene description")
	}
}

func TestSourceAgentFallbackEmptyInstructions(t *testing.T) {
	agent := &SourceAgent{LLM: &stubLLM{}}
	analysis, err := agent.Process(context.Background(), testScenes(2), "always show the logo")
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if analysis.SceneInstructions == nil {
		t.Fatal("instructions must be an empty list, not null")
	}
	if len(analysis.SceneInstructions) != 0 {
		t.Errorf("expected no instructions on provider failure, got %+v", analysis.SceneInstructions)
	}
}

func TestSourceAgentParsesBreakdown(t *testing.T) {
	response := "```json\n" + `{
  "scene_instructions": [
    {
      "scene_id": 1,
      "breakdown": [{"time": "0-2s", "camera": "wide", "lighting": "low key", "action": "logo reveal"}],
      "transition_in": "fade from black",
      "transition_out": "hard cut"
    }
  ]
}` + "\n```"
	stub := &stubLLM{responses: map[llm.Provider]string{llm.ProviderGemini: response}}
	agent := &SourceAgent{LLM: stub}

	analysis, err := agent.Process(context.Background(), testScenes(1), "always show the logo")
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(analysis.SceneInstructions) != 1 {
		t.Fatalf("instructions %+v", analysis.SceneInstructions)
	}
	instr := analysis.SceneInstructions[0]
	if instr.SceneID != 1 || instr.TransitionIn != "fade from black" || len(instr.Breakdown) != 1 {
		t.Errorf("instruction %+v", instr)
	}
	if !strings.Contains(stub.requests[0].Prompt, "always show the logo") {
		t.Error("prompt should carry the source rules")
	}
}
