package agents

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/ernurtorekul/cinema/llm"
	"github.com/ernurtorekul/cinema/models"
	"github.com/ernurtorekul/cinema/store"
)

const scenePromptsResponse = "```json\n" + `{
  "scene_prompts": [
    {
      "scene_id": 1,
      "image_prompts": [{"time": "0-5s", "prompt": "8K photorealistic neon street"}],
      "video_prompts": [{"time": "0-5s", "prompt": "slow dolly in", "camera": "ARRI Alexa 35", "lens": "Zeiss Supreme Prime", "aperture": "T1.8"}]
    }
  ]
}` + "\n```"

func newTestOrchestrator(stub *stubLLM) (*Orchestrator, *store.MemoryStore) {
	mem := store.NewMemoryStore()
	return &Orchestrator{
		Store:     mem,
		Scenario:  &ScenarioAgent{LLM: stub, Store: mem},
		Character: &CharacterAgent{LLM: stub},
		Source:    &SourceAgent{LLM: stub},
		Prompt:    &PromptAgent{LLM: stub, Rand: rand.New(rand.NewSource(1))},
		Sound:     &SoundDesignAgent{LLM: stub},
	}, mem
}

func TestRunFullPipelineSkipsSoundDesign(t *testing.T) {
	stub := &stubLLM{responses: map[llm.Provider]string{
		llm.ProviderOpenAI: twoSceneResponse,
		llm.ProviderClaude: scenePromptsResponse,
	}}
	orch, _ := newTestOrchestrator(stub)

	result, err := orch.RunFullPipeline(context.Background(), "proj-1", "a chase", GenerateOptions{
		IncludeSoundDesign: false,
	})
	if err != nil {
		t.Fatalf("RunFullPipeline: %v", err)
	}

	wantSteps := []string{StepScenarioAnalysis, StepPromptGeneration}
	if len(result.Steps) != len(wantSteps) {
		t.Fatalf("steps %+v, want %v", result.Steps, wantSteps)
	}
	for i, step := range result.Steps {
		if step.Step != wantSteps[i] || step.Status != "completed" {
			t.Errorf("step %d = %+v, want %s completed", i, step, wantSteps[i])
		}
	}

	if result.SoundDesign != nil {
		t.Error("sound design should be nil when skipped")
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if strings.Contains(string(encoded), "sound_design") {
		t.Errorf("skipped stage must omit its key entirely: %s", encoded)
	}

	// The sound-design agent must never have been invoked.
	for _, req := range stub.requests {
		if strings.Contains(req.Prompt, "sound designer") {
			t.Error("sound-design prompt was sent despite include_sound_design=false")
		}
	}
}

func TestRunFullPipelineAllStages(t *testing.T) {
	stub := &stubLLM{responses: map[llm.Provider]string{
		llm.ProviderOpenAI: twoSceneResponse,
		llm.ProviderClaude: scenePromptsResponse,
	}}
	orch, _ := newTestOrchestrator(stub)

	result, err := orch.RunFullPipeline(context.Background(), "proj-2", "a chase", GenerateOptions{
		CharacterConfig: &CharacterConfig{
			Mode:       "manual",
			Characters: []CharacterInput{{Name: "Alex"}},
		},
		SourceRules:        "brand colors are blue and silver",
		IncludeSoundDesign: true,
	})
	if err != nil {
		t.Fatalf("RunFullPipeline: %v", err)
	}

	wantSteps := []string{
		StepScenarioAnalysis,
		StepCharacterAnalysis,
		StepSourceAnalysis,
		StepPromptGeneration,
		StepSoundDesign,
	}
	if len(result.Steps) != len(wantSteps) {
		t.Fatalf("steps %+v, want %v", result.Steps, wantSteps)
	}
	for i, step := range result.Steps {
		if step.Step != wantSteps[i] || step.Status != "completed" {
			t.Errorf("step %d = %+v, want %s completed", i, step, wantSteps[i])
		}
	}
	if result.Status != "completed" {
		t.Errorf("status %q, want completed", result.Status)
	}

	// Manual mode casts without an LLM call, across the persisted scenes.
	if result.CharacterAnalysis == nil || len(result.CharacterAnalysis.Assignments) != 2 {
		t.Errorf("character analysis %+v, want assignments for both scenes", result.CharacterAnalysis)
	}
	// Gemini is unmapped in the stub, so source and sound take their fallbacks.
	if result.SourceAnalysis == nil || result.SourceAnalysis.SceneInstructions == nil {
		t.Errorf("source analysis %+v, want non-nil instructions", result.SourceAnalysis)
	}
	if result.SoundDesign == nil || len(result.SoundDesign.SceneDesigns) != 1 {
		t.Errorf("sound design %+v, want single fallback entry", result.SoundDesign)
	}
	if result.PromptGeneration == nil || len(result.PromptGeneration.ScenePrompts) != 1 {
		t.Errorf("prompt generation %+v", result.PromptGeneration)
	}
}

func TestRunFullPipelineUsesProjectConstraints(t *testing.T) {
	stub := &stubLLM{responses: map[llm.Provider]string{
		llm.ProviderOpenAI: twoSceneResponse,
		llm.ProviderClaude: scenePromptsResponse,
	}}
	orch, mem := newTestOrchestrator(stub)

	err := mem.CreateProject(context.Background(), &models.Project{
		ID:            "proj-3",
		Type:          "product ad",
		TotalDuration: 60,
		StylePreferences: map[string]interface{}{
			"scene_count": float64(5),
			"pacing":      "slow",
		},
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if _, err := orch.RunFullPipeline(context.Background(), "proj-3", "a launch film", GenerateOptions{}); err != nil {
		t.Fatalf("RunFullPipeline: %v", err)
	}

	prompt := stub.requests[0].Prompt
	for _, want := range []string{"product ad", "Total duration: 60 seconds", "Break down into exactly 5 scenes", "longer takes"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("scenario prompt missing %q", want)
		}
	}
}

func TestRunFullPipelineMissingProjectDefaults(t *testing.T) {
	stub := &stubLLM{responses: map[llm.Provider]string{
		llm.ProviderOpenAI: twoSceneResponse,
		llm.ProviderClaude: scenePromptsResponse,
	}}
	orch, _ := newTestOrchestrator(stub)

	if _, err := orch.RunFullPipeline(context.Background(), "ghost", "a chase", GenerateOptions{}); err != nil {
		t.Fatalf("RunFullPipeline: %v", err)
	}
	prompt := stub.requests[0].Prompt
	if !strings.Contains(prompt, "Break down into exactly 3 scenes") {
		t.Error("missing project should fall back to trailer defaults")
	}
}

func TestRunStepUnknown(t *testing.T) {
	orch, _ := newTestOrchestrator(&stubLLM{})
	_, err := orch.RunStep(context.Background(), "proj-1", "color_grading", StepArgs{})
	if !errors.Is(err, ErrUnknownStep) {
		t.Errorf("error %v, want ErrUnknownStep", err)
	}
}

func TestRunStepSoundDesignLoadsStoredScenes(t *testing.T) {
	orch, mem := newTestOrchestrator(&stubLLM{})
	scenes := []models.Scene{
		{ID: "s-1", ProjectID: "proj-1", SceneNumber: 1, Description: "opening", Mood: "eerie", Duration: 12},
		{ID: "s-2", ProjectID: "proj-1", SceneNumber: 2, Description: "chase", Mood: "frantic", Duration: 8},
	}
	if err := mem.ReplaceScenes(context.Background(), "proj-1", scenes); err != nil {
		t.Fatalf("ReplaceScenes: %v", err)
	}

	out, err := orch.RunStep(context.Background(), "proj-1", StepSoundDesign, StepArgs{})
	if err != nil {
		t.Fatalf("RunStep: %v", err)
	}
	design, ok := out.(*AudioDesign)
	if !ok {
		t.Fatalf("result type %T", out)
	}
	// Stub provider fails, so the fallback keys off the first stored scene.
	if len(design.SceneDesigns) != 1 || design.SceneDesigns[0].SceneID != 1 {
		t.Errorf("design %+v, want fallback for scene 1", design.SceneDesigns)
	}
	if design.SceneDesigns[0].SceneDuration != 12 {
		t.Errorf("scene duration %v, want 12", design.SceneDesigns[0].SceneDuration)
	}
	if design.SceneDesigns[0].Ambience.Base != "eerie atmosphere" {
		t.Errorf("ambience base %q", design.SceneDesigns[0].Ambience.Base)
	}
}

func TestRunStepScenarioWithExplicitConstraints(t *testing.T) {
	stub := &stubLLM{responses: map[llm.Provider]string{llm.ProviderOpenAI: twoSceneResponse}}
	orch, mem := newTestOrchestrator(stub)

	out, err := orch.RunStep(context.Background(), "proj-1", StepScenarioAnalysis, StepArgs{
		Scenario:    "a rooftop standoff",
		Constraints: &Constraints{Type: "trailer", TotalDuration: 20, SceneCountTarget: 2, Pacing: "fast"},
	})
	if err != nil {
		t.Fatalf("RunStep: %v", err)
	}
	analysis, ok := out.(*ScenarioAnalysis)
	if !ok {
		t.Fatalf("result type %T", out)
	}
	if analysis.SceneCount != 2 {
		t.Errorf("scene count %d, want 2", analysis.SceneCount)
	}
	stored, err := mem.ListScenes(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("ListScenes: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("expected step run to persist scenes, got %d", len(stored))
	}
}
