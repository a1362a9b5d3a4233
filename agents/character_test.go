package agents

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/ernurtorekul/cinema/llm"
	"github.com/ernurtorekul/cinema/models"
)

func testScenes(n int) []models.Scene {
	scenes := make([]models.Scene, n)
	for i := range scenes {
		scenes[i] = models.Scene{
			ProjectID:   "proj",
			SceneNumber: i + 1,
			Description: "scene",
			Mood:        "tense",
			Duration:    10,
		}
	}
	return scenes
}

func TestCharacterAgentNilConfig(t *testing.T) {
	agent := &CharacterAgent{LLM: &stubLLM{}}
	analysis, err := agent.Process(context.Background(), testScenes(3), nil)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(analysis.Assignments) != 0 || len(analysis.ConsistencyMap) != 0 {
		t.Errorf("expected empty analysis, got %+v", analysis)
	}
	if analysis.Assignments == nil || analysis.ConsistencyMap == nil {
		t.Error("empty analysis must serialize as [] and {}, not null")
	}
}

func TestManualAssignIdempotent(t *testing.T) {
	scenes := testScenes(4)
	chars := []CharacterInput{
		{Name: "Alex", Traits: []string{"strong"}, Style: "tactical gear"},
		{Name: "Mira", Traits: []string{"mysterious"}},
		{Name: "Dune", Traits: []string{"calculating"}},
	}

	first := manualAssign(scenes, chars)
	second := manualAssign(scenes, chars)
	if !reflect.DeepEqual(first, second) {
		t.Error("manual assignment must be deterministic across runs")
	}
}

func TestManualAssignRoundRobin(t *testing.T) {
	scenes := testScenes(3)
	chars := []CharacterInput{
		{Name: "Alex", Style: "tactical gear"},
		{Name: "Mira"},
		{Name: "Dune"},
	}

	analysis := manualAssign(scenes, chars)

	// With 3 characters and 2 per scene: scene i casts characters j where
	// (i+j) mod 3 < 2.
	wantCast := map[int][]string{
		1: {"Alex", "Mira"},
		2: {"Alex", "Dune"},
		3: {"Mira", "Dune"},
	}
	if len(analysis.Assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(analysis.Assignments))
	}
	for _, assignment := range analysis.Assignments {
		want := wantCast[assignment.SceneID]
		var got []string
		for _, c := range assignment.Characters {
			got = append(got, c.Name)
			if c.Expression != "focused" || c.Pose != "standing" || c.Action != "observing" {
				t.Errorf("scene %d character %s has non-fixed values: %+v", assignment.SceneID, c.Name, c)
			}
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("scene %d cast %v, want %v", assignment.SceneID, got, want)
		}
	}

	if got := analysis.ConsistencyMap["Alex"].Appearances; !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Alex appearances %v, want [1 2]", got)
	}
	if got := analysis.ConsistencyMap["Alex"].Costume; got != "tactical gear" {
		t.Errorf("Alex costume %q", got)
	}
}

func TestManualAssignSingleCharacterEveryScene(t *testing.T) {
	scenes := testScenes(5)
	analysis := manualAssign(scenes, []CharacterInput{{Name: "Solo"}})

	if len(analysis.Assignments) != 5 {
		t.Fatalf("single character should appear in every scene, got %d assignments", len(analysis.Assignments))
	}
	for _, assignment := range analysis.Assignments {
		if len(assignment.Characters) != 1 || assignment.Characters[0].Name != "Solo" {
			t.Errorf("scene %d cast %+v", assignment.SceneID, assignment.Characters)
		}
	}
	if got := analysis.ConsistencyMap["Solo"].Appearances; len(got) != 5 {
		t.Errorf("Solo appearances %v, want all 5 scenes", got)
	}
}

func TestManualModeEmptyCharacterList(t *testing.T) {
	agent := &CharacterAgent{LLM: &stubLLM{}}
	analysis, err := agent.Process(context.Background(), testScenes(3), &CharacterConfig{Mode: "manual"})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(analysis.Assignments) != 0 {
		t.Errorf("expected no assignments, got %+v", analysis.Assignments)
	}
}

func TestMergeCharacterListDeduplicates(t *testing.T) {
	merged := mergeCharacterList(
		[]CharacterInput{{Name: "Alex", Traits: []string{"lead"}}},
		[]CharacterInput{{Name: "Alex", Traits: []string{"extra"}}, {Name: "Mira"}},
	)

	if len(merged) != 2 {
		t.Fatalf("expected 2 merged characters, got %d: %+v", len(merged), merged)
	}
	if merged[0].Name != "Alex" || merged[0].Priority != "must_include" {
		t.Errorf("first entry %+v, want must-include Alex", merged[0])
	}
	if !reflect.DeepEqual(merged[0].Traits, []string{"lead"}) {
		t.Errorf("must-include traits must win, got %v", merged[0].Traits)
	}
	if merged[1].Name != "Mira" || merged[1].Priority != "pool" {
		t.Errorf("second entry %+v, want pool Mira", merged[1])
	}
}

func TestAiAssignFallbackOnProviderFailure(t *testing.T) {
	agent := &CharacterAgent{LLM: &stubLLM{}} // placeholder from every call
	analysis, err := agent.Process(context.Background(), testScenes(3), &CharacterConfig{
		Mode: "ai_decides",
		Pool: []CharacterInput{
			{Name: "Mira", Traits: []string{"mysterious"}, Style: "long coat"},
			{Name: "Dune"},
		},
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if len(analysis.Assignments) != 1 {
		t.Fatalf("fallback should assign exactly one scene, got %d", len(analysis.Assignments))
	}
	assignment := analysis.Assignments[0]
	if assignment.SceneID != 1 || len(assignment.Characters) != 1 {
		t.Fatalf("fallback assignment %+v, want first character on scene 1", assignment)
	}
	c := assignment.Characters[0]
	if c.Name != "Mira" || c.Expression != "determined" || c.Pose != "standing" || c.Action != "observing" {
		t.Errorf("fallback character %+v", c)
	}
	if c.CostumeNotes != "long coat" {
		t.Errorf("fallback costume %q, want character style", c.CostumeNotes)
	}
	if got := analysis.ConsistencyMap["Mira"].Appearances; !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Mira appearances %v, want [1]", got)
	}
}

func TestAiAssignParsesCastingResponse(t *testing.T) {
	response := "```json\n" + `{
  "assignments": [
    {"scene_id": 1, "characters": [{"name": "Mira", "expression": "wary", "pose": "crouching", "action": "scanning"}]}
  ],
  "consistency_map": {"Mira": {"base_traits": ["mysterious"], "costume": "long coat", "appearances": [1]}}
}` + "\n```"
	stub := &stubLLM{responses: map[llm.Provider]string{llm.ProviderGemini: response}}
	agent := &CharacterAgent{LLM: stub}

	analysis, err := agent.Process(context.Background(), testScenes(2), &CharacterConfig{
		Mode:        "ai_decides",
		MustInclude: []CharacterInput{{Name: "Mira", Traits: []string{"mysterious"}}},
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(analysis.Assignments) != 1 || analysis.Assignments[0].Characters[0].Name != "Mira" {
		t.Errorf("unexpected analysis %+v", analysis)
	}
	if !strings.Contains(stub.requests[0].Prompt, "MUST INCLUDE") {
		t.Error("casting prompt should flag must-include characters")
	}
}
