package agents

import "github.com/ernurtorekul/cinema/models"

// Constraints are the project-level generation constraints read once per run.
type Constraints struct {
	Type             string `json:"type"`
	TotalDuration    int    `json:"total_duration"`
	SceneCountTarget int    `json:"scene_count_target"`
	Pacing           string `json:"pacing"`
}

// CharacterInput is one character supplied by the caller or drawn from the
// built-in pool.
type CharacterInput struct {
	Name         string   `json:"name"`
	Traits       []string `json:"traits"`
	Style        string   `json:"style"`
	TypicalRoles []string `json:"typical_roles"`
	Priority     string   `json:"priority,omitempty"` // must_include or pool
}

// CharacterConfig selects the casting mode and its character lists.
type CharacterConfig struct {
	Mode        string           `json:"mode"` // ai_decides or manual
	Pool        []CharacterInput `json:"pool,omitempty"`
	MustInclude []CharacterInput `json:"must_include,omitempty"`
	Characters  []CharacterInput `json:"characters,omitempty"`
}

// SceneCharacter is one character's appearance within a single scene.
type SceneCharacter struct {
	Name         string `json:"name"`
	Expression   string `json:"expression"`
	Pose         string `json:"pose"`
	Action       string `json:"action"`
	CostumeNotes string `json:"costume_notes,omitempty"`
}

// SceneAssignment maps one scene to its cast.
type SceneAssignment struct {
	SceneID    int              `json:"scene_id"`
	Characters []SceneCharacter `json:"characters"`
}

// CharacterRecord aggregates a character's base look across the run. The
// appearances list only grows; base traits and costume never change between
// scenes within one run.
type CharacterRecord struct {
	BaseTraits  []string `json:"base_traits"`
	Costume     string   `json:"costume"`
	Appearances []int    `json:"appearances"`
}

// CharacterAnalysis is the Character Agent's result.
type CharacterAnalysis struct {
	Assignments    []SceneAssignment          `json:"assignments"`
	ConsistencyMap map[string]CharacterRecord `json:"consistency_map"`
}

func emptyCharacterAnalysis() *CharacterAnalysis {
	return &CharacterAnalysis{
		Assignments:    []SceneAssignment{},
		ConsistencyMap: map[string]CharacterRecord{},
	}
}

// ScenarioAnalysis is the Scenario Agent's result: the normalized scene
// breakdown whose numbering every later stage references.
type ScenarioAnalysis struct {
	Scenes        []models.Scene `json:"scenes"`
	TotalDuration float64        `json:"total_duration"`
	SceneCount    int            `json:"scene_count"`
}

// BreakdownEntry is one time-stamped instruction within a scene.
type BreakdownEntry struct {
	Time     string `json:"time"`
	Camera   string `json:"camera"`
	Lighting string `json:"lighting"`
	Action   string `json:"action"`
}

// SceneInstruction is the Source Agent's per-scene output.
type SceneInstruction struct {
	SceneID       int              `json:"scene_id"`
	Breakdown     []BreakdownEntry `json:"breakdown"`
	TransitionIn  string           `json:"transition_in,omitempty"`
	TransitionOut string           `json:"transition_out,omitempty"`
}

// SourceAnalysis is the Source Agent's result.
type SourceAnalysis struct {
	SceneInstructions []SceneInstruction `json:"scene_instructions"`
}

// StyleGuide biases prompt generation. A nil guide gets the built-in
// cinematic teal-and-orange defaults.
type StyleGuide struct {
	VisualStyle  string `json:"visual_style"`
	ColorGrading string `json:"color_grading"`
	BasePrompts  struct {
		Quality  string `json:"quality"`
		Lighting string `json:"lighting"`
	} `json:"base_prompts"`
}

// ImagePrompt is one still-frame generation prompt.
type ImagePrompt struct {
	Time           string `json:"time"`
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
}

// VideoPrompt is one motion generation prompt with camera continuity fields.
type VideoPrompt struct {
	Time     string  `json:"time"`
	Prompt   string  `json:"prompt"`
	Camera   string  `json:"camera"`
	Lens     string  `json:"lens"`
	Aperture string  `json:"aperture"`
	Duration float64 `json:"duration,omitempty"`
}

// ScenePrompts groups the prompts for one scene.
type ScenePrompts struct {
	SceneID      int           `json:"scene_id"`
	ImagePrompts []ImagePrompt `json:"image_prompts"`
	VideoPrompts []VideoPrompt `json:"video_prompts"`
}

// PromptGeneration is the Prompt Agent's result.
type PromptGeneration struct {
	ScenePrompts []ScenePrompts `json:"scene_prompts"`
}

// MusicRecommendation describes the music bed for one scene.
type MusicRecommendation struct {
	Style         string   `json:"style"`
	TempoBPM      int      `json:"tempo_bpm"`
	Instruments   []string `json:"instruments"`
	EnergyLevel   int      `json:"energy_level"`
	Arc           string   `json:"arc,omitempty"`
	FadeIn        string   `json:"fade_in"`
	FadeOut       string   `json:"fade_out"`
	SearchPrompts []string `json:"search_prompts"`
}

// SoundEffect is one timestamped effect.
type SoundEffect struct {
	Timestamp string `json:"timestamp"`
	SoundType string `json:"sound_type"`
	Duration  string `json:"duration"`
	Volume    string `json:"volume"`
	Variation string `json:"variation,omitempty"`
}

// Ambience is the scene's environmental bed.
type Ambience struct {
	Base      string   `json:"base"`
	Elements  []string `json:"elements"`
	Intensity string   `json:"intensity"`
}

// AudioCue is a transitional audio event.
type AudioCue struct {
	Timestamp   string `json:"timestamp"`
	CueType     string `json:"cue_type"`
	Description string `json:"description"`
}

// SceneAudioDesign collects the audio recommendations for one scene.
type SceneAudioDesign struct {
	SceneID       int                 `json:"scene_id"`
	SceneDuration float64             `json:"scene_duration"`
	Music         MusicRecommendation `json:"music"`
	SoundEffects  []SoundEffect       `json:"sound_effects"`
	Ambience      Ambience            `json:"ambience"`
	AudioCues     []AudioCue          `json:"audio_cues"`
}

// KeyMoment is one point on the project-level energy curve.
type KeyMoment struct {
	Time   string `json:"time"`
	Event  string `json:"event"`
	Energy int    `json:"energy"`
}

// AudioArc summarizes the whole project's audio journey.
type AudioArc struct {
	EnergyCurve string      `json:"energy_curve"`
	KeyMoments  []KeyMoment `json:"key_moments"`
}

// AudioDesign is the Sound-Design Agent's result.
type AudioDesign struct {
	SceneDesigns    []SceneAudioDesign `json:"audio_design"`
	OverallAudioArc AudioArc           `json:"overall_audio_arc"`
}

// StepStatus is one entry in the pipeline's step log.
type StepStatus struct {
	Step   string `json:"step"`
	Status string `json:"status"`
}

// PipelineResult aggregates every executed stage. Skipped stages omit their
// keys entirely.
type PipelineResult struct {
	ProjectID         string             `json:"project_id"`
	Steps             []StepStatus       `json:"steps"`
	ScenarioAnalysis  *ScenarioAnalysis  `json:"scenario_analysis,omitempty"`
	CharacterAnalysis *CharacterAnalysis `json:"character_analysis,omitempty"`
	SourceAnalysis    *SourceAnalysis    `json:"source_analysis,omitempty"`
	PromptGeneration  *PromptGeneration  `json:"prompt_generation,omitempty"`
	SoundDesign       *AudioDesign       `json:"sound_design,omitempty"`
	Status            string             `json:"status"`
}
