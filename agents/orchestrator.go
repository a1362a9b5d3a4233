package agents

import (
	"context"
	"errors"
	"fmt"

	"github.com/ernurtorekul/cinema/models"
	"github.com/ernurtorekul/cinema/store"
)

// Pipeline step names, in execution order.
const (
	StepScenarioAnalysis  = "scenario_analysis"
	StepCharacterAnalysis = "character_analysis"
	StepSourceAnalysis    = "source_analysis"
	StepPromptGeneration  = "prompt_generation"
	StepSoundDesign       = "sound_design"
)

// ErrUnknownStep is returned by RunStep for unrecognized step names; the
// HTTP layer maps it to 400.
var ErrUnknownStep = errors.New("unknown step")

// defaultConstraints covers projects that only exist client-side (mock-mode
// sessions created before a project row was stored).
var defaultConstraints = Constraints{
	Type:             "trailer",
	TotalDuration:    30,
	SceneCountTarget: 3,
	Pacing:           "mixed",
}

// GenerateOptions are the optional inputs to a full pipeline run.
type GenerateOptions struct {
	CharacterConfig    *CharacterConfig
	SourceRules        string
	StyleGuide         *StyleGuide
	IncludeSoundDesign bool
}

// StepArgs carries the step-specific inputs for single-step execution.
type StepArgs struct {
	Scenario        string           `json:"scenario,omitempty"`
	Constraints     *Constraints     `json:"constraints,omitempty"`
	CharacterConfig *CharacterConfig `json:"character_config,omitempty"`
	SourceRules     string           `json:"source_rules,omitempty"`
	StyleGuide      *StyleGuide      `json:"style_guide,omitempty"`
}

// Orchestrator sequences the five stage agents into one synchronous run.
// Stages execute strictly in order; a stage error aborts the run.
type Orchestrator struct {
	Store     store.Store
	Scenario  *ScenarioAgent
	Character *CharacterAgent
	Source    *SourceAgent
	Prompt    *PromptAgent
	Sound     *SoundDesignAgent
}

// RunFullPipeline executes scenario analysis, then the optional character
// and source stages, then prompt generation, then sound design. Scene data
// produced by the scenario stage is reloaded from the store so downstream
// stages see the persisted, number-ordered rows.
func (o *Orchestrator) RunFullPipeline(ctx context.Context, projectID, scenario string, opts GenerateOptions) (*PipelineResult, error) {
	result := &PipelineResult{
		ProjectID: projectID,
		Steps:     []StepStatus{},
	}

	constraints, err := o.loadConstraints(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// STEP 1: scenario analysis, always runs.
	result.Steps = append(result.Steps, StepStatus{Step: StepScenarioAnalysis, Status: "processing"})
	scenarioResult, err := o.Scenario.Process(ctx, projectID, scenario, constraints)
	if err != nil {
		return nil, fmt.Errorf("scenario analysis: %w", err)
	}
	result.Steps[len(result.Steps)-1].Status = "completed"
	result.ScenarioAnalysis = scenarioResult

	scenes, err := o.Store.ListScenes(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load scenes: %w", err)
	}

	// STEP 2: character analysis, only with a character config.
	if opts.CharacterConfig != nil {
		result.Steps = append(result.Steps, StepStatus{Step: StepCharacterAnalysis, Status: "processing"})
		characterResult, err := o.Character.Process(ctx, scenes, opts.CharacterConfig)
		if err != nil {
			return nil, fmt.Errorf("character analysis: %w", err)
		}
		result.Steps[len(result.Steps)-1].Status = "completed"
		result.CharacterAnalysis = characterResult
	}

	// STEP 3: source analysis, only with source rules.
	if opts.SourceRules != "" {
		result.Steps = append(result.Steps, StepStatus{Step: StepSourceAnalysis, Status: "processing"})
		sourceResult, err := o.Source.Process(ctx, scenes, opts.SourceRules)
		if err != nil {
			return nil, fmt.Errorf("source analysis: %w", err)
		}
		result.Steps[len(result.Steps)-1].Status = "completed"
		result.SourceAnalysis = sourceResult
	}

	// STEP 4: prompt generation, always runs.
	result.Steps = append(result.Steps, StepStatus{Step: StepPromptGeneration, Status: "processing"})
	promptResult, err := o.Prompt.Process(ctx, scenes, opts.StyleGuide)
	if err != nil {
		return nil, fmt.Errorf("prompt generation: %w", err)
	}
	result.Steps[len(result.Steps)-1].Status = "completed"
	result.PromptGeneration = promptResult

	// STEP 5: sound design, on by default, skippable.
	if opts.IncludeSoundDesign {
		result.Steps = append(result.Steps, StepStatus{Step: StepSoundDesign, Status: "processing"})
		soundResult, err := o.Sound.Process(ctx, scenes)
		if err != nil {
			return nil, fmt.Errorf("sound design: %w", err)
		}
		result.Steps[len(result.Steps)-1].Status = "completed"
		result.SoundDesign = soundResult
	}

	result.Status = "completed"
	return result, nil
}

// RunStep loads the project's current scenes and invokes exactly one agent,
// for retry-by-hand workflows.
func (o *Orchestrator) RunStep(ctx context.Context, projectID, step string, args StepArgs) (interface{}, error) {
	switch step {
	case StepScenarioAnalysis:
		constraints := defaultConstraints
		if args.Constraints != nil {
			constraints = *args.Constraints
		} else if loaded, err := o.loadConstraints(ctx, projectID); err == nil {
			constraints = loaded
		}
		return o.Scenario.Process(ctx, projectID, args.Scenario, constraints)

	case StepCharacterAnalysis:
		scenes, err := o.Store.ListScenes(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return o.Character.Process(ctx, scenes, args.CharacterConfig)

	case StepSourceAnalysis:
		scenes, err := o.Store.ListScenes(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return o.Source.Process(ctx, scenes, args.SourceRules)

	case StepPromptGeneration:
		scenes, err := o.Store.ListScenes(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return o.Prompt.Process(ctx, scenes, args.StyleGuide)

	case StepSoundDesign:
		scenes, err := o.Store.ListScenes(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return o.Sound.Process(ctx, scenes)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
}

// loadConstraints reads the project's generation constraints. A project that
// is missing from the store falls back to trailer defaults, mirroring the
// mock-mode behavior rather than failing the run.
func (o *Orchestrator) loadConstraints(ctx context.Context, projectID string) (Constraints, error) {
	project, err := o.Store.GetProject(ctx, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return defaultConstraints, nil
	}
	if err != nil {
		return Constraints{}, fmt.Errorf("load project: %w", err)
	}
	return constraintsFromProject(project), nil
}

func constraintsFromProject(project *models.Project) Constraints {
	return Constraints{
		Type:             project.Type,
		TotalDuration:    project.TotalDuration,
		SceneCountTarget: project.SceneCountTarget(),
		Pacing:           project.Pacing(),
	}
}
