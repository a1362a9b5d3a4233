package store

import (
	"context"
	"errors"

	"github.com/ernurtorekul/cinema/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence façade for projects, scenarios and scenes. The
// postgres implementation is the real datastore; MemoryStore is the
// zero-dependency substitute used in mock mode and in tests.
type Store interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	// SetGenerationStatus records the pipeline status inside the project's
	// style preferences. Agents never touch project rows; this is the one
	// externally-driven status update.
	SetGenerationStatus(ctx context.Context, projectID, status string) error

	CreateScenario(ctx context.Context, scenario *models.Scenario) error
	GetScenarioByProject(ctx context.Context, projectID string) (*models.Scenario, error)

	// ReplaceScenes swaps the project's scene set for a fresh breakdown.
	// Scene numbering restarts at 1 on every run, which keeps the
	// contiguous-numbering invariant intact across re-runs.
	ReplaceScenes(ctx context.Context, projectID string, scenes []models.Scene) error
	// ListScenes returns the project's scenes ordered by scene number.
	ListScenes(ctx context.Context, projectID string) ([]models.Scene, error)

	Ping(ctx context.Context) error
}
