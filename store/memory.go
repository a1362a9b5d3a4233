package store

import (
	"context"
	"sort"

	"github.com/ernurtorekul/cinema/models"
)

// MemoryStore is the in-process substitute for postgres, used when MOCK_MODE
// is set or the database is unreachable. It is intentionally unsynchronized:
// the pipeline serves one request at a time in its intended deployment.
type MemoryStore struct {
	projects  map[string]*models.Project
	scenarios map[string]*models.Scenario
	scenes    map[string][]models.Scene // keyed by project id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects:  make(map[string]*models.Project),
		scenarios: make(map[string]*models.Scenario),
		scenes:    make(map[string][]models.Scene),
	}
}

func (s *MemoryStore) CreateProject(ctx context.Context, project *models.Project) error {
	copied := *project
	s.projects[project.ID] = &copied
	return nil
}

func (s *MemoryStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	project, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *project
	return &copied, nil
}

func (s *MemoryStore) SetGenerationStatus(ctx context.Context, projectID, status string) error {
	project, ok := s.projects[projectID]
	if !ok {
		return ErrNotFound
	}
	if project.StylePreferences == nil {
		project.StylePreferences = map[string]interface{}{}
	}
	project.StylePreferences["generation_status"] = status
	return nil
}

func (s *MemoryStore) CreateScenario(ctx context.Context, scenario *models.Scenario) error {
	copied := *scenario
	s.scenarios[scenario.ID] = &copied
	return nil
}

func (s *MemoryStore) GetScenarioByProject(ctx context.Context, projectID string) (*models.Scenario, error) {
	var found *models.Scenario
	for _, scenario := range s.scenarios {
		if scenario.ProjectID != projectID {
			continue
		}
		if found == nil || scenario.CreatedAt.Before(found.CreatedAt) {
			found = scenario
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	copied := *found
	return &copied, nil
}

func (s *MemoryStore) ReplaceScenes(ctx context.Context, projectID string, scenes []models.Scene) error {
	copied := make([]models.Scene, len(scenes))
	copy(copied, scenes)
	s.scenes[projectID] = copied
	return nil
}

func (s *MemoryStore) ListScenes(ctx context.Context, projectID string) ([]models.Scene, error) {
	scenes := make([]models.Scene, len(s.scenes[projectID]))
	copy(scenes, s.scenes[projectID])
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].SceneNumber < scenes[j].SceneNumber
	})
	return scenes, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
