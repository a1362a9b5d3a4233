package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ernurtorekul/cinema/models"
)

// GormStore backs the façade with postgres through gorm.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) CreateProject(ctx context.Context, project *models.Project) error {
	if err := s.DB.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (s *GormStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := s.DB.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &project, nil
}

func (s *GormStore) SetGenerationStatus(ctx context.Context, projectID, status string) error {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.StylePreferences == nil {
		project.StylePreferences = map[string]interface{}{}
	}
	project.StylePreferences["generation_status"] = status
	if err := s.DB.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("style_preferences", project.StylePreferences).Error; err != nil {
		return fmt.Errorf("set generation status: %w", err)
	}
	return nil
}

func (s *GormStore) CreateScenario(ctx context.Context, scenario *models.Scenario) error {
	if err := s.DB.WithContext(ctx).Create(scenario).Error; err != nil {
		return fmt.Errorf("create scenario: %w", err)
	}
	return nil
}

func (s *GormStore) GetScenarioByProject(ctx context.Context, projectID string) (*models.Scenario, error) {
	var scenario models.Scenario
	err := s.DB.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at").
		First(&scenario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get scenario: %w", err)
	}
	return &scenario, nil
}

func (s *GormStore) ReplaceScenes(ctx context.Context, projectID string, scenes []models.Scene) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Scene{}).Error; err != nil {
			return fmt.Errorf("clear scenes: %w", err)
		}
		for i := range scenes {
			if err := tx.Create(&scenes[i]).Error; err != nil {
				return fmt.Errorf("create scene %d: %w", scenes[i].SceneNumber, err)
			}
		}
		return nil
	})
}

func (s *GormStore) ListScenes(ctx context.Context, projectID string) ([]models.Scene, error) {
	var scenes []models.Scene
	err := s.DB.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("scene_number").
		Find(&scenes).Error
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	return scenes, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
