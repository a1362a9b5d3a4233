package models

import (
	"time"

	"gorm.io/datatypes"
)

// Scene is one unit of the scenario breakdown. SceneNumber is the canonical
// cross-stage key: 1-based, contiguous and unique within a project. The UUID
// is storage identity only; downstream agents reference scenes by number.
type Scene struct {
	ID           string                      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID    string                      `gorm:"type:uuid;not null;uniqueIndex:idx_project_scene_number" json:"project_id"`
	SceneNumber  int                         `gorm:"not null;uniqueIndex:idx_project_scene_number" json:"scene_number"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Duration     float64                     `json:"duration"`
	Mood         string                      `json:"mood"`
	Actions      datatypes.JSONSlice[string] `json:"actions"`
	Camera       string                      `json:"camera,omitempty"`
	Lighting     string                      `json:"lighting,omitempty"`
	Enhancements string                      `json:"enhancements,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
}

func (Scene) TableName() string {
	return "scenes"
}
