package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project is one video generation session. Scene-count target and pacing are
// folded into StylePreferences alongside any free-form prefs from the client.
type Project struct {
	ID               string            `gorm:"type:uuid;primaryKey" json:"id"`
	Type             string            `gorm:"not null" json:"type"` // trailer, commercial, short_film, tiktok, custom
	TotalDuration    int               `json:"total_duration"`
	StylePreferences datatypes.JSONMap `json:"style_preferences"`
	CreatedAt        time.Time         `json:"created_at"`
}

func (Project) TableName() string {
	return "projects"
}

// SceneCountTarget reads the scene-count target out of style preferences.
// Zero means the count is left to the scenario analysis.
func (p *Project) SceneCountTarget() int {
	if v, ok := p.StylePreferences["scene_count"].(float64); ok {
		return int(v)
	}
	if v, ok := p.StylePreferences["scene_count"].(int); ok {
		return v
	}
	return 0
}

// Pacing reads the pacing preference, defaulting to "mixed".
func (p *Project) Pacing() string {
	if v, ok := p.StylePreferences["pacing"].(string); ok && v != "" {
		return v
	}
	return "mixed"
}
