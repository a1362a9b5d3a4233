package models

import "time"

// Scenario is the free-text input for a project. Created once, immutable.
type Scenario struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID string    `gorm:"type:uuid;not null;index" json:"project_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (Scenario) TableName() string {
	return "scenarios"
}
