package model

import "time"

// PlanningModel is a named template of time-of-day intervention slots, used
// to bulk-generate real interventions over a date range.
type PlanningModel struct {
	ID                 int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string              `gorm:"type:varchar(255);not null" json:"name"`
	ModelInterventions []ModelIntervention `gorm:"foreignKey:PlanningModelID" json:"model_interventions,omitempty"`
	CreatedAt          time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PlanningModel) TableName() string {
	return "planning_models"
}

// ModelIntervention is one slot of a planning model: an intervention type at
// a fixed time of day ("HH:MM:SS").
type ModelIntervention struct {
	ID                 int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	PlanningModelID    int64             `gorm:"not null;index" json:"planning_model_id"`
	InterventionTypeID int64             `gorm:"not null;index" json:"-"`
	InterventionType   *InterventionType `gorm:"foreignKey:InterventionTypeID" json:"intervention_type,omitempty"`
	InterventionTime   string            `gorm:"type:varchar(8);not null" json:"intervention_time"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ModelIntervention) TableName() string {
	return "model_interventions"
}
