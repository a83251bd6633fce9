package model

import "time"

// Intervention is a scheduled service visit.
type Intervention struct {
	ID                 int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	InterventionTypeID int64             `gorm:"not null;index" json:"-"`
	InterventionType   *InterventionType `gorm:"foreignKey:InterventionTypeID" json:"intervention_type,omitempty"`
	TechnicianID       *int64            `gorm:"index" json:"-"`
	Technician         *Technician       `gorm:"-" json:"technician,omitempty"`
	Address            string            `gorm:"type:text" json:"address"`
	ClientName         string            `gorm:"type:varchar(255)" json:"client_name"`
	Price              float64           `gorm:"not null;default:0" json:"price"`
	StartAt            time.Time         `gorm:"not null;index" json:"start_at"`
	EndAt              time.Time         `gorm:"not null" json:"end_at"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Intervention) TableName() string {
	return "interventions"
}

// UpcomingIntervention is the flattened dashboard row for the next planned
// visits.
type UpcomingIntervention struct {
	InterventionID      int64     `json:"intervention_id"`
	Address             string    `json:"address"`
	StartAt             time.Time `json:"start_at"`
	EndAt               time.Time `json:"end_at"`
	TechnicianFirstName string    `json:"technician_first_name"`
	TechnicianLastName  string    `json:"technician_last_name"`
	InterventionType    string    `json:"intervention_type"`
}

// MonthlyStat is one row of the dashboard chart: intervention counts for a
// calendar month, bucketed by type category.
type MonthlyStat struct {
	Month       string `json:"month"`
	Maintenance int64  `json:"maintenance"`
	Repair      int64  `json:"repair"`
}
