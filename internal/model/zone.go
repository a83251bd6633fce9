package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Coordinate is one vertex of a zone ring, latitude first to match the wire
// format the dashboard exchanges.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CoordinateList is stored as a JSONB array and keeps the ring order the
// drawing surface produced. Winding and closure are not validated here.
type CoordinateList []Coordinate

func (c CoordinateList) Value() (driver.Value, error) {
	if c == nil {
		c = CoordinateList{}
	}
	return json.Marshal(c)
}

func (c *CoordinateList) Scan(value interface{}) error {
	if value == nil {
		*c = CoordinateList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported coordinates column type %T", value)
	}
}

// Zone is a named, colored polygonal service region, optionally assigned to
// one technician. ID 0 means the zone has not been persisted yet.
type Zone struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Color        string         `gorm:"type:varchar(7);not null" json:"color"`
	Coordinates  CoordinateList `gorm:"type:jsonb;not null" json:"coordinates"`
	TechnicianID *int64         `gorm:"index" json:"-"`
	Technician   *Technician    `gorm:"-" json:"technician"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Zone) TableName() string {
	return "zones"
}
