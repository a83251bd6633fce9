package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	RoleAdmin      = "ROLE_ADMIN"
	RoleTechnician = "ROLE_TECHNICIEN"
)

// RoleList is stored as a JSONB array.
type RoleList []string

func (r RoleList) Value() (driver.Value, error) {
	if r == nil {
		r = RoleList{}
	}
	return json.Marshal(r)
}

func (r *RoleList) Scan(value interface{}) error {
	if value == nil {
		*r = RoleList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported roles column type %T", value)
	}
}

func (r RoleList) Has(role string) bool {
	for _, candidate := range r {
		if candidate == role {
			return true
		}
	}
	return false
}

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FirstName string    `gorm:"type:varchar(255)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(255)" json:"last_name"`
	Roles     RoleList  `gorm:"type:jsonb;not null;default:'[]'" json:"roles"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Technician is the reduced user representation exposed to the zone and
// planning screens.
type Technician struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (u *User) AsTechnician() Technician {
	return Technician{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}
