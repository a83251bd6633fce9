package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Duration is an intervention length, stored as whole seconds and exchanged
// as "HH:MM:SS" on the wire.
type Duration int64

func ParseClockDuration(raw string) (Duration, error) {
	var h, m, s int
	if _, err := fmt.Sscanf(raw, "%d:%d:%d", &h, &m, &s); err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if h < 0 || m < 0 || m > 59 || s < 0 || s > 59 {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return Duration(h*3600 + m*60 + s), nil
}

func (d Duration) String() string {
	total := int64(d)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

func (d Duration) Std() time.Duration {
	return time.Duration(d) * time.Second
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseClockDuration(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Duration) Value() (driver.Value, error) {
	return int64(d), nil
}

func (d *Duration) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*d = Duration(v)
		return nil
	case nil:
		*d = 0
		return nil
	default:
		return fmt.Errorf("unsupported duration column type %T", value)
	}
}

// InterventionType describes one kind of service visit (maintenance, repair,
// ...) with its default length and starting price.
type InterventionType struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Duration      Duration  `gorm:"not null" json:"duration"`
	StartingPrice float64   `gorm:"not null;default:0" json:"starting_price"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InterventionType) TableName() string {
	return "intervention_types"
}
