package service

import (
	"testing"
	"time"

	"intervention-service/internal/model"
)

func slot(id int64, at string, typeID int64, duration, price float64) model.ModelIntervention {
	return model.ModelIntervention{
		ID:                 id,
		InterventionTypeID: typeID,
		InterventionTime:   at,
		InterventionType: &model.InterventionType{
			ID:            typeID,
			Duration:      model.Duration(duration),
			StartingPrice: price,
		},
	}
}

func TestExpandScheduleCounts(t *testing.T) {
	slots := []model.ModelIntervention{
		slot(1, "09:00:00", 1, 3600, 35),
		slot(2, "14:30:00", 2, 5400, 60),
	}
	technicians := []int64{10, 11, 12}
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC) // 5 days inclusive

	interventions, err := ExpandSchedule(slots, technicians, from, to)
	if err != nil {
		t.Fatalf("ExpandSchedule() error = %v", err)
	}

	if want := 5 * 2 * 3; len(interventions) != want {
		t.Errorf("got %d interventions, want %d (days x slots x technicians)", len(interventions), want)
	}
}

func TestExpandScheduleTimesAndPrices(t *testing.T) {
	slots := []model.ModelIntervention{slot(1, "09:00:00", 4, 3600, 35)}
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	interventions, err := ExpandSchedule(slots, []int64{7}, from, from)
	if err != nil {
		t.Fatalf("ExpandSchedule() error = %v", err)
	}
	if len(interventions) != 1 {
		t.Fatalf("got %d interventions, want 1", len(interventions))
	}

	got := interventions[0]
	wantStart := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if !got.StartAt.Equal(wantStart) {
		t.Errorf("StartAt = %v, want %v", got.StartAt, wantStart)
	}
	if want := wantStart.Add(time.Hour); !got.EndAt.Equal(want) {
		t.Errorf("EndAt = %v, want start + duration = %v", got.EndAt, want)
	}
	if got.Price != 35 {
		t.Errorf("Price = %v, want the type's starting price 35", got.Price)
	}
	if got.TechnicianID == nil || *got.TechnicianID != 7 {
		t.Errorf("TechnicianID = %v, want 7", got.TechnicianID)
	}
	if got.InterventionTypeID != 4 {
		t.Errorf("InterventionTypeID = %d, want 4", got.InterventionTypeID)
	}
}

func TestExpandScheduleMissingType(t *testing.T) {
	slots := []model.ModelIntervention{{ID: 1, InterventionTime: "09:00:00"}}
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	if _, err := ExpandSchedule(slots, []int64{1}, from, from); err == nil {
		t.Error("ExpandSchedule() error = nil, want error for slot without type")
	}
}
