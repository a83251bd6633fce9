package service

import (
	"fmt"
	"time"

	"intervention-service/internal/model"
	"intervention-service/internal/utils"
)

// ExpandSchedule builds the interventions produced by applying planning-model
// slots to every day of the inclusive [from, to] range, for every technician.
// Slots must carry their preloaded intervention type; days are interpreted in
// UTC.
func ExpandSchedule(slots []model.ModelIntervention, technicianIDs []int64, from, to time.Time) ([]model.Intervention, error) {
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		return nil, fmt.Errorf("empty date range")
	}

	interventions := make([]model.Intervention, 0, days*len(technicianIDs)*len(slots))

	for day := 0; day < days; day++ {
		date := from.AddDate(0, 0, day)
		for _, slot := range slots {
			if slot.InterventionType == nil {
				return nil, fmt.Errorf("slot %d has no intervention type", slot.ID)
			}

			h, m, sec, err := utils.ClockTimeParts(slot.InterventionTime)
			if err != nil {
				return nil, err
			}

			start := time.Date(date.Year(), date.Month(), date.Day(), h, m, sec, 0, time.UTC)

			for _, technicianID := range technicianIDs {
				id := technicianID
				interventions = append(interventions, model.Intervention{
					InterventionTypeID: slot.InterventionTypeID,
					TechnicianID:       &id,
					Price:              slot.InterventionType.StartingPrice,
					StartAt:            start,
					EndAt:              start.Add(slot.InterventionType.Duration.Std()),
				})
			}
		}
	}

	return interventions, nil
}
