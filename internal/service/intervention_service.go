package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"intervention-service/internal/model"
	"intervention-service/internal/repository"
)

type InterventionService struct {
	interventionRepo *repository.InterventionRepository
	typeRepo         *repository.InterventionTypeRepository
	userRepo         *repository.UserRepository
}

func NewInterventionService(
	interventionRepo *repository.InterventionRepository,
	typeRepo *repository.InterventionTypeRepository,
	userRepo *repository.UserRepository,
) *InterventionService {
	return &InterventionService{
		interventionRepo: interventionRepo,
		typeRepo:         typeRepo,
		userRepo:         userRepo,
	}
}

type CreateInterventionInput struct {
	InterventionTypeID int64
	TechnicianID       *int64
	StartAt            string
	Address            string
	ClientName         string
}

func (s *InterventionService) Create(ctx context.Context, principal model.Principal, input CreateInterventionInput) (*model.Intervention, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	interventionType, err := s.typeRepo.GetByID(ctx, input.InterventionTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInput
		}
		return nil, err
	}

	startAt, err := parseTime(input.StartAt)
	if err != nil {
		return nil, ErrInvalidInput
	}

	if input.TechnicianID != nil {
		if err := s.ensureTechnician(ctx, *input.TechnicianID); err != nil {
			return nil, err
		}
	}

	intervention := &model.Intervention{
		InterventionTypeID: interventionType.ID,
		TechnicianID:       input.TechnicianID,
		Address:            strings.TrimSpace(input.Address),
		ClientName:         strings.TrimSpace(input.ClientName),
		Price:              interventionType.StartingPrice,
		StartAt:            startAt,
		EndAt:              startAt.Add(interventionType.Duration.Std()),
	}

	if err := s.interventionRepo.Create(ctx, intervention); err != nil {
		return nil, err
	}

	intervention.InterventionType = interventionType
	return intervention, nil
}

func (s *InterventionService) Delete(ctx context.Context, principal model.Principal, id int64) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.interventionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

type BulkDeleteInput struct {
	TechnicianIDs []int64
	From          string
	To            string
}

// BulkDelete removes the interventions of the given technicians over an
// inclusive [from, to] date range.
func (s *InterventionService) BulkDelete(ctx context.Context, principal model.Principal, input BulkDeleteInput) (int64, error) {
	if !principal.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	if len(input.TechnicianIDs) == 0 {
		return 0, ErrInvalidInput
	}

	from, to, err := parseDateRange(input.From, input.To)
	if err != nil {
		return 0, ErrInvalidInput
	}

	return s.interventionRepo.DeleteRange(ctx, input.TechnicianIDs, from, to.AddDate(0, 0, 1))
}

func (s *InterventionService) ListByTechnician(ctx context.Context, principal model.Principal, technicianID int64, from, to *time.Time) ([]model.Intervention, error) {
	if !principal.IsAdmin() && principal.UserID != technicianID {
		return nil, ErrPermissionDenied
	}

	interventions, err := s.interventionRepo.List(ctx, repository.InterventionListFilter{
		TechnicianID: &technicianID,
		From:         from,
		To:           to,
	})
	if err != nil {
		return nil, err
	}

	if err := s.attachTechnicians(ctx, interventions); err != nil {
		return nil, err
	}
	return interventions, nil
}

func (s *InterventionService) Upcoming(ctx context.Context, principal model.Principal) ([]model.UpcomingIntervention, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.interventionRepo.Upcoming(ctx, time.Now(), 5)
}

// Stats returns intervention counts for the trailing twelve months, one row
// per calendar month in January..December order.
func (s *InterventionService) Stats(ctx context.Context, principal model.Principal) ([]model.MonthlyStat, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	since := time.Now().AddDate(-1, 0, 0)
	rows, err := s.interventionRepo.MonthlyCounts(ctx, since)
	if err != nil {
		return nil, err
	}

	return BuildMonthlyStats(rows), nil
}

// BuildMonthlyStats buckets aggregation rows into the fixed chart shape.
// Type names starting with "maint" count as maintenance, names starting with
// "repa"/"répa" as repair; anything else is ignored by the chart.
func BuildMonthlyStats(rows []repository.MonthlyTypeCount) []model.MonthlyStat {
	stats := make([]model.MonthlyStat, 12)
	for i := range stats {
		stats[i].Month = time.Month(i + 1).String()
	}

	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		bucket := &stats[row.Month-1]
		name := strings.ToLower(row.TypeName)
		switch {
		case strings.HasPrefix(name, "maint"):
			bucket.Maintenance += row.Count
		case strings.HasPrefix(name, "repa"), strings.HasPrefix(name, "répa"):
			bucket.Repair += row.Count
		}
	}

	return stats
}

func (s *InterventionService) ensureTechnician(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidInput
		}
		return err
	}
	if !user.Roles.Has(model.RoleTechnician) {
		return ErrInvalidInput
	}
	return nil
}

func (s *InterventionService) attachTechnicians(ctx context.Context, interventions []model.Intervention) error {
	var ids []int64
	for _, intervention := range interventions {
		if intervention.TechnicianID != nil {
			ids = append(ids, *intervention.TechnicianID)
		}
	}

	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range interventions {
		if interventions[i].TechnicianID == nil {
			continue
		}
		if user, ok := users[*interventions[i].TechnicianID]; ok {
			technician := user.AsTechnician()
			interventions[i].Technician = &technician
		}
	}

	return nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("invalid time format")
}

func parseDateRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", strings.TrimSpace(fromRaw))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse("2006-01-02", strings.TrimSpace(toRaw))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("range end before start")
	}
	return from, to, nil
}
