package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"intervention-service/internal/model"
	"intervention-service/internal/repository"
	"intervention-service/internal/utils"
)

type PlanningService struct {
	planningRepo     *repository.PlanningRepository
	typeRepo         *repository.InterventionTypeRepository
	interventionRepo *repository.InterventionRepository
	userRepo         *repository.UserRepository
}

func NewPlanningService(
	planningRepo *repository.PlanningRepository,
	typeRepo *repository.InterventionTypeRepository,
	interventionRepo *repository.InterventionRepository,
	userRepo *repository.UserRepository,
) *PlanningService {
	return &PlanningService{
		planningRepo:     planningRepo,
		typeRepo:         typeRepo,
		interventionRepo: interventionRepo,
		userRepo:         userRepo,
	}
}

func (s *PlanningService) CreateModel(ctx context.Context, principal model.Principal, name string) (*model.PlanningModel, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	planningModel := &model.PlanningModel{Name: name}
	if err := s.planningRepo.CreateModel(ctx, planningModel); err != nil {
		return nil, err
	}
	return planningModel, nil
}

func (s *PlanningService) ListModels(ctx context.Context, principal model.Principal) ([]model.PlanningModel, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.planningRepo.ListModels(ctx)
}

func (s *PlanningService) GetModel(ctx context.Context, principal model.Principal, id int64) (*model.PlanningModel, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	planningModel, err := s.planningRepo.GetModelByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return planningModel, nil
}

func (s *PlanningService) DeleteModel(ctx context.Context, principal model.Principal, id int64) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.planningRepo.DeleteModel(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

type CreateSlotInput struct {
	PlanningModelID    int64
	InterventionTypeID int64
	InterventionTime   string
}

func (s *PlanningService) CreateSlot(ctx context.Context, principal model.Principal, input CreateSlotInput) (*model.ModelIntervention, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if _, err := s.planningRepo.GetModelByID(ctx, input.PlanningModelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInput
		}
		return nil, err
	}

	interventionType, err := s.typeRepo.GetByID(ctx, input.InterventionTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInput
		}
		return nil, err
	}

	normalized, err := utils.NormalizeClockTime(input.InterventionTime)
	if err != nil {
		return nil, ErrInvalidInput
	}

	slot := &model.ModelIntervention{
		PlanningModelID:    input.PlanningModelID,
		InterventionTypeID: interventionType.ID,
		InterventionTime:   normalized,
	}

	if err := s.planningRepo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}

	slot.InterventionType = interventionType
	return slot, nil
}

func (s *PlanningService) DeleteSlot(ctx context.Context, principal model.Principal, id int64) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.planningRepo.DeleteSlot(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

type GenerateInput struct {
	PlanningModelID int64
	TechnicianIDs   []int64
	From            string
	To              string
}

// Generate applies a planning model over a date range: one intervention per
// day, technician and model slot. Returns the number of created
// interventions.
func (s *PlanningService) Generate(ctx context.Context, principal model.Principal, input GenerateInput) (int, error) {
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
	if to.Sub(from).Hours() > 366*24 {
		return 0, ErrInvalidInput
	}

	planningModel, err := s.planningRepo.GetModelByID(ctx, input.PlanningModelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if len(planningModel.ModelInterventions) == 0 {
		return 0, ErrConflict
	}

	technicians, err := s.userRepo.ListByIDs(ctx, input.TechnicianIDs)
	if err != nil {
		return 0, err
	}
	for _, id := range input.TechnicianIDs {
		user, ok := technicians[id]
		if !ok || !user.Roles.Has(model.RoleTechnician) {
			return 0, ErrInvalidInput
		}
	}

	interventions, err := ExpandSchedule(planningModel.ModelInterventions, input.TechnicianIDs, from, to)
	if err != nil {
		return 0, ErrInvalidInput
	}

	if err := s.interventionRepo.CreateBatch(ctx, interventions); err != nil {
		return 0, err
	}

	return len(interventions), nil
}
