package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"intervention-service/internal/model"
	"intervention-service/internal/repository"
)

type InterventionTypeService struct {
	typeRepo *repository.InterventionTypeRepository
}

func NewInterventionTypeService(typeRepo *repository.InterventionTypeRepository) *InterventionTypeService {
	return &InterventionTypeService{typeRepo: typeRepo}
}

type InterventionTypeInput struct {
	Name          string
	Duration      string
	StartingPrice float64
}

func (s *InterventionTypeService) validate(input InterventionTypeInput) (*model.InterventionType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	duration, err := model.ParseClockDuration(input.Duration)
	if err != nil || duration == 0 {
		return nil, ErrInvalidInput
	}

	if input.StartingPrice < 0 {
		return nil, ErrInvalidInput
	}

	return &model.InterventionType{
		Name:          name,
		Duration:      duration,
		StartingPrice: input.StartingPrice,
	}, nil
}

func (s *InterventionTypeService) Create(ctx context.Context, principal model.Principal, input InterventionTypeInput) (*model.InterventionType, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	interventionType, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if err := s.typeRepo.Create(ctx, interventionType); err != nil {
		return nil, err
	}
	return interventionType, nil
}

func (s *InterventionTypeService) Get(ctx context.Context, principal model.Principal, id int64) (*model.InterventionType, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	interventionType, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return interventionType, nil
}

func (s *InterventionTypeService) List(ctx context.Context, principal model.Principal) ([]model.InterventionType, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.typeRepo.List(ctx)
}

func (s *InterventionTypeService) Update(ctx context.Context, principal model.Principal, id int64, input InterventionTypeInput) (*model.InterventionType, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	existing, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	validated, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	existing.Name = validated.Name
	existing.Duration = validated.Duration
	existing.StartingPrice = validated.StartingPrice

	if err := s.typeRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *InterventionTypeService) Delete(ctx context.Context, principal model.Principal, id int64) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.typeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
