package service

import (
	"context"
	"errors"
	"regexp"

	"gorm.io/gorm"

	"intervention-service/internal/model"
	"intervention-service/internal/repository"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type ZoneService struct {
	zoneRepo *repository.ZoneRepository
	userRepo *repository.UserRepository
}

func NewZoneService(zoneRepo *repository.ZoneRepository, userRepo *repository.UserRepository) *ZoneService {
	return &ZoneService{
		zoneRepo: zoneRepo,
		userRepo: userRepo,
	}
}

type ZoneInput struct {
	Name         string
	Color        string
	Coordinates  []model.Coordinate
	TechnicianID *int64
}

func (s *ZoneService) validateInput(ctx context.Context, input ZoneInput) error {
	if input.Name == "" {
		return ErrInvalidInput
	}
	if !hexColorPattern.MatchString(input.Color) {
		return ErrInvalidInput
	}
	// A polygon region needs at least three vertices. Ring winding and
	// closure are whatever the drawing surface produced.
	if len(input.Coordinates) < 3 {
		return ErrInvalidInput
	}

	if input.TechnicianID != nil {
		technician, err := s.userRepo.GetByID(ctx, *input.TechnicianID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidInput
			}
			return err
		}
		if !technician.Roles.Has(model.RoleTechnician) {
			return ErrInvalidInput
		}
	}

	return nil
}

func (s *ZoneService) Create(ctx context.Context, principal model.Principal, input ZoneInput) (*model.Zone, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	zone := &model.Zone{
		Name:         input.Name,
		Color:        input.Color,
		Coordinates:  input.Coordinates,
		TechnicianID: input.TechnicianID,
	}

	if err := s.zoneRepo.Create(ctx, zone); err != nil {
		return nil, err
	}

	return zone, nil
}

func (s *ZoneService) List(ctx context.Context, principal model.Principal) ([]model.Zone, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	zones, err := s.zoneRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.attachTechnicians(ctx, zones); err != nil {
		return nil, err
	}

	return zones, nil
}

func (s *ZoneService) Update(ctx context.Context, principal model.Principal, id int64, input ZoneInput) (*model.Zone, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	zone, err := s.zoneRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	zone.Name = input.Name
	zone.Color = input.Color
	zone.Coordinates = input.Coordinates
	zone.TechnicianID = input.TechnicianID

	if err := s.zoneRepo.Update(ctx, zone); err != nil {
		return nil, err
	}

	zones := []model.Zone{*zone}
	if err := s.attachTechnicians(ctx, zones); err != nil {
		return nil, err
	}

	return &zones[0], nil
}

func (s *ZoneService) Delete(ctx context.Context, principal model.Principal, id int64) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.zoneRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

func (s *ZoneService) attachTechnicians(ctx context.Context, zones []model.Zone) error {
	var ids []int64
	for _, zone := range zones {
		if zone.TechnicianID != nil {
			ids = append(ids, *zone.TechnicianID)
		}
	}

	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range zones {
		if zones[i].TechnicianID == nil {
			continue
		}
		if user, ok := users[*zones[i].TechnicianID]; ok {
			technician := user.AsTechnician()
			zones[i].Technician = &technician
		}
	}

	return nil
}
