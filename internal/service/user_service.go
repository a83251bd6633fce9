package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"intervention-service/internal/auth"
	"intervention-service/internal/model"
	"intervention-service/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	userRepo *repository.UserRepository
	issuer   *auth.Issuer
}

func NewUserService(userRepo *repository.UserRepository, issuer *auth.Issuer) *UserService {
	return &UserService{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

// Login validates credentials and returns a signed access token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issuer.Issue(user)
}

type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Roles     []string
}

func (s *UserService) Create(ctx context.Context, principal model.Principal, input CreateUserInput) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}
	if len(input.Password) < 8 {
		return nil, ErrInvalidInput
	}

	roles := input.Roles
	if len(roles) == 0 {
		roles = []string{model.RoleTechnician}
	}
	for _, role := range roles {
		if role != model.RoleAdmin && role != model.RoleTechnician {
			return nil, ErrInvalidInput
		}
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     email,
		Password:  string(hash),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Roles:     model.RoleList(roles),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, principal model.Principal, id int64) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context, principal model.Principal) ([]model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.userRepo.List(ctx)
}

// ListTechnicians returns the reduced representation used by the zone editor
// and planning screens.
func (s *UserService) ListTechnicians(ctx context.Context, principal model.Principal) ([]model.Technician, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	users, err := s.userRepo.ListByRole(ctx, model.RoleTechnician)
	if err != nil {
		return nil, err
	}

	technicians := make([]model.Technician, 0, len(users))
	for i := range users {
		technicians = append(technicians, users[i].AsTechnician())
	}
	return technicians, nil
}

type UpdateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Roles     []string
	Password  string
}

func (s *UserService) Update(ctx context.Context, principal model.Principal, id int64, input UpdateUserInput) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Email != "" {
		email := strings.TrimSpace(strings.ToLower(input.Email))
		if !strings.Contains(email, "@") {
			return nil, ErrInvalidInput
		}
		if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing.ID != id {
			return nil, ErrConflict
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = email
	}
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)

	if len(input.Roles) > 0 {
		for _, role := range input.Roles {
			if role != model.RoleAdmin && role != model.RoleTechnician {
				return nil, ErrInvalidInput
			}
		}
		user.Roles = model.RoleList(input.Roles)
	}

	if input.Password != "" {
		if len(input.Password) < 8 {
			return nil, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Delete(ctx context.Context, principal model.Principal, id int64) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if principal.UserID == id {
		return ErrConflict
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}
