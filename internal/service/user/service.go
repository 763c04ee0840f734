package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/repository"
	"github.com/mobimama/mobimama-api/pkg/apperror"
	"github.com/mobimama/mobimama-api/pkg/security"
)

const bcryptCost = 12

// UserServicer is the admin-panel user management surface.
type UserServicer interface {
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context) ([]*model.User, error)
	DashboardCounts(ctx context.Context) (*model.DashboardCounts, error)
}

type Service struct {
	users        repository.UserRepository
	clinics      repository.ClinicRepository
	appointments repository.AppointmentRepository
	hasher       security.PasswordHasher
}

func NewService(users repository.UserRepository, clinics repository.ClinicRepository, appointments repository.AppointmentRepository) *Service {
	return &Service{
		users:        users,
		clinics:      clinics,
		appointments: appointments,
		hasher:       security.NewBcryptHasher(bcryptCost),
	}
}

// CreateUser provisions an account from the admin panel. Unlike
// self-registration this may create any role, admin included.
func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperror.Validation("username is required")
	}
	if !model.ValidRole(model.Role(req.Role)) {
		return nil, apperror.Validation("unknown role")
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperror.Validation("username already taken")
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordLength) {
			return nil, apperror.Validation("password too short")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.Role(req.Role),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.Get(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, apperror.Validation("username is required")
		}
		if username != user.Username {
			if _, err := s.users.GetByUsername(ctx, username); err == nil {
				return nil, apperror.Validation("username already taken")
			} else if !apperror.IsNotFound(err) {
				return nil, err
			}
		}
		user.Username = username
	}
	if req.Role != nil {
		if !model.ValidRole(model.Role(*req.Role)) {
			return nil, apperror.Validation("unknown role")
		}
		user.Role = model.Role(*req.Role)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

// DashboardCounts aggregates the admin landing page totals.
func (s *Service) DashboardCounts(ctx context.Context) (*model.DashboardCounts, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	clinics, err := s.clinics.Count(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointments.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &model.DashboardCounts{
		Users:        users,
		Clinics:      clinics,
		Appointments: appointments,
	}, nil
}
