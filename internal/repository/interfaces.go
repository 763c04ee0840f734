package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mobimama/mobimama-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByUsernameAndRole(ctx context.Context, username string, role model.Role) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.User, error)
	Count(ctx context.Context) (int, error)
}

type ClinicRepository interface {
	Create(ctx context.Context, clinic *model.Clinic) error
	Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	Update(ctx context.Context, clinic *model.Clinic) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Clinic, error)
	Count(ctx context.Context) (int, error)
}

type TipRepository interface {
	Create(ctx context.Context, tip *model.Tip) error
	Get(ctx context.Context, id uuid.UUID) (*model.Tip, error)
	Update(ctx context.Context, tip *model.Tip) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Tip, error)
	ListByLanguage(ctx context.Context, language string) ([]*model.Tip, error)
	ListNewest(ctx context.Context, limit int) ([]*model.Tip, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, appt *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	ListByMotherName(ctx context.Context, motherName string) ([]*model.Appointment, error)
	Count(ctx context.Context) (int, error)
}
