package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mobimama/mobimama-api/internal/email"
	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/repository"
	"github.com/mobimama/mobimama-api/pkg/apperror"
	"github.com/mobimama/mobimama-api/pkg/logger"
)

type AppointmentServicer interface {
	BookForMother(ctx context.Context, username string, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	ListForMother(ctx context.Context, username string) ([]*model.Appointment, error)
}

type Service struct {
	repo     repository.AppointmentRepository
	clinics  repository.ClinicRepository
	notifier email.Notifier
	logger   *logger.Logger
}

func NewService(repo repository.AppointmentRepository, clinics repository.ClinicRepository, notifier email.Notifier, log *logger.Logger) *Service {
	if notifier == nil {
		notifier = email.Noop{}
	}
	return &Service{
		repo:     repo,
		clinics:  clinics,
		notifier: notifier,
		logger:   log,
	}
}

// BookForMother books on behalf of the signed-in mother. The mother name on
// the record is always the session username; anything the client sent in
// mother_name is ignored.
func (s *Service) BookForMother(ctx context.Context, username string, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	req.MotherName = username
	return s.Create(ctx, req)
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	appt := &model.Appointment{
		MotherName: req.MotherName,
		Phone:      req.Phone,
		ClinicName: req.ClinicName,
		Date:       req.Date,
		Notes:      req.Notes,
		Status:     model.AppointmentStatusPending,
	}

	if req.ClinicID != "" {
		clinicID, err := uuid.Parse(req.ClinicID)
		if err != nil {
			return nil, apperror.Validation("invalid clinic id")
		}
		if _, err := s.clinics.Get(ctx, clinicID); err != nil {
			return nil, err
		}
		appt.ClinicID = &clinicID
	}

	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if err := s.notifier.NotifyAppointmentBooked(appt); err != nil && s.logger != nil {
		s.logger.Warn("appointment notification failed", map[string]interface{}{
			"appointment_id": appt.ID.String(),
			"error":          err.Error(),
		})
	}

	return appt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MotherName != nil {
		appt.MotherName = *req.MotherName
	}
	if req.Phone != nil {
		appt.Phone = *req.Phone
	}
	if req.ClinicID != nil {
		if *req.ClinicID == "" {
			appt.ClinicID = nil
		} else {
			clinicID, err := uuid.Parse(*req.ClinicID)
			if err != nil {
				return nil, apperror.Validation("invalid clinic id")
			}
			if _, err := s.clinics.Get(ctx, clinicID); err != nil {
				return nil, err
			}
			appt.ClinicID = &clinicID
		}
	}
	if req.ClinicName != nil {
		appt.ClinicName = *req.ClinicName
	}
	if req.Date != nil {
		appt.Date = *req.Date
	}
	if req.Notes != nil {
		appt.Notes = *req.Notes
	}
	if req.Status != nil {
		appt.Status = model.AppointmentStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.repo.List(ctx, filters)
}

// ListForMother returns the bookings whose mother_name equals the given
// username. The match is a plain string comparison against the stored name,
// not a foreign key.
func (s *Service) ListForMother(ctx context.Context, username string) ([]*model.Appointment, error) {
	return s.repo.ListByMotherName(ctx, username)
}
