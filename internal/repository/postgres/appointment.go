package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/repository"
	"github.com/mobimama/mobimama-api/pkg/apperror"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, mother_name, phone, clinic_id, clinic_name, date, notes, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	appt.ID = uuid.New()
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = time.Now()
	if appt.Status == "" {
		appt.Status = model.AppointmentStatusPending
	}

	_, err := r.db.ExecContext(ctx, query,
		appt.ID,
		appt.MotherName,
		appt.Phone,
		appt.ClinicID,
		appt.ClinicName,
		appt.Date,
		appt.Notes,
		appt.Status,
		appt.CreatedAt,
		appt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE id = $1`

	var appt model.Appointment
	if err := r.db.GetContext(ctx, &appt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("appointment")
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	return &appt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	query := `
		UPDATE appointments SET
			mother_name = $1,
			phone = $2,
			clinic_id = $3,
			clinic_name = $4,
			date = $5,
			notes = $6,
			status = $7,
			updated_at = $8
		WHERE id = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		appt.MotherName,
		appt.Phone,
		appt.ClinicID,
		appt.ClinicName,
		appt.Date,
		appt.Notes,
		appt.Status,
		time.Now(),
		appt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("appointment")
	}

	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("appointment")
	}

	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE 1=1`
	args := []interface{}{}

	if filters != nil {
		if filters.ClinicName != "" {
			query += fmt.Sprintf(" AND clinic_name = $%d", len(args)+1)
			args = append(args, filters.ClinicName)
		}
		if filters.Date != "" {
			query += fmt.Sprintf(" AND date = $%d", len(args)+1)
			args = append(args, filters.Date)
		}
	}

	query += " ORDER BY created_at DESC"

	var appts []*model.Appointment
	if err := r.db.SelectContext(ctx, &appts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	return appts, nil
}

func (r *appointmentRepository) ListByMotherName(ctx context.Context, motherName string) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE mother_name = $1 ORDER BY created_at DESC`

	var appts []*model.Appointment
	if err := r.db.SelectContext(ctx, &appts, query, motherName); err != nil {
		return nil, fmt.Errorf("failed to list appointments by mother name: %w", err)
	}

	return appts, nil
}

func (r *appointmentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM appointments`); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}
