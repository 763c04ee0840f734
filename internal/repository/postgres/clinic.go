package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/repository"
	"github.com/mobimama/mobimama-api/pkg/apperror"
)

type clinicRepository struct {
	BaseRepository
}

func NewClinicRepository(base BaseRepository) repository.ClinicRepository {
	return &clinicRepository{base}
}

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) error {
	query := `
		INSERT INTO clinics (id, name, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	clinic.ID = uuid.New()
	clinic.CreatedAt = time.Now()
	clinic.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		clinic.ID,
		clinic.Name,
		clinic.Address,
		clinic.Phone,
		clinic.CreatedAt,
		clinic.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clinic: %w", err)
	}

	return nil
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := `SELECT * FROM clinics WHERE id = $1`

	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("clinic")
		}
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}

	return &clinic, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	query := `
		UPDATE clinics SET
			name = $1,
			address = $2,
			phone = $3,
			updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		clinic.Name,
		clinic.Address,
		clinic.Phone,
		time.Now(),
		clinic.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clinic: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("clinic")
	}

	return nil
}

// Delete removes a clinic and its appointments in one transaction. The
// cascade mirrors the schema's ON DELETE CASCADE so callers see consistent
// behavior even against databases created without the constraint.
func (r *clinicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM appointments WHERE clinic_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete clinic appointments: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM clinics WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete clinic: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperror.NotFound("clinic")
		}

		return nil
	})
}

func (r *clinicRepository) List(ctx context.Context) ([]*model.Clinic, error) {
	query := `SELECT * FROM clinics ORDER BY name`

	var clinics []*model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}

	return clinics, nil
}

func (r *clinicRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM clinics`); err != nil {
		return 0, fmt.Errorf("failed to count clinics: %w", err)
	}
	return count, nil
}
