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

type tipRepository struct {
	BaseRepository
}

func NewTipRepository(base BaseRepository) repository.TipRepository {
	return &tipRepository{base}
}

func (r *tipRepository) Create(ctx context.Context, tip *model.Tip) error {
	query := `
		INSERT INTO tips (id, title, content, language, audio_filename, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	tip.ID = uuid.New()
	tip.CreatedAt = time.Now()
	tip.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		tip.ID,
		tip.Title,
		tip.Content,
		tip.Language,
		tip.AudioFilename,
		tip.CreatedAt,
		tip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tip: %w", err)
	}

	return nil
}

func (r *tipRepository) Get(ctx context.Context, id uuid.UUID) (*model.Tip, error) {
	query := `SELECT * FROM tips WHERE id = $1`

	var tip model.Tip
	if err := r.db.GetContext(ctx, &tip, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("tip")
		}
		return nil, fmt.Errorf("failed to get tip: %w", err)
	}

	return &tip, nil
}

func (r *tipRepository) Update(ctx context.Context, tip *model.Tip) error {
	query := `
		UPDATE tips SET
			title = $1,
			content = $2,
			language = $3,
			audio_filename = $4,
			updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		tip.Title,
		tip.Content,
		tip.Language,
		tip.AudioFilename,
		time.Now(),
		tip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tip: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("tip")
	}

	return nil
}

func (r *tipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tip: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("tip")
	}

	return nil
}

func (r *tipRepository) List(ctx context.Context) ([]*model.Tip, error) {
	query := `SELECT * FROM tips ORDER BY created_at DESC`

	var tips []*model.Tip
	if err := r.db.SelectContext(ctx, &tips, query); err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}

	return tips, nil
}

func (r *tipRepository) ListByLanguage(ctx context.Context, language string) ([]*model.Tip, error) {
	query := `SELECT * FROM tips WHERE language = $1 ORDER BY created_at DESC`

	var tips []*model.Tip
	if err := r.db.SelectContext(ctx, &tips, query, language); err != nil {
		return nil, fmt.Errorf("failed to list tips by language: %w", err)
	}

	return tips, nil
}

func (r *tipRepository) ListNewest(ctx context.Context, limit int) ([]*model.Tip, error) {
	query := `SELECT * FROM tips ORDER BY created_at DESC LIMIT $1`

	var tips []*model.Tip
	if err := r.db.SelectContext(ctx, &tips, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list newest tips: %w", err)
	}

	return tips, nil
}
