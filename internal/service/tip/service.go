package tip

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/repository"
)

const (
	listCacheTTL     = 5 * time.Minute
	listCacheCleanup = 15 * time.Minute
	dashboardTips    = 5
)

type TipServicer interface {
	CreateTip(ctx context.Context, req *model.CreateTipRequest) (*model.Tip, error)
	GetTip(ctx context.Context, id uuid.UUID) (*model.Tip, error)
	UpdateTip(ctx context.Context, id uuid.UUID, req *model.UpdateTipRequest) (*model.Tip, error)
	DeleteTip(ctx context.Context, id uuid.UUID) error
	ListTips(ctx context.Context) ([]*model.Tip, error)
	ListPublicTips(ctx context.Context, language string) ([]*model.Tip, error)
	ListDashboardTips(ctx context.Context) ([]*model.Tip, error)
}

type Service struct {
	repo repository.TipRepository
	// listCache holds the public per-language listings; any tip write drops it.
	listCache *cache.Cache
}

func NewService(repo repository.TipRepository) *Service {
	return &Service{
		repo:      repo,
		listCache: cache.New(listCacheTTL, listCacheCleanup),
	}
}

func (s *Service) CreateTip(ctx context.Context, req *model.CreateTipRequest) (*model.Tip, error) {
	tip := &model.Tip{
		Title:    req.Title,
		Content:  req.Content,
		Language: req.Language,
	}
	if req.AudioFilename != "" {
		tip.AudioFilename = &req.AudioFilename
	}

	if err := s.repo.Create(ctx, tip); err != nil {
		return nil, fmt.Errorf("failed to create tip: %w", err)
	}

	s.listCache.Flush()
	return tip, nil
}

func (s *Service) GetTip(ctx context.Context, id uuid.UUID) (*model.Tip, error) {
	return s.repo.Get(ctx, id)
}

// UpdateTip pre-fills from the stored row and applies only the fields the
// request carries.
func (s *Service) UpdateTip(ctx context.Context, id uuid.UUID, req *model.UpdateTipRequest) (*model.Tip, error) {
	tip, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		tip.Title = *req.Title
	}
	if req.Content != nil {
		tip.Content = *req.Content
	}
	if req.Language != nil {
		tip.Language = *req.Language
	}
	if req.AudioFilename != nil {
		if *req.AudioFilename == "" {
			tip.AudioFilename = nil
		} else {
			tip.AudioFilename = req.AudioFilename
		}
	}

	if err := s.repo.Update(ctx, tip); err != nil {
		return nil, err
	}

	s.listCache.Flush()
	return tip, nil
}

func (s *Service) DeleteTip(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.listCache.Flush()
	return nil
}

func (s *Service) ListTips(ctx context.Context) ([]*model.Tip, error) {
	return s.repo.List(ctx)
}

// ListPublicTips returns the language-filtered public listing, newest first.
func (s *Service) ListPublicTips(ctx context.Context, language string) ([]*model.Tip, error) {
	if cached, ok := s.listCache.Get(language); ok {
		return cached.([]*model.Tip), nil
	}

	tips, err := s.repo.ListByLanguage(ctx, language)
	if err != nil {
		return nil, err
	}

	s.listCache.Set(language, tips, cache.DefaultExpiration)
	return tips, nil
}

// ListDashboardTips returns the short newest-first preview shown on the
// mother dashboard.
func (s *Service) ListDashboardTips(ctx context.Context) ([]*model.Tip, error) {
	return s.repo.ListNewest(ctx, dashboardTips)
}
