package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"imagify/internal/cache"
	"imagify/internal/errors"
	"imagify/internal/model"
	"imagify/internal/repository"
)

const (
	historyCacheTTL    = time.Minute
	recentHistoryLimit = 10
)

// HistorySummary is the per-user generation overview.
type HistorySummary struct {
	TotalGenerations int64              `json:"total_generations"`
	Recent           []model.Generation `json:"recent_generations"`
	UniqueStyles     int64              `json:"unique_styles"`
}

// HistoryService exposes a user's generation history.
type HistoryService interface {
	Summary(ctx context.Context, userID uint) (*HistorySummary, error)
	Get(ctx context.Context, id string, userID uint) (*model.Generation, error)
	// Invalidate drops the cached summary after a new generation lands.
	Invalidate(ctx context.Context, userID uint)
}

type historyService struct {
	generations repository.GenerationRepository
	cache       *cache.Client
}

// NewHistoryService creates a new history service.
func NewHistoryService(generations repository.GenerationRepository, cache *cache.Client) HistoryService {
	return &historyService{generations: generations, cache: cache}
}

func (s *historyService) cacheKey(userID uint) string {
	return fmt.Sprintf("history:%d", userID)
}

func (s *historyService) Summary(ctx context.Context, userID uint) (*HistorySummary, error) {
	var cached HistorySummary
	if s.cache.GetJSON(ctx, s.cacheKey(userID), &cached) {
		return &cached, nil
	}

	total, err := s.generations.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count generations: %w", err)
	}
	recent, err := s.generations.RecentByUser(ctx, userID, recentHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("recent generations: %w", err)
	}
	styles, err := s.generations.DistinctStylesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("distinct styles: %w", err)
	}

	summary := &HistorySummary{
		TotalGenerations: total,
		Recent:           recent,
		UniqueStyles:     styles,
	}
	s.cache.SetJSON(ctx, s.cacheKey(userID), summary, historyCacheTTL)
	return summary, nil
}

// Get returns a single record scoped to its owner. Foreign-owned records are
// reported as not found, never as forbidden.
func (s *historyService) Get(ctx context.Context, id string, userID uint) (*model.Generation, error) {
	genID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid generation id", errors.ErrBadRequest)
	}
	gen, err := s.generations.FindByIDForUser(ctx, genID, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return gen, nil
}

func (s *historyService) Invalidate(ctx context.Context, userID uint) {
	s.cache.Delete(ctx, s.cacheKey(userID))
}
