package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"imagify/internal/errors"
	"imagify/internal/model"
)

// GenerationRepository defines generation-history persistence operations.
type GenerationRepository interface {
	// CreateWithDebit inserts the generation record and debits one credit
	// from its owner as a single transaction. Neither write is durable
	// without the other. Returns the balance after the debit, or
	// errors.ErrInsufficientCredit when the balance was already exhausted
	// (in which case no record is created).
	CreateWithDebit(ctx context.Context, gen *model.Generation) (int, error)

	CountByUser(ctx context.Context, userID uint) (int64, error)
	RecentByUser(ctx context.Context, userID uint, limit int) ([]model.Generation, error)
	DistinctStylesByUser(ctx context.Context, userID uint) (int64, error)
	FindByIDForUser(ctx context.Context, id uuid.UUID, userID uint) (*model.Generation, error)
}

type generationRepository struct {
	db *gorm.DB
}

// NewGenerationRepository creates a new generation repository.
func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepository{db: db}
}

func (r *generationRepository) CreateWithDebit(ctx context.Context, gen *model.Generation) (int, error) {
	var balance int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(gen).Error; err != nil {
			return err
		}
		users := &userRepository{db: tx}
		ok, err := users.DebitCredits(ctx, gen.UserID, 1)
		if err != nil {
			return err
		}
		if !ok {
			// Rolls back the insert: a concurrent request spent the
			// last credit after the advisory check passed.
			return errors.ErrInsufficientCredit
		}
		return tx.Model(&model.User{}).
			Where("id = ?", gen.UserID).
			Select("credits").Scan(&balance).Error
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *generationRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Generation{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *generationRepository) RecentByUser(ctx context.Context, userID uint, limit int) ([]model.Generation, error) {
	var gens []model.Generation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&gens).Error; err != nil {
		return nil, err
	}
	return gens, nil
}

func (r *generationRepository) DistinctStylesByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Generation{}).
		Where("user_id = ? AND style <> ''", userID).
		Distinct("style").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByIDForUser scopes the lookup to the owning user. A record owned by
// someone else is indistinguishable from a missing one.
func (r *generationRepository) FindByIDForUser(ctx context.Context, id uuid.UUID, userID uint) (*model.Generation, error) {
	var gen model.Generation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&gen).Error; err != nil {
		return nil, err
	}
	return &gen, nil
}
