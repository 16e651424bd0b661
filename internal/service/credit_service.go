package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"imagify/internal/cache"
	"imagify/internal/errors"
	"imagify/internal/model"
	"imagify/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// CreditService exposes ledger reads. The binding debit happens inside the
// generation transaction; this service only answers "who is this user and
// can they afford a generation right now".
type CreditService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetBalance(ctx context.Context, id uint) (int, *model.User, error)
	// CheckAvailable is the advisory pre-check: it gives a fast
	// InsufficientCredit before any provider spend, but the atomic debit
	// remains the decision that counts.
	CheckAvailable(ctx context.Context, id uint) error
	// Invalidate drops the cached record after any credit mutation.
	Invalidate(ctx context.Context, id uint)
}

type creditService struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewCreditService builds a CreditService with repository and cache.
func NewCreditService(users repository.UserRepository, cache *cache.Client) CreditService {
	return &creditService{users: users, cache: cache}
}

func (s *creditService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser retrieves a user by ID with cache-aside reads.
func (s *creditService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

func (s *creditService) GetBalance(ctx context.Context, id uint) (int, *model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return 0, nil, err
	}
	return user.Credits, user, nil
}

func (s *creditService) CheckAvailable(ctx context.Context, id uint) error {
	balance, _, err := s.GetBalance(ctx, id)
	if err != nil {
		return err
	}
	if balance <= 0 {
		return errors.ErrInsufficientCredit
	}
	return nil
}

func (s *creditService) Invalidate(ctx context.Context, id uint) {
	s.cache.Delete(ctx, s.cacheKey(id))
}
