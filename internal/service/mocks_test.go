package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"imagify/internal/model"
	"imagify/internal/provider"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByNameCaseInsensitive(ctx context.Context, name string) (*model.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) RecordLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, id uint, token string, expiresAt time.Time) error {
	args := m.Called(ctx, id, token, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ResetPasswordByToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error) {
	args := m.Called(ctx, token, passwordHash, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) DebitCredits(ctx context.Context, id uint, amount int) (bool, error) {
	args := m.Called(ctx, id, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdatePrefs(ctx context.Context, id uint, prefs model.NotificationPrefs) error {
	args := m.Called(ctx, id, prefs)
	return args.Error(0)
}

// MockGenerationRepository is a mock implementation of repository.GenerationRepository.
type MockGenerationRepository struct {
	mock.Mock
}

func (m *MockGenerationRepository) CreateWithDebit(ctx context.Context, gen *model.Generation) (int, error) {
	args := m.Called(ctx, gen)
	return args.Int(0), args.Error(1)
}

func (m *MockGenerationRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGenerationRepository) RecentByUser(ctx context.Context, userID uint, limit int) ([]model.Generation, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Generation), args.Error(1)
}

func (m *MockGenerationRepository) DistinctStylesByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGenerationRepository) FindByIDForUser(ctx context.Context, id uuid.UUID, userID uint) (*model.Generation, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Generation), args.Error(1)
}

// MockImageGenerator counts provider calls so tests can assert the provider
// was never contacted on a blocked workflow.
type MockImageGenerator struct {
	mock.Mock
	GenerateCalls int
}

func (m *MockImageGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	m.GenerateCalls++
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockMediaTransformer is a mock implementation of provider.MediaTransformer.
type MockMediaTransformer struct {
	mock.Mock
}

func (m *MockMediaTransformer) Transform(ctx context.Context, sourceURL string, kind provider.TransformKind, opts provider.TransformOptions) (string, error) {
	args := m.Called(ctx, sourceURL, kind, opts)
	return args.String(0), args.Error(1)
}
