package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"imagify/internal/errors"
	"imagify/internal/model"
)

func newGenerationFixture(users *MockUserRepository, gens *MockGenerationRepository, generator *MockImageGenerator) GenerationService {
	credits := NewCreditService(users, nil)
	history := NewHistoryService(gens, nil)
	return NewGenerationService(gens, credits, history, generator)
}

func TestGenerationService_SuccessSpendsExactlyOneCredit(t *testing.T) {
	users := new(MockUserRepository)
	gens := new(MockGenerationRepository)
	generator := new(MockImageGenerator)

	users.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Credits: 1}, nil)
	generator.On("Generate", mock.Anything, "a cute cat").Return([]byte("png"), nil)
	gens.On("CreateWithDebit", mock.Anything, mock.MatchedBy(func(g *model.Generation) bool {
		return g.UserID == 1 && g.Prompt == "a cute cat" && strings.HasPrefix(g.ImageURL, "data:image/png;base64,")
	})).Return(0, nil)

	svc := newGenerationFixture(users, gens, generator)
	result, err := svc.Generate(context.Background(), 1, "a cute cat", "")

	assert.NoError(t, err)
	assert.Equal(t, 0, result.CreditBalance)
	assert.Equal(t, 1, generator.GenerateCalls)
	gens.AssertNumberOfCalls(t, "CreateWithDebit", 1)
	users.AssertExpectations(t)
	gens.AssertExpectations(t)
	generator.AssertExpectations(t)
}

func TestGenerationService_ExhaustedBalanceNeverReachesProvider(t *testing.T) {
	users := new(MockUserRepository)
	gens := new(MockGenerationRepository)
	generator := new(MockImageGenerator)

	users.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Credits: 0}, nil)

	svc := newGenerationFixture(users, gens, generator)
	_, err := svc.Generate(context.Background(), 1, "anything", "")

	assert.ErrorIs(t, err, errors.ErrInsufficientCredit)
	assert.Equal(t, 0, generator.GenerateCalls)
	gens.AssertNotCalled(t, "CreateWithDebit", mock.Anything, mock.Anything)
}

func TestGenerationService_EmptyPromptFailsBeforeAnything(t *testing.T) {
	users := new(MockUserRepository)
	gens := new(MockGenerationRepository)
	generator := new(MockImageGenerator)

	svc := newGenerationFixture(users, gens, generator)
	_, err := svc.Generate(context.Background(), 1, "   ", "")

	assert.ErrorIs(t, err, errors.ErrBadRequest)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	assert.Equal(t, 0, generator.GenerateCalls)
}

func TestGenerationService_ProviderFailuresLeaveLedgerUntouched(t *testing.T) {
	providerErrs := []error{
		errors.ErrProviderAuth,
		errors.ErrProviderRateLimited,
		errors.ErrProviderBadRequest,
		errors.ErrProviderUnavailable,
		errors.ErrProviderTimeout,
	}

	for _, provErr := range providerErrs {
		t.Run(provErr.Error(), func(t *testing.T) {
			users := new(MockUserRepository)
			gens := new(MockGenerationRepository)
			generator := new(MockImageGenerator)

			users.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Credits: 3}, nil)
			generator.On("Generate", mock.Anything, "prompt").Return(nil, provErr)

			svc := newGenerationFixture(users, gens, generator)
			_, err := svc.Generate(context.Background(), 1, "prompt", "")

			assert.ErrorIs(t, err, provErr)
			// No record, no debit.
			gens.AssertNotCalled(t, "CreateWithDebit", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerationService_ConcurrentLastCredit(t *testing.T) {
	// Both requests pass the advisory check at balance=1, but the atomic
	// create+debit only lets one through; the loser rolls back and gets
	// InsufficientCredit.
	users := new(MockUserRepository)
	gens := new(MockGenerationRepository)
	generator := new(MockImageGenerator)

	users.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Credits: 1}, nil)
	generator.On("Generate", mock.Anything, mock.Anything).Return([]byte("png"), nil)
	gens.On("CreateWithDebit", mock.Anything, mock.Anything).Return(0, nil).Once()
	gens.On("CreateWithDebit", mock.Anything, mock.Anything).Return(0, errors.ErrInsufficientCredit).Once()

	svc := newGenerationFixture(users, gens, generator)

	first, firstErr := svc.Generate(context.Background(), 1, "prompt one", "")
	_, secondErr := svc.Generate(context.Background(), 1, "prompt two", "")

	assert.NoError(t, firstErr)
	assert.Equal(t, 0, first.CreditBalance)
	assert.ErrorIs(t, secondErr, errors.ErrInsufficientCredit)
	gens.AssertNumberOfCalls(t, "CreateWithDebit", 2)
}

func TestGenerationService_StyleTagIsRecorded(t *testing.T) {
	users := new(MockUserRepository)
	gens := new(MockGenerationRepository)
	generator := new(MockImageGenerator)

	users.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Credits: 5}, nil)
	generator.On("Generate", mock.Anything, "castle").Return([]byte("png"), nil)
	gens.On("CreateWithDebit", mock.Anything, mock.MatchedBy(func(g *model.Generation) bool {
		return g.Style == "watercolor"
	})).Return(4, nil)

	svc := newGenerationFixture(users, gens, generator)
	result, err := svc.Generate(context.Background(), 2, "castle", "watercolor")

	assert.NoError(t, err)
	assert.Equal(t, 4, result.CreditBalance)
}
