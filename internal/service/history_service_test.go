package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"imagify/internal/errors"
	"imagify/internal/model"
)

func TestHistoryService_Summary(t *testing.T) {
	gens := new(MockGenerationRepository)
	recent := []model.Generation{
		{ID: uuid.New(), UserID: 1, Prompt: "newest"},
		{ID: uuid.New(), UserID: 1, Prompt: "older"},
	}
	gens.On("CountByUser", mock.Anything, uint(1)).Return(int64(12), nil)
	gens.On("RecentByUser", mock.Anything, uint(1), recentHistoryLimit).Return(recent, nil)
	gens.On("DistinctStylesByUser", mock.Anything, uint(1)).Return(int64(3), nil)

	svc := NewHistoryService(gens, nil)
	summary, err := svc.Summary(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), summary.TotalGenerations)
	assert.Equal(t, int64(3), summary.UniqueStyles)
	assert.Equal(t, recent, summary.Recent)
	gens.AssertExpectations(t)
}

func TestHistoryService_GetScopedToOwner(t *testing.T) {
	owner := uint(1)
	stranger := uint(2)
	genID := uuid.New()
	record := &model.Generation{ID: genID, UserID: owner, Prompt: "a cute cat"}

	gens := new(MockGenerationRepository)
	gens.On("FindByIDForUser", mock.Anything, genID, owner).Return(record, nil)
	// The repository query itself filters on user_id, so a foreign caller
	// sees record-not-found rather than someone else's artifact.
	gens.On("FindByIDForUser", mock.Anything, genID, stranger).Return(nil, gorm.ErrRecordNotFound)

	svc := NewHistoryService(gens, nil)

	got, err := svc.Get(context.Background(), genID.String(), owner)
	assert.NoError(t, err)
	assert.Equal(t, record, got)

	_, err = svc.Get(context.Background(), genID.String(), stranger)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestHistoryService_GetRejectsMalformedID(t *testing.T) {
	gens := new(MockGenerationRepository)
	svc := NewHistoryService(gens, nil)

	_, err := svc.Get(context.Background(), "not-a-uuid", 1)
	assert.ErrorIs(t, err, errors.ErrBadRequest)
	gens.AssertNotCalled(t, "FindByIDForUser", mock.Anything, mock.Anything, mock.Anything)
}
