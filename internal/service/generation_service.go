package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"imagify/internal/errors"
	"imagify/internal/model"
	"imagify/internal/provider"
	"imagify/internal/repository"
)

// GenerationResult is what a completed generation hands back to the caller.
type GenerationResult struct {
	GenerationID  uuid.UUID
	ImageURL      string
	CreditBalance int
}

// GenerationService runs the credit-gated text-to-image workflow.
type GenerationService interface {
	Generate(ctx context.Context, userID uint, prompt, style string) (*GenerationResult, error)
}

type generationService struct {
	generations repository.GenerationRepository
	credits     CreditService
	history     HistoryService
	generator   provider.ImageGenerator
}

// NewGenerationService creates a new generation service.
func NewGenerationService(
	generations repository.GenerationRepository,
	credits CreditService,
	history HistoryService,
	generator provider.ImageGenerator,
) GenerationService {
	return &generationService{
		generations: generations,
		credits:     credits,
		history:     history,
		generator:   generator,
	}
}

// Generate validates input, checks the balance, calls the provider, and then
// persists the record and debits one credit in a single transaction.
//
// Ordering invariants: the provider is never contacted while the balance is
// exhausted, and a credit is never taken without a durable record (nor the
// reverse). Provider failures leave both the ledger and the history
// untouched.
func (s *generationService) Generate(ctx context.Context, userID uint, prompt, style string) (*GenerationResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt must not be empty", errors.ErrBadRequest)
	}

	// Advisory check before any provider spend. The transaction below makes
	// the final call; this just refuses obviously doomed requests cheaply.
	if err := s.credits.CheckAvailable(ctx, userID); err != nil {
		return nil, err
	}

	img, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	gen := &model.Generation{
		UserID:   userID,
		Prompt:   prompt,
		ImageURL: dataURI(img),
		Style:    style,
	}
	balance, err := s.generations.CreateWithDebit(ctx, gen)
	if err != nil {
		return nil, err
	}
	s.credits.Invalidate(ctx, userID)
	s.history.Invalidate(ctx, userID)

	return &GenerationResult{
		GenerationID:  gen.ID,
		ImageURL:      gen.ImageURL,
		CreditBalance: balance,
	}, nil
}

func dataURI(img []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img)
}
