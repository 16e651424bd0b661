package service

import (
	"context"
	"fmt"

	"imagify/internal/model"
	"imagify/internal/repository"
)

// PreferencesUpdater writes the nested notification preferences document.
type PreferencesUpdater interface {
	UpdatePreferences(ctx context.Context, id uint, prefs model.NotificationPrefs) (*model.User, error)
}

type userService struct {
	users   repository.UserRepository
	credits CreditService
}

// NewUserService builds the account-settings service.
func NewUserService(users repository.UserRepository, credits CreditService) PreferencesUpdater {
	return &userService{users: users, credits: credits}
}

func (s *userService) UpdatePreferences(ctx context.Context, id uint, prefs model.NotificationPrefs) (*model.User, error) {
	if err := s.users.UpdatePrefs(ctx, id, prefs); err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	// Cached copy is stale now.
	s.credits.Invalidate(ctx, id)
	return s.credits.GetUser(ctx, id)
}
