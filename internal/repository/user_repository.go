package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"imagify/internal/model"
)

// UserRepository defines identity-store persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByNameCaseInsensitive(ctx context.Context, name string) (*model.User, error)
	RecordLogin(ctx context.Context, id uint, at time.Time) error
	SetResetToken(ctx context.Context, id uint, token string, expiresAt time.Time) error
	ResetPasswordByToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error)
	DebitCredits(ctx context.Context, id uint, amount int) (bool, error)
	UpdatePrefs(ctx context.Context, id uint, prefs model.NotificationPrefs) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByNameCaseInsensitive matches the display name regardless of letter
// case. Used only by the reset-verification flow.
func (r *userRepository) FindByNameCaseInsensitive(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RecordLogin stamps the login time and bumps the counter in one update.
func (r *userRepository) RecordLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at": at,
			"login_count":   gorm.Expr("login_count + 1"),
		}).Error
}

// SetResetToken stores a fresh reset ticket, superseding any previous one.
func (r *userRepository) SetResetToken(ctx context.Context, id uint, token string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":            token,
			"reset_token_expires_at": expiresAt,
		}).Error
}

// ResetPasswordByToken sets a new password hash for the user holding an
// unexpired reset ticket and clears the ticket in the same statement, so a
// ticket can be consumed exactly once. Returns false when no row matched.
func (r *userRepository) ResetPasswordByToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("reset_token = ? AND reset_token_expires_at > ?", token, now).
		Updates(map[string]interface{}{
			"password_hash":          passwordHash,
			"reset_token":            "",
			"reset_token_expires_at": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DebitCredits is the ledger's binding decision: a single conditional
// decrement that refuses to take the balance below zero. Returns false when
// the balance could not cover the amount.
func (r *userRepository) DebitCredits(ctx context.Context, id uint, amount int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND credits >= ?", id, amount).
		Update("credits", gorm.Expr("credits - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) UpdatePrefs(ctx context.Context, id uint, prefs model.NotificationPrefs) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("notification_prefs", prefs).Error
}
