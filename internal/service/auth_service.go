package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"imagify/internal/auth"
	"imagify/internal/errors"
	"imagify/internal/model"
	"imagify/internal/repository"
)

const bcryptCost = 10

// ResetTokenLifetime is how long a reset ticket stays redeemable.
const ResetTokenLifetime = time.Hour

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = stderrors.New("invalid email or password")
	// ErrResetVerifyFailed is returned when the name/date-of-birth facts don't match.
	ErrResetVerifyFailed = stderrors.New("account details do not match")
	// ErrInvalidResetToken is returned when a reset ticket is unknown, expired or already used.
	ErrInvalidResetToken = stderrors.New("invalid or expired reset token")
)

// AuthService handles registration, login and the password-reset flow.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, dateOfBirth time.Time) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	VerifyForReset(ctx context.Context, name string, dateOfBirth time.Time) (token string, expiresAt time.Time, err error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		now:        time.Now,
	}
}

// Register creates a new account with the starter credit grant and returns
// it together with a signed bearer token.
func (s *authService) Register(ctx context.Context, name, email, password string, dateOfBirth time.Time) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", errors.ErrDuplicateEmail
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		DateOfBirth:  dateOfBirth,
		Credits:      model.DefaultCreditGrant,
		Role:         "user",
		NotificationPrefs: model.NotificationPrefs{
			EmailUpdates: true,
			CreditAlerts: true,
		},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates by email and password and issues a bearer token.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := s.now()
	if err := s.users.RecordLogin(ctx, user.ID, now); err != nil {
		return nil, "", fmt.Errorf("record login: %w", err)
	}
	user.LastLoginAt = &now
	user.LoginCount++

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// VerifyForReset checks possession of out-of-band identity facts and issues
// a one-hour, single-use reset ticket. Any previously issued ticket is
// superseded: at most one is valid per account at a time.
func (s *authService) VerifyForReset(ctx context.Context, name string, dateOfBirth time.Time) (string, time.Time, error) {
	user, err := s.users.FindByNameCaseInsensitive(ctx, strings.TrimSpace(name))
	if err != nil {
		return "", time.Time{}, ErrResetVerifyFailed
	}
	if !sameDate(user.DateOfBirth, dateOfBirth) {
		return "", time.Time{}, ErrResetVerifyFailed
	}

	token := uuid.NewString()
	expiresAt := s.now().Add(ResetTokenLifetime)
	if err := s.users.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("store reset token: %w", err)
	}
	return token, expiresAt, nil
}

// ResetPassword redeems a reset ticket. The repository clears the ticket in
// the same conditional update that writes the new hash, so a second redeem
// of the same ticket fails.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	ok, err := s.users.ResetPasswordByToken(ctx, token, string(hashed), s.now())
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if !ok {
		return ErrInvalidResetToken
	}
	return nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
