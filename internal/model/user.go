package model

import "time"

// DefaultCreditGrant is the starter credit balance for new accounts.
const DefaultCreditGrant = 5

// NotificationPrefs is the nested per-user notification settings document.
type NotificationPrefs struct {
	EmailUpdates bool `json:"email_updates"`
	CreditAlerts bool `json:"credit_alerts"`
}

// User represents an account. Credits are mutated only through the
// repository's conditional debit; everything else reads the stored value.
type User struct {
	ID                  uint              `json:"id" gorm:"primaryKey"`
	Name                string            `json:"name" gorm:"size:255;not null;index"`
	Email               string            `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash        string            `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	DateOfBirth         time.Time         `json:"date_of_birth" gorm:"not null"`
	Credits             int               `json:"credits" gorm:"not null;default:5"`
	Role                string            `json:"role,omitempty" gorm:"size:50;default:'user'"`
	Verified            bool              `json:"verified" gorm:"default:false"`
	ResetToken          string            `json:"-" gorm:"size:64;index"`
	ResetTokenExpiresAt *time.Time        `json:"-"`
	LastLoginAt         *time.Time        `json:"last_login_at,omitempty"`
	LoginCount          int               `json:"login_count" gorm:"default:0"`
	NotificationPrefs   NotificationPrefs `json:"notification_prefs" gorm:"serializer:json"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// Age returns the user's calendar age at the given time: full years since
// the date of birth, minus one when the month/day has not yet come around.
func (u *User) Age(now time.Time) int {
	age := now.Year() - u.DateOfBirth.Year()
	if now.Month() < u.DateOfBirth.Month() ||
		(now.Month() == u.DateOfBirth.Month() && now.Day() < u.DateOfBirth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
