package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Generation represents one completed text-to-image request. Records are
// immutable once created; there is no update path.
type Generation struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Prompt    string    `json:"prompt" gorm:"type:text;not null"`
	ImageURL  string    `json:"image_url" gorm:"type:mediumtext;not null"`
	Style     string    `json:"style,omitempty" gorm:"size:100;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (g *Generation) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
