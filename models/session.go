// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllModels is the schema a fresh database is created with. Every model
// registers itself here.
var AllModels []any

// Session is the application session a client buys under. It carries the
// running total of discounts the client has received.
type Session struct {
	ID           uint    `gorm:"primaryKey"`
	SessionID    string  `gorm:"size:64;not null;uniqueIndex"`
	Token        string  `gorm:"size:64;not null;uniqueIndex"`
	TotalSavings float64 `gorm:"not null;default:0"`
	IPAddress    *string `gorm:"default:null"`
	UserAgent    *string `gorm:"default:null"`
	LastUsedAt   *time.Time
	ExpiresAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (session *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if session.SessionID == "" {
		session.SessionID = "ses_" + uuid.New().String()
	}
	if session.Token == "" {
		session.Token = uuid.New().String()
	}
	return
}

func (session *Session) Expired(now time.Time) bool {
	return session.ExpiresAt != nil && !now.Before(*session.ExpiresAt)
}

func init() {
	AllModels = append(AllModels, &Session{})
}
