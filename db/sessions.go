// SPDX-License-Identifier: GPL-3.0-only

package db

import (
	"context"
	"errors"
	"time"
	"topup-server/models"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found or expired")

type SessionStore struct {
	conn *gorm.DB
	now  func() time.Time
}

func NewSessionStore(conn *gorm.DB) *SessionStore {
	return &SessionStore{conn: conn, now: time.Now}
}

// Create starts a session that expires after ttl. A zero ttl never expires.
func (s *SessionStore) Create(ctx context.Context, ttl time.Duration, ipAddress, userAgent string) (*models.Session, error) {
	session := models.Session{}
	if ttl > 0 {
		expiresAt := s.now().Add(ttl)
		session.ExpiresAt = &expiresAt
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}

	if err := s.conn.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindActive loads the session matching both identifiers and marks it used.
func (s *SessionStore) FindActive(ctx context.Context, sessionID, token string) (*models.Session, error) {
	session := models.Session{}
	err := s.conn.WithContext(ctx).
		Where("session_id = ? AND token = ?", sessionID, token).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	if session.Expired(now) {
		return nil, ErrSessionNotFound
	}

	if err := s.conn.WithContext(ctx).Model(&session).Update("last_used_at", now).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// AddSavings increments the session's running savings and returns the new
// total.
func (s *SessionStore) AddSavings(ctx context.Context, id uint, amount float64) (float64, error) {
	var total float64
	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Session{}).
			Where("id = ?", id).
			Update("total_savings", gorm.Expr("total_savings + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSessionNotFound
		}

		session := models.Session{}
		if err := tx.Select("total_savings").First(&session, id).Error; err != nil {
			return err
		}
		total = session.TotalSavings
		return nil
	})
	return total, err
}

// PurgeExpired soft-deletes sessions whose expiry has passed.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.conn.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", s.now()).
		Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
