// SPDX-License-Identifier: GPL-3.0-only

package db

import (
	"context"
	"topup-server/models"

	"gorm.io/gorm"
)

type TransactionStore struct {
	conn *gorm.DB
}

func NewTransactionStore(conn *gorm.DB) *TransactionStore {
	return &TransactionStore{conn: conn}
}

func (s *TransactionStore) RecordTransaction(ctx context.Context, tx *models.Transaction) error {
	return s.conn.WithContext(ctx).Omit("Session").Create(tx).Error
}

// ListBySession returns one page of a session's transactions, newest first,
// and the total count.
func (s *TransactionStore) ListBySession(ctx context.Context, sessionID uint, page, pageSize int) ([]models.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	query := s.conn.WithContext(ctx).Model(&models.Transaction{}).Where("session_id = ?", sessionID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Transaction
	err := s.conn.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
