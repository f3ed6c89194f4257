// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"
	"topup-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_create_sessions",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&models.Session{}); err != nil {
					return fmt.Errorf("failed to create sessions table: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.Session{})
			},
		},
		{
			ID: "002_create_transactions",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&models.Transaction{}); err != nil {
					return fmt.Errorf("failed to create transactions table: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.Transaction{})
			},
		},
	}
}

// Run brings conn up to date. A fresh database gets every registered model
// in one step and all migrations marked as applied; an existing one replays
// whatever it has not seen yet.
func Run(conn *gorm.DB) error {
	m := gormigrate.New(conn, gormigrate.DefaultOptions, List())
	m.InitSchema(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(models.AllModels...); err != nil {
			return fmt.Errorf("failed to create initial schema: %w", err)
		}
		return nil
	})
	return m.Migrate()
}
