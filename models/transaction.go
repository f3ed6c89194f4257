// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type PurchaseKind string
type TransactionStatus string

const (
	AirtimePurchase PurchaseKind = "AIRTIME"
	BundlePurchase  PurchaseKind = "BUNDLE"
)

const (
	TransactionSuccess TransactionStatus = "SUCCESS"
	TransactionFailed  TransactionStatus = "FAILED"
)

// Transaction is the local record of a purchase returned by the
// transaction service.
type Transaction struct {
	ID              uint              `gorm:"primaryKey"`
	TransactionID   string            `gorm:"size:64;not null;uniqueIndex"`
	Reference       string            `gorm:"size:64;not null;index"`
	Kind            PurchaseKind      `gorm:"size:20;not null"`
	Status          TransactionStatus `gorm:"size:20;not null"`
	Network         string            `gorm:"size:64;not null"`
	DetectedCarrier *string           `gorm:"size:64;default:null"`
	PhoneNumber     string            `gorm:"size:20;not null"`
	E164            *string           `gorm:"size:20;default:null"`
	Amount          float64           `gorm:"not null"`
	OriginalAmount  float64           `gorm:"not null"`
	Savings         float64           `gorm:"not null;default:0"`
	Tier            *string           `gorm:"size:32;default:null"`
	BundleID        *string           `gorm:"size:32;default:null"`
	Message         *string           `gorm:"type:text;default:null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
	SessionID       uint           `gorm:"index"`
	Session         Session        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func init() {
	AllModels = append(AllModels, &Transaction{})
}
