// SPDX-License-Identifier: GPL-3.0-only

package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"topup-server/pricing"

	"github.com/google/uuid"
)

const (
	DefaultAirtimeDelay = 1500 * time.Millisecond
	DefaultBundleDelay  = 2000 * time.Millisecond
	DefaultBalanceDelay = 500 * time.Millisecond
)

// MockService stands in for the real transaction backend. Every purchase
// succeeds after a fixed delay.
type MockService struct {
	AirtimeDelay time.Duration
	BundleDelay  time.Duration
	BalanceDelay time.Duration
	Catalog      *pricing.Catalog

	now func() time.Time
}

func NewMockService(catalog *pricing.Catalog, airtimeDelay, bundleDelay, balanceDelay time.Duration) *MockService {
	return &MockService{
		AirtimeDelay: airtimeDelay,
		BundleDelay:  bundleDelay,
		BalanceDelay: balanceDelay,
		Catalog:      catalog,
		now:          time.Now,
	}
}

func (m *MockService) PurchaseAirtime(ctx context.Context, req Request) (*TransactionResult, error) {
	if req.Kind != KindAirtime {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrWrongKind, KindAirtime, req.Kind)
	}
	if err := wait(ctx, m.AirtimeDelay); err != nil {
		return nil, err
	}

	ms := m.clock().UnixMilli()
	return &TransactionResult{
		ID:        transactionID(ms),
		Reference: fmt.Sprintf("AIR%d", ms),
		Status:    StatusSuccess,
		Message:   "Airtime purchase successful",
		Amount:    req.Airtime.Amount,
		Recipient: req.PhoneNumber,
	}, nil
}

func (m *MockService) PurchaseBundle(ctx context.Context, req Request) (*TransactionResult, error) {
	if req.Kind != KindBundle {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrWrongKind, KindBundle, req.Kind)
	}
	if err := wait(ctx, m.BundleDelay); err != nil {
		return nil, err
	}

	amount := float64(pricing.FallbackBundlePrice)
	if m.Catalog != nil {
		amount = m.Catalog.BundlePrice(req.Bundle.BundleID)
	}

	ms := m.clock().UnixMilli()
	return &TransactionResult{
		ID:        transactionID(ms),
		Reference: fmt.Sprintf("BUN%d", ms),
		Status:    StatusSuccess,
		Message:   "Data bundle purchase successful",
		Amount:    amount,
		Recipient: req.PhoneNumber,
	}, nil
}

func (m *MockService) NetworkBalances(ctx context.Context) ([]NetworkBalance, error) {
	if err := wait(ctx, m.BalanceDelay); err != nil {
		return nil, err
	}
	balances := []NetworkBalance{
		{Network: "MTN Nigeria", Balance: 15420.50},
		{Network: "Airtel Nigeria", Balance: 8750.25},
		{Network: "Glo Nigeria", Balance: 12300.75},
		{Network: "9mobile Nigeria", Balance: 5680.00},
		{Network: "Safaricom Kenya", Balance: 9850.30},
		{Network: "Airtel Kenya", Balance: 7200.45},
		{Network: "Telkom Kenya", Balance: 4500.80},
		{Network: "MTN Uganda", Balance: 6800.90},
		{Network: "Airtel Uganda", Balance: 5400.60},
		{Network: "Vodacom Tanzania", Balance: 8900.75},
		{Network: "Airtel Tanzania", Balance: 6700.40},
		{Network: "Zain Sudan", Balance: 3200.25},
		{Network: "MTN Sudan", Balance: 4100.85},
		{Network: "Maroc Telecom", Balance: 7800.95},
		{Network: "Orange Morocco", Balance: 5900.70},
		{Network: "Ethio Telecom", Balance: 4600.55},
		{Network: "Safaricom Ethiopia", Balance: 3800.40},
	}
	for i := range balances {
		balances[i].Status = "active"
	}
	return balances, nil
}

func (m *MockService) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

// transactionID has the form TXN<unix-ms><9 random chars>.
func transactionID(ms int64) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("TXN%d%s", ms, suffix)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
