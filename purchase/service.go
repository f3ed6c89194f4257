// SPDX-License-Identifier: GPL-3.0-only

package purchase

import "context"

const StatusSuccess = "success"

type TransactionResult struct {
	ID        string  `json:"id"`
	Reference string  `json:"reference"`
	Status    string  `json:"status"`
	Message   string  `json:"message"`
	Amount    float64 `json:"amount"`
	Recipient string  `json:"recipient"`
}

// TransactionService is the backend that actually credits the recipient.
type TransactionService interface {
	PurchaseAirtime(ctx context.Context, req Request) (*TransactionResult, error)
	PurchaseBundle(ctx context.Context, req Request) (*TransactionResult, error)
}

type NetworkBalance struct {
	Network string  `json:"network"`
	Balance float64 `json:"balance"`
	Status  string  `json:"status"`
}

type BalanceProvider interface {
	NetworkBalances(ctx context.Context) ([]NetworkBalance, error)
}
