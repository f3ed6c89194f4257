// SPDX-License-Identifier: GPL-3.0-only

package purchase

import "topup-server/models"

type Kind string

const (
	KindAirtime Kind = "AIRTIME"
	KindBundle  Kind = "BUNDLE"
)

func (k Kind) model() models.PurchaseKind {
	return models.PurchaseKind(k)
}

type AirtimeDetails struct {
	Amount float64 `json:"amount"`
	Tier   string  `json:"tier"`
}

type BundleDetails struct {
	BundleID string `json:"bundle_id"`
}

// Request is a purchase payload. Kind says which of Airtime or Bundle is
// meaningful. Build it with NewAirtimeRequest or NewBundleRequest and pass
// it by value.
type Request struct {
	Kind        Kind           `json:"kind"`
	Network     string         `json:"network"`
	PhoneNumber string         `json:"phone_number"`
	Airtime     AirtimeDetails `json:"airtime"`
	Bundle      BundleDetails  `json:"bundle"`
}

func NewAirtimeRequest(network, phoneNumber string, amount float64, tier string) Request {
	return Request{
		Kind:        KindAirtime,
		Network:     network,
		PhoneNumber: phoneNumber,
		Airtime:     AirtimeDetails{Amount: amount, Tier: tier},
	}
}

func NewBundleRequest(network, phoneNumber, bundleID string) Request {
	return Request{
		Kind:        KindBundle,
		Network:     network,
		PhoneNumber: phoneNumber,
		Bundle:      BundleDetails{BundleID: bundleID},
	}
}
