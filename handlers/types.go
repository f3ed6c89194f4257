// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"topup-server/commons/carriers"
	"topup-server/pricing"
	"topup-server/purchase"
)

// swagger:model GenericResponse
type GenericResponse struct {
	// Message describing the result
	Message string `json:"message" example:"Operation successful"`
}

// swagger:model HealthResponse
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// swagger:model PaginationDetails
type PaginationDetails struct {
	// Current page number
	Page int `json:"page"`
	// Page size
	PageSize int `json:"page_size"`
	// Total number of items
	Total int64 `json:"total"`
	// Total number of pages
	TotalPages int `json:"total_pages"`
}

// swagger:model SessionResponse
type SessionResponse struct {
	// Public identifier of the session
	SessionID string `json:"session_id" example:"ses_4f0c2a1e-1b2d-4c6f-9a7e-2f1e0c9d8b7a"`
	// Bearer token for subsequent requests
	SessionToken string `json:"session_token" example:"sample_session_token"`
	// Expiry timestamp, empty when the session does not expire
	ExpiresAt string `json:"expires_at,omitempty" example:"2023-10-01T12:00:00Z"`
	// Message indicating successful operation
	Message string `json:"message" example:"Session started"`
}

// swagger:model SavingsResponse
type SavingsResponse struct {
	SessionID    string  `json:"session_id" example:"ses_4f0c2a1e-1b2d-4c6f-9a7e-2f1e0c9d8b7a"`
	TotalSavings float64 `json:"total_savings" example:"200"`
	// Total savings rounded to two decimals for display
	Display string `json:"display" example:"200.00"`
}

// swagger:model CountryDetails
type CountryDetails struct {
	carriers.Country
	// Networks operating in the country
	Networks []carriers.NetworkProvider `json:"networks"`
}

// swagger:model CountryListResponse
type CountryListResponse struct {
	Data []CountryDetails `json:"data"`
}

// swagger:model NetworkListResponse
type NetworkListResponse struct {
	Country carriers.Country           `json:"country"`
	Data    []carriers.NetworkProvider `json:"data"`
}

// swagger:model NetworkDetails
type NetworkDetails struct {
	carriers.NetworkProvider
	// Leading four-digit groups issued to this network
	Prefixes []string `json:"prefixes" example:"0803,0806"`
}

// swagger:model BalanceListResponse
type BalanceListResponse struct {
	Data []purchase.NetworkBalance `json:"data"`
}

// swagger:model VerifyPhoneRequest
type VerifyPhoneRequest struct {
	// Local 11-digit phone number starting with 0
	// required: true
	PhoneNumber string `json:"phone_number" validate:"required" example:"08031234567"`
	// Network the client selected, used for the mismatch notice
	Network string `json:"network" example:"mtn-ng"`
}

// swagger:model VerifyPhoneResponse
type VerifyPhoneResponse struct {
	Valid       bool   `json:"valid"`
	CarrierID   string `json:"carrier_id,omitempty" example:"mtn-ng"`
	Carrier     string `json:"carrier,omitempty" example:"MTN Nigeria"`
	CountryCode string `json:"country_code,omitempty" example:"NG"`
	E164        string `json:"e164,omitempty" example:"+2348031234567"`
	Mismatch    bool   `json:"mismatch"`
	// Informational copy when the number belongs to another network
	Notice string `json:"notice,omitempty"`
	// Reason the number is not valid
	Message string `json:"message,omitempty"`
}

// swagger:model TierDetails
type TierDetails struct {
	pricing.Tier
	// Amount payable for the tier minimum, for preview
	MinPayable string `json:"min_payable" example:"98.00"`
}

// swagger:model BundleDetails
type BundleDetails struct {
	pricing.Bundle
	Savings float64 `json:"savings" example:"150"`
}

// swagger:model PricingResponse
type PricingResponse struct {
	Tiers   []TierDetails   `json:"tiers"`
	Bundles []BundleDetails `json:"bundles"`
}

// swagger:model AirtimePurchaseRequest
type AirtimePurchaseRequest struct {
	// Network id the client selected
	// required: true
	Network string `json:"network" validate:"required" example:"mtn-ng"`
	// Local 11-digit phone number starting with 0
	// required: true
	PhoneNumber string `json:"phone_number" validate:"required" example:"08031234567"`
	// Face value of the airtime
	// required: true
	Amount float64 `json:"amount" validate:"required,gt=0" example:"1000"`
	// Discount tier, defaults to the first tier
	Tier string `json:"tier" example:"premium"`
}

// swagger:model BundlePurchaseRequest
type BundlePurchaseRequest struct {
	// Network id the client selected
	// required: true
	Network string `json:"network" validate:"required" example:"glo-ng"`
	// Local 11-digit phone number starting with 0
	// required: true
	PhoneNumber string `json:"phone_number" validate:"required" example:"08051234567"`
	// Bundle id from the pricing catalog
	// required: true
	BundleID string `json:"bundle_id" validate:"required" example:"2gb"`
}

// swagger:model PurchaseResponse
type PurchaseResponse struct {
	TransactionID  string  `json:"transaction_id" example:"TXN1700000000000a1b2c3d4e"`
	Reference      string  `json:"reference" example:"AIR1700000000000"`
	Status         string  `json:"status" example:"success"`
	Kind           string  `json:"kind" example:"AIRTIME"`
	Recipient      string  `json:"recipient" example:"08031234567"`
	Amount         float64 `json:"amount" example:"950"`
	OriginalAmount float64 `json:"original_amount" example:"1000"`
	Savings        float64 `json:"savings" example:"50"`
	TotalSavings   float64 `json:"total_savings" example:"50"`
	// Amount rounded to two decimals for display
	AmountDisplay string `json:"amount_display" example:"950.00"`
	// Savings rounded to two decimals for display
	SavingsDisplay  string `json:"savings_display" example:"50.00"`
	DetectedCarrier string `json:"detected_carrier,omitempty" example:"mtn-ng"`
	Notice          string `json:"notice,omitempty"`
	Message         string `json:"message" example:"Airtime purchase successful"`
}

// swagger:model TransactionDetails
type TransactionDetails struct {
	TransactionID   string  `json:"transaction_id"`
	Reference       string  `json:"reference"`
	Kind            string  `json:"kind"`
	Status          string  `json:"status"`
	Network         string  `json:"network"`
	DetectedCarrier *string `json:"detected_carrier"`
	PhoneNumber     string  `json:"phone_number"`
	Amount          float64 `json:"amount"`
	OriginalAmount  float64 `json:"original_amount"`
	Savings         float64 `json:"savings"`
	Tier            *string `json:"tier"`
	BundleID        *string `json:"bundle_id"`
	CreatedAt       string  `json:"created_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model TransactionListResponse
type TransactionListResponse struct {
	Data       []TransactionDetails `json:"data"`
	Pagination PaginationDetails    `json:"pagination"`
	Message    string               `json:"message" example:"Transactions retrieved successfully"`
}
