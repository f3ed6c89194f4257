// SPDX-License-Identifier: GPL-3.0-only

package phonecheck

import (
	"errors"
	"fmt"
	"topup-server/commons/carriers"

	"github.com/nyaruka/phonenumbers"
)

// NumberLength is the length of a local mobile number, leading 0 included.
const NumberLength = 11

var (
	ErrInvalidFormat  = errors.New("phone number must be 11 digits and start with 0")
	ErrUnknownCarrier = errors.New("phone number prefix does not belong to a known carrier")
)

type Result struct {
	Valid            bool   `json:"valid"`
	CarrierID        string `json:"carrier_id,omitempty"`
	CarrierName      string `json:"carrier"`
	CountryCode      string `json:"country_code,omitempty"`
	ClaimedNetworkID string `json:"claimed_network,omitempty"`
	Mismatch         bool   `json:"mismatch"`
	E164             string `json:"e164,omitempty"`
	Err              error  `json:"-"`
}

// Validate classifies phoneNumber against the prefix table. The claimed
// network only feeds Mismatch; a number owned by another carrier is still
// valid.
func Validate(idx *carriers.LookupIndex, phoneNumber, claimedNetworkID string) Result {
	res := Result{ClaimedNetworkID: claimedNetworkID}

	formatOK := IsLocalFormat(phoneNumber)

	var (
		provider carriers.NetworkProvider
		detected bool
	)
	if len(phoneNumber) >= carriers.PrefixLength {
		provider, detected = idx.DetectByPrefix(phoneNumber[:carriers.PrefixLength])
	}
	if detected {
		res.CarrierID = provider.ID
		res.CarrierName = provider.DisplayName
		res.CountryCode = provider.CountryCode
		res.Mismatch = claimedNetworkID != "" && claimedNetworkID != provider.ID
	}

	switch {
	case !formatOK:
		res.Err = ErrInvalidFormat
	case !detected:
		res.Err = ErrUnknownCarrier
	default:
		res.Valid = true
		res.E164 = toE164(phoneNumber, provider.CountryCode)
	}
	return res
}

// IsLocalFormat reports whether s matches ^0\d{10}$.
func IsLocalFormat(s string) bool {
	if len(s) != NumberLength || s[0] != '0' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Notice is the informational copy shown when the number belongs to a
// different carrier than the one selected. Empty otherwise.
func (r Result) Notice() string {
	if !r.Mismatch {
		return ""
	}
	return fmt.Sprintf("Phone number belongs to %s. Cross-network purchases are supported.", r.CarrierName)
}

func toE164(national, region string) string {
	num, err := phonenumbers.Parse(national, region)
	if err != nil {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
