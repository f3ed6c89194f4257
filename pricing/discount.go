// SPDX-License-Identifier: GPL-3.0-only

package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Payable returns amount less discountPercent percent, unrounded.
func Payable(amount, discountPercent float64) float64 {
	return amount - (amount*discountPercent)/100
}

// RoundForDisplay rounds half away from zero to two decimals.
func RoundForDisplay(v float64) float64 {
	return math.Round(v*100) / 100
}

func FormatAmount(v float64) string {
	return strconv.FormatFloat(RoundForDisplay(v), 'f', 2, 64)
}

// ParseAmount returns 0 for anything that is not a finite number.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
