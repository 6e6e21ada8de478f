// Package insurance implements the federal minimum down payment tiers and the
// mortgage default insurance premium schedule. Insurance is mandatory above
// 80% loan-to-value and unavailable above 95% or at prices of $1M and up.
package insurance

import (
	"errors"
	"fmt"

	"github.com/maplerates/mortgage-engine/pkg/constants"
	"github.com/maplerates/mortgage-engine/pkg/mathutil"
	"github.com/maplerates/mortgage-engine/pkg/validation"
)

// ErrUninsurable indicates the mortgage cannot be default-insured: either the
// purchase price is at or above $1M or the LTV exceeds 95%.
var ErrUninsurable = errors.New("mortgage is not insurable")

// ErrBelowMinimumDownPayment indicates the down payment is under the
// regulatory minimum for the purchase price.
var ErrBelowMinimumDownPayment = errors.New("down payment below regulatory minimum")

// PremiumBand maps a loan-to-value range to a premium rate. Bands are
// contiguous over (80, 95].
type PremiumBand struct {
	MinLTVPercent      float64 `json:"minLtvPercent"`
	MaxLTVPercent      float64 `json:"maxLtvPercent"`
	PremiumRatePercent float64 `json:"premiumRatePercent"`
}

// DefaultPremiumSchedule is the standard CMHC premium schedule, applied to
// the loan amount.
var DefaultPremiumSchedule = []PremiumBand{
	{MinLTVPercent: 80, MaxLTVPercent: 85, PremiumRatePercent: 2.80},
	{MinLTVPercent: 85, MaxLTVPercent: 90, PremiumRatePercent: 3.10},
	{MinLTVPercent: 90, MaxLTVPercent: 95, PremiumRatePercent: 4.00},
}

// MinimumDownPayment returns the regulatory minimum down payment for a
// purchase price. The tiers are marginal: 5% of the first $500k, 10% of the
// portion from $500k to $1M, and a flat 20% of the whole price at $1M and up.
func MinimumDownPayment(purchasePrice float64) (float64, error) {
	if err := validation.RequirePositive("purchasePrice", purchasePrice); err != nil {
		return 0, err
	}

	var minimum float64
	switch {
	case purchasePrice < constants.FirstTierUpperBound:
		minimum = purchasePrice * constants.FirstTierMinPercent
	case purchasePrice < constants.SecondTierUpperBound:
		minimum = constants.FirstTierUpperBound*constants.FirstTierMinPercent +
			(purchasePrice-constants.FirstTierUpperBound)*constants.SecondTierMinPercent
	default:
		minimum = purchasePrice * constants.TopTierMinPercent
	}
	return mathutil.Round(minimum), nil
}

// Premium computes the default insurance premium for a purchase using the
// standard schedule. See PremiumWithSchedule.
func Premium(purchasePrice, downPayment float64) (float64, error) {
	return PremiumWithSchedule(purchasePrice, downPayment, DefaultPremiumSchedule)
}

// PremiumWithSchedule computes the default insurance premium for a purchase.
// Prices at or above $1M are categorically uninsurable regardless of the down
// payment. A down payment below the regulatory minimum fails before any LTV
// band lookup so callers see the real reason, not a derived LTV failure.
func PremiumWithSchedule(purchasePrice, downPayment float64, schedule []PremiumBand) (float64, error) {
	if err := validation.RequirePositive("purchasePrice", purchasePrice); err != nil {
		return 0, err
	}
	if err := validation.RequireNonNegative("downPayment", downPayment); err != nil {
		return 0, err
	}
	if purchasePrice >= constants.SecondTierUpperBound {
		return 0, fmt.Errorf("%w: price %.2f is at or above the $%.0f insurance cap",
			ErrUninsurable, purchasePrice, constants.SecondTierUpperBound)
	}

	minimum, err := MinimumDownPayment(purchasePrice)
	if err != nil {
		return 0, err
	}
	if downPayment < minimum {
		return 0, fmt.Errorf("%w: got %.2f, minimum for price %.2f is %.2f",
			ErrBelowMinimumDownPayment, downPayment, purchasePrice, minimum)
	}

	loan := purchasePrice - downPayment
	ltv := mathutil.Percentage(loan, purchasePrice)
	if ltv <= constants.MaxConventionalLTVPercent {
		return 0, nil
	}
	if ltv > constants.MaxInsurableLTVPercent {
		return 0, fmt.Errorf("%w: LTV %.2f%% exceeds the insurable maximum of %.0f%%",
			ErrUninsurable, ltv, constants.MaxInsurableLTVPercent)
	}

	for _, band := range schedule {
		if ltv > band.MinLTVPercent && ltv <= band.MaxLTVPercent {
			return mathutil.Round(mathutil.ApplyPercentage(loan, band.PremiumRatePercent)), nil
		}
	}
	return 0, fmt.Errorf("%w: no premium band covers LTV %.2f%%", ErrUninsurable, ltv)
}

// Insurable reports whether a purchase at the given price and down payment
// can be default-insured at all.
func Insurable(purchasePrice, downPayment float64) bool {
	_, err := Premium(purchasePrice, downPayment)
	return err == nil
}
