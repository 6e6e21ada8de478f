// Package ratemath converts nominal annual mortgage rates into effective
// per-period rates. Canadian fixed mortgage rates are quoted with semi-annual
// compounding by convention, so the conversion goes nominal -> effective
// semi-annual -> effective annual -> effective per payment period.
package ratemath

import (
	"errors"
	"fmt"
	"math"

	"github.com/maplerates/mortgage-engine/pkg/constants"
)

// ErrInvalidRate indicates an annual rate outside (0, 100].
var ErrInvalidRate = errors.New("annual rate must be in (0, 100]")

// ErrInvalidFrequency indicates an unrecognized payment frequency.
var ErrInvalidFrequency = errors.New("unknown payment frequency")

// Frequency identifies how often payments are made.
type Frequency string

const (
	Monthly             Frequency = "monthly"
	Biweekly            Frequency = "biweekly"
	Weekly              Frequency = "weekly"
	BiweeklyAccelerated Frequency = "biweekly-accelerated"
	WeeklyAccelerated   Frequency = "weekly-accelerated"
)

// PeriodsPerYear returns the number of payment periods per year for the
// frequency. Accelerated variants pay on the same calendar cadence as their
// non-accelerated counterparts.
func (f Frequency) PeriodsPerYear() (int, error) {
	switch f {
	case Monthly:
		return constants.MonthsPerYear, nil
	case Biweekly, BiweeklyAccelerated:
		return constants.BiweeklyPeriodsPerYear, nil
	case Weekly, WeeklyAccelerated:
		return constants.WeeklyPeriodsPerYear, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFrequency, string(f))
	}
}

// Accelerated reports whether the frequency is an accelerated variant, in
// which case the payment amount derives from the monthly payment rather than
// a direct annuity at the period count.
func (f Frequency) Accelerated() bool {
	return f == BiweeklyAccelerated || f == WeeklyAccelerated
}

// Valid reports whether the frequency is one of the supported values.
func (f Frequency) Valid() bool {
	_, err := f.PeriodsPerYear()
	return err == nil
}

// PeriodicRate converts a nominal annual rate (percent, semi-annual
// compounding) into the effective rate for one payment period. Accelerated
// variants share the periodic rate of their frequency class; acceleration
// changes the payment amount formula, not the rate.
func PeriodicRate(annualRatePercent float64, freq Frequency) (float64, error) {
	if annualRatePercent <= 0 || annualRatePercent > 100 {
		return 0, fmt.Errorf("%w: got %.4f", ErrInvalidRate, annualRatePercent)
	}
	periodsPerYear, err := freq.PeriodsPerYear()
	if err != nil {
		return 0, err
	}

	semiAnnual := annualRatePercent / 2 / constants.PercentageMultiplier
	effectiveAnnual := math.Pow(1+semiAnnual, 2) - 1
	return math.Pow(1+effectiveAnnual, 1/float64(periodsPerYear)) - 1, nil
}

// QualifyingRate derives the stress-test qualifying rate from a contract
// rate: the greater of contract+buffer and the benchmark floor. Which rate a
// calculation qualifies at is the caller's policy; the engine never assumes.
func QualifyingRate(contractRatePercent, benchmarkPercent, bufferPercent float64) float64 {
	buffered := contractRatePercent + bufferPercent
	if buffered > benchmarkPercent {
		return buffered
	}
	return benchmarkPercent
}
