// Package affordability computes the maximum affordable purchase price under
// the GDS/TDS debt service ceilings.
//
// The GDS ceiling here applies to the mortgage payment component alone;
// property tax and heating are not inputs. This mirrors the behavior of the
// calculators this engine backs and is preserved deliberately.
package affordability

import (
	"github.com/maplerates/mortgage-engine/pkg/constants"
	"github.com/maplerates/mortgage-engine/pkg/mathutil"
	"github.com/maplerates/mortgage-engine/pkg/payment"
	"github.com/maplerates/mortgage-engine/pkg/ratemath"
	"github.com/maplerates/mortgage-engine/pkg/validation"
)

// Inputs holds the parameters for an affordability calculation.
// QualifyingRatePercent is whatever rate the caller wants to qualify at: the
// contract rate or a stress-tested rate from ratemath.QualifyingRate. That
// policy choice belongs to the caller, never this engine. Callers that only
// know their contract rate set ContractRatePercent instead and the standard
// stress test is applied.
type Inputs struct {
	AnnualIncome          float64 `json:"annualIncome"`
	MonthlyDebts          float64 `json:"monthlyDebts"`
	DownPayment           float64 `json:"downPayment"`
	QualifyingRatePercent float64 `json:"qualifyingRatePercent,omitempty"`
	AmortizationYears     int     `json:"amortizationYears"`

	// ContractRatePercent is the borrower's contract rate. It is consulted
	// only when QualifyingRatePercent is zero: the qualifying rate is then
	// derived through the stress test against the default benchmark.
	ContractRatePercent float64 `json:"contractRatePercent,omitempty"`

	// GDSLimit and TDSLimit override the regulatory defaults when positive.
	GDSLimit float64 `json:"gdsLimit,omitempty"`
	TDSLimit float64 `json:"tdsLimit,omitempty"`
}

// Result holds the outcome of an affordability calculation. The ratios are
// the GDS/TDS values implied by the qualifying payment at max price.
type Result struct {
	MaxPrice          float64 `json:"maxPrice"`
	QualifyingPayment float64 `json:"qualifyingPayment"`
	GDSRatio          float64 `json:"gdsRatio"`
	TDSRatio          float64 `json:"tdsRatio"`
}

func (in Inputs) gdsLimit() float64 {
	if in.GDSLimit > 0 {
		return in.GDSLimit
	}
	return constants.DefaultGDSLimit
}

func (in Inputs) tdsLimit() float64 {
	if in.TDSLimit > 0 {
		return in.TDSLimit
	}
	return constants.DefaultTDSLimit
}

// MaxPrice computes the largest purchase price the household qualifies for.
// The binding ceiling is the lesser of the GDS and TDS payment ceilings; if
// neither leaves room for a mortgage payment the result is the down payment
// alone, never a negative price.
func MaxPrice(in Inputs) (Result, error) {
	if err := validation.RequireNonNegative("annualIncome", in.AnnualIncome); err != nil {
		return Result{}, err
	}
	if err := validation.RequireNonNegative("monthlyDebts", in.MonthlyDebts); err != nil {
		return Result{}, err
	}
	if err := validation.RequireNonNegative("downPayment", in.DownPayment); err != nil {
		return Result{}, err
	}
	if err := validation.RequireIntRange("amortizationYears", in.AmortizationYears,
		constants.MinAmortizationYears, constants.MaxAmortizationYears); err != nil {
		return Result{}, err
	}

	qualifying := in.QualifyingRatePercent
	if qualifying == 0 && in.ContractRatePercent > 0 {
		qualifying = ratemath.QualifyingRate(in.ContractRatePercent,
			constants.DefaultBenchmarkRatePercent, constants.DefaultStressTestBufferPercent)
	}
	rate, err := ratemath.PeriodicRate(qualifying, ratemath.Monthly)
	if err != nil {
		return Result{}, err
	}

	monthlyIncome := in.AnnualIncome / constants.MonthsPerYear
	maxGDSPayment := monthlyIncome * in.gdsLimit()
	maxTDSPayment := monthlyIncome*in.tdsLimit() - in.MonthlyDebts

	maxMonthlyPayment := maxGDSPayment
	if maxTDSPayment < maxMonthlyPayment {
		maxMonthlyPayment = maxTDSPayment
	}
	if maxMonthlyPayment <= 0 {
		return Result{MaxPrice: mathutil.Round(in.DownPayment)}, nil
	}

	numberOfPayments := in.AmortizationYears * constants.MonthsPerYear
	principal, err := payment.PrincipalForPayment(maxMonthlyPayment, rate, numberOfPayments)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		MaxPrice:          mathutil.Round(principal + in.DownPayment),
		QualifyingPayment: mathutil.Round(maxMonthlyPayment),
	}
	if monthlyIncome > 0 {
		result.GDSRatio = maxMonthlyPayment / monthlyIncome
		result.TDSRatio = (maxMonthlyPayment + in.MonthlyDebts) / monthlyIncome
	}
	return result, nil
}
