// Package payment computes periodic mortgage payments and lifetime totals
// using the standard amortizing-loan annuity formula.
package payment

import (
	"fmt"
	"math"

	"github.com/maplerates/mortgage-engine/pkg/constants"
	"github.com/maplerates/mortgage-engine/pkg/mathutil"
	"github.com/maplerates/mortgage-engine/pkg/ratemath"
	"github.com/maplerates/mortgage-engine/pkg/validation"
)

// LoanInputs holds the parameters for a payment calculation.
type LoanInputs struct {
	Principal         float64            `json:"principal"`
	AnnualRatePercent float64            `json:"annualRatePercent"`
	AmortizationYears int                `json:"amortizationYears"`
	Frequency         ratemath.Frequency `json:"paymentFrequency"`
}

// Result holds the computed payment and lifetime totals.
// TotalPaid is derived as PeriodicPayment x NumberOfPayments exactly;
// TotalInterest is TotalPaid minus the principal.
type Result struct {
	PeriodicPayment  float64 `json:"periodicPayment"`
	TotalPaid        float64 `json:"totalPaid"`
	TotalInterest    float64 `json:"totalInterest"`
	NumberOfPayments int     `json:"numberOfPayments"`
}

// PeriodPayment holds the breakdown of a single payment in an amortization schedule.
type PeriodPayment struct {
	Period             int     `json:"period"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

func validateInputs(loan LoanInputs) error {
	if err := validation.RequirePositive("principal", loan.Principal); err != nil {
		return err
	}
	if err := validation.RequireIntRange("amortizationYears", loan.AmortizationYears,
		constants.MinAmortizationYears, constants.MaxAmortizationYears); err != nil {
		return err
	}
	if _, err := loan.Frequency.PeriodsPerYear(); err != nil {
		return err
	}
	return nil
}

// Compute calculates the periodic payment for a loan. Accelerated biweekly
// and weekly payments are derived from the monthly payment (half or a quarter
// of it per period) rather than solving the annuity at 26/52 periods, which
// reproduces the shortened effective amortization of real accelerated plans.
func Compute(loan LoanInputs) (Result, error) {
	if err := validateInputs(loan); err != nil {
		return Result{}, err
	}

	periodsPerYear, err := loan.Frequency.PeriodsPerYear()
	if err != nil {
		return Result{}, err
	}
	numberOfPayments := loan.AmortizationYears * periodsPerYear

	var periodic float64
	if loan.Frequency.Accelerated() {
		monthlyRate, err := ratemath.PeriodicRate(loan.AnnualRatePercent, ratemath.Monthly)
		if err != nil {
			return Result{}, err
		}
		monthly := annuityPayment(loan.Principal, monthlyRate, loan.AmortizationYears*constants.MonthsPerYear)
		periodic = monthly * constants.MonthsPerYear / float64(periodsPerYear)
	} else {
		rate, err := ratemath.PeriodicRate(loan.AnnualRatePercent, loan.Frequency)
		if err != nil {
			return Result{}, err
		}
		periodic = annuityPayment(loan.Principal, rate, numberOfPayments)
	}

	periodic = mathutil.Round(periodic)
	totalPaid := mathutil.Round(periodic * float64(numberOfPayments))
	return Result{
		PeriodicPayment:  periodic,
		TotalPaid:        totalPaid,
		TotalInterest:    mathutil.Round(totalPaid - loan.Principal),
		NumberOfPayments: numberOfPayments,
	}, nil
}

// Schedule generates the per-period principal/interest breakdown for a loan.
// For accelerated frequencies the schedule ends when the balance reaches
// zero, which happens before the nominal amortization elapses.
func Schedule(loan LoanInputs) ([]PeriodPayment, error) {
	result, err := Compute(loan)
	if err != nil {
		return nil, err
	}

	rate, err := ratemath.PeriodicRate(loan.AnnualRatePercent, loan.Frequency)
	if err != nil {
		return nil, err
	}

	schedule := make([]PeriodPayment, 0, result.NumberOfPayments)
	balance := loan.Principal
	for period := 1; period <= result.NumberOfPayments; period++ {
		interest := balance * rate
		principal := result.PeriodicPayment - interest
		paymentAmount := result.PeriodicPayment
		if principal >= balance || period == result.NumberOfPayments {
			// Final payment clears the remaining balance exactly.
			principal = balance
			paymentAmount = balance + interest
		}
		balance -= principal
		schedule = append(schedule, PeriodPayment{
			Period:             period,
			Payment:            mathutil.Round(paymentAmount),
			Principal:          mathutil.Round(principal),
			Interest:           mathutil.Round(interest),
			RemainingPrincipal: mathutil.Round(balance),
		})
		if mathutil.IsZero(balance) {
			break
		}
	}
	return schedule, nil
}

// PrincipalForPayment inverts the annuity formula: the principal that a fixed
// periodic payment can service at the given rate over n periods.
func PrincipalForPayment(periodicPayment, periodicRate float64, numberOfPayments int) (float64, error) {
	if err := validation.RequirePositive("periodicPayment", periodicPayment); err != nil {
		return 0, err
	}
	if numberOfPayments <= 0 {
		return 0, fmt.Errorf("%w: numberOfPayments must be positive, got %d",
			validation.ErrInvalidInput, numberOfPayments)
	}
	if periodicRate == 0 {
		return periodicPayment * float64(numberOfPayments), nil
	}
	discountFactor := 1 - math.Pow(1+periodicRate, -float64(numberOfPayments))
	return periodicPayment * discountFactor / periodicRate, nil
}

// annuityPayment applies the ordinary annuity formula. A zero rate is the
// degenerate even split; it cannot arrive via ratemath, which rejects
// non-positive rates, but the helper stays total.
func annuityPayment(principal, periodicRate float64, numberOfPayments int) float64 {
	if periodicRate == 0 {
		return principal / float64(numberOfPayments)
	}
	power := math.Pow(1+periodicRate, float64(numberOfPayments))
	discountFactor := (power - 1) / power
	return principal * periodicRate / discountFactor
}
