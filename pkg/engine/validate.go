package engine

import (
	"fmt"

	"github.com/maplerates/mortgage-engine/pkg/affordability"
	"github.com/maplerates/mortgage-engine/pkg/constants"
	"github.com/maplerates/mortgage-engine/pkg/landtransfer"
	"github.com/maplerates/mortgage-engine/pkg/payment"
)

// Field-level checks run before dispatch so a single response can carry every
// problem at once, the way a form renders inline messages.

func checkPositive(errs []FieldError, field string, value float64) []FieldError {
	if value <= 0 {
		return append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s must be positive", field)})
	}
	return errs
}

func checkNonNegative(errs []FieldError, field string, value float64) []FieldError {
	if value < 0 {
		return append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s must not be negative", field)})
	}
	return errs
}

func checkRate(errs []FieldError, field string, value float64) []FieldError {
	if value <= 0 || value > 100 {
		return append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s must be between 0 and 100", field)})
	}
	return errs
}

func checkAmortization(errs []FieldError, field string, value int) []FieldError {
	if value < constants.MinAmortizationYears || value > constants.MaxAmortizationYears {
		return append(errs, FieldError{
			Field: field,
			Message: fmt.Sprintf("%s must be between %d and %d years",
				field, constants.MinAmortizationYears, constants.MaxAmortizationYears),
		})
	}
	return errs
}

func validatePayment(in payment.LoanInputs) []FieldError {
	var errs []FieldError
	errs = checkPositive(errs, "principal", in.Principal)
	errs = checkRate(errs, "annualRatePercent", in.AnnualRatePercent)
	errs = checkAmortization(errs, "amortizationYears", in.AmortizationYears)
	if !in.Frequency.Valid() {
		errs = append(errs, FieldError{
			Field:   "paymentFrequency",
			Message: fmt.Sprintf("unknown payment frequency %q", string(in.Frequency)),
		})
	}
	return errs
}

func validateAffordability(in affordability.Inputs) []FieldError {
	var errs []FieldError
	errs = checkNonNegative(errs, "annualIncome", in.AnnualIncome)
	errs = checkNonNegative(errs, "monthlyDebts", in.MonthlyDebts)
	errs = checkNonNegative(errs, "downPayment", in.DownPayment)
	if in.QualifyingRatePercent == 0 && in.ContractRatePercent > 0 {
		errs = checkRate(errs, "contractRatePercent", in.ContractRatePercent)
	} else {
		errs = checkRate(errs, "qualifyingRatePercent", in.QualifyingRatePercent)
	}
	errs = checkAmortization(errs, "amortizationYears", in.AmortizationYears)
	return errs
}

func validateDownPayment(in DownPaymentInputs) []FieldError {
	var errs []FieldError
	errs = checkPositive(errs, "purchasePrice", in.PurchasePrice)
	if in.DownPayment != nil {
		errs = checkNonNegative(errs, "downPayment", *in.DownPayment)
	}
	return errs
}

func validateLandTransfer(in LandTransferInputs) []FieldError {
	var errs []FieldError
	errs = checkNonNegative(errs, "purchasePrice", in.PurchasePrice)
	if _, err := landtransfer.Lookup(in.Jurisdiction); err != nil {
		errs = append(errs, FieldError{
			Field:   "jurisdiction",
			Message: fmt.Sprintf("unknown jurisdiction %q", in.Jurisdiction),
		})
	}
	return errs
}
