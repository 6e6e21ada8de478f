package engine

import (
	"testing"

	"github.com/maplerates/mortgage-engine/pkg/affordability"
	"github.com/maplerates/mortgage-engine/pkg/payment"
	"github.com/maplerates/mortgage-engine/pkg/ratemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFacade(t *testing.T) *Facade {
	t.Helper()
	return New(zap.NewNop())
}

func TestCalculatePayment(t *testing.T) {
	f := newFacade(t)
	result := f.Calculate(Request{
		Kind: KindPayment,
		Payment: &payment.LoanInputs{
			Principal:         400000,
			AnnualRatePercent: 5.5,
			AmortizationYears: 25,
			Frequency:         ratemath.Monthly,
		},
	})

	require.True(t, result.OK(), "unexpected errors: %v", result.Errors)
	require.NotNil(t, result.Payment)
	assert.Equal(t, KindPayment, result.Kind)
	assert.InDelta(t, 2441.57, result.Payment.PeriodicPayment, 0.75)
	assert.Equal(t, 300, result.Payment.NumberOfPayments)
	assert.Nil(t, result.Affordability)
	assert.Nil(t, result.DownPayment)
	assert.Nil(t, result.LandTransferTax)
}

func TestCalculatePaymentAggregatesFieldErrors(t *testing.T) {
	f := newFacade(t)
	result := f.Calculate(Request{
		Kind: KindPayment,
		Payment: &payment.LoanInputs{
			Principal:         -1,
			AnnualRatePercent: 0,
			AmortizationYears: 45,
			Frequency:         "quarterly",
		},
	})

	require.False(t, result.OK())
	assert.Len(t, result.Errors, 4)
	fields := make(map[string]bool)
	for _, fe := range result.Errors {
		fields[fe.Field] = true
	}
	for _, field := range []string{"principal", "annualRatePercent", "amortizationYears", "paymentFrequency"} {
		assert.True(t, fields[field], "expected a field error for %s", field)
	}
	assert.Nil(t, result.Payment)
}

func TestCalculateMissingPayload(t *testing.T) {
	f := newFacade(t)
	result := f.Calculate(Request{Kind: KindPayment})
	require.False(t, result.OK())
	assert.Equal(t, "payment", result.Errors[0].Field)
}

func TestCalculateUnknownKind(t *testing.T) {
	f := newFacade(t)
	result := f.Calculate(Request{Kind: "refinance"})
	require.False(t, result.OK())
	assert.Equal(t, "kind", result.Errors[0].Field)
}

func TestCalculateAffordability(t *testing.T) {
	f := newFacade(t)
	result := f.Calculate(Request{
		Kind: KindAffordability,
		Affordability: &affordability.Inputs{
			AnnualIncome:          100000,
			MonthlyDebts:          500,
			DownPayment:           100000,
			QualifyingRatePercent: 5.5,
			AmortizationYears:     25,
		},
	})

	require.True(t, result.OK(), "unexpected errors: %v", result.Errors)
	require.NotNil(t, result.Affordability)
	assert.InDelta(t, 2666.67, result.Affordability.QualifyingPayment, 0.01)
	assert.Greater(t, result.Affordability.MaxPrice, 500000.0)
	assert.Empty(t, result.Warnings)
}

func TestCalculateAffordabilityContractRateOnly(t *testing.T) {
	// A request carrying only the contract rate validates and qualifies at
	// the stress-tested rate, so it affords less than the contract rate would.
	f := newFacade(t)
	contract := f.Calculate(Request{
		Kind: KindAffordability,
		Affordability: &affordability.Inputs{
			AnnualIncome:        100000,
			MonthlyDebts:        500,
			DownPayment:         100000,
			ContractRatePercent: 5.5,
			AmortizationYears:   25,
		},
	})
	require.True(t, contract.OK(), "unexpected errors: %v", contract.Errors)
	require.NotNil(t, contract.Affordability)

	explicit := f.Calculate(Request{
		Kind: KindAffordability,
		Affordability: &affordability.Inputs{
			AnnualIncome:          100000,
			MonthlyDebts:          500,
			DownPayment:           100000,
			QualifyingRatePercent: 5.5,
			AmortizationYears:     25,
		},
	})
	require.True(t, explicit.OK())
	assert.Less(t, contract.Affordability.MaxPrice, explicit.Affordability.MaxPrice)
}

func TestCalculateAffordabilityNoRateAtAll(t *testing.T) {
	f := newFacade(t)
	result := f.Calculate(Request{
		Kind: KindAffordability,
		Affordability: &affordability.Inputs{
			AnnualIncome:      100000,
			DownPayment:       50000,
			AmortizationYears: 25,
		},
	})

	require.False(t, result.OK())
	assert.Equal(t, "qualifyingRatePercent", result.Errors[0].Field)
}

func TestCalculateAffordabilityNoCapacityWarning(t *testing.T) {
	f := newFacade(t)
	result := f.Calculate(Request{
		Kind: KindAffordability,
		Affordability: &affordability.Inputs{
			AnnualIncome:          60000,
			MonthlyDebts:          2500,
			DownPayment:           80000,
			QualifyingRatePercent: 5.5,
			AmortizationYears:     25,
		},
	})

	require.True(t, result.OK())
	require.NotNil(t, result.Affordability)
	assert.Equal(t, 80000.0, result.Affordability.MaxPrice)
	assert.NotEmpty(t, result.Warnings)
}

func TestCalculateDownPayment(t *testing.T) {
	f := newFacade(t)
	down := 35000.0
	result := f.Calculate(Request{
		Kind:        KindDownPayment,
		DownPayment: &DownPaymentInputs{PurchasePrice: 600000, DownPayment: &down},
	})

	require.True(t, result.OK(), "unexpected errors: %v", result.Errors)
	require.NotNil(t, result.DownPayment)
	assert.InDelta(t, 35000, result.DownPayment.MinimumDownPayment, 0.01)
	assert.InDelta(t, 22600, result.DownPayment.InsurancePremium, 0.01)
	assert.True(t, result.DownPayment.Insurable)
}

func TestCalculateDownPaymentDefaultsToMinimum(t *testing.T) {
	f := newFacade(t)
	result := f.Calculate(Request{
		Kind:        KindDownPayment,
		DownPayment: &DownPaymentInputs{PurchasePrice: 600000},
	})

	require.True(t, result.OK())
	require.NotNil(t, result.DownPayment)
	assert.InDelta(t, 35000, result.DownPayment.MinimumDownPayment, 0.01)
	assert.InDelta(t, 22600, result.DownPayment.InsurancePremium, 0.01)
}

func TestCalculateDownPaymentUninsurablePrice(t *testing.T) {
	// At $1.2M any down payment is uninsurable; the minimum is still
	// reported and the failure surfaces as a warning, not an error.
	f := newFacade(t)
	down := 600000.0
	result := f.Calculate(Request{
		Kind:        KindDownPayment,
		DownPayment: &DownPaymentInputs{PurchasePrice: 1200000, DownPayment: &down},
	})

	require.True(t, result.OK(), "unexpected errors: %v", result.Errors)
	require.NotNil(t, result.DownPayment)
	assert.InDelta(t, 240000, result.DownPayment.MinimumDownPayment, 0.01)
	assert.False(t, result.DownPayment.Insurable)
	assert.Zero(t, result.DownPayment.InsurancePremium)
	assert.NotEmpty(t, result.Warnings)
}

func TestCalculateDownPaymentBelowMinimum(t *testing.T) {
	f := newFacade(t)
	down := 20000.0
	result := f.Calculate(Request{
		Kind:        KindDownPayment,
		DownPayment: &DownPaymentInputs{PurchasePrice: 600000, DownPayment: &down},
	})

	require.False(t, result.OK())
	assert.Equal(t, "downPayment", result.Errors[0].Field)
	assert.Nil(t, result.DownPayment)
}

func TestCalculateLandTransferTax(t *testing.T) {
	f := newFacade(t)
	result := f.Calculate(Request{
		Kind: KindLandTransferTax,
		LandTransferTax: &LandTransferInputs{
			PurchasePrice:  500000,
			Jurisdiction:   "ON",
			FirstTimeBuyer: true,
		},
	})

	require.True(t, result.OK(), "unexpected errors: %v", result.Errors)
	require.NotNil(t, result.LandTransferTax)
	assert.InDelta(t, 6475, result.LandTransferTax.TaxBeforeRebate, 0.01)
	assert.InDelta(t, 4000, result.LandTransferTax.RebateApplied, 0.01)
	assert.InDelta(t, 2475, result.LandTransferTax.NetTax, 0.01)
}

func TestCalculateLandTransferTaxUnknownJurisdiction(t *testing.T) {
	f := newFacade(t)
	result := f.Calculate(Request{
		Kind:            KindLandTransferTax,
		LandTransferTax: &LandTransferInputs{PurchasePrice: 500000, Jurisdiction: "ZZ"},
	})

	require.False(t, result.OK())
	assert.Equal(t, "jurisdiction", result.Errors[0].Field)
}

func TestJurisdictions(t *testing.T) {
	f := newFacade(t)
	list := f.Jurisdictions()
	assert.Len(t, list, 14)
}

func TestCalculateNilLoggerFacade(t *testing.T) {
	f := New(nil)
	result := f.Calculate(Request{
		Kind: KindPayment,
		Payment: &payment.LoanInputs{
			Principal:         250000,
			AnnualRatePercent: 4.5,
			AmortizationYears: 20,
			Frequency:         ratemath.Monthly,
		},
	})
	assert.True(t, result.OK())
}
