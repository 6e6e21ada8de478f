package payment

import (
	"errors"
	"math"
	"testing"

	"github.com/maplerates/mortgage-engine/pkg/ratemath"
	"github.com/maplerates/mortgage-engine/pkg/validation"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		loan          LoanInputs
		expectedRange []float64 // [min, max] expected periodic payment
	}{
		{
			// Semi-annual compounding at 5.5% gives an effective monthly
			// rate of ~0.4532%, so the payment lands near $2,441.57.
			name: "Standard 25-year mortgage",
			loan: LoanInputs{
				Principal:         400000,
				AnnualRatePercent: 5.5,
				AmortizationYears: 25,
				Frequency:         ratemath.Monthly,
			},
			expectedRange: []float64{2441.0, 2442.2},
		},
		{
			name: "30-year at 6 percent",
			loan: LoanInputs{
				Principal:         300000,
				AnnualRatePercent: 6.0,
				AmortizationYears: 30,
				Frequency:         ratemath.Monthly,
			},
			expectedRange: []float64{1780, 1800},
		},
		{
			name: "Biweekly non-accelerated",
			loan: LoanInputs{
				Principal:         400000,
				AnnualRatePercent: 5.5,
				AmortizationYears: 25,
				Frequency:         ratemath.Biweekly,
			},
			expectedRange: []float64{1125.0, 1126.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.loan)
			if err != nil {
				t.Fatalf("Compute() unexpected error: %v", err)
			}
			if result.PeriodicPayment < tt.expectedRange[0] || result.PeriodicPayment > tt.expectedRange[1] {
				t.Errorf("Compute() payment = %.2f, expected range [%.2f, %.2f]",
					result.PeriodicPayment, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestComputeTotalsInvariant(t *testing.T) {
	loans := []LoanInputs{
		{Principal: 400000, AnnualRatePercent: 5.5, AmortizationYears: 25, Frequency: ratemath.Monthly},
		{Principal: 250000, AnnualRatePercent: 3.2, AmortizationYears: 20, Frequency: ratemath.Biweekly},
		{Principal: 750000, AnnualRatePercent: 7.1, AmortizationYears: 30, Frequency: ratemath.Weekly},
		{Principal: 500000, AnnualRatePercent: 4.84, AmortizationYears: 25, Frequency: ratemath.BiweeklyAccelerated},
	}

	for _, loan := range loans {
		result, err := Compute(loan)
		if err != nil {
			t.Fatalf("Compute(%+v) error: %v", loan, err)
		}
		// TotalPaid is derived, so the identity holds to the cent.
		derived := result.PeriodicPayment * float64(result.NumberOfPayments)
		if math.Abs(result.TotalPaid-derived) > 0.01 {
			t.Errorf("TotalPaid = %.2f, expected payment x n = %.2f", result.TotalPaid, derived)
		}
		if math.Abs(result.TotalInterest-(result.TotalPaid-loan.Principal)) > 0.01 {
			t.Errorf("TotalInterest = %.2f, expected TotalPaid - principal = %.2f",
				result.TotalInterest, result.TotalPaid-loan.Principal)
		}
	}
}

func TestComputeAccelerated(t *testing.T) {
	base := LoanInputs{
		Principal:         400000,
		AnnualRatePercent: 5.5,
		AmortizationYears: 25,
		Frequency:         ratemath.Monthly,
	}
	monthly, err := Compute(base)
	if err != nil {
		t.Fatalf("Compute(monthly) error: %v", err)
	}

	biweekly := base
	biweekly.Frequency = ratemath.BiweeklyAccelerated
	biweeklyResult, err := Compute(biweekly)
	if err != nil {
		t.Fatalf("Compute(biweekly-accelerated) error: %v", err)
	}
	expected := monthly.PeriodicPayment * 12 / 26
	if math.Abs(biweeklyResult.PeriodicPayment-expected) > 0.01 {
		t.Errorf("accelerated biweekly payment = %.2f, expected monthly x 12/26 = %.2f",
			biweeklyResult.PeriodicPayment, expected)
	}

	weekly := base
	weekly.Frequency = ratemath.WeeklyAccelerated
	weeklyResult, err := Compute(weekly)
	if err != nil {
		t.Fatalf("Compute(weekly-accelerated) error: %v", err)
	}
	expected = monthly.PeriodicPayment * 12 / 52
	if math.Abs(weeklyResult.PeriodicPayment-expected) > 0.01 {
		t.Errorf("accelerated weekly payment = %.2f, expected monthly x 12/52 = %.2f",
			weeklyResult.PeriodicPayment, expected)
	}
}

func TestComputeInvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		loan LoanInputs
		want error
	}{
		{
			name: "Zero principal",
			loan: LoanInputs{AnnualRatePercent: 5.5, AmortizationYears: 25, Frequency: ratemath.Monthly},
			want: validation.ErrInvalidInput,
		},
		{
			name: "Negative principal",
			loan: LoanInputs{Principal: -1000, AnnualRatePercent: 5.5, AmortizationYears: 25, Frequency: ratemath.Monthly},
			want: validation.ErrInvalidInput,
		},
		{
			name: "Zero rate",
			loan: LoanInputs{Principal: 400000, AnnualRatePercent: 0, AmortizationYears: 25, Frequency: ratemath.Monthly},
			want: ratemath.ErrInvalidRate,
		},
		{
			name: "Amortization too long",
			loan: LoanInputs{Principal: 400000, AnnualRatePercent: 5.5, AmortizationYears: 35, Frequency: ratemath.Monthly},
			want: validation.ErrInvalidInput,
		},
		{
			name: "Unknown frequency",
			loan: LoanInputs{Principal: 400000, AnnualRatePercent: 5.5, AmortizationYears: 25, Frequency: "quarterly"},
			want: ratemath.ErrInvalidFrequency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.loan)
			if !errors.Is(err, tt.want) {
				t.Errorf("Compute() error = %v, expected %v", err, tt.want)
			}
		})
	}
}

func TestSchedule(t *testing.T) {
	loan := LoanInputs{
		Principal:         100000,
		AnnualRatePercent: 5.0,
		AmortizationYears: 10,
		Frequency:         ratemath.Monthly,
	}
	schedule, err := Schedule(loan)
	if err != nil {
		t.Fatalf("Schedule() error: %v", err)
	}
	if len(schedule) != 120 {
		t.Fatalf("Schedule() length = %d, expected 120", len(schedule))
	}

	last := schedule[len(schedule)-1]
	if math.Abs(last.RemainingPrincipal) > 0.01 {
		t.Errorf("final remaining principal = %.2f, expected 0", last.RemainingPrincipal)
	}

	totalPrincipal := 0.0
	for _, p := range schedule {
		totalPrincipal += p.Principal
	}
	if math.Abs(totalPrincipal-loan.Principal) > 1.0 {
		t.Errorf("sum of principal portions = %.2f, expected %.2f", totalPrincipal, loan.Principal)
	}

	// Interest declines as the balance amortizes.
	if schedule[0].Interest <= schedule[60].Interest {
		t.Errorf("interest should decline over time: first %.2f, midpoint %.2f",
			schedule[0].Interest, schedule[60].Interest)
	}
}

func TestScheduleAcceleratedShortensAmortization(t *testing.T) {
	loan := LoanInputs{
		Principal:         400000,
		AnnualRatePercent: 5.5,
		AmortizationYears: 25,
		Frequency:         ratemath.BiweeklyAccelerated,
	}
	schedule, err := Schedule(loan)
	if err != nil {
		t.Fatalf("Schedule() error: %v", err)
	}
	// Paying half the monthly amount every two weeks retires the loan
	// years ahead of the nominal 650 periods.
	if len(schedule) >= 25*26 {
		t.Errorf("accelerated schedule has %d periods, expected fewer than %d", len(schedule), 25*26)
	}
}

func TestPrincipalForPayment(t *testing.T) {
	loan := LoanInputs{
		Principal:         400000,
		AnnualRatePercent: 5.5,
		AmortizationYears: 25,
		Frequency:         ratemath.Monthly,
	}
	result, err := Compute(loan)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	rate, err := ratemath.PeriodicRate(loan.AnnualRatePercent, ratemath.Monthly)
	if err != nil {
		t.Fatalf("PeriodicRate() error: %v", err)
	}
	principal, err := PrincipalForPayment(result.PeriodicPayment, rate, result.NumberOfPayments)
	if err != nil {
		t.Fatalf("PrincipalForPayment() error: %v", err)
	}
	// Round-trips to the original principal within payment rounding error.
	if math.Abs(principal-loan.Principal) > 1.0 {
		t.Errorf("PrincipalForPayment() = %.2f, expected ~%.2f", principal, loan.Principal)
	}
}

func TestPrincipalForPaymentInvalid(t *testing.T) {
	if _, err := PrincipalForPayment(0, 0.004, 300); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero payment, got %v", err)
	}
	if _, err := PrincipalForPayment(2000, 0.004, 0); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero periods, got %v", err)
	}
}
