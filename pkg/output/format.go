// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"fmt"
	"io"

	"github.com/maplerates/mortgage-engine/pkg/engine"
	"github.com/maplerates/mortgage-engine/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, result engine.Result) {
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "--- Results for %s calculation ---\n", result.Kind)

	for _, fieldError := range result.Errors {
		fmt.Fprintf(w, "error: %s: %s\n", fieldError.Field, fieldError.Message)
	}
	if !result.OK() {
		return
	}

	switch {
	case result.Payment != nil:
		r := result.Payment
		_, _ = p.Fprintf(w, "Periodic payment   | $%.2f\n", r.PeriodicPayment)
		_, _ = p.Fprintf(w, "Number of payments | %d\n", r.NumberOfPayments)
		_, _ = p.Fprintf(w, "Total paid         | $%.2f\n", r.TotalPaid)
		_, _ = p.Fprintf(w, "Total interest     | $%.2f\n", r.TotalInterest)
	case result.Affordability != nil:
		r := result.Affordability
		_, _ = p.Fprintf(w, "Maximum price      | $%.2f\n", r.MaxPrice)
		_, _ = p.Fprintf(w, "Qualifying payment | $%.2f\n", r.QualifyingPayment)
		fmt.Fprintf(w, "GDS ratio          | %s\n", format.Percent(r.GDSRatio*100))
		fmt.Fprintf(w, "TDS ratio          | %s\n", format.Percent(r.TDSRatio*100))
	case result.DownPayment != nil:
		r := result.DownPayment
		fmt.Fprintf(w, "Minimum down payment | %s\n", format.Currency(r.MinimumDownPayment))
		if r.Insurable {
			fmt.Fprintf(w, "Insurance premium    | %s\n", format.Currency(r.InsurancePremium))
		} else {
			fmt.Fprintf(w, "Insurance premium    | not available\n")
		}
	case result.LandTransferTax != nil:
		r := result.LandTransferTax
		_, _ = p.Fprintf(w, "Tax before rebate | $%.2f\n", r.TaxBeforeRebate)
		_, _ = p.Fprintf(w, "Rebate applied    | $%.2f\n", r.RebateApplied)
		_, _ = p.Fprintf(w, "Net tax           | $%.2f\n", r.NetTax)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

// CsvFormat writes in comma-separated value format.
func CsvFormat(w io.Writer, result engine.Result) {
	fmt.Fprintf(w, "\"metric\",\"value\"\n")

	for _, fieldError := range result.Errors {
		fmt.Fprintf(w, "\"error:%s\",%q\n", fieldError.Field, fieldError.Message)
	}
	if !result.OK() {
		return
	}

	switch {
	case result.Payment != nil:
		r := result.Payment
		fmt.Fprintf(w, "\"periodicPayment\",\"%.2f\"\n", r.PeriodicPayment)
		fmt.Fprintf(w, "\"numberOfPayments\",\"%d\"\n", r.NumberOfPayments)
		fmt.Fprintf(w, "\"totalPaid\",\"%.2f\"\n", r.TotalPaid)
		fmt.Fprintf(w, "\"totalInterest\",\"%.2f\"\n", r.TotalInterest)
	case result.Affordability != nil:
		r := result.Affordability
		fmt.Fprintf(w, "\"maxPrice\",\"%.2f\"\n", r.MaxPrice)
		fmt.Fprintf(w, "\"qualifyingPayment\",\"%.2f\"\n", r.QualifyingPayment)
		fmt.Fprintf(w, "\"gdsRatio\",\"%.4f\"\n", r.GDSRatio)
		fmt.Fprintf(w, "\"tdsRatio\",\"%.4f\"\n", r.TDSRatio)
	case result.DownPayment != nil:
		r := result.DownPayment
		fmt.Fprintf(w, "\"minimumDownPayment\",\"%.2f\"\n", r.MinimumDownPayment)
		fmt.Fprintf(w, "\"insurancePremium\",\"%.2f\"\n", r.InsurancePremium)
		fmt.Fprintf(w, "\"insurable\",\"%t\"\n", r.Insurable)
	case result.LandTransferTax != nil:
		r := result.LandTransferTax
		fmt.Fprintf(w, "\"taxBeforeRebate\",\"%.2f\"\n", r.TaxBeforeRebate)
		fmt.Fprintf(w, "\"rebateApplied\",\"%.2f\"\n", r.RebateApplied)
		fmt.Fprintf(w, "\"netTax\",\"%.2f\"\n", r.NetTax)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "\"warning\",%q\n", warning)
	}
}
