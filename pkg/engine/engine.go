// Package engine is the single entry point for calculator callers. It
// validates raw inputs, dispatches to the calculation engines, and returns a
// uniform result shape; validation problems come back as data, never as a
// panic or raw error across the boundary.
package engine

import (
	"errors"
	"fmt"

	"github.com/maplerates/mortgage-engine/pkg/affordability"
	"github.com/maplerates/mortgage-engine/pkg/insurance"
	"github.com/maplerates/mortgage-engine/pkg/landtransfer"
	"github.com/maplerates/mortgage-engine/pkg/payment"
	"go.uber.org/zap"
)

// Kind identifies which calculator a request targets.
type Kind string

const (
	KindPayment         Kind = "payment"
	KindAffordability   Kind = "affordability"
	KindDownPayment     Kind = "downPayment"
	KindLandTransferTax Kind = "landTransferTax"
)

// Valid reports whether the kind is one of the supported calculators.
func (k Kind) Valid() bool {
	switch k {
	case KindPayment, KindAffordability, KindDownPayment, KindLandTransferTax:
		return true
	}
	return false
}

// Request carries the inputs for one calculation. Exactly one payload field
// matching Kind must be set.
type Request struct {
	Kind            Kind                  `json:"kind"`
	Payment         *payment.LoanInputs   `json:"payment,omitempty"`
	Affordability   *affordability.Inputs `json:"affordability,omitempty"`
	DownPayment     *DownPaymentInputs    `json:"downPayment,omitempty"`
	LandTransferTax *LandTransferInputs   `json:"landTransferTax,omitempty"`
}

// DownPaymentInputs holds the inputs for a down payment / insurance
// calculation. DownPayment is optional; when absent the premium is quoted at
// the regulatory minimum.
type DownPaymentInputs struct {
	PurchasePrice float64  `json:"purchasePrice"`
	DownPayment   *float64 `json:"downPayment,omitempty"`
}

// LandTransferInputs holds the inputs for a land transfer tax calculation.
type LandTransferInputs struct {
	PurchasePrice  float64 `json:"purchasePrice"`
	Jurisdiction   string  `json:"jurisdiction"`
	FirstTimeBuyer bool    `json:"firstTimeBuyer"`
}

// DownPaymentResult holds the outcome of a down payment calculation.
type DownPaymentResult struct {
	MinimumDownPayment float64 `json:"minimumDownPayment"`
	InsurancePremium   float64 `json:"insurancePremium"`
	Insurable          bool    `json:"insurable"`
}

// FieldError describes one validation problem tied to an input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the uniform calculation outcome: the Kind tag plus exactly one
// populated payload, or a non-empty Errors list when validation failed.
type Result struct {
	Kind            Kind                  `json:"kind"`
	Payment         *payment.Result       `json:"payment,omitempty"`
	Affordability   *affordability.Result `json:"affordability,omitempty"`
	DownPayment     *DownPaymentResult    `json:"downPayment,omitempty"`
	LandTransferTax *landtransfer.Result  `json:"landTransferTax,omitempty"`
	Errors          []FieldError          `json:"errors,omitempty"`
	Warnings        []string              `json:"warnings,omitempty"`
}

// OK reports whether the calculation produced a result.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Facade dispatches calculation requests to the engines.
type Facade struct {
	logger *zap.Logger
}

// New constructs a Facade.
func New(logger *zap.Logger) *Facade {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Facade{logger: logger}
}

// Jurisdictions lists the supported land transfer tax jurisdictions.
func (f *Facade) Jurisdictions() []landtransfer.Jurisdiction {
	return landtransfer.Jurisdictions()
}

// Calculate validates the request and runs the matching engine. It never
// panics and never returns a raw error; everything surfaces through Result.
func (f *Facade) Calculate(req Request) (result Result) {
	result.Kind = req.Kind

	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("calculation panicked",
				zap.String("op", "engine.Calculate"),
				zap.String("kind", string(req.Kind)),
				zap.Any("panic", r),
			)
			result = Result{
				Kind:   req.Kind,
				Errors: []FieldError{{Field: "", Message: "internal calculation error"}},
			}
		}
	}()

	if !req.Kind.Valid() {
		result.Errors = append(result.Errors, FieldError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown calculator kind %q", string(req.Kind)),
		})
		return result
	}

	switch req.Kind {
	case KindPayment:
		f.calculatePayment(req.Payment, &result)
	case KindAffordability:
		f.calculateAffordability(req.Affordability, &result)
	case KindDownPayment:
		f.calculateDownPayment(req.DownPayment, &result)
	case KindLandTransferTax:
		f.calculateLandTransferTax(req.LandTransferTax, &result)
	}

	if !result.OK() {
		f.logger.Debug("calculation rejected",
			zap.String("op", "engine.Calculate"),
			zap.String("kind", string(req.Kind)),
			zap.Int("fieldErrors", len(result.Errors)),
		)
	}
	return result
}

func (f *Facade) calculatePayment(in *payment.LoanInputs, result *Result) {
	if in == nil {
		result.Errors = append(result.Errors, FieldError{Field: "payment", Message: "payment inputs are required"})
		return
	}
	result.Errors = append(result.Errors, validatePayment(*in)...)
	if !result.OK() {
		return
	}

	res, err := payment.Compute(*in)
	if err != nil {
		result.Errors = append(result.Errors, FieldError{Field: "payment", Message: err.Error()})
		return
	}
	result.Payment = &res
}

func (f *Facade) calculateAffordability(in *affordability.Inputs, result *Result) {
	if in == nil {
		result.Errors = append(result.Errors, FieldError{Field: "affordability", Message: "affordability inputs are required"})
		return
	}
	result.Errors = append(result.Errors, validateAffordability(*in)...)
	if !result.OK() {
		return
	}

	res, err := affordability.MaxPrice(*in)
	if err != nil {
		result.Errors = append(result.Errors, FieldError{Field: "affordability", Message: err.Error()})
		return
	}
	result.Affordability = &res
	if res.QualifyingPayment == 0 {
		result.Warnings = append(result.Warnings,
			"income and existing debts leave no room for a mortgage payment; the maximum price is the down payment alone")
	}
}

func (f *Facade) calculateDownPayment(in *DownPaymentInputs, result *Result) {
	if in == nil {
		result.Errors = append(result.Errors, FieldError{Field: "downPayment", Message: "down payment inputs are required"})
		return
	}
	result.Errors = append(result.Errors, validateDownPayment(*in)...)
	if !result.OK() {
		return
	}

	minimum, err := insurance.MinimumDownPayment(in.PurchasePrice)
	if err != nil {
		result.Errors = append(result.Errors, FieldError{Field: "purchasePrice", Message: err.Error()})
		return
	}

	outcome := DownPaymentResult{MinimumDownPayment: minimum}

	actual := minimum
	if in.DownPayment != nil {
		actual = *in.DownPayment
	}

	premium, err := insurance.Premium(in.PurchasePrice, actual)
	switch {
	case err == nil:
		outcome.InsurancePremium = premium
		outcome.Insurable = true
	case errors.Is(err, insurance.ErrBelowMinimumDownPayment):
		result.Errors = append(result.Errors, FieldError{Field: "downPayment", Message: err.Error()})
		return
	case errors.Is(err, insurance.ErrUninsurable):
		result.Warnings = append(result.Warnings,
			"mortgage default insurance is not available for this purchase; a 20% down payment is required")
	default:
		result.Errors = append(result.Errors, FieldError{Field: "downPayment", Message: err.Error()})
		return
	}

	result.DownPayment = &outcome
}

func (f *Facade) calculateLandTransferTax(in *LandTransferInputs, result *Result) {
	if in == nil {
		result.Errors = append(result.Errors, FieldError{Field: "landTransferTax", Message: "land transfer tax inputs are required"})
		return
	}
	result.Errors = append(result.Errors, validateLandTransfer(*in)...)
	if !result.OK() {
		return
	}

	res, err := landtransfer.Compute(in.PurchasePrice, in.Jurisdiction, in.FirstTimeBuyer)
	if err != nil {
		result.Errors = append(result.Errors, FieldError{Field: "landTransferTax", Message: err.Error()})
		return
	}
	result.LandTransferTax = &res
}
