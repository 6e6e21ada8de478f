// Package landtransfer computes provincial and municipal land transfer tax
// using marginal bracket tables, including first-time-buyer rebates.
package landtransfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/maplerates/mortgage-engine/pkg/mathutil"
	"github.com/maplerates/mortgage-engine/pkg/validation"
)

// ErrUnknownJurisdiction indicates a code with no bracket table.
var ErrUnknownJurisdiction = errors.New("unknown jurisdiction")

// Bracket is one marginal tax bracket. UpTo is the inclusive upper bound of
// the price slice the rate applies to; the top bracket uses +Inf.
type Bracket struct {
	UpTo        float64
	RatePercent float64
}

// bracketJSON is the wire shape for Bracket. JSON has no representation for
// +Inf, so an unbounded top bracket travels with upTo omitted.
type bracketJSON struct {
	UpTo        *float64 `json:"upTo,omitempty"`
	RatePercent float64  `json:"ratePercent"`
}

func (b Bracket) MarshalJSON() ([]byte, error) {
	out := bracketJSON{RatePercent: b.RatePercent}
	if !math.IsInf(b.UpTo, 1) {
		out.UpTo = &b.UpTo
	}
	return json.Marshal(out)
}

func (b *Bracket) UnmarshalJSON(data []byte) error {
	var in bracketJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	b.RatePercent = in.RatePercent
	if in.UpTo != nil {
		b.UpTo = *in.UpTo
	} else {
		b.UpTo = math.Inf(1)
	}
	return nil
}

// Rebate describes a first-time-buyer rebate. MaxAmount caps the rebate.
// When PhaseOutBound is set, the rebate shrinks linearly to zero between
// FullPriceCap and PhaseOutBound (the British Columbia shape); a zero
// PhaseOutBound means the cap applies at any price (the Ontario shape).
type Rebate struct {
	MaxAmount     float64 `json:"maxAmount"`
	FullPriceCap  float64 `json:"fullPriceCap,omitempty"`
	PhaseOutBound float64 `json:"phaseOutBound,omitempty"`
}

// Jurisdiction is one province, territory, or combined municipal table.
type Jurisdiction struct {
	Code                 string    `json:"code"`
	Name                 string    `json:"name"`
	Brackets             []Bracket `json:"brackets"`
	FirstTimeBuyerRebate *Rebate   `json:"firstTimeBuyerRebate,omitempty"`
}

// Result holds the computed tax and any rebate applied.
type Result struct {
	TaxBeforeRebate float64 `json:"taxBeforeRebate"`
	RebateApplied   float64 `json:"rebateApplied"`
	NetTax          float64 `json:"netTax"`
}

// Jurisdictions returns the supported jurisdictions sorted by code, for UI
// dropdowns and the API listing.
func Jurisdictions() []Jurisdiction {
	codes := make([]string, 0, len(jurisdictions))
	for code := range jurisdictions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	list := make([]Jurisdiction, 0, len(codes))
	for _, code := range codes {
		list = append(list, jurisdictions[code])
	}
	return list
}

// Lookup returns the jurisdiction for a code, case-insensitively.
func Lookup(code string) (Jurisdiction, error) {
	j, ok := jurisdictions[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Jurisdiction{}, fmt.Errorf("%w: %q", ErrUnknownJurisdiction, code)
	}
	return j, nil
}

// Compute calculates the land transfer tax on a purchase. Brackets are
// marginal: each rate applies only to the slice of price inside its bracket.
// Zero-tax jurisdictions carry a single zero-rate bracket so the flow is
// identical everywhere.
func Compute(purchasePrice float64, jurisdictionCode string, firstTimeBuyer bool) (Result, error) {
	if err := validation.RequireNonNegative("purchasePrice", purchasePrice); err != nil {
		return Result{}, err
	}
	jurisdiction, err := Lookup(jurisdictionCode)
	if err != nil {
		return Result{}, err
	}

	tax := marginalTax(purchasePrice, jurisdiction.Brackets)

	var rebate float64
	if firstTimeBuyer && jurisdiction.FirstTimeBuyerRebate != nil {
		rebate = jurisdiction.FirstTimeBuyerRebate.amountFor(purchasePrice, tax)
	}

	net := tax - rebate
	if net < 0 {
		net = 0
	}
	return Result{
		TaxBeforeRebate: mathutil.Round(tax),
		RebateApplied:   mathutil.Round(rebate),
		NetTax:          mathutil.Round(net),
	}, nil
}

func marginalTax(price float64, brackets []Bracket) float64 {
	tax := 0.0
	lower := 0.0
	for _, bracket := range brackets {
		if price <= lower {
			break
		}
		upper := bracket.UpTo
		if price < upper {
			upper = price
		}
		tax += mathutil.ApplyPercentage(upper-lower, bracket.RatePercent)
		lower = bracket.UpTo
	}
	return tax
}

func (r *Rebate) amountFor(price, tax float64) float64 {
	rebate := r.MaxAmount
	if tax < rebate {
		rebate = tax
	}
	if r.PhaseOutBound <= 0 {
		return rebate
	}
	// Linear phase-out between the full-rebate price cap and the bound.
	switch {
	case price <= r.FullPriceCap:
		return rebate
	case price >= r.PhaseOutBound:
		return 0
	default:
		return rebate * (r.PhaseOutBound - price) / (r.PhaseOutBound - r.FullPriceCap)
	}
}
