package landtransfer

import "math"

// Bracket tables per jurisdiction. These change only with legislation and
// ship as code; adding a jurisdiction means adding data here, not logic.
//
// ON-TORONTO combines the Ontario provincial tax with Toronto's municipal
// tax, which mirrors the provincial brackets, so purchases inside Toronto
// resolve with a single table.
var jurisdictions = map[string]Jurisdiction{
	"ON": {
		Code: "ON",
		Name: "Ontario",
		Brackets: []Bracket{
			{UpTo: 55000, RatePercent: 0.5},
			{UpTo: 250000, RatePercent: 1.0},
			{UpTo: 400000, RatePercent: 1.5},
			{UpTo: 2000000, RatePercent: 2.0},
			{UpTo: math.Inf(1), RatePercent: 2.5},
		},
		FirstTimeBuyerRebate: &Rebate{MaxAmount: 4000},
	},
	"ON-TORONTO": {
		Code: "ON-TORONTO",
		Name: "Ontario (Toronto)",
		Brackets: []Bracket{
			{UpTo: 55000, RatePercent: 1.0},
			{UpTo: 250000, RatePercent: 2.0},
			{UpTo: 400000, RatePercent: 3.0},
			{UpTo: 2000000, RatePercent: 4.0},
			{UpTo: math.Inf(1), RatePercent: 5.0},
		},
		FirstTimeBuyerRebate: &Rebate{MaxAmount: 8475},
	},
	"BC": {
		Code: "BC",
		Name: "British Columbia",
		Brackets: []Bracket{
			{UpTo: 200000, RatePercent: 1.0},
			{UpTo: 2000000, RatePercent: 2.0},
			{UpTo: 3000000, RatePercent: 3.0},
			{UpTo: math.Inf(1), RatePercent: 5.0},
		},
		FirstTimeBuyerRebate: &Rebate{
			MaxAmount:     8000,
			FullPriceCap:  835000,
			PhaseOutBound: 860000,
		},
	},
	"AB": {
		Code:     "AB",
		Name:     "Alberta",
		Brackets: []Bracket{{UpTo: math.Inf(1), RatePercent: 0}},
	},
	"SK": {
		Code:     "SK",
		Name:     "Saskatchewan",
		Brackets: []Bracket{{UpTo: math.Inf(1), RatePercent: 0.3}},
	},
	"MB": {
		Code: "MB",
		Name: "Manitoba",
		Brackets: []Bracket{
			{UpTo: 30000, RatePercent: 0},
			{UpTo: 90000, RatePercent: 0.5},
			{UpTo: 150000, RatePercent: 1.0},
			{UpTo: 200000, RatePercent: 1.5},
			{UpTo: math.Inf(1), RatePercent: 2.0},
		},
	},
	"QC": {
		Code: "QC",
		Name: "Quebec",
		Brackets: []Bracket{
			{UpTo: 58900, RatePercent: 0.5},
			{UpTo: 294600, RatePercent: 1.0},
			{UpTo: math.Inf(1), RatePercent: 1.5},
		},
	},
	"NS": {
		Code:     "NS",
		Name:     "Nova Scotia",
		Brackets: []Bracket{{UpTo: math.Inf(1), RatePercent: 1.5}},
	},
	"NB": {
		Code:     "NB",
		Name:     "New Brunswick",
		Brackets: []Bracket{{UpTo: math.Inf(1), RatePercent: 1.0}},
	},
	"PE": {
		Code:     "PE",
		Name:     "Prince Edward Island",
		Brackets: []Bracket{{UpTo: math.Inf(1), RatePercent: 1.0}},
	},
	"NL": {
		Code: "NL",
		Name: "Newfoundland and Labrador",
		Brackets: []Bracket{
			{UpTo: 500, RatePercent: 0},
			{UpTo: math.Inf(1), RatePercent: 0.4},
		},
	},
	"YT": {
		Code:     "YT",
		Name:     "Yukon",
		Brackets: []Bracket{{UpTo: math.Inf(1), RatePercent: 0}},
	},
	"NT": {
		Code:     "NT",
		Name:     "Northwest Territories",
		Brackets: []Bracket{{UpTo: math.Inf(1), RatePercent: 0}},
	},
	"NU": {
		Code:     "NU",
		Name:     "Nunavut",
		Brackets: []Bracket{{UpTo: math.Inf(1), RatePercent: 0}},
	},
}
