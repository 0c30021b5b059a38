package margin

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Unselected is the region value used when no region has been chosen.
const Unselected = ""

// DefaultModifier applies to any region missing from RegionModifiers.
const DefaultModifier = 1.0

// exactDigits is enough fractional digits to write any float64 without loss.
const exactDigits = 1074

// discountDampening scales how much each discount point erodes the adjusted margin percent.
const discountDampening = 0.7

// RegionModifiers maps a location region to the factor its selling cost is divided by.
// Values come from each region's average gross margin % relative to the overall mean.
var RegionModifiers = map[string]float64{
	"WEST":      0.93,
	"CENTRAL":   0.99,
	"NORTHEAST": 1.10,
	"SOUTHEAST": 0.98,
}

// Input represents the values a sales associate supplies for one calculation.
type Input struct {
	BasePrice   float64
	SellingCost float64
	DiscountPct float64
	Quantity    int
	Region      string
}

// Result contains the derived metrics of a calculation.
type Result struct {
	SellingPrice           float64 `json:"selling_price"`
	AdjustedCost           float64 `json:"adjusted_cost"`
	GrossMargin            float64 `json:"gross_margin"`
	GrossMarginPct         float64 `json:"gross_margin_pct"`
	GrossMarginPctAdjusted float64 `json:"gross_margin_pct_adjusted"`
	TotalProfit            float64 `json:"total_profit"`

	RegionModifier       float64 `json:"region_modifier"`
	DiscountImpactFactor float64 `json:"discount_impact_factor"`
	// PercentDefined is false when the selling price is zero; both percentages are then 0.
	PercentDefined bool `json:"percent_defined"`
}

// RegionModifier returns the cost modifier for region, or DefaultModifier when unknown.
func RegionModifier(region string) float64 {
	if m, ok := RegionModifiers[region]; ok {
		return m
	}
	return DefaultModifier
}

// Calculate computes margin metrics from a base price, selling cost, discount, quantity and region.
// Inputs are not range-checked.
func Calculate(in Input) Result {
	modifier := RegionModifier(in.Region)

	sellingPrice := in.BasePrice * (1.0 - in.DiscountPct/100.0)
	adjustedCost := in.SellingCost / modifier
	grossMargin := sellingPrice - adjustedCost
	impact := 1.0 - (in.DiscountPct / 100.0 * discountDampening)

	grossMarginPct := 0.0
	defined := sellingPrice != 0
	if defined {
		grossMarginPct = grossMargin / sellingPrice * 100.0
	}

	return Result{
		SellingPrice:           sellingPrice,
		AdjustedCost:           adjustedCost,
		GrossMargin:            grossMargin,
		GrossMarginPct:         grossMarginPct,
		GrossMarginPctAdjusted: grossMarginPct * impact,
		TotalProfit:            grossMargin * float64(in.Quantity),
		RegionModifier:         modifier,
		DiscountImpactFactor:   impact,
		PercentDefined:         defined,
	}
}

// Rounded returns a copy with every monetary and percent value rounded to 2 decimals,
// half to even on the exact binary value: 0.125 becomes 0.12 and 1.005 becomes 1.
func (r Result) Rounded() Result {
	r.SellingPrice = round2(r.SellingPrice)
	r.AdjustedCost = round2(r.AdjustedCost)
	r.GrossMargin = round2(r.GrossMargin)
	r.GrossMarginPct = round2(r.GrossMarginPct)
	r.GrossMarginPctAdjusted = round2(r.GrossMarginPctAdjusted)
	r.TotalProfit = round2(r.TotalProfit)
	return r
}

func round2(v float64) float64 {
	exact, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', exactDigits, 64))
	if err != nil {
		return v
	}
	f, _ := exact.RoundBank(2).Float64()
	return f
}
