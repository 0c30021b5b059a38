package main

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/aaparts/whatif-margin/internal/margin"
)

const (
	defaultBasePrice   = 900.0
	defaultSellingCost = 620.0
	defaultDiscountPct = 5.0
	defaultQuantity    = 1

	maxDiscountPct  = 20.0
	discountPctStep = 0.5
)

type calcForm struct {
	Region          string
	ProductID       string
	PartCategory    string
	SellingLocation string
	AreaName        string
	BasePrice       float64
	SellingCost     float64
	DiscountPct     float64
	Quantity        int
}

func defaultCalcForm() calcForm {
	return calcForm{
		BasePrice:   defaultBasePrice,
		SellingCost: defaultSellingCost,
		DiscountPct: defaultDiscountPct,
		Quantity:    defaultQuantity,
	}
}

func (f calcForm) input() margin.Input {
	return margin.Input{
		BasePrice:   f.BasePrice,
		SellingCost: f.SellingCost,
		DiscountPct: f.DiscountPct,
		Quantity:    f.Quantity,
		Region:      f.Region,
	}
}

// parseCalcForm reads the calculator fields from the query or posted form.
// Blank numeric fields keep their defaults. The returned form carries every
// value parsed before the first error so the page can be re-rendered.
func parseCalcForm(r *http.Request) (calcForm, error) {
	form := defaultCalcForm()
	form.Region = strings.TrimSpace(r.FormValue("region"))
	form.ProductID = strings.TrimSpace(r.FormValue("product_id"))
	form.PartCategory = strings.TrimSpace(r.FormValue("part_category"))
	form.SellingLocation = strings.TrimSpace(r.FormValue("selling_location"))
	form.AreaName = strings.TrimSpace(r.FormValue("area_name"))

	var err error
	if form.BasePrice, err = parseNonNegativeFloat(r.FormValue("base_price"), "base_price", defaultBasePrice); err != nil {
		return form, err
	}
	if form.SellingCost, err = parseNonNegativeFloat(r.FormValue("selling_cost"), "selling_cost", defaultSellingCost); err != nil {
		return form, err
	}
	if form.DiscountPct, err = parseDiscount(r.FormValue("discount_pct")); err != nil {
		return form, err
	}
	if form.Quantity, err = parseQuantity(r.FormValue("quantity")); err != nil {
		return form, err
	}

	return form, nil
}

func parseNonNegativeFloat(raw, field string, def float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return def, fmt.Errorf("%s must be numeric", field)
	}
	if value < 0 {
		return def, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return value, nil
}

func parseDiscount(raw string) (float64, error) {
	value, err := parseNonNegativeFloat(raw, "discount_pct", defaultDiscountPct)
	if err != nil {
		return defaultDiscountPct, err
	}
	if value > maxDiscountPct {
		return defaultDiscountPct, fmt.Errorf("discount_pct must be between 0 and %g", maxDiscountPct)
	}
	if steps := value / discountPctStep; steps != math.Trunc(steps) {
		return defaultDiscountPct, fmt.Errorf("discount_pct must be a multiple of %g", discountPctStep)
	}
	return value, nil
}

func parseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultQuantity, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultQuantity, fmt.Errorf("quantity must be a whole number")
	}
	if value < 1 {
		return defaultQuantity, fmt.Errorf("quantity must be at least 1")
	}
	return value, nil
}
