package margin

const (
	sweepStart = 0
	sweepEnd   = 50
	sweepStep  = 5
)

// Point is one sample of the discount sensitivity curve.
type Point struct {
	DiscountPct            float64 `json:"discount_pct"`
	GrossMargin            float64 `json:"gross_margin"`
	GrossMarginPct         float64 `json:"gross_margin_pct"`
	GrossMarginPctAdjusted float64 `json:"gross_margin_pct_adjusted"`
}

// DefaultDiscounts returns the discount percentages plotted on the sensitivity chart: 0, 5, ..., 50.
func DefaultDiscounts() []float64 {
	discounts := make([]float64, 0, (sweepEnd-sweepStart)/sweepStep+1)
	for d := sweepStart; d <= sweepEnd; d += sweepStep {
		discounts = append(discounts, float64(d))
	}
	return discounts
}

// Sweep evaluates Calculate once per discount, holding the other inputs fixed.
// Points are returned in the order of discounts.
func Sweep(basePrice, sellingCost float64, quantity int, region string, discounts []float64) []Point {
	points := make([]Point, 0, len(discounts))
	for _, d := range discounts {
		res := Calculate(Input{
			BasePrice:   basePrice,
			SellingCost: sellingCost,
			DiscountPct: d,
			Quantity:    quantity,
			Region:      region,
		})
		points = append(points, Point{
			DiscountPct:            d,
			GrossMargin:            res.GrossMargin,
			GrossMarginPct:         res.GrossMarginPct,
			GrossMarginPctAdjusted: res.GrossMarginPctAdjusted,
		})
	}
	return points
}

// Rounded returns a copy with the margin values rounded like Result.Rounded.
func (p Point) Rounded() Point {
	p.GrossMargin = round2(p.GrossMargin)
	p.GrossMarginPct = round2(p.GrossMarginPct)
	p.GrossMarginPctAdjusted = round2(p.GrossMarginPctAdjusted)
	return p
}
