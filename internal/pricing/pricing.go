// Package pricing computes per-item sale prices from a gold price
// snapshot and exposes the never-fails read boundary the catalog layer
// consumes.
package pricing

import (
	"github.com/shopspring/decimal"
)

var (
	taxRate    = decimal.NewFromFloat(0.09)
	profitRate = decimal.NewFromFloat(0.07)
	hundred    = decimal.NewFromInt(100)
)

// Item is the per-item computation input supplied by the catalog layer.
type Item struct {
	Weight           float64 `json:"weight"`
	LaborWagePercent float64 `json:"labor_wage_percent"`
	DiscountPercent  int     `json:"discount_percent"`
}

// FinalPrice turns a gold price snapshot and item attributes into a final
// integer price. Each step compounds on the prior result, so the order is
// fixed: gold value, labor, tax, profit, discount. Intermediate results
// keep full precision; only the final value is truncated toward zero.
// A zero gold price yields zero for every item.
func FinalPrice(goldPrice int64, weight, laborWagePercent float64, discountPercent int) int64 {
	base := decimal.NewFromInt(goldPrice).Mul(decimal.NewFromFloat(weight))
	withLabor := base.Add(base.Mul(decimal.NewFromFloat(laborWagePercent).Div(hundred)))
	withTax := withLabor.Add(withLabor.Mul(taxRate))
	withProfit := withTax.Add(withTax.Mul(profitRate))

	final := withProfit
	if discountPercent > 0 {
		final = withProfit.Sub(withProfit.Mul(decimal.NewFromInt(int64(discountPercent)).Div(hundred)))
	}
	return final.IntPart()
}
