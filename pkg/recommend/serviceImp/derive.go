package serviceImp

import (
	"github.com/shopspring/decimal"

	"potato/entities"
)

var (
	hundred      = decimal.NewFromInt(100)
	fifty        = decimal.NewFromInt(50)
	defaultPrice = decimal.NewFromInt(entities.DefaultMarketPriceLKR)
)

// Derive keeps the catalog entries affordable with capital (cost <= capital),
// in catalog order, and adds revenue, profit and ROI at marketPrice per kg.
// It has no side effects and never re-validates capital.
func Derive(capital decimal.Decimal, catalog []entities.StrategyOption, marketPrice decimal.Decimal) []entities.EnrichedStrategy {
	out := make([]entities.EnrichedStrategy, 0, len(catalog))
	for _, o := range catalog {
		if o.Cost.GreaterThan(capital) {
			continue
		}
		revenue := o.Yield.Mul(marketPrice)
		profit := revenue.Sub(o.Cost)
		roi := decimal.Zero
		if !o.Cost.IsZero() {
			roi = profit.Mul(hundred).Div(o.Cost).Round(1)
		}
		out = append(out, entities.EnrichedStrategy{
			StrategyOption: o.Clone(),
			MarketPrice:    marketPrice,
			Revenue:        revenue,
			Profit:         profit,
			ROI:            roi.StringFixed(1),
			ROIBand:        band(roi),
		})
	}
	return out
}

func band(roi decimal.Decimal) entities.ROIBand {
	switch {
	case roi.GreaterThan(hundred):
		return entities.ROIHigh
	case roi.GreaterThan(fifty):
		return entities.ROIModerate
	}
	return entities.ROILow
}
