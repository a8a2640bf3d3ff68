package entities

import "github.com/shopspring/decimal"

// DefaultMarketPriceLKR is the farm-gate potato price used for revenue, per kg.
const DefaultMarketPriceLKR = 180

type StrategyOption struct {
	Name        string          `json:"name"`
	SeedAmount  string          `json:"seed_amount"`
	Cost        decimal.Decimal `json:"cost"`  // LKR
	Yield       decimal.Decimal `json:"yield"` // kg
	Description string          `json:"description"`
	Benefits    []string        `json:"benefits"`
	Icon        string          `json:"icon"`
}

// Clone returns a copy that shares no slices with o.
func (o StrategyOption) Clone() StrategyOption {
	o.Benefits = append([]string(nil), o.Benefits...)
	return o
}

type ROIBand string

const (
	ROIHigh     ROIBand = "high"     // roi > 100
	ROIModerate ROIBand = "moderate" // roi > 50
	ROILow      ROIBand = "low"
)

type EnrichedStrategy struct {
	StrategyOption
	MarketPrice decimal.Decimal `json:"market_price"`
	Revenue     decimal.Decimal `json:"revenue"`
	Profit      decimal.Decimal `json:"profit"`
	ROI         string          `json:"roi"` // percent, one decimal place
	ROIBand     ROIBand         `json:"roi_band"`
}
