package types

import (
	"time"

	"github.com/shopspring/decimal"

	"potato/entities"
)

// NoStrategyMessage is shown when no strategy fits the available capital.
const NoStrategyMessage = "Your available capital is lower than the minimum required. Consider increasing your budget."

type Result struct {
	AvailableCapitalLKR decimal.Decimal             `json:"available_capital_lkr"`
	MarketPriceLKR      decimal.Decimal             `json:"market_price_lkr"`
	Count               int                         `json:"count"`
	Strategies          []entities.EnrichedStrategy `json:"strategies"`
	Message             string                      `json:"message,omitempty"`
	Record              *entities.FarmInputRecord   `json:"record,omitempty"`
	Notes               []NoteRef                   `json:"notes,omitempty"`
	GeneratedAt         time.Time                   `json:"generated_at"`
}

// NoteRef points at a knowledge-base passage relevant to the farm.
type NoteRef struct {
	Title     string `json:"title"`
	SourceURL string `json:"source_url,omitempty"`
	Excerpt   string `json:"excerpt"`
}
