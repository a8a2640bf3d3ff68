package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"potato/entities"
	"potato/pkg/recommend/types"
)

var ErrNoRecord = errors.New("no farm input record")

type RecommendService interface {
	// Recommend derives strategies for a validated record and attaches
	// related knowledge-base notes.
	Recommend(ctx context.Context, rec *entities.FarmInputRecord) (*types.Result, error)
	// ForCapital derives strategies from the available capital alone.
	ForCapital(ctx context.Context, capital decimal.Decimal) (*types.Result, error)
	Catalog() []entities.StrategyOption
	MarketPrice() decimal.Decimal
}
