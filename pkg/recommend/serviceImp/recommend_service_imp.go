package serviceImp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"potato/entities"
	"potato/pkg/catalog"
	kbsvc "potato/pkg/kb/serviceImp"
	"potato/pkg/recommend/service"
	"potato/pkg/recommend/types"
)

const (
	notesK          = 4
	maxExcerptRunes = 280
)

type kbSearcher interface {
	Search(ctx context.Context, query string, k int) ([]entities.KBChunk, error)
	DocsMeta(ctx context.Context, ids []uint) (map[uint]entities.KBDocument, error)
}

type RecommendSvc struct {
	catalog     []entities.StrategyOption
	marketPrice decimal.Decimal
	kb          kbSearcher // optional
	log         *zap.Logger
	now         func() time.Time
}

var _ service.RecommendService = (*RecommendSvc)(nil)

// NewRecommendService copies cat; a non-positive marketPrice means the
// default 180 LKR/kg. kb may be nil.
func NewRecommendService(cat []entities.StrategyOption, marketPrice decimal.Decimal, kb kbSearcher, log *zap.Logger) *RecommendSvc {
	if !marketPrice.IsPositive() {
		marketPrice = defaultPrice
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RecommendSvc{
		catalog:     catalog.Clone(cat),
		marketPrice: marketPrice,
		kb:          kb,
		log:         log.Named("recommend"),
		now:         time.Now,
	}
}

func (s *RecommendSvc) Catalog() []entities.StrategyOption { return catalog.Clone(s.catalog) }

func (s *RecommendSvc) MarketPrice() decimal.Decimal { return s.marketPrice }

func (s *RecommendSvc) ForCapital(ctx context.Context, capital decimal.Decimal) (*types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	strategies := Derive(capital, s.catalog, s.marketPrice)
	res := &types.Result{
		AvailableCapitalLKR: capital,
		MarketPriceLKR:      s.marketPrice,
		Count:               len(strategies),
		Strategies:          strategies,
		GeneratedAt:         s.now().UTC(),
	}
	if len(strategies) == 0 {
		res.Message = types.NoStrategyMessage
	}
	s.log.Debug("derived strategies",
		zap.String("capital_lkr", capital.String()),
		zap.Int("count", res.Count))
	return res, nil
}

func (s *RecommendSvc) Recommend(ctx context.Context, rec *entities.FarmInputRecord) (*types.Result, error) {
	if rec == nil {
		return nil, service.ErrNoRecord
	}
	res, err := s.ForCapital(ctx, rec.AvailableCapitalLKR)
	if err != nil {
		return nil, err
	}
	res.Record = rec

	if s.kb != nil {
		notes, err := s.notes(ctx, rec)
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case err != nil:
			// notes are best-effort
			s.log.Warn("kb lookup failed", zap.Error(err))
		default:
			res.Notes = notes
		}
	}
	return res, nil
}

func (s *RecommendSvc) notes(ctx context.Context, rec *entities.FarmInputRecord) ([]types.NoteRef, error) {
	query := strings.Join([]string{
		string(rec.PotatoVariety), "potato", string(rec.District),
		string(rec.SoilType), string(rec.Season),
	}, " ")
	chunks, err := s.kb.Search(ctx, query, notesK)
	if err != nil || len(chunks) == 0 {
		return nil, err
	}

	meta, err := s.kb.DocsMeta(ctx, kbsvc.DocIDs(chunks))
	if err != nil {
		return nil, err
	}

	out := make([]types.NoteRef, 0, len(chunks))
	for _, ch := range chunks {
		d := meta[ch.DocID]
		out = append(out, types.NoteRef{Title: d.Title, SourceURL: d.SourceURL, Excerpt: excerpt(ch.Text)})
	}
	return out, nil
}

func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxExcerptRunes {
		return s
	}
	return string(r[:maxExcerptRunes]) + "…"
}

// SampleRecord is the demonstration farm used by the sample endpoint.
func SampleRecord() *entities.FarmInputRecord {
	return &entities.FarmInputRecord{
		Season:                     entities.SeasonMaha,
		District:                   entities.DistrictNuwaraEliya,
		FieldSizeAcres:             decimal.NewFromInt(3),
		PotatoVariety:              entities.VarietyGranola,
		SoilType:                   entities.SoilSandy,
		PlannedFertilizerKgPerAcre: decimal.NewFromInt(150),
		SeedCostLKR:                decimal.NewFromInt(45000),
		FertilizerCostLKR:          decimal.NewFromInt(30000),
		LaborCostLKR:               decimal.NewFromInt(75000),
		AvailableCapitalLKR:        decimal.NewFromInt(200000),
	}
}
