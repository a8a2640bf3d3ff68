package entities

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Option is one entry of a form select: the label shown to the farmer and
// the value the form posts back.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Season string

const (
	SeasonMaha Season = "Maha"
	SeasonYala Season = "Yala"
)

type District string

const (
	DistrictNuwaraEliya District = "Nuwara Eliya"
	DistrictBadulla     District = "Badulla"
	DistrictJaffna      District = "Jaffna"
)

type Variety string

const (
	VarietyGranola Variety = "Granola"
	VarietyLocal   Variety = "Local"
	VarietyKufri   Variety = "Kufri"
)

type SoilType string

const (
	SoilClay  SoilType = "Clay"
	SoilSilty SoilType = "Silty"
	SoilSandy SoilType = "Sandy"
	SoilLoamy SoilType = "Loamy"
)

// Declaration order is also the encoded form value ("0", "1", ...).
var (
	Seasons   = []Season{SeasonMaha, SeasonYala}
	Districts = []District{DistrictNuwaraEliya, DistrictBadulla, DistrictJaffna}
	Varieties = []Variety{VarietyGranola, VarietyLocal, VarietyKufri}
	SoilTypes = []SoilType{SoilClay, SoilSilty, SoilSandy, SoilLoamy}
)

func ParseSeason(s string) (Season, bool)     { return parseEnum(s, Seasons, true) }
func ParseDistrict(s string) (District, bool) { return parseEnum(s, Districts, false) }
func ParseVariety(s string) (Variety, bool)   { return parseEnum(s, Varieties, true) }
func ParseSoilType(s string) (SoilType, bool) { return parseEnum(s, SoilTypes, true) }

func SeasonOptions() []Option   { return options(Seasons, true) }
func DistrictOptions() []Option { return options(Districts, false) }
func VarietyOptions() []Option  { return options(Varieties, true) }
func SoilTypeOptions() []Option { return options(SoilTypes, true) }

// parseEnum accepts a label (case-insensitive) or, when coded, the index
// the form encodes the option as.
func parseEnum[T ~string](raw string, all []T, coded bool) (T, bool) {
	var zero T
	v := strings.TrimSpace(raw)
	if v == "" {
		return zero, false
	}
	if coded {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 && i < len(all) && strconv.Itoa(i) == v {
			return all[i], true
		}
	}
	for _, o := range all {
		if strings.EqualFold(string(o), v) {
			return o, true
		}
	}
	return zero, false
}

func options[T ~string](all []T, coded bool) []Option {
	out := make([]Option, 0, len(all))
	for i, o := range all {
		val := string(o)
		if coded {
			val = strconv.Itoa(i)
		}
		out = append(out, Option{Label: string(o), Value: val})
	}
	return out
}

// FarmInputRecord is a fully validated intake submission. It only exists when
// every field passed validation; it is never persisted.
type FarmInputRecord struct {
	Season                     Season          `json:"season"`
	District                   District        `json:"district"`
	FieldSizeAcres             decimal.Decimal `json:"field_size_acres"`
	PotatoVariety              Variety         `json:"potato_variety"`
	SoilType                   SoilType        `json:"soil_type"`
	PlannedFertilizerKgPerAcre decimal.Decimal `json:"planned_fertilizer_kg_per_acre"`
	SeedCostLKR                decimal.Decimal `json:"seed_cost_lkr"`
	FertilizerCostLKR          decimal.Decimal `json:"fertilizer_cost_lkr"`
	LaborCostLKR               decimal.Decimal `json:"labor_cost_lkr"`
	AvailableCapitalLKR        decimal.Decimal `json:"available_capital_lkr"`
}
