package serviceImp

import (
	"strings"

	"github.com/shopspring/decimal"

	"potato/entities"
	"potato/pkg/intake/types"
)

const (
	msgInvalidNumber = "Please enter a valid number"

	// MinCapitalLKR is the least working capital a farmer must declare.
	MinCapitalLKR = 150000
	// MaxFieldSizeAcres bounds the plot size the advisor is calibrated for.
	MaxFieldSizeAcres = 5
)

var (
	minCapital   = decimal.NewFromInt(MinCapitalLKR)
	maxFieldSize = decimal.NewFromInt(MaxFieldSizeAcres)
)

// Validate checks every field independently and reports all failures.
func Validate(f types.Form) types.FieldErrors {
	_, errs := Parse(f)
	return errs
}

// Parse validates f and, only when every field passes, returns the typed
// record. The error set is never partial: either all failures or none.
func Parse(f types.Form) (*entities.FarmInputRecord, types.FieldErrors) {
	errs := types.FieldErrors{}
	var rec entities.FarmInputRecord

	// Selects
	if v, msg := pick(f.SeasonType, entities.ParseSeason, "season"); msg != "" {
		errs[types.FieldSeason] = msg
	} else {
		rec.Season = v
	}
	if v, msg := pick(f.District, entities.ParseDistrict, "district"); msg != "" {
		errs[types.FieldDistrict] = msg
	} else {
		rec.District = v
	}
	if v, msg := pick(f.PotatoVariety, entities.ParseVariety, "potato variety"); msg != "" {
		errs[types.FieldVariety] = msg
	} else {
		rec.PotatoVariety = v
	}
	if v, msg := pick(f.SoilType, entities.ParseSoilType, "soil type"); msg != "" {
		errs[types.FieldSoilType] = msg
	} else {
		rec.SoilType = v
	}

	// Field size: 0 < x <= 5
	if v, msg := number(f.FieldSizeAcres, "Field size is required"); msg != "" {
		errs[types.FieldFieldSize] = msg
	} else if !v.IsPositive() {
		errs[types.FieldFieldSize] = "Field size must be greater than 0"
	} else if v.GreaterThan(maxFieldSize) {
		errs[types.FieldFieldSize] = "Field size cannot exceed 5 acres"
	} else {
		rec.FieldSizeAcres = v
	}

	nonNegative(f.PlannedFertilizerKgPerAcre, types.FieldFertilizerKg, "Fertilizer amount", errs, &rec.PlannedFertilizerKgPerAcre)
	nonNegative(f.SeedCostLKR, types.FieldSeedCost, "Seed cost", errs, &rec.SeedCostLKR)
	nonNegative(f.FertilizerCostLKR, types.FieldFertilizerCost, "Fertilizer cost", errs, &rec.FertilizerCostLKR)
	nonNegative(f.LaborCostLKR, types.FieldLaborCost, "Labor cost", errs, &rec.LaborCostLKR)

	if v, msg := number(f.HandsOnMoneyLKR, "Available capital is required"); msg != "" {
		errs[types.FieldAvailableCapital] = msg
	} else if v.LessThan(minCapital) {
		errs[types.FieldAvailableCapital] = "Minimum capital required is LKR 150,000"
	} else {
		rec.AvailableCapitalLKR = v
	}

	if !errs.OK() {
		return nil, errs
	}
	return &rec, errs
}

// pick resolves a select value; an unknown non-empty value is reported
// separately from a missing one.
func pick[T any](raw string, parse func(string) (T, bool), what string) (T, string) {
	var zero T
	if strings.TrimSpace(raw) == "" {
		return zero, "Please select a " + what
	}
	v, ok := parse(raw)
	if !ok {
		return zero, "Please select a valid " + what
	}
	return v, ""
}

// number parses a required decimal field. Blank input reports required.
func number(raw, required string) (decimal.Decimal, string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, required
	}
	v, err := entities.ParseAmount(s)
	if err != nil {
		return decimal.Zero, msgInvalidNumber
	}
	return v, ""
}

func nonNegative(raw, field, label string, errs types.FieldErrors, dst *decimal.Decimal) {
	v, msg := number(raw, label+" is required")
	switch {
	case msg != "":
		errs[field] = msg
	case v.IsNegative():
		errs[field] = label + " cannot be negative"
	default:
		*dst = v
	}
}
