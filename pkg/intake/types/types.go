package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"potato/entities"
)

// Form field names, as posted by the intake form.
const (
	FieldSeason           = "season_type"
	FieldDistrict         = "district"
	FieldFieldSize        = "field_size_acres"
	FieldVariety          = "potato_variety"
	FieldSoilType         = "soil_type"
	FieldFertilizerKg     = "planned_fertilizer_kg_per_acre"
	FieldSeedCost         = "seed_cost_lkr"
	FieldFertilizerCost   = "fertilizer_cost_lkr"
	FieldLaborCost        = "labor_cost_lkr"
	FieldAvailableCapital = "hands_on_money_lkr"
)

// FieldNames lists every form field in display order.
var FieldNames = []string{
	FieldSeason, FieldDistrict, FieldFieldSize, FieldVariety, FieldSoilType,
	FieldFertilizerKg, FieldSeedCost, FieldFertilizerCost, FieldLaborCost, FieldAvailableCapital,
}

// Form holds the raw, unvalidated values exactly as typed or selected.
type Form struct {
	SeasonType                 string `json:"season_type" form:"season_type"`
	District                   string `json:"district" form:"district"`
	FieldSizeAcres             string `json:"field_size_acres" form:"field_size_acres"`
	PotatoVariety              string `json:"potato_variety" form:"potato_variety"`
	SoilType                   string `json:"soil_type" form:"soil_type"`
	PlannedFertilizerKgPerAcre string `json:"planned_fertilizer_kg_per_acre" form:"planned_fertilizer_kg_per_acre"`
	SeedCostLKR                string `json:"seed_cost_lkr" form:"seed_cost_lkr"`
	FertilizerCostLKR          string `json:"fertilizer_cost_lkr" form:"fertilizer_cost_lkr"`
	LaborCostLKR               string `json:"labor_cost_lkr" form:"labor_cost_lkr"`
	HandsOnMoneyLKR            string `json:"hands_on_money_lkr" form:"hands_on_money_lkr"`
}

func (f *Form) ptr(name string) *string {
	switch name {
	case FieldSeason:
		return &f.SeasonType
	case FieldDistrict:
		return &f.District
	case FieldFieldSize:
		return &f.FieldSizeAcres
	case FieldVariety:
		return &f.PotatoVariety
	case FieldSoilType:
		return &f.SoilType
	case FieldFertilizerKg:
		return &f.PlannedFertilizerKgPerAcre
	case FieldSeedCost:
		return &f.SeedCostLKR
	case FieldFertilizerCost:
		return &f.FertilizerCostLKR
	case FieldLaborCost:
		return &f.LaborCostLKR
	case FieldAvailableCapital:
		return &f.HandsOnMoneyLKR
	}
	return nil
}

// UnmarshalJSON accepts numbers as well as strings for every field, so API
// clients may send {"field_size_acres": 3}.
func (f *Form) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := Form{}
	for _, name := range FieldNames {
		v, ok := raw[name]
		if !ok {
			continue
		}
		v = bytes.TrimSpace(v)
		switch {
		case bytes.Equal(v, []byte("null")):
		case len(v) > 0 && v[0] == '"':
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*out.ptr(name) = s
		default:
			var n json.Number
			if err := json.Unmarshal(v, &n); err != nil {
				return fmt.Errorf("%s: expected string or number", name)
			}
			*out.ptr(name) = n.String()
		}
	}
	*f = out
	return nil
}

// Get returns the raw value of a named field.
func (f Form) Get(name string) (string, bool) {
	p := f.ptr(name)
	if p == nil {
		return "", false
	}
	return *p, true
}

// With returns a copy of f with one field replaced. ok is false for an
// unknown field name, in which case f is returned unchanged.
func (f Form) With(name, value string) (Form, bool) {
	p := f.ptr(name)
	if p == nil {
		return f, false
	}
	*p = value
	return f, true
}

// FieldErrors maps a field name to its message. Empty means the form is valid.
type FieldErrors map[string]string

func (e FieldErrors) OK() bool { return len(e) == 0 }

// Without returns a copy of e lacking name.
func (e FieldErrors) Without(name string) FieldErrors {
	if _, ok := e[name]; !ok {
		return e
	}
	out := make(FieldErrors, len(e))
	for k, v := range e {
		if k != name {
			out[k] = v
		}
	}
	return out
}

type Options struct {
	Seasons   []entities.Option `json:"season_type"`
	Districts []entities.Option `json:"district"`
	Varieties []entities.Option `json:"potato_variety"`
	SoilTypes []entities.Option `json:"soil_type"`
}
