package serviceImp

import (
	"potato/entities"
	"potato/pkg/intake/service"
	"potato/pkg/intake/types"
)

type intakeSvc struct{}

func NewIntakeService() service.IntakeService { return &intakeSvc{} }

func (s *intakeSvc) Validate(f types.Form) types.FieldErrors { return Validate(f) }

func (s *intakeSvc) Parse(f types.Form) (*entities.FarmInputRecord, types.FieldErrors) {
	return Parse(f)
}

func (s *intakeSvc) Options() types.Options {
	return types.Options{
		Seasons:   entities.SeasonOptions(),
		Districts: entities.DistrictOptions(),
		Varieties: entities.VarietyOptions(),
		SoilTypes: entities.SoilTypeOptions(),
	}
}
