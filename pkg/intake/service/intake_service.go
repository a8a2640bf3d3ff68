package service

import (
	"potato/entities"
	"potato/pkg/intake/types"
)

type IntakeService interface {
	Validate(f types.Form) types.FieldErrors
	Parse(f types.Form) (*entities.FarmInputRecord, types.FieldErrors)
	Options() types.Options
}
