package serviceImp

import (
	"potato/entities"
	"potato/pkg/intake/types"
)

// State is one snapshot of an intake session. Reduce never mutates a State
// it is given; it returns the next one.
type State struct {
	Form      types.Form
	Errors    types.FieldErrors
	Submitted bool
	Record    *entities.FarmInputRecord
}

type Action interface{ apply(State) State }

// SetField edits one field and clears any error shown for it. Editing after a
// successful submit invalidates the submitted record.
type SetField struct{ Name, Value string }

// Submit validates the whole form.
type Submit struct{}

// Reset clears every field, error and the submitted flag.
type Reset struct{}

func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

func (a SetField) apply(s State) State {
	f, ok := s.Form.With(a.Name, a.Value)
	if !ok {
		return s
	}
	return State{Form: f, Errors: s.Errors.Without(a.Name)}
}

func (Submit) apply(s State) State {
	rec, errs := Parse(s.Form)
	if !errs.OK() {
		return State{Form: s.Form, Errors: errs}
	}
	return State{Form: s.Form, Errors: types.FieldErrors{}, Submitted: true, Record: rec}
}

func (Reset) apply(State) State { return State{Errors: types.FieldErrors{}} }
