package serviceImp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"potato/pkg/intake/types"
)

func fill(s State, f types.Form) State {
	for _, name := range types.FieldNames {
		v, _ := f.Get(name)
		s = Reduce(s, SetField{Name: name, Value: v})
	}
	return s
}

func TestReduce_SubmitValid(t *testing.T) {
	s := fill(State{}, validForm())
	assert.False(t, s.Submitted)

	s = Reduce(s, Submit{})
	assert.True(t, s.Submitted)
	assert.True(t, s.Errors.OK())
	require.NotNil(t, s.Record)
	assert.Equal(t, "200000", s.Record.AvailableCapitalLKR.String())
}

func TestReduce_SubmitInvalidKeepsForm(t *testing.T) {
	f := validForm()
	f.FieldSizeAcres = "0"
	s := Reduce(fill(State{}, f), Submit{})

	assert.False(t, s.Submitted)
	assert.Nil(t, s.Record)
	assert.Equal(t, "Field size must be greater than 0", s.Errors[types.FieldFieldSize])
	assert.Equal(t, "0", s.Form.FieldSizeAcres)
}

func TestReduce_SetFieldClearsOnlyItsError(t *testing.T) {
	s := Reduce(State{}, Submit{})
	require.Len(t, s.Errors, 10)

	before := s
	s = Reduce(s, SetField{Name: types.FieldSeason, Value: "1"})

	assert.Len(t, s.Errors, 9)
	assert.NotContains(t, s.Errors, types.FieldSeason)
	assert.Equal(t, "1", s.Form.SeasonType)

	// previous snapshot untouched
	assert.Len(t, before.Errors, 10)
	assert.Equal(t, "", before.Form.SeasonType)
}

func TestReduce_EditAfterSubmitDropsRecord(t *testing.T) {
	s := Reduce(fill(State{}, validForm()), Submit{})
	require.True(t, s.Submitted)

	s = Reduce(s, SetField{Name: types.FieldLaborCost, Value: "80000"})
	assert.False(t, s.Submitted)
	assert.Nil(t, s.Record)
}

func TestReduce_Reset(t *testing.T) {
	s := Reduce(fill(State{}, validForm()), Submit{})
	s = Reduce(s, Reset{})

	assert.Equal(t, types.Form{}, s.Form)
	assert.False(t, s.Submitted)
	assert.Nil(t, s.Record)
	assert.True(t, s.Errors.OK())
}

func TestReduce_UnknownFieldIsNoop(t *testing.T) {
	s := fill(State{}, validForm())
	assert.Equal(t, s, Reduce(s, SetField{Name: "colour", Value: "red"}))
	assert.Equal(t, s, Reduce(s, nil))
}
