package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnums(t *testing.T) {
	t.Run("codes and labels", func(t *testing.T) {
		s, ok := ParseSeason("1")
		assert.True(t, ok)
		assert.Equal(t, SeasonYala, s)

		s, ok = ParseSeason("maha")
		assert.True(t, ok)
		assert.Equal(t, SeasonMaha, s)

		v, ok := ParseVariety("2")
		assert.True(t, ok)
		assert.Equal(t, VarietyKufri, v)

		soil, ok := ParseSoilType(" Loamy ")
		assert.True(t, ok)
		assert.Equal(t, SoilLoamy, soil)
	})

	t.Run("district has no codes", func(t *testing.T) {
		_, ok := ParseDistrict("0")
		assert.False(t, ok)

		d, ok := ParseDistrict("nuwara eliya")
		assert.True(t, ok)
		assert.Equal(t, DistrictNuwaraEliya, d)
	})

	t.Run("rejects unknown", func(t *testing.T) {
		for _, raw := range []string{"", "  ", "5", "-1", "01", "Winter"} {
			_, ok := ParseSeason(raw)
			assert.False(t, ok, raw)
		}
	})
}

func TestOptions(t *testing.T) {
	assert.Equal(t, []Option{{Label: "Maha", Value: "0"}, {Label: "Yala", Value: "1"}}, SeasonOptions())
	assert.Equal(t, Option{Label: "Jaffna", Value: "Jaffna"}, DistrictOptions()[2])
	assert.Len(t, SoilTypeOptions(), 4)
	assert.Equal(t, "3", SoilTypeOptions()[3].Value)
	assert.Len(t, VarietyOptions(), 3)
}

func TestStrategyOptionClone(t *testing.T) {
	o := StrategyOption{Name: "x", Benefits: []string{"a"}}
	c := o.Clone()
	c.Benefits[0] = "b"
	assert.Equal(t, "a", o.Benefits[0])
}
