package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleJSON = `{
  "available_capital_lkr": 200000,
  "market_price_lkr": 180,
  "count": 1,
  "strategies": [{
    "name": "Budget Strategy - Local",
    "seed_amount": "30kg",
    "cost": 42000,
    "yield": 2400,
    "description": "Cost-effective option for small budgets",
    "benefits": ["Lower investment"],
    "icon": "💰",
    "market_price": 180,
    "revenue": 432000,
    "profit": 390000,
    "roi": "928.6",
    "roi_band": "high"
  }],
  "generated_at": "2026-01-01T00:00:00Z"
}`

func setup(t *testing.T, h http.Handler) *bytes.Buffer {
	t.Helper()
	logger = zap.NewNop()
	timeout = time.Second
	serverURL = "http://127.0.0.1:1"
	if h != nil {
		srv := httptest.NewServer(h)
		t.Cleanup(srv.Close)
		serverURL = srv.URL
	}
	recCapital, recSample, submitRecommend = "", false, false
	for _, v := range submitFields {
		*v = ""
	}
	return &bytes.Buffer{}
}

func newCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd
}

func TestHealthCmd_Unreachable(t *testing.T) {
	out := setup(t, nil)
	require.NoError(t, runHealth(newCmd(out), nil))
	assert.Equal(t, "Cannot reach backend\n", out.String())
}

func TestHealthCmd(t *testing.T) {
	out := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok","message":"Smart Potato Farming backend is running"}`))
	}))
	require.NoError(t, runHealth(newCmd(out), nil))
	assert.Equal(t, "Smart Potato Farming backend is running\n", out.String())
}

func TestRecommendCmd_Capital(t *testing.T) {
	var gotCapital string
	out := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCapital = r.URL.Query().Get("capital")
		_, _ = w.Write([]byte(sampleJSON))
	}))
	recCapital = "200000"

	require.NoError(t, runRecommend(newCmd(out), nil))
	assert.Equal(t, "200000", gotCapital)
	assert.Contains(t, out.String(), "Available capital: LKR 200,000")
	assert.Contains(t, out.String(), "Budget Strategy - Local")
	assert.Contains(t, out.String(), "432,000")
	assert.Contains(t, out.String(), "928.6%")
}

func TestRecommendCmd_Empty(t *testing.T) {
	out := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"available_capital_lkr":"1000","count":0,"strategies":[],
			"message":"Your available capital is lower than the minimum required. Consider increasing your budget."}`))
	}))
	recCapital = "1000"

	require.NoError(t, runRecommend(newCmd(out), nil))
	assert.Contains(t, out.String(), "Consider increasing your budget.")
}

func TestRecommendCmd_BadInput(t *testing.T) {
	out := setup(t, nil)
	assert.Error(t, runRecommend(newCmd(out), nil))

	recCapital = "lots"
	assert.ErrorContains(t, runRecommend(newCmd(out), nil), "not a number")
}

func TestSubmitCmd_LocalValidation(t *testing.T) {
	called := false
	out := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	*submitFields["hands_on_money_lkr"] = "100"

	err := runSubmit(newCmd(out), nil)
	require.Error(t, err)
	assert.False(t, called, "invalid form must not reach the server")
	assert.Contains(t, out.String(), "season_type: Please select a season")
	assert.Contains(t, out.String(), "hands_on_money_lkr: Minimum capital required is LKR 150,000")
}

func TestSubmitCmd(t *testing.T) {
	var paths []string
	out := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/intake":
			_, _ = w.Write([]byte(`{"submitted":true,"message":"Success! Your data has been submitted."}`))
		default:
			_, _ = w.Write([]byte(sampleJSON))
		}
	}))
	for field, v := range map[string]string{
		"season_type": "Maha", "district": "Nuwara Eliya", "field_size_acres": "3",
		"potato_variety": "Granola", "soil_type": "Sandy", "planned_fertilizer_kg_per_acre": "150",
		"seed_cost_lkr": "45000", "fertilizer_cost_lkr": "30000", "labor_cost_lkr": "75000",
		"hands_on_money_lkr": "200000",
	} {
		*submitFields[field] = v
	}
	submitRecommend = true

	require.NoError(t, runSubmit(newCmd(out), nil))
	assert.Equal(t, []string{"/api/v1/intake", "/api/v1/recommendations"}, paths)
	assert.Contains(t, out.String(), "Success! Your data has been submitted.")
	assert.Contains(t, out.String(), "Budget Strategy - Local")
}
