package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"potato/pkg/catalog"
	healthImp "potato/pkg/health/controllerImp"
	intakeCtrl "potato/pkg/intake/controllerImp"
	intakeSvc "potato/pkg/intake/serviceImp"
	"potato/pkg/intake/types"
	recCtrl "potato/pkg/recommend/controllerImp"
	recSvc "potato/pkg/recommend/serviceImp"
	rectypes "potato/pkg/recommend/types"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	in := intakeSvc.NewIntakeService()
	rs := recSvc.NewRecommendService(catalog.Default(), decimal.NewFromInt(180), nil, zap.NewNop())
	ic := intakeCtrl.New(in, zap.NewNop())
	rc := recCtrl.NewRecommendCtrl(rs, in, time.Second, zap.NewNop())

	e := echo.New()
	// no database: health answers 503 but still carries a message
	e.GET("/api/health", healthImp.NewHealthCtrl(nil).Health)
	e.POST("/api/v1/intake", ic.Submit)
	e.POST("/api/v1/recommendations", rc.Recommend)
	e.GET("/api/v1/recommendations", rc.ByCapital)
	e.GET("/api/v1/recommendations/sample", rc.Sample)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func validForm() types.Form {
	return types.Form{
		SeasonType:                 "Maha",
		District:                   "Badulla",
		FieldSizeAcres:             "2.5",
		PotatoVariety:              "Kufri",
		SoilType:                   "Loamy",
		PlannedFertilizerKgPerAcre: "120",
		SeedCostLKR:                "40000",
		FertilizerCostLKR:          "25000",
		LaborCostLKR:               "60000",
		HandsOnMoneyLKR:            "150000",
	}
}

func names(r *rectypes.Result) []string {
	out := make([]string, 0, len(r.Strategies))
	for _, s := range r.Strategies {
		out = append(out, s.Name)
	}
	return out
}

func TestHealthMessage(t *testing.T) {
	srv := newServer(t)
	msg := New(srv.URL, time.Second).HealthMessage(context.Background())
	assert.Contains(t, msg, "Smart Potato Farming backend is running")
}

func TestHealthMessage_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	assert.Equal(t, UnreachableMessage, New(url, time.Second).HealthMessage(context.Background()))
}

func TestHealthMessage_NotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>proxy error</html>"))
	}))
	defer srv.Close()

	assert.Equal(t, UnreachableMessage, New(srv.URL, time.Second).HealthMessage(context.Background()))
}

func TestSubmit(t *testing.T) {
	c := New(newServer(t).URL, time.Second)

	resp, err := c.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.True(t, resp.Submitted)
	assert.Equal(t, intakeCtrl.SubmittedMessage, resp.Message)
	require.NotNil(t, resp.Record)
	assert.True(t, resp.Record.AvailableCapitalLKR.Equal(decimal.NewFromInt(150000)))
}

func TestSubmit_ValidationError(t *testing.T) {
	c := New(newServer(t).URL, time.Second)

	f := validForm()
	f.HandsOnMoneyLKR = "1000"
	f.District = ""
	_, err := c.Submit(context.Background(), f)

	ve, ok := IsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "Minimum capital required is LKR 150,000", ve.Fields[types.FieldAvailableCapital])
	assert.Equal(t, "Please select a district", ve.Fields[types.FieldDistrict])
	assert.Len(t, ve.Fields, 2)
}

func TestRecommend(t *testing.T) {
	c := New(newServer(t).URL, time.Second)

	res, err := c.Recommend(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, "928.6", res.Strategies[2].ROI)
	require.NotNil(t, res.Record)
	assert.Equal(t, "Badulla", string(res.Record.District))
}

func TestRecommendCapital(t *testing.T) {
	c := New(newServer(t).URL, time.Second)

	res, err := c.RecommendCapital(context.Background(), decimal.NewFromInt(200000))
	require.NoError(t, err)
	require.Len(t, res.Strategies, 3)
	assert.Equal(t, []string{"Premium Strategy - Granola", "Balanced Strategy - Kufri", "Budget Strategy - Local"}, names(res))
	assert.True(t, res.Strategies[0].Revenue.Equal(decimal.NewFromInt(558000)))
	assert.Equal(t, "914.5", res.Strategies[0].ROI)

	res, err = c.RecommendCapital(context.Background(), decimal.NewFromInt(45000))
	require.NoError(t, err)
	assert.Equal(t, []string{"Budget Strategy - Local"}, names(res))

	res, err = c.RecommendCapital(context.Background(), decimal.NewFromInt(10000))
	require.NoError(t, err)
	assert.Empty(t, res.Strategies)
	assert.Equal(t, rectypes.NoStrategyMessage, res.Message)
}

func TestSample(t *testing.T) {
	c := New(newServer(t).URL, time.Second)

	res, err := c.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.True(t, res.AvailableCapitalLKR.Equal(decimal.NewFromInt(200000)))
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusGatewayTimeout)
		_, _ = w.Write([]byte(`{"error":"recommendation timed out"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Sample(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusGatewayTimeout, se.Code)
	assert.Equal(t, "recommendation timed out", se.Message)
	_, isVal := IsValidation(err)
	assert.False(t, isVal)
}
