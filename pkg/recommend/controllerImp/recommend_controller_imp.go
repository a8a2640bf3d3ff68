package controllerImp

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"potato/entities"
	intakesvc "potato/pkg/intake/service"
	intaketypes "potato/pkg/intake/types"
	"potato/pkg/recommend/service"
	"potato/pkg/recommend/serviceImp"
	"potato/pkg/recommend/types"
)

type RecommendCtrl struct {
	svc     service.RecommendService
	intake  intakesvc.IntakeService
	timeout time.Duration
	log     *zap.Logger
}

func NewRecommendCtrl(svc service.RecommendService, intake intakesvc.IntakeService, timeout time.Duration, log *zap.Logger) *RecommendCtrl {
	return &RecommendCtrl{svc: svc, intake: intake, timeout: timeout, log: log.Named("recommend")}
}

// Recommend takes a full intake form, validates it and derives strategies
// from the validated record.
func (h *RecommendCtrl) Recommend(c echo.Context) error {
	var req intaketypes.Form
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request body"})
	}
	rec, errs := h.intake.Parse(req)
	if !errs.OK() {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": errs})
	}
	return h.run(c, func(ctx context.Context) (*types.Result, error) {
		return h.svc.Recommend(ctx, rec)
	})
}

// ByCapital derives strategies from ?capital= alone. Any number is accepted;
// the capital minimum belongs to form validation.
func (h *RecommendCtrl) ByCapital(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("capital"))
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capital is required"})
	}
	capital, err := entities.ParseAmount(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capital must be a number"})
	}
	return h.run(c, func(ctx context.Context) (*types.Result, error) {
		return h.svc.ForCapital(ctx, capital)
	})
}

// Sample runs the demonstration farm record through the full pipeline.
func (h *RecommendCtrl) Sample(c echo.Context) error {
	return h.run(c, func(ctx context.Context) (*types.Result, error) {
		return h.svc.Recommend(ctx, serviceImp.SampleRecord())
	})
}

func (h *RecommendCtrl) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"strategies": h.svc.Catalog(), "market_price_lkr": h.svc.MarketPrice()})
}

func (h *RecommendCtrl) run(c echo.Context, fn func(context.Context) (*types.Result, error)) error {
	ctx := c.Request().Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	res, err := fn(ctx)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.log.Warn("recommendation timed out", zap.Duration("timeout", h.timeout))
		return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "recommendation timed out"})
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to write
		return nil
	case err != nil:
		h.log.Error("recommendation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}
