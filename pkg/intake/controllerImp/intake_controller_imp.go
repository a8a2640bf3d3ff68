package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"potato/entities"
	"potato/pkg/intake/service"
	"potato/pkg/intake/types"
)

const SubmittedMessage = "Success! Your data has been submitted."

type IntakeCtrl struct {
	svc service.IntakeService
	log *zap.Logger
}

func New(svc service.IntakeService, log *zap.Logger) *IntakeCtrl {
	return &IntakeCtrl{svc: svc, log: log.Named("intake")}
}

type SubmitResp struct {
	Submitted bool                      `json:"submitted"`
	Message   string                    `json:"message,omitempty"`
	Record    *entities.FarmInputRecord `json:"record,omitempty"`
	Errors    types.FieldErrors         `json:"errors,omitempty"`
}

// Submit validates a form. Nothing is stored: a valid form is echoed back
// as a typed record.
func (h *IntakeCtrl) Submit(c echo.Context) error {
	var req types.Form
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request body"})
	}
	rec, errs := h.svc.Parse(req)
	if !errs.OK() {
		h.log.Debug("form rejected", zap.Int("errors", len(errs)))
		return c.JSON(http.StatusUnprocessableEntity, SubmitResp{Errors: errs})
	}
	h.log.Info("form submitted",
		zap.String("district", string(rec.District)),
		zap.String("variety", string(rec.PotatoVariety)),
		zap.String("capital_lkr", rec.AvailableCapitalLKR.String()))
	return c.JSON(http.StatusOK, SubmitResp{Submitted: true, Message: SubmittedMessage, Record: rec})
}

func (h *IntakeCtrl) Options(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Options())
}
