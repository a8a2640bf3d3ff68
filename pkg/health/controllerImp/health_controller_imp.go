package controllerImp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	RunningMessage  = "Smart Potato Farming backend is running"
	DegradedMessage = "Smart Potato Farming backend is running without all of its dependencies"

	checkTimeout = 800 * time.Millisecond
)

var errNoDB = errors.New("no database configured")

// Check probes one dependency; nil means healthy.
type Check func(ctx context.Context) error

type HealthCtrl struct {
	startedAt time.Time
	names     []string
	checks    map[string]Check
}

// NewHealthCtrl always registers a "database" check against db. Uptime is
// counted from this call.
func NewHealthCtrl(db *gorm.DB) *HealthCtrl {
	h := &HealthCtrl{startedAt: time.Now(), checks: map[string]Check{}}
	return h.WithCheck("database", pingDB(db))
}

// WithCheck adds or replaces a named check.
func (h *HealthCtrl) WithCheck(name string, fn Check) *HealthCtrl {
	if _, ok := h.checks[name]; !ok {
		h.names = append(h.names, name)
		sort.Strings(h.names)
	}
	h.checks[name] = fn
	return h
}

func pingDB(db *gorm.DB) Check {
	return func(ctx context.Context) error {
		if db == nil {
			return errNoDB
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("sql handle: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("ping: %w", err)
		}
		return nil
	}
}

type CheckResult struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

type Resp struct {
	Status    string                 `json:"status"` // ok|degraded
	Message   string                 `json:"message"`
	UptimeSec int                    `json:"uptime_sec"`
	Checks    map[string]CheckResult `json:"checks"`
	Time      string                 `json:"time"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	resp := Resp{
		Status:    "ok",
		Message:   RunningMessage,
		UptimeSec: int(time.Since(h.startedAt).Seconds()),
		Checks:    make(map[string]CheckResult, len(h.names)),
	}
	code := http.StatusOK
	for _, name := range h.names {
		r := CheckResult{OK: true}
		if err := h.checks[name](ctx); err != nil {
			r = CheckResult{Err: err.Error()}
			code = http.StatusServiceUnavailable
			resp.Status = "degraded"
			resp.Message = DegradedMessage
		}
		resp.Checks[name] = r
	}
	resp.Time = time.Now().UTC().Format(time.RFC3339)
	return c.JSON(code, resp)
}
