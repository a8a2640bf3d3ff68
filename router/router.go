package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	healthCtrl "potato/pkg/health/controller"
	intakeCtrl "potato/pkg/intake/controller"
	kbCtrl "potato/pkg/kb/controller"
	"potato/pkg/middleware"
	recCtrl "potato/pkg/recommend/controller"
)

func New(
	e *echo.Echo,
	log *zap.Logger,
	corsOrigins []string,
	intake intakeCtrl.IntakeController,
	rec recCtrl.RecommendController,
	kb kbCtrl.KBController,
	health healthCtrl.HealthController,
) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLog(log))
	if len(corsOrigins) > 0 {
		e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{AllowOrigins: corsOrigins}))
	}

	// the original frontend pings /api/health
	e.GET("/api/health", health.Health)
	e.GET("/health", health.Health)

	api := e.Group("/api/v1")

	api.GET("/intake/options", intake.Options)
	api.POST("/intake", intake.Submit)

	api.GET("/strategies", rec.Catalog)
	api.POST("/recommendations", rec.Recommend)
	api.GET("/recommendations", rec.ByCapital)
	api.GET("/recommendations/sample", rec.Sample)

	api.POST("/kb/ingest", kb.IngestText)
	api.POST("/kb/ingest/url", kb.IngestURL)
	api.GET("/kb/search", kb.Search)
	api.GET("/kb/docs", kb.Docs)
	return e
}
