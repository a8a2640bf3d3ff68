package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"potato/config"
	"potato/database"
	"potato/pkg/catalog"
	"potato/pkg/logging"
	"potato/router"

	// Health
	healthCtrlImp "potato/pkg/health/controllerImp"

	// Intake
	intakeCtrlImp "potato/pkg/intake/controllerImp"
	intakeSvc "potato/pkg/intake/serviceImp"

	// Recommend
	recCtrlImp "potato/pkg/recommend/controllerImp"
	recSvc "potato/pkg/recommend/serviceImp"

	// KB
	kbCtrlImp "potato/pkg/kb/controllerImp"
	kbRepoImp "potato/pkg/kb/repositoryImp"
	kbServiceImp "potato/pkg/kb/serviceImp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	// 1) Config + logger
	cfg := config.Load()
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck
	for _, w := range cfg.Warnings {
		log.Warn("config", zap.String("warning", w))
	}
	log.Info("config loaded",
		zap.String("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
		zap.String("catalog_path", cfg.CatalogPath),
		zap.Float64("market_price_lkr", cfg.MarketPriceLKR),
		zap.Duration("recommend_timeout", cfg.RecommendTimeout),
		zap.Strings("kb_allowed_domains", cfg.KBAllowedDomains))

	// money renders as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	// 2) DB (sqlite) + automigrate
	db, err := database.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return err
	}

	// 3) Strategy catalog, fixed for the life of the process
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	log.Info("catalog ready", zap.Int("strategies", len(cat)))

	// 4) KB
	kbSvc := kbServiceImp.New(kbRepoImp.New(db))
	kbCtrl := kbCtrlImp.New(kbSvc, kbCtrlImp.Options{
		AllowedDomains: cfg.KBAllowedDomains,
		MaxBytes:       cfg.KBMaxBytes,
		FetchTimeout:   cfg.KBFetchTimeout,
	}, log)

	// 5) Intake + recommendations
	inSvc := intakeSvc.NewIntakeService()
	inCtrl := intakeCtrlImp.New(inSvc, log)
	rSvc := recSvc.NewRecommendService(cat, decimal.NewFromFloat(cfg.MarketPriceLKR), kbSvc, log)
	rCtrl := recCtrlImp.NewRecommendCtrl(rSvc, inSvc, cfg.RecommendTimeout, log)

	// 6) Health
	hCtrl := healthCtrlImp.NewHealthCtrl(db).
		WithCheck("catalog", func(context.Context) error {
			if len(rSvc.Catalog()) == 0 {
				return catalog.ErrEmptyCatalog
			}
			return nil
		})

	// 7) Echo + router
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.New(e, log, cfg.CORSOrigins, inCtrl, rCtrl, kbCtrl, hCtrl)

	// 8) Start, stop on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", ":"+cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
