// Command server runs the ads backend HTTP API.
//
// Startup order: load .env, parse config, configure logging, open and migrate
// the database, seed the promotion catalog on first run, set up tracing, wire
// the router, then serve until SIGINT/SIGTERM triggers a graceful drain.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-ads-backend/docs"
	"github.com/tbourn/go-ads-backend/internal/config"
	"github.com/tbourn/go-ads-backend/internal/domain"
	httpapi "github.com/tbourn/go-ads-backend/internal/http"
	"github.com/tbourn/go-ads-backend/internal/observability"
	"github.com/tbourn/go-ads-backend/internal/repo"
	"github.com/tbourn/go-ads-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title        Ads Backend API
// @version      1.0
// @description  Points ledger, promotion, and verification API for a classified-ads marketplace.
// @BasePath     /api/v1
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	gin.SetMode(cfg.GinMode)

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	if err := seedPlans(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("seed promotion catalog")
	}

	if cfg.OTEL.Enabled {
		shutdown, err := observability.SetupOTel(context.Background(), cfg.OTEL, version)
		if err != nil {
			log.Fatal().Err(err).Msg("set up tracing")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Warn().Err(err).Msg("tracer shutdown")
			}
		}()
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	// Block until asked to stop, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}

// seedPlans inserts the default promotion catalog on an empty database so a
// fresh install has something to sell. Existing catalogs are left alone.
func seedPlans(ctx context.Context, db *gorm.DB) error {
	n, err := repo.CountPlans(ctx, db)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	defaults := []domain.PromotionPlan{
		{
			Name:         "Daily First Slot",
			DurationDays: 1,
			Position:     domain.PositionRank1,
			Points:       50,
			Description:  "Pins your ad to the first slot for a day",
			Active:       true,
			SortOrder:    10,
		},
		{
			Name:         "Weekly First Slot",
			DurationDays: 7,
			Position:     domain.PositionRank1,
			Points:       200,
			Description:  "Pins your ad to the first slot for a week",
			Active:       true,
			SortOrder:    20,
		},
		{
			Name:         "Weekly Top Of Page",
			DurationDays: 7,
			Position:     domain.PositionTop10,
			Points:       100,
			Description:  "Keeps your ad in the top block for a week",
			Active:       true,
			SortOrder:    30,
		},
	}
	for i := range defaults {
		if _, err := repo.CreatePlan(ctx, db, &defaults[i]); err != nil {
			return err
		}
	}
	log.Info().Int("plans", len(defaults)).Msg("seeded promotion catalog")
	return nil
}
