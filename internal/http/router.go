// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-ads-backend/internal/config"
	"github.com/tbourn/go-ads-backend/internal/domain"
	"github.com/tbourn/go-ads-backend/internal/http/handlers"
	"github.com/tbourn/go-ads-backend/internal/http/middleware"
	"github.com/tbourn/go-ads-backend/internal/notify"
	"github.com/tbourn/go-ads-backend/internal/repo"
	"github.com/tbourn/go-ads-backend/internal/services"
)

// pointsRepoShim adapts the repository free functions to the
// services.PointsRepo interface expected by the PointsService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type pointsRepoShim struct{}

// GetAccount proxies repo.GetAccount.
func (pointsRepoShim) GetAccount(ctx context.Context, db *gorm.DB, id string) (*domain.Account, error) {
	return repo.GetAccount(ctx, db, id)
}

// UpdateAccountPoints proxies repo.UpdateAccountPoints.
func (pointsRepoShim) UpdateAccountPoints(ctx context.Context, db *gorm.DB, id string, points int64) error {
	return repo.UpdateAccountPoints(ctx, db, id, points)
}

// AppendTransaction proxies repo.AppendTransaction.
func (pointsRepoShim) AppendTransaction(ctx context.Context, db *gorm.DB, accountID string, amount, points int64, txType, description string) (*domain.PointTransaction, error) {
	return repo.AppendTransaction(ctx, db, accountID, amount, points, txType, description)
}

// CountTransactions proxies repo.CountTransactions (pagination support).
func (pointsRepoShim) CountTransactions(ctx context.Context, db *gorm.DB, accountID string) (int64, error) {
	return repo.CountTransactions(ctx, db, accountID)
}

// ListTransactionsPage proxies repo.ListTransactionsPage (pagination support).
func (pointsRepoShim) ListTransactionsPage(ctx context.Context, db *gorm.DB, accountID string, offset, limit int) ([]domain.PointTransaction, error) {
	return repo.ListTransactionsPage(ctx, db, accountID, offset, limit)
}

// promotionRepoShim adapts the repository free functions to the
// services.PromotionRepo interface expected by the PromotionService.
type promotionRepoShim struct {
	pointsRepoShim
}

// CreatePlan proxies repo.CreatePlan.
func (promotionRepoShim) CreatePlan(ctx context.Context, db *gorm.DB, p *domain.PromotionPlan) (*domain.PromotionPlan, error) {
	return repo.CreatePlan(ctx, db, p)
}

// GetPlan proxies repo.GetPlan.
func (promotionRepoShim) GetPlan(ctx context.Context, db *gorm.DB, id string) (*domain.PromotionPlan, error) {
	return repo.GetPlan(ctx, db, id)
}

// ListActivePlans proxies repo.ListActivePlans.
func (promotionRepoShim) ListActivePlans(ctx context.Context, db *gorm.DB) ([]domain.PromotionPlan, error) {
	return repo.ListActivePlans(ctx, db)
}

// UpdatePlan proxies repo.UpdatePlan.
func (promotionRepoShim) UpdatePlan(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	return repo.UpdatePlan(ctx, db, id, updates)
}

// DeletePlan proxies repo.DeletePlan.
func (promotionRepoShim) DeletePlan(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeletePlan(ctx, db, id)
}

// CreatePromotion proxies repo.CreatePromotion.
func (promotionRepoShim) CreatePromotion(ctx context.Context, db *gorm.DB, p *domain.AdPromotion) (*domain.AdPromotion, error) {
	return repo.CreatePromotion(ctx, db, p)
}

// GetPromotion proxies repo.GetPromotion.
func (promotionRepoShim) GetPromotion(ctx context.Context, db *gorm.DB, id string) (*domain.AdPromotion, error) {
	return repo.GetPromotion(ctx, db, id)
}

// AttachPromotion proxies repo.AttachPromotion.
func (promotionRepoShim) AttachPromotion(ctx context.Context, db *gorm.DB, id, adID string) error {
	return repo.AttachPromotion(ctx, db, id, adID)
}

// ListPromotions proxies repo.ListPromotions.
func (promotionRepoShim) ListPromotions(ctx context.Context, db *gorm.DB, accountID string) ([]domain.AdPromotion, error) {
	return repo.ListPromotions(ctx, db, accountID)
}

// GetAd proxies repo.GetAd.
func (promotionRepoShim) GetAd(ctx context.Context, db *gorm.DB, id string) (*domain.Ad, error) {
	return repo.GetAd(ctx, db, id)
}

// SetAdPromotionMirror proxies repo.SetAdPromotionMirror.
func (promotionRepoShim) SetAdPromotionMirror(ctx context.Context, db *gorm.DB, id, promotionID, position string, until time.Time) error {
	return repo.SetAdPromotionMirror(ctx, db, id, promotionID, position, until)
}

// ClearAdPromotionMirror proxies repo.ClearAdPromotionMirror.
func (promotionRepoShim) ClearAdPromotionMirror(ctx context.Context, db *gorm.DB, id string) error {
	return repo.ClearAdPromotionMirror(ctx, db, id)
}

// verificationRepoShim adapts the repository free functions to the
// services.VerificationRepo interface expected by the VerificationService.
type verificationRepoShim struct{}

// GetAccount proxies repo.GetAccount.
func (verificationRepoShim) GetAccount(ctx context.Context, db *gorm.DB, id string) (*domain.Account, error) {
	return repo.GetAccount(ctx, db, id)
}

// GetAccountByEmail proxies repo.GetAccountByEmail.
func (verificationRepoShim) GetAccountByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Account, error) {
	return repo.GetAccountByEmail(ctx, db, email)
}

// SetMobileVerified proxies repo.SetMobileVerified.
func (verificationRepoShim) SetMobileVerified(ctx context.Context, db *gorm.DB, id, phone string) error {
	return repo.SetMobileVerified(ctx, db, id, phone)
}

// SetPasswordHash proxies repo.SetPasswordHash.
func (verificationRepoShim) SetPasswordHash(ctx context.Context, db *gorm.DB, id, hash string) error {
	return repo.SetPasswordHash(ctx, db, id, hash)
}

// ListUnverifiedAds proxies repo.ListUnverifiedAds.
func (verificationRepoShim) ListUnverifiedAds(ctx context.Context, db *gorm.DB, accountID string) ([]string, error) {
	return repo.ListUnverifiedAds(ctx, db, accountID)
}

// SetAdVerified proxies repo.SetAdVerified.
func (verificationRepoShim) SetAdVerified(ctx context.Context, db *gorm.DB, id string) error {
	return repo.SetAdVerified(ctx, db, id)
}

// listingRepoShim adapts the repository free functions to the
// services.ListingRepo interface expected by the ListingService.
type listingRepoShim struct{}

// ListVerifiedAds proxies repo.ListVerifiedAds.
func (listingRepoShim) ListVerifiedAds(ctx context.Context, db *gorm.DB) ([]domain.Ad, error) {
	return repo.ListVerifiedAds(ctx, db)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Response compression
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, bypass on replay)
// 10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // project-specific sensitive header example
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Compress responses when the client advertises gzip
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Idempotency validation (before rate limiting). Purchase retries with
	// the same key replay instead of debiting twice.
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, accountID, scope, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, accountID, scope, key, now)
			if err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return false, nil
				}
				return false, err
			}
			return rec != nil, nil
		},
	))

	// 9) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs (gated; off by default)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db. One lock table serializes
	// all balance writes for an account across both services.
	locks := services.NewAccountLocks()
	pointsSvc := services.NewPointsService(db, pointsRepoShim{}, locks)
	promoSvc := services.NewPromotionService(db, promotionRepoShim{}, locks)

	verifySvc := services.NewVerificationService(db, verificationRepoShim{},
		notify.LogSender{Channel: "sms"},
		notify.LogSender{Channel: "mail"},
	)
	verifySvc.MobileCodes = services.NewCodeMachine(6, cfg.Verification.MobileCodeTTL)
	verifySvc.ResetCodes = services.NewCodeMachine(6, cfg.Verification.ResetCodeTTL)
	verifySvc.ResetTokens = services.NewTokenStore(cfg.Verification.ResetTokenTTL)
	verifySvc.DiscloseCodes = cfg.Verification.DevDisclose

	listingSvc := services.NewListingService(db, listingRepoShim{})

	isAdmin := func(ctx context.Context, accountID string) bool {
		acc, err := repo.GetAccount(ctx, db, accountID)
		return err == nil && acc.IsAdmin
	}

	h := handlers.New(pointsSvc, promoSvc, verifySvc, listingSvc, isAdmin)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Points
		api.GET("/points/balance", h.GetBalance)
		api.GET("/points/transactions", h.ListTransactions)

		// Ads
		api.GET("/ads", h.ListAds)
		api.POST("/ads/:id/promote", h.PromoteAd)
		api.DELETE("/ads/:id/promotion", h.ClearAdPromotion)

		// Plans
		api.GET("/plans", h.ListPlans)

		// Promotions
		api.POST("/promotions", h.PurchasePromotion)
		api.GET("/promotions", h.ListPromotions)
		api.POST("/promotions/:id/attach", h.AttachPromotion)

		// Verification
		api.POST("/verify/mobile/request", h.RequestMobileCode)
		api.POST("/verify/mobile/confirm", h.ConfirmMobileCode)

		// Password reset
		api.POST("/password/reset/request", h.RequestPasswordReset)
		api.POST("/password/reset/verify", h.VerifyPasswordReset)
		api.POST("/password/reset/complete", h.CompletePasswordReset)

		// Admin
		api.POST("/admin/accounts/:id/points", h.AdjustPoints)
		api.POST("/admin/plans", h.CreatePlan)
		api.PUT("/admin/plans/:id", h.UpdatePlan)
		api.DELETE("/admin/plans/:id", h.DeletePlan)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
