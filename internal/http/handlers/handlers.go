// Handler wiring and shared helpers.
//
// This file defines the service contracts the HTTP layer depends on, the
// Handlers aggregate that binds them, and the helpers shared by every
// endpoint (identity extraction, admin gating, pagination clamping).
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-ads-backend/internal/domain"
	"github.com/tbourn/go-ads-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// PointsService defines balance and ledger operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PointsService interface {
	// Balance returns the account's current point balance.
	Balance(ctx context.Context, accountID string) (int64, error)
	// Adjust applies a signed admin delta and appends the ledger entry.
	Adjust(ctx context.Context, accountID string, delta int64, description string) (int64, *domain.PointTransaction, error)
	// Transactions returns a page of the ledger and the total count.
	Transactions(ctx context.Context, accountID string, page, pageSize int) ([]domain.PointTransaction, int64, error)
}

// PromotionService defines catalog and promotion lifecycle operations.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PromotionService interface {
	// CreatePlan inserts a new catalog entry.
	CreatePlan(ctx context.Context, p *domain.PromotionPlan) (*domain.PromotionPlan, error)
	// UpdatePlan applies partial updates to a plan.
	UpdatePlan(ctx context.Context, id string, updates map[string]any) error
	// DeletePlan retires a plan; sold promotions keep their terms.
	DeletePlan(ctx context.Context, id string) error
	// ListActivePlans returns the purchasable catalog.
	ListActivePlans(ctx context.Context) ([]domain.PromotionPlan, error)
	// Purchase buys a plan for an owned ad and attaches it immediately.
	Purchase(ctx context.Context, accountID, adID, planID string) (*domain.AdPromotion, *domain.Ad, error)
	// PurchaseAdHoc buys a custom, unattached promotion.
	PurchaseAdHoc(ctx context.Context, accountID, position string, durationDays int, points int64) (*domain.AdPromotion, error)
	// Attach binds a pre-paid promotion to an owned ad.
	Attach(ctx context.Context, accountID, promotionID, adID string) (*domain.Ad, error)
	// ListPromotions returns the account's purchase history.
	ListPromotions(ctx context.Context, accountID string) ([]domain.AdPromotion, error)
	// ClearExpiredMirror removes stale promotion fields from an owned ad.
	ClearExpiredMirror(ctx context.Context, accountID, adID string) (*domain.Ad, error)
}

// VerificationService defines the code-based verification flows.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type VerificationService interface {
	// IssueMobileCode issues and delivers a mobile verification code.
	IssueMobileCode(ctx context.Context, accountID, phone string) (string, error)
	// ConfirmMobileCode verifies the code and flips the account flags.
	ConfirmMobileCode(ctx context.Context, accountID, code string) error
	// RequestPasswordReset issues and mails a reset code.
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	// VerifyResetCode exchanges a valid code for a single-use token.
	VerifyResetCode(ctx context.Context, email, code string) (string, error)
	// CompleteReset consumes the token and replaces the password.
	CompleteReset(ctx context.Context, token, newPassword string) error
}

// ListingService defines the public ad listing operation.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ListingService interface {
	// Listing returns verified ads in promotion-ranked order.
	Listing(ctx context.Context) ([]domain.Ad, error)
}

// AdminFunc reports whether accountID may call admin endpoints.
type AdminFunc func(ctx context.Context, accountID string) bool

//
// Handler wiring
//

// Handlers groups HTTP endpoints for points, plans, promotions, and
// verification. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	pointsSvc  PointsService
	promoSvc   PromotionService
	verifySvc  VerificationService
	listingSvc ListingService
	isAdmin    AdminFunc
}

// New constructs and returns a Handlers instance bound to the given services.
func New(pointsSvc PointsService, promoSvc PromotionService, verifySvc VerificationService, listingSvc ListingService, isAdmin AdminFunc) *Handlers {
	return &Handlers{
		pointsSvc:  pointsSvc,
		promoSvc:   promoSvc,
		verifySvc:  verifySvc,
		listingSvc: listingSvc,
		isAdmin:    isAdmin,
	}
}

// userID extracts the authenticated account id from Gin context (set by
// upstream middleware). If absent, it falls back to "X-User-ID" header (tests
// use it), and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

// requireAdmin aborts with 403 unless the caller passes the admin check.
// Returns true when the request may proceed.
func (h *Handlers) requireAdmin(c *gin.Context) bool {
	if h.isAdmin == nil || !h.isAdmin(c.Request.Context(), userID(c)) {
		fail(c, 403, ErrCodeForbidden, "admin access required")
		return false
	}
	return true
}

//
// Shared DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// paginate computes the metadata block for a page of total items.
func paginate(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// unixOrZero converts an optional timestamp to Unix seconds.
func unixOrZero(ts *time.Time) int64 {
	if ts == nil {
		return 0
	}
	return ts.Unix()
}
