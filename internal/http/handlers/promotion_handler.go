// Promotion HTTP handlers.
//
// This file exposes REST endpoints for the promotion lifecycle:
//   - POST   /ads/{id}/promote        (buy a plan for an owned ad)
//   - POST   /promotions              (buy an ad-hoc, unattached promotion)
//   - POST   /promotions/{id}/attach  (bind a pre-paid promotion to an ad)
//   - GET    /promotions              (purchase history)
//   - DELETE /ads/{id}/promotion      (clear expired promotion fields)
//
// Insufficient points map to 409 Conflict with a distinguishable code, and
// the verification gate maps to 403, so clients can show the right call to
// action for each.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-ads-backend/internal/domain"
	"github.com/tbourn/go-ads-backend/internal/http/middleware"
	"github.com/tbourn/go-ads-backend/internal/repo"
	"github.com/tbourn/go-ads-backend/internal/services"
)

//
// DTOs
//

// PromoteAdRequest is the JSON payload for buying a plan for an ad.
type PromoteAdRequest struct {
	// PlanID selects the catalog entry to buy.
	PlanID string `json:"plan_id" binding:"required" example:"1a2b3c"`
}

// PurchasePromotionRequest is the JSON payload for an ad-hoc purchase.
type PurchasePromotionRequest struct {
	// Position is the tier bought: rank1 or top10.
	Position string `json:"position" binding:"required" example:"top10"`
	// DurationDays is how long the promotion will run once attached.
	DurationDays int `json:"duration_days" binding:"required,min=1" example:"3"`
	// Points is the price in points.
	Points int64 `json:"points" binding:"required,min=1" example:"90"`
}

// AttachPromotionRequest is the JSON payload for attaching a pre-paid
// promotion to an ad.
type AttachPromotionRequest struct {
	// AdID is the ad to promote; must belong to the caller.
	AdID string `json:"ad_id" binding:"required" example:"ad123"`
}

// PromotionResponse pairs a promotion with the ad it decorates (when bound).
type PromotionResponse struct {
	Promotion *domain.AdPromotion `json:"promotion"`
	Ad        *domain.Ad          `json:"ad,omitempty"`
}

// ListPromotionsResponse wraps the account's purchase history.
type ListPromotionsResponse struct {
	Promotions []domain.AdPromotion `json:"promotions"`
}

// failPurchase translates the purchase error taxonomy shared by the plan
// and ad-hoc paths.
func failPurchase(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAdNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ad not found")
	case errors.Is(err, services.ErrForbidden):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "you do not own this ad")
	case errors.Is(err, services.ErrVerificationRequired):
		fail(c, http.StatusForbidden, ErrCodeVerificationRequired, "verify your mobile number before promoting ads")
	case errors.Is(err, services.ErrPlanNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "plan not found")
	case errors.Is(err, services.ErrInsufficientPoints):
		fail(c, http.StatusConflict, ErrCodeInsufficientPoints, "insufficient points for this purchase")
	case errors.Is(err, services.ErrInvalidPosition):
		fail(c, http.StatusBadRequest, ErrCodeInvalidPosition, "position must be rank1 or top10")
	case errors.Is(err, services.ErrInvalidAmount):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "duration and points must be positive")
	case errors.Is(err, services.ErrAccountNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "account not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// replayedPromotion returns the promotion previously purchased under
// (account, route template, key), or nil when no still-valid record exists.
// Needs the concrete service for direct database access, same as the ETag
// check in ListTransactions.
func (h *Handlers) replayedPromotion(c *gin.Context, accountID, idemKey string) *domain.AdPromotion {
	if idemKey == "" {
		return nil
	}
	svc, okSvc := h.promoSvc.(*services.PromotionService)
	if !okSvc || svc.DB == nil {
		return nil
	}
	ctx := c.Request.Context()
	rec, err := repo.GetIdempotency(ctx, svc.DB, accountID, c.FullPath(), idemKey, time.Now().UTC())
	if err != nil || rec == nil {
		return nil
	}
	prev, err := repo.GetPromotion(ctx, svc.DB, rec.RefID)
	if err != nil {
		return nil
	}
	return prev
}

// rememberPurchase records a completed purchase under the request's
// idempotency key so retries replay it instead of debiting again. Best
// effort: a failed write only disables replay detection for this key.
func (h *Handlers) rememberPurchase(c *gin.Context, accountID, idemKey, promotionID string) {
	if idemKey == "" {
		return
	}
	svc, okSvc := h.promoSvc.(*services.PromotionService)
	if !okSvc || svc.DB == nil {
		return
	}
	ttl := 24 * time.Hour
	_, _ = repo.CreateIdempotency(c.Request.Context(), svc.DB, accountID, c.FullPath(), idemKey, promotionID, http.StatusCreated, ttl)
}

//
// Handlers
//

// PromoteAd godoc
// @ID          promoteAd
// @Summary     Promote an ad with a plan
// @Description Buys the selected plan for an ad the caller owns, debits the points, and attaches the promotion immediately. Requires a verified mobile number.
// @Tags        Promotions
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "Account ID (demo header)"  example(user123)
// @Param       Idempotency-Key  header  string  false "Dedupes retried purchases; a replay returns the prior promotion"
// @Param       id               path    string  true  "Ad ID"
// @Param       body             body    handlers.PromoteAdRequest  true  "Purchase payload"
//
// @Success     200  {object}  handlers.PromotionResponse  "Replayed prior purchase"
// @Success     201  {object}  handlers.PromotionResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Not owner / verification required"
// @Failure     404  {object}  handlers.ErrorResponse  "Ad or plan not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Insufficient points"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /ads/{id}/promote [post]
func (h *Handlers) PromoteAd(c *gin.Context) {
	var req PromoteAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	uid := userID(c)
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if prev := h.replayedPromotion(c, uid, idemKey); prev != nil {
		c.Header("Idempotency-Replayed", "true")
		ok(c, http.StatusOK, PromotionResponse{Promotion: prev})
		return
	}

	promo, ad, err := h.promoSvc.Purchase(c.Request.Context(), uid, c.Param("id"), req.PlanID)
	if err != nil {
		failPurchase(c, err)
		return
	}
	h.rememberPurchase(c, uid, idemKey, promo.ID)
	ok(c, http.StatusCreated, PromotionResponse{Promotion: promo, Ad: ad})
}

// PurchasePromotion godoc
// @ID          purchasePromotion
// @Summary     Buy an ad-hoc promotion
// @Description Buys a custom promotion outside the catalog without binding it to an ad. Attach it later with /promotions/{id}/attach.
// @Tags        Promotions
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "Account ID (demo header)"  example(user123)
// @Param       Idempotency-Key  header  string  false "Dedupes retried purchases; a replay returns the prior promotion"
// @Param       body             body    handlers.PurchasePromotionRequest  true  "Purchase payload"
//
// @Success     200  {object}  handlers.PromotionResponse  "Replayed prior purchase"
// @Success     201  {object}  handlers.PromotionResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Verification required"
// @Failure     409  {object}  handlers.ErrorResponse  "Insufficient points"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /promotions [post]
func (h *Handlers) PurchasePromotion(c *gin.Context) {
	var req PurchasePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	uid := userID(c)
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if prev := h.replayedPromotion(c, uid, idemKey); prev != nil {
		c.Header("Idempotency-Replayed", "true")
		ok(c, http.StatusOK, PromotionResponse{Promotion: prev})
		return
	}

	promo, err := h.promoSvc.PurchaseAdHoc(c.Request.Context(), uid, req.Position, req.DurationDays, req.Points)
	if err != nil {
		failPurchase(c, err)
		return
	}
	h.rememberPurchase(c, uid, idemKey, promo.ID)
	ok(c, http.StatusCreated, PromotionResponse{Promotion: promo})
}

// AttachPromotion godoc
// @ID          attachPromotion
// @Summary     Attach a pre-paid promotion to an ad
// @Description Binds a banked promotion to an ad the caller owns. Fails if the promotion is already attached or its window has expired.
// @Tags        Promotions
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Account ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Promotion ID"
// @Param       body       body    handlers.AttachPromotionRequest  true  "Attach payload"
//
// @Success     200  {object}  handlers.PromotionResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request / expired"
// @Failure     403  {object}  handlers.ErrorResponse  "Not owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Promotion or ad not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already attached"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /promotions/{id}/attach [post]
func (h *Handlers) AttachPromotion(c *gin.Context) {
	var req AttachPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	ad, err := h.promoSvc.Attach(c.Request.Context(), userID(c), c.Param("id"), req.AdID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPromotionNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "promotion not found")
		case errors.Is(err, services.ErrNotOwner):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "you do not own this promotion")
		case errors.Is(err, services.ErrPromotionAttached):
			fail(c, http.StatusConflict, ErrCodePromotionAttached, "promotion already attached to an ad")
		case errors.Is(err, services.ErrPromotionExpired):
			fail(c, http.StatusBadRequest, ErrCodePromotionExpired, "promotion window has already expired")
		case errors.Is(err, services.ErrAdNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "ad not found")
		case errors.Is(err, services.ErrForbidden):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "you do not own this ad")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, PromotionResponse{Ad: ad})
}

// ListPromotions godoc
// @ID          listPromotions
// @Summary     List promotions
// @Description Returns the caller's purchase history, newest first, including pre-paid and expired promotions.
// @Tags        Promotions
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Account ID (demo header)"  example(user123)
//
// @Success     200  {object}  handlers.ListPromotionsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /promotions [get]
func (h *Handlers) ListPromotions(c *gin.Context) {
	items, err := h.promoSvc.ListPromotions(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if items == nil {
		items = []domain.AdPromotion{}
	}
	ok(c, http.StatusOK, ListPromotionsResponse{Promotions: items})
}

// ClearAdPromotion godoc
// @ID          clearAdPromotion
// @Summary     Clear an ad's expired promotion fields
// @Description Removes the stale promotion fields from an ad the caller owns. Live promotions cannot be cleared.
// @Tags        Promotions
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Account ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Ad ID"
//
// @Success     200  {object}  domain.Ad
// @Failure     403  {object}  handlers.ErrorResponse  "Not owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Ad not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Promotion still active"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /ads/{id}/promotion [delete]
func (h *Handlers) ClearAdPromotion(c *gin.Context) {
	ad, err := h.promoSvc.ClearExpiredMirror(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "ad not found")
		case errors.Is(err, services.ErrForbidden):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "you do not own this ad")
		case errors.Is(err, services.ErrPromotionActive):
			fail(c, http.StatusConflict, ErrCodePromotionActive, "promotion is still running")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, ad)
}
