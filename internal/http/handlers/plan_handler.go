// Promotion plan HTTP handlers.
//
// This file exposes REST endpoints for the promotion catalog:
//   - GET    /plans              (public, active plans only)
//   - POST   /admin/plans        (create)
//   - PUT    /admin/plans/{id}   (partial update)
//   - DELETE /admin/plans/{id}   (retire)
//
// Editing or retiring a plan never rewrites promotions already sold under it.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-ads-backend/internal/domain"
	"github.com/tbourn/go-ads-backend/internal/services"
)

//
// DTOs
//

// CreatePlanRequest is the JSON payload for creating a promotion plan.
type CreatePlanRequest struct {
	// Name is the display name shown in the catalog.
	Name string `json:"name" binding:"required,min=1,max=120" example:"Weekly Top Of Page"`
	// DurationDays is how long the promotion runs once attached.
	DurationDays int `json:"duration_days" binding:"required,min=1" example:"7"`
	// Position is the tier bought: rank1 or top10.
	Position string `json:"position" binding:"required" example:"rank1"`
	// Points is the price in points.
	Points int64 `json:"points" binding:"required,min=1" example:"200"`
	// Description optionally explains the plan to buyers.
	Description string `json:"description" example:"Pins your ad to the first slot for a week"`
	// SortOrder controls catalog ordering; lower sorts first.
	SortOrder int `json:"sort_order" example:"10"`
}

// UpdatePlanRequest is the JSON payload for a partial plan update. Only the
// supplied fields change.
type UpdatePlanRequest struct {
	Name         *string `json:"name,omitempty"`
	DurationDays *int    `json:"duration_days,omitempty"`
	Position     *string `json:"position,omitempty"`
	Points       *int64  `json:"points,omitempty"`
	Description  *string `json:"description,omitempty"`
	Active       *bool   `json:"active,omitempty"`
	SortOrder    *int    `json:"sort_order,omitempty"`
}

// ListPlansResponse wraps the purchasable catalog.
type ListPlansResponse struct {
	Plans []domain.PromotionPlan `json:"plans"`
}

//
// Handlers
//

// ListPlans godoc
// @ID          listPlans
// @Summary     List active promotion plans
// @Description Returns the purchasable catalog ordered by sort order. Retired and inactive plans are excluded.
// @Tags        Plans
// @Produce     json
//
// @Success     200  {object}  handlers.ListPlansResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /plans [get]
func (h *Handlers) ListPlans(c *gin.Context) {
	plans, err := h.promoSvc.ListActivePlans(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if plans == nil {
		plans = []domain.PromotionPlan{}
	}
	ok(c, http.StatusOK, ListPlansResponse{Plans: plans})
}

// CreatePlan godoc
// @ID          createPlan
// @Summary     Create a promotion plan (admin)
// @Description Adds a new entry to the promotion catalog.
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Admin account ID (demo header)"  example(admin1)
// @Param       body       body    handlers.CreatePlanRequest  true  "Plan payload"
//
// @Success     201  {object}  domain.PromotionPlan
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin access required"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/plans [post]
func (h *Handlers) CreatePlan(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	plan, err := h.promoSvc.CreatePlan(c.Request.Context(), &domain.PromotionPlan{
		Name:         req.Name,
		DurationDays: req.DurationDays,
		Position:     req.Position,
		Points:       req.Points,
		Description:  req.Description,
		Active:       true,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPosition):
			fail(c, http.StatusBadRequest, ErrCodeInvalidPosition, "position must be rank1 or top10")
		case errors.Is(err, services.ErrInvalidAmount):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "duration and points must be positive")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, plan)
}

// UpdatePlan godoc
// @ID          updatePlan
// @Summary     Update a promotion plan (admin)
// @Description Applies a partial update to a catalog entry. Promotions already sold keep the terms they were bought under.
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Admin account ID (demo header)"  example(admin1)
// @Param       id         path    string  true  "Plan ID"
// @Param       body       body    handlers.UpdatePlanRequest  true  "Fields to update"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin access required"
// @Failure     404  {object}  handlers.ErrorResponse  "Plan not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/plans/{id} [put]
func (h *Handlers) UpdatePlan(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.DurationDays != nil {
		updates["duration_days"] = *req.DurationDays
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Points != nil {
		updates["points"] = *req.Points
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if len(updates) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "no fields to update")
		return
	}

	if err := h.promoSvc.UpdatePlan(c.Request.Context(), c.Param("id"), updates); err != nil {
		switch {
		case errors.Is(err, services.ErrPlanNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "plan not found")
		case errors.Is(err, services.ErrInvalidPosition):
			fail(c, http.StatusBadRequest, ErrCodeInvalidPosition, "position must be rank1 or top10")
		case errors.Is(err, services.ErrInvalidAmount):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "duration and points must be positive")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// DeletePlan godoc
// @ID          deletePlan
// @Summary     Delete a promotion plan (admin)
// @Description Retires a catalog entry. Promotions already sold under it are unaffected.
// @Tags        Admin
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Admin account ID (demo header)"  example(admin1)
// @Param       id         path    string  true  "Plan ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin access required"
// @Failure     404  {object}  handlers.ErrorResponse  "Plan not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/plans/{id} [delete]
func (h *Handlers) DeletePlan(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	if err := h.promoSvc.DeletePlan(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, services.ErrPlanNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "plan not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}
