// Points HTTP handlers.
//
// This file exposes REST endpoints for the points balance and ledger:
//   - GET  /points/balance              (current balance)
//   - GET  /points/transactions         (ledger, paginated, ETag support)
//   - POST /admin/accounts/{id}/points  (admin credit/debit adjustment)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-ads-backend/internal/domain"
	"github.com/tbourn/go-ads-backend/internal/repo"
	"github.com/tbourn/go-ads-backend/internal/services"
)

//
// DTOs
//

// BalanceResponse is the body returned by the balance endpoint.
type BalanceResponse struct {
	AccountID string `json:"account_id" example:"user123"`
	Points    int64  `json:"points"     example:"420"`
}

// AdjustPointsRequest is the JSON payload for an admin balance adjustment.
type AdjustPointsRequest struct {
	// Amount is the signed delta to apply; positive credits, negative debits.
	Amount int64 `json:"amount" binding:"required" example:"100"`
	// Description optionally annotates the ledger entry.
	Description string `json:"description" example:"bank transfer #4411"`
}

// AdjustPointsResponse returns the post-adjustment balance and the ledger
// entry that recorded it.
type AdjustPointsResponse struct {
	Points      int64                    `json:"points"`
	Transaction *domain.PointTransaction `json:"transaction"`
}

// ListTransactionsResponse wraps a page of ledger entries and pagination
// information.
type ListTransactionsResponse struct {
	Transactions []domain.PointTransaction `json:"transactions"`
	Pagination   Pagination                `json:"pagination"`
}

//
// Handlers
//

// GetBalance godoc
// @ID          getBalance
// @Summary     Get point balance
// @Description Returns the current point balance of the authenticated account.
// @Tags        Points
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Account ID (demo header)"  example(user123)
//
// @Success     200  {object}  handlers.BalanceResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /points/balance [get]
func (h *Handlers) GetBalance(c *gin.Context) {
	uid := userID(c)
	points, err := h.pointsSvc.Balance(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, BalanceResponse{AccountID: uid, Points: points})
}

// ListTransactions godoc
// @ID          listTransactions
// @Summary     List point transactions (paginated)
// @Description Returns a page of the account's ledger, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Points
// @Produce     json
//
// @Param       X-User-ID      header  string  false "Account ID (demo header)"    example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListTransactionsResponse
// @Header      200  {string} ETag           "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /points/transactions [get]
func (h *Handlers) ListTransactions(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort). The ledger is append-only, so its size
	// plus the newest timestamp fully identify the result.
	var db *gorm.DB
	if svc, ok := h.pointsSvc.(*services.PointsService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.TransactionsStats(ctx, db, uid)
		if err == nil {
			etag := fmt.Sprintf(`W/"txs:%s:%d:%d"`, uid, count, unixOrZero(maxTS))
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.pointsSvc.Transactions(ctx, uid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ListTransactionsResponse{
		Transactions: items,
		Pagination:   paginate(page, pageSize, total),
	})
}

// AdjustPoints godoc
// @ID          adjustPoints
// @Summary     Adjust an account's points (admin)
// @Description Applies a signed delta to the target account's balance and appends the matching ledger entry. A negative delta that would drive the balance below zero is rejected without any state change.
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Admin account ID (demo header)"  example(admin1)
// @Param       id         path    string  true  "Target account ID"
// @Param       body       body    handlers.AdjustPointsRequest  true  "Adjustment payload"
//
// @Success     200  {object}  handlers.AdjustPointsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin access required"
// @Failure     404  {object}  handlers.ErrorResponse  "Account not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Insufficient balance"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/accounts/{id}/points [post]
func (h *Handlers) AdjustPoints(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var req AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	balance, entry, err := h.pointsSvc.Adjust(c.Request.Context(), c.Param("id"), req.Amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "amount must be non-zero")
		case errors.Is(err, services.ErrAccountNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "account not found")
		case errors.Is(err, services.ErrInsufficientBalance):
			fail(c, http.StatusConflict, ErrCodeInsufficientBalance, "removal would drive the balance below zero")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, AdjustPointsResponse{Points: balance, Transaction: entry})
}
