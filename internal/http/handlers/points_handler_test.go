package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-ads-backend/internal/domain"
	"github.com/tbourn/go-ads-backend/internal/services"
)

func TestGetBalance_OK(t *testing.T) {
	gin.SetMode(gin.TestMode)

	points := &fakePointsSvc{
		balanceFn: func(_ context.Context, accountID string) (int64, error) {
			if accountID != "acc-1" {
				t.Fatalf("accountID = %q", accountID)
			}
			return 420, nil
		},
	}
	h := newTestHandlers(points, nil, nil, nil, nil)

	r := gin.New()
	r.GET("/points/balance", h.GetBalance)

	w := perform(r, http.MethodGet, "/points/balance", "", map[string]string{"X-User-ID": "acc-1"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp BalanceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccountID != "acc-1" || resp.Points != 420 {
		t.Fatalf("body = %+v", resp)
	}
}

func TestListTransactions_PageAndMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Now().UTC()
	points := &fakePointsSvc{
		txFn: func(_ context.Context, accountID string, page, pageSize int) ([]domain.PointTransaction, int64, error) {
			if page != 2 || pageSize != 10 {
				t.Fatalf("page=%d pageSize=%d", page, pageSize)
			}
			return []domain.PointTransaction{
				{ID: "tx-2", AccountID: accountID, Amount: -50, Points: 150, Type: domain.TxDebit, CreatedAt: now},
			}, 11, nil
		},
	}
	h := newTestHandlers(points, nil, nil, nil, nil)

	r := gin.New()
	r.GET("/points/transactions", h.ListTransactions)

	w := perform(r, http.MethodGet, "/points/transactions?page=2&page_size=10", "", map[string]string{"X-User-ID": "acc-1"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var resp ListTransactionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Transactions) != 1 || resp.Transactions[0].ID != "tx-2" {
		t.Fatalf("transactions = %+v", resp.Transactions)
	}
	if resp.Pagination.Total != 11 || resp.Pagination.TotalPages != 2 || resp.Pagination.HasNext {
		t.Fatalf("pagination = %+v", resp.Pagination)
	}
}

func TestAdjustPoints_AdminFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	points := &fakePointsSvc{
		adjustFn: func(_ context.Context, accountID string, delta int64, description string) (int64, *domain.PointTransaction, error) {
			if accountID != "acc-target" || delta != 100 || description != "bank transfer #4411" {
				t.Fatalf("unexpected args: %s %d %q", accountID, delta, description)
			}
			return 520, &domain.PointTransaction{ID: "tx-1", Amount: 100, Points: 520, Type: domain.TxCredit}, nil
		},
	}
	h := newTestHandlers(points, nil, nil, nil, allowAdmin)

	r := gin.New()
	r.POST("/admin/accounts/:id/points", h.AdjustPoints)

	body := `{"amount":100,"description":"bank transfer #4411"}`
	w := perform(r, http.MethodPost, "/admin/accounts/acc-target/points", body, map[string]string{"X-User-ID": "admin1"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var resp AdjustPointsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Points != 520 || resp.Transaction == nil || resp.Transaction.ID != "tx-1" {
		t.Fatalf("body = %+v", resp)
	}
}

func TestAdjustPoints_ErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		svcErr   error
		wantCode int
		wantBody string
	}{
		{"zero amount", services.ErrInvalidAmount, http.StatusBadRequest, ErrCodeBadRequest},
		{"missing account", services.ErrAccountNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"overdraft", services.ErrInsufficientBalance, http.StatusConflict, ErrCodeInsufficientBalance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			points := &fakePointsSvc{
				adjustFn: func(context.Context, string, int64, string) (int64, *domain.PointTransaction, error) {
					return 0, nil, tc.svcErr
				},
			}
			h := newTestHandlers(points, nil, nil, nil, allowAdmin)

			r := gin.New()
			r.POST("/admin/accounts/:id/points", h.AdjustPoints)

			w := perform(r, http.MethodPost, "/admin/accounts/acc-1/points", `{"amount":-999}`, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantCode)
			}
			if resp := decodeErr(t, w); resp.Code != tc.wantBody {
				t.Fatalf("code = %q, want %q", resp.Code, tc.wantBody)
			}
		})
	}
}

func TestAdjustPoints_BadJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandlers(nil, nil, nil, nil, allowAdmin)

	r := gin.New()
	r.POST("/admin/accounts/:id/points", h.AdjustPoints)

	w := perform(r, http.MethodPost, "/admin/accounts/acc-1/points", `{"amount":`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}
