package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-ads-backend/internal/config"
	"github.com/tbourn/go-ads-backend/internal/domain"
	"github.com/tbourn/go-ads-backend/internal/http/middleware"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// schema so handlers don't explode on list endpoints
	if err := db.AutoMigrate(
		&domain.Account{}, &domain.Ad{}, &domain.PointTransaction{},
		&domain.PromotionPlan{}, &domain.AdPromotion{}, &domain.Idempotency{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func routerCfg(basePath string) config.Config {
	return config.Config{
		APIBasePath: basePath,
		RateRPS:     100,
		RateBurst:   10,
		CORS:        config.CORSConfig{},
		Security:    config.SecurityConfig{EnableHSTS: false},
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
		Verification: config.VerificationConfig{
			MobileCodeTTL: 10 * time.Minute,
			ResetCodeTTL:  15 * time.Minute,
			ResetTokenTTL: 15 * time.Minute,
		},
	}
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := routerCfg("/api/v1")
	db := newTestDB(t)

	RegisterRoutes(r, db, cfg)

	// /health works
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	// /metrics is wired
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || len(w.Body.Bytes()) == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute → 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}

	// NoMethod → 405 (POST /health)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := routerCfg("/api/v2")
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	db := newTestDB(t)

	RegisterRoutes(r, db, cfg)

	// Any request runs through CORS middleware; header should reflect origin.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	root1 := groupWithPrefix(r, "/")
	root1.GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	root2 := groupWithPrefix(r, "")
	root2.GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })

	// non-root prefix
	api := groupWithPrefix(r, "/api")
	api.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	// Hit all three
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/one", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "one" {
		t.Fatalf("GET /one got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/two", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "two" {
		t.Fatalf("GET /two got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("GET /api/ping got %d %q", rec.Code, rec.Body.String())
	}
}

// Smoke test that a request traverses idempotency + ratelimit + otel + security headers pipeline.
func TestPipeline_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := routerCfg("/api/v1")
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour} // enabled (but only set on https)
	db := newTestDB(t)
	RegisterRoutes(r, db, cfg)

	// Any request goes through the middleware stack
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	// simulate https so HSTS could be eligible if middleware checks scheme
	req.URL.Scheme = "https"
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("pipeline GET /health = %d", w.Code)
	}
	// RequestID header should be present (from RequestID middleware)
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}

func TestRegisterRoutes_PublicEndpoints_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := routerCfg("/api/v1")
	db := newTestDB(t)
	RegisterRoutes(r, db, cfg)

	// Empty catalog still answers 200 with a list payload.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /plans = %d body=%s", w.Code, w.Body.String())
	}

	// Empty listing answers 200 too.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/ads", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /ads = %d body=%s", w.Code, w.Body.String())
	}

	// Balance of an account with no ledger rows reads zero.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/points/balance", nil)
	req.Header.Set("X-User-ID", "acc-1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /points/balance = %d body=%s", w.Code, w.Body.String())
	}
	var bal struct {
		Points int64 `json:"points"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &bal); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if bal.Points != 0 {
		t.Fatalf("expected zero balance, got %d", bal.Points)
	}
}

func TestRegisterRoutes_AdminEndpoints_RequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := routerCfg("/api/v1")
	db := newTestDB(t)
	RegisterRoutes(r, db, cfg)

	// Seed one regular and one admin account.
	if err := db.Create(&domain.Account{ID: "acc-user", Email: "user@example.com"}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := db.Create(&domain.Account{ID: "acc-admin", Email: "admin@example.com", IsAdmin: true}).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	body := `{"name":"Weekly Rank One","duration_days":7,"position":"rank1","points":200}`

	// Non-admin is rejected.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/plans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "acc-user")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin POST /admin/plans = %d body=%s", w.Code, w.Body.String())
	}

	// Admin can create a plan end to end through shims and service.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/plans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "acc-admin")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("admin POST /admin/plans = %d body=%s", w.Code, w.Body.String())
	}

	// The created plan shows up in the public catalog.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /plans = %d", w.Code)
	}
	var list struct {
		Plans []domain.PromotionPlan `json:"plans"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode plans: %v", err)
	}
	if len(list.Plans) != 1 || list.Plans[0].Position != domain.PositionRank1 {
		t.Fatalf("unexpected catalog: %+v", list.Plans)
	}
}

func Test_pointsRepoShim_Proxies(t *testing.T) {
	db := newTestDB(t)
	shim := pointsRepoShim{}
	ctx := context.Background()

	if err := db.Create(&domain.Account{ID: "acc-1", Email: "p@example.com", Points: 50}).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}

	acc, err := shim.GetAccount(ctx, db, "acc-1")
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if acc.Points != 50 {
		t.Fatalf("GetAccount points = %d", acc.Points)
	}

	if err := shim.UpdateAccountPoints(ctx, db, "acc-1", 80); err != nil {
		t.Fatalf("UpdateAccountPoints: %v", err)
	}
	acc, _ = shim.GetAccount(ctx, db, "acc-1")
	if acc.Points != 80 {
		t.Fatalf("points after update = %d", acc.Points)
	}

	tx, err := shim.AppendTransaction(ctx, db, "acc-1", 30, 80, domain.TxCredit, "promo credit")
	if err != nil {
		t.Fatalf("AppendTransaction: %v", err)
	}
	if tx.ID == "" || tx.Amount != 30 {
		t.Fatalf("AppendTransaction returned bad row: %+v", tx)
	}

	n, err := shim.CountTransactions(ctx, db, "acc-1")
	if err != nil {
		t.Fatalf("CountTransactions: %v", err)
	}
	if n != 1 {
		t.Fatalf("CountTransactions = %d", n)
	}

	page, err := shim.ListTransactionsPage(ctx, db, "acc-1", 0, 10)
	if err != nil {
		t.Fatalf("ListTransactionsPage: %v", err)
	}
	if len(page) != 1 || page[0].ID != tx.ID {
		t.Fatalf("ListTransactionsPage mismatch: %+v", page)
	}
}

func Test_promotionRepoShim_Proxies(t *testing.T) {
	db := newTestDB(t)
	shim := promotionRepoShim{}
	ctx := context.Background()

	plan, err := shim.CreatePlan(ctx, db, &domain.PromotionPlan{
		Name: "Weekly Rank One", DurationDays: 7,
		Position: domain.PositionRank1, Points: 200, Active: true,
	})
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if plan.ID == "" {
		t.Fatalf("CreatePlan returned empty id")
	}

	got, err := shim.GetPlan(ctx, db, plan.ID)
	if err != nil || got.Name != "Weekly Rank One" {
		t.Fatalf("GetPlan: %v %+v", err, got)
	}

	active, err := shim.ListActivePlans(ctx, db)
	if err != nil || len(active) != 1 {
		t.Fatalf("ListActivePlans: %v len=%d", err, len(active))
	}

	if err := shim.UpdatePlan(ctx, db, plan.ID, map[string]any{"points": int64(250)}); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	got, _ = shim.GetPlan(ctx, db, plan.ID)
	if got.Points != 250 {
		t.Fatalf("UpdatePlan points = %d", got.Points)
	}

	// Promotion rows plus the ad mirror round-trip.
	if err := db.Create(&domain.Ad{ID: "ad-1", AccountID: "acc-1", Title: "bike", Verified: true}).Error; err != nil {
		t.Fatalf("seed ad: %v", err)
	}
	until := time.Now().Add(7 * 24 * time.Hour).UTC().Truncate(time.Second)
	promo, err := shim.CreatePromotion(ctx, db, &domain.AdPromotion{
		AccountID: "acc-1", PlanID: &plan.ID, Position: domain.PositionRank1,
		StartsAt: time.Now().UTC(), ExpiresAt: until, Points: 250, TransactionID: "tx-1",
	})
	if err != nil || promo.ID == "" {
		t.Fatalf("CreatePromotion: %v %+v", err, promo)
	}

	if err := shim.AttachPromotion(ctx, db, promo.ID, "ad-1"); err != nil {
		t.Fatalf("AttachPromotion: %v", err)
	}
	if err := shim.SetAdPromotionMirror(ctx, db, "ad-1", promo.ID, promo.Position, until); err != nil {
		t.Fatalf("SetAdPromotionMirror: %v", err)
	}
	ad, err := shim.GetAd(ctx, db, "ad-1")
	if err != nil {
		t.Fatalf("GetAd: %v", err)
	}
	if ad.PromotionID == nil || *ad.PromotionID != promo.ID {
		t.Fatalf("mirror not written: %+v", ad)
	}

	mine, err := shim.ListPromotions(ctx, db, "acc-1")
	if err != nil || len(mine) != 1 {
		t.Fatalf("ListPromotions: %v len=%d", err, len(mine))
	}

	if err := shim.ClearAdPromotionMirror(ctx, db, "ad-1"); err != nil {
		t.Fatalf("ClearAdPromotionMirror: %v", err)
	}
	ad, _ = shim.GetAd(ctx, db, "ad-1")
	if ad.PromotionID != nil {
		t.Fatalf("mirror not cleared: %+v", ad)
	}

	if err := shim.DeletePlan(ctx, db, plan.ID); err != nil {
		t.Fatalf("DeletePlan: %v", err)
	}
	if _, err := shim.GetPlan(ctx, db, plan.ID); err == nil {
		t.Fatalf("expected GetPlan to fail after delete")
	}
}

func Test_verificationAndListingShims_Proxies(t *testing.T) {
	db := newTestDB(t)
	vshim := verificationRepoShim{}
	lshim := listingRepoShim{}
	ctx := context.Background()

	if err := db.Create(&domain.Account{ID: "acc-1", Email: "v@example.com"}).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if err := db.Create(&domain.Ad{ID: "ad-1", AccountID: "acc-1", Title: "sofa"}).Error; err != nil {
		t.Fatalf("seed ad: %v", err)
	}

	if _, err := vshim.GetAccount(ctx, db, "acc-1"); err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if _, err := vshim.GetAccountByEmail(ctx, db, "v@example.com"); err != nil {
		t.Fatalf("GetAccountByEmail: %v", err)
	}

	if err := vshim.SetMobileVerified(ctx, db, "acc-1", "0912345678"); err != nil {
		t.Fatalf("SetMobileVerified: %v", err)
	}
	acc, _ := vshim.GetAccount(ctx, db, "acc-1")
	if !acc.MobileVerified || acc.Phone != "0912345678" {
		t.Fatalf("verification not persisted: %+v", acc)
	}

	if err := vshim.SetPasswordHash(ctx, db, "acc-1", "$2a$10$hash"); err != nil {
		t.Fatalf("SetPasswordHash: %v", err)
	}

	ids, err := vshim.ListUnverifiedAds(ctx, db, "acc-1")
	if err != nil || len(ids) != 1 || ids[0] != "ad-1" {
		t.Fatalf("ListUnverifiedAds: %v %v", err, ids)
	}
	if err := vshim.SetAdVerified(ctx, db, "ad-1"); err != nil {
		t.Fatalf("SetAdVerified: %v", err)
	}

	live, err := lshim.ListVerifiedAds(ctx, db)
	if err != nil || len(live) != 1 || live[0].ID != "ad-1" {
		t.Fatalf("ListVerifiedAds: %v %v", err, live)
	}
}

// A retried purchase carrying the same Idempotency-Key must debit once and
// replay the stored promotion on the second attempt.
func TestRegisterRoutes_PromoteRetrySameKeyDebitsOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := routerCfg("/api/v1")
	db := newTestDB(t)
	RegisterRoutes(r, db, cfg)

	if err := db.Create(&domain.Account{ID: "acc-buyer", Email: "b@example.com", Points: 1000, MobileVerified: true}).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if err := db.Create(&domain.Ad{ID: "ad1", AccountID: "acc-buyer", Title: "bike", Verified: true}).Error; err != nil {
		t.Fatalf("seed ad: %v", err)
	}
	if err := db.Create(&domain.PromotionPlan{
		ID: "plan-1", Name: "Weekly Rank One", DurationDays: 7,
		Position: domain.PositionRank1, Points: 500, Active: true,
	}).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	promote := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/ads/ad1/promote", bytes.NewBufferString(`{"plan_id":"plan-1"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", "acc-buyer")
		req.Header.Set(middleware.HeaderIdempotencyKey, "retry-123")
		r.ServeHTTP(w, req)
		return w
	}

	first := promote()
	if first.Code != http.StatusCreated {
		t.Fatalf("first promote = %d body=%s", first.Code, first.Body.String())
	}
	var created struct {
		Promotion *domain.AdPromotion `json:"promotion"`
	}
	if err := json.Unmarshal(first.Body.Bytes(), &created); err != nil || created.Promotion == nil {
		t.Fatalf("decode first response: %v body=%s", err, first.Body.String())
	}

	second := promote()
	if second.Code != http.StatusOK {
		t.Fatalf("retried promote = %d body=%s", second.Code, second.Body.String())
	}
	if second.Header().Get("Idempotency-Replayed") != "true" {
		t.Fatalf("retry missing Idempotency-Replayed header")
	}
	var replayed struct {
		Promotion *domain.AdPromotion `json:"promotion"`
	}
	if err := json.Unmarshal(second.Body.Bytes(), &replayed); err != nil || replayed.Promotion == nil {
		t.Fatalf("decode retry response: %v body=%s", err, second.Body.String())
	}
	if replayed.Promotion.ID != created.Promotion.ID {
		t.Fatalf("retry returned a different promotion: %q vs %q", replayed.Promotion.ID, created.Promotion.ID)
	}

	var acc domain.Account
	if err := db.First(&acc, "id = ?", "acc-buyer").Error; err != nil {
		t.Fatalf("reload account: %v", err)
	}
	if acc.Points != 500 {
		t.Fatalf("balance = %d; want 500 after a single debit", acc.Points)
	}
	var promoCount int64
	if err := db.Model(&domain.AdPromotion{}).Count(&promoCount).Error; err != nil {
		t.Fatalf("count promotions: %v", err)
	}
	if promoCount != 1 {
		t.Fatalf("promotions = %d; want 1", promoCount)
	}

	var idem domain.Idempotency
	if err := db.First(&idem, "account_id = ? AND scope = ? AND key = ?",
		"acc-buyer", "/api/v1/ads/:id/promote", "retry-123").Error; err != nil {
		t.Fatalf("idempotency record not stored: %v", err)
	}
	if idem.RefID != created.Promotion.ID {
		t.Fatalf("idempotency ref = %q; want %q", idem.RefID, created.Promotion.ID)
	}
}

func TestRegisterRoutes_IdempotencyCallback_MissAndHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := routerCfg("/api/vX")
	db := newTestDB(t)
	RegisterRoutes(r, db, cfg)

	const accountID = "acc-1"
	const key = "key-hit"

	// --- MISS: record does not exist (executes 'rec == nil' branch) ---
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/health", bytes.NewBufferString("{}"))
	req.Header.Set("X-User-ID", accountID)
	req.Header.Set(middleware.HeaderIdempotencyKey, key)
	r.ServeHTTP(w, req)
	// NoMethod is expected for POST /health, but middleware ran.

	// --- seed an idempotency record so the callback returns non-nil ---
	seed := &domain.Idempotency{
		ID:        "idem-seed-1",
		AccountID: accountID,
		Scope:     "", // /health has no route template under the API group
		Key:       key,
		RefID:     "promo-1",
		Status:    1,
		// ensure it's considered valid "now"
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := db.Create(seed).Error; err != nil {
		t.Fatalf("seed idempotency: %v", err)
	}

	// --- HIT: record exists (executes 'return true, nil' branch) ---
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/health", bytes.NewBufferString("{}"))
	req.Header.Set("X-User-ID", accountID)
	req.Header.Set(middleware.HeaderIdempotencyKey, key)
	r.ServeHTTP(w, req)
	// again, 405 is fine; goal is to drive the middleware branch.
}

func TestRegisterRoutes_IdempotencyCallback_ErrorBranch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := routerCfg("/api/v1")

	// Make a fresh in-memory DB and migrate normally.
	db := newTestDB(t)

	// Wire routes first...
	RegisterRoutes(r, db, cfg)

	// ...then force queries to fail by closing the underlying connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	_ = sqlDB.Close()

	// Now any repo.GetIdempotency call should error → drives (err != nil) branch.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/health", bytes.NewBufferString("{}"))
	req.Header.Set("X-User-ID", "acc-1")
	req.Header.Set(middleware.HeaderIdempotencyKey, "force-error")
	r.ServeHTTP(w, req)

	// 405 is expected for POST /health; goal is to exercise the middleware branch.
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
