// Package services – PromotionService
//
// This file implements PromotionService, the state machine around ad
// promotions: the admin-managed plan catalog, plan-based and ad-hoc
// purchases, attaching pre-paid promotions to ads, and the promotion
// mirror fields on the ad record. It is the single writer of those mirror
// fields; no other component may touch them, which is what keeps the
// denormalization safe.
//
// A purchase debits the balance, appends the ledger entry, creates the
// AdPromotion row, and writes the mirror in one DB transaction under the
// account's mutex. Expiry is never swept; liveness is always computed
// against the injected clock at read time.
//
// Observability: purchase paths are OpenTelemetry-instrumented; spans
// include account/ad identifiers.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/go-ads-backend/internal/domain"
	"github.com/tbourn/go-ads-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PromotionRepo defines the repository contract required by
// PromotionService. It spans plans, promotions, ads, accounts, and the
// ledger because a purchase touches all of them atomically.
type PromotionRepo interface {
	// Plans
	CreatePlan(ctx context.Context, db *gorm.DB, p *domain.PromotionPlan) (*domain.PromotionPlan, error)
	GetPlan(ctx context.Context, db *gorm.DB, id string) (*domain.PromotionPlan, error)
	ListActivePlans(ctx context.Context, db *gorm.DB) ([]domain.PromotionPlan, error)
	UpdatePlan(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error
	DeletePlan(ctx context.Context, db *gorm.DB, id string) error

	// Promotions
	CreatePromotion(ctx context.Context, db *gorm.DB, p *domain.AdPromotion) (*domain.AdPromotion, error)
	GetPromotion(ctx context.Context, db *gorm.DB, id string) (*domain.AdPromotion, error)
	AttachPromotion(ctx context.Context, db *gorm.DB, id, adID string) error
	ListPromotions(ctx context.Context, db *gorm.DB, accountID string) ([]domain.AdPromotion, error)

	// Ads (mirror writes)
	GetAd(ctx context.Context, db *gorm.DB, id string) (*domain.Ad, error)
	SetAdPromotionMirror(ctx context.Context, db *gorm.DB, id, promotionID, position string, until time.Time) error
	ClearAdPromotionMirror(ctx context.Context, db *gorm.DB, id string) error

	// Accounts + ledger
	GetAccount(ctx context.Context, db *gorm.DB, id string) (*domain.Account, error)
	UpdateAccountPoints(ctx context.Context, db *gorm.DB, id string, points int64) error
	AppendTransaction(ctx context.Context, db *gorm.DB, accountID string, amount, points int64, txType, description string) (*domain.PointTransaction, error)
}

// PromotionService coordinates the promotion catalog and lifecycle.
type PromotionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the promotion repository used by this service.
	Repo PromotionRepo
	// Locks serializes balance mutations per account. Must be the same
	// instance the PointsService uses.
	Locks *AccountLocks

	// Now is the clock used for expiry computation; defaults to UTC now.
	Now func() time.Time

	// NameMaxLen caps stored plan names by rune length.
	NameMaxLen int
	// NameLocale selects the casing rules for plan display names.
	NameLocale language.Tag
}

// NewPromotionService constructs a PromotionService with sane defaults for
// plan name handling.
func NewPromotionService(db *gorm.DB, r PromotionRepo, locks *AccountLocks) *PromotionService {
	return &PromotionService{
		DB:         db,
		Repo:       r,
		Locks:      locks,
		Now:        func() time.Time { return time.Now().UTC() },
		NameMaxLen: 120,
		NameLocale: language.English,
	}
}

//
// Catalog
//

// CreatePlan validates and inserts a new catalog entry. Names are
// normalized, title-cased per the configured locale, and clipped.
func (s *PromotionService) CreatePlan(ctx context.Context, p *domain.PromotionPlan) (*domain.PromotionPlan, error) {
	if err := s.validatePlanTerms(p.Position, p.DurationDays, p.Points); err != nil {
		return nil, err
	}
	p.Name = s.normalizeName(p.Name)
	if p.Name == "" {
		return nil, ErrInvalidAmount
	}
	return s.Repo.CreatePlan(ctx, s.DB, p)
}

// UpdatePlan applies partial updates to a plan. Position/duration/points
// values, when present, are validated the same way as creation. Historical
// promotions keep the terms they were bought under.
func (s *PromotionService) UpdatePlan(ctx context.Context, id string, updates map[string]any) error {
	if pos, ok := updates["position"].(string); ok && !validPosition(pos) {
		return ErrInvalidPosition
	}
	if d, ok := updates["duration_days"].(int); ok && d <= 0 {
		return ErrInvalidAmount
	}
	if pts, ok := updates["points"].(int64); ok && pts <= 0 {
		return ErrInvalidAmount
	}
	if name, ok := updates["name"].(string); ok {
		updates["name"] = s.normalizeName(name)
	}
	if err := s.Repo.UpdatePlan(ctx, s.DB, id, updates); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// DeletePlan removes a plan from the catalog. Sold promotions are
// unaffected.
func (s *PromotionService) DeletePlan(ctx context.Context, id string) error {
	if err := s.Repo.DeletePlan(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// ListActivePlans returns the purchasable catalog ordered by sort order.
func (s *PromotionService) ListActivePlans(ctx context.Context) ([]domain.PromotionPlan, error) {
	return s.Repo.ListActivePlans(ctx, s.DB)
}

// GetPlan resolves a plan by ID, mapping missing rows to ErrPlanNotFound.
func (s *PromotionService) GetPlan(ctx context.Context, id string) (*domain.PromotionPlan, error) {
	p, err := s.Repo.GetPlan(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return p, nil
}

//
// Lifecycle
//

// Purchase buys the given plan for an ad the account owns and attaches the
// resulting promotion immediately.
//
// Ordered checks, each with its own failure signal:
//  1. The ad must exist (ErrAdNotFound) and belong to the account
//     (ErrForbidden).
//  2. The account's mobile number must be verified
//     (ErrVerificationRequired).
//  3. The plan must exist and be active (ErrPlanNotFound).
//  4. The balance must cover the plan's cost (ErrInsufficientPoints).
//
// On success the debit, ledger entry, promotion row, and ad mirror update
// all commit together; on any failure nothing is written.
func (s *PromotionService) Purchase(ctx context.Context, accountID, adID, planID string) (*domain.AdPromotion, *domain.Ad, error) {
	tr := otel.Tracer("services/PromotionService")
	ctx, span := tr.Start(ctx, "Purchase",
		trace.WithAttributes(
			attribute.String("account.id", accountID),
			attribute.String("ad.id", adID),
			attribute.String("plan.id", planID),
		),
	)
	defer span.End()

	ad, err := s.ownedAd(ctx, accountID, adID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.verifiedAccount(ctx, accountID); err != nil {
		return nil, nil, err
	}

	plan, err := s.Repo.GetPlan(ctx, s.DB, planID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrPlanNotFound
		}
		return nil, nil, err
	}
	if !plan.Active {
		return nil, nil, ErrPlanNotFound
	}

	now := s.now()
	expiresAt := now.Add(time.Duration(plan.DurationDays) * 24 * time.Hour)

	var promo *domain.AdPromotion
	// Deferred so a panic inside the transaction cannot wedge the account lock.
	s.Locks.Lock(accountID)
	defer s.Locks.Unlock(accountID)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := s.debit(ctx, tx, accountID, plan.Points, fmt.Sprintf("promotion purchase: %s", plan.Name))
		if err != nil {
			return err
		}
		promo, err = s.Repo.CreatePromotion(ctx, tx, &domain.AdPromotion{
			AccountID:     accountID,
			AdID:          &adID,
			PlanID:        &plan.ID,
			Position:      plan.Position,
			StartsAt:      now,
			ExpiresAt:     expiresAt,
			Points:        plan.Points,
			TransactionID: entry.ID,
		})
		if err != nil {
			return err
		}
		return s.Repo.SetAdPromotionMirror(ctx, tx, adID, promo.ID, plan.Position, expiresAt)
	})
	if err != nil {
		return nil, nil, err
	}

	// Re-read so the caller sees the mirrored fields.
	if fresh, rerr := s.Repo.GetAd(ctx, s.DB, adID); rerr == nil {
		ad = fresh
	}
	return promo, ad, nil
}

// PurchaseAdHoc buys a custom promotion outside the catalog, without
// binding it to an ad. The account can bank it and Attach it later.
func (s *PromotionService) PurchaseAdHoc(ctx context.Context, accountID, position string, durationDays int, points int64) (*domain.AdPromotion, error) {
	tr := otel.Tracer("services/PromotionService")
	ctx, span := tr.Start(ctx, "PurchaseAdHoc",
		trace.WithAttributes(
			attribute.String("account.id", accountID),
			attribute.String("promotion.position", position),
		),
	)
	defer span.End()

	if !validPosition(position) {
		return nil, ErrInvalidPosition
	}
	if durationDays <= 0 || points <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := s.verifiedAccount(ctx, accountID); err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(time.Duration(durationDays) * 24 * time.Hour)

	var promo *domain.AdPromotion
	s.Locks.Lock(accountID)
	defer s.Locks.Unlock(accountID)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := s.debit(ctx, tx, accountID, points, fmt.Sprintf("ad-hoc promotion: %s / %d days", position, durationDays))
		if err != nil {
			return err
		}
		promo, err = s.Repo.CreatePromotion(ctx, tx, &domain.AdPromotion{
			AccountID:     accountID,
			Position:      position,
			StartsAt:      now,
			ExpiresAt:     expiresAt,
			Points:        points,
			TransactionID: entry.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return promo, nil
}

// Attach binds a pre-paid promotion to an ad the account owns and writes
// the mirror fields. Fails with ErrNotOwner when the promotion belongs to
// someone else, ErrPromotionAttached when already bound, and
// ErrPromotionExpired when its window has already closed.
func (s *PromotionService) Attach(ctx context.Context, accountID, promotionID, adID string) (*domain.Ad, error) {
	promo, err := s.Repo.GetPromotion(ctx, s.DB, promotionID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	if promo.AccountID != accountID {
		return nil, ErrNotOwner
	}
	if promo.AdID != nil {
		return nil, ErrPromotionAttached
	}
	if !promo.ActiveAt(s.now()) {
		return nil, ErrPromotionExpired
	}
	if _, err := s.ownedAd(ctx, accountID, adID); err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.AttachPromotion(ctx, tx, promotionID, adID); err != nil {
			// The ad_id IS NULL guard lost a race with a concurrent attach.
			if errors.Is(err, repo.ErrNotFound) {
				return ErrPromotionAttached
			}
			return err
		}
		return s.Repo.SetAdPromotionMirror(ctx, tx, adID, promo.ID, promo.Position, promo.ExpiresAt)
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetAd(ctx, s.DB, adID)
}

// ListPromotions returns the account's purchase history, newest first.
func (s *PromotionService) ListPromotions(ctx context.Context, accountID string) ([]domain.AdPromotion, error) {
	return s.Repo.ListPromotions(ctx, s.DB, accountID)
}

// ClearExpiredMirror removes the stale mirror fields from an ad the
// account owns. Only expired promotions can be cleared; a live one stays
// until it runs out.
func (s *PromotionService) ClearExpiredMirror(ctx context.Context, accountID, adID string) (*domain.Ad, error) {
	ad, err := s.ownedAd(ctx, accountID, adID)
	if err != nil {
		return nil, err
	}
	if ad.PromotionID == nil {
		return ad, nil
	}
	if ad.PromotedAt(s.now()) {
		return nil, ErrPromotionActive
	}
	if err := s.Repo.ClearAdPromotionMirror(ctx, s.DB, adID); err != nil {
		return nil, err
	}
	return s.Repo.GetAd(ctx, s.DB, adID)
}

//
// Internals
//

// now returns the injected clock's time, falling back to UTC wall time.
func (s *PromotionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// debit performs the read-check-write-append sequence for a purchase.
// Callers must hold the account's lock and pass a transaction handle.
func (s *PromotionService) debit(ctx context.Context, tx *gorm.DB, accountID string, points int64, description string) (*domain.PointTransaction, error) {
	acc, err := s.Repo.GetAccount(ctx, tx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if acc.Points < points {
		return nil, ErrInsufficientPoints
	}
	newBalance := acc.Points - points
	if err := s.Repo.UpdateAccountPoints(ctx, tx, accountID, newBalance); err != nil {
		return nil, err
	}
	return s.Repo.AppendTransaction(ctx, tx, accountID, -points, newBalance, domain.TxDebit, description)
}

// ownedAd loads the ad and checks ownership.
func (s *PromotionService) ownedAd(ctx context.Context, accountID, adID string) (*domain.Ad, error) {
	ad, err := s.Repo.GetAd(ctx, s.DB, adID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	if ad.AccountID != accountID {
		return nil, ErrForbidden
	}
	return ad, nil
}

// verifiedAccount checks the mobile-verification gate for purchases.
func (s *PromotionService) verifiedAccount(ctx context.Context, accountID string) error {
	acc, err := s.Repo.GetAccount(ctx, s.DB, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if !acc.MobileVerified {
		return ErrVerificationRequired
	}
	return nil
}

// validatePlanTerms checks the purchasable terms shared by create and
// ad-hoc purchase paths.
func (s *PromotionService) validatePlanTerms(position string, durationDays int, points int64) error {
	if !validPosition(position) {
		return ErrInvalidPosition
	}
	if durationDays <= 0 || points <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// validPosition reports whether the tier is one of the two known slots.
func validPosition(p string) bool {
	return p == domain.PositionRank1 || p == domain.PositionTop10
}

// normalizeName trims, collapses whitespace, title-cases, and clips a plan
// display name.
func (s *PromotionService) normalizeName(name string) string {
	name = planWhitespaceRE.ReplaceAllString(strings.TrimSpace(name), " ")
	if name == "" {
		return ""
	}
	name = cases.Title(s.NameLocale).String(name)
	if s.NameMaxLen > 0 && utf8.RuneCountInString(name) > s.NameMaxLen {
		name = string([]rune(name)[:s.NameMaxLen])
	}
	return name
}

// planWhitespaceRE collapses consecutive whitespace to a single space.
var planWhitespaceRE = regexp.MustCompile(`\s+`)
