// Package domain defines the persistence models for accounts, ads, the
// points ledger, and ad promotions. These types are mapped with GORM and
// form the core data layer of the classifieds backend.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Transaction types recorded in the points ledger.
const (
	TxCredit = "credit"
	TxDebit  = "debit"
)

// Promotion position tiers. PositionRank1 is the single top slot;
// PositionTop10 is the elevated block below it.
const (
	PositionRank1 = "rank1"
	PositionTop10 = "top10"
)

// Account represents a marketplace user from the points engine's point of
// view: the authoritative balance, the mobile-verification flag that gates
// promotion purchases, and the credential hash touched by password reset.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: unique login identifier, used by the password-reset flow.
//   - Phone: last verified (or pending) mobile number.
//   - MobileVerified: set once a mobile code has been confirmed.
//   - IsAdmin: grants access to the admin endpoints (plans, adjustments).
//   - Points: current balance; always equals the sum of ledger amounts.
//   - PasswordHash: bcrypt hash, never serialized.
type Account struct {
	ID             string         `json:"id"              gorm:"type:char(36);primaryKey"`
	Email          string         `json:"email"           gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone          string         `json:"phone,omitempty" gorm:"type:varchar(16)"`
	MobileVerified bool           `json:"mobile_verified" gorm:"not null;default:false"`
	IsAdmin        bool           `json:"-"               gorm:"not null;default:false"`
	Points         int64          `json:"points"          gorm:"not null;default:0;check:points >= 0"`
	PasswordHash   string         `json:"-"               gorm:"type:varchar(72)"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-"               gorm:"index"`
}

// TableName returns the database table name for Account.
func (Account) TableName() string { return "accounts" }

// Ad is the slice of an ad record this engine reads and writes: ownership,
// the verified flag flipped by mobile verification, and the promotion
// mirror fields (PromotionID, Position, PromotedUntil) that duplicate the
// authoritative AdPromotion row so listings can be ranked without a join.
//
// The mirror fields are written only by the promotion service; an ad is
// considered promoted when PromotionID is set and PromotedUntil is in the
// future. Expiry is always evaluated at read time, never cached.
type Ad struct {
	ID            string         `json:"id"         gorm:"type:char(36);primaryKey"`
	AccountID     string         `json:"account_id" gorm:"type:char(36);not null;index:idx_account_ads"`
	Title         string         `json:"title"      gorm:"type:varchar(255);not null"`
	Verified      bool           `json:"verified"   gorm:"not null;default:false"`
	PromotionID   *string        `json:"promotion_id,omitempty"   gorm:"type:char(36)"`
	Position      *string        `json:"position,omitempty"       gorm:"type:varchar(16)"`
	PromotedUntil *time.Time     `json:"promoted_until,omitempty" gorm:"index"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Ad.
func (Ad) TableName() string { return "ads" }

// PromotedAt reports whether the ad carries a live promotion at instant now.
func (a *Ad) PromotedAt(now time.Time) bool {
	return a.PromotionID != nil && a.PromotedUntil != nil && a.PromotedUntil.After(now)
}

// PointTransaction is one immutable row of the append-only points ledger.
// Every balance mutation writes exactly one transaction in the same DB
// transaction; the ledger is never updated or deleted afterwards.
//
// Fields:
//   - Amount: signed delta applied to the balance.
//   - Points: balance snapshot after the operation.
//   - Type: TxCredit or TxDebit (enforced by DB constraint).
type PointTransaction struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	AccountID   string    `json:"account_id"  gorm:"type:char(36);not null;index:idx_account_txs,priority:1"`
	Amount      int64     `json:"amount"      gorm:"not null"`
	Points      int64     `json:"points"      gorm:"not null"`
	Type        string    `json:"type"        gorm:"type:varchar(8);not null;check:type IN ('credit','debit')"`
	Description string    `json:"description" gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `json:"created_at"  gorm:"index:idx_account_txs,priority:2"`
}

// TableName returns the database table name for PointTransaction.
func (PointTransaction) TableName() string { return "point_transactions" }

// PromotionPlan is an admin-managed catalog entry describing a purchasable
// promotion: how long it runs, which position tier it buys, and what it
// costs. Purchases copy the plan's terms onto the AdPromotion row, so
// editing a plan never rewrites promotions already sold.
type PromotionPlan struct {
	ID           string         `json:"id"            gorm:"type:char(36);primaryKey"`
	Name         string         `json:"name"          gorm:"type:varchar(120);not null"`
	DurationDays int            `json:"duration_days" gorm:"not null;check:duration_days > 0"`
	Position     string         `json:"position"      gorm:"type:varchar(16);not null;check:position IN ('rank1','top10')"`
	Points       int64          `json:"points"        gorm:"not null;check:points > 0"`
	Description  string         `json:"description"   gorm:"type:text"`
	Active       bool           `json:"active"        gorm:"not null;default:true"`
	SortOrder    int            `json:"sort_order"    gorm:"not null;default:0;index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"             gorm:"index"`
}

// TableName returns the database table name for PromotionPlan.
func (PromotionPlan) TableName() string { return "promotion_plans" }

// AdPromotion is the authoritative record of a purchased promotion. AdID is
// nil while the promotion is pre-paid but not yet attached to an ad; PlanID
// is nil for ad-hoc promotions bought outside the catalog. TransactionID
// links the debit that paid for it, proving ledger provenance.
//
// Lifecycle: purchased -> attached (AdID set, mirror fields written on the
// ad) -> expired once ExpiresAt passes. There is no sweeper; "active" is
// always computed against ExpiresAt at read time.
type AdPromotion struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	AccountID     string    `json:"account_id"     gorm:"type:char(36);not null;index"`
	AdID          *string   `json:"ad_id,omitempty"   gorm:"type:char(36);index"`
	PlanID        *string   `json:"plan_id,omitempty" gorm:"type:char(36)"`
	Position      string    `json:"position"       gorm:"type:varchar(16);not null;check:position IN ('rank1','top10')"`
	StartsAt      time.Time `json:"starts_at"      gorm:"not null"`
	ExpiresAt     time.Time `json:"expires_at"     gorm:"not null;index"`
	Points        int64     `json:"points"         gorm:"not null"`
	TransactionID string    `json:"transaction_id" gorm:"type:char(36);not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the database table name for AdPromotion.
func (AdPromotion) TableName() string { return "ad_promotions" }

// ActiveAt reports whether the promotion is live at instant now.
func (p *AdPromotion) ActiveAt(now time.Time) bool {
	return now.Before(p.ExpiresAt)
}
