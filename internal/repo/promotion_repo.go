// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// AdPromotion model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-ads-backend/internal/domain"
)

// CreatePromotion inserts a new AdPromotion row. The promotion ID is a
// randomly generated UUID (string); the remaining fields come from the
// caller, who computes the expiry and links the paying transaction.
func CreatePromotion(ctx context.Context, db *gorm.DB, p *domain.AdPromotion) (*domain.AdPromotion, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetPromotion fetches a promotion by ID. Returns ErrNotFound when it does
// not exist. Ownership is checked by the caller.
func GetPromotion(ctx context.Context, db *gorm.DB, id string) (*domain.AdPromotion, error) {
	var p domain.AdPromotion
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// AttachPromotion binds a pre-paid promotion to an ad. Only promotions that
// are not yet attached can be bound, enforced by the ad_id IS NULL guard.
// Returns ErrNotFound if no row was affected (missing or already attached).
func AttachPromotion(ctx context.Context, db *gorm.DB, id, adID string) error {
	res := db.WithContext(ctx).
		Model(&domain.AdPromotion{}).
		Where("id = ? AND ad_id IS NULL", id).
		Update("ad_id", adID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListPromotions returns all promotions purchased by accountID, newest
// first. Includes attached, pre-paid, and expired promotions; callers
// evaluate liveness against the current time.
func ListPromotions(ctx context.Context, db *gorm.DB, accountID string) ([]domain.AdPromotion, error) {
	var out []domain.AdPromotion
	err := db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}
