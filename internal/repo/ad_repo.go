// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Ad model.
//
// Only the slice of the ad record the points engine needs is exposed here:
// ownership lookups, the verified flag, and the promotion mirror fields.
// General ad CRUD lives elsewhere.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-ads-backend/internal/domain"
)

// GetAd fetches an ad by ID. Returns ErrNotFound when it does not exist.
// Ownership is checked by the caller so that "missing" and "not yours" can
// be reported as distinct failures.
func GetAd(ctx context.Context, db *gorm.DB, id string) (*domain.Ad, error) {
	var a domain.Ad
	if err := db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListVerifiedAds returns all verified ads, the population the public
// listing ranks. Ordering is left to the ranking policy.
func ListVerifiedAds(ctx context.Context, db *gorm.DB) ([]domain.Ad, error) {
	var out []domain.Ad
	err := db.WithContext(ctx).
		Where("verified = ?", true).
		Find(&out).Error
	return out, err
}

// ListUnverifiedAds returns the IDs of the account's ads that have not been
// verified yet. Used by the mobile-verification cascade.
func ListUnverifiedAds(ctx context.Context, db *gorm.DB, accountID string) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&domain.Ad{}).
		Where("account_id = ? AND verified = ?", accountID, false).
		Pluck("id", &ids).Error
	return ids, err
}

// SetAdVerified marks a single ad as verified.
// Returns ErrNotFound if no row was affected.
func SetAdVerified(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.Ad{}).
		Where("id = ?", id).
		Update("verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetAdPromotionMirror writes the promotion mirror fields onto the ad row.
// This is the only write path for the mirror; it is called exclusively by
// the promotion service so the mirror cannot drift from the authoritative
// AdPromotion record.
// Returns ErrNotFound if no row was affected.
func SetAdPromotionMirror(ctx context.Context, db *gorm.DB, id, promotionID, position string, until time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Ad{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"promotion_id":   promotionID,
			"position":       position,
			"promoted_until": until,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearAdPromotionMirror removes the mirror fields, e.g. when an operator
// explicitly clears a long-expired promotion from an ad.
// Returns ErrNotFound if no row was affected.
func ClearAdPromotionMirror(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.Ad{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"promotion_id":   nil,
			"position":       nil,
			"promoted_until": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
