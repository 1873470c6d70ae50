// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// PromotionPlan catalog.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-ads-backend/internal/domain"
)

// CreatePlan inserts a new catalog entry. The plan ID is a randomly
// generated UUID (string), and CreatedAt is set to UTC.
func CreatePlan(ctx context.Context, db *gorm.DB, p *domain.PromotionPlan) (*domain.PromotionPlan, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetPlan fetches a plan by ID. Returns ErrNotFound when it does not exist.
func GetPlan(ctx context.Context, db *gorm.DB, id string) (*domain.PromotionPlan, error) {
	var p domain.PromotionPlan
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActivePlans returns the purchasable catalog: active plans ordered by
// sort_order ascending. Inactive plans are excluded.
func ListActivePlans(ctx context.Context, db *gorm.DB) ([]domain.PromotionPlan, error) {
	var out []domain.PromotionPlan
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order asc").
		Find(&out).Error
	return out, err
}

// CountPlans returns the total number of plans, active or not. Used to
// decide whether the catalog needs seeding at boot.
func CountPlans(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.PromotionPlan{}).Count(&total).Error
	return total, err
}

// UpdatePlan applies the given column updates to a plan. Historical
// promotions are unaffected: purchases copy plan terms at purchase time.
// Returns ErrNotFound if no row was affected.
func UpdatePlan(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.PromotionPlan{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePlan soft-deletes a plan. Promotions already sold keep their copied
// terms and their PlanID reference.
// Returns ErrNotFound if no row was affected.
func DeletePlan(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.PromotionPlan{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
