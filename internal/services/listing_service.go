// Package services – ListingService
//
// ListingService produces the public ad listing: verified ads in promotion
// order, evaluated against the clock on every call so expired promotions
// demote immediately.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-ads-backend/internal/domain"
	"github.com/tbourn/go-ads-backend/internal/ranking"
)

// ListingRepo defines the repository contract required by ListingService.
type ListingRepo interface {
	ListVerifiedAds(ctx context.Context, db *gorm.DB) ([]domain.Ad, error)
}

// ListingService loads verified ads and orders them by the ranking policy.
type ListingService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the listing repository used by this service.
	Repo ListingRepo
	// Now is the clock used for promotion liveness; defaults to UTC now.
	Now func() time.Time
}

// NewListingService constructs a ListingService with a UTC wall clock.
func NewListingService(db *gorm.DB, r ListingRepo) *ListingService {
	return &ListingService{DB: db, Repo: r, Now: func() time.Time { return time.Now().UTC() }}
}

// Listing returns all verified ads in listing order: live rank1 first,
// then live top10, then everything else newest first.
func (s *ListingService) Listing(ctx context.Context) ([]domain.Ad, error) {
	ads, err := s.Repo.ListVerifiedAds(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}
	return ranking.Rank(ads, now), nil
}
