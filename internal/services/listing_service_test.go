package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-ads-backend/internal/domain"
)

type fakeListingRepo struct {
	ads []domain.Ad
	err error
}

func (f *fakeListingRepo) ListVerifiedAds(ctx context.Context, db *gorm.DB) ([]domain.Ad, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ads, nil
}

func TestListingOrdersByPromotionTier(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Hour)

	rank1 := domain.PositionRank1
	top10 := domain.PositionTop10
	pid := "promo-x"

	repo := &fakeListingRepo{ads: []domain.Ad{
		{ID: "organic-new", Verified: true, CreatedAt: now.Add(-time.Minute)},
		{ID: "stale", Verified: true, PromotionID: &pid, Position: &rank1, PromotedUntil: &past, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "top", Verified: true, PromotionID: &pid, Position: &top10, PromotedUntil: &future, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "first", Verified: true, PromotionID: &pid, Position: &rank1, PromotedUntil: &future, CreatedAt: now.Add(-4 * time.Hour)},
	}}

	svc := NewListingService(nil, repo)
	svc.Now = func() time.Time { return now }

	got, err := svc.Listing(context.Background())
	if err != nil {
		t.Fatalf("Listing: %v", err)
	}
	want := []string{"first", "top", "organic-new", "stale"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d = %s, want %s (full: %+v)", i, got[i].ID, id, got)
		}
	}
}

func TestListingExpiryReflectsClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(time.Hour)
	rank1 := domain.PositionRank1
	pid := "promo-x"

	repo := &fakeListingRepo{ads: []domain.Ad{
		{ID: "organic", Verified: true, CreatedAt: now},
		{ID: "promoted", Verified: true, PromotionID: &pid, Position: &rank1, PromotedUntil: &until, CreatedAt: now.Add(-time.Hour)},
	}}

	svc := NewListingService(nil, repo)
	svc.Now = func() time.Time { return now }

	got, _ := svc.Listing(context.Background())
	if got[0].ID != "promoted" {
		t.Fatalf("live promotion should lead: %+v", got)
	}

	// push the clock past the window; the same data demotes the ad
	svc.Now = func() time.Time { return until.Add(time.Second) }
	got, _ = svc.Listing(context.Background())
	if got[0].ID != "organic" {
		t.Fatalf("expired promotion should trail: %+v", got)
	}
}

func TestListingPropagatesRepoError(t *testing.T) {
	repo := &fakeListingRepo{err: errors.New("db down")}
	svc := NewListingService(nil, repo)
	if _, err := svc.Listing(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
