// Package ranking implements the listing order policy for ads. It is a
// pure function over the promotion mirror fields and an explicit clock,
// with no storage access, so callers can rank any slice of ads they have
// already loaded.
//
// Order, most prominent first:
//  1. Ads with a live rank1 promotion.
//  2. Ads with a live top10 promotion.
//  3. Everything else, including ads whose promotion has expired.
//
// Within each band, newer ads come first. Expiry is evaluated against the
// supplied instant on every call; an expired promotion demotes the ad
// immediately, with no sweeper involved.
package ranking

import (
	"sort"
	"time"

	"github.com/tbourn/go-ads-backend/internal/domain"
)

// Band values, smaller sorts first.
const (
	bandRank1 = iota
	bandTop10
	bandOrganic
)

// band computes the ad's prominence band at instant now.
func band(ad *domain.Ad, now time.Time) int {
	if !ad.PromotedAt(now) {
		return bandOrganic
	}
	if ad.Position != nil && *ad.Position == domain.PositionRank1 {
		return bandRank1
	}
	return bandTop10
}

// Rank returns a copy of ads sorted into listing order at instant now; the
// input slice is left untouched. The sort is stable, so ads that tie on
// band and creation time keep their incoming relative order.
func Rank(ads []domain.Ad, now time.Time) []domain.Ad {
	out := make([]domain.Ad, len(ads))
	copy(out, ads)
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := band(&out[i], now), band(&out[j], now)
		if bi != bj {
			return bi < bj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
