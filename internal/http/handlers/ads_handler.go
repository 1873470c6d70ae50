// Ad listing HTTP handler.
//
// This file exposes the public listing endpoint:
//   - GET /ads  (verified ads in promotion-ranked order)
//
// The order is recomputed per request, so a promotion expiring between two
// calls demotes the ad without any background job.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-ads-backend/internal/domain"
)

// ListAdsResponse wraps the ranked public listing.
type ListAdsResponse struct {
	Ads []domain.Ad `json:"ads"`
}

// ListAds godoc
// @ID          listAds
// @Summary     List ads in promotion order
// @Description Returns verified ads ranked by promotion tier: live rank1 promotions first, live top10 next, everything else newest first.
// @Tags        Ads
// @Produce     json
//
// @Success     200  {object}  handlers.ListAdsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /ads [get]
func (h *Handlers) ListAds(c *gin.Context) {
	ads, err := h.listingSvc.Listing(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if ads == nil {
		ads = []domain.Ad{}
	}
	ok(c, http.StatusOK, ListAdsResponse{Ads: ads})
}
