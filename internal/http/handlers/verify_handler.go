// Mobile verification HTTP handlers.
//
// This file exposes REST endpoints for the mobile verification flow:
//   - POST /verify/mobile/request  (issue a code over SMS)
//   - POST /verify/mobile/confirm  (confirm the code)
//
// Confirming verifies the account and retroactively verifies its ads.
// In development deployments the issued code may be echoed in the response;
// production keeps it on the SMS channel only.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-ads-backend/internal/services"
)

//
// DTOs
//

// RequestMobileCodeRequest is the JSON payload for issuing a mobile code.
type RequestMobileCodeRequest struct {
	// Phone is the mobile number to verify: 10 digits starting with 09.
	Phone string `json:"phone" binding:"required" example:"0912345678"`
}

// RequestMobileCodeResponse acknowledges the issue. Code is present only
// when code disclosure is enabled (development).
type RequestMobileCodeResponse struct {
	Status string `json:"status" example:"sent"`
	Code   string `json:"code,omitempty" example:"123456"`
}

// ConfirmMobileCodeRequest is the JSON payload for confirming a code.
type ConfirmMobileCodeRequest struct {
	Code string `json:"code" binding:"required,len=6" example:"123456"`
}

//
// Handlers
//

// RequestMobileCode godoc
// @ID          requestMobileCode
// @Summary     Request a mobile verification code
// @Description Issues a 6-digit code for the caller's mobile number and sends it over SMS. The code is valid for 10 minutes; requesting again replaces it.
// @Tags        Verification
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Account ID (demo header)"  example(user123)
// @Param       body       body    handlers.RequestMobileCodeRequest  true  "Phone payload"
//
// @Success     200  {object}  handlers.RequestMobileCodeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid phone"
// @Failure     404  {object}  handlers.ErrorResponse  "Account not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /verify/mobile/request [post]
func (h *Handlers) RequestMobileCode(c *gin.Context) {
	var req RequestMobileCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	code, err := h.verifySvc.IssueMobileCode(c.Request.Context(), userID(c), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPhone):
			fail(c, http.StatusBadRequest, ErrCodeInvalidPhone, "mobile number must be 10 digits starting with 09")
		case errors.Is(err, services.ErrAccountNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "account not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, RequestMobileCodeResponse{Status: "sent", Code: code})
}

// ConfirmMobileCode godoc
// @ID          confirmMobileCode
// @Summary     Confirm a mobile verification code
// @Description Verifies the caller's outstanding code. On success the account's mobile number is marked verified and its unverified ads are verified retroactively.
// @Tags        Verification
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Account ID (demo header)"  example(user123)
// @Param       body       body    handlers.ConfirmMobileCodeRequest  true  "Code payload"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "No challenge / expired / mismatch"
// @Failure     404  {object}  handlers.ErrorResponse  "Account not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /verify/mobile/confirm [post]
func (h *Handlers) ConfirmMobileCode(c *gin.Context) {
	var req ConfirmMobileCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.verifySvc.ConfirmMobileCode(c.Request.Context(), userID(c), req.Code); err != nil {
		switch {
		case errors.Is(err, services.ErrNoChallenge):
			fail(c, http.StatusBadRequest, ErrCodeNoChallenge, "no verification code outstanding; request one first")
		case errors.Is(err, services.ErrCodeExpired):
			fail(c, http.StatusBadRequest, ErrCodeCodeExpired, "verification code expired; request a new one")
		case errors.Is(err, services.ErrCodeMismatch):
			fail(c, http.StatusBadRequest, ErrCodeCodeMismatch, "verification code does not match")
		case errors.Is(err, services.ErrAccountNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "account not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}
