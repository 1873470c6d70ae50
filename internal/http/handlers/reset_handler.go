// Password reset HTTP handlers.
//
// This file exposes REST endpoints for the three-step password reset flow:
//   - POST /password/reset/request   (mail a code to the account's email)
//   - POST /password/reset/verify    (exchange the code for a token)
//   - POST /password/reset/complete  (consume the token, set the password)
//
// The request step never discloses whether an email is registered.
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

// RequestResetRequest is the JSON payload for starting a password reset.
type RequestResetRequest struct {
	Email string `json:"email" binding:"required,email" example:"user@example.com"`
}

// RequestResetResponse acknowledges the request. Code is present only when
// code disclosure is enabled (development) and the email is registered.
type RequestResetResponse struct {
	Status string `json:"status" example:"sent"`
	Code   string `json:"code,omitempty" example:"123456"`
}

// VerifyResetRequest is the JSON payload for exchanging a reset code.
type VerifyResetRequest struct {
	Email string `json:"email" binding:"required,email" example:"user@example.com"`
	Code  string `json:"code" binding:"required,len=6" example:"123456"`
}

// VerifyResetResponse carries the single-use token for the final step.
type VerifyResetResponse struct {
	Token string `json:"token" example:"4f3c2a..."`
}

// CompleteResetRequest is the JSON payload for the final reset step.
type CompleteResetRequest struct {
	Token    string `json:"token" binding:"required" example:"4f3c2a..."`
	Password string `json:"password" binding:"required" example:"correct horse battery"`
}

//
// Handlers
//

// RequestPasswordReset godoc
// @ID          requestPasswordReset
// @Summary     Request a password reset code
// @Description Mails a 6-digit reset code to the given address if an account is registered under it. Always reports success, so the endpoint cannot be used to probe which emails exist.
// @Tags        Password
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RequestResetRequest  true  "Email payload"
//
// @Success     200  {object}  handlers.RequestResetResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /password/reset/request [post]
func (h *Handlers) RequestPasswordReset(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	code, err := h.verifySvc.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, RequestResetResponse{Status: "sent", Code: code})
}

// VerifyPasswordReset godoc
// @ID          verifyPasswordReset
// @Summary     Verify a password reset code
// @Description Exchanges a valid emailed code for a single-use reset token valid for 15 minutes.
// @Tags        Password
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.VerifyResetRequest  true  "Code payload"
//
// @Success     200  {object}  handlers.VerifyResetResponse
// @Failure     400  {object}  handlers.ErrorResponse  "No challenge / expired / mismatch"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /password/reset/verify [post]
func (h *Handlers) VerifyPasswordReset(c *gin.Context) {
	var req VerifyResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	token, err := h.verifySvc.VerifyResetCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoChallenge):
			fail(c, http.StatusBadRequest, ErrCodeNoChallenge, "no reset code outstanding for this email")
		case errors.Is(err, services.ErrCodeExpired):
			fail(c, http.StatusBadRequest, ErrCodeCodeExpired, "reset code expired; request a new one")
		case errors.Is(err, services.ErrCodeMismatch):
			fail(c, http.StatusBadRequest, ErrCodeCodeMismatch, "reset code does not match")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, VerifyResetResponse{Token: token})
}

// CompletePasswordReset godoc
// @ID          completePasswordReset
// @Summary     Complete a password reset
// @Description Consumes the reset token and replaces the account's password. The token is single use; a rejected password spends it and the flow must restart.
// @Tags        Password
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CompleteResetRequest  true  "Token and new password"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid token / weak password"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /password/reset/complete [post]
func (h *Handlers) CompletePasswordReset(c *gin.Context) {
	var req CompleteResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.verifySvc.CompleteReset(c.Request.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidToken):
			fail(c, http.StatusBadRequest, ErrCodeInvalidToken, "invalid or expired reset token")
		case errors.Is(err, services.ErrWeakPassword):
			fail(c, http.StatusBadRequest, ErrCodeWeakPassword, "password must be at least 8 characters")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}
