// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package). These codes provide clients with a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, unauthorized, conflict) mirror common HTTP
//     status semantics to aid interoperability.
//   - Domain-specific codes (e.g., insufficient_points, code_expired) carry business
//     outcomes that the status alone cannot convey; clients branch on them to show
//     actionable messages ("buy more points" vs "request a new code").
//   - All error responses must include both an HTTP status and one of these codes.
//
// Example response:
//   {
//     "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//     "code": "verification_required",
//     "message": "verify your mobile number before promoting ads"
//   }

package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeInsufficientPoints   = "insufficient_points"
	ErrCodeInsufficientBalance  = "insufficient_balance"
	ErrCodeVerificationRequired = "verification_required"
	ErrCodeInvalidPosition      = "invalid_position"
	ErrCodePromotionExpired     = "promotion_expired"
	ErrCodePromotionAttached    = "promotion_attached"
	ErrCodePromotionActive      = "promotion_active"
	ErrCodeInvalidPhone         = "invalid_phone"
	ErrCodeNoChallenge          = "no_challenge"
	ErrCodeCodeExpired          = "code_expired"
	ErrCodeCodeMismatch         = "code_mismatch"
	ErrCodeInvalidToken         = "invalid_token"
	ErrCodeWeakPassword         = "weak_password"
	ErrCodeMethodNotAllowed     = "method_not_allowed"
)
