// Package services defines the business logic for points, promotions, and
// verification. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer. Insufficient points and expired codes are
// routine business outcomes, not exceptional conditions; handlers must map
// them to distinguishable, user-actionable messages.
package services

import "errors"

// Points and ledger errors.
var (
	// ErrAccountNotFound indicates that the target account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientBalance is returned when an admin removal would drive
	// the account's balance below zero. No state is mutated in that case.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientPoints is returned when a purchase costs more than the
	// account's current balance. No debit and no ledger entry are created.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrInvalidAmount is returned for a zero adjustment or non-positive
	// purchase parameters, rejected before any state change.
	ErrInvalidAmount = errors.New("amount must be non-zero")
)

// Promotion errors.
var (
	// ErrPlanNotFound indicates the requested promotion plan does not exist
	// or is no longer purchasable.
	ErrPlanNotFound = errors.New("promotion plan not found")

	// ErrPromotionNotFound indicates the requested promotion does not exist.
	ErrPromotionNotFound = errors.New("promotion not found")

	// ErrAdNotFound indicates the target ad does not exist.
	ErrAdNotFound = errors.New("ad not found")

	// ErrForbidden is returned when the requesting account does not own the
	// target ad.
	ErrForbidden = errors.New("not the owner of this ad")

	// ErrNotOwner is returned when the requesting account does not own the
	// promotion it is trying to attach.
	ErrNotOwner = errors.New("not the owner of this promotion")

	// ErrVerificationRequired is returned when a purchase is attempted
	// before the account's mobile number has been verified.
	ErrVerificationRequired = errors.New("mobile verification required")

	// ErrInvalidPosition is returned for a position tier outside
	// {rank1, top10}.
	ErrInvalidPosition = errors.New("position must be rank1 or top10")

	// ErrPromotionExpired is returned when attaching a pre-paid promotion
	// whose expiry has already passed.
	ErrPromotionExpired = errors.New("promotion already expired")

	// ErrPromotionAttached is returned when attaching a promotion that is
	// already bound to an ad.
	ErrPromotionAttached = errors.New("promotion already attached to an ad")

	// ErrPromotionActive is returned when clearing an ad's promotion fields
	// while the promotion window is still open.
	ErrPromotionActive = errors.New("promotion still active")
)

// Verification errors.
var (
	// ErrInvalidPhone is returned for a mobile number that fails the
	// region format rule (10 digits starting with 09).
	ErrInvalidPhone = errors.New("invalid mobile number")

	// ErrNoChallenge is returned when verifying a subject that has no
	// outstanding code. Also the result of re-verifying a consumed code.
	ErrNoChallenge = errors.New("no verification code outstanding")

	// ErrCodeExpired is returned when the stored code's validity window has
	// passed. The stale challenge is deleted so a fresh issue starts clean.
	ErrCodeExpired = errors.New("verification code expired")

	// ErrCodeMismatch is returned when the supplied code differs from the
	// stored one. The challenge is kept, allowing retry until expiry.
	ErrCodeMismatch = errors.New("verification code does not match")

	// ErrInvalidToken is returned when completing a password reset with an
	// unknown, mismatched, consumed, or expired token.
	ErrInvalidToken = errors.New("invalid or expired reset token")

	// ErrWeakPassword is returned when the replacement password is shorter
	// than the minimum length.
	ErrWeakPassword = errors.New("password too short")
)
