// Package services – VerificationService
//
// This file implements the two code-based flows built on the CodeMachine:
// mobile number verification (which unlocks promotion purchases and
// retroactively verifies the account's ads) and password reset (code by
// email, then a single-use token, then the credential swap).
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tbourn/go-ads-backend/internal/domain"
	"github.com/tbourn/go-ads-backend/internal/repo"
)

// phoneRE is the regional mobile format rule: exactly 10 digits starting
// with 09.
var phoneRE = regexp.MustCompile(`^09\d{8}$`)

// MinPasswordLen is the shortest replacement password accepted by
// CompleteReset.
const MinPasswordLen = 8

// MessageSender delivers a verification message to a recipient address
// (a phone number or an email, depending on the channel). The boolean
// reports whether delivery was handed off; implementations log their own
// failures.
type MessageSender interface {
	Send(ctx context.Context, to, message string) (bool, error)
}

// VerificationRepo defines the repository contract required by
// VerificationService.
type VerificationRepo interface {
	GetAccount(ctx context.Context, db *gorm.DB, id string) (*domain.Account, error)
	GetAccountByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Account, error)
	SetMobileVerified(ctx context.Context, db *gorm.DB, id, phone string) error
	SetPasswordHash(ctx context.Context, db *gorm.DB, id, hash string) error
	ListUnverifiedAds(ctx context.Context, db *gorm.DB, accountID string) ([]string, error)
	SetAdVerified(ctx context.Context, db *gorm.DB, id string) error
}

// VerificationService runs the mobile-verification and password-reset
// flows. Codes live in the injected CodeMachines; reset tokens in the
// TokenStore. Delivery goes through the SMS and Mail senders, which are
// stubs in development.
type VerificationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the verification repository used by this service.
	Repo VerificationRepo

	// MobileCodes issues codes for mobile verification.
	MobileCodes *CodeMachine
	// ResetCodes issues codes for password reset.
	ResetCodes *CodeMachine
	// ResetTokens holds single-use tokens minted after a verified reset code.
	ResetTokens *TokenStore

	// SMS delivers mobile verification codes.
	SMS MessageSender
	// Mail delivers password reset codes.
	Mail MessageSender

	// DiscloseCodes, when true, returns issued codes in API responses.
	// Development convenience only; must be off in production.
	DiscloseCodes bool
}

// NewVerificationService wires a VerificationService with the standard
// windows: 10 minutes for mobile codes, 15 for reset codes and tokens.
func NewVerificationService(db *gorm.DB, r VerificationRepo, sms, mail MessageSender) *VerificationService {
	return &VerificationService{
		DB:          db,
		Repo:        r,
		MobileCodes: NewCodeMachine(6, 10*time.Minute),
		ResetCodes:  NewCodeMachine(6, 15*time.Minute),
		ResetTokens: NewTokenStore(15 * time.Minute),
		SMS:         sms,
		Mail:        mail,
	}
}

// IssueMobileCode validates the phone format, issues a verification code
// bound to the account, and sends it over SMS. The returned code is empty
// unless DiscloseCodes is on.
//
// Issuing again before the previous code is used replaces it; only the
// latest code verifies.
func (s *VerificationService) IssueMobileCode(ctx context.Context, accountID, phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if !phoneRE.MatchString(phone) {
		return "", ErrInvalidPhone
	}
	if _, err := s.Repo.GetAccount(ctx, s.DB, accountID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrAccountNotFound
		}
		return "", err
	}

	code, err := s.MobileCodes.Issue(accountID, phone)
	if err != nil {
		return "", err
	}
	if ok, err := s.SMS.Send(ctx, phone, "Your verification code is "+code); err != nil || !ok {
		log.Warn().Err(err).Str("account_id", accountID).Msg("sms delivery failed")
	}
	if s.DiscloseCodes {
		return code, nil
	}
	return "", nil
}

// ConfirmMobileCode verifies the code, marks the account's mobile number
// verified, and retroactively flips the verified flag on the account's
// unverified ads. The ad cascade is best effort; a partial failure leaves
// the account verified and is logged, not rolled back.
func (s *VerificationService) ConfirmMobileCode(ctx context.Context, accountID, code string) error {
	phone, err := s.MobileCodes.Verify(accountID, code)
	if err != nil {
		return err
	}
	if err := s.Repo.SetMobileVerified(ctx, s.DB, accountID, phone); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	ids, err := s.Repo.ListUnverifiedAds(ctx, s.DB, accountID)
	if err != nil {
		log.Warn().Err(err).Str("account_id", accountID).Msg("listing unverified ads failed")
		return nil
	}
	for _, id := range ids {
		if err := s.Repo.SetAdVerified(ctx, s.DB, id); err != nil {
			log.Warn().Err(err).Str("ad_id", id).Msg("ad verification cascade failed")
		}
	}
	return nil
}

// RequestPasswordReset issues a reset code for the account registered
// under email and mails it. To avoid disclosing which emails exist, an
// unknown address reports success without issuing anything; the returned
// code is empty unless DiscloseCodes is on and the account exists.
func (s *VerificationService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	acc, err := s.Repo.GetAccountByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	code, err := s.ResetCodes.Issue(acc.ID, email)
	if err != nil {
		return "", err
	}
	if ok, err := s.Mail.Send(ctx, email, "Your password reset code is "+code); err != nil || !ok {
		log.Warn().Err(err).Str("account_id", acc.ID).Msg("reset mail delivery failed")
	}
	if s.DiscloseCodes {
		return code, nil
	}
	return "", nil
}

// VerifyResetCode checks the emailed code and, on success, mints a
// single-use token the client presents to CompleteReset.
func (s *VerificationService) VerifyResetCode(ctx context.Context, email, code string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	acc, err := s.Repo.GetAccountByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Indistinguishable from a wrong code for an existing account.
			return "", ErrNoChallenge
		}
		return "", err
	}
	if _, err := s.ResetCodes.Verify(acc.ID, code); err != nil {
		return "", err
	}
	return s.ResetTokens.Mint(acc.ID)
}

// CompleteReset consumes the token and replaces the account's password
// hash. The token is spent even when the new password is rejected as too
// short, forcing the flow to restart rather than allowing token reuse.
func (s *VerificationService) CompleteReset(ctx context.Context, token, newPassword string) error {
	accountID, err := s.ResetTokens.Consume(token)
	if err != nil {
		return err
	}
	if len(newPassword) < MinPasswordLen {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.Repo.SetPasswordHash(ctx, s.DB, accountID, string(hash)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}
