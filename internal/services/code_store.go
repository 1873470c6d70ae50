// Package services – one-time code and reset token stores
//
// Verification challenges are short-lived, low-value secrets, so they live
// in process memory rather than the database: a restart invalidates all
// outstanding codes, which is acceptable and simpler than persisting and
// sweeping them. Both stores take an injected clock so expiry is testable
// without sleeping.
package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// challenge is one outstanding verification code for a subject.
type challenge struct {
	code      string
	payload   string
	expiresAt time.Time
}

// CodeMachine issues and verifies numeric one-time codes keyed by an
// arbitrary subject (an account ID here). At most one code is outstanding
// per subject; issuing again replaces the previous code and restarts the
// validity window.
//
// Verification semantics:
//   - unknown subject: ErrNoChallenge
//   - expired code: ErrCodeExpired, and the challenge is deleted so the
//     next issue starts clean
//   - wrong code: ErrCodeMismatch, challenge kept for retry
//   - match: challenge consumed, payload returned
//
// Safe for concurrent use.
type CodeMachine struct {
	mu     sync.Mutex
	codes  map[string]challenge
	length int
	window time.Duration
	now    func() time.Time
}

// NewCodeMachine constructs a CodeMachine issuing codes of the given digit
// length that stay valid for window.
func NewCodeMachine(length int, window time.Duration) *CodeMachine {
	return &CodeMachine{
		codes:  make(map[string]challenge),
		length: length,
		window: window,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Issue generates a fresh code for subject, storing payload alongside it.
// The payload is handed back on successful verification; callers use it to
// carry the pending phone number or email through the flow.
func (m *CodeMachine) Issue(subject, payload string) (string, error) {
	code, err := randomDigits(m.length)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.codes[subject] = challenge{code: code, payload: payload, expiresAt: m.now().Add(m.window)}
	m.mu.Unlock()
	return code, nil
}

// Verify checks code against the subject's outstanding challenge and, on
// success, consumes it and returns the stored payload.
func (m *CodeMachine) Verify(subject, code string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch, ok := m.codes[subject]
	if !ok {
		return "", ErrNoChallenge
	}
	if !m.now().Before(ch.expiresAt) {
		delete(m.codes, subject)
		return "", ErrCodeExpired
	}
	if ch.code != code {
		return "", ErrCodeMismatch
	}
	delete(m.codes, subject)
	return ch.payload, nil
}

// randomDigits returns n cryptographically random decimal digits.
func randomDigits(n int) (string, error) {
	max := big.NewInt(10)
	buf := make([]byte, n)
	for i := range buf {
		d, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		buf[i] = byte('0' + d.Int64())
	}
	return string(buf), nil
}

// resetToken is one single-use password reset grant.
type resetToken struct {
	accountID string
	expiresAt time.Time
}

// TokenStore holds single-use reset tokens minted after a reset code is
// verified. Tokens are opaque 256-bit random hex strings; consuming one
// removes it, so it cannot authorize two resets.
//
// Safe for concurrent use.
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]resetToken
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenStore constructs a TokenStore whose tokens stay valid for ttl.
func NewTokenStore(ttl time.Duration) *TokenStore {
	return &TokenStore{
		tokens: make(map[string]resetToken),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Mint creates a fresh token bound to accountID.
func (s *TokenStore) Mint(accountID string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	tok := hex.EncodeToString(raw)
	s.mu.Lock()
	s.tokens[tok] = resetToken{accountID: accountID, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return tok, nil
}

// Consume validates and removes the token, returning the account it was
// bound to. Unknown and expired tokens both fail with ErrInvalidToken.
func (s *TokenStore) Consume(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[token]
	if !ok {
		return "", ErrInvalidToken
	}
	delete(s.tokens, token)
	if !s.now().Before(t.expiresAt) {
		return "", ErrInvalidToken
	}
	return t.accountID, nil
}
