// Package services – PointsService
//
// This file implements the PointsService, which owns the account balance
// and the append-only points ledger as one unit. Every balance mutation
// appends exactly one ledger entry inside the same DB transaction, under
// the account's mutex, so the stored balance always equals the sum of the
// ledger's signed amounts.
//
// Service-level errors (e.g., ErrInsufficientBalance) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-ads-backend/internal/domain"
	"github.com/tbourn/go-ads-backend/internal/repo"
)

// PointsRepo defines the repository contract required by PointsService.
// Implementations are responsible for persistence of accounts and ledger
// rows.
type PointsRepo interface {
	// GetAccount fetches an account by ID.
	GetAccount(ctx context.Context, db *gorm.DB, id string) (*domain.Account, error)

	// UpdateAccountPoints sets the account's stored balance.
	UpdateAccountPoints(ctx context.Context, db *gorm.DB, id string, points int64) error

	// AppendTransaction inserts one immutable ledger row.
	AppendTransaction(ctx context.Context, db *gorm.DB, accountID string, amount, points int64, txType, description string) (*domain.PointTransaction, error)

	// CountTransactions returns the ledger size for pagination.
	CountTransactions(ctx context.Context, db *gorm.DB, accountID string) (int64, error)

	// ListTransactionsPage returns a page of ledger rows, newest first.
	ListTransactionsPage(ctx context.Context, db *gorm.DB, accountID string, offset, limit int) ([]domain.PointTransaction, error)
}

// PointsService provides balance reads, admin adjustments, and ledger
// listings. Purchases debit through PromotionService, which shares the
// same lock table so all balance writes for an account serialize.
type PointsService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the points repository used by this service.
	Repo PointsRepo
	// Locks serializes balance mutations per account.
	Locks *AccountLocks
}

// NewPointsService constructs a PointsService sharing the given lock table.
func NewPointsService(db *gorm.DB, r PointsRepo, locks *AccountLocks) *PointsService {
	return &PointsService{DB: db, Repo: r, Locks: locks}
}

// Balance returns the account's current point balance. An account with no
// recorded balance (or no row at all) reads as 0.
func (s *PointsService) Balance(ctx context.Context, accountID string) (int64, error) {
	acc, err := s.Repo.GetAccount(ctx, s.DB, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return acc.Points, nil
}

// Adjust applies a signed delta to the account's balance and appends the
// matching ledger entry. Used by the admin console to credit manually
// reconciled purchases or claw points back.
//
// Semantics:
//   - delta must be non-zero; otherwise ErrInvalidAmount.
//   - The account must exist; otherwise ErrAccountNotFound.
//   - A negative delta that would drive the balance below zero fails with
//     ErrInsufficientBalance and mutates nothing.
//
// Concurrency & atomicity:
//   - The read-check-write-append sequence runs under the account's mutex
//     and inside one DB transaction, so concurrent adjustments and
//     purchases cannot interleave into a lost update or a negative balance.
func (s *PointsService) Adjust(ctx context.Context, accountID string, delta int64, description string) (int64, *domain.PointTransaction, error) {
	if delta == 0 {
		return 0, nil, ErrInvalidAmount
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = "manual adjustment"
	}

	s.Locks.Lock(accountID)
	defer s.Locks.Unlock(accountID)

	var (
		newBalance int64
		entry      *domain.PointTransaction
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acc, err := s.Repo.GetAccount(ctx, tx, accountID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		newBalance = acc.Points + delta
		if newBalance < 0 {
			return ErrInsufficientBalance
		}

		if err := s.Repo.UpdateAccountPoints(ctx, tx, accountID, newBalance); err != nil {
			return err
		}

		txType := domain.TxCredit
		if delta < 0 {
			txType = domain.TxDebit
		}
		entry, err = s.Repo.AppendTransaction(ctx, tx, accountID, delta, newBalance, txType, description)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return newBalance, entry, nil
}

// Transactions returns a page of the account's ledger, newest first, and
// the total entry count. It applies defaults for invalid page/pageSize.
func (s *PointsService) Transactions(ctx context.Context, accountID string, page, pageSize int) ([]domain.PointTransaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountTransactions(ctx, s.DB, accountID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.PointTransaction{}, 0, nil
	}

	items, err := s.Repo.ListTransactionsPage(ctx, s.DB, accountID, offset, pageSize)
	return items, total, err
}
