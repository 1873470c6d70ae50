// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the points
// ledger (PointTransaction model).
//
// The ledger is append-only: no update or delete function exists here on
// purpose, and none should ever be added. Corrections are made by appending
// a compensating entry, never by rewriting history.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-ads-backend/internal/domain"
)

// AppendTransaction inserts a new ledger row recording a signed amount and
// the resulting balance snapshot. It must run inside the same DB transaction
// as the balance update it describes.
//
// On success, it returns the persisted PointTransaction. On failure, it
// returns a DB error.
func AppendTransaction(ctx context.Context, db *gorm.DB, accountID string, amount, points int64, txType, description string) (*domain.PointTransaction, error) {
	t := &domain.PointTransaction{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Amount:      amount,
		Points:      points,
		Type:        txType,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// CountTransactions returns the total number of ledger entries for accountID.
func CountTransactions(ctx context.Context, db *gorm.DB, accountID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.PointTransaction{}).
		Where("account_id = ?", accountID).
		Count(&total).Error
	return total, err
}

// ListTransactionsPage returns a paginated slice of ledger entries for
// accountID, newest first. Use CountTransactions to obtain the total for
// pagination metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListTransactionsPage(ctx context.Context, db *gorm.DB, accountID string, offset, limit int) ([]domain.PointTransaction, error) {
	var out []domain.PointTransaction
	err := db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SumTransactionAmounts returns the sum of all signed amounts for accountID.
// The result must always equal the account's stored balance; the invariant
// is checked in tests and by operators when auditing.
func SumTransactionAmounts(ctx context.Context, db *gorm.DB, accountID string) (int64, error) {
	var row struct {
		Total int64
	}
	err := db.WithContext(ctx).
		Model(&domain.PointTransaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("account_id = ?", accountID).
		Scan(&row).Error
	return row.Total, err
}

// TransactionsStats returns aggregate metadata for an account's ledger: the
// total number of rows and the greatest CreatedAt among them. Used for
// conditional responses (ETag generation) in the HTTP layer.
//
// When the account has no ledger entries, count is 0 and maxCreatedAt is nil.
func TransactionsStats(ctx context.Context, db *gorm.DB, accountID string) (count int64, maxCreatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.PointTransaction{}).Where("account_id = ?", accountID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
