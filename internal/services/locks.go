// Package services – account locking
//
// The read-check-debit-append sequence on an account balance is a critical
// section: two concurrent purchases must not both pass the balance check and
// then both debit. AccountLocks provides per-account mutual exclusion for
// that sequence. One instance is constructed at process start and shared by
// every service that mutates balances.
package services

import "sync"

// AccountLocks hands out one mutex per account key. Locks are created on
// demand and retained for the life of the process; the working set is the
// set of accounts touched since boot, which is small enough for a
// single-process deployment.
//
// This type is safe for concurrent use.
type AccountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAccountLocks constructs an empty lock table.
func NewAccountLocks() *AccountLocks {
	return &AccountLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given account, creating it if absent.
// Callers must pair every Lock with an Unlock for the same key.
func (l *AccountLocks) Lock(accountID string) {
	l.mu.Lock()
	m, ok := l.locks[accountID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[accountID] = m
	}
	l.mu.Unlock()
	m.Lock()
}

// Unlock releases the mutex for the given account. Unlocking an account
// that was never locked is a programming error and panics, same as
// sync.Mutex.
func (l *AccountLocks) Unlock(accountID string) {
	l.mu.Lock()
	m := l.locks[accountID]
	l.mu.Unlock()
	m.Unlock()
}
