// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Engine implements the task-assignment, consensus, and payroll rules
// on top of a PostgreSQL connection.
type Engine struct {
	db *sql.DB
}

func New(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// inTx runs fn inside one transaction. All writes inside fn are
// all-or-nothing: the transaction is rolled back on any error. If the
// store aborts the transaction (serialization failure or deadlock) the
// whole block is re-run once before surfacing ErrStorageConflict.
func (e *Engine) inTx(opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	err := e.runOnce(opts, fn)
	if !isConflict(err) {
		return err
	}
	err = e.runOnce(opts, fn)
	if isConflict(err) {
		return ErrStorageConflict
	}
	return err
}

func (e *Engine) runOnce(opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := e.db.BeginTx(context.Background(), opts)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// isConflict reports whether the store aborted a transaction in a way
// that is safe to retry: serialization failure (40001) or deadlock
// (40P01).
func isConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// isUniqueViolation reports whether an insert hit a UNIQUE constraint
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
