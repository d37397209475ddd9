// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lib/pq"

	"github.com/danielhkuo/crowdlabel/auth"
	"github.com/danielhkuo/crowdlabel/engine"
	"github.com/danielhkuo/crowdlabel/middleware"
	"github.com/danielhkuo/crowdlabel/models"
)

// isUniqueViolationErr reports whether an insert hit a UNIQUE constraint
func isUniqueViolationErr(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// CreateSession opens a new login session for an account and returns
// its token.
func CreateSession(db *sql.DB, accountID string) (string, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", err
	}
	_, err = db.Exec(`
		INSERT INTO session (token, account_id, created_at)
		VALUES ($1, $2, $3)
	`, token, accountID, time.Now())
	if err != nil {
		return "", err
	}
	return token, nil
}

// DeleteSession removes a session token. Deleting an unknown token is
// not an error.
func DeleteSession(db *sql.DB, token string) error {
	_, err := db.Exec(`DELETE FROM session WHERE token = $1`, token)
	return err
}

// AccountFromRequest resolves the X-Session-Token header to an
// account. Returns nil (no error) when the header is missing or the
// token is unknown.
func AccountFromRequest(db *sql.DB, r *http.Request) (*models.Account, error) {
	token := r.Header.Get("X-Session-Token")
	if token == "" {
		return nil, nil
	}

	var a models.Account
	err := db.QueryRow(`
		SELECT a.id, a.username, a.role, a.status, a.wallet_cents, a.created_at
		FROM session s
		JOIN account a ON a.id = s.account_id
		WHERE s.token = $1
	`, token).Scan(&a.ID, &a.Username, &a.Role, &a.Status, &a.Wallet, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// requireAccount authenticates the request, writing the error response
// itself when authentication fails.
func requireAccount(db *sql.DB, w http.ResponseWriter, r *http.Request) *models.Account {
	account, err := AccountFromRequest(db, r)
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return nil
	}
	if account == nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "X-Session-Token header required")
		return nil
	}
	return account
}

// requireAdmin is requireAccount plus a role check.
func requireAdmin(db *sql.DB, w http.ResponseWriter, r *http.Request) *models.Account {
	account := requireAccount(db, w, r)
	if account == nil {
		return nil
	}
	if account.Role != models.RoleAdmin {
		middleware.ErrorResponse(w, http.StatusForbidden, "", "Admin access required")
		return nil
	}
	return account
}

// writeEngineError maps an engine outcome to an HTTP response. Codes
// are stable; unknown errors become an opaque 500.
func writeEngineError(w http.ResponseWriter, err error) {
	var e *engine.Error
	if !errors.As(err, &e) {
		slog.Error("unexpected engine error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	var status int
	switch e.Code {
	case engine.CodeNotFound:
		status = http.StatusNotFound
	case engine.CodeTaskClosed, engine.CodeDuplicateSubmission:
		status = http.StatusConflict
	case engine.CodeInvalidLabel, engine.CodeInvalidAmount:
		status = http.StatusBadRequest
	case engine.CodeStorageConflict:
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}
	middleware.ErrorResponse(w, status, e.Code, e.Message)
}
