// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/crowdlabel/auth"
	"github.com/danielhkuo/crowdlabel/cliparse"
	"github.com/danielhkuo/crowdlabel/middleware"
	"github.com/danielhkuo/crowdlabel/models"
)

type AccountHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAccountHandler(db *sql.DB, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg}
}

// Register handles POST /auth/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if len(req.Username) < 2 || len(req.Username) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "username must be 2-50 characters")
		return
	}
	if len(req.Password) < 8 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "password must be at least 8 characters")
		return
	}

	accountID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate account ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to register")
		return
	}

	passwordHash := auth.HashPassword(req.Password, h.cfg.SessionSalt)

	// New accounts are always annotators; admins are promoted out of band
	_, err = h.db.Exec(`
		INSERT INTO account (id, username, password_hash, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, accountID, req.Username, passwordHash, models.RoleAnnotator, models.AccountActive, time.Now())

	if err != nil {
		if isUniqueViolationErr(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "", "Username already taken")
			return
		}
		slog.Error("failed to insert account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to register")
		return
	}

	token, err := CreateSession(h.db, accountID)
	if err != nil {
		slog.Error("failed to create session", "error", err, "account_id", accountID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to register")
		return
	}

	slog.Info("account registered", "account_id", accountID, "username", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.SessionResponse{
		SessionToken: token,
		Account: models.Account{
			ID:       accountID,
			Username: req.Username,
			Role:     models.RoleAnnotator,
			Status:   models.AccountActive,
		},
	})
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "username and password are required")
		return
	}

	var account models.Account
	var passwordHash string
	err := h.db.QueryRow(`
		SELECT id, username, password_hash, role, status, wallet_cents, created_at
		FROM account WHERE username = $1
	`, req.Username).Scan(&account.ID, &account.Username, &passwordHash,
		&account.Role, &account.Status, &account.Wallet, &account.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if err := auth.CheckPassword(req.Password, h.cfg.SessionSalt, passwordHash); err != nil {
		slog.Warn("failed login attempt", "username", req.Username)
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid credentials")
		return
	}

	if account.Status == models.AccountBanned {
		middleware.ErrorResponse(w, http.StatusForbidden, "", "Account is banned")
		return
	}

	token, err := CreateSession(h.db, account.ID)
	if err != nil {
		slog.Error("failed to create session", "error", err, "account_id", account.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to log in")
		return
	}

	slog.Info("account logged in", "account_id", account.ID, "username", account.Username)

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		SessionToken: token,
		Account:      account,
	})
}

// Logout handles POST /auth/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Session-Token")
	if token != "" {
		if err := DeleteSession(h.db, token); err != nil {
			slog.Error("failed to delete session", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to log out")
			return
		}
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Check handles GET /auth/check
func (h *AccountHandler) Check(w http.ResponseWriter, r *http.Request) {
	account := requireAccount(h.db, w, r)
	if account == nil {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, account)
}
