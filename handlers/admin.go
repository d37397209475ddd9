// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/crowdlabel/cliparse"
	"github.com/danielhkuo/crowdlabel/engine"
	"github.com/danielhkuo/crowdlabel/middleware"
	"github.com/danielhkuo/crowdlabel/models"
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	eng *engine.Engine
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, eng: engine.New(db)}
}

// ReviewQueue handles GET /admin/reviews
func (h *AdminHandler) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	account := requireAdmin(h.db, w, r)
	if account == nil {
		return
	}

	tasks, err := h.eng.ReviewQueue()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	middleware.JSONResponse(w, http.StatusOK, tasks)
}

// Resolve handles POST /admin/resolve
func (h *AdminHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	account := requireAdmin(h.db, w, r)
	if account == nil {
		return
	}

	var req models.ResolveRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.TaskID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "task_id is required")
		return
	}
	if strings.TrimSpace(req.TrueLabel) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "true_label is required")
		return
	}

	if err := h.eng.Resolve(req.TaskID, req.TrueLabel); err != nil {
		writeEngineError(w, err)
		return
	}

	slog.Info("conflict resolved", "task_id", req.TaskID, "admin", account.Username)
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "resolved"})
}

// Unpaid handles GET /admin/unpaid
func (h *AdminHandler) Unpaid(w http.ResponseWriter, r *http.Request) {
	account := requireAdmin(h.db, w, r)
	if account == nil {
		return
	}

	payouts, err := h.eng.UnpaidBalances()
	if err != nil {
		writeEngineError(w, err)
		return
	}

	entries := make([]models.UnpaidEntry, 0, len(payouts))
	for _, p := range payouts {
		entries = append(entries, models.UnpaidEntry{
			AccountID: p.AccountID,
			Username:  p.Username,
			Amount:    p.Amount,
		})
	}
	middleware.JSONResponse(w, http.StatusOK, entries)
}

// RunPayroll handles POST /admin/payroll
func (h *AdminHandler) RunPayroll(w http.ResponseWriter, r *http.Request) {
	account := requireAdmin(h.db, w, r)
	if account == nil {
		return
	}

	res, err := h.eng.RunPayroll()
	if err != nil {
		writeEngineError(w, err)
		return
	}

	payouts := make([]models.UnpaidEntry, 0, len(res.Payouts))
	for _, p := range res.Payouts {
		payouts = append(payouts, models.UnpaidEntry{
			AccountID: p.AccountID,
			Username:  p.Username,
			Amount:    p.Amount,
		})
	}

	slog.Info("payroll run", "admin", account.Username, "total_cents", int64(res.Total))
	middleware.JSONResponse(w, http.StatusOK, models.PayrollResponse{
		Total:   res.Total,
		Payouts: payouts,
	})
}
