// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/crowdlabel/cliparse"
	"github.com/danielhkuo/crowdlabel/engine"
	"github.com/danielhkuo/crowdlabel/middleware"
	"github.com/danielhkuo/crowdlabel/models"
)

type AnnotationHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	eng *engine.Engine
}

func NewAnnotationHandler(db *sql.DB, cfg cliparse.Config) *AnnotationHandler {
	return &AnnotationHandler{db: db, cfg: cfg, eng: engine.New(db)}
}

// Submit handles POST /annotations
func (h *AnnotationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	account := requireAccount(h.db, w, r)
	if account == nil {
		return
	}

	var req models.SubmitAnnotationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.TaskID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "task_id is required")
		return
	}
	if strings.TrimSpace(req.Label) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "label is required")
		return
	}

	submissionID, err := h.eng.Submit(account.ID, req.TaskID, req.Label)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitAnnotationResponse{
		SubmissionID: submissionID,
		Message:      "Annotation submitted successfully",
	})
}

// Stats handles GET /stats
func (h *AnnotationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	account := requireAccount(h.db, w, r)
	if account == nil {
		return
	}

	stats, err := h.eng.Stats(account.ID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		PendingBalance: stats.PendingBalance,
		Accuracy:       stats.Accuracy,
		TotalSubmitted: stats.TotalSubmitted,
		CorrectCount:   stats.CorrectCount,
	})
}

// History handles GET /history
func (h *AnnotationHandler) History(w http.ResponseWriter, r *http.Request) {
	account := requireAccount(h.db, w, r)
	if account == nil {
		return
	}

	entries, err := h.eng.History(account.ID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	for i := range entries {
		entries[i].Age = humanize.Time(entries[i].SubmittedAt)
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	middleware.JSONResponse(w, http.StatusOK, entries)
}
