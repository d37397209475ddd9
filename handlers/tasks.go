// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/danielhkuo/crowdlabel/cliparse"
	"github.com/danielhkuo/crowdlabel/engine"
	"github.com/danielhkuo/crowdlabel/middleware"
	"github.com/danielhkuo/crowdlabel/models"
)

type TaskHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	eng *engine.Engine
}

func NewTaskHandler(db *sql.DB, cfg cliparse.Config) *TaskHandler {
	return &TaskHandler{db: db, cfg: cfg, eng: engine.New(db)}
}

// NextTask handles GET /tasks/next
func (h *TaskHandler) NextTask(w http.ResponseWriter, r *http.Request) {
	account := requireAccount(h.db, w, r)
	if account == nil {
		return
	}

	task, err := h.eng.NextTask(account.ID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if task == nil {
		// Nothing left for this annotator right now
		middleware.JSONResponse(w, http.StatusOK, nil)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, task)
}

// CreateTask handles POST /tasks (admin)
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	account := requireAdmin(h.db, w, r)
	if account == nil {
		return
	}

	var req models.CreateTaskRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.ContentRef) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "content_ref is required")
		return
	}
	if strings.TrimSpace(req.Options) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "options is required")
		return
	}

	bounty, err := engine.Bounty(req.Bounty)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	taskID, err := h.eng.CreateTask(strings.TrimSpace(req.ContentRef), req.Options, bounty)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateTaskResponse{TaskID: taskID})
}

// ActiveTasks handles GET /tasks/active (admin)
func (h *TaskHandler) ActiveTasks(w http.ResponseWriter, r *http.Request) {
	account := requireAdmin(h.db, w, r)
	if account == nil {
		return
	}

	tasks, err := h.eng.OpenTasks()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	middleware.JSONResponse(w, http.StatusOK, tasks)
}
