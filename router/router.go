// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/crowdlabel/cliparse"
	"github.com/danielhkuo/crowdlabel/handlers"
	"github.com/danielhkuo/crowdlabel/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(db, cfg)
	taskHandler := handlers.NewTaskHandler(db, cfg)
	annotationHandler := handlers.NewAnnotationHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(accountHandler.Logout))
	mux.HandleFunc("GET /auth/check", middleware.WithLogging(accountHandler.Check))

	// Tasks
	mux.HandleFunc("GET /tasks/next", middleware.WithLogging(taskHandler.NextTask))
	mux.HandleFunc("POST /tasks", middleware.WithLogging(taskHandler.CreateTask))
	mux.HandleFunc("GET /tasks/active", middleware.WithLogging(taskHandler.ActiveTasks))

	// Annotator operations
	mux.HandleFunc("POST /annotations", middleware.WithLogging(annotationHandler.Submit))
	mux.HandleFunc("GET /stats", middleware.WithLogging(annotationHandler.Stats))
	mux.HandleFunc("GET /history", middleware.WithLogging(annotationHandler.History))

	// Admin operations
	mux.HandleFunc("GET /admin/reviews", middleware.WithLogging(adminHandler.ReviewQueue))
	mux.HandleFunc("POST /admin/resolve", middleware.WithLogging(adminHandler.Resolve))
	mux.HandleFunc("GET /admin/unpaid", middleware.WithLogging(adminHandler.Unpaid))
	mux.HandleFunc("POST /admin/payroll", middleware.WithLogging(adminHandler.RunPayroll))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("crowdlabel API v1"))
	})

	return mux
}
