// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the crowdlabel API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AccountHandler: Registration, login, logout, session check
  - TaskHandler: Task assignment and admin task management
  - AnnotationHandler: Label submission, stats, history
  - AdminHandler: Review queue, conflict resolution, payroll

Handlers are created via constructor functions that accept *sql.DB and Config:

	taskHandler := handlers.NewTaskHandler(db, cfg)

The handlers do JSON and session work only; every business rule lives
in the engine package, which the constructors instantiate internally.

# Annotator Flow

	POST /auth/register → Register (returns session_token)
	GET  /tasks/next    → NextTask (highest-count open task not yet labeled)
	POST /annotations   → Submit (may close the task and run consensus)
	GET  /stats         → Stats (pending balance, accuracy)
	GET  /history       → History (past submissions, humanized age)

# Admin Flow

	POST /tasks          → CreateTask (bounty validated, dollars in)
	GET  /tasks/active   → ActiveTasks
	GET  /admin/reviews  → ReviewQueue (disputed tasks)
	POST /admin/resolve  → Resolve (sets verdicts by label equality)
	GET  /admin/unpaid   → Unpaid (payroll preview)
	POST /admin/payroll  → RunPayroll (one payment per account)

All authenticated operations require the X-Session-Token header; admin
operations additionally require the admin role.

# Error Mapping

Engine outcomes map to HTTP statuses and stable codes:

	not_found            → 404
	task_closed          → 409
	duplicate_submission → 409
	invalid_label        → 400
	invalid_amount       → 400
	storage_conflict     → 503
*/
package handlers
