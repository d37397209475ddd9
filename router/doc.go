// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the crowdlabel API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Auth:

	POST /auth/register - Create annotator account
	POST /auth/login    - Open session (rejects banned accounts)
	POST /auth/logout   - Close session
	GET  /auth/check    - Current account

Tasks:

	GET  /tasks/next   - Next assignable task for this annotator
	POST /tasks        - Create task (admin)
	GET  /tasks/active - Open tasks (admin)

Annotator:

	POST /annotations - Submit a label
	GET  /stats       - Pending balance and accuracy
	GET  /history     - Past submissions

Admin:

	GET  /admin/reviews - Disputed tasks
	POST /admin/resolve - Set the true label
	GET  /admin/unpaid  - Payroll preview
	POST /admin/payroll - Settle payable submissions

# Handler Initialization

The router creates handler instances with dependency injection:

	accountHandler := handlers.NewAccountHandler(db, cfg)
	taskHandler := handlers.NewTaskHandler(db, cfg)
	annotationHandler := handlers.NewAnnotationHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
