// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the crowdlabel API server.

Crowdlabel assigns image-labeling tasks to annotators, collects five
redundant labels per task, resolves them into a consensus label (or
flags a conflict for admin review), and pays annotators for
confirmed-correct work.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3418 -d "postgres://..."

A local .env file is loaded first if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - SESSION_SALT (--session-salt): Secret for password hashing

Optional settings:

  - PORT (-p): Server port (default: 3418)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - engine: The core rules (task selection, submission processing,
    consensus resolution, payroll settlement)
  - handlers: HTTP request handlers (accounts, tasks, annotations, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Token generation and password hashing
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
