// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest / LoginRequest: username, password
  - CreateTaskRequest: content_ref, options, bounty (dollars)
  - SubmitAnnotationRequest: task_id, label
  - ResolveRequest: task_id, true_label

# Response Types

Types for JSON responses:

  - SessionResponse: session_token, account
  - CreateTaskResponse: task_id
  - SubmitAnnotationResponse: submission_id, message
  - StatsResponse: pending_balance, accuracy, total_submitted, correct_count
  - HistoryEntry: one past submission with verdict and humanized age
  - UnpaidEntry / PayrollResponse: per-account payable amounts
  - ErrorResponse: error, code, message

# Domain Types

Internal data structures:

  - Account: annotator or admin with wallet balance
  - Task: one labeling unit with bounty and lifecycle state
  - Submission: one annotator's label for one task
  - Payment: one immutable settlement batch

# Money

Amounts are integer cents (Cents) everywhere inside the server. The
JSON boundary speaks dollars; ToCents and Cents.Dollars convert exactly
once, at that boundary.

# Constants

Task lifecycle:

	StatusOpen   = "open"
	StatusClosed = "closed"

Review status:

	ReviewNone     = "none"
	ReviewDisputed = "disputed"
	ReviewResolved = "resolved"

Verdicts (tri-state, never a nullable boolean):

	VerdictUnknown   = "unknown"
	VerdictCorrect   = "correct"
	VerdictIncorrect = "incorrect"

Roles and account statuses:

	RoleAdmin, RoleAnnotator
	AccountActive, AccountWarning, AccountBanned
*/
package models
