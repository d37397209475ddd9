// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/crowdlabel/auth"
	"github.com/danielhkuo/crowdlabel/models"
)

// MaxBounty is the largest permitted bounty, in cents.
const MaxBounty models.Cents = 100000

// DefaultBounty is used when a task is created without one.
const DefaultBounty models.Cents = 50

// CreateTask registers a new labeling task. Options must contain at
// least two distinct labels after trimming; the bounty must be within
// [0, MaxBounty].
func (e *Engine) CreateTask(contentRef, options string, bounty models.Cents) (string, error) {
	labels := models.SplitOptions(options)
	if len(labels) < 2 {
		return "", &Error{Code: CodeInvalidLabel, Message: "at least two label options are required"}
	}
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			return "", &Error{Code: CodeInvalidLabel, Message: "label options must be distinct"}
		}
		seen[l] = true
	}

	if bounty < 0 {
		return "", InvalidAmountError("bounty must be non-negative")
	}
	if bounty > MaxBounty {
		return "", InvalidAmountError("bounty too large (max 1000.00)")
	}

	taskID, err := auth.GenerateID(16)
	if err != nil {
		return "", err
	}
	_, err = e.db.Exec(`
		INSERT INTO task (id, content_ref, label_options, bounty_cents, status, review_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, taskID, contentRef, strings.Join(labels, ","), bounty, models.StatusOpen, models.ReviewNone, time.Now())
	if err != nil {
		return "", err
	}

	slog.Info("task created", "task_id", taskID, "bounty_cents", int64(bounty))
	return taskID, nil
}

// OpenTasks lists every task still collecting labels.
func (e *Engine) OpenTasks() ([]models.Task, error) {
	return e.listTasks(`status = 'open'`)
}

// ReviewQueue lists disputed tasks awaiting manual resolution.
func (e *Engine) ReviewQueue() ([]models.Task, error) {
	return e.listTasks(`review_status = 'disputed'`)
}

func (e *Engine) listTasks(where string) ([]models.Task, error) {
	rows, err := e.db.Query(`
		SELECT id, content_ref, label_options, bounty_cents, submission_count,
		       status, review_status, resolved_label, created_at
		FROM task
		WHERE ` + where + `
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Bounty converts a dollar amount from a request into a validated
// cents value, defaulting when absent. A value the request decoder
// could not read as a number is an invalid amount.
func Bounty(amount models.Amount) (models.Cents, error) {
	if amount.Invalid {
		return 0, InvalidAmountError("bounty must be a number")
	}
	if amount.Dollars == nil {
		return DefaultBounty, nil
	}
	c, ok := models.ToCents(*amount.Dollars)
	if !ok {
		return 0, InvalidAmountError("bounty is not a finite number")
	}
	if c < 0 {
		return 0, InvalidAmountError("bounty must be non-negative")
	}
	if c > MaxBounty {
		return 0, InvalidAmountError("bounty too large (max 1000.00)")
	}
	return c, nil
}
