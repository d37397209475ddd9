// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"

	"github.com/danielhkuo/crowdlabel/models"
)

// NextTask picks the next task for an annotator: open, below the
// redundancy threshold, and not yet labeled by this account. Tasks
// closest to completion come first so consensus finishes sooner and
// fewer tasks stay open at once; ties go to the lowest task id.
//
// Read-only and lock-free. A stale read that hands out a task closed
// a moment later is caught by Submit's precondition check.
func (e *Engine) NextTask(accountID string) (*models.Task, error) {
	row := e.db.QueryRow(`
		SELECT id, content_ref, label_options, bounty_cents, submission_count,
		       status, review_status, resolved_label, created_at
		FROM task
		WHERE status = 'open'
		  AND submission_count < $1
		  AND NOT EXISTS (
		      SELECT 1 FROM submission s
		      WHERE s.task_id = task.id AND s.account_id = $2
		  )
		ORDER BY submission_count DESC, id ASC
		LIMIT 1
	`, RedundancyThreshold, accountID)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.ContentRef, &t.Options, &t.Bounty, &t.SubmissionCount,
		&t.Status, &t.ReviewStatus, &t.ResolvedLabel, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.OptionsList = models.SplitOptions(t.Options)
	return &t, nil
}
