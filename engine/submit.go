// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/crowdlabel/auth"
	"github.com/danielhkuo/crowdlabel/models"
)

// RedundancyThreshold is the number of independent labels collected
// before a task is evaluated for consensus.
const RedundancyThreshold = 5

// Submit records one annotator's label for one task. The whole
// sequence runs inside a single transaction holding an exclusive lock
// on the task row, so concurrent submissions to the same task
// serialize and the submission count can never overshoot the
// threshold. Submissions to different tasks do not contend.
//
// When the count reaches the threshold the task closes and consensus
// runs: unanimous labels auto-resolve the task and mark every
// submission correct; disagreement flags the task disputed for manual
// review.
func (e *Engine) Submit(accountID, taskID, label string) (string, error) {
	label = strings.TrimSpace(label)

	var submissionID string
	err := e.inTx(nil, func(tx *sql.Tx) error {
		var status, options string
		var count int
		err := tx.QueryRow(`
			SELECT status, label_options, submission_count
			FROM task WHERE id = $1
			FOR UPDATE
		`, taskID).Scan(&status, &options, &count)
		if err == sql.ErrNoRows {
			return ErrTaskNotFound
		}
		if err != nil {
			return err
		}

		if status != models.StatusOpen {
			return ErrTaskClosed
		}

		var exists bool
		err = tx.QueryRow(`
			SELECT EXISTS(
				SELECT 1 FROM submission
				WHERE account_id = $1 AND task_id = $2
			)
		`, accountID, taskID).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicate
		}

		valid := models.SplitOptions(options)
		if !slices.Contains(valid, label) {
			return InvalidLabelError(valid)
		}

		submissionID, err = auth.GenerateID(16)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO submission (id, account_id, task_id, submitted_label, verdict, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, submissionID, accountID, taskID, label, models.VerdictUnknown, time.Now())
		if isUniqueViolation(err) {
			// Lost the constraint race despite the row lock; same outcome
			return ErrDuplicate
		}
		if err != nil {
			return err
		}

		count++
		if count < RedundancyThreshold {
			_, err = tx.Exec(`UPDATE task SET submission_count = $1 WHERE id = $2`, count, taskID)
			return err
		}
		return closeAndJudge(tx, taskID, count)
	})
	if err != nil {
		return "", err
	}

	slog.Info("annotation submitted", "account_id", accountID, "task_id", taskID)
	return submissionID, nil
}

// closeAndJudge runs once per task, on the submission that crosses the
// redundancy threshold, still under the task row lock.
func closeAndJudge(tx *sql.Tx, taskID string, count int) error {
	rows, err := tx.Query(`SELECT submitted_label FROM submission WHERE task_id = $1`, taskID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return err
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	unanimous := true
	for _, l := range labels[1:] {
		if l != labels[0] {
			unanimous = false
			break
		}
	}

	if unanimous {
		// Unanimous redundant labeling is treated as ground truth
		_, err = tx.Exec(`
			UPDATE task
			SET submission_count = $1, status = $2, review_status = $3, resolved_label = $4
			WHERE id = $5
		`, count, models.StatusClosed, models.ReviewResolved, labels[0], taskID)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`UPDATE submission SET verdict = $1 WHERE task_id = $2`,
			models.VerdictCorrect, taskID)
		if err != nil {
			return err
		}
		slog.Info("task auto-resolved", "task_id", taskID, "label", labels[0])
		return nil
	}

	_, err = tx.Exec(`
		UPDATE task
		SET submission_count = $1, status = $2, review_status = $3
		WHERE id = $4
	`, count, models.StatusClosed, models.ReviewDisputed, taskID)
	if err != nil {
		return err
	}
	slog.Info("task disputed, needs manual review", "task_id", taskID)
	return nil
}
