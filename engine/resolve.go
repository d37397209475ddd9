// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"
	"log/slog"
	"slices"
	"strings"

	"github.com/danielhkuo/crowdlabel/models"
)

// Resolve finalizes a task with an administrator-chosen label: the
// task becomes resolved with that label and every submission's verdict
// is rewritten by label equality.
//
// Re-resolution is allowed and overwrites the prior outcome; that is
// admin override, not an error. Verdicts of already-paid submissions
// may flip for forward-looking consistency, but their payment
// reference is never touched - settled submissions are immutable
// history and no money moves.
func (e *Engine) Resolve(taskID, trueLabel string) error {
	trueLabel = strings.TrimSpace(trueLabel)

	err := e.inTx(nil, func(tx *sql.Tx) error {
		var options string
		err := tx.QueryRow(`SELECT label_options FROM task WHERE id = $1 FOR UPDATE`, taskID).Scan(&options)
		if err == sql.ErrNoRows {
			return ErrTaskNotFound
		}
		if err != nil {
			return err
		}

		valid := models.SplitOptions(options)
		if !slices.Contains(valid, trueLabel) {
			return InvalidLabelError(valid)
		}

		_, err = tx.Exec(`
			UPDATE task SET resolved_label = $1, review_status = $2 WHERE id = $3
		`, trueLabel, models.ReviewResolved, taskID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			UPDATE submission
			SET verdict = CASE WHEN submitted_label = $1 THEN $2::text ELSE $3::text END
			WHERE task_id = $4
		`, trueLabel, models.VerdictCorrect, models.VerdictIncorrect, taskID)
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("task resolved", "task_id", taskID, "label", trueLabel)
	return nil
}
