// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"github.com/danielhkuo/crowdlabel/models"
)

// AccountStats is an annotator's earnings and accuracy summary.
type AccountStats struct {
	PendingBalance models.Cents
	Accuracy       float64
	TotalSubmitted int
	CorrectCount   int
}

// Stats reports pending balance (bounties of correct, unpaid
// submissions) and accuracy over judged submissions. With nothing
// judged yet, accuracy is 1.0.
func (e *Engine) Stats(accountID string) (*AccountStats, error) {
	if err := e.checkAccount(accountID); err != nil {
		return nil, err
	}

	var s AccountStats

	err := e.db.QueryRow(`
		SELECT COALESCE(SUM(t.bounty_cents), 0)
		FROM submission s
		JOIN task t ON t.id = s.task_id
		WHERE s.account_id = $1 AND s.verdict = 'correct' AND s.payment_id IS NULL
	`, accountID).Scan(&s.PendingBalance)
	if err != nil {
		return nil, err
	}

	var judged int
	err = e.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE verdict = 'correct'),
		       COUNT(*) FILTER (WHERE verdict <> 'unknown')
		FROM submission
		WHERE account_id = $1
	`, accountID).Scan(&s.TotalSubmitted, &s.CorrectCount, &judged)
	if err != nil {
		return nil, err
	}

	if judged > 0 {
		s.Accuracy = float64(s.CorrectCount) / float64(judged)
	} else {
		s.Accuracy = 1.0
	}
	return &s, nil
}

// History lists an annotator's submissions, newest first. The Age
// field is presentation and left for the handler to fill.
func (e *Engine) History(accountID string) ([]models.HistoryEntry, error) {
	if err := e.checkAccount(accountID); err != nil {
		return nil, err
	}

	rows, err := e.db.Query(`
		SELECT s.id, s.task_id, t.content_ref, s.submitted_label, s.verdict,
		       s.payment_id IS NOT NULL, s.created_at
		FROM submission s
		JOIN task t ON t.id = s.task_id
		WHERE s.account_id = $1
		ORDER BY s.created_at DESC, s.id
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var h models.HistoryEntry
		err := rows.Scan(&h.SubmissionID, &h.TaskID, &h.ContentRef, &h.Label, &h.Verdict, &h.Paid, &h.SubmittedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, h)
	}
	return entries, rows.Err()
}

// checkAccount verifies the account exists before reporting on it.
func (e *Engine) checkAccount(accountID string) error {
	var exists bool
	err := e.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM account WHERE id = $1)
	`, accountID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrAccountNotFound
	}
	return nil
}
