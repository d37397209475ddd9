// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/danielhkuo/crowdlabel/auth"
	"github.com/danielhkuo/crowdlabel/models"
)

// Payout is one account's share of a payroll run.
type Payout struct {
	AccountID string
	Username  string
	Amount    models.Cents
}

// PayrollResult summarizes one settlement run.
type PayrollResult struct {
	Total   models.Cents
	Payouts []Payout
}

// RunPayroll settles every payable submission (verdict correct,
// payment unset) into exactly one Payment per account, and credits
// each account's wallet by the payment amount. An empty payable set is
// a no-op reporting zero.
//
// The run uses REPEATABLE READ so the payable read and the marking
// writes see one snapshot: a submission flipped payable by a
// concurrent resolver mid-run is deferred to the next run rather than
// half-settled. The marking step re-applies the payable predicate
// instead of replaying a cached id list. If the resolver and the
// settler touch the same row the store aborts one of them, and inTx
// re-runs the whole block once.
func (e *Engine) RunPayroll() (*PayrollResult, error) {
	var res *PayrollResult

	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead}
	err := e.inTx(opts, func(tx *sql.Tx) error {
		res = &PayrollResult{} // fresh on retry

		rows, err := tx.Query(`
			SELECT s.account_id, a.username, SUM(t.bounty_cents)
			FROM submission s
			JOIN task t ON t.id = s.task_id
			JOIN account a ON a.id = s.account_id
			WHERE s.verdict = 'correct' AND s.payment_id IS NULL
			GROUP BY s.account_id, a.username
			HAVING SUM(t.bounty_cents) > 0
			ORDER BY s.account_id
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p Payout
			if err := rows.Scan(&p.AccountID, &p.Username, &p.Amount); err != nil {
				return err
			}
			res.Payouts = append(res.Payouts, p)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, p := range res.Payouts {
			paymentID, err := auth.GenerateID(16)
			if err != nil {
				return err
			}
			_, err = tx.Exec(`
				INSERT INTO payment (id, account_id, amount_cents, created_at)
				VALUES ($1, $2, $3, $4)
			`, paymentID, p.AccountID, p.Amount, time.Now())
			if err != nil {
				return err
			}

			// Same predicate as the read, not a cached id list
			_, err = tx.Exec(`
				UPDATE submission SET payment_id = $1
				WHERE account_id = $2 AND verdict = 'correct' AND payment_id IS NULL
			`, paymentID, p.AccountID)
			if err != nil {
				return err
			}

			_, err = tx.Exec(`
				UPDATE account SET wallet_cents = wallet_cents + $1 WHERE id = $2
			`, p.Amount, p.AccountID)
			if err != nil {
				return err
			}

			res.Total += p.Amount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("payroll settled", "accounts", len(res.Payouts), "total_cents", int64(res.Total))
	return res, nil
}

// UnpaidBalances previews what the next payroll run would pay, without
// settling anything. Read-only.
func (e *Engine) UnpaidBalances() ([]Payout, error) {
	rows, err := e.db.Query(`
		SELECT s.account_id, a.username, SUM(t.bounty_cents)
		FROM submission s
		JOIN task t ON t.id = s.task_id
		JOIN account a ON a.id = s.account_id
		WHERE s.verdict = 'correct' AND s.payment_id IS NULL
		GROUP BY s.account_id, a.username
		HAVING SUM(t.bounty_cents) > 0
		ORDER BY s.account_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []Payout
	for rows.Next() {
		var p Payout
		if err := rows.Scan(&p.AccountID, &p.Username, &p.Amount); err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}
	return payouts, rows.Err()
}
