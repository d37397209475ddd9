// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements the task-assignment, consensus, and payroll
rules. It is the only package that encodes business invariants; the
handlers are a thin JSON layer over it.

# Operations

	eng := engine.New(db)

	task, err := eng.NextTask(accountID)          // task selector
	id, err := eng.Submit(accountID, taskID, lbl) // submission processor
	err = eng.Resolve(taskID, trueLabel)          // manual consensus
	res, err := eng.RunPayroll()                  // payroll settler
	stats, err := eng.Stats(accountID)            // earnings + accuracy

Plus task administration (CreateTask, OpenTasks, ReviewQueue), the
payroll preview (UnpaidBalances), and annotator History.

# Task Lifecycle

Tasks collect up to five independent labels:

	open → (5th label) → closed
	              ├── unanimous → resolved, all submissions correct
	              └── conflict  → disputed, awaiting Resolve

A closed task never reopens. Resolve may be re-run; the latest label
wins, but payments already made are never reversed.

# Concurrency

Submit locks exactly one task row (SELECT ... FOR UPDATE) for its
read-count-insert-judge sequence, so concurrent submissions to one
task serialize while other tasks proceed independently, the count
never overshoots five, and the threshold crossing runs exactly once.
The (account_id, task_id) UNIQUE constraint backs up the duplicate
check under races.

RunPayroll runs at REPEATABLE READ: the payable read and the marking
writes share one snapshot, so a submission turned payable mid-run lands
whole in the next run, never partially in this one.

# Errors

Business outcomes are *Error values with stable codes:

	not_found, task_closed, duplicate_submission,
	invalid_label, invalid_amount, storage_conflict

Transactions aborted by the store (serialization failure, deadlock)
are re-run once before storage_conflict is surfaced.
*/
package engine
