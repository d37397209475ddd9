// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - account: Annotators and admins with wallet balances
  - session: Login session tokens
  - task: Labeling tasks with bounty and lifecycle state
  - payment: Immutable settlement batches
  - submission: One label per (account, task)

# Relationships

	account 1──* session
	account 1──* submission
	account 1──* payment
	task    1──* submission (at most 5)
	payment 1──* submission (set when settled, then permanent)

Submissions and payments are financial history and use plain foreign
keys without cascade; sessions cascade with their account.

# Constraints

The database enforces the invariants the engine relies on:

  - UNIQUE (account_id, task_id) on submission: one label per
    annotator per task, even under concurrent inserts
  - CHECK submission_count <= 5: the count can never overshoot the
    redundancy threshold
  - CHECK wallet_cents >= 0 and bounty_cents in [0, 100000]
  - CHECK constraints on every status/verdict enumeration

# Indexes

  - task(status, submission_count): task selector scan
  - submission(task_id), submission(account_id)
  - partial index on payable submissions (correct and unpaid)
  - payment(account_id), session(account_id)
*/
package db
