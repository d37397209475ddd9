// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Accounts (annotators and admins). Never deleted, only deactivated.
CREATE TABLE IF NOT EXISTS account (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'annotator' CHECK (role IN ('admin', 'annotator')),
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'warning', 'banned')),
    wallet_cents BIGINT NOT NULL DEFAULT 0 CHECK (wallet_cents >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_account_username ON account(username);

-- Sessions
CREATE TABLE IF NOT EXISTS session (
    token TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES account(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_session_account_id ON session(account_id);

-- Labeling tasks
CREATE TABLE IF NOT EXISTS task (
    id TEXT PRIMARY KEY,
    content_ref TEXT NOT NULL,
    label_options TEXT NOT NULL,
    bounty_cents BIGINT NOT NULL DEFAULT 50 CHECK (bounty_cents >= 0 AND bounty_cents <= 100000),
    submission_count INTEGER NOT NULL DEFAULT 0 CHECK (submission_count >= 0 AND submission_count <= 5),
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    review_status TEXT NOT NULL DEFAULT 'none' CHECK (review_status IN ('none', 'disputed', 'resolved')),
    resolved_label TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_task_status_count ON task(status, submission_count);

-- Settlement batches (immutable once written)
CREATE TABLE IF NOT EXISTS payment (
    id TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES account(id),
    amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_payment_account_id ON payment(account_id);

-- Submissions. The UNIQUE pair is the duplicate-submission guard; it
-- must live in the database, not just in application logic.
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES account(id),
    task_id TEXT NOT NULL REFERENCES task(id),
    submitted_label TEXT NOT NULL,
    verdict TEXT NOT NULL DEFAULT 'unknown' CHECK (verdict IN ('unknown', 'correct', 'incorrect')),
    payment_id TEXT REFERENCES payment(id),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (account_id, task_id)
);

CREATE INDEX IF NOT EXISTS idx_submission_task_id ON submission(task_id);
CREATE INDEX IF NOT EXISTS idx_submission_account_id ON submission(account_id);
CREATE INDEX IF NOT EXISTS idx_submission_payable ON submission(account_id) WHERE verdict = 'correct' AND payment_id IS NULL;
`
