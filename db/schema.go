// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL is portable
// across sqlite and postgres; timestamps are unix seconds.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Elections
CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    authority TEXT NOT NULL,
    phase INTEGER NOT NULL DEFAULT 0,
    winner_proposal INTEGER,
    vote_cast INTEGER NOT NULL DEFAULT 0,
    event_seq INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

-- Voters (the whitelist; one row per registered address)
CREATE TABLE IF NOT EXISTS voter (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    address TEXT NOT NULL,
    has_voted INTEGER NOT NULL DEFAULT 0,
    voted_proposal INTEGER,
    ip_hash TEXT,
    user_agent TEXT,
    registered_at INTEGER NOT NULL,
    PRIMARY KEY (election_id, address)
);

CREATE INDEX IF NOT EXISTS idx_voter_election_id ON voter(election_id);

-- Proposals (ids dense per election, assigned in registration order)
CREATE TABLE IF NOT EXISTS proposal (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    id INTEGER NOT NULL,
    description TEXT NOT NULL,
    vote_count INTEGER NOT NULL DEFAULT 0,
    registered_at INTEGER NOT NULL,
    PRIMARY KEY (election_id, id)
);

CREATE INDEX IF NOT EXISTS idx_proposal_election_id ON proposal(election_id);

-- Events (append-only log, one row per state change)
CREATE TABLE IF NOT EXISTS event (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    type TEXT NOT NULL,
    voter TEXT,
    prev_phase INTEGER,
    new_phase INTEGER,
    proposal_id INTEGER,
    at INTEGER NOT NULL,
    PRIMARY KEY (election_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_event_election_id ON event(election_id);
`
