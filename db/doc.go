// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and election rehydration.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is portable across the sqlite (default) and postgres drivers; all
timestamps are stored as unix seconds.

# Tables

  - election: metadata, workflow phase, winner pointer, vote-cast latch
  - voter: whitelist rows with the one-way has_voted latch
  - proposal: dense per-election ids with running vote counts
  - event: the append-only event log, one row per state change

# Relationships

	election 1──* voter
	election 1──* proposal
	election 1──* event

All foreign keys use ON DELETE CASCADE.

# Rehydration

LoadElection reads an election and its child rows back into a
ballot.Snapshot, which ballot.Restore turns into a live controller after
a process restart. Handlers write rows through as operations succeed, so
the tables always reflect the last committed state.
*/
package db
