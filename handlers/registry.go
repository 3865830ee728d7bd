// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/ballotbox/ballot"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/models"
)

// Registry owns the live ballot controllers, one per election. The
// database is the system of record; controllers are loaded lazily and
// cached so every request for an election hits the same single-writer
// state machine. Each controller's event sink appends to the election's
// event log table.
type Registry struct {
	database *sql.DB
	cfg      cliparse.Config

	mu          sync.Mutex
	controllers map[string]*ballot.Controller
	voteLocks   map[string]*sync.Mutex
}

func NewRegistry(database *sql.DB, cfg cliparse.Config) *Registry {
	return &Registry{
		database:    database,
		cfg:         cfg,
		controllers: make(map[string]*ballot.Controller),
		voteLocks:   make(map[string]*sync.Mutex),
	}
}

func (r *Registry) DB() *sql.DB {
	return r.database
}

func (r *Registry) Config() cliparse.Config {
	return r.cfg
}

// Create inserts the election row and caches a fresh controller for it.
func (r *Registry) Create(id, name, authority string, createdAt int64) (*ballot.Controller, error) {
	_, err := r.database.Exec(`
		INSERT INTO election (id, name, authority, phase, vote_cast, event_seq, created_at)
		VALUES ($1, $2, $3, 0, 0, 0, $4)
	`, id, name, authority, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert election: %w", err)
	}

	ctrl := ballot.New(authority, r.sink(id))

	r.mu.Lock()
	r.controllers[id] = ctrl
	r.mu.Unlock()
	return ctrl, nil
}

// Get returns the live controller for an election, rehydrating it from
// the database on first access. Returns db.ErrElectionNotFound for
// unknown ids.
func (r *Registry) Get(id string) (*ballot.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ctrl, ok := r.controllers[id]; ok {
		return ctrl, nil
	}

	_, snap, err := db.LoadElection(r.database, id)
	if err != nil {
		return nil, err
	}
	ctrl := ballot.Restore(snap, r.sink(id))
	r.controllers[id] = ctrl
	return ctrl, nil
}

// VoteLock returns the mutex serializing vote persistence for one
// election. Holding it across the controller commit and the
// write-through keeps the persisted winner pointer in vote order: a
// vote's snapshot can never overwrite the rows of a later vote.
func (r *Registry) VoteLock(id string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.voteLocks[id]; ok {
		return l
	}
	l := &sync.Mutex{}
	r.voteLocks[id] = l
	return l
}

// sink persists controller events to the append-only event table. The
// controller has already committed the state change when the sink runs;
// a failed row write is logged but cannot retro-reject the operation.
func (r *Registry) sink(electionID string) ballot.EventSink {
	return func(ev models.Event) {
		var prev, next, proposal interface{}
		if ev.PrevPhase != nil {
			prev = int(*ev.PrevPhase)
		}
		if ev.NewPhase != nil {
			next = int(*ev.NewPhase)
		}
		if ev.ProposalID != nil {
			proposal = *ev.ProposalID
		}
		var voter interface{}
		if ev.Voter != "" {
			voter = ev.Voter
		}

		_, err := r.database.Exec(`
			INSERT INTO event (election_id, seq, type, voter, prev_phase, new_phase, proposal_id, at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, electionID, ev.Seq, ev.Type, voter, prev, next, proposal, ev.At)
		if err != nil {
			slog.Error("failed to append event", "error", err, "election_id", electionID, "seq", ev.Seq)
			return
		}

		_, err = r.database.Exec(`
			UPDATE election SET event_seq = $1 WHERE id = $2
		`, ev.Seq, electionID)
		if err != nil {
			slog.Error("failed to bump event seq", "error", err, "election_id", electionID)
		}
	}
}
