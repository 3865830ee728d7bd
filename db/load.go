// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/ballotbox/ballot"
	"github.com/danielhkuo/ballotbox/models"
)

// ErrElectionNotFound is returned by LoadElection when no election row
// exists for the given id.
var ErrElectionNotFound = errors.New("election not found")

// LoadElection rehydrates a persisted election into a controller
// snapshot plus its metadata. Proposals are loaded in id order so the
// snapshot's dense proposal list lines up with the assigned ids.
func LoadElection(db *sql.DB, id string) (models.Election, ballot.Snapshot, error) {
	var (
		meta   models.Election
		snap   ballot.Snapshot
		phase  int
		winner sql.NullInt64
		cast   int
	)

	err := db.QueryRow(`
		SELECT id, name, authority, phase, winner_proposal, vote_cast, event_seq, created_at
		FROM election
		WHERE id = $1
	`, id).Scan(&meta.ID, &meta.Name, &meta.Authority, &phase, &winner, &cast, &snap.EventSeq, &meta.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Election{}, ballot.Snapshot{}, ErrElectionNotFound
	}
	if err != nil {
		return models.Election{}, ballot.Snapshot{}, fmt.Errorf("failed to load election: %w", err)
	}

	snap.Authority = meta.Authority
	snap.Phase = models.Phase(phase)
	snap.VoteCast = cast != 0
	if winner.Valid {
		snap.Winner = int(winner.Int64)
	}
	meta.Phase = snap.Phase

	voters, err := loadVoters(db, id)
	if err != nil {
		return models.Election{}, ballot.Snapshot{}, err
	}
	snap.Voters = voters

	proposals, err := loadProposals(db, id)
	if err != nil {
		return models.Election{}, ballot.Snapshot{}, err
	}
	snap.Proposals = proposals

	meta.VoterCount = len(snap.Voters)
	meta.ProposalCount = len(snap.Proposals)
	return meta, snap, nil
}

func loadVoters(db *sql.DB, electionID string) ([]models.Voter, error) {
	rows, err := db.Query(`
		SELECT address, has_voted, voted_proposal
		FROM voter
		WHERE election_id = $1
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load voters: %w", err)
	}
	defer rows.Close()

	var voters []models.Voter
	for rows.Next() {
		var (
			v     models.Voter
			voted int
			prop  sql.NullInt64
		)
		if err := rows.Scan(&v.Address, &voted, &prop); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		v.Registered = true
		v.HasVoted = voted != 0
		if v.HasVoted && prop.Valid {
			id := int(prop.Int64)
			v.VotedProposal = &id
		}
		voters = append(voters, v)
	}
	return voters, rows.Err()
}

func loadProposals(db *sql.DB, electionID string) ([]models.Proposal, error) {
	rows, err := db.Query(`
		SELECT id, description, vote_count
		FROM proposal
		WHERE election_id = $1
		ORDER BY id
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposals: %w", err)
	}
	defer rows.Close()

	var proposals []models.Proposal
	for rows.Next() {
		var p models.Proposal
		if err := rows.Scan(&p.ID, &p.Description, &p.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}
