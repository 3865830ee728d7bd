// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/ballot"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type ResultsHandler struct {
	reg *Registry
}

func NewResultsHandler(reg *Registry) *ResultsHandler {
	return &ResultsHandler{reg: reg}
}

// GetWinner handles GET /elections/{id}/winner
// The winner is sealed until the workflow reaches VotesTallied.
func (h *ResultsHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	ctrl, err := h.reg.Get(electionID)
	if err != nil {
		lookupErrorResponse(w, err)
		return
	}

	winner, err := ctrl.Winner()
	if err != nil {
		if errors.Is(err, ballot.ErrInvalidPhase) {
			middleware.ErrorResponse(w, http.StatusForbidden, "Winner is hidden until votes are tallied")
			return
		}
		ballotErrorResponse(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse{
		ProposalID:  winner.ID,
		Description: winner.Description,
		VoteCount:   winner.VoteCount,
	})
}

// GetProposals handles GET /elections/{id}/proposals
// Vote counts stay zeroed in the response until the election is
// tallied, so in-flight results never leak.
func (h *ResultsHandler) GetProposals(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	ctrl, err := h.reg.Get(electionID)
	if err != nil {
		lookupErrorResponse(w, err)
		return
	}

	phase := ctrl.Phase()
	proposals := ctrl.Proposals()
	if !phase.Terminal() {
		for i := range proposals {
			proposals[i].VoteCount = 0
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProposalsResponse{
		Phase:     phase,
		Proposals: proposals,
	})
}

// GetEvents handles GET /elections/{id}/events
// Returns the election's append-only event log in sequence order.
func (h *ResultsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	if _, err := h.reg.Get(electionID); err != nil {
		lookupErrorResponse(w, err)
		return
	}

	rows, err := h.reg.DB().Query(`
		SELECT seq, type, voter, prev_phase, new_phase, proposal_id, at
		FROM event WHERE election_id = $1 ORDER BY seq
	`, electionID)
	if err != nil {
		slog.Error("failed to query events", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var (
			ev       models.Event
			voter    sql.NullString
			prev     sql.NullInt64
			next     sql.NullInt64
			proposal sql.NullInt64
		)
		if err := rows.Scan(&ev.Seq, &ev.Type, &voter, &prev, &next, &proposal, &ev.At); err != nil {
			slog.Error("failed to scan event", "error", err, "election_id", electionID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if voter.Valid {
			ev.Voter = voter.String
		}
		if prev.Valid {
			p := models.Phase(prev.Int64)
			ev.PrevPhase = &p
		}
		if next.Valid {
			n := models.Phase(next.Int64)
			ev.NewPhase = &n
		}
		if proposal.Valid {
			id := int(proposal.Int64)
			ev.ProposalID = &id
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate events", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EventsResponse{
		ElectionID: electionID,
		Events:     events,
	})
}
