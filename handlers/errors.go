// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/ballot"
	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/middleware"
)

// ballotErrorResponse maps a ballot rejection to its HTTP status. Every
// ballot error is a precondition failure, so nothing here is a server
// fault except the fallthrough.
func ballotErrorResponse(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, ballot.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, ballot.ErrInvalidPhase),
		errors.Is(err, ballot.ErrTerminalPhase),
		errors.Is(err, ballot.ErrAlreadyRegistered),
		errors.Is(err, ballot.ErrAlreadyVoted),
		errors.Is(err, ballot.ErrNoVotesCast):
		status = http.StatusConflict
	case errors.Is(err, ballot.ErrNotEnoughVoters),
		errors.Is(err, ballot.ErrNotEnoughProposals):
		status = http.StatusBadRequest
	case errors.Is(err, ballot.ErrUnknownProposal):
		status = http.StatusNotFound
	default:
		slog.Error("unexpected ballot error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}

// lookupErrorResponse maps registry/database lookup failures.
func lookupErrorResponse(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrElectionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	slog.Error("failed to load election", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}
