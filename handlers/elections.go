// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/metrics"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type ElectionHandler struct {
	reg    *Registry
	tokens *auth.TokenManager
}

func NewElectionHandler(reg *Registry) *ElectionHandler {
	return &ElectionHandler{
		reg:    reg,
		tokens: auth.NewTokenManager(reg.Config().TokenSecret, auth.DefaultTokenDuration),
	}
}

// CreateElection handles POST /elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Authority == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "authority is required")
		return
	}

	electionID := uuid.New().String()
	adminKey := auth.GenerateAdminKey(electionID, h.reg.Config().AdminKeySalt)

	if _, err := h.reg.Create(electionID, req.Name, req.Authority, time.Now().Unix()); err != nil {
		slog.Error("failed to create election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	metrics.ElectionsCreated.Inc()
	slog.Info("election created", "election_id", electionID, "authority", req.Authority)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		ElectionID: electionID,
		AdminKey:   adminKey,
	})
}

// GetElection handles GET /elections/{id}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
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

	var (
		name      string
		createdAt int64
	)
	err = h.reg.DB().QueryRow(`
		SELECT name, created_at FROM election WHERE id = $1
	`, electionID).Scan(&name, &createdAt)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Election{
		ID:            electionID,
		Name:          name,
		Authority:     ctrl.Authority(),
		Phase:         ctrl.Phase(),
		VoterCount:    ctrl.VoterCount(),
		ProposalCount: ctrl.ProposalCount(),
		CreatedAt:     createdAt,
	})
}

// RegisterVoter handles POST /elections/{id}/voters
// The authority whitelists an address; the response carries the voter
// token for the authority to hand to that voter.
func (h *ElectionHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
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

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(electionID, adminKey, h.reg.Config().AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Address) < 2 || len(req.Address) > 64 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address must be 2-64 characters")
		return
	}

	if err := ctrl.RegisterVoter(ctrl.Authority(), req.Address); err != nil {
		ballotErrorResponse(w, err)
		return
	}

	_, err = h.reg.DB().Exec(`
		INSERT INTO voter (election_id, address, has_voted, registered_at)
		VALUES ($1, $2, 0, $3)
	`, electionID, req.Address, time.Now().Unix())
	if err != nil {
		slog.Error("failed to insert voter", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter")
		return
	}

	voterToken, err := h.tokens.Issue(electionID, req.Address)
	if err != nil {
		slog.Error("failed to issue voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter")
		return
	}

	metrics.VotersRegistered.Inc()
	slog.Info("voter registered", "election_id", electionID, "address", req.Address)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		Address:    req.Address,
		VoterToken: voterToken,
	})
}

// AdvancePhase handles POST /elections/{id}/advance
// Moves the workflow forward exactly one phase.
func (h *ElectionHandler) AdvancePhase(w http.ResponseWriter, r *http.Request) {
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

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(electionID, adminKey, h.reg.Config().AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	prev, next, err := ctrl.AdvancePhase(ctrl.Authority())
	if err != nil {
		ballotErrorResponse(w, err)
		return
	}

	_, err = h.reg.DB().Exec(`
		UPDATE election SET phase = $1 WHERE id = $2
	`, int(next), electionID)
	if err != nil {
		slog.Error("failed to persist phase", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	metrics.PhaseTransitions.WithLabelValues(next.String()).Inc()
	slog.Info("phase advanced", "election_id", electionID, "from", prev.String(), "to", next.String())

	middleware.JSONResponse(w, http.StatusOK, models.AdvancePhaseResponse{
		PreviousPhase: prev,
		NewPhase:      next,
	})
}
