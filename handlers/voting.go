// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/metrics"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type VotingHandler struct {
	reg    *Registry
	tokens *auth.TokenManager
}

func NewVotingHandler(reg *Registry) *VotingHandler {
	return &VotingHandler{
		reg:    reg,
		tokens: auth.NewTokenManager(reg.Config().TokenSecret, auth.DefaultTokenDuration),
	}
}

// authenticate resolves the caller identity from the X-Voter-Token
// header. The token must be valid and bound to this election.
func (h *VotingHandler) authenticate(w http.ResponseWriter, r *http.Request, electionID string) (*auth.VoterClaims, bool) {
	token := r.Header.Get("X-Voter-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return nil, false
	}

	claims, err := h.tokens.Validate(token)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token")
		return nil, false
	}
	if claims.ElectionID != electionID {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Voter token is for a different election")
		return nil, false
	}
	return claims, true
}

// RegisterProposal handles POST /elections/{id}/proposals
func (h *VotingHandler) RegisterProposal(w http.ResponseWriter, r *http.Request) {
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

	claims, ok := h.authenticate(w, r, electionID)
	if !ok {
		return
	}

	var req models.RegisterProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description is required")
		return
	}

	proposalID, err := ctrl.RegisterProposal(claims.Address, req.Description)
	if err != nil {
		ballotErrorResponse(w, err)
		return
	}

	_, err = h.reg.DB().Exec(`
		INSERT INTO proposal (election_id, id, description, vote_count, registered_at)
		VALUES ($1, $2, $3, 0, $4)
	`, electionID, proposalID, req.Description, time.Now().Unix())
	if err != nil {
		slog.Error("failed to insert proposal", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register proposal")
		return
	}

	metrics.ProposalsRegistered.Inc()
	slog.Info("proposal registered", "election_id", electionID, "proposal_id", proposalID, "proposer", claims.Address)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterProposalResponse{
		ProposalID: proposalID,
	})
}

// Vote handles POST /elections/{id}/votes
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
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

	claims, ok := h.authenticate(w, r, electionID)
	if !ok {
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ProposalID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal_id is required")
		return
	}
	proposalID := *req.ProposalID

	// The vote lock spans the controller commit and the write-through,
	// so votes persist in commit order and a stale snapshot can never
	// overwrite a later vote's rows.
	lock := h.reg.VoteLock(electionID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctrl.Vote(claims.Address, proposalID); err != nil {
		ballotErrorResponse(w, err)
		return
	}

	// Write-through in one transaction: proposal count, voter latch with
	// audit fields, and the election's winner pointer all land together,
	// so a crash can never persist a counted vote without its latch.
	clientIP := middleware.GetClientIP(r)
	ipHash := auth.HashIP(clientIP, h.reg.Config().AdminKeySalt)
	snap := ctrl.Snapshot()

	tx, err := h.reg.DB().Begin()
	if err != nil {
		slog.Error("failed to begin vote transaction", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE proposal SET vote_count = vote_count + 1
		WHERE election_id = $1 AND id = $2
	`, electionID, proposalID)
	if err != nil {
		slog.Error("failed to persist vote count", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = tx.Exec(`
		UPDATE voter SET has_voted = 1, voted_proposal = $1, ip_hash = $2, user_agent = $3
		WHERE election_id = $4 AND address = $5
	`, proposalID, ipHash, r.UserAgent(), electionID, claims.Address)
	if err != nil {
		slog.Error("failed to persist voter latch", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = tx.Exec(`
		UPDATE election SET winner_proposal = $1, vote_cast = 1 WHERE id = $2
	`, snap.Winner, electionID)
	if err != nil {
		slog.Error("failed to persist winner pointer", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit vote transaction", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	metrics.VotesCast.Inc()
	slog.Info("vote cast", "election_id", electionID, "voter", claims.Address, "proposal_id", proposalID)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		ProposalID: proposalID,
		Message:    "vote recorded",
	})
}

// MyBallot handles GET /elections/{id}/my-ballot
// Returns the caller's own voter record.
func (h *VotingHandler) MyBallot(w http.ResponseWriter, r *http.Request) {
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

	claims, ok := h.authenticate(w, r, electionID)
	if !ok {
		return
	}

	voter, registered := ctrl.Voter(claims.Address)
	if !registered {
		// A valid token for an unregistered address should not happen,
		// but a rebuilt database can orphan tokens.
		middleware.ErrorResponse(w, http.StatusNotFound, "Not registered for this election")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voter)
}
