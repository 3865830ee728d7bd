// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/metrics"
	"github.com/danielhkuo/ballotbox/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers around a shared controller registry
	reg := handlers.NewRegistry(db, cfg)
	electionHandler := handlers.NewElectionHandler(reg)
	votingHandler := handlers.NewVotingHandler(reg)
	resultsHandler := handlers.NewResultsHandler(reg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", metrics.Handler())

	// Election management (authority operations, requires X-Admin-Key)
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.CreateElection))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("POST /elections/{id}/voters", middleware.WithLogging(electionHandler.RegisterVoter))
	mux.HandleFunc("POST /elections/{id}/advance", middleware.WithLogging(electionHandler.AdvancePhase))

	// Voter operations (requires X-Voter-Token)
	mux.HandleFunc("POST /elections/{id}/proposals", middleware.WithLogging(votingHandler.RegisterProposal))
	mux.HandleFunc("POST /elections/{id}/votes", middleware.WithLogging(votingHandler.Vote))
	mux.HandleFunc("GET /elections/{id}/my-ballot", middleware.WithLogging(votingHandler.MyBallot))

	// Results retrieval (public, with sealed results)
	mux.HandleFunc("GET /elections/{id}/proposals", middleware.WithLogging(resultsHandler.GetProposals))
	mux.HandleFunc("GET /elections/{id}/winner", middleware.WithLogging(resultsHandler.GetWinner))
	mux.HandleFunc("GET /elections/{id}/events", middleware.WithLogging(resultsHandler.GetEvents))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}
