// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballotbox API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health and observability:

	GET /health
	GET /metrics

Election management (authority, requires X-Admin-Key):

	POST /elections               - Create election
	GET  /elections/{id}          - Election info (public)
	POST /elections/{id}/voters   - Whitelist a voter
	POST /elections/{id}/advance  - Advance workflow phase

Voter operations (requires X-Voter-Token):

	POST /elections/{id}/proposals - Register proposal
	POST /elections/{id}/votes     - Cast vote
	GET  /elections/{id}/my-ballot - Caller's voter record

Results (public):

	GET /elections/{id}/proposals - Proposal list (counts sealed until tallied)
	GET /elections/{id}/winner    - Winner (tallied elections only)
	GET /elections/{id}/events    - Append-only event log

# Handler Initialization

The router creates one handlers.Registry and injects it into each
handler group:

	reg := handlers.NewRegistry(db, cfg)
	electionHandler := handlers.NewElectionHandler(reg)
	votingHandler := handlers.NewVotingHandler(reg)
	resultsHandler := handlers.NewResultsHandler(reg)
*/
package router
