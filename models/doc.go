// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateElectionRequest: name, authority
  - RegisterVoterRequest: address
  - RegisterProposalRequest: description
  - VoteRequest: proposal_id

# Response Types

Types for JSON responses:

  - CreateElectionResponse: election_id, admin_key
  - RegisterVoterResponse: address, voter_token
  - AdvancePhaseResponse: previous_phase, new_phase
  - RegisterProposalResponse: proposal_id
  - VoteResponse: proposal_id, message
  - WinnerResponse: proposal_id, description, vote_count
  - ProposalsResponse: phase, proposals
  - EventsResponse: election_id, events
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Election: election metadata and workflow phase
  - Voter: whitelist entry with one-way has_voted latch
  - Proposal: named proposal with running vote count
  - Event: one append-only log entry per state change
  - Phase: the six-stage workflow enumeration

# Workflow Phases

Phases progress strictly forward, one step per transition:

	RegisteringVoters
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied

Phases marshal to JSON as their canonical names.
*/
package models
