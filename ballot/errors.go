// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import "errors"

var (
	ErrUnauthorized       = errors.New("caller is not permitted to perform this operation")
	ErrInvalidPhase       = errors.New("operation not allowed in the current phase")
	ErrAlreadyRegistered  = errors.New("voter is already registered")
	ErrAlreadyVoted       = errors.New("voter has already cast a vote")
	ErrUnknownProposal    = errors.New("no proposal with that id")
	ErrNotEnoughVoters    = errors.New("at least one voter must be registered")
	ErrNotEnoughProposals = errors.New("at least one proposal must be registered")
	ErrTerminalPhase      = errors.New("election has already been tallied")
	ErrNoVotesCast        = errors.New("no votes were cast")
)
