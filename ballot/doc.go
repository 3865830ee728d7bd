// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot implements the single-authority election state machine.

A Controller runs one election through a linear workflow:

	RegisteringVoters → ProposalsRegistrationStarted → ProposalsRegistrationEnded
	  → VotingSessionStarted → VotingSessionEnded → VotesTallied

Every operation takes the caller's identity explicitly; authorization is
an equality check against the authority or a membership check against the
voter whitelist. The caller identity is established upstream (admin keys
and voter tokens in the auth package).

# Invariants

  - A voter record must exist before that voter may propose or vote.
  - Each voter votes at most once; has_voted never unlatches.
  - Proposal ids are dense, assigned in registration order from 0.
  - Phases advance strictly forward, exactly one step per call, gated by
    readiness (voters > 0, then proposals > 0) and never past VotesTallied.
  - The winner pointer always references the proposal with the strictly
    highest count seen so far; on ties, the first proposal to reach the
    maximum keeps the lead. This is the only tie-break rule.
  - The winner is readable only at VotesTallied, and only if any vote was
    cast.

# Errors

All failures are precondition rejections: the call returns one of the
package sentinel errors and leaves the state untouched, with no event
emitted. There is no partial application.

# Events

One structured event per successful state change is delivered to the
configured EventSink, in operation order: voter_registered,
workflow_status_changed, proposal_registered, voted.
*/
package ballot
