// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"sync"
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// EventSink receives one Event per successful state change, in operation
// order. The sink is invoked synchronously while the controller lock is
// held, so it must not call back into the controller.
type EventSink func(models.Event)

// Controller owns the full state of one election: the voter whitelist,
// the proposal list, the workflow phase, and the running winner pointer.
// All operations are serialized through an internal mutex, so every call
// is an atomic step: the guards run to completion before any mutation,
// and a refused call leaves the state untouched and emits nothing.
//
// Each Controller is one election. Independent elections are independent
// Controllers.
type Controller struct {
	mu sync.Mutex

	authority string
	phase     models.Phase
	voters    map[string]*voterState
	proposals []models.Proposal

	// winner is the id of the proposal with the strictly highest vote
	// count seen so far. It is only meaningful once voteCast latches.
	winner   int
	voteCast bool

	seq  int
	sink EventSink
	now  func() time.Time
}

type voterState struct {
	hasVoted      bool
	votedProposal int
}

// New creates a Controller in the RegisteringVoters phase. The authority
// is the single principal allowed to register voters and advance phases.
// sink may be nil.
func New(authority string, sink EventSink) *Controller {
	return &Controller{
		authority: authority,
		phase:     models.RegisteringVoters,
		voters:    make(map[string]*voterState),
		sink:      sink,
		now:       time.Now,
	}
}

// Authority returns the election's administrative principal.
func (c *Controller) Authority() string {
	return c.authority
}

// Phase returns the current workflow phase.
func (c *Controller) Phase() models.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// VoterCount returns the number of registered voters.
func (c *Controller) VoterCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.voters)
}

// ProposalCount returns the number of registered proposals.
func (c *Controller) ProposalCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.proposals)
}

// Proposals returns a copy of the proposal list in registration order.
func (c *Controller) Proposals() []models.Proposal {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Proposal, len(c.proposals))
	copy(out, c.proposals)
	return out
}

// Voter returns the record for the given address, if registered.
func (c *Controller) Voter(address string) (models.Voter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.voters[address]
	if !ok {
		return models.Voter{}, false
	}
	out := models.Voter{Address: address, Registered: true, HasVoted: v.hasVoted}
	if v.hasVoted {
		id := v.votedProposal
		out.VotedProposal = &id
	}
	return out, true
}

// RegisterVoter adds target to the whitelist. Only the authority may
// register voters, only during RegisteringVoters, and only once per
// address. Emits a voter_registered event.
func (c *Controller) RegisterVoter(caller, target string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.authority {
		return ErrUnauthorized
	}
	if c.phase != models.RegisteringVoters {
		return ErrInvalidPhase
	}
	if _, exists := c.voters[target]; exists {
		return ErrAlreadyRegistered
	}

	c.voters[target] = &voterState{}
	c.emit(models.Event{Type: models.EventVoterRegistered, Voter: target})
	return nil
}

// AdvancePhase moves the workflow forward by exactly one step. Only the
// authority may advance. Leaving RegisteringVoters requires at least one
// voter; leaving ProposalsRegistrationStarted requires at least one
// proposal; VotesTallied is terminal. Emits a workflow_status_changed
// event and returns the previous and new phases.
func (c *Controller) AdvancePhase(caller string) (models.Phase, models.Phase, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.authority {
		return 0, 0, ErrUnauthorized
	}
	if c.phase.Terminal() {
		return 0, 0, ErrTerminalPhase
	}
	switch c.phase {
	case models.RegisteringVoters:
		if len(c.voters) == 0 {
			return 0, 0, ErrNotEnoughVoters
		}
	case models.ProposalsRegistrationStarted:
		if len(c.proposals) == 0 {
			return 0, 0, ErrNotEnoughProposals
		}
	}

	prev := c.phase
	c.phase = c.phase.Next()
	next := c.phase
	c.emit(models.Event{
		Type:      models.EventWorkflowStatusChanged,
		PrevPhase: &prev,
		NewPhase:  &next,
	})
	return prev, next, nil
}

// RegisterProposal appends a proposal with the next dense id, starting
// from 0. Only registered voters may propose, and only during
// ProposalsRegistrationStarted. Emits a proposal_registered event and
// returns the assigned id.
func (c *Controller) RegisterProposal(caller, description string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, registered := c.voters[caller]; !registered {
		return 0, ErrUnauthorized
	}
	if c.phase != models.ProposalsRegistrationStarted {
		return 0, ErrInvalidPhase
	}

	id := len(c.proposals)
	c.proposals = append(c.proposals, models.Proposal{ID: id, Description: description})
	c.emit(models.Event{Type: models.EventProposalRegistered, ProposalID: &id})
	return id, nil
}

// Vote records caller's single vote for proposalID during
// VotingSessionStarted. The winner pointer moves only when the new count
// strictly exceeds the current leader's count, so the first proposal to
// reach a given maximum keeps the lead on ties. Emits a voted event.
func (c *Controller) Vote(caller string, proposalID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, registered := c.voters[caller]
	if !registered {
		return ErrUnauthorized
	}
	if c.phase != models.VotingSessionStarted {
		return ErrInvalidPhase
	}
	if v.hasVoted {
		return ErrAlreadyVoted
	}
	if proposalID < 0 || proposalID >= len(c.proposals) {
		return ErrUnknownProposal
	}

	c.proposals[proposalID].VoteCount++
	v.hasVoted = true
	v.votedProposal = proposalID
	if !c.voteCast || c.proposals[proposalID].VoteCount > c.proposals[c.winner].VoteCount {
		c.winner = proposalID
	}
	c.voteCast = true

	id := proposalID
	c.emit(models.Event{Type: models.EventVoted, Voter: caller, ProposalID: &id})
	return nil
}

// Winner returns the winning proposal. It is only readable once the
// workflow has reached VotesTallied, and only if at least one vote was
// cast.
func (c *Controller) Winner() (models.Proposal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != models.VotesTallied {
		return models.Proposal{}, ErrInvalidPhase
	}
	if !c.voteCast {
		return models.Proposal{}, ErrNoVotesCast
	}
	return c.proposals[c.winner], nil
}

func (c *Controller) emit(ev models.Event) {
	c.seq++
	ev.Seq = c.seq
	ev.At = c.now().Unix()
	if c.sink != nil {
		c.sink(ev)
	}
}
