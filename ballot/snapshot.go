// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// Snapshot is the full persistent state of a Controller, used to carry
// an election across process restarts.
type Snapshot struct {
	Authority string
	Phase     models.Phase
	Voters    []models.Voter
	Proposals []models.Proposal
	Winner    int
	VoteCast  bool
	EventSeq  int
}

// Snapshot captures the controller state under the lock.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	voters := make([]models.Voter, 0, len(c.voters))
	for addr, v := range c.voters {
		voter := models.Voter{Address: addr, Registered: true, HasVoted: v.hasVoted}
		if v.hasVoted {
			id := v.votedProposal
			voter.VotedProposal = &id
		}
		voters = append(voters, voter)
	}

	proposals := make([]models.Proposal, len(c.proposals))
	copy(proposals, c.proposals)

	return Snapshot{
		Authority: c.authority,
		Phase:     c.phase,
		Voters:    voters,
		Proposals: proposals,
		Winner:    c.winner,
		VoteCast:  c.voteCast,
		EventSeq:  c.seq,
	}
}

// Restore rebuilds a live Controller from a snapshot. Event sequence
// numbers continue from where the snapshot left off.
func Restore(snap Snapshot, sink EventSink) *Controller {
	c := &Controller{
		authority: snap.Authority,
		phase:     snap.Phase,
		voters:    make(map[string]*voterState, len(snap.Voters)),
		proposals: make([]models.Proposal, len(snap.Proposals)),
		winner:    snap.Winner,
		voteCast:  snap.VoteCast,
		seq:       snap.EventSeq,
		sink:      sink,
		now:       time.Now,
	}
	copy(c.proposals, snap.Proposals)
	for _, v := range snap.Voters {
		state := &voterState{hasVoted: v.HasVoted}
		if v.VotedProposal != nil {
			state.votedProposal = *v.VotedProposal
		}
		c.voters[v.Address] = state
	}
	return c
}
