package models

import (
	"encoding/json"
	"fmt"
)

// Phase is one stage of the linear election workflow. Phases only ever
// move forward, one step at a time, from RegisteringVoters to the
// terminal VotesTallied.
type Phase int

const (
	RegisteringVoters Phase = iota
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied
)

var phaseNames = [...]string{
	"RegisteringVoters",
	"ProposalsRegistrationStarted",
	"ProposalsRegistrationEnded",
	"VotingSessionStarted",
	"VotingSessionEnded",
	"VotesTallied",
}

// Valid reports whether p is one of the six workflow phases.
func (p Phase) Valid() bool {
	return p >= RegisteringVoters && p <= VotesTallied
}

// Terminal reports whether p is the final phase of the workflow.
func (p Phase) Terminal() bool {
	return p == VotesTallied
}

// Next returns the phase one step forward. Callers must not advance past
// VotesTallied.
func (p Phase) Next() Phase {
	return p + 1
}

func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// ParsePhase converts a canonical phase name back to its Phase value.
func ParsePhase(s string) (Phase, error) {
	for i, name := range phaseNames {
		if name == s {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

// MarshalJSON renders the phase as its canonical name.
func (p Phase) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid phase %d", int(p))
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts a canonical phase name.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
