package models

// Event type constants
const (
	EventVoterRegistered       = "voter_registered"
	EventWorkflowStatusChanged = "workflow_status_changed"
	EventProposalRegistered    = "proposal_registered"
	EventVoted                 = "voted"
)

// Request types

type CreateElectionRequest struct {
	Name      string `json:"name"`
	Authority string `json:"authority"`
}

type RegisterVoterRequest struct {
	Address string `json:"address"`
}

type RegisterProposalRequest struct {
	Description string `json:"description"`
}

// ProposalID is a pointer so that proposal 0 and a missing field can be
// told apart.
type VoteRequest struct {
	ProposalID *int `json:"proposal_id"`
}

// Response types

type CreateElectionResponse struct {
	ElectionID string `json:"election_id"`
	AdminKey   string `json:"admin_key"`
}

type RegisterVoterResponse struct {
	Address    string `json:"address"`
	VoterToken string `json:"voter_token"`
}

type AdvancePhaseResponse struct {
	PreviousPhase Phase `json:"previous_phase"`
	NewPhase      Phase `json:"new_phase"`
}

type RegisterProposalResponse struct {
	ProposalID int `json:"proposal_id"`
}

type VoteResponse struct {
	ProposalID int    `json:"proposal_id"`
	Message    string `json:"message"`
}

type WinnerResponse struct {
	ProposalID  int    `json:"proposal_id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}

type ProposalsResponse struct {
	Phase     Phase      `json:"phase"`
	Proposals []Proposal `json:"proposals"`
}

type EventsResponse struct {
	ElectionID string  `json:"election_id"`
	Events     []Event `json:"events"`
}

// Domain types

type Election struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Authority     string `json:"authority"`
	Phase         Phase  `json:"phase"`
	VoterCount    int    `json:"voter_count"`
	ProposalCount int    `json:"proposal_count"`
	CreatedAt     int64  `json:"created_at"`
}

// Voter is a whitelisted principal. The record is created once at
// registration and mutated exactly once, when the voter casts a vote.
type Voter struct {
	Address       string `json:"address"`
	Registered    bool   `json:"registered"`
	HasVoted      bool   `json:"has_voted"`
	VotedProposal *int   `json:"voted_proposal,omitempty"`
}

// Proposal ids are dense and assigned in registration order from 0.
// The description never changes after registration.
type Proposal struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}

// Event is one entry of an election's append-only event log. Exactly one
// event is recorded per successful state change, in operation order.
// Fields not relevant to the event type are omitted.
type Event struct {
	Seq        int    `json:"seq"`
	Type       string `json:"type"`
	Voter      string `json:"voter,omitempty"`
	PrevPhase  *Phase `json:"previous_phase,omitempty"`
	NewPhase   *Phase `json:"new_phase,omitempty"`
	ProposalID *int   `json:"proposal_id,omitempty"`
	At         int64  `json:"at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
