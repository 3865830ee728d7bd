// Package metrics exposes prometheus counters for election activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ElectionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ballotbox_elections_created_total",
		Help: "Number of elections created.",
	})

	VotersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ballotbox_voters_registered_total",
		Help: "Number of voters registered across all elections.",
	})

	ProposalsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ballotbox_proposals_registered_total",
		Help: "Number of proposals registered across all elections.",
	})

	VotesCast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ballotbox_votes_cast_total",
		Help: "Number of votes cast across all elections.",
	})

	PhaseTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ballotbox_phase_transitions_total",
		Help: "Number of workflow transitions, labeled by the phase entered.",
	}, []string{"phase"})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
