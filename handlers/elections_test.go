// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/testutil"
)

// testEnv bundles the handler set around one registry so every test
// request hits the same live controllers.
type testEnv struct {
	reg       *Registry
	elections *ElectionHandler
	voting    *VotingHandler
	results   *ResultsHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })

	reg := NewRegistry(db, testutil.GetTestConfig())
	return &testEnv{
		reg:       reg,
		elections: NewElectionHandler(reg),
		voting:    NewVotingHandler(reg),
		results:   NewResultsHandler(reg),
	}
}

// createElection drives POST /elections and returns the id and admin key.
func createElection(t *testing.T, env *testEnv, name, authority string) (string, string) {
	t.Helper()

	req := testutil.MakeRequest("POST", "/elections", models.CreateElectionRequest{
		Name:      name,
		Authority: authority,
	}, nil)
	w := httptest.NewRecorder()
	env.elections.CreateElection(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Create election failed: %d - %s", w.Code, w.Body.String())
	}

	var resp models.CreateElectionResponse
	testutil.AssertJSON(t, w, &resp)
	return resp.ElectionID, resp.AdminKey
}

// registerVoter whitelists an address and returns its voter token.
func registerVoter(t *testing.T, env *testEnv, electionID, adminKey, address string) string {
	t.Helper()

	req := testutil.MakeRequest("POST", "/elections/"+electionID+"/voters",
		models.RegisterVoterRequest{Address: address},
		map[string]string{"X-Admin-Key": adminKey})
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()
	env.elections.RegisterVoter(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Register voter %q failed: %d - %s", address, w.Code, w.Body.String())
	}

	var resp models.RegisterVoterResponse
	testutil.AssertJSON(t, w, &resp)
	return resp.VoterToken
}

// advancePhase moves the election forward one phase, failing the test on
// any rejection.
func advancePhase(t *testing.T, env *testEnv, electionID, adminKey string) models.AdvancePhaseResponse {
	t.Helper()

	req := testutil.MakeRequest("POST", "/elections/"+electionID+"/advance", nil,
		map[string]string{"X-Admin-Key": adminKey})
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()
	env.elections.AdvancePhase(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Advance phase failed: %d - %s", w.Code, w.Body.String())
	}

	var resp models.AdvancePhaseResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

// registerProposal submits a proposal as the token's voter.
func registerProposal(t *testing.T, env *testEnv, electionID, token, description string) int {
	t.Helper()

	req := testutil.MakeRequest("POST", "/elections/"+electionID+"/proposals",
		models.RegisterProposalRequest{Description: description},
		map[string]string{"X-Voter-Token": token})
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()
	env.voting.RegisterProposal(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Register proposal %q failed: %d - %s", description, w.Code, w.Body.String())
	}

	var resp models.RegisterProposalResponse
	testutil.AssertJSON(t, w, &resp)
	return resp.ProposalID
}

// castVote votes for a proposal as the token's voter.
func castVote(t *testing.T, env *testEnv, electionID, token string, proposalID int) *httptest.ResponseRecorder {
	t.Helper()

	req := testutil.MakeRequest("POST", "/elections/"+electionID+"/votes",
		models.VoteRequest{ProposalID: &proposalID},
		map[string]string{"X-Voter-Token": token})
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()
	env.voting.Vote(w, req)
	return w
}

func TestCreateElection(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "valid election",
			body:           models.CreateElectionRequest{Name: "Board Vote", Authority: "chair"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           models.CreateElectionRequest{Authority: "chair"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing authority",
			body:           models.CreateElectionRequest{Name: "Board Vote"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           nil,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/elections", tt.body, nil)
			w := httptest.NewRecorder()
			env.elections.CreateElection(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.CreateElectionResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.ElectionID == "" || resp.AdminKey == "" {
					t.Error("Expected election_id and admin_key in response")
				}
			}
		})
	}
}

func TestGetElection(t *testing.T) {
	env := newTestEnv(t)
	electionID, adminKey := createElection(t, env, "Board Vote", "chair")
	registerVoter(t, env, electionID, adminKey, "alice")

	t.Run("existing election", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/elections/"+electionID, nil, nil)
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		env.elections.GetElection(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.Election
		testutil.AssertJSON(t, w, &resp)
		if resp.ID != electionID {
			t.Errorf("Expected id %s, got %s", electionID, resp.ID)
		}
		if resp.Authority != "chair" {
			t.Errorf("Expected authority chair, got %s", resp.Authority)
		}
		if resp.Phase != models.RegisteringVoters {
			t.Errorf("Expected phase RegisteringVoters, got %s", resp.Phase)
		}
		if resp.VoterCount != 1 {
			t.Errorf("Expected 1 voter, got %d", resp.VoterCount)
		}
	})

	t.Run("unknown election", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/elections/nope", nil, nil)
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()
		env.elections.GetElection(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestRegisterVoter(t *testing.T) {
	env := newTestEnv(t)
	electionID, adminKey := createElection(t, env, "Board Vote", "chair")

	t.Run("valid registration returns token", func(t *testing.T) {
		token := registerVoter(t, env, electionID, adminKey, "alice")
		if token == "" {
			t.Error("Expected a voter token")
		}
	})

	t.Run("invalid admin key", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/voters",
			models.RegisterVoterRequest{Address: "bob"},
			map[string]string{"X-Admin-Key": "wrong-key"})
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		env.elections.RegisterVoter(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("unknown election", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/elections/missing/voters",
			models.RegisterVoterRequest{Address: "bob"},
			map[string]string{"X-Admin-Key": adminKey})
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()
		env.elections.RegisterVoter(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("address too short", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/voters",
			models.RegisterVoterRequest{Address: "x"},
			map[string]string{"X-Admin-Key": adminKey})
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		env.elections.RegisterVoter(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("duplicate address", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/voters",
			models.RegisterVoterRequest{Address: "alice"},
			map[string]string{"X-Admin-Key": adminKey})
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		env.elections.RegisterVoter(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("wrong phase", func(t *testing.T) {
		advancePhase(t, env, electionID, adminKey)

		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/voters",
			models.RegisterVoterRequest{Address: "carol"},
			map[string]string{"X-Admin-Key": adminKey})
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		env.elections.RegisterVoter(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	})
}

func TestAdvancePhase(t *testing.T) {
	t.Run("invalid admin key", func(t *testing.T) {
		env := newTestEnv(t)
		electionID, _ := createElection(t, env, "Board Vote", "chair")

		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/advance", nil,
			map[string]string{"X-Admin-Key": "wrong-key"})
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		env.elections.AdvancePhase(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("unknown election", func(t *testing.T) {
		env := newTestEnv(t)

		req := testutil.MakeRequest("POST", "/elections/missing/advance", nil,
			map[string]string{"X-Admin-Key": "any-key"})
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()
		env.elections.AdvancePhase(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("refused with no voters", func(t *testing.T) {
		env := newTestEnv(t)
		electionID, adminKey := createElection(t, env, "Board Vote", "chair")

		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/advance", nil,
			map[string]string{"X-Admin-Key": adminKey})
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		env.elections.AdvancePhase(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("reports both phases", func(t *testing.T) {
		env := newTestEnv(t)
		electionID, adminKey := createElection(t, env, "Board Vote", "chair")
		registerVoter(t, env, electionID, adminKey, "alice")

		resp := advancePhase(t, env, electionID, adminKey)
		if resp.PreviousPhase != models.RegisteringVoters {
			t.Errorf("Expected previous phase RegisteringVoters, got %s", resp.PreviousPhase)
		}
		if resp.NewPhase != models.ProposalsRegistrationStarted {
			t.Errorf("Expected new phase ProposalsRegistrationStarted, got %s", resp.NewPhase)
		}
	})

	t.Run("refused past terminal phase", func(t *testing.T) {
		env := newTestEnv(t)
		electionID, adminKey := createElection(t, env, "Board Vote", "chair")
		token := registerVoter(t, env, electionID, adminKey, "alice")

		advancePhase(t, env, electionID, adminKey)
		registerProposal(t, env, electionID, token, "Proposal A")
		for i := 0; i < 4; i++ {
			advancePhase(t, env, electionID, adminKey)
		}

		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/advance", nil,
			map[string]string{"X-Admin-Key": adminKey})
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		env.elections.AdvancePhase(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	})
}
