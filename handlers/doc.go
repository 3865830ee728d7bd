// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP API for ballotbox.

Three handler groups cover the election lifecycle:

  - ElectionHandler: create an election, inspect it, whitelist voters,
    and advance the workflow phase. Administrative operations require
    the X-Admin-Key header issued at creation time.
  - VotingHandler: register proposals, cast votes, and inspect the
    caller's own ballot. Voter operations require the X-Voter-Token
    header issued when the authority whitelists the address.
  - ResultsHandler: read proposals, the winner, and the event log.
    Vote counts and the winner stay sealed until the election reaches
    its terminal phase.

The Registry bridges handlers and state. Each election is a single
in-memory ballot.Controller, loaded lazily from the database and cached
for the life of the process. Handlers call the controller first; only
accepted operations are written through to the database.
*/
package handlers
