// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth establishes caller identity for ballot operations.

The ballot controller compares plain identity strings; this package is
the request-authentication layer that turns credentials into those
identities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(electionID, salt)
	err := auth.ValidateAdminKey(electionID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same election ID and salt always produce the same key. This allows
validation without storing the key in the database. The holder of a valid
admin key acts as the election's authority principal.

# Voter Tokens

Voter tokens are signed JWTs (HS256) binding a voter address to one
election:

	tm := auth.NewTokenManager(secret, auth.DefaultTokenDuration)
	token, err := tm.Issue(electionID, address)
	claims, err := tm.Validate(token)

A token is issued when the authority registers the voter and is presented
as X-Voter-Token on proposal and vote requests.

# IP Hashing

HashIP produces a salted, truncated one-way hash of a client IP for vote
audit rows. Raw IPs are never stored.
*/
package auth
