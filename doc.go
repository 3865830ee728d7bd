// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballotbox API server.

Ballotbox is a single-authority election service: an authority
whitelists voters, voters register proposals and cast one vote each,
and the workflow moves through a fixed six-phase lifecycle ending in a
tallied winner.

# Starting the Server

The server runs on an embedded sqlite database by default:

	go run main.go -d ballotbox.db

Or against PostgreSQL:

	go run main.go -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - TOKEN_SECRET (--token-secret): Secret for voter token signing

Optional settings:

  - PORT (-p): Server port (default: 3324)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - LOG_LEVEL: debug, info, warn, or error

# Architecture

The server uses a handler-based architecture with dependency injection:

  - ballot: the core election state machine
  - handlers: HTTP request handlers (elections, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin keys and voter tokens
  - db: Schema creation and election loading
  - cliparse: Configuration parsing
  - logging, metrics: slog setup and Prometheus counters

See package documentation for each component.
*/
package main
