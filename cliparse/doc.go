// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags and
environment variables.

Flags take precedence over environment variables; a .env file in the
working directory is loaded first when present.

Required settings:

  - DATABASE_URL (-d): sqlite path or postgres connection string
  - ADMIN_KEY_SALT (-admin-salt): secret for admin key HMAC
  - TOKEN_SECRET (-token-secret): voter token signing secret

Optional settings:

  - PORT (-p): server port (default: 3324)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
*/
package cliparse
