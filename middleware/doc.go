// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

  - WithLogging: request logging with method, path, status, duration
  - CORS: cross-origin headers and preflight handling
  - JSONResponse / ErrorResponse: JSON writers
  - ParseJSONBody: request body decoding
  - GetClientIP: client IP extraction behind proxies
*/
package middleware
