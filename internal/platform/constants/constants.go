// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer and token lifetime.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "veganplaylist-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "theveganplaylist.com"

	// AdminTokenTTL is the lifetime of an admin console access token.
	AdminTokenTTL = 12 * time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
)

// # Database Schemas

const (
	SchemaCatalog = "catalog"
)

// # Spotify Import

const (
	// SpotifyAccountsURL hosts the client-credentials token endpoint.
	SpotifyAccountsURL = "https://accounts.spotify.com"

	// SpotifyAPIBaseURL is the Web API root.
	SpotifyAPIBaseURL = "https://api.spotify.com/v1"

	// SpotifyRequestsPerSecond caps our outbound call rate to stay well
	// under the Web API's rolling 30-second window.
	SpotifyRequestsPerSecond = 5.0

	// SpotifyPageLimit is the page size used for album and track listing.
	SpotifyPageLimit = 50

	// SpotifyTokenSlack is subtracted from the reported token lifetime so
	// a token is never used within moments of its expiry.
	SpotifyTokenSlack = 30 * time.Second
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisKeyFilterOptions caches the browse-page filter options payload.
	RedisKeyFilterOptions = "catalog:filter_options"

	// FilterOptionsTTL bounds staleness of the cached filter options.
	FilterOptionsTTL = 10 * time.Minute
)
