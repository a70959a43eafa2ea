// Package constants provides shared constants used throughout the fieldguide
// codebase: timeouts, cache lifetimes, query limits, and client identification.
package constants

import "time"

// Timeout constants define the various timeout durations used by the pipeline.
const (
	// DefaultHTTPTimeout is the per-call timeout for requests to data provider APIs.
	DefaultHTTPTimeout = 15 * time.Second

	// FallbackHTTPTimeout is the per-call timeout for fallback endpoint requests.
	// Slightly tighter than the primary: by the time a fallback fires the user
	// has already waited through one failed call.
	FallbackHTTPTimeout = 10 * time.Second

	// GenerationTimeout bounds a single text-generation call.
	GenerationTimeout = 60 * time.Second

	// CommandTimeout is the default timeout for CLI commands.
	CommandTimeout = 2 * time.Minute
)

// Cache constants govern the per-source TTL cache.
const (
	// DefaultCacheTTL is how long a fetched partial record stays valid for an
	// identical normalized query.
	DefaultCacheTTL = 1 * time.Hour

	// CacheCleanupInterval is how often expired cache entries are purged.
	CacheCleanupInterval = 10 * time.Minute
)

// Query limit constants.
const (
	// DefaultResultLimit is the result-count limit applied when the caller
	// does not specify one.
	DefaultResultLimit = 5

	// MaxResultLimit is the upper bound accepted for a query's result limit.
	MaxResultLimit = 50
)

// UserAgent identifies fieldguide to the public data APIs it queries.
const UserAgent = "fieldguide/1.0 (+https://github.com/aviaryworks/fieldguide)"

// DefaultGenerationModel is the Gemini model used for explanations unless
// overridden in configuration.
const DefaultGenerationModel = "gemini-2.0-flash"
