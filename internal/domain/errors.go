package domain

import "errors"

// Sentinel errors for domain operations.
// They are propagated verbatim through item services; only their presence
// matters to the retry and fallback decorators.
var (
	// ErrServerOffline indicates the account API is unreachable
	ErrServerOffline = errors.New("account server is unreachable")

	// ErrUnauthorized indicates the API token was rejected
	ErrUnauthorized = errors.New("api token is invalid")

	// ErrCacheEmpty indicates nothing has been saved to the cache yet
	ErrCacheEmpty = errors.New("cache is empty")

	// ErrCacheDisabled is returned by caches that never hold data
	ErrCacheDisabled = errors.New("cache is disabled")
)
