package types

import "github.com/m-mizutani/goerr/v2"

// Error taxonomy. Callers classify with errors.Is; everything else is an
// opaque transport or storage failure that propagates for reporting.
var (
	// ErrNoGuildConfig means the bot saw a guild it has no configuration for.
	// Configuration error: reported, never retried.
	ErrNoGuildConfig = goerr.New("no configuration for guild")

	// ErrMissingPermission means the bot or a member lacks a required channel
	// permission. Configuration error: reported, never retried.
	ErrMissingPermission = goerr.New("missing channel permission")

	// ErrNotFound means a platform object (message, role binding) is gone.
	// Recoverable: triggers cache self-healing.
	ErrNotFound = goerr.New("not found on platform")

	// ErrDuplicateEntry means a cache insert hit an existing (guild, user) row.
	// Logic error: callers must Get before Set.
	ErrDuplicateEntry = goerr.New("cache entry already exists")

	// ErrEntryNotFound means a cache delete matched no row.
	ErrEntryNotFound = goerr.New("cache entry not found")

	// ErrUnhandledInteraction means an interaction carried a custom ID outside
	// the known set.
	ErrUnhandledInteraction = goerr.New("unhandled interaction")
)
