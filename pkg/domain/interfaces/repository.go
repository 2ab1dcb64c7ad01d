package interfaces

import (
	"context"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

// MessageCache persists the correlation between a member and one onboarding
// message. Keys are (guild, user); at most one entry per key, enforced by the
// storage layer. Entries are never updated in place: a message ID is stable
// for its lifetime, so rows are only inserted and deleted.
type MessageCache interface {
	// Set inserts a new correlation row.
	// Returns types.ErrDuplicateEntry (wrapped) if a row already exists.
	Set(ctx context.Context, guildID types.GuildID, userID types.UserID, ref model.MessageRef) error

	// Get returns the cached location, or nil if there is none.
	Get(ctx context.Context, guildID types.GuildID, userID types.UserID) (*model.MessageRef, error)

	// GetAll returns every entry for a guild. Used by the sync sweep only.
	GetAll(ctx context.Context, guildID types.GuildID) ([]model.CacheEntry, error)

	// Delete removes the row.
	// Returns types.ErrEntryNotFound (wrapped) if no row existed.
	Delete(ctx context.Context, guildID types.GuildID, userID types.UserID) error
}

// Repository bundles one MessageCache per message kind
type Repository interface {
	Welcome() MessageCache
	Intro() MessageCache
	Close() error
}
