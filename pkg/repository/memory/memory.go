package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/interfaces"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

// Memory is an in-memory repository for development and tests. It mirrors
// the postgres semantics exactly, including the duplicate-insert and
// missing-delete failure modes.
type Memory struct {
	welcome *messageCache
	intro   *messageCache
}

var _ interfaces.Repository = &Memory{}

// New creates an empty in-memory repository
func New() *Memory {
	return &Memory{
		welcome: newMessageCache(),
		intro:   newMessageCache(),
	}
}

// Welcome returns the welcome message cache
func (m *Memory) Welcome() interfaces.MessageCache {
	return m.welcome
}

// Intro returns the intro message cache
func (m *Memory) Intro() interfaces.MessageCache {
	return m.intro
}

// Close is a no-op for the in-memory repository
func (m *Memory) Close() error {
	return nil
}

type cacheKey struct {
	guildID types.GuildID
	userID  types.UserID
}

type messageCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]model.MessageRef
}

var _ interfaces.MessageCache = &messageCache{}

func newMessageCache() *messageCache {
	return &messageCache{
		entries: make(map[cacheKey]model.MessageRef),
	}
}

func (c *messageCache) Set(ctx context.Context, guildID types.GuildID, userID types.UserID, ref model.MessageRef) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{guildID: guildID, userID: userID}
	if _, exists := c.entries[key]; exists {
		return goerr.Wrap(types.ErrDuplicateEntry, "insert conflicts with existing entry",
			goerr.V("guild_id", guildID), goerr.V("user_id", userID))
	}

	c.entries[key] = ref
	return nil
}

func (c *messageCache) Get(ctx context.Context, guildID types.GuildID, userID types.UserID) (*model.MessageRef, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ref, exists := c.entries[cacheKey{guildID: guildID, userID: userID}]
	if !exists {
		return nil, nil
	}
	return &ref, nil
}

func (c *messageCache) GetAll(ctx context.Context, guildID types.GuildID) ([]model.CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var entries []model.CacheEntry
	for key, ref := range c.entries {
		if key.guildID == guildID {
			entries = append(entries, model.CacheEntry{User: key.userID, Ref: ref})
		}
	}
	return entries, nil
}

func (c *messageCache) Delete(ctx context.Context, guildID types.GuildID, userID types.UserID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{guildID: guildID, userID: userID}
	if _, exists := c.entries[key]; !exists {
		return goerr.Wrap(types.ErrEntryNotFound, "no entry to delete",
			goerr.V("guild_id", guildID), goerr.V("user_id", userID))
	}

	delete(c.entries, key)
	return nil
}
