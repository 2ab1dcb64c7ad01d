package model

import "github.com/gatewarden-bot/gatewarden/pkg/domain/types"

// MessageRef locates a message on the platform
type MessageRef struct {
	Channel types.ChannelID
	Message types.MessageID
}

// CacheEntry is one row of a message cache table: the correlation between a
// member and the message representing part of their onboarding state
type CacheEntry struct {
	User types.UserID
	Ref  MessageRef
}
