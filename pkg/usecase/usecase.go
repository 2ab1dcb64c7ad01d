package usecase

import (
	"time"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/interfaces"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
)

// DefaultInactivityLimit is how long a quarantined member may stay without
// introducing themselves before the inactivity sweep removes them
const DefaultInactivityLimit = 30 * 24 * time.Hour

type UseCases struct {
	repo    interfaces.Repository
	discord interfaces.Discord
	config  *model.Config

	inactivityLimit time.Duration
	now             func() time.Time
}

type Option func(*UseCases)

// WithInactivityLimit overrides how long quarantined members may idle
func WithInactivityLimit(limit time.Duration) Option {
	return func(uc *UseCases) {
		uc.inactivityLimit = limit
	}
}

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, discord interfaces.Discord, config *model.Config, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:            repo,
		discord:         discord,
		config:          config,
		inactivityLimit: DefaultInactivityLimit,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
