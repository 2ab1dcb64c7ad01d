package types

import "github.com/m-mizutani/goerr/v2"

// InteractionKind is the closed set of component/modal custom IDs the bot
// handles. Custom IDs arriving from the gateway are parsed into this type
// exactly once, at the controller boundary.
type InteractionKind string

const (
	// InteractionIntroButton is the "Introduce yourself" button on welcome messages
	InteractionIntroButton InteractionKind = "onboarding_intro_quarantine_button"
	// InteractionIntroQuarantineModal is the intro modal opened from the welcome button
	InteractionIntroQuarantineModal InteractionKind = "onboarding_intro_quarantine"
	// InteractionIntroSlashModal is the intro modal opened from the /intro command
	InteractionIntroSlashModal InteractionKind = "onboarding_intro_slash"
)

// ParseInteractionKind maps a raw custom ID to an InteractionKind.
// Unknown IDs are an error so that nothing is silently ignored.
func ParseInteractionKind(customID string) (InteractionKind, error) {
	kind := InteractionKind(customID)
	switch kind {
	case InteractionIntroButton, InteractionIntroQuarantineModal, InteractionIntroSlashModal:
		return kind, nil
	default:
		return "", goerr.Wrap(ErrUnhandledInteraction, "unknown custom ID", goerr.V("custom_id", customID))
	}
}

// String returns the custom ID carried on the wire
func (k InteractionKind) String() string {
	return string(k)
}
