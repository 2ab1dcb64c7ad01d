package types

// MessageKind identifies which onboarding message a cache entry represents
type MessageKind string

const (
	// KindWelcome is the welcome message posted in the quarantine channel
	KindWelcome MessageKind = "welcome"
	// KindIntro is the published introduction in the intros channel
	KindIntro MessageKind = "intro"
)

// AllMessageKinds returns all valid message kinds
func AllMessageKinds() []MessageKind {
	return []MessageKind{KindWelcome, KindIntro}
}

// IsValid checks if the message kind is valid
func (k MessageKind) IsValid() bool {
	switch k {
	case KindWelcome, KindIntro:
		return true
	default:
		return false
	}
}

// String returns the string representation of the message kind
func (k MessageKind) String() string {
	return string(k)
}
