package types_test

import (
	"errors"
	"testing"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

func TestGuildID_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      types.GuildID
		wantErr bool
	}{
		{"valid snowflake", "1015710854266167447", false},
		{"single digit", "7", false},
		{"empty", "", true},
		{"negative", "-3", true},
		{"letters", "guild", true},
		{"too long", "123456789012345678901", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("GuildID.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMessageID_Int64(t *testing.T) {
	id := types.MessageID("1015710854266167447")
	n, err := id.Int64()
	if err != nil {
		t.Fatalf("Int64() error = %v", err)
	}
	if got := types.MessageIDFromInt64(n); got != id {
		t.Errorf("round trip = %v, want %v", got, id)
	}
}

func TestParseInteractionKind(t *testing.T) {
	tests := []struct {
		name     string
		customID string
		want     types.InteractionKind
		wantErr  bool
	}{
		{"quarantine modal", "onboarding_intro_quarantine", types.InteractionIntroQuarantineModal, false},
		{"slash modal", "onboarding_intro_slash", types.InteractionIntroSlashModal, false},
		{"button", "onboarding_intro_quarantine_button", types.InteractionIntroButton, false},
		{"unknown", "onboarding_other", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseInteractionKind(tt.customID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInteractionKind() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, types.ErrUnhandledInteraction) {
				t.Errorf("error = %v, want ErrUnhandledInteraction", err)
			}
			if got != tt.want {
				t.Errorf("ParseInteractionKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessageKind_IsValid(t *testing.T) {
	for _, kind := range types.AllMessageKinds() {
		if !kind.IsValid() {
			t.Errorf("%v should be valid", kind)
		}
	}
	if types.MessageKind("farewell").IsValid() {
		t.Error("unknown kind should be invalid")
	}
}
