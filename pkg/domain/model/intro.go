package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// Field IDs used in modal inputs and their visible labels used as embed field
// names. The mapping is fixed and bidirectional: an intro rendered into an
// embed can always be parsed back out of it.
const (
	FieldAboutMe             = "about_me"
	FieldPolyamoryExperience = "polyamory_experience"

	LabelAboutMe             = "About me"
	LabelPolyamoryExperience = "Polyamory experience"
	LabelIntroduceYourself   = "Introduce yourself"
)

// Intro is the content a member submitted about themselves. The published
// chat message is the source of record; this value object exists in memory
// only, sourced either from modal fields or parsed back from an embed.
type Intro struct {
	AboutMe             string
	PolyamoryExperience string
}

// IntroFromFields builds an Intro from (field ID, value) pairs, as decoded
// from a modal submission. Unknown field IDs are ignored by the caller;
// missing required fields are an error.
func IntroFromFields(fields map[string]string) (*Intro, error) {
	aboutMe, ok := fields[FieldAboutMe]
	if !ok {
		return nil, goerr.New("missing intro field", goerr.V("field", FieldAboutMe))
	}
	experience, ok := fields[FieldPolyamoryExperience]
	if !ok {
		return nil, goerr.New("missing intro field", goerr.V("field", FieldPolyamoryExperience))
	}

	return &Intro{
		AboutMe:             aboutMe,
		PolyamoryExperience: experience,
	}, nil
}

// IntroFieldIDByLabel maps an embed field label back to its modal field ID.
// Returns "" for labels that are not part of the intro mapping.
func IntroFieldIDByLabel(label string) string {
	switch label {
	case LabelAboutMe:
		return FieldAboutMe
	case LabelPolyamoryExperience:
		return FieldPolyamoryExperience
	default:
		return ""
	}
}
