package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

func TestConfig_Guild(t *testing.T) {
	cfg := &model.Config{
		ErrorsChannel: "1",
		Guilds: map[types.GuildID]model.GuildConfig{
			"100": {
				QuarantineRole:    "200",
				QuarantineChannel: "300",
				IntrosChannel:     "400",
			},
		},
	}

	t.Run("configured guild", func(t *testing.T) {
		guild, err := cfg.Guild("100")
		gt.NoError(t, err).Required()
		gt.Value(t, guild.QuarantineRole).Equal("200")
	})

	t.Run("unknown guild", func(t *testing.T) {
		_, err := cfg.Guild("999")
		gt.Error(t, err)
		if !errors.Is(err, types.ErrNoGuildConfig) {
			t.Errorf("error = %v, want ErrNoGuildConfig", err)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *model.Config {
		return &model.Config{
			ErrorsChannel: "1",
			Guilds: map[types.GuildID]model.GuildConfig{
				"100": {QuarantineRole: "200", QuarantineChannel: "300", IntrosChannel: "400"},
			},
			AutoDelete: []model.AutoDeleteRule{
				{Channel: "500", MaxAge: model.Duration(24 * time.Hour)},
			},
		}
	}

	t.Run("valid", func(t *testing.T) {
		gt.NoError(t, valid().Validate())
	})

	t.Run("bad role", func(t *testing.T) {
		cfg := valid()
		guild := cfg.Guilds["100"]
		guild.QuarantineRole = "not-a-snowflake"
		cfg.Guilds["100"] = guild
		gt.Error(t, cfg.Validate())
	})

	t.Run("zero max age", func(t *testing.T) {
		cfg := valid()
		cfg.AutoDelete[0].MaxAge = 0
		gt.Error(t, cfg.Validate())
	})
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d model.Duration
	gt.NoError(t, d.UnmarshalText([]byte("72h"))).Required()
	gt.Value(t, d.Duration()).Equal(72 * time.Hour)

	gt.Error(t, d.UnmarshalText([]byte("three days")))
}

func TestIntroFromFields(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		intro, err := model.IntroFromFields(map[string]string{
			model.FieldAboutMe:             "I like long walks on the beach",
			model.FieldPolyamoryExperience: "None yet",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, intro.AboutMe).Equal("I like long walks on the beach")
		gt.Value(t, intro.PolyamoryExperience).Equal("None yet")
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := model.IntroFromFields(map[string]string{
			model.FieldAboutMe: "hello",
		})
		gt.Error(t, err)
	})
}

func TestIntroFieldIDByLabel(t *testing.T) {
	gt.Value(t, model.IntroFieldIDByLabel(model.LabelAboutMe)).Equal(model.FieldAboutMe)
	gt.Value(t, model.IntroFieldIDByLabel(model.LabelPolyamoryExperience)).Equal(model.FieldPolyamoryExperience)
	gt.Value(t, model.IntroFieldIDByLabel("Something else")).Equal("")
}
