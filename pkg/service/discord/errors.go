package discord

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

// translateErr maps a platform 404 to the distinguished types.ErrNotFound so
// callers can self-heal stale cache rows; everything else is wrapped as-is.
func translateErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return goerr.Wrap(types.ErrNotFound, msg, goerr.V("cause", err.Error()))
	}
	return goerr.Wrap(err, msg)
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
