package types

import (
	"regexp"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

var snowflakePattern = regexp.MustCompile(`^[0-9]{1,20}$`)

// GuildID represents a Discord guild (server) identifier
type GuildID string

// UserID represents a Discord user identifier
type UserID string

// ChannelID represents a Discord channel identifier
type ChannelID string

// RoleID represents a Discord role identifier
type RoleID string

// MessageID represents a Discord message identifier
type MessageID string

func validateSnowflake(kind, s string) error {
	if s == "" {
		return goerr.New(kind + " ID cannot be empty")
	}
	if !snowflakePattern.MatchString(s) {
		return goerr.New(kind+" ID must be a numeric snowflake", goerr.V("id", s))
	}
	return nil
}

func snowflakeToInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "snowflake does not fit in int64", goerr.V("id", s))
	}
	return n, nil
}

// Validate checks if the GuildID is a numeric snowflake
func (id GuildID) Validate() error { return validateSnowflake("guild", string(id)) }

// Int64 returns the snowflake as a signed 64-bit integer for storage
func (id GuildID) Int64() (int64, error) { return snowflakeToInt64(string(id)) }

// String returns the string representation of the GuildID
func (id GuildID) String() string { return string(id) }

// Validate checks if the UserID is a numeric snowflake
func (id UserID) Validate() error { return validateSnowflake("user", string(id)) }

// Int64 returns the snowflake as a signed 64-bit integer for storage
func (id UserID) Int64() (int64, error) { return snowflakeToInt64(string(id)) }

// String returns the string representation of the UserID
func (id UserID) String() string { return string(id) }

// Validate checks if the ChannelID is a numeric snowflake
func (id ChannelID) Validate() error { return validateSnowflake("channel", string(id)) }

// Int64 returns the snowflake as a signed 64-bit integer for storage
func (id ChannelID) Int64() (int64, error) { return snowflakeToInt64(string(id)) }

// String returns the string representation of the ChannelID
func (id ChannelID) String() string { return string(id) }

// Validate checks if the RoleID is a numeric snowflake
func (id RoleID) Validate() error { return validateSnowflake("role", string(id)) }

// String returns the string representation of the RoleID
func (id RoleID) String() string { return string(id) }

// Validate checks if the MessageID is a numeric snowflake
func (id MessageID) Validate() error { return validateSnowflake("message", string(id)) }

// Int64 returns the snowflake as a signed 64-bit integer for storage
func (id MessageID) Int64() (int64, error) { return snowflakeToInt64(string(id)) }

// String returns the string representation of the MessageID
func (id MessageID) String() string { return string(id) }

// GuildIDFromInt64 converts a stored 64-bit integer back to a GuildID
func GuildIDFromInt64(n int64) GuildID {
	return GuildID(strconv.FormatInt(n, 10))
}

// UserIDFromInt64 converts a stored 64-bit integer back to a UserID
func UserIDFromInt64(n int64) UserID {
	return UserID(strconv.FormatInt(n, 10))
}

// ChannelIDFromInt64 converts a stored 64-bit integer back to a ChannelID
func ChannelIDFromInt64(n int64) ChannelID {
	return ChannelID(strconv.FormatInt(n, 10))
}

// MessageIDFromInt64 converts a stored 64-bit integer back to a MessageID
func MessageIDFromInt64(n int64) MessageID {
	return MessageID(strconv.FormatInt(n, 10))
}
