package postgres

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/interfaces"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

// pq error code for unique_violation
const codeUniqueViolation = "23505"

// messageCache implements one kind's cache over a single table. Both kinds
// share this implementation; only the table name differs.
type messageCache struct {
	store *Store
	table string
}

var _ interfaces.MessageCache = &messageCache{}

type cacheRow struct {
	GuildID   int64 `db:"guild_id"`
	UserID    int64 `db:"user_id"`
	ChannelID int64 `db:"channel_id"`
	MessageID int64 `db:"message_id"`
}

func cacheKey(guildID types.GuildID, userID types.UserID) (int64, int64, error) {
	guild, err := guildID.Int64()
	if err != nil {
		return 0, 0, err
	}
	user, err := userID.Int64()
	if err != nil {
		return 0, 0, err
	}
	return guild, user, nil
}

func (c *messageCache) Set(ctx context.Context, guildID types.GuildID, userID types.UserID, ref model.MessageRef) error {
	guild, user, err := cacheKey(guildID, userID)
	if err != nil {
		return err
	}
	channel, err := ref.Channel.Int64()
	if err != nil {
		return err
	}
	message, err := ref.Message.Int64()
	if err != nil {
		return err
	}

	query, args, err := c.store.builder.
		Insert(c.table).
		Columns("guild_id", "user_id", "channel_id", "message_id").
		Values(guild, user, channel, message).
		ToSql()
	if err != nil {
		return goerr.Wrap(err, "failed to build insert query")
	}

	if _, err := c.store.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
			return goerr.Wrap(types.ErrDuplicateEntry, "insert conflicts with existing row",
				goerr.V("table", c.table), goerr.V("guild_id", guildID), goerr.V("user_id", userID))
		}
		return goerr.Wrap(err, "failed to insert cache entry", goerr.V("table", c.table))
	}

	return nil
}

func (c *messageCache) Get(ctx context.Context, guildID types.GuildID, userID types.UserID) (*model.MessageRef, error) {
	guild, user, err := cacheKey(guildID, userID)
	if err != nil {
		return nil, err
	}

	var row cacheRow
	err = c.store.getBuilder(ctx, &row, c.store.builder.
		Select("guild_id", "user_id", "channel_id", "message_id").
		From(c.table).
		Where(sq.Eq{"guild_id": guild, "user_id": user}))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select cache entry", goerr.V("table", c.table))
	}

	return &model.MessageRef{
		Channel: types.ChannelIDFromInt64(row.ChannelID),
		Message: types.MessageIDFromInt64(row.MessageID),
	}, nil
}

func (c *messageCache) GetAll(ctx context.Context, guildID types.GuildID) ([]model.CacheEntry, error) {
	guild, err := guildID.Int64()
	if err != nil {
		return nil, err
	}

	var rows []cacheRow
	err = c.store.selectBuilder(ctx, &rows, c.store.builder.
		Select("guild_id", "user_id", "channel_id", "message_id").
		From(c.table).
		Where(sq.Eq{"guild_id": guild}))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select cache entries", goerr.V("table", c.table))
	}

	entries := make([]model.CacheEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.CacheEntry{
			User: types.UserIDFromInt64(row.UserID),
			Ref: model.MessageRef{
				Channel: types.ChannelIDFromInt64(row.ChannelID),
				Message: types.MessageIDFromInt64(row.MessageID),
			},
		})
	}

	return entries, nil
}

func (c *messageCache) Delete(ctx context.Context, guildID types.GuildID, userID types.UserID) error {
	guild, user, err := cacheKey(guildID, userID)
	if err != nil {
		return err
	}

	query, args, err := c.store.builder.
		Delete(c.table).
		Where(sq.Eq{"guild_id": guild, "user_id": user}).
		ToSql()
	if err != nil {
		return goerr.Wrap(err, "failed to build delete query")
	}

	result, err := c.store.db.ExecContext(ctx, query, args...)
	if err != nil {
		return goerr.Wrap(err, "failed to delete cache entry", goerr.V("table", c.table))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return goerr.Wrap(types.ErrEntryNotFound, "no rows deleted",
			goerr.V("table", c.table), goerr.V("guild_id", guildID), goerr.V("user_id", userID))
	}

	return nil
}
