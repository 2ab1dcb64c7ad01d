package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/interfaces"
)

const (
	welcomeTable = "onboarding_welcome_messages"
	introTable   = "onboarding_intro_messages"
)

// Store is a PostgreSQL-backed repository. One table per message kind,
// primary key (guild_id, user_id), snowflakes stored as BIGINT.
type Store struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType

	welcome *messageCache
	intro   *messageCache
}

var _ interfaces.Repository = &Store{}

// New connects to PostgreSQL and returns the repository
func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to postgres")
	}

	s := &Store{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
	s.welcome = &messageCache{store: s, table: welcomeTable}
	s.intro = &messageCache{store: s, table: introTable}

	return s, nil
}

// Welcome returns the welcome message cache
func (s *Store) Welcome() interfaces.MessageCache {
	return s.welcome
}

// Intro returns the intro message cache
func (s *Store) Intro() interfaces.MessageCache {
	return s.intro
}

// Close releases the database connection pool
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close postgres connection")
	}
	return nil
}

// Migrate creates the cache tables if they do not exist
func (s *Store) Migrate(ctx context.Context) error {
	for _, table := range []string{welcomeTable, introTable} {
		ddl := `create table if not exists ` + table + ` (
			guild_id bigint not null,
			user_id bigint not null,
			channel_id bigint not null,
			message_id bigint not null,
			primary key (guild_id, user_id)
		)`
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return goerr.Wrap(err, "failed to create table", goerr.V("table", table))
		}
	}
	return nil
}

func (s *Store) selectBuilder(ctx context.Context, dest any, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return goerr.Wrap(err, "failed to build select query")
	}
	return s.db.SelectContext(ctx, dest, query, args...)
}

func (s *Store) getBuilder(ctx context.Context, dest any, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return goerr.Wrap(err, "failed to build select query")
	}
	return s.db.GetContext(ctx, dest, query, args...)
}
