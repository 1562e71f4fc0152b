package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"dario.cat/mergo"
	sq "github.com/Masterminds/squirrel"

	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/models"
)

const kvTable = "kv_entries"

// sessionRepository stores the wallet-session and signed-up-user envelopes as
// JSON blobs under fixed keys in a sqlite key-value table. Every envelope is
// read and written whole; corrupt JSON is treated as absence.
type sessionRepository struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSessionRepository constructs the sqlite-backed [SessionRepository].
func NewSessionRepository(db *sql.DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{db: db, logger: logger}
}

func (r *sessionRepository) readValue(ctx context.Context, key string) ([]byte, error) {
	query, args, err := sq.Select("value").
		From(kvTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (r *sessionRepository) writeValue(ctx context.Context, key string, value []byte) error {
	query, args, err := sq.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *sessionRepository) deleteValue(ctx context.Context, key string) error {
	query, args, err := sq.Delete(kvTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// Session implements [SessionRepository]. Missing or corrupt envelopes yield
// the zero session, never an error.
func (r *sessionRepository) Session(ctx context.Context) (models.WalletSession, error) {
	raw, err := r.readValue(ctx, models.WalletSessionKey)
	if err != nil {
		r.logger.Warn().Err(err).Msg("read wallet session")
		return models.WalletSession{}, nil
	}
	if raw == nil {
		return models.WalletSession{}, nil
	}

	var session models.WalletSession
	if err = json.Unmarshal(raw, &session); err != nil {
		r.logger.Warn().Err(err).Msg("corrupt wallet session envelope, treating as absent")
		return models.WalletSession{}, nil
	}
	return session, nil
}

// Token implements [SessionRepository]. Any failure yields "".
func (r *sessionRepository) Token(ctx context.Context) string {
	session, _ := r.Session(ctx)
	return session.Token
}

// Merge implements [SessionRepository]. It shallow-merges partial over the
// stored envelope; non-zero fields of partial win. When the current envelope
// cannot be read, partial alone is written back.
func (r *sessionRepository) Merge(ctx context.Context, partial models.WalletSession) error {
	current, err := r.Session(ctx)
	if err != nil {
		current = models.WalletSession{}
	}

	merged := current
	if err = mergo.Merge(&merged, partial, mergo.WithOverride); err != nil {
		// Last-resort recovery: persist the partial alone rather than lose
		// the update.
		r.logger.Warn().Err(err).Msg("merge wallet session failed, overwriting with partial")
		merged = partial
	}

	payload, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return r.writeValue(ctx, models.WalletSessionKey, payload)
}

// Clear implements [SessionRepository].
func (r *sessionRepository) Clear(ctx context.Context) error {
	return r.deleteValue(ctx, models.WalletSessionKey)
}

// SignedUpUser implements [SessionRepository].
func (r *sessionRepository) SignedUpUser(ctx context.Context) json.RawMessage {
	raw, err := r.readValue(ctx, models.SignedUpUserKey)
	if err != nil || raw == nil {
		return nil
	}
	if !json.Valid(raw) {
		return nil
	}
	return raw
}

// SaveSignedUpUser implements [SessionRepository].
func (r *sessionRepository) SaveSignedUpUser(ctx context.Context, user json.RawMessage) error {
	return r.writeValue(ctx, models.SignedUpUserKey, user)
}

// ClearSignedUpUser implements [SessionRepository].
func (r *sessionRepository) ClearSignedUpUser(ctx context.Context) error {
	return r.deleteValue(ctx, models.SignedUpUserKey)
}
