package store

import (
	"context"
	"encoding/json"

	"github.com/vericred/vericred-desk/models"
)

// SessionRepository owns the durable client-side session envelopes. All call
// sites go through this interface so tests can substitute the in-memory
// implementation.
//
// Failure semantics follow the storage contract: corrupt or missing data is
// "no session", never an error surfaced to the user.
type SessionRepository interface {
	// Session returns the stored wallet-session envelope. A missing or
	// corrupt envelope yields the zero value and no error.
	Session(ctx context.Context) (models.WalletSession, error)

	// Token returns the bearer token from the stored envelope, or "" on any
	// read or parse failure. It never returns an error.
	Token(ctx context.Context) string

	// Merge shallow-merges partial over the stored envelope and writes the
	// result back. When the current envelope cannot be read or parsed, the
	// partial alone is written as a last-resort recovery.
	Merge(ctx context.Context, partial models.WalletSession) error

	// Clear deletes the wallet-session envelope entirely.
	Clear(ctx context.Context) error

	// SignedUpUser returns the raw signed-up user cache blob, or nil when
	// absent or corrupt.
	SignedUpUser(ctx context.Context) json.RawMessage

	// SaveSignedUpUser overwrites the signed-up user cache blob.
	SaveSignedUpUser(ctx context.Context, user json.RawMessage) error

	// ClearSignedUpUser deletes the signed-up user cache.
	ClearSignedUpUser(ctx context.Context) error
}
