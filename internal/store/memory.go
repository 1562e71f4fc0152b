package store

import (
	"context"
	"encoding/json"
	"sync"

	"dario.cat/mergo"

	"github.com/vericred/vericred-desk/models"
)

// memorySessionRepository is the in-memory [SessionRepository] used by tests
// and by ephemeral runs without a database path.
type memorySessionRepository struct {
	mu      sync.RWMutex
	session *models.WalletSession
	user    json.RawMessage
}

// NewMemorySessionRepository returns an empty in-memory session repository.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{}
}

func (r *memorySessionRepository) Session(_ context.Context) (models.WalletSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.session == nil {
		return models.WalletSession{}, nil
	}
	return *r.session, nil
}

func (r *memorySessionRepository) Token(ctx context.Context) string {
	session, _ := r.Session(ctx)
	return session.Token
}

func (r *memorySessionRepository) Merge(_ context.Context, partial models.WalletSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged := models.WalletSession{}
	if r.session != nil {
		merged = *r.session
	}
	if err := mergo.Merge(&merged, partial, mergo.WithOverride); err != nil {
		merged = partial
	}
	r.session = &merged
	return nil
}

func (r *memorySessionRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return nil
}

func (r *memorySessionRepository) SignedUpUser(_ context.Context) json.RawMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.user
}

func (r *memorySessionRepository) SaveSignedUpUser(_ context.Context, user json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = user
	return nil
}

func (r *memorySessionRepository) ClearSignedUpUser(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = nil
	return nil
}
