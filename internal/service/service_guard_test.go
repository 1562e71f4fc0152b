package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/store"
	"github.com/vericred/vericred-desk/models"
)

// Header+payload of a JWT carrying only {"sub":"0xabc"}; no exp claim means
// the token never expires client-side.
const guardJWTNoExp = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiIweGFiYyJ9.sig"

func newTestGuardSvc(t *testing.T) (*guardService, store.SessionRepository) {
	t.Helper()
	sessions := store.NewMemorySessionRepository()
	svc := NewGuardService(sessions, logger.Nop()).(*guardService)
	return svc, sessions
}

func TestGuard_AllowsFreshAuthenticatedSession(t *testing.T) {
	svc, sessions := newTestGuardSvc(t)
	ctx := context.Background()

	require.NoError(t, sessions.Merge(ctx, models.WalletSession{
		Address:     "0x1111222233334444555566667777888899990000",
		IsConnected: true,
		Timestamp:   time.Now().UnixMilli(),
		Token:       guardJWTNoExp,
	}))

	assert.Equal(t, DecisionAllow, svc.CheckWallet(ctx))
	assert.Equal(t, DecisionAllow, svc.CheckToken(ctx))
	assert.Equal(t, DecisionAllow, svc.Check(ctx))
}

func TestGuard_ExpiredSessionIsClearedAndRedirected(t *testing.T) {
	svc, sessions := newTestGuardSvc(t)
	ctx := context.Background()

	createdAt := time.Now()
	require.NoError(t, sessions.Merge(ctx, models.WalletSession{
		Address:     "0x1111222233334444555566667777888899990000",
		IsConnected: true,
		Timestamp:   createdAt.UnixMilli(),
		Token:       guardJWTNoExp,
	}))

	// Pin the guard clock just past the session lifetime.
	svc.now = func() time.Time { return createdAt.Add(models.SessionMaxAge + time.Minute) }

	assert.Equal(t, DecisionRedirectToEntry, svc.CheckWallet(ctx))

	// The stale envelope is gone, so the next login starts clean.
	session, err := sessions.Session(ctx)
	require.NoError(t, err)
	assert.Empty(t, session.Address)
	assert.Empty(t, session.Token)
}

func TestGuard_SessionJustInsideLifetimeAllowed(t *testing.T) {
	svc, sessions := newTestGuardSvc(t)
	ctx := context.Background()

	createdAt := time.Now()
	require.NoError(t, sessions.Merge(ctx, models.WalletSession{
		IsConnected: true,
		Timestamp:   createdAt.UnixMilli(),
	}))

	svc.now = func() time.Time { return createdAt.Add(models.SessionMaxAge - time.Minute) }

	assert.Equal(t, DecisionAllow, svc.CheckWallet(ctx))
}

func TestGuard_DisconnectedSessionRedirects(t *testing.T) {
	svc, sessions := newTestGuardSvc(t)
	ctx := context.Background()

	require.NoError(t, sessions.Merge(ctx, models.WalletSession{
		Address:   "0x1111222233334444555566667777888899990000",
		Timestamp: time.Now().UnixMilli(),
		Token:     guardJWTNoExp,
	}))

	assert.Equal(t, DecisionRedirectToEntry, svc.CheckWallet(ctx))
	assert.Equal(t, DecisionRedirectToEntry, svc.Check(ctx))
}

func TestGuard_TokenCheck(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  Decision
	}{
		{name: "no token", token: "", want: DecisionRedirectToEntry},
		{name: "opaque backend token", token: "jwt_token_0xabc_1700000000000", want: DecisionRedirectToEntry},
		{name: "decodable jwt without exp", token: guardJWTNoExp, want: DecisionAllow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, sessions := newTestGuardSvc(t)
			ctx := context.Background()

			if tt.token != "" {
				require.NoError(t, sessions.Merge(ctx, models.WalletSession{Token: tt.token}))
			}
			assert.Equal(t, tt.want, svc.CheckToken(ctx))
		})
	}
}

func TestGuard_WalletVerdictOutranksToken(t *testing.T) {
	svc, sessions := newTestGuardSvc(t)
	ctx := context.Background()

	// A valid token does not save a disconnected wallet.
	require.NoError(t, sessions.Merge(ctx, models.WalletSession{Token: guardJWTNoExp}))

	assert.Equal(t, DecisionRedirectToEntry, svc.Check(ctx))
}
