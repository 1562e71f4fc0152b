package service

import (
	"context"
	"time"

	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/store"
	"github.com/vericred/vericred-desk/internal/token"
)

// Decision is a guard verdict for entering a protected page.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionRedirectToEntry
)

func (d Decision) String() string {
	if d == DecisionAllow {
		return "allow"
	}
	return "redirect_to_entry"
}

type guardService struct {
	sessions store.SessionRepository
	now      func() time.Time
	logger   *logger.Logger
}

func NewGuardService(sessions store.SessionRepository, logger *logger.Logger) GuardService {
	return &guardService{sessions: sessions, now: time.Now, logger: logger}
}

// CheckToken implements [GuardService]. The verdict depends only on the
// stored token's shape and expiry claim, no network round-trip.
func (g *guardService) CheckToken(ctx context.Context) Decision {
	if token.IsValid(g.sessions.Token(ctx)) {
		return DecisionAllow
	}
	return DecisionRedirectToEntry
}

// CheckWallet implements [GuardService]. A session that is disconnected or
// older than the session lifetime is cleared before redirecting, so the next
// login starts from a clean envelope.
func (g *guardService) CheckWallet(ctx context.Context) Decision {
	session, err := g.sessions.Session(ctx)
	if err != nil {
		return DecisionRedirectToEntry
	}

	if !session.IsConnected || session.Expired(g.now()) {
		if err = g.sessions.Clear(ctx); err != nil {
			g.logger.Warn().Err(err).Msg("clear expired session")
		}
		return DecisionRedirectToEntry
	}
	return DecisionAllow
}

// Check implements [GuardService].
func (g *guardService) Check(ctx context.Context) Decision {
	if g.CheckWallet(ctx) != DecisionAllow {
		return DecisionRedirectToEntry
	}
	return g.CheckToken(ctx)
}
