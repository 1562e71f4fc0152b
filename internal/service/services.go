package service

import (
	"github.com/vericred/vericred-desk/internal/adapter"
	"github.com/vericred/vericred-desk/internal/config"
	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/store"
	"github.com/vericred/vericred-desk/internal/wallet"
)

// Services bundles the client-side services behind their interfaces.
type Services struct {
	Auth      AuthService
	Guard     GuardService
	Mint      MintService
	Pending   PendingService
	Directory DirectoryService
}

func NewServices(
	cfg *config.ClientConfig,
	sessions store.SessionRepository,
	serverAdapter adapter.ServerAdapter,
	provider wallet.Provider,
	navigator wallet.Navigator,
	logger *logger.Logger,
) *Services {
	pendingSvc := NewPendingService(sessions, serverAdapter, logger)

	return &Services{
		Auth:      NewAuthService(sessions, serverAdapter, provider, navigator, cfg.Env, logger),
		Guard:     NewGuardService(sessions, logger),
		Mint:      NewMintService(sessions, serverAdapter, provider, pendingSvc, cfg.Chain, logger),
		Pending:   pendingSvc,
		Directory: NewDirectoryService(sessions, serverAdapter, logger),
	}
}
