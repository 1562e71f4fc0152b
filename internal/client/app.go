package client

import (
	"context"

	"github.com/vericred/vericred-desk/internal/config"
	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/service"
	"github.com/vericred/vericred-desk/internal/tui"
	"github.com/vericred/vericred-desk/models"
)

// App ties the services and the terminal UI into one session loop.
type App struct {
	services *service.Services
	tui      *tui.TUI
	logger   *logger.Logger
}

func NewApp(services *service.Services, ui *tui.TUI, _ config.Workers, logger *logger.Logger) (*App, error) {
	return &App{services: services, tui: ui, logger: logger}, nil
}

// Run restores a stored session when possible, otherwise starts at the
// connect screen, and loops on logout so the next operator can sign in
// without restarting the process.
func (a *App) Run() error {
	ctx := context.Background()

	for {
		session, authenticated := a.services.Auth.RestoreSession(ctx)
		if authenticated {
			a.logger.Info().Str("address", session.Address).Msg("restored wallet session")
		} else {
			session = models.WalletSession{}
		}

		logout, err := a.tui.Run(ctx, session, authenticated)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}
		a.logger.Info().Msg("operator logged out, restarting login flow")
	}
}
