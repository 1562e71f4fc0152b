package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/service"
	"github.com/vericred/vericred-desk/models"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services        *service.Services
	refreshInterval time.Duration
}

func New(services *service.Services, refreshInterval time.Duration, _ *logger.Logger) (*TUI, error) {
	if refreshInterval <= 0 {
		refreshInterval = 30 * time.Second
	}
	return &TUI{services: services, refreshInterval: refreshInterval}, nil
}

// Run drives the whole client session: the entry screen when no session could
// be restored, the authenticated screens otherwise. It returns logout=true
// when the operator logged out rather than quit, so the caller can restart
// the flow.
func (t *TUI) Run(ctx context.Context, session models.WalletSession, authenticated bool) (logout bool, err error) {
	model := newAppModel(ctx, t.services, session, authenticated, t.refreshInterval)

	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	if errors.Is(result.err, ErrUserQuit) {
		return false, nil
	}
	return result.logout, result.err
}
