package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vericred/vericred-desk/internal/adapter"
	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/store"
	"github.com/vericred/vericred-desk/models"
)

type directoryService struct {
	sessions store.SessionRepository
	adapter  adapter.ServerAdapter
	logger   *logger.Logger
}

func NewDirectoryService(sessions store.SessionRepository, serverAdapter adapter.ServerAdapter, logger *logger.Logger) DirectoryService {
	return &directoryService{sessions: sessions, adapter: serverAdapter, logger: logger}
}

// Students implements [DirectoryService]. adapter.ErrNoAccount is passed
// through untouched so the UI can show the sign-up prompt instead of an
// error page.
func (d *directoryService) Students(ctx context.Context) ([]models.Student, error) {
	records, err := d.adapter.Students(ctx)
	if err != nil {
		return nil, err
	}

	students := make([]models.Student, 0, len(records))
	for _, record := range records {
		students = append(students, record.DashboardStudent())
	}
	return students, nil
}

// Dashboard implements [DirectoryService].
func (d *directoryService) Dashboard(ctx context.Context) (json.RawMessage, error) {
	session, err := d.sessions.Session(ctx)
	if err != nil || session.Address == "" {
		return nil, ErrNotAuthenticated
	}
	return d.adapter.Dashboard(ctx, session.Address)
}

// ShowUser implements [DirectoryService].
func (d *directoryService) ShowUser(ctx context.Context, address string) (json.RawMessage, error) {
	return d.adapter.ShowUser(ctx, models.NormalizeAddress(address))
}

// UserCreds implements [DirectoryService].
func (d *directoryService) UserCreds(ctx context.Context, address string) ([]map[string]any, error) {
	return d.adapter.UserCreds(ctx, models.NormalizeAddress(address))
}

// Universities implements [DirectoryService].
func (d *directoryService) Universities(ctx context.Context) ([]models.University, error) {
	return d.adapter.Universities(ctx)
}

// SpecificUniversity implements [DirectoryService].
func (d *directoryService) SpecificUniversity(ctx context.Context, address string) (models.University, error) {
	return d.adapter.SpecificUniversity(ctx, models.NormalizeAddress(address))
}

// Ledger implements [DirectoryService].
func (d *directoryService) Ledger(ctx context.Context) ([]models.LedgerTransaction, error) {
	return d.adapter.Transactions(ctx)
}

// RequestMint implements [DirectoryService]. The student side of the pending
// flow: the session wallet asks universityWallet to issue.
func (d *directoryService) RequestMint(ctx context.Context, universityWallet string) error {
	session, err := d.sessions.Session(ctx)
	if err != nil || session.Address == "" {
		return ErrNotAuthenticated
	}

	university := models.NormalizeAddress(universityWallet)
	if !models.ValidAddress(university) {
		return fmt.Errorf("%w: %q", ErrInvalidWalletAddress, universityWallet)
	}

	return d.adapter.RequestMint(ctx, session.Address, university)
}
