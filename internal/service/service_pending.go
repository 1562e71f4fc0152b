package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vericred/vericred-desk/internal/adapter"
	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/store"
	"github.com/vericred/vericred-desk/models"
)

type pendingService struct {
	sessions store.SessionRepository
	adapter  adapter.ServerAdapter

	mu       sync.Mutex
	requests []models.MintRequest

	jobMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

func NewPendingService(sessions store.SessionRepository, serverAdapter adapter.ServerAdapter, logger *logger.Logger) PendingService {
	return &pendingService{sessions: sessions, adapter: serverAdapter, logger: logger}
}

// List implements [PendingService].
func (p *pendingService) List() []models.MintRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]models.MintRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

// Refresh implements [PendingService]. Rows the backend sends without a
// resolvable student wallet are dropped; the session address fills the
// university side when the row omits it.
func (p *pendingService) Refresh(ctx context.Context) ([]models.MintRequest, error) {
	rows, err := p.adapter.PendingForOrg(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch pending requests: %w", err)
	}

	session, _ := p.sessions.Session(ctx)

	requests := make([]models.MintRequest, 0, len(rows))
	for _, row := range rows {
		req, ok := models.ParseMintRequest(row, session.Address)
		if !ok {
			p.logger.Debug().Interface("row", row).Msg("dropping pending row without student wallet")
			continue
		}
		req.StudentWallet = models.NormalizeAddress(req.StudentWallet)
		req.UniversityWallet = models.NormalizeAddress(req.UniversityWallet)
		requests = append(requests, req)
	}

	p.mu.Lock()
	p.requests = requests
	p.mu.Unlock()

	return p.List(), nil
}

// Approve implements [PendingService]. The local row is removed only after
// the backend acknowledged with a 2xx; on error the set stays untouched so a
// retry still sees the request.
func (p *pendingService) Approve(ctx context.Context, studentWallet string) error {
	wallet := models.NormalizeAddress(studentWallet)

	if err := p.adapter.ApprovePending(ctx, wallet); err != nil {
		return fmt.Errorf("approve pending request: %w", err)
	}

	p.mu.Lock()
	kept := p.requests[:0]
	for _, req := range p.requests {
		if req.StudentWallet != wallet {
			kept = append(kept, req)
		}
	}
	p.requests = kept
	p.mu.Unlock()

	return nil
}

// StartAutoRefresh implements [PendingService]. It stops any previous job,
// then refreshes on a ticker until ctx is cancelled or StopAutoRefresh is
// called. Refresh failures are logged and the ticker keeps going.
func (p *pendingService) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	p.StopAutoRefresh()

	p.jobMu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.jobMu.Unlock()

	go func() {
		defer p.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := p.Refresh(jobCtx); err != nil {
					p.logger.Warn().Err(err).Msg("pending auto-refresh failed")
				}
			}
		}
	}()
}

// StopAutoRefresh implements [PendingService]. Safe to call when the job is
// not running.
func (p *pendingService) StopAutoRefresh() {
	p.jobMu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.jobMu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
