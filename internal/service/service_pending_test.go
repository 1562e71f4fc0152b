package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/mock"
	"github.com/vericred/vericred-desk/internal/store"
	"github.com/vericred/vericred-desk/models"
)

const (
	orgWallet      = "0x9999888877776666555544443333222211110000"
	studentWalletA = "0x1212121212121212121212121212121212121212"
	studentWalletB = "0x3434343434343434343434343434343434343434"
)

func newTestPendingSvc(t *testing.T, ctrl *gomock.Controller) (*pendingService, *mock.MockServerAdapter, store.SessionRepository) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	sessions := store.NewMemorySessionRepository()
	svc := NewPendingService(sessions, mockAdapter, logger.Nop()).(*pendingService)
	return svc, mockAdapter, sessions
}

func TestRefresh_AliasShapes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, sessions := newTestPendingSvc(t, ctrl)
	ctx := context.Background()
	require.NoError(t, sessions.Merge(ctx, models.WalletSession{Address: orgWallet, IsConnected: true}))

	rows := []map[string]any{
		// Canonical shape, addresses mixed case on the wire.
		{
			"id":                "17",
			"student_wallet":    "0x1212121212121212121212121212121212121212",
			"university_wallet": "0xABCDABCDABCDABCDABCDABCDABCDABCDABCDABCD",
		},
		// student_wallet outranks the camelCase spelling on the same row.
		{
			"student_wallet": studentWalletB,
			"studentWallet":  "0x9999999999999999999999999999999999999999",
		},
		// Nested requester object plus missing university side.
		{
			"requester": map[string]any{"metamaskAddress": "0x5656565656565656565656565656565656565656"},
		},
		// No resolvable student wallet at all: dropped.
		{"created_at": "2026-08-01T00:00:00Z"},
	}
	mockAdapter.EXPECT().PendingForOrg(ctx).Return(rows, nil)

	requests, err := svc.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 3)

	assert.Equal(t, "17", requests[0].ID)
	assert.Equal(t, studentWalletA, requests[0].StudentWallet)
	assert.Equal(t, "0xabcdabcdabcdabcdabcdabcdabcdabcdabcdabcd", requests[0].UniversityWallet)

	assert.Equal(t, studentWalletB, requests[1].StudentWallet)

	assert.Equal(t, "0x5656565656565656565656565656565656565656", requests[2].StudentWallet)
	assert.Equal(t, orgWallet, requests[2].UniversityWallet, "session address fills the missing university side")
}

func TestRefresh_ReplacesPreviousSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestPendingSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockAdapter.EXPECT().PendingForOrg(ctx).Return([]map[string]any{
			{"student_wallet": studentWalletA},
			{"student_wallet": studentWalletB},
		}, nil),
		mockAdapter.EXPECT().PendingForOrg(ctx).Return([]map[string]any{
			{"student_wallet": studentWalletB},
		}, nil),
	)

	_, err := svc.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, svc.List(), 2)

	requests, err := svc.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, studentWalletB, requests[0].StudentWallet)
}

func TestApprove_RemovesRowOnlyAfterBackendAck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestPendingSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().PendingForOrg(ctx).Return([]map[string]any{
		{"student_wallet": studentWalletA},
		{"student_wallet": studentWalletB},
	}, nil)
	_, err := svc.Refresh(ctx)
	require.NoError(t, err)

	t.Run("backend error keeps the row", func(t *testing.T) {
		mockAdapter.EXPECT().ApprovePending(ctx, studentWalletA).Return(errors.New("503"))

		err := svc.Approve(ctx, studentWalletA)
		require.Error(t, err)
		assert.Len(t, svc.List(), 2, "a retry must still see the request")
	})

	t.Run("acknowledged approve removes the row", func(t *testing.T) {
		// The case-insensitive match goes through address normalization.
		mockAdapter.EXPECT().ApprovePending(ctx, studentWalletA).Return(nil)

		err := svc.Approve(ctx, "0x1212121212121212121212121212121212121212")
		require.NoError(t, err)

		remaining := svc.List()
		require.Len(t, remaining, 1)
		assert.Equal(t, studentWalletB, remaining[0].StudentWallet)
	})
}

func TestStopAutoRefresh_WithoutRunningJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestPendingSvc(t, ctrl)
	svc.StopAutoRefresh()
	svc.StopAutoRefresh()
}

func TestAutoRefresh_StopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestPendingSvc(t, ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	svc.StartAutoRefresh(ctx, 0) // 0 falls back to the default interval
	cancel()
	svc.StopAutoRefresh() // waits for the goroutine to exit
}
