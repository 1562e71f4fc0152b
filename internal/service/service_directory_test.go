package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vericred/vericred-desk/internal/adapter"
	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/mock"
	"github.com/vericred/vericred-desk/internal/store"
	"github.com/vericred/vericred-desk/models"
)

func newTestDirectorySvc(t *testing.T, ctrl *gomock.Controller) (*directoryService, *mock.MockServerAdapter, store.SessionRepository) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	sessions := store.NewMemorySessionRepository()
	svc := NewDirectoryService(sessions, mockAdapter, logger.Nop()).(*directoryService)
	return svc, mockAdapter, sessions
}

func TestStudents_MapsDashboardShape(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestDirectorySvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Students(ctx).Return([]models.StudentRecord{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", MetamaskAddress: studentWalletA, IsVerified: true},
		{ID: 2, Email: "grace@example.edu"},
		{ID: 3},
	}, nil)

	students, err := svc.Students(ctx)
	require.NoError(t, err)
	require.Len(t, students, 3)

	assert.Equal(t, "Ada Lovelace", students[0].Name)
	assert.Equal(t, models.EligibilityEligible, students[0].Eligibility)
	assert.Equal(t, studentWalletA, students[0].WalletAddress)

	// Name falls back through email, then a synthetic label.
	assert.Equal(t, "grace@example.edu", students[1].Name)
	assert.Equal(t, models.EligibilityPendingReview, students[1].Eligibility)
	assert.Equal(t, "Student 3", students[2].Name)
}

func TestStudents_NoAccountPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestDirectorySvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Students(ctx).Return(nil, adapter.ErrNoAccount)

	_, err := svc.Students(ctx)
	assert.ErrorIs(t, err, adapter.ErrNoAccount, "the UI distinguishes no-account from real failures")
}

func TestDashboard_RequiresSessionAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, sessions := newTestDirectorySvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.Dashboard(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, sessions.Merge(ctx, models.WalletSession{Address: orgWallet, IsConnected: true}))
	payload := json.RawMessage(`{"students":[]}`)
	mockAdapter.EXPECT().Dashboard(ctx, orgWallet).Return(payload, nil)

	got, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestRequestMint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, sessions := newTestDirectorySvc(t, ctrl)
	ctx := context.Background()

	t.Run("requires authentication", func(t *testing.T) {
		err := svc.RequestMint(ctx, orgWallet)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	require.NoError(t, sessions.Merge(ctx, models.WalletSession{Address: studentWalletA, IsConnected: true}))

	t.Run("rejects malformed university wallet", func(t *testing.T) {
		err := svc.RequestMint(ctx, "not-a-wallet")
		assert.ErrorIs(t, err, ErrInvalidWalletAddress)
	})

	t.Run("sends normalized pair", func(t *testing.T) {
		mockAdapter.EXPECT().RequestMint(ctx, studentWalletA, orgWallet).Return(nil)

		err := svc.RequestMint(ctx, "0x9999888877776666555544443333222211110000")
		require.NoError(t, err)
	})
}

func TestSpecificUniversity_NormalizesAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestDirectorySvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().
		SpecificUniversity(ctx, orgWallet).
		Return(models.University{Name: "Analytical Engine University"}, nil)

	university, err := svc.SpecificUniversity(ctx, "  0x9999888877776666555544443333222211110000  ")
	require.NoError(t, err)
	assert.Equal(t, "Analytical Engine University", university.Name)
}
