package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vericred/vericred-desk/internal/config"
	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/mock"
	"github.com/vericred/vericred-desk/internal/store"
	"github.com/vericred/vericred-desk/internal/wallet"
	"github.com/vericred/vericred-desk/models"
)

const (
	testAddress = "0x1111222233334444555566667777888899990000"
	testNonce   = "Please sign this message to authenticate with VeriCred: abc123"
	testSig     = "0xdeadbeef"
	testToken   = "jwt_token_0x1111222233334444555566667777888899990000_1700000000000"
)

func newTestAuthSvc(
	t *testing.T,
	ctrl *gomock.Controller,
	env config.Environment,
) (*authService, *mock.MockServerAdapter, *mock.MockProvider, *mock.MockNavigator, store.SessionRepository) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockProvider := mock.NewMockProvider(ctrl)
	mockNavigator := mock.NewMockNavigator(ctrl)
	sessions := store.NewMemorySessionRepository()

	svc := NewAuthService(sessions, mockAdapter, mockProvider, mockNavigator, env, logger.Nop()).(*authService)
	return svc, mockAdapter, mockProvider, mockNavigator, sessions
}

func TestConnect_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockProvider, _, sessions := newTestAuthSvc(t, ctrl, config.Environment{})
	ctx := context.Background()

	// A pre-existing role must survive the login merge.
	require.NoError(t, sessions.Merge(ctx, models.WalletSession{Role: "university"}))

	gomock.InOrder(
		mockProvider.EXPECT().Available().Return(true),
		mockProvider.EXPECT().RequestAccounts(ctx).Return([]string{"0x1111222233334444555566667777888899990000"}, nil),
		mockAdapter.EXPECT().GetNonce(ctx, testAddress).Return(testNonce, nil),
		// The literal nonce is signed, never a re-framed message.
		mockProvider.EXPECT().SignMessage(ctx, testAddress, testNonce).Return(testSig, nil),
		mockProvider.EXPECT().RequestAccounts(ctx).Return([]string{testAddress}, nil),
		mockAdapter.EXPECT().MetamaskLogin(ctx, testAddress, testSig).Return(testToken, nil),
		mockProvider.EXPECT().ChainID(ctx).Return("0xaa36a7", nil),
	)

	session, err := svc.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, AuthAuthenticated, svc.State())
	assert.Equal(t, testAddress, session.Address)
	assert.Equal(t, "0xaa36a7", session.ChainID)
	assert.True(t, session.IsConnected)
	assert.Equal(t, testToken, session.Token)
	assert.NotZero(t, session.Timestamp)

	stored, err := sessions.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, testToken, stored.Token)
	assert.Equal(t, "university", stored.Role, "merge must not drop unrelated fields")
}

func TestConnect_NoProvider_MobileDeepLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := config.Environment{
		UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)",
		DappHost:  "vericred.example.com",
	}
	svc, _, mockProvider, mockNavigator, _ := newTestAuthSvc(t, ctrl, env)

	// No nonce request, no signing: the provider check halts the flow.
	mockProvider.EXPECT().Available().Return(false)
	mockNavigator.EXPECT().
		Navigate("https://metamask.app.link/dapp/vericred.example.com/home").
		Return(nil)

	_, err := svc.Connect(context.Background())
	assert.ErrorIs(t, err, ErrSentToWalletApp)
	assert.Equal(t, AuthFailed, svc.State())
}

func TestConnect_NoProvider_Desktop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := config.Environment{UserAgent: "Mozilla/5.0 (X11; Linux x86_64)"}
	svc, _, mockProvider, _, _ := newTestAuthSvc(t, ctrl, env)

	mockProvider.EXPECT().Available().Return(false)

	_, err := svc.Connect(context.Background())
	assert.ErrorIs(t, err, ErrWalletNotInstalled)
	assert.Equal(t, AuthFailed, svc.State())
}

func TestConnect_UserRejectedSignature_ThenRetrySucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockProvider, _, _ := newTestAuthSvc(t, ctrl, config.Environment{})
	ctx := context.Background()

	rejected := &wallet.ProviderError{Code: wallet.CodeUserRejected, Message: "signature request denied"}

	gomock.InOrder(
		// First attempt: rejected at the signing prompt.
		mockProvider.EXPECT().Available().Return(true),
		mockProvider.EXPECT().RequestAccounts(ctx).Return([]string{testAddress}, nil),
		mockAdapter.EXPECT().GetNonce(ctx, testAddress).Return(testNonce, nil),
		mockProvider.EXPECT().SignMessage(ctx, testAddress, testNonce).Return("", rejected),
		// Second attempt runs the flow from the top.
		mockProvider.EXPECT().Available().Return(true),
		mockProvider.EXPECT().RequestAccounts(ctx).Return([]string{testAddress}, nil),
		mockAdapter.EXPECT().GetNonce(ctx, testAddress).Return(testNonce, nil),
		mockProvider.EXPECT().SignMessage(ctx, testAddress, testNonce).Return(testSig, nil),
		mockProvider.EXPECT().RequestAccounts(ctx).Return([]string{testAddress}, nil),
		mockAdapter.EXPECT().MetamaskLogin(ctx, testAddress, testSig).Return(testToken, nil),
		mockProvider.EXPECT().ChainID(ctx).Return("0xaa36a7", nil),
	)

	_, err := svc.Connect(ctx)
	assert.ErrorIs(t, err, ErrUserRejected)
	assert.Equal(t, AuthFailed, svc.State())

	_, err = svc.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, AuthAuthenticated, svc.State())
}

func TestConnect_PendingWalletRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockProvider, _, _ := newTestAuthSvc(t, ctrl, config.Environment{})
	ctx := context.Background()

	pending := &wallet.ProviderError{Code: wallet.CodeRequestPending, Message: "request already pending"}

	mockProvider.EXPECT().Available().Return(true)
	mockProvider.EXPECT().RequestAccounts(ctx).Return(nil, pending)

	_, err := svc.Connect(ctx)
	assert.ErrorIs(t, err, ErrWalletBusy)
}

func TestConnect_AddressSwitchedDuringSigning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockProvider, _, sessions := newTestAuthSvc(t, ctrl, config.Environment{})
	ctx := context.Background()

	gomock.InOrder(
		mockProvider.EXPECT().Available().Return(true),
		mockProvider.EXPECT().RequestAccounts(ctx).Return([]string{testAddress}, nil),
		mockAdapter.EXPECT().GetNonce(ctx, testAddress).Return(testNonce, nil),
		mockProvider.EXPECT().SignMessage(ctx, testAddress, testNonce).Return(testSig, nil),
		// The wallet's active account changed while the prompt was open.
		mockProvider.EXPECT().RequestAccounts(ctx).Return([]string{"0xaaaabbbbccccddddeeeeffff0000111122223333"}, nil),
	)

	_, err := svc.Connect(ctx)
	assert.ErrorIs(t, err, ErrAddressChanged)
	assert.Equal(t, AuthFailed, svc.State())

	// No login means no token was persisted.
	assert.Empty(t, sessions.Token(ctx))
}

func TestConnect_InvalidAddressFromProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockProvider, _, _ := newTestAuthSvc(t, ctrl, config.Environment{})
	ctx := context.Background()

	mockProvider.EXPECT().Available().Return(true)
	mockProvider.EXPECT().RequestAccounts(ctx).Return([]string{"not-an-address"}, nil)

	_, err := svc.Connect(ctx)
	assert.ErrorIs(t, err, ErrInvalidWalletAddress)
}

func TestRestoreSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("opaque token does not restore", func(t *testing.T) {
		svc, _, _, _, sessions := newTestAuthSvc(t, ctrl, config.Environment{})
		ctx := context.Background()

		require.NoError(t, sessions.Merge(ctx, models.WalletSession{
			Address:     testAddress,
			IsConnected: true,
			Timestamp:   svc.now().UnixMilli(),
			Token:       testToken, // not a decodable JWT
		}))

		_, ok := svc.RestoreSession(ctx)
		assert.False(t, ok)
	})

	t.Run("valid jwt session restores", func(t *testing.T) {
		svc, mockAdapter, _, _, sessions := newTestAuthSvc(t, ctrl, config.Environment{})
		ctx := context.Background()

		// Header+payload of a JWT with no exp claim; such tokens never
		// expire client-side.
		jwtNoExp := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiIweGFiYyJ9.sig"
		require.NoError(t, sessions.Merge(ctx, models.WalletSession{
			Address:     testAddress,
			IsConnected: true,
			Timestamp:   svc.now().UnixMilli(),
			Token:       jwtNoExp,
		}))

		mockAdapter.EXPECT().SetToken(jwtNoExp)

		restored, ok := svc.RestoreSession(ctx)
		require.True(t, ok)
		assert.Equal(t, testAddress, restored.Address)
		assert.Equal(t, AuthAuthenticated, svc.State())
	})

	t.Run("disconnected session does not restore", func(t *testing.T) {
		svc, _, _, _, sessions := newTestAuthSvc(t, ctrl, config.Environment{})
		ctx := context.Background()

		require.NoError(t, sessions.Merge(ctx, models.WalletSession{
			Address:   testAddress,
			Timestamp: svc.now().UnixMilli(),
			Token:     testToken,
		}))

		_, ok := svc.RestoreSession(ctx)
		assert.False(t, ok)
	})
}

func TestLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _, _, sessions := newTestAuthSvc(t, ctrl, config.Environment{})
	ctx := context.Background()

	require.NoError(t, sessions.Merge(ctx, models.WalletSession{Token: testToken, IsConnected: true}))
	mockAdapter.EXPECT().SetToken("")

	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, AuthIdle, svc.State())
	assert.Empty(t, sessions.Token(ctx))
}

func TestAuthTransitions_RejectIllegalMoves(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestAuthSvc(t, ctrl, config.Environment{})

	// Jumping straight from idle to authenticated is not a legal move.
	err := svc.transition(AuthAuthenticated)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.Equal(t, AuthIdle, svc.State())
}
