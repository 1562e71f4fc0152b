package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vericred/vericred-desk/internal/adapter"
	"github.com/vericred/vericred-desk/internal/config"
	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/store"
	"github.com/vericred/vericred-desk/internal/token"
	"github.com/vericred/vericred-desk/internal/wallet"
	"github.com/vericred/vericred-desk/models"
)

// AuthState is the position in the wallet login state machine.
type AuthState int

const (
	AuthIdle AuthState = iota
	AuthConnecting
	AuthNonceRequested
	AuthSigning
	AuthLoggingIn
	AuthAuthenticated
	AuthFailed
)

func (s AuthState) String() string {
	switch s {
	case AuthIdle:
		return "idle"
	case AuthConnecting:
		return "connecting"
	case AuthNonceRequested:
		return "nonce_requested"
	case AuthSigning:
		return "signing"
	case AuthLoggingIn:
		return "logging_in"
	case AuthAuthenticated:
		return "authenticated"
	case AuthFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Legal transitions. AuthFailed is reachable from every non-terminal state;
// a new Connect restarts from AuthIdle, AuthFailed or AuthAuthenticated.
var authTransitions = map[AuthState][]AuthState{
	AuthIdle:           {AuthConnecting},
	AuthConnecting:     {AuthNonceRequested, AuthFailed},
	AuthNonceRequested: {AuthSigning, AuthFailed},
	AuthSigning:        {AuthLoggingIn, AuthFailed},
	AuthLoggingIn:      {AuthAuthenticated, AuthFailed},
	AuthAuthenticated:  {AuthConnecting, AuthIdle},
	AuthFailed:         {AuthConnecting, AuthIdle},
}

type authService struct {
	sessions  store.SessionRepository
	adapter   adapter.ServerAdapter
	provider  wallet.Provider
	navigator wallet.Navigator
	env       config.Environment

	now func() time.Time

	mu    sync.Mutex
	state AuthState

	logger *logger.Logger
}

func NewAuthService(
	sessions store.SessionRepository,
	serverAdapter adapter.ServerAdapter,
	provider wallet.Provider,
	navigator wallet.Navigator,
	env config.Environment,
	logger *logger.Logger,
) AuthService {
	return &authService{
		sessions:  sessions,
		adapter:   serverAdapter,
		provider:  provider,
		navigator: navigator,
		env:       env,
		now:       time.Now,
		logger:    logger,
	}
}

// State implements [AuthService].
func (a *authService) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *authService) transition(to AuthState) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, allowed := range authTransitions[a.state] {
		if allowed == to {
			a.logger.Debug().Str("from", a.state.String()).Str("to", to.String()).Msg("auth transition")
			a.state = to
			return nil
		}
	}
	return fmt.Errorf("%w: auth %s -> %s", ErrIllegalTransition, a.state, to)
}

func (a *authService) fail(err error) error {
	a.mu.Lock()
	a.state = AuthFailed
	a.mu.Unlock()

	a.logger.Warn().Err(err).Msg("wallet login failed")
	return err
}

// Connect implements [AuthService].
func (a *authService) Connect(ctx context.Context) (models.WalletSession, error) {
	if err := a.transition(AuthConnecting); err != nil {
		return models.WalletSession{}, err
	}

	// Without a provider no nonce may be requested. On mobile the user is
	// handed over to the wallet's in-app browser instead.
	if !a.provider.Available() {
		if wallet.IsMobileUserAgent(a.env.UserAgent) {
			link := wallet.DeepLink(a.env.DappHost)
			if err := a.navigator.Navigate(link); err != nil {
				return models.WalletSession{}, a.fail(fmt.Errorf("open wallet deep link: %w", err))
			}
			return models.WalletSession{}, a.fail(ErrSentToWalletApp)
		}
		return models.WalletSession{}, a.fail(ErrWalletNotInstalled)
	}

	address, err := a.activeAddress(ctx)
	if err != nil {
		return models.WalletSession{}, a.fail(err)
	}

	if err = a.transition(AuthNonceRequested); err != nil {
		return models.WalletSession{}, err
	}
	nonce, err := a.adapter.GetNonce(ctx, address)
	if err != nil {
		return models.WalletSession{}, a.fail(fmt.Errorf("request nonce: %w", err))
	}

	if err = a.transition(AuthSigning); err != nil {
		return models.WalletSession{}, err
	}
	// The nonce string is signed exactly as received, no re-framing.
	signature, err := a.provider.SignMessage(ctx, address, nonce)
	if err != nil {
		return models.WalletSession{}, a.fail(mapWalletError(err))
	}

	// The active account may have been switched while the signing prompt
	// was open. Logging in would then bind the token to the wrong wallet.
	current, err := a.activeAddress(ctx)
	if err != nil {
		return models.WalletSession{}, a.fail(err)
	}
	if current != address {
		return models.WalletSession{}, a.fail(ErrAddressChanged)
	}

	if err = a.transition(AuthLoggingIn); err != nil {
		return models.WalletSession{}, err
	}
	bearer, err := a.adapter.MetamaskLogin(ctx, address, signature)
	if err != nil {
		return models.WalletSession{}, a.fail(fmt.Errorf("metamask login: %w", err))
	}

	chainID, err := a.provider.ChainID(ctx)
	if err != nil {
		// The session is still usable without a chain id.
		a.logger.Warn().Err(err).Msg("could not read chain id")
	}

	session := models.WalletSession{
		Address:     address,
		ChainID:     chainID,
		IsConnected: true,
		Timestamp:   a.now().UnixMilli(),
		Token:       bearer,
	}
	if err = a.sessions.Merge(ctx, session); err != nil {
		return models.WalletSession{}, a.fail(fmt.Errorf("persist session: %w", err))
	}

	if err = a.transition(AuthAuthenticated); err != nil {
		return models.WalletSession{}, err
	}

	a.logger.Info().Str("address", address).Msg("wallet authenticated")
	return session, nil
}

// activeAddress resolves the wallet's primary account, normalized and
// validated.
func (a *authService) activeAddress(ctx context.Context) (string, error) {
	accounts, err := a.provider.RequestAccounts(ctx)
	if err != nil {
		return "", mapWalletError(err)
	}
	if len(accounts) == 0 {
		return "", ErrWalletNotInstalled
	}

	address := models.NormalizeAddress(accounts[0])
	if !models.ValidAddress(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidWalletAddress, accounts[0])
	}
	return address, nil
}

// RestoreSession implements [AuthService].
func (a *authService) RestoreSession(ctx context.Context) (models.WalletSession, bool) {
	session, err := a.sessions.Session(ctx)
	if err != nil || !session.IsConnected || session.Token == "" {
		return models.WalletSession{}, false
	}
	if session.Expired(a.now()) {
		return models.WalletSession{}, false
	}
	if !token.IsValid(session.Token) {
		return models.WalletSession{}, false
	}

	a.adapter.SetToken(session.Token)

	a.mu.Lock()
	a.state = AuthAuthenticated
	a.mu.Unlock()

	a.logger.Info().Str("address", session.Address).Msg("session restored")
	return session, true
}

// Logout implements [AuthService].
func (a *authService) Logout(ctx context.Context) error {
	a.adapter.SetToken("")

	a.mu.Lock()
	a.state = AuthIdle
	a.mu.Unlock()

	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// mapWalletError translates provider error codes into the user-facing
// sentinel errors.
func mapWalletError(err error) error {
	switch {
	case wallet.IsUserRejected(err):
		return fmt.Errorf("%w: %v", ErrUserRejected, err)
	case wallet.IsRequestPending(err):
		return fmt.Errorf("%w: %v", ErrWalletBusy, err)
	default:
		return err
	}
}
