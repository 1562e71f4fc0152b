package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vericred/vericred-desk/models"
)

// AuthService drives the challenge-response wallet login and owns the
// authentication state machine.
type AuthService interface {
	// Connect runs the full login flow: wallet availability check, account
	// resolution, nonce request, signature, login, session persistence.
	// On machines without a wallet it either navigates to the MetaMask
	// mobile deep link (mobile environments, returns [ErrSentToWalletApp])
	// or fails with [ErrWalletNotInstalled]. Connect may be called again
	// after any failure; the flow restarts from the beginning.
	Connect(ctx context.Context) (models.WalletSession, error)

	// State returns the current position in the login state machine.
	State() AuthState

	// RestoreSession re-adopts a stored session if it is still usable:
	// connected, younger than the session lifetime, token present. On
	// success the adapter carries the restored token.
	RestoreSession(ctx context.Context) (models.WalletSession, bool)

	// Logout clears the stored session and forgets the bearer token.
	Logout(ctx context.Context) error
}

// GuardService gates page access. Pure decision logic, no network.
type GuardService interface {
	// CheckToken decides on the stored bearer token alone.
	CheckToken(ctx context.Context) Decision

	// CheckWallet decides on the wallet session: connected and younger than
	// the session lifetime. An expired envelope is cleared as a side effect.
	CheckWallet(ctx context.Context) Decision

	// Check combines CheckWallet and CheckToken; protected pages call this
	// on every switch.
	Check(ctx context.Context) Decision
}

// MintService owns the credential issue workflow, one workflow value per
// recipient wallet. Uploading never mints; minting is a separate explicit
// confirmation step bound to the uploaded content address.
type MintService interface {
	// Begin starts (or restarts) a workflow for the student with a fresh
	// form. An in-flight mint for the same recipient is refused.
	Begin(student models.Student, university models.University, form MintForm) error

	// Upload validates the form, uploads the metadata document and stores
	// the returned content address. The workflow moves to
	// awaiting-confirmation; nothing is minted.
	Upload(ctx context.Context, recipientWallet string) (string, error)

	// Confirm mints against the stored content address, waits for
	// inclusion, then persists the result to the backend (best effort) and
	// reconciles the pending request. Returns the mint outcome.
	Confirm(ctx context.Context, recipientWallet string) (MintOutcome, error)

	// Workflow returns a snapshot of the workflow for the recipient.
	Workflow(recipientWallet string) (MintWorkflowView, error)
}

// PendingService maintains the organization's view of pending mint requests.
type PendingService interface {
	// List returns the last fetched pending requests.
	List() []models.MintRequest

	// Refresh re-fetches pending requests from the backend and replaces the
	// local set.
	Refresh(ctx context.Context) ([]models.MintRequest, error)

	// Approve marks the student's request approved on the backend. The
	// request leaves the local set only when the backend acknowledged.
	Approve(ctx context.Context, studentWallet string) error

	// StartAutoRefresh refreshes the set on a ticker until StopAutoRefresh
	// or ctx cancellation. Meant to run while the pending page is visible.
	StartAutoRefresh(ctx context.Context, interval time.Duration)

	// StopAutoRefresh stops the background refresh and waits for it to exit.
	StopAutoRefresh()
}

// DirectoryService bundles the read-mostly backend lookups: rosters,
// dashboards, public profiles and the public mint ledger.
type DirectoryService interface {
	// Students returns the authenticated organization's roster in display
	// shape. adapter.ErrNoAccount passes through for the sign-up prompt.
	Students(ctx context.Context) ([]models.Student, error)

	// Dashboard returns the dashboard document for the session address.
	Dashboard(ctx context.Context) (json.RawMessage, error)

	// ShowUser returns the public profile for any wallet address.
	ShowUser(ctx context.Context, address string) (json.RawMessage, error)

	// UserCreds returns the credentials issued to a wallet address.
	UserCreds(ctx context.Context, address string) ([]map[string]any, error)

	// Universities lists registered universities.
	Universities(ctx context.Context) ([]models.University, error)

	// SpecificUniversity fetches one university by wallet address.
	SpecificUniversity(ctx context.Context, address string) (models.University, error)

	// Ledger returns the public mint ledger.
	Ledger(ctx context.Context) ([]models.LedgerTransaction, error)

	// RequestMint files a pending mint request from the session wallet
	// towards the university.
	RequestMint(ctx context.Context, universityWallet string) error
}
