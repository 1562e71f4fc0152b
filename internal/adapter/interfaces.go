// Package adapter provides the transport layer between the desk client and
// the VeriCred REST backend.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from HTTP details. The backend grew organically and answers with
// several envelope shapes for list endpoints ({rows: [...]} or a bare array)
// and several field spellings per row; the adapter absorbs the envelopes and
// hands rows onward, field-level aliasing lives in the models package.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNoAccount] for a 404 from the students endpoint).
package adapter

import (
	"context"
	"encoding/json"

	"github.com/vericred/vericred-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the VeriCred
// backend. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful login and when a stored session is restored.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// GetNonce requests a fresh login nonce for the wallet address.
	GetNonce(ctx context.Context, address string) (string, error)

	// MetamaskLogin exchanges the signed nonce for a bearer token. The
	// backend answers with the token as a plain-text body, not JSON. On
	// success the token is stored via SetToken and returned.
	MetamaskLogin(ctx context.Context, address, signature string) (string, error)

	// Students fetches the caller's student roster. A backend 404 means the
	// wallet has no account yet and maps to [ErrNoAccount]; callers show a
	// sign-up prompt instead of an error. Object and array responses are
	// both tolerated.
	Students(ctx context.Context) ([]models.StudentRecord, error)

	// Dashboard fetches the dashboard document for the address. The wallet
	// address travels three ways at once (header plus both historical query
	// spellings) because backend revisions read different ones. The body is
	// returned verbatim.
	Dashboard(ctx context.Context, address string) (json.RawMessage, error)

	// UploadToIPFS pins the credential metadata and returns the content
	// address, resolved from the response by ordered field aliases.
	UploadToIPFS(ctx context.Context, metadata models.CredentialMetadata) (string, error)

	// PostTransactionHash records a mined mint transaction hash. Best-effort
	// from the caller's point of view.
	PostTransactionHash(ctx context.Context, txHash string) error

	// PostMintedRecord persists the full minted-credential record.
	PostMintedRecord(ctx context.Context, record models.MintedCredentialRecord) error

	// PendingForOrg fetches the raw pending mint requests addressed to the
	// authenticated organization. Rows come back unnormalized; the service
	// layer resolves field aliases.
	PendingForOrg(ctx context.Context) ([]map[string]any, error)

	// ApprovePending marks the student's pending request approved. Only a
	// 2xx answer counts as approved.
	ApprovePending(ctx context.Context, studentWallet string) error

	// RequestMint files a pending mint request from a student towards a
	// university.
	RequestMint(ctx context.Context, studentWallet, universityWallet string) error

	// ShowUser fetches the public profile for a wallet address. The backend
	// may answer with an object, an array, or a {data: [...]} envelope; the
	// first profile object is returned verbatim.
	ShowUser(ctx context.Context, address string) (json.RawMessage, error)

	// UserCreds fetches the credentials issued to a wallet address, raw rows.
	UserCreds(ctx context.Context, address string) ([]map[string]any, error)

	// Universities lists the registered universities.
	Universities(ctx context.Context) ([]models.University, error)

	// SpecificUniversity fetches one university by its wallet address.
	SpecificUniversity(ctx context.Context, address string) (models.University, error)

	// Transactions fetches the public mint ledger. No authentication.
	Transactions(ctx context.Context) ([]models.LedgerTransaction, error)
}
