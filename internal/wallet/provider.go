// Package wallet provides the signing-provider surface of the desk client:
// account discovery, message signing and the credential mint transaction,
// backed by a local encrypted keystore and a JSON-RPC node.
package wallet

import (
	"context"
	"errors"
	"fmt"
)

// Provider error codes mirroring the EIP-1193 codes the backend and the UI
// already understand.
const (
	// CodeUserRejected is returned when the signing request is refused,
	// locally that is a missing or wrong keystore passphrase.
	CodeUserRejected = 4001
	// CodeRequestPending is returned when another interactive wallet request
	// is already in flight.
	CodeRequestPending = -32002
)

//go:generate mockgen -source=provider.go -destination=../mock/wallet_mock.go -package=mock

// ErrNoProvider is returned by every Provider operation when no wallet is
// configured. Callers fall back to the mobile deep link or an install prompt.
var ErrNoProvider = errors.New("no wallet provider available")

// ProviderError carries a wallet error code alongside its message.
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("wallet provider error %d: %s", e.Code, e.Message)
}

// IsUserRejected reports whether err is the user refusing a wallet request.
func IsUserRejected(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.Code == CodeUserRejected
}

// IsRequestPending reports whether err signals an already-running wallet
// request.
func IsRequestPending(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.Code == CodeRequestPending
}

// MintReceipt describes a mined credential mint transaction.
type MintReceipt struct {
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
}

// Provider is the wallet surface the rest of the client talks to. A single
// implementation wraps the local keystore; tests substitute mocks.
type Provider interface {
	// Available reports whether a wallet with at least one account is
	// configured. When false every other call returns [ErrNoProvider].
	Available() bool

	// RequestAccounts returns the wallet accounts as 0x-prefixed hex
	// addresses, active account first.
	RequestAccounts(ctx context.Context) ([]string, error)

	// ChainID returns the connected chain id as a 0x-prefixed hex string.
	ChainID(ctx context.Context) (string, error)

	// SignMessage signs message with the account's key using the
	// personal-message scheme and returns the 65-byte signature hex encoded.
	SignMessage(ctx context.Context, address, message string) (string, error)

	// MintCredential sends the credential mint transaction from the given
	// account and waits for it to be mined.
	MintCredential(ctx context.Context, from, recipient, tokenURI string) (*MintReceipt, error)
}

// Navigator abstracts "send the user somewhere else", the stand-in for a
// browser redirect when no wallet provider exists on this machine.
type Navigator interface {
	Navigate(url string) error
}
