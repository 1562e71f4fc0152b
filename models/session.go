package models

import (
	"regexp"
	"strings"
	"time"
)

// Storage keys for the two durable client-side JSON envelopes. Both are plain
// blobs with no schema versioning; a corrupt value is treated as absence.
const (
	WalletSessionKey = "vericred_wallet"
	SignedUpUserKey  = "vericred_user"
)

// SessionMaxAge is how long a wallet session stays usable, counted from the
// Timestamp field. This is independent of the bearer token's own exp claim.
const SessionMaxAge = 24 * time.Hour

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// WalletSession is the authenticated wallet binding persisted on the client.
// Partial updates (e.g. a role assigned after signup) are merged into the
// stored envelope, never replace it.
type WalletSession struct {
	// Address is the lowercase-normalized 0x-prefixed wallet address.
	Address string `json:"address,omitempty"`
	// ChainID is the hex-encoded chain identifier, e.g. "0xaa36a7".
	ChainID string `json:"chainId,omitempty"`
	// IsConnected marks the session as live; cleared sessions and expired
	// sessions are treated the same by the guard.
	IsConnected bool `json:"isConnected,omitempty"`
	// Timestamp is the creation/refresh instant in milliseconds since epoch.
	Timestamp int64 `json:"timestamp,omitempty"`
	// Token is the opaque bearer string returned by the wallet login.
	Token string `json:"token,omitempty"`
	// Role is assigned after signup ("student", "university", ...).
	Role string `json:"role,omitempty"`
}

// Expired reports whether the session's Timestamp is older than SessionMaxAge
// at the given instant.
func (s WalletSession) Expired(now time.Time) bool {
	return now.UnixMilli()-s.Timestamp > SessionMaxAge.Milliseconds()
}

// NormalizeAddress lowercases and trims a wallet address.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// ValidAddress reports whether address is a 20-byte 0x-prefixed hex address.
func ValidAddress(address string) bool {
	return addressPattern.MatchString(address)
}
