package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete.
var (
	// ErrInvalidBackendConfigs indicates a missing backend origin or a zero
	// request timeout.
	ErrInvalidBackendConfigs = errors.New("invalid backend configuration")
	// ErrInvalidChainConfigs indicates a missing credential contract address.
	ErrInvalidChainConfigs = errors.New("invalid chain configuration")
	// ErrInvalidStorageConfigs indicates a missing local database path.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
