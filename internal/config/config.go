package config

import (
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Defaults applied when neither environment nor flags provide a value. The
// backend host and contract address match the deployed VeriCred environment
// on the Sepolia testnet.
const (
	DefaultBackendURL      = "https://erired-harshitg7062-82spdej3.leapcell.dev"
	DefaultRequestTimeout  = 15 * time.Second
	DefaultContractAddress = "0xc0a70a43CD5fAF5B15db983fe9f9E769B221738e"
	DefaultExplorerBaseURL = "https://sepolia.etherscan.io"
	DefaultRefreshInterval = 30 * time.Second
)

// ClientConfig is the top-level configuration for the desk client, assembled
// by merging environment variables over command-line flags over defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to nested env lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type ClientConfig struct {
	// Backend holds the REST backend address and timeouts.
	Backend Backend `envPrefix:"BACKEND_"`
	// Chain holds the on-chain settings: RPC endpoint, credential contract
	// and block explorer.
	Chain Chain `envPrefix:"CHAIN_"`
	// Wallet holds the local keystore settings standing in for the browser
	// wallet extension.
	Wallet Wallet `envPrefix:"WALLET_"`
	// Storage holds the local session database settings.
	Storage Storage `envPrefix:"STORAGE_"`
	// Env describes the execution environment used for the
	// provider-unavailable fallbacks.
	Env Environment `envPrefix:"ENV_"`
	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`
}

// Backend holds network settings for the REST backend adapter.
type Backend struct {
	// BaseURL is the backend origin, scheme included.
	// Env: VERICRED_BACKEND_BASE_URL
	BaseURL string `env:"BASE_URL"`
	// RequestTimeout bounds every outbound backend request.
	// Env: VERICRED_BACKEND_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Chain holds on-chain endpoints and addresses.
type Chain struct {
	// RPCURL is the JSON-RPC endpoint of an Ethereum-compatible node.
	// Env: VERICRED_CHAIN_RPC_URL
	RPCURL string `env:"RPC_URL"`
	// ContractAddress is the credential contract exposing mintDoc.
	// Env: VERICRED_CHAIN_CONTRACT_ADDRESS
	ContractAddress string `env:"CONTRACT_ADDRESS"`
	// ExplorerBaseURL is the block explorer origin used in success links.
	// Env: VERICRED_CHAIN_EXPLORER_BASE_URL
	ExplorerBaseURL string `env:"EXPLORER_BASE_URL"`
}

// Wallet holds the local keystore settings.
type Wallet struct {
	// KeystoreDir is the directory holding encrypted key files. An empty or
	// missing directory means no wallet provider is available.
	// Env: VERICRED_WALLET_KEYSTORE_DIR
	KeystoreDir string `env:"KEYSTORE_DIR"`
	// Passphrase unlocks the keystore account for signing.
	// Env: VERICRED_WALLET_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`
}

// Storage holds the local database settings.
type Storage struct {
	// DBPath is the sqlite file holding the session envelopes.
	// Env: VERICRED_STORAGE_DB_PATH
	DBPath string `env:"DB_PATH"`
}

// Environment describes the client execution environment.
type Environment struct {
	// UserAgent drives the mobile/desktop decision when no wallet provider
	// is available.
	// Env: VERICRED_ENV_USER_AGENT
	UserAgent string `env:"USER_AGENT"`
	// DappHost is the site host embedded in the wallet deep link.
	// Env: VERICRED_ENV_DAPP_HOST
	DappHost string `env:"DAPP_HOST"`
}

// Workers holds background job settings.
type Workers struct {
	// PendingRefreshInterval defines how often the pending-requests view is
	// refreshed while visible.
	// Env: VERICRED_WORKERS_PENDING_REFRESH_INTERVAL
	PendingRefreshInterval time.Duration `env:"PENDING_REFRESH_INTERVAL"`
}

// GetClientConfig builds the client configuration: flags first, environment
// on top, defaults for whatever remains, then validation.
func GetClientConfig() (*ClientConfig, error) {
	cfg := ParseFlags()

	envCfg := &ClientConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, err
	}
	if err := mergo.Merge(cfg, envCfg, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging configs: %w", err)
	}

	cfg.applyDefaults()
	return cfg, cfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = DefaultBackendURL
	}
	if cfg.Backend.RequestTimeout <= 0 {
		cfg.Backend.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Chain.ContractAddress == "" {
		cfg.Chain.ContractAddress = DefaultContractAddress
	}
	if cfg.Chain.ExplorerBaseURL == "" {
		cfg.Chain.ExplorerBaseURL = DefaultExplorerBaseURL
	}
	if cfg.Workers.PendingRefreshInterval <= 0 {
		cfg.Workers.PendingRefreshInterval = DefaultRefreshInterval
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = "vericred.db"
	}
}

func (cfg *ClientConfig) validate() error {
	if cfg.Backend.BaseURL == "" || cfg.Backend.RequestTimeout <= 0 {
		return ErrInvalidBackendConfigs
	}
	if cfg.Chain.ContractAddress == "" {
		return ErrInvalidChainConfigs
	}
	if cfg.Storage.DBPath == "" {
		return ErrInvalidStorageConfigs
	}
	return nil
}
