package config

import (
	"testing"
	"time"

	"dario.cat/mergo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_ReadsPrefixedVariables(t *testing.T) {
	t.Setenv("VERICRED_BACKEND_BASE_URL", "https://backend.test")
	t.Setenv("VERICRED_BACKEND_REQUEST_TIMEOUT", "7s")
	t.Setenv("VERICRED_CHAIN_CONTRACT_ADDRESS", "0x0000000000000000000000000000000000000001")
	t.Setenv("VERICRED_ENV_DAPP_HOST", "vericred.example.com")

	cfg := &ClientConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "https://backend.test", cfg.Backend.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.Backend.RequestTimeout)
	assert.Equal(t, "0x0000000000000000000000000000000000000001", cfg.Chain.ContractAddress)
	assert.Equal(t, "vericred.example.com", cfg.Env.DappHost)
}

func TestMerge_EnvOverridesFlags(t *testing.T) {
	flagsCfg := &ClientConfig{
		Backend: Backend{BaseURL: "https://from-flags.test", RequestTimeout: 5 * time.Second},
		Storage: Storage{DBPath: "flags.db"},
	}
	envCfg := &ClientConfig{
		Backend: Backend{BaseURL: "https://from-env.test"},
	}

	require.NoError(t, mergo.Merge(flagsCfg, envCfg, mergo.WithOverride))

	assert.Equal(t, "https://from-env.test", flagsCfg.Backend.BaseURL)
	// Fields the environment leaves empty keep their flag values.
	assert.Equal(t, 5*time.Second, flagsCfg.Backend.RequestTimeout)
	assert.Equal(t, "flags.db", flagsCfg.Storage.DBPath)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &ClientConfig{}
	cfg.applyDefaults()

	assert.Equal(t, DefaultBackendURL, cfg.Backend.BaseURL)
	assert.Equal(t, DefaultRequestTimeout, cfg.Backend.RequestTimeout)
	assert.Equal(t, DefaultContractAddress, cfg.Chain.ContractAddress)
	assert.Equal(t, DefaultExplorerBaseURL, cfg.Chain.ExplorerBaseURL)
	assert.Equal(t, DefaultRefreshInterval, cfg.Workers.PendingRefreshInterval)
	assert.Equal(t, "vericred.db", cfg.Storage.DBPath)

	require.NoError(t, cfg.validate())
}

func TestApplyDefaults_KeepsProvidedValues(t *testing.T) {
	cfg := &ClientConfig{
		Backend: Backend{BaseURL: "https://backend.test", RequestTimeout: time.Minute},
	}
	cfg.applyDefaults()

	assert.Equal(t, "https://backend.test", cfg.Backend.BaseURL)
	assert.Equal(t, time.Minute, cfg.Backend.RequestTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ClientConfig)
		wantErr error
	}{
		{name: "missing backend url", mutate: func(c *ClientConfig) { c.Backend.BaseURL = "" }, wantErr: ErrInvalidBackendConfigs},
		{name: "zero timeout", mutate: func(c *ClientConfig) { c.Backend.RequestTimeout = 0 }, wantErr: ErrInvalidBackendConfigs},
		{name: "missing contract", mutate: func(c *ClientConfig) { c.Chain.ContractAddress = "" }, wantErr: ErrInvalidChainConfigs},
		{name: "missing db path", mutate: func(c *ClientConfig) { c.Storage.DBPath = "" }, wantErr: ErrInvalidStorageConfigs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ClientConfig{}
			cfg.applyDefaults()
			tt.mutate(cfg)

			assert.ErrorIs(t, cfg.validate(), tt.wantErr)
		})
	}
}
