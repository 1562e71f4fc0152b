package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-backend-url backend origin
//	-request-timeout backend request timeout (e.g., "15s")
//	-rpc-url Ethereum JSON-RPC endpoint
//	-contract credential contract address
//	-explorer-url block explorer origin
//	-keystore keystore directory
//	-db local session database path
//	-dapp-host site host for the wallet deep link
//	-pending-refresh pending-requests refresh interval
func ParseFlags() *ClientConfig {
	var backendURL string
	var requestTimeout time.Duration
	var rpcURL, contractAddress, explorerURL string
	var keystoreDir, dbPath, dappHost string
	var pendingRefresh time.Duration

	flag.StringVar(&backendURL, "backend-url", "", "Backend origin")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Backend request timeout (e.g., 15s)")
	flag.StringVar(&rpcURL, "rpc-url", "", "Ethereum JSON-RPC endpoint")
	flag.StringVar(&contractAddress, "contract", "", "Credential contract address")
	flag.StringVar(&explorerURL, "explorer-url", "", "Block explorer origin")
	flag.StringVar(&keystoreDir, "keystore", "", "Keystore directory")
	flag.StringVar(&dbPath, "db", "", "Local session database path")
	flag.StringVar(&dappHost, "dapp-host", "", "Site host for the wallet deep link")
	flag.DurationVar(&pendingRefresh, "pending-refresh", 0, "Pending-requests refresh interval")

	flag.Parse()

	return &ClientConfig{
		Backend: Backend{BaseURL: backendURL, RequestTimeout: requestTimeout},
		Chain: Chain{
			RPCURL:          rpcURL,
			ContractAddress: contractAddress,
			ExplorerBaseURL: explorerURL,
		},
		Wallet:  Wallet{KeystoreDir: keystoreDir},
		Storage: Storage{DBPath: dbPath},
		Env:     Environment{DappHost: dappHost},
		Workers: Workers{PendingRefreshInterval: pendingRefresh},
	}
}
