package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/vericred/vericred-desk/internal/config"
	"github.com/vericred/vericred-desk/internal/logger"
)

// mintDocABI is the fragment of the credential contract the client calls.
const mintDocABI = `[{"inputs":[{"internalType":"address","name":"recipient","type":"address"},{"internalType":"string","name":"tokenURI","type":"string"}],"name":"mintDoc","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"nonpayable","type":"function"}]`

const unlockWindow = time.Minute

// KeystoreProvider implements [Provider] over a go-ethereum file keystore and
// a JSON-RPC node. Interactive operations are serialised: a second request
// while one is in flight fails with [CodeRequestPending], matching browser
// wallet behaviour.
type KeystoreProvider struct {
	ks         *keystore.KeyStore
	passphrase string
	rpcURL     string
	contract   common.Address
	parsedABI  abi.ABI
	logger     *logger.Logger

	busy atomic.Bool

	mu     sync.Mutex
	client *ethclient.Client
}

// NewKeystoreProvider builds the provider from the chain and wallet
// configuration. An empty keystore directory yields a provider that reports
// itself unavailable rather than an error, the caller decides the fallback.
func NewKeystoreProvider(chain config.Chain, wcfg config.Wallet, logger *logger.Logger) (*KeystoreProvider, error) {
	parsed, err := abi.JSON(strings.NewReader(mintDocABI))
	if err != nil {
		return nil, fmt.Errorf("parse mint contract abi: %w", err)
	}

	p := &KeystoreProvider{
		passphrase: wcfg.Passphrase,
		rpcURL:     chain.RPCURL,
		contract:   common.HexToAddress(chain.ContractAddress),
		parsedABI:  parsed,
		logger:     logger,
	}
	if wcfg.KeystoreDir != "" {
		p.ks = keystore.NewKeyStore(wcfg.KeystoreDir, keystore.StandardScryptN, keystore.StandardScryptP)
	}
	return p, nil
}

// Available implements [Provider].
func (p *KeystoreProvider) Available() bool {
	return p.ks != nil && len(p.ks.Accounts()) > 0
}

func (p *KeystoreProvider) acquire() error {
	if !p.Available() {
		return ErrNoProvider
	}
	if !p.busy.CompareAndSwap(false, true) {
		return &ProviderError{Code: CodeRequestPending, Message: "a wallet request is already pending"}
	}
	return nil
}

func (p *KeystoreProvider) release() { p.busy.Store(false) }

func (p *KeystoreProvider) dial(ctx context.Context) (*ethclient.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	if p.rpcURL == "" {
		return nil, errors.New("no rpc endpoint configured")
	}

	client, err := ethclient.DialContext(ctx, p.rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc node: %w", err)
	}
	p.client = client
	return client, nil
}

func (p *KeystoreProvider) account(address string) (accounts.Account, error) {
	target := common.HexToAddress(address)
	for _, acc := range p.ks.Accounts() {
		if acc.Address == target {
			return acc, nil
		}
	}
	return accounts.Account{}, fmt.Errorf("no keystore account for %s", address)
}

// RequestAccounts implements [Provider].
func (p *KeystoreProvider) RequestAccounts(_ context.Context) ([]string, error) {
	if err := p.acquire(); err != nil {
		return nil, err
	}
	defer p.release()

	accs := p.ks.Accounts()
	addresses := make([]string, 0, len(accs))
	for _, acc := range accs {
		addresses = append(addresses, acc.Address.Hex())
	}
	return addresses, nil
}

// ChainID implements [Provider].
func (p *KeystoreProvider) ChainID(ctx context.Context) (string, error) {
	if !p.Available() {
		return "", ErrNoProvider
	}

	client, err := p.dial(ctx)
	if err != nil {
		return "", err
	}
	id, err := client.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("query chain id: %w", err)
	}
	return hexutil.EncodeBig(id), nil
}

// SignMessage implements [Provider]. The message is hashed with the
// personal-message prefix and the recovery byte is shifted to the 27/28 form
// the backend verifies against.
func (p *KeystoreProvider) SignMessage(_ context.Context, address, message string) (string, error) {
	if err := p.acquire(); err != nil {
		return "", err
	}
	defer p.release()

	acc, err := p.account(address)
	if err != nil {
		return "", err
	}

	sig, err := p.ks.SignHashWithPassphrase(acc, p.passphrase, accounts.TextHash([]byte(message)))
	if err != nil {
		if errors.Is(err, keystore.ErrDecrypt) {
			return "", &ProviderError{Code: CodeUserRejected, Message: "signature request denied"}
		}
		return "", fmt.Errorf("sign message: %w", err)
	}

	sig[64] += 27
	return hexutil.Encode(sig), nil
}

// MintCredential implements [Provider].
func (p *KeystoreProvider) MintCredential(ctx context.Context, from, recipient, tokenURI string) (*MintReceipt, error) {
	if err := p.acquire(); err != nil {
		return nil, err
	}
	defer p.release()

	acc, err := p.account(from)
	if err != nil {
		return nil, err
	}
	client, err := p.dial(ctx)
	if err != nil {
		return nil, err
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("query chain id: %w", err)
	}

	if err = p.ks.TimedUnlock(acc, p.passphrase, unlockWindow); err != nil {
		if errors.Is(err, keystore.ErrDecrypt) {
			return nil, &ProviderError{Code: CodeUserRejected, Message: "transaction request denied"}
		}
		return nil, fmt.Errorf("unlock account: %w", err)
	}
	defer func() { _ = p.ks.Lock(acc.Address) }()

	opts, err := bind.NewKeyStoreTransactorWithChainID(p.ks, acc, chainID)
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}
	opts.Context = ctx

	contract := bind.NewBoundContract(p.contract, p.parsedABI, client, client, client)
	tx, err := contract.Transact(opts, "mintDoc", common.HexToAddress(recipient), tokenURI)
	if err != nil {
		return nil, fmt.Errorf("send mint transaction: %w", err)
	}

	p.logger.Info().Str("tx", tx.Hash().Hex()).Msg("mint transaction sent, waiting for confirmation")

	receipt, err := bind.WaitMined(ctx, client, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for mint transaction: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("mint transaction %s reverted", tx.Hash().Hex())
	}

	return &MintReceipt{
		TxHash:      tx.Hash().Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}, nil
}

var _ Provider = (*KeystoreProvider)(nil)
