package service

import "errors"

var (
	ErrWalletNotInstalled   = errors.New("no wallet detected, install MetaMask to continue")
	ErrSentToWalletApp      = errors.New("continue in the MetaMask mobile app")
	ErrInvalidWalletAddress = errors.New("wallet returned an invalid address")
	ErrAddressChanged       = errors.New("active wallet account changed during login")
	ErrUserRejected         = errors.New("request rejected in the wallet")
	ErrWalletBusy           = errors.New("a wallet request is already pending, open the wallet to resolve it")

	ErrIllegalTransition = errors.New("illegal workflow state transition")
	ErrNotAuthenticated  = errors.New("no authenticated wallet session")

	ErrMintInFlight = errors.New("a mint for this recipient is already in flight")
	ErrNoWorkflow   = errors.New("no mint workflow for this recipient")
)
