package tui

import (
	"github.com/vericred/vericred-desk/internal/service"
	"github.com/vericred/vericred-desk/models"
)

type connectDoneMsg struct {
	session models.WalletSession
	err     error
}

type studentsLoadedMsg struct {
	students  []models.Student
	noAccount bool
	err       error
}

type mintFormReadyMsg struct {
	student    models.Student
	university models.University
	err        error
}

type uploadDoneMsg struct {
	recipient string
	link      string
	err       error
}

type mintDoneMsg struct {
	recipient string
	outcome   service.MintOutcome
	err       error
}

type pendingLoadedMsg struct {
	requests []models.MintRequest
	err      error
}

type pendingTickMsg struct{}

type approveDoneMsg struct {
	studentWallet string
	err           error
}

type ledgerLoadedMsg struct {
	rows []models.LedgerTransaction
	err  error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
