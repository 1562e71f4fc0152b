package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
)

// entryModel is the wallet connect screen shown before authentication.
type entryModel struct {
	connecting bool
	spinner    spinner.Model
	notice     string
}

func newEntryModel() entryModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return entryModel{spinner: s}
}

func (m entryModel) View() string {
	out := viewTitle("VeriCred") + "\n"
	out += "Academic credentials on-chain.\n\n"

	if m.connecting {
		out += m.spinner.View() + " Connecting wallet...\n"
	} else {
		out += "Connect your wallet to continue.\n"
	}

	if m.notice != "" {
		out += "\n" + m.notice + "\n"
	}

	out += "\n" + helpLine("enter connect", "g public ledger", "q quit")
	return out
}
