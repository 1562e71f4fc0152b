package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/vericred/vericred-desk/models"
)

// ledgerModel shows the public mint ledger. No authentication required.
type ledgerModel struct {
	rows    []models.LedgerTransaction
	idx     int
	loading bool
	spinner spinner.Model
}

func newLedgerModel() ledgerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return ledgerModel{spinner: s}
}

func (m ledgerModel) View() string {
	out := viewTitle("VeriCred · Public ledger") + "\n"

	switch {
	case m.loading:
		out += m.spinner.View() + " Loading...\n"
	case len(m.rows) == 0:
		out += "No transactions recorded.\n"
	default:
		for i, row := range m.rows {
			line := fmt.Sprintf("%s%s  %s -> %s",
				cursorFor(i == m.idx),
				fitText(row.TxHash, 16),
				shortAddress(row.From), shortAddress(row.To))
			if row.Status != "" {
				line += "  " + row.Status
			}
			out += line + "\n"
		}
	}

	out += "\n" + helpLine("r refresh", "esc back", "q quit")
	return out
}
