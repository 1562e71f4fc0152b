package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/vericred/vericred-desk/models"
)

// pendingModel lists the mint requests students filed with this organization.
type pendingModel struct {
	requests []models.MintRequest
	idx      int
	loading  bool
	spinner  spinner.Model
	status   string
}

func newPendingModel() pendingModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return pendingModel{spinner: s}
}

func (m pendingModel) current() (models.MintRequest, bool) {
	if len(m.requests) == 0 || m.idx < 0 || m.idx >= len(m.requests) {
		return models.MintRequest{}, false
	}
	return m.requests[m.idx], true
}

func (m pendingModel) View() string {
	out := viewTitle("VeriCred · Pending requests") + "\n"

	switch {
	case m.loading:
		out += m.spinner.View() + " Loading...\n"
	case len(m.requests) == 0:
		out += "No pending mint requests.\n"
	default:
		for i, req := range m.requests {
			label := req.StudentWallet
			if req.ID != "" {
				label = fmt.Sprintf("#%s %s", req.ID, shortAddress(req.StudentWallet))
			}
			out += cursorFor(i == m.idx) + label + "\n"
		}
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	out += "\n" + helpLine("a approve", "r refresh", "esc back", "q quit")
	return out
}
