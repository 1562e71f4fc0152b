package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/vericred/vericred-desk/models"
)

// studentsModel is the organization roster: the launchpad for minting.
type studentsModel struct {
	students  []models.Student
	idx       int
	loading   bool
	noAccount bool
	spinner   spinner.Model
	status    string
	address   string
}

func newStudentsModel() studentsModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return studentsModel{spinner: s, loading: true}
}

func (m studentsModel) current() (models.Student, bool) {
	if len(m.students) == 0 || m.idx < 0 || m.idx >= len(m.students) {
		return models.Student{}, false
	}
	return m.students[m.idx], true
}

func (m studentsModel) View() string {
	header := "VeriCred · Students"
	if m.address != "" {
		header += "  " + helpStyle.Render(shortAddress(m.address))
	}
	out := viewTitle(header) + "\n"

	switch {
	case m.loading:
		out += m.spinner.View() + " Loading...\n"
	case m.noAccount:
		out += "No organization account is linked to this wallet yet.\n"
		out += "Register your university on the VeriCred site first.\n"
	case len(m.students) == 0:
		out += "No students on the roster.\n"
	default:
		for i, student := range m.students {
			marker := " "
			if student.Eligibility == models.EligibilityEligible {
				marker = "*"
			}
			out += fmt.Sprintf("%s%s %s  %s\n",
				cursorFor(i == m.idx), marker,
				fitText(student.Name, 28), shortAddress(student.WalletAddress))
		}
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	out += "\n" + helpLine("m mint", "p pending", "g ledger", "r refresh", "l logout", "q quit")
	return out
}
