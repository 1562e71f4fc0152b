package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/vericred/vericred-desk/internal/service"
	"github.com/vericred/vericred-desk/models"
)

// Positions of the credential form inputs.
const (
	fieldName = iota
	fieldDescription
	fieldCredentialType
	fieldMajor
	fieldIssueDate
	fieldGraduationDate
	fieldGPA
	fieldCredentialID
	fieldAccreditation
	fieldDeanSig
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Credential name",
	"Description",
	"Credential type",
	"Major",
	"Issue date (YYYY-MM-DD)",
	"Graduation date (YYYY-MM-DD)",
	"GPA",
	"Credential ID",
	"Accreditation body",
	"Dean signature hash",
}

type mintPhase int

const (
	phaseEditing mintPhase = iota
	phaseUploading
	phaseAwaiting
	phaseMinting
	phaseDone
)

// mintFormModel walks one credential through form, upload and confirmed mint.
type mintFormModel struct {
	student    models.Student
	university models.University

	inputs  []textinput.Model
	focus   int
	phase   mintPhase
	spinner spinner.Model

	contentAddress string
	outcome        service.MintOutcome
	status         string
}

func newMintFormModel(student models.Student, university models.University) mintFormModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
	}
	inputs[fieldName].Focus()

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return mintFormModel{
		student:    student,
		university: university,
		inputs:     inputs,
		spinner:    s,
	}
}

func (m mintFormModel) toForm() service.MintForm {
	return service.MintForm{
		Name:              m.inputs[fieldName].Value(),
		Description:       m.inputs[fieldDescription].Value(),
		CredentialType:    m.inputs[fieldCredentialType].Value(),
		Major:             m.inputs[fieldMajor].Value(),
		IssueDate:         m.inputs[fieldIssueDate].Value(),
		GraduationDate:    m.inputs[fieldGraduationDate].Value(),
		GPA:               m.inputs[fieldGPA].Value(),
		CredentialID:      m.inputs[fieldCredentialID].Value(),
		AccreditationBody: m.inputs[fieldAccreditation].Value(),
		DeanSignatureHash: m.inputs[fieldDeanSig].Value(),
	}
}

func (m mintFormModel) View() string {
	title := "Mint credential · " + m.student.Name + " " + shortAddress(m.student.WalletAddress)
	out := viewTitle(title) + "\n"

	switch m.phase {
	case phaseEditing:
		for i, input := range m.inputs {
			out += fieldLabels[i] + ": [" + input.View() + "]\n"
		}
		out += "\n" + helpLine("tab next field", "enter upload", "esc cancel")
	case phaseUploading:
		out += m.spinner.View() + " Uploading credential document...\n"
	case phaseAwaiting:
		out += "Document pinned.\n\n"
		out += "Content address: " + linkStyle.Render(m.contentAddress) + "\n\n"
		out += "Minting will bind the credential to exactly this document.\n"
		out += "\n" + helpLine("y mint", "c copy address", "esc cancel")
	case phaseMinting:
		out += m.spinner.View() + " Waiting for the transaction to be mined...\n"
	case phaseDone:
		out += "Credential minted.\n\n"
		out += "Tx hash:  " + m.outcome.TxHash + "\n"
		out += "Explorer: " + linkStyle.Render(m.outcome.ExplorerLink) + "\n"
		if m.outcome.ReconcileError != "" {
			out += "\nWarning: the pending request was not marked approved: " + m.outcome.ReconcileError + "\n"
		}
		out += "\n" + helpLine("c copy link", "esc back to students")
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}
	return out
}
