package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vericred/vericred-desk/internal/adapter"
	"github.com/vericred/vericred-desk/internal/service"
	"github.com/vericred/vericred-desk/models"
)

type screen int

const (
	screenEntry screen = iota
	screenStudents
	screenMintForm
	screenPending
	screenLedger
)

type appModel struct {
	ctx             context.Context
	services        *service.Services
	refreshInterval time.Duration

	currentScreen screen
	session       models.WalletSession

	entry    entryModel
	students studentsModel
	mintForm mintFormModel
	pending  pendingModel
	ledger   ledgerModel

	showError    bool
	errorOverlay errorOverlayModel
	showConfirm  bool
	confirm      confirmModel

	logout bool
	err    error
}

func newAppModel(ctx context.Context, services *service.Services, session models.WalletSession, authenticated bool, refreshInterval time.Duration) appModel {
	m := appModel{
		ctx:             ctx,
		services:        services,
		refreshInterval: refreshInterval,
		session:         session,
		entry:           newEntryModel(),
		students:        newStudentsModel(),
		pending:         newPendingModel(),
		ledger:          newLedgerModel(),
	}
	if authenticated {
		m.currentScreen = screenStudents
		m.students.address = session.Address
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.currentScreen == screenStudents {
		return tea.Batch(m.students.spinner.Tick, m.cmdLoadStudents())
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.services.Pending.StopAutoRefresh()
			m.err = ErrUserQuit
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				m.mintForm.phase = phaseMinting
				return m, tea.Batch(m.mintForm.spinner.Tick, m.cmdConfirmMint(m.mintForm.student.WalletAddress))
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
			}
			return m, nil
		}

	case connectDoneMsg:
		return m.onConnectDone(msg)
	case studentsLoadedMsg:
		return m.onStudentsLoaded(msg)
	case mintFormReadyMsg:
		return m.onMintFormReady(msg)
	case uploadDoneMsg:
		return m.onUploadDone(msg)
	case mintDoneMsg:
		return m.onMintDone(msg)
	case pendingLoadedMsg:
		return m.onPendingLoaded(msg)
	case pendingTickMsg:
		if m.currentScreen != screenPending {
			return m, nil
		}
		m.pending.requests = m.services.Pending.List()
		if m.pending.idx >= len(m.pending.requests) {
			m.pending.idx = max(len(m.pending.requests)-1, 0)
		}
		return m, m.cmdPendingTick()
	case approveDoneMsg:
		return m.onApproveDone(msg)
	case ledgerLoadedMsg:
		if m.currentScreen != screenLedger {
			return m, nil
		}
		m.ledger.loading = false
		if msg.err != nil {
			m.showErrorf(humanizeNetworkError(msg.err))
			return m, nil
		}
		m.ledger.rows = msg.rows
		return m, nil
	case copiedMsg:
		m.setStatus("Copied!")
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.setStatus("")
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenEntry:
		return m.updateEntry(msg)
	case screenStudents:
		return m.updateStudents(msg)
	case screenMintForm:
		return m.updateMintForm(msg)
	case screenPending:
		return m.updatePending(msg)
	case screenLedger:
		return m.updateLedger(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenEntry:
		body = m.entry.View()
	case screenStudents:
		body = m.students.View()
	case screenMintForm:
		body = m.mintForm.View()
	case screenPending:
		body = m.pending.View()
	case screenLedger:
		body = m.ledger.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m *appModel) setStatus(status string) {
	m.students.status = status
	m.pending.status = status
	m.mintForm.status = status
}

// requireAuth re-checks the guard before a protected screen renders; an
// expired or cleared session drops the operator back to the entry screen.
func (m *appModel) requireAuth() bool {
	if m.services.Guard.Check(m.ctx) == service.DecisionAllow {
		return true
	}
	m.services.Pending.StopAutoRefresh()
	m.currentScreen = screenEntry
	m.entry.notice = "Session expired, connect again."
	return false
}

// ---- entry -----------------------------------------------------------------

func (m appModel) updateEntry(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			m.err = ErrUserQuit
			return m, tea.Quit
		case key.Matches(msg, keys.ledger):
			m.currentScreen = screenLedger
			m.ledger.loading = true
			return m, tea.Batch(m.ledger.spinner.Tick, m.cmdLoadLedger())
		case key.Matches(msg, keys.enter):
			if m.entry.connecting {
				return m, nil
			}
			m.entry.connecting = true
			m.entry.notice = ""
			return m, tea.Batch(m.entry.spinner.Tick, m.cmdConnect())
		}
	case spinner.TickMsg:
		if m.entry.connecting {
			var cmd tea.Cmd
			m.entry.spinner, cmd = m.entry.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m appModel) onConnectDone(msg connectDoneMsg) (tea.Model, tea.Cmd) {
	if m.currentScreen != screenEntry {
		return m, nil
	}
	m.entry.connecting = false

	if msg.err != nil {
		m.entry.notice = connectNotice(msg.err)
		return m, nil
	}

	m.session = msg.session
	m.students = newStudentsModel()
	m.students.address = msg.session.Address
	m.currentScreen = screenStudents
	return m, tea.Batch(m.students.spinner.Tick, m.cmdLoadStudents())
}

func connectNotice(err error) string {
	switch {
	case errors.Is(err, service.ErrSentToWalletApp):
		return "Opened the MetaMask app link. Finish there, then connect again."
	case errors.Is(err, service.ErrWalletNotInstalled):
		return "No wallet found on this machine. Install MetaMask to continue."
	case errors.Is(err, service.ErrUserRejected):
		return "Signature request declined."
	case errors.Is(err, service.ErrWalletBusy):
		return "The wallet is already handling a request, finish it first."
	default:
		return humanizeNetworkError(err)
	}
}

// ---- students --------------------------------------------------------------

func (m appModel) updateStudents(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			if m.students.idx > 0 {
				m.students.idx--
			}
		case key.Matches(msg, keys.down):
			if m.students.idx < len(m.students.students)-1 {
				m.students.idx++
			}
		case key.Matches(msg, keys.mint):
			student, ok := m.students.current()
			if !ok {
				return m, nil
			}
			if !m.requireAuth() {
				return m, nil
			}
			return m, m.cmdPrepareMint(student)
		case key.Matches(msg, keys.pending):
			if !m.requireAuth() {
				return m, nil
			}
			m.currentScreen = screenPending
			m.pending.loading = true
			m.services.Pending.StartAutoRefresh(m.ctx, m.refreshInterval)
			return m, tea.Batch(m.pending.spinner.Tick, m.cmdRefreshPending(), m.cmdPendingTick())
		case key.Matches(msg, keys.ledger):
			m.currentScreen = screenLedger
			m.ledger.loading = true
			return m, tea.Batch(m.ledger.spinner.Tick, m.cmdLoadLedger())
		case key.Matches(msg, keys.refresh):
			m.students.loading = true
			return m, tea.Batch(m.students.spinner.Tick, m.cmdLoadStudents())
		case key.Matches(msg, keys.logout):
			m.services.Pending.StopAutoRefresh()
			if err := m.services.Auth.Logout(m.ctx); err != nil {
				m.showErrorf(err.Error())
				return m, nil
			}
			m.logout = true
			return m, tea.Quit
		case key.Matches(msg, keys.quit):
			m.services.Pending.StopAutoRefresh()
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.students.loading {
			var cmd tea.Cmd
			m.students.spinner, cmd = m.students.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m appModel) onStudentsLoaded(msg studentsLoadedMsg) (tea.Model, tea.Cmd) {
	if m.currentScreen != screenStudents {
		return m, nil
	}
	m.students.loading = false
	m.students.noAccount = msg.noAccount

	if msg.err != nil {
		m.showErrorf(humanizeNetworkError(msg.err))
		return m, nil
	}
	m.students.students = msg.students
	if m.students.idx >= len(m.students.students) {
		m.students.idx = max(len(m.students.students)-1, 0)
	}
	return m, nil
}

// ---- mint form -------------------------------------------------------------

func (m appModel) onMintFormReady(msg mintFormReadyMsg) (tea.Model, tea.Cmd) {
	if m.currentScreen != screenStudents {
		return m, nil
	}
	if msg.err != nil {
		m.showErrorf(humanizeNetworkError(msg.err))
		return m, nil
	}
	m.mintForm = newMintFormModel(msg.student, msg.university)
	m.currentScreen = screenMintForm
	return m, nil
}

func (m appModel) updateMintForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mintForm.phase {
		case phaseEditing:
			return m.updateMintFormEditing(msg)
		case phaseAwaiting:
			switch {
			case key.Matches(msg, keys.yes), key.Matches(msg, keys.enter):
				m.showConfirm = true
				m.confirm.message = fmt.Sprintf("Mint %q to %s?",
					m.mintForm.inputs[fieldName].Value(), m.mintForm.student.Name)
			case key.Matches(msg, keys.copy):
				return m, cmdCopyToClipboard(m.mintForm.contentAddress)
			case key.Matches(msg, keys.esc):
				m.currentScreen = screenStudents
			}
			return m, nil
		case phaseDone:
			switch {
			case key.Matches(msg, keys.copy):
				return m, cmdCopyToClipboard(m.mintForm.outcome.ExplorerLink)
			case key.Matches(msg, keys.esc), key.Matches(msg, keys.enter):
				m.currentScreen = screenStudents
				m.students.loading = true
				return m, tea.Batch(m.students.spinner.Tick, m.cmdLoadStudents())
			}
			return m, nil
		default:
			// Uploading or minting: ignore input until the step settles.
			return m, nil
		}
	case spinner.TickMsg:
		if m.mintForm.phase == phaseUploading || m.mintForm.phase == phaseMinting {
			var cmd tea.Cmd
			m.mintForm.spinner, cmd = m.mintForm.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m appModel) updateMintFormEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.currentScreen = screenStudents
		return m, nil
	case key.Matches(msg, keys.tab):
		m.mintForm = focusNextMintForm(m.mintForm)
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.mintForm = focusPrevMintForm(m.mintForm)
		return m, nil
	case key.Matches(msg, keys.enter):
		if strings.TrimSpace(m.mintForm.inputs[fieldName].Value()) == "" ||
			strings.TrimSpace(m.mintForm.inputs[fieldDescription].Value()) == "" {
			m.showErrorf("Name and description are required")
			return m, nil
		}
		m.mintForm.phase = phaseUploading
		return m, tea.Batch(m.mintForm.spinner.Tick,
			m.cmdUpload(m.mintForm.student, m.mintForm.university, m.mintForm.toForm()))
	}

	var cmd tea.Cmd
	m.mintForm.inputs[m.mintForm.focus], cmd = m.mintForm.inputs[m.mintForm.focus].Update(msg)
	return m, cmd
}

func (m appModel) onUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	// A stale result for a different recipient (or after leaving the form)
	// is dropped on the floor.
	if m.currentScreen != screenMintForm || msg.recipient != models.NormalizeAddress(m.mintForm.student.WalletAddress) {
		return m, nil
	}

	if msg.err != nil {
		m.mintForm.phase = phaseEditing
		m.showErrorf(uploadNotice(msg.err))
		return m, nil
	}
	m.mintForm.phase = phaseAwaiting
	m.mintForm.contentAddress = msg.link
	return m, nil
}

func uploadNotice(err error) string {
	switch {
	case errors.Is(err, models.ErrIncompleteMetadata):
		return "The form is incomplete: type, major, dates and institution fields are required."
	case errors.Is(err, adapter.ErrNoContentAddress):
		return "The upload service returned no content address, try again."
	default:
		return humanizeNetworkError(err)
	}
}

func (m appModel) onMintDone(msg mintDoneMsg) (tea.Model, tea.Cmd) {
	if m.currentScreen != screenMintForm || msg.recipient != models.NormalizeAddress(m.mintForm.student.WalletAddress) {
		return m, nil
	}

	if msg.err != nil {
		// The uploaded document survives; y retries the mint directly.
		m.mintForm.phase = phaseAwaiting
		m.showErrorf(mintNotice(msg.err))
		return m, nil
	}
	m.mintForm.phase = phaseDone
	m.mintForm.outcome = msg.outcome
	return m, nil
}

func mintNotice(err error) string {
	switch {
	case errors.Is(err, service.ErrUserRejected):
		return "Transaction declined in the wallet."
	case errors.Is(err, service.ErrWalletBusy):
		return "The wallet is already handling a request, finish it first."
	case errors.Is(err, service.ErrMintInFlight):
		return "A mint for this student is already running."
	default:
		return humanizeNetworkError(err)
	}
}

// ---- pending ---------------------------------------------------------------

func (m appModel) updatePending(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			if m.pending.idx > 0 {
				m.pending.idx--
			}
		case key.Matches(msg, keys.down):
			if m.pending.idx < len(m.pending.requests)-1 {
				m.pending.idx++
			}
		case key.Matches(msg, keys.approve):
			req, ok := m.pending.current()
			if !ok {
				return m, nil
			}
			return m, m.cmdApprove(req.StudentWallet)
		case key.Matches(msg, keys.refresh):
			m.pending.loading = true
			return m, tea.Batch(m.pending.spinner.Tick, m.cmdRefreshPending())
		case key.Matches(msg, keys.esc):
			m.services.Pending.StopAutoRefresh()
			m.currentScreen = screenStudents
		case key.Matches(msg, keys.quit):
			m.services.Pending.StopAutoRefresh()
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.pending.loading {
			var cmd tea.Cmd
			m.pending.spinner, cmd = m.pending.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m appModel) onPendingLoaded(msg pendingLoadedMsg) (tea.Model, tea.Cmd) {
	if m.currentScreen != screenPending {
		return m, nil
	}
	m.pending.loading = false
	if msg.err != nil {
		m.showErrorf(humanizeNetworkError(msg.err))
		return m, nil
	}
	m.pending.requests = msg.requests
	if m.pending.idx >= len(m.pending.requests) {
		m.pending.idx = max(len(m.pending.requests)-1, 0)
	}
	return m, nil
}

func (m appModel) onApproveDone(msg approveDoneMsg) (tea.Model, tea.Cmd) {
	if m.currentScreen != screenPending {
		return m, nil
	}
	if msg.err != nil {
		m.showErrorf(humanizeNetworkError(msg.err))
		return m, nil
	}
	m.pending.requests = m.services.Pending.List()
	if m.pending.idx >= len(m.pending.requests) {
		m.pending.idx = max(len(m.pending.requests)-1, 0)
	}
	m.pending.status = "Approved " + shortAddress(msg.studentWallet)
	return m, cmdClearStatus()
}

// ---- ledger ----------------------------------------------------------------

func (m appModel) updateLedger(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			if m.ledger.idx > 0 {
				m.ledger.idx--
			}
		case key.Matches(msg, keys.down):
			if m.ledger.idx < len(m.ledger.rows)-1 {
				m.ledger.idx++
			}
		case key.Matches(msg, keys.refresh):
			m.ledger.loading = true
			return m, tea.Batch(m.ledger.spinner.Tick, m.cmdLoadLedger())
		case key.Matches(msg, keys.esc):
			if m.session.Address == "" {
				m.currentScreen = screenEntry
			} else {
				m.currentScreen = screenStudents
			}
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.ledger.loading {
			var cmd tea.Cmd
			m.ledger.spinner, cmd = m.ledger.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// ---- commands --------------------------------------------------------------

func (m appModel) cmdConnect() tea.Cmd {
	ctx := m.ctx
	auth := m.services.Auth
	return func() tea.Msg {
		session, err := auth.Connect(ctx)
		return connectDoneMsg{session: session, err: err}
	}
}

func (m appModel) cmdLoadStudents() tea.Cmd {
	ctx := m.ctx
	directory := m.services.Directory
	return func() tea.Msg {
		students, err := directory.Students(ctx)
		if errors.Is(err, adapter.ErrNoAccount) {
			return studentsLoadedMsg{noAccount: true}
		}
		return studentsLoadedMsg{students: students, err: err}
	}
}

func (m appModel) cmdPrepareMint(student models.Student) tea.Cmd {
	ctx := m.ctx
	directory := m.services.Directory
	address := m.session.Address
	return func() tea.Msg {
		university, err := directory.SpecificUniversity(ctx, address)
		return mintFormReadyMsg{student: student, university: university, err: err}
	}
}

func (m appModel) cmdUpload(student models.Student, university models.University, form service.MintForm) tea.Cmd {
	ctx := m.ctx
	mint := m.services.Mint
	recipient := models.NormalizeAddress(student.WalletAddress)
	return func() tea.Msg {
		if err := mint.Begin(student, university, form); err != nil {
			return uploadDoneMsg{recipient: recipient, err: err}
		}
		link, err := mint.Upload(ctx, recipient)
		return uploadDoneMsg{recipient: recipient, link: link, err: err}
	}
}

func (m appModel) cmdConfirmMint(recipientWallet string) tea.Cmd {
	ctx := m.ctx
	mint := m.services.Mint
	recipient := models.NormalizeAddress(recipientWallet)
	return func() tea.Msg {
		outcome, err := mint.Confirm(ctx, recipient)
		return mintDoneMsg{recipient: recipient, outcome: outcome, err: err}
	}
}

func (m appModel) cmdRefreshPending() tea.Cmd {
	ctx := m.ctx
	pending := m.services.Pending
	return func() tea.Msg {
		requests, err := pending.Refresh(ctx)
		return pendingLoadedMsg{requests: requests, err: err}
	}
}

// cmdPendingTick re-reads the service cache kept warm by the auto-refresh job.
func (m appModel) cmdPendingTick() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return pendingTickMsg{}
	})
}

func (m appModel) cmdApprove(studentWallet string) tea.Cmd {
	ctx := m.ctx
	pending := m.services.Pending
	return func() tea.Msg {
		err := pending.Approve(ctx, studentWallet)
		return approveDoneMsg{studentWallet: studentWallet, err: err}
	}
}

func (m appModel) cmdLoadLedger() tea.Cmd {
	ctx := m.ctx
	directory := m.services.Directory
	return func() tea.Msg {
		rows, err := directory.Ledger(ctx)
		return ledgerLoadedMsg{rows: rows, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return clearStatusMsg{}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func focusNextMintForm(m mintFormModel) mintFormModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevMintForm(m mintFormModel) mintFormModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}
