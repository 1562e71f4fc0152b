package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vericred/vericred-desk/internal/adapter"
	"github.com/vericred/vericred-desk/internal/config"
	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/store"
	"github.com/vericred/vericred-desk/internal/wallet"
	"github.com/vericred/vericred-desk/models"
)

// MintState is the position of one issue workflow.
type MintState int

const (
	MintFormEditing MintState = iota
	MintUploading
	MintAwaitingConfirmation
	MintMinting
	MintPersisting
	MintComplete
	MintFailed
)

func (s MintState) String() string {
	switch s {
	case MintFormEditing:
		return "form_editing"
	case MintUploading:
		return "uploading"
	case MintAwaitingConfirmation:
		return "awaiting_confirmation"
	case MintMinting:
		return "minting"
	case MintPersisting:
		return "persisting"
	case MintComplete:
		return "complete"
	case MintFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MintForm is the operator-entered credential form. Dates stay strings:
// IssueDate and GraduationDate arrive as YYYY-MM-DD calendar values.
type MintForm struct {
	Name              string
	Description       string
	CredentialType    string
	Major             string
	IssueDate         string
	GraduationDate    string
	GPA               string
	CredentialID      string
	AccreditationBody string
	DeanSignatureHash string
}

// MintOutcome is the result of a confirmed mint. ReconcileError is non-empty
// when the mint succeeded but the recipient's pending request could not be
// marked approved on the backend; the UI shows it next to the success notice.
type MintOutcome struct {
	TxHash         string
	ExplorerLink   string
	Record         models.MintedCredentialRecord
	ReconcileError string
}

// MintWorkflowView is a read-only snapshot handed to the UI.
type MintWorkflowView struct {
	State          MintState
	Student        models.Student
	University     models.University
	ContentAddress string
	LastError      string
}

type mintWorkflow struct {
	student        models.Student
	university     models.University
	form           MintForm
	state          MintState
	contentAddress string
	lastError      string
}

type mintService struct {
	sessions store.SessionRepository
	adapter  adapter.ServerAdapter
	provider wallet.Provider
	pending  PendingService
	chain    config.Chain

	now func() time.Time

	mu        sync.Mutex
	workflows map[string]*mintWorkflow
	inFlight  map[string]bool

	logger *logger.Logger
}

func NewMintService(
	sessions store.SessionRepository,
	serverAdapter adapter.ServerAdapter,
	provider wallet.Provider,
	pending PendingService,
	chain config.Chain,
	logger *logger.Logger,
) MintService {
	return &mintService{
		sessions:  sessions,
		adapter:   serverAdapter,
		provider:  provider,
		pending:   pending,
		chain:     chain,
		now:       time.Now,
		workflows: make(map[string]*mintWorkflow),
		inFlight:  make(map[string]bool),
		logger:    logger,
	}
}

// Begin implements [MintService].
func (m *mintService) Begin(student models.Student, university models.University, form MintForm) error {
	recipient := models.NormalizeAddress(student.WalletAddress)
	if !models.ValidAddress(recipient) {
		return fmt.Errorf("%w: %q", ErrInvalidWalletAddress, student.WalletAddress)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight[recipient] {
		return ErrMintInFlight
	}

	m.workflows[recipient] = &mintWorkflow{
		student:    student,
		university: university,
		form:       form,
		state:      MintFormEditing,
	}
	return nil
}

// Upload implements [MintService]. The metadata document is assembled from
// the form, validated, and pinned. The returned content address is the only
// value a later Confirm may mint against.
func (m *mintService) Upload(ctx context.Context, recipientWallet string) (string, error) {
	recipient := models.NormalizeAddress(recipientWallet)

	wf, err := m.take(recipient, MintUploading, MintFormEditing, MintFailed)
	if err != nil {
		return "", err
	}

	metadata := buildMetadata(wf.student, wf.university, wf.form)
	if err = metadata.Validate(); err != nil {
		m.settle(recipient, MintFormEditing, err)
		return "", err
	}

	link, err := m.adapter.UploadToIPFS(ctx, metadata)
	if err != nil {
		m.settle(recipient, MintFailed, err)
		return "", fmt.Errorf("upload credential document: %w", err)
	}

	m.mu.Lock()
	wf.contentAddress = link
	m.mu.Unlock()
	m.settle(recipient, MintAwaitingConfirmation, nil)

	m.logger.Info().Str("recipient", recipient).Str("content_address", link).
		Msg("credential document uploaded, awaiting mint confirmation")
	return link, nil
}

// Confirm implements [MintService]. Minting uses the stored content address
// byte for byte; there is no path from Confirm back to the form.
func (m *mintService) Confirm(ctx context.Context, recipientWallet string) (MintOutcome, error) {
	recipient := models.NormalizeAddress(recipientWallet)

	wf, err := m.take(recipient, MintMinting, MintAwaitingConfirmation, MintFailed)
	if err != nil {
		return MintOutcome{}, err
	}
	if wf.contentAddress == "" {
		m.settle(recipient, MintFailed, fmt.Errorf("nothing uploaded"))
		return MintOutcome{}, fmt.Errorf("confirm mint: no uploaded content address")
	}

	session, err := m.sessions.Session(ctx)
	if err != nil || session.Address == "" {
		m.settle(recipient, MintFailed, ErrNotAuthenticated)
		return MintOutcome{}, ErrNotAuthenticated
	}

	receipt, err := m.provider.MintCredential(ctx, session.Address, recipient, wf.contentAddress)
	if err != nil {
		// The uploaded document survives a failed mint; Confirm may be
		// retried without a re-upload.
		m.settle(recipient, MintFailed, err)
		return MintOutcome{}, mapWalletError(err)
	}

	m.mu.Lock()
	wf.state = MintPersisting
	m.mu.Unlock()

	// Persistence after inclusion is best effort: the chain already holds
	// the truth, the backend is a convenience index.
	if err = m.adapter.PostTransactionHash(ctx, receipt.TxHash); err != nil {
		m.logger.Warn().Err(err).Msg("could not persist transaction hash")
	}

	record := m.buildRecord(wf, recipient, session.Address)
	if err = m.adapter.PostMintedRecord(ctx, record); err != nil {
		m.logger.Warn().Err(err).Msg("could not persist minted record")
	}

	outcome := MintOutcome{
		TxHash:       receipt.TxHash,
		ExplorerLink: fmt.Sprintf("%s/tx/%s", m.chain.ExplorerBaseURL, receipt.TxHash),
		Record:       record,
	}

	// Approval is filed only for recipients that actually asked; minting for
	// a student outside the pending set must not touch the approve endpoint.
	if m.hasPendingRequest(recipient) {
		if err = m.pending.Approve(ctx, recipient); err != nil {
			m.logger.Warn().Err(err).Str("recipient", recipient).
				Msg("could not approve pending request after mint")
			outcome.ReconcileError = err.Error()
		}
	}

	m.settle(recipient, MintComplete, nil)
	m.logger.Info().Str("tx", receipt.TxHash).Str("recipient", recipient).Msg("credential minted")
	return outcome, nil
}

// Workflow implements [MintService].
func (m *mintService) Workflow(recipientWallet string) (MintWorkflowView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wf, ok := m.workflows[models.NormalizeAddress(recipientWallet)]
	if !ok {
		return MintWorkflowView{}, ErrNoWorkflow
	}
	return MintWorkflowView{
		State:          wf.state,
		Student:        wf.student,
		University:     wf.university,
		ContentAddress: wf.contentAddress,
		LastError:      wf.lastError,
	}, nil
}

// hasPendingRequest reports whether the recipient currently sits in the
// pending-request set.
func (m *mintService) hasPendingRequest(recipient string) bool {
	for _, req := range m.pending.List() {
		if models.NormalizeAddress(req.StudentWallet) == recipient {
			return true
		}
	}
	return false
}

// take acquires the per-recipient in-flight lock and moves the workflow into
// next, provided the current state is one of from.
func (m *mintService) take(recipient string, next MintState, from ...MintState) (*mintWorkflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wf, ok := m.workflows[recipient]
	if !ok {
		return nil, ErrNoWorkflow
	}
	if m.inFlight[recipient] {
		return nil, ErrMintInFlight
	}

	legal := false
	for _, s := range from {
		if wf.state == s {
			legal = true
			break
		}
	}
	if !legal {
		return nil, fmt.Errorf("%w: mint %s -> %s", ErrIllegalTransition, wf.state, next)
	}

	wf.state = next
	m.inFlight[recipient] = true
	return wf, nil
}

// settle releases the in-flight lock and records the final state of the step.
func (m *mintService) settle(recipient string, state MintState, cause error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.inFlight, recipient)
	if wf, ok := m.workflows[recipient]; ok {
		wf.state = state
		wf.lastError = ""
		if cause != nil {
			wf.lastError = cause.Error()
		}
	}
}

func (m *mintService) buildRecord(wf *mintWorkflow, recipient, issuerWallet string) models.MintedCredentialRecord {
	nowISO := m.now().UTC().Format(time.RFC3339)

	return models.MintedCredentialRecord{
		ID:               uuid.NewString(),
		DegreeID:         0,
		StudentWallet:    recipient,
		UniversityWallet: issuerWallet,
		DegreeName:       wf.form.Name,
		Description:      wf.form.Description,
		Type:             wf.form.CredentialType,
		Major:            wf.form.Major,
		IssuedDate:       normalizeIssueDate(wf.form.IssueDate, m.now),
		GraduationDate:   wf.form.GraduationDate,
		CreatedAt:        nowISO,
		UpdatedAt:        nowISO,
		IPFSLink:         wf.contentAddress,
		DeanSig:          wf.form.DeanSignatureHash,
	}
}

// normalizeIssueDate widens a YYYY-MM-DD form value to a full RFC3339
// timestamp. The graduation date deliberately stays raw; the backend stores
// the two fields with different shapes.
func normalizeIssueDate(raw string, now func() time.Time) string {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return now().UTC().Format(time.RFC3339)
}

func buildMetadata(student models.Student, university models.University, form MintForm) models.CredentialMetadata {
	return models.CredentialMetadata{
		Name:        form.Name,
		Description: form.Description,
		Attributes: []models.Attribute{
			{TraitType: "Credential Type", Value: form.CredentialType},
			{TraitType: "Issuing Institution", Value: university.Name},
			{TraitType: "Issuer Wallet", Value: university.MetamaskAddress},
			{TraitType: "Recipient Name", Value: student.Name},
			{TraitType: "Recipient Wallet", Value: student.WalletAddress},
			{TraitType: "Issue Date", Value: form.IssueDate},
			{TraitType: "Graduation Date", Value: form.GraduationDate},
			{TraitType: "Major", Value: form.Major},
			{TraitType: "GPA", Value: form.GPA},
			{TraitType: "Credential ID", Value: form.CredentialID},
			{TraitType: "Accreditation Body", Value: form.AccreditationBody},
		},
		CustomFields: models.CustomFields{DeanSignatureHash: form.DeanSignatureHash},
	}
}
