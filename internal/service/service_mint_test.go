package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vericred/vericred-desk/internal/config"
	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/internal/mock"
	"github.com/vericred/vericred-desk/internal/store"
	"github.com/vericred/vericred-desk/internal/wallet"
	"github.com/vericred/vericred-desk/models"
)

const (
	issuerWallet    = "0xaaaabbbbccccddddeeeeffff0000111122223333"
	recipientWallet = "0x1111222233334444555566667777888899990000"
	contentAddress  = "ipfs://bafy-credential-doc"
	mintTxHash      = "0xfeedface"
)

func testStudent() models.Student {
	return models.Student{ID: "7", Name: "Ada Lovelace", WalletAddress: recipientWallet}
}

func testUniversity() models.University {
	return models.University{Name: "Analytical Engine University", MetamaskAddress: issuerWallet}
}

func testForm() MintForm {
	return MintForm{
		Name:              "BSc Mathematics",
		Description:       "Bachelor of Science in Mathematics",
		CredentialType:    "Degree",
		Major:             "Mathematics",
		IssueDate:         "2026-06-15",
		GraduationDate:    "2026-06-01",
		DeanSignatureHash: "0xsig",
	}
}

// stubPending is a hand-rolled PendingService; a generated mock would pull
// the mock package into an import cycle with this one.
type stubPending struct {
	requests   []models.MintRequest
	approved   []string
	approveErr error
}

func (s *stubPending) List() []models.MintRequest { return s.requests }
func (s *stubPending) Refresh(context.Context) ([]models.MintRequest, error) {
	return nil, nil
}
func (s *stubPending) Approve(_ context.Context, studentWallet string) error {
	if s.approveErr != nil {
		return s.approveErr
	}
	s.approved = append(s.approved, studentWallet)
	return nil
}
func (s *stubPending) StartAutoRefresh(context.Context, time.Duration) {}
func (s *stubPending) StopAutoRefresh()                                {}

func newTestMintSvc(t *testing.T, ctrl *gomock.Controller) (*mintService, *mock.MockServerAdapter, *mock.MockProvider, *stubPending, store.SessionRepository) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockProvider := mock.NewMockProvider(ctrl)
	pending := &stubPending{}
	sessions := store.NewMemorySessionRepository()

	chain := config.Chain{ExplorerBaseURL: "https://sepolia.etherscan.io"}
	svc := NewMintService(sessions, mockAdapter, mockProvider, pending, chain, logger.Nop()).(*mintService)
	return svc, mockAdapter, mockProvider, pending, sessions
}

func authedSession(t *testing.T, sessions store.SessionRepository) {
	t.Helper()
	require.NoError(t, sessions.Merge(context.Background(), models.WalletSession{
		Address:     issuerWallet,
		IsConnected: true,
		Token:       "token",
	}))
}

func TestUpload_DoesNotMint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _, _, _ := newTestMintSvc(t, ctrl)
	ctx := context.Background()

	require.NoError(t, svc.Begin(testStudent(), testUniversity(), testForm()))

	// Only the upload endpoint is touched; MintCredential has no
	// expectation, so any call would fail the test.
	mockAdapter.EXPECT().UploadToIPFS(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, metadata models.CredentialMetadata) (string, error) {
			assert.Equal(t, "BSc Mathematics", metadata.Name)
			issuer, _ := metadata.Trait("Issuer Wallet")
			assert.Equal(t, issuerWallet, issuer)
			recipient, _ := metadata.Trait("Recipient Wallet")
			assert.Equal(t, recipientWallet, recipient)
			return contentAddress, nil
		},
	)

	link, err := svc.Upload(ctx, recipientWallet)
	require.NoError(t, err)
	assert.Equal(t, contentAddress, link)

	view, err := svc.Workflow(recipientWallet)
	require.NoError(t, err)
	assert.Equal(t, MintAwaitingConfirmation, view.State)
	assert.Equal(t, contentAddress, view.ContentAddress)
}

func TestUpload_IncompleteFormStaysEditable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestMintSvc(t, ctrl)

	form := testForm()
	form.Major = "" // drops a required trait

	require.NoError(t, svc.Begin(testStudent(), testUniversity(), form))

	_, err := svc.Upload(context.Background(), recipientWallet)
	assert.ErrorIs(t, err, models.ErrIncompleteMetadata)

	view, err := svc.Workflow(recipientWallet)
	require.NoError(t, err)
	assert.Equal(t, MintFormEditing, view.State)
}

func TestConfirm_MintsStoredContentAddressAndPersists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockProvider, pending, sessions := newTestMintSvc(t, ctrl)
	ctx := context.Background()
	authedSession(t, sessions)
	pending.requests = []models.MintRequest{{StudentWallet: recipientWallet, UniversityWallet: issuerWallet}}

	require.NoError(t, svc.Begin(testStudent(), testUniversity(), testForm()))
	mockAdapter.EXPECT().UploadToIPFS(ctx, gomock.Any()).Return(contentAddress, nil)
	_, err := svc.Upload(ctx, recipientWallet)
	require.NoError(t, err)

	gomock.InOrder(
		// The mint binds to the uploaded content address byte for byte.
		mockProvider.EXPECT().
			MintCredential(ctx, issuerWallet, recipientWallet, contentAddress).
			Return(&wallet.MintReceipt{TxHash: mintTxHash, BlockNumber: 42}, nil),
		mockAdapter.EXPECT().PostTransactionHash(ctx, mintTxHash).Return(nil),
		mockAdapter.EXPECT().PostMintedRecord(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, record models.MintedCredentialRecord) error {
				assert.NotEmpty(t, record.ID)
				assert.Equal(t, recipientWallet, record.StudentWallet)
				assert.Equal(t, issuerWallet, record.UniversityWallet)
				assert.Equal(t, contentAddress, record.IPFSLink)
				// Issue date widened to RFC3339, graduation date raw.
				issued, parseErr := time.Parse(time.RFC3339, record.IssuedDate)
				require.NoError(t, parseErr)
				assert.Equal(t, "2026-06-15", issued.Format("2006-01-02"))
				assert.Equal(t, "2026-06-01", record.GraduationDate)
				return nil
			},
		),
	)

	outcome, err := svc.Confirm(ctx, recipientWallet)
	require.NoError(t, err)
	assert.Equal(t, mintTxHash, outcome.TxHash)
	assert.Equal(t, "https://sepolia.etherscan.io/tx/"+mintTxHash, outcome.ExplorerLink)
	assert.Equal(t, []string{recipientWallet}, pending.approved, "a pending request for the recipient is reconciled")

	view, err := svc.Workflow(recipientWallet)
	require.NoError(t, err)
	assert.Equal(t, MintComplete, view.State)
}

func TestConfirm_BestEffortPersistFailuresDoNotFailMint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockProvider, pending, sessions := newTestMintSvc(t, ctrl)
	ctx := context.Background()
	authedSession(t, sessions)

	require.NoError(t, svc.Begin(testStudent(), testUniversity(), testForm()))
	mockAdapter.EXPECT().UploadToIPFS(ctx, gomock.Any()).Return(contentAddress, nil)
	_, err := svc.Upload(ctx, recipientWallet)
	require.NoError(t, err)

	backendDown := errors.New("backend unavailable")
	pending.requests = []models.MintRequest{{StudentWallet: recipientWallet, UniversityWallet: issuerWallet}}
	pending.approveErr = backendDown
	mockProvider.EXPECT().
		MintCredential(ctx, issuerWallet, recipientWallet, contentAddress).
		Return(&wallet.MintReceipt{TxHash: mintTxHash}, nil)
	mockAdapter.EXPECT().PostTransactionHash(ctx, mintTxHash).Return(backendDown)
	mockAdapter.EXPECT().PostMintedRecord(ctx, gomock.Any()).Return(backendDown)

	outcome, err := svc.Confirm(ctx, recipientWallet)
	require.NoError(t, err, "the chain already holds the mint; persistence is best effort")
	assert.Equal(t, mintTxHash, outcome.TxHash)
	assert.Contains(t, outcome.ReconcileError, "backend unavailable",
		"the failed reconciliation is reported for the operator to see")
}

func TestConfirm_NoPendingRequestSkipsApprove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockProvider, pending, sessions := newTestMintSvc(t, ctrl)
	ctx := context.Background()
	authedSession(t, sessions)

	require.NoError(t, svc.Begin(testStudent(), testUniversity(), testForm()))
	mockAdapter.EXPECT().UploadToIPFS(ctx, gomock.Any()).Return(contentAddress, nil)
	_, err := svc.Upload(ctx, recipientWallet)
	require.NoError(t, err)

	mockProvider.EXPECT().
		MintCredential(ctx, issuerWallet, recipientWallet, contentAddress).
		Return(&wallet.MintReceipt{TxHash: mintTxHash}, nil)
	mockAdapter.EXPECT().PostTransactionHash(ctx, mintTxHash).Return(nil)
	mockAdapter.EXPECT().PostMintedRecord(ctx, gomock.Any()).Return(nil)

	// The recipient never filed a request, so no approval may be issued.
	outcome, err := svc.Confirm(ctx, recipientWallet)
	require.NoError(t, err)
	assert.Empty(t, pending.approved)
	assert.Empty(t, outcome.ReconcileError)
}

func TestConfirm_FailedMintKeepsContentAddressForRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockProvider, pending, sessions := newTestMintSvc(t, ctrl)
	ctx := context.Background()
	authedSession(t, sessions)
	pending.requests = []models.MintRequest{{StudentWallet: recipientWallet, UniversityWallet: issuerWallet}}

	require.NoError(t, svc.Begin(testStudent(), testUniversity(), testForm()))
	mockAdapter.EXPECT().UploadToIPFS(ctx, gomock.Any()).Return(contentAddress, nil)
	_, err := svc.Upload(ctx, recipientWallet)
	require.NoError(t, err)

	rejected := &wallet.ProviderError{Code: wallet.CodeUserRejected, Message: "transaction request denied"}
	mockProvider.EXPECT().
		MintCredential(ctx, issuerWallet, recipientWallet, contentAddress).
		Return(nil, rejected)

	_, err = svc.Confirm(ctx, recipientWallet)
	assert.ErrorIs(t, err, ErrUserRejected)

	view, err := svc.Workflow(recipientWallet)
	require.NoError(t, err)
	assert.Equal(t, MintFailed, view.State)
	assert.Equal(t, contentAddress, view.ContentAddress, "no re-upload needed for a retry")

	// Retry succeeds with the very same content address.
	gomock.InOrder(
		mockProvider.EXPECT().
			MintCredential(ctx, issuerWallet, recipientWallet, contentAddress).
			Return(&wallet.MintReceipt{TxHash: mintTxHash}, nil),
		mockAdapter.EXPECT().PostTransactionHash(ctx, mintTxHash).Return(nil),
		mockAdapter.EXPECT().PostMintedRecord(ctx, gomock.Any()).Return(nil),
	)

	outcome, err := svc.Confirm(ctx, recipientWallet)
	require.NoError(t, err)
	assert.Equal(t, mintTxHash, outcome.TxHash)
	assert.Equal(t, []string{recipientWallet}, pending.approved)
}

func TestConfirm_WithoutUploadIsRefused(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, sessions := newTestMintSvc(t, ctrl)
	ctx := context.Background()
	authedSession(t, sessions)

	require.NoError(t, svc.Begin(testStudent(), testUniversity(), testForm()))

	_, err := svc.Confirm(ctx, recipientWallet)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestMint_InFlightLockPerRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, sessions := newTestMintSvc(t, ctrl)
	authedSession(t, sessions)

	require.NoError(t, svc.Begin(testStudent(), testUniversity(), testForm()))

	// Simulate a step in progress for the recipient.
	_, err := svc.take(recipientWallet, MintUploading, MintFormEditing)
	require.NoError(t, err)

	_, err = svc.Upload(context.Background(), recipientWallet)
	assert.ErrorIs(t, err, ErrMintInFlight)

	err = svc.Begin(testStudent(), testUniversity(), testForm())
	assert.ErrorIs(t, err, ErrMintInFlight)
}

func TestBegin_RejectsInvalidRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestMintSvc(t, ctrl)

	student := testStudent()
	student.WalletAddress = "0x123" // too short

	err := svc.Begin(student, testUniversity(), testForm())
	assert.ErrorIs(t, err, ErrInvalidWalletAddress)
}
