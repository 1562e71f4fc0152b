package models

import (
	"fmt"
	"strings"
)

// StudentRecord is a row from GET /students.
type StudentRecord struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	StudentID       string `json:"student_id"`
	MetamaskAddress string `json:"metamask_address"`
	IsVerified      bool   `json:"is_verified"`
	CreatedAt       string `json:"created_at"`
	LastActivity    string `json:"last_activity"`
}

// EligibilityStatus values for the dashboard.
const (
	EligibilityEligible      = "eligible"
	EligibilityPendingReview = "pending_review"
)

// Minting lifecycle markers kept per student on the dashboard.
const (
	MintingNone    = "none"
	MintingPending = "pending"
	MintingMinted  = "minted"
)

// Student is the dashboard view of a student record.
type Student struct {
	ID            string
	Name          string
	UniversityID  string
	WalletAddress string
	Eligibility   string
	MintingStatus string
	JoinDate      string
	LastActivity  string
}

// DashboardStudent maps a backend record to its dashboard shape. The display
// name falls back through email and student id when names are absent.
func (r StudentRecord) DashboardStudent() Student {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	if name == "" {
		name = r.Email
	}
	if name == "" {
		name = r.StudentID
	}
	if name == "" {
		name = fmt.Sprintf("Student %d", r.ID)
	}

	eligibility := EligibilityPendingReview
	if r.IsVerified {
		eligibility = EligibilityEligible
	}

	return Student{
		ID:            fmt.Sprintf("%d", r.ID),
		Name:          name,
		UniversityID:  r.StudentID,
		WalletAddress: r.MetamaskAddress,
		Eligibility:   eligibility,
		MintingStatus: MintingNone,
		JoinDate:      r.CreatedAt,
		LastActivity:  r.LastActivity,
	}
}

// University is a row from GET /universities or POST /api/specific-university.
type University struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Website         string `json:"website"`
	MetamaskAddress string `json:"metamask_address"`
	Verified        bool   `json:"verified"`
}

// LedgerTransaction is a normalized public ledger row. The backend returns
// rows under several historical field spellings; [ParseLedgerTransaction]
// resolves them in precedence order.
type LedgerTransaction struct {
	TxHash      string
	BlockNumber string
	From        string
	To          string
	ValueEth    string
	Gas         string
	GasPrice    string
	Timestamp   string
	Status      string
}

// ParseLedgerTransaction normalizes one raw ledger row. Rows without a
// resolvable transaction hash are dropped (ok == false).
func ParseLedgerTransaction(raw map[string]any) (LedgerTransaction, bool) {
	txn := LedgerTransaction{
		TxHash:      FirstString(raw, "tx_hash", "id"),
		BlockNumber: FirstString(raw, "block_number", "blockNumber", "block"),
		From:        FirstString(raw, "from", "sender"),
		To:          FirstString(raw, "to", "receiver"),
		ValueEth:    FirstString(raw, "value_eth", "amount", "value"),
		Gas:         FirstString(raw, "gas", "gas_used"),
		GasPrice:    FirstString(raw, "gas_price", "gasPrice"),
		Timestamp:   FirstString(raw, "timestamp", "time", "created_at"),
		Status:      FirstString(raw, "status"),
	}
	return txn, txn.TxHash != ""
}
