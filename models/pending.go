package models

// MintRequest is a student's pending ask for a university to mint a
// credential. When the backend supplies no id, the (StudentWallet,
// UniversityWallet) pair identifies the request.
type MintRequest struct {
	ID               string `json:"id,omitempty"`
	StudentWallet    string `json:"student_wallet"`
	UniversityWallet string `json:"university_wallet"`
}

// Alias precedence for the wallet fields of a pending-request row. The
// backend has shipped several shapes over time; extraction applies these
// rules in order and the first non-empty string wins. The order is part of
// the contract with the backend, not an implementation detail.
var (
	studentWalletAliases = []string{
		"student_wallet",
		"studentWallet",
		"student",
		"requester_wallet",
		"requesterWallet",
		"student_address",
		"walletAddress",
		"wallet",
		"user_wallet",
	}
	requesterNestedAliases = []string{
		"metamask_address",
		"metamaskAddress",
		"wallet_address",
		"walletAddress",
		"address",
	}
	universityWalletAliases = []string{
		"university_wallet",
		"universityWallet",
		"university_address",
		"org_wallet",
		"orgWallet",
		"issuer_wallet",
		"university",
	}
	organizationNestedAliases = []string{
		"metamask_address",
		"metamaskAddress",
		"wallet_address",
		"walletAddress",
	}
	requestIDAliases = []string{"id", "request_id", "_id"}
)

// ParseMintRequest extracts a MintRequest from a raw backend row.
// fallbackUniversityWallet fills the university side when no alias resolves
// (the caller knows which organization it queried for). The second return is
// false when no student wallet could be resolved; such rows are dropped.
func ParseMintRequest(raw map[string]any, fallbackUniversityWallet string) (MintRequest, bool) {
	student := FirstString(raw, studentWalletAliases...)
	if student == "" {
		student = NestedFirstString(raw, "requester", requesterNestedAliases...)
	}
	if student == "" {
		return MintRequest{}, false
	}

	university := FirstString(raw, universityWalletAliases...)
	if university == "" {
		university = NestedFirstString(raw, "organization", organizationNestedAliases...)
	}
	if university == "" {
		university = fallbackUniversityWallet
	}

	return MintRequest{
		ID:               FirstString(raw, requestIDAliases...),
		StudentWallet:    student,
		UniversityWallet: university,
	}, true
}
