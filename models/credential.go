package models

import "errors"

var ErrIncompleteMetadata = errors.New("credential metadata is incomplete")

// Attribute is one trait of a credential document. Order is display-relevant
// and duplicates by TraitType are permitted; lookups take the first match.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// CustomFields carries free-form extensions of the metadata document.
type CustomFields struct {
	DeanSignatureHash string `json:"deanSignatureHash"`
}

// CredentialMetadata is the document uploaded to content-addressed storage
// before minting. Once a content address has been obtained the document must
// not be mutated; a correction requires a brand-new upload.
type CredentialMetadata struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Attributes   []Attribute  `json:"attributes"`
	CustomFields CustomFields `json:"custom_fields"`
}

// Trait types every uploadable document must carry.
var RequiredTraitTypes = []string{
	"Credential Type",
	"Issuing Institution",
	"Issuer Wallet",
	"Recipient Name",
	"Recipient Wallet",
	"Issue Date",
	"Graduation Date",
	"Major",
}

// Trait returns the value of the first attribute with the given trait type
// and whether one was found.
func (m CredentialMetadata) Trait(traitType string) (string, bool) {
	for _, a := range m.Attributes {
		if a.TraitType == traitType {
			return a.Value, true
		}
	}
	return "", false
}

// Validate checks that the document is fully populated for upload: name,
// description and every required trait type present with a non-empty value.
func (m CredentialMetadata) Validate() error {
	if m.Name == "" || m.Description == "" {
		return ErrIncompleteMetadata
	}
	for _, traitType := range RequiredTraitTypes {
		if value, ok := m.Trait(traitType); !ok || value == "" {
			return ErrIncompleteMetadata
		}
	}
	return nil
}

// MintedCredentialRecord is the persisted result of a successful on-chain
// mint. IPFSLink must equal the content address actually submitted on-chain.
// Records are created once after the transaction is mined and never updated.
type MintedCredentialRecord struct {
	ID               string `json:"id"`
	DegreeID         int64  `json:"degree_id"`
	StudentWallet    string `json:"student_wallet"`
	UniversityWallet string `json:"university_wallet"`
	DegreeName       string `json:"degree_name"`
	Description      string `json:"description"`
	Type             string `json:"type"`
	Major            string `json:"major"`
	// IssuedDate is a full RFC3339 timestamp while GraduationDate stays a raw
	// YYYY-MM-DD calendar string. The asymmetry is intentional backend
	// contract and must not be normalized away.
	IssuedDate     string `json:"issued_date"`
	GraduationDate string `json:"graduation_date"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	IPFSLink       string `json:"ipfs_link"`
	DeanSig        string `json:"dean_sig"`
}
