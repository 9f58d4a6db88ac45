// Package document holds the supporting-document catalog, the per-application
// upload records, and the completeness gate used to guard review decisions.
package document

import "time"

// Type identifies a supporting document kind
type Type string

const (
	TypeIdentityProof   Type = "identity_proof"
	TypeTaxID           Type = "tax_id"
	TypeIncomeProof     Type = "income_proof"
	TypeBankStatements  Type = "bank_statements"
	TypeEmploymentProof Type = "employment_proof"
	TypePhoto           Type = "photo"
	TypeAddressProof    Type = "address_proof"
	TypeTaxReturns      Type = "tax_returns"
)

// Requirement is one fixed catalog entry
type Requirement struct {
	Type        Type   `json:"type"`
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
}

// Catalog is the ordered document requirement set for an application. It is
// built once at startup and injected; nothing mutates it afterwards.
type Catalog []Requirement

// DefaultCatalog returns the standard requirement set: six required
// documents and two optional ones.
func DefaultCatalog() Catalog {
	return Catalog{
		{Type: TypeIdentityProof, Name: "Identity Proof", Required: true,
			Description: "Government issued photo identity document"},
		{Type: TypeTaxID, Name: "Tax Identification", Required: true,
			Description: "Tax identification card or certificate"},
		{Type: TypeIncomeProof, Name: "Income Proof (Last 3 months)", Required: true,
			Description: "Recent salary slips or income certificates"},
		{Type: TypeBankStatements, Name: "Bank Statements (Last 6 months)", Required: true,
			Description: "Bank account statements for financial verification"},
		{Type: TypeEmploymentProof, Name: "Employment Proof", Required: true,
			Description: "Letter from employer confirming current employment"},
		{Type: TypePhoto, Name: "Photo", Required: true,
			Description: "Recent passport-size photograph"},
		{Type: TypeAddressProof, Name: "Address Proof", Required: false,
			Description: "Utility bill or rent agreement showing current address"},
		{Type: TypeTaxReturns, Name: "Tax Returns", Required: false,
			Description: "Filed tax returns for additional income verification"},
	}
}

// Lookup finds the requirement for a document type
func (c Catalog) Lookup(t Type) (Requirement, bool) {
	for _, req := range c {
		if req.Type == t {
			return req, true
		}
	}
	return Requirement{}, false
}

// RequirementView joins a catalog entry with its upload state
type RequirementView struct {
	Requirement
	Uploaded   bool       `json:"uploaded"`
	UploadedAt *time.Time `json:"uploaded_at,omitempty"`
}

// Completeness summarizes the upload state of the required set
type Completeness struct {
	Uploaded   int    `json:"uploaded"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Missing    []Type `json:"missing"`
}

// Complete reports whether every required document has been uploaded
func (c Completeness) Complete() bool {
	return len(c.Missing) == 0
}

// Join produces the per-requirement upload view for one application
func (c Catalog) Join(records []*Record) []RequirementView {
	byType := make(map[Type]*Record, len(records))
	for _, rec := range records {
		byType[rec.Type] = rec
	}

	views := make([]RequirementView, 0, len(c))
	for _, req := range c {
		view := RequirementView{Requirement: req}
		if rec, ok := byType[req.Type]; ok {
			view.Uploaded = true
			uploadedAt := rec.UploadedAt
			view.UploadedAt = &uploadedAt
		}
		views = append(views, view)
	}
	return views
}

// Completeness computes the gate view for one application. A catalog with no
// required entries is vacuously complete rather than a division by zero.
func (c Catalog) Completeness(records []*Record) Completeness {
	byType := make(map[Type]bool, len(records))
	for _, rec := range records {
		byType[rec.Type] = true
	}

	result := Completeness{Missing: []Type{}}
	for _, req := range c {
		if !req.Required {
			continue
		}
		result.Total++
		if byType[req.Type] {
			result.Uploaded++
		} else {
			result.Missing = append(result.Missing, req.Type)
		}
	}

	if result.Total == 0 {
		result.Percentage = 100
		return result
	}
	result.Percentage = result.Uploaded * 100 / result.Total
	return result
}
