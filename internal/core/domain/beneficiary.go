package domain

import "github.com/shopspring/decimal"

// RelationshipClass categorises a beneficiary's relation to the endowment founder.
// Together with the distribution policy it determines the raw share ratio.
type RelationshipClass string

const (
	Spouse    RelationshipClass = "SPOUSE"
	Son       RelationshipClass = "SON"
	Daughter  RelationshipClass = "DAUGHTER"
	Custodian RelationshipClass = "CUSTODIAN"
	Other     RelationshipClass = "OTHER"
)

// BeneficiaryShare is one roster entry: a beneficiary eligible (or not) for a
// distribution run, with the weight used by need-weighted and custom policies.
type BeneficiaryShare struct {
	BeneficiaryID  string            `json:"beneficiaryID"` // Primary Key (UUID)
	Name           string            `json:"name"`
	Relationship   RelationshipClass `json:"relationship"`
	Weight         decimal.Decimal   `json:"weight"`   // need score or custom fraction, >= 0
	Eligible       bool              `json:"eligible"` // suspended beneficiaries stay on the roster but are skipped
	BankIdentifier string            `json:"bankIdentifier"` // IBAN, may be empty
	AuditFields
}
