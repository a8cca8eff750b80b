package types

import (
	"errors"
	"time"
)

var (
	ErrCaseNotFound     = errors.New("case not found")
	ErrDocumentNotFound = errors.New("document not found")
)

// VisaCategory identifies the petition type a case is filed under.
type VisaCategory string

const (
	VisaIR1 VisaCategory = "IR-1" // spouse of US citizen
	VisaIR2 VisaCategory = "IR-2" // unmarried child under 21 of US citizen
	VisaIR5 VisaCategory = "IR-5" // parent of US citizen
	VisaCR1 VisaCategory = "CR-1" // spouse, conditional (marriage under 2 years)
	VisaCR2 VisaCategory = "CR-2" // child, conditional
	VisaF1  VisaCategory = "F1"   // unmarried adult child of US citizen
	VisaF2A VisaCategory = "F2A"  // spouse or minor child of permanent resident
	VisaF2B VisaCategory = "F2B"  // unmarried adult child of permanent resident
	VisaF3  VisaCategory = "F3"   // married child of US citizen
	VisaF4  VisaCategory = "F4"   // sibling of US citizen
	VisaK1  VisaCategory = "K-1"  // fiance of US citizen
)

// VisaCategories lists every supported category in display order.
var VisaCategories = []VisaCategory{
	VisaIR1, VisaCR1, VisaIR2, VisaCR2, VisaIR5,
	VisaF1, VisaF2A, VisaF2B, VisaF3, VisaF4, VisaK1,
}

// ScenarioFlag names a case-specific fact that conditions which documents
// are required. The set of flags is closed; a RequiredWhen predicate that
// references a flag not represented on ScenarioFlags never matches.
type ScenarioFlag string

const (
	FlagPriorMarriagePetitioner   ScenarioFlag = "prior_marriage_petitioner"
	FlagPriorMarriageBeneficiary  ScenarioFlag = "prior_marriage_beneficiary"
	FlagAdoptedChild              ScenarioFlag = "adopted_child"
	FlagJointSponsorUsed          ScenarioFlag = "joint_sponsor_used"
	FlagPoliceCertificateRequired ScenarioFlag = "police_certificate_required"
	FlagMilitaryService           ScenarioFlag = "military_service"
	FlagImmigrationViolations     ScenarioFlag = "immigration_violations"
	FlagCriminalHistory           ScenarioFlag = "criminal_history"
)

// ScenarioFlags holds the boolean case facts gathered during onboarding.
// Fields are fixed and typed so a misspelled flag is a compile error rather
// than a silently unmatched map key.
type ScenarioFlags struct {
	PriorMarriagePetitioner   bool `db:"prior_marriage_petitioner" form:"prior_marriage_petitioner"`
	PriorMarriageBeneficiary  bool `db:"prior_marriage_beneficiary" form:"prior_marriage_beneficiary"`
	AdoptedChild              bool `db:"adopted_child" form:"adopted_child"`
	JointSponsorUsed          bool `db:"joint_sponsor_used" form:"joint_sponsor_used"`
	PoliceCertificateRequired bool `db:"police_certificate_required" form:"police_certificate_required"`
	MilitaryService           bool `db:"military_service" form:"military_service"`
	ImmigrationViolations     bool `db:"immigration_violations" form:"immigration_violations"`
	CriminalHistory           bool `db:"criminal_history" form:"criminal_history"`
}

// Value returns the value of the named flag. The second return is false
// when the flag is not one of the known ScenarioFlag constants.
func (f ScenarioFlags) Value(flag ScenarioFlag) (bool, bool) {
	switch flag {
	case FlagPriorMarriagePetitioner:
		return f.PriorMarriagePetitioner, true
	case FlagPriorMarriageBeneficiary:
		return f.PriorMarriageBeneficiary, true
	case FlagAdoptedChild:
		return f.AdoptedChild, true
	case FlagJointSponsorUsed:
		return f.JointSponsorUsed, true
	case FlagPoliceCertificateRequired:
		return f.PoliceCertificateRequired, true
	case FlagMilitaryService:
		return f.MilitaryService, true
	case FlagImmigrationViolations:
		return f.ImmigrationViolations, true
	case FlagCriminalHistory:
		return f.CriminalHistory, true
	}
	return false, false
}

// CaseConfig is the per-user case configuration. One row per user, created
// during onboarding and mutated only through explicit edits.
type CaseConfig struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`

	VisaCategory    VisaCategory `db:"visa_category"`
	PetitionerName  string       `db:"petitioner_name" form:"petitioner_name"`
	BeneficiaryName string       `db:"beneficiary_name" form:"beneficiary_name"`

	ScenarioFlags

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
