package types

import "time"

// DocumentCategory groups definitions for checklist display.
type DocumentCategory string

const (
	CategoryCivil        DocumentCategory = "civil"
	CategoryFinancial    DocumentCategory = "financial"
	CategoryRelationship DocumentCategory = "relationship"
	CategoryPolice       DocumentCategory = "police"
	CategoryMedical      DocumentCategory = "medical"
	CategoryPhotos       DocumentCategory = "photos"
	CategoryTranslation  DocumentCategory = "translation"
	CategoryMisc         DocumentCategory = "misc"
)

// DocumentRole identifies who supplies a document.
type DocumentRole string

const (
	RolePetitioner      DocumentRole = "petitioner"
	RoleBeneficiary     DocumentRole = "beneficiary"
	RoleJointSponsor    DocumentRole = "joint_sponsor"
	RoleHouseholdMember DocumentRole = "household_member"
)

// ValidityType is the policy governing how a document's expiration date is
// derived.
type ValidityType string

const (
	// ValidityNone means the document never expires.
	ValidityNone ValidityType = "none"
	// ValidityFixedDays derives expiration from the upload date plus a
	// fixed number of calendar days.
	ValidityFixedDays ValidityType = "fixed_days"
	// ValidityUserSet uses the expiration date declared at upload time.
	ValidityUserSet ValidityType = "user_set"
	// ValidityPolicyVariable uses a caller-derived expiration date (the
	// governing policy depends on case specifics the engine does not model).
	ValidityPolicyVariable ValidityType = "policy_variable"
)

// DocumentStatus is the lifecycle state of one uploaded document.
type DocumentStatus string

const (
	DocumentStatusUploaded       DocumentStatus = "UPLOADED"
	DocumentStatusNeedsAttention DocumentStatus = "NEEDS_ATTENTION"
	DocumentStatusExpired        DocumentStatus = "EXPIRED"
)

// RequiredWhen is a conjunction of conditions gating a definition's
// applicability. When present, the definition is required exactly when the
// case's visa category is in VisaCategories (if non-empty) AND every flag
// constraint matches the case's scenario flags; otherwise the definition is
// excluded entirely, even from the optional set.
type RequiredWhen struct {
	VisaCategories []VisaCategory        `json:"visaCategories,omitempty"`
	Flags          map[ScenarioFlag]bool `json:"flags,omitempty"`
}

// DocumentDefinition is one static catalog entry describing a kind of
// supporting document. The catalog is trusted, compile-time data; it is
// never user input.
type DocumentDefinition struct {
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Category    DocumentCategory `json:"category"`
	Roles       []DocumentRole   `json:"roles"`

	Required bool `json:"required"`

	ValidityType ValidityType `json:"validityType"`
	// ValidityDays is meaningful only for ValidityFixedDays.
	ValidityDays int `json:"validityDays,omitempty"`
	// DefaultWarnDays of zero means the engine's default warn window.
	DefaultWarnDays int `json:"defaultWarnDays,omitempty"`

	RequiredWhen *RequiredWhen `json:"requiredWhen,omitempty"`
}

// CaseDocument is one uploaded file version for one DocumentDefinition.
// Multiple versions may coexist per definition; Version is monotonically
// increasing, oldest = 1.
type CaseDocument struct {
	ID            string `db:"id"`
	CaseID        string `db:"case_id"`
	UserID        string `db:"user_id"`
	DefinitionKey string `db:"definition_key"`

	FileName      string `db:"file_name"`
	FileSizeBytes int64  `db:"file_size_bytes"`
	MimeType      string `db:"mime_type"`
	StorageKey    string `db:"storage_key"`

	Version    int        `db:"version"`
	UploadedAt time.Time  `db:"uploaded_at"`
	ExpiresAt  *time.Time `db:"expires_at"`
	// WarnDays overrides the definition's warn window when the user wants
	// earlier renewal reminders for this document.
	WarnDays *int `db:"warn_days"`

	// Status is evaluated per call by the lifecycle classifier and stamped
	// by the caller; it is never the persisted source of truth.
	Status DocumentStatus `db:"-"`
}
