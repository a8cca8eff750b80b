package engine

import (
	"math"
	"time"

	"visadesk/pkg/types"
)

// DefaultWarnDays is the warn window applied when a definition carries no
// DefaultWarnDays of its own.
const DefaultWarnDays = 30

const maxFutureYears = 10

// Classification is the lifecycle classifier's verdict for one uploaded
// document at one instant.
type Classification struct {
	// ExpiresAt is nil for non-expiring documents.
	ExpiresAt *time.Time
	Status    types.DocumentStatus
	// DaysUntilExpiration is meaningful only when ExpiresAt is set. Zero
	// means the document expires today; negative means it has expired.
	DaysUntilExpiration int
}

// Classify derives the expiration date and discrete status for one
// document. Status never regresses for a fixed expiration date: a document
// moves back to UPLOADED only when the user supplies a new version with a
// later date.
func Classify(def types.DocumentDefinition, doc types.CaseDocument, now time.Time) Classification {
	expiresAt := expirationDate(def, doc)
	if expiresAt == nil {
		return Classification{Status: types.DocumentStatusUploaded}
	}

	days := daysUntil(*expiresAt, now)
	c := Classification{
		ExpiresAt:           expiresAt,
		DaysUntilExpiration: days,
	}

	switch {
	case days < 0:
		c.Status = types.DocumentStatusExpired
	case days <= warnWindow(def, doc):
		c.Status = types.DocumentStatusNeedsAttention
	default:
		c.Status = types.DocumentStatusUploaded
	}

	return c
}

func expirationDate(def types.DocumentDefinition, doc types.CaseDocument) *time.Time {
	switch def.ValidityType {
	case types.ValidityFixedDays:
		// A fixed_days definition with no validityDays is malformed catalog
		// data; treat as non-expiring rather than failing.
		if def.ValidityDays <= 0 {
			return nil
		}
		// Calendar-day arithmetic, not 24h multiples, so the expiration
		// holds steady across DST boundaries.
		exp := doc.UploadedAt.AddDate(0, 0, def.ValidityDays)
		return &exp
	case types.ValidityUserSet, types.ValidityPolicyVariable:
		// Absent declared date means non-expiring for status purposes.
		return doc.ExpiresAt
	}
	return nil
}

// daysUntil is ceil((expiresAt − now) / 1 day). A document that expired
// earlier today still reports 0 ("expires today"); it goes negative only
// once now is a full day past the expiration instant.
func daysUntil(expiresAt, now time.Time) int {
	return int(math.Ceil(expiresAt.Sub(now).Hours() / 24))
}

func warnWindow(def types.DocumentDefinition, doc types.CaseDocument) int {
	warn := def.DefaultWarnDays
	if warn <= 0 {
		warn = DefaultWarnDays
	}
	if doc.WarnDays != nil && *doc.WarnDays > warn {
		warn = *doc.WarnDays
	}
	return warn
}

// ExpirationValidity is the structured result of validating a user-declared
// expiration date. It is never an error: callers decide whether an invalid
// date blocks the save.
type ExpirationValidity struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidateExpirationDate checks a user-declared expiration date against the
// upload date and the current time.
func ValidateExpirationDate(date, uploadedAt, now time.Time) ExpirationValidity {
	switch {
	case date.Before(now):
		return ExpirationValidity{Reason: "expiration date is in the past"}
	case date.Before(uploadedAt):
		return ExpirationValidity{Reason: "expiration date is before the upload date"}
	case date.After(now.AddDate(maxFutureYears, 0, 0)):
		return ExpirationValidity{Reason: "expiration date is more than 10 years in the future"}
	}
	return ExpirationValidity{Valid: true}
}
