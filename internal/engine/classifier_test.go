package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visadesk/internal/utils"
	"visadesk/pkg/types"
)

var classifierNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func fixedDaysDef(days int) types.DocumentDefinition {
	return types.DocumentDefinition{
		Key:          "passport",
		Name:         "Passport",
		ValidityType: types.ValidityFixedDays,
		ValidityDays: days,
	}
}

func TestClassify(t *testing.T) {
	t.Run("non-expiring validity is always uploaded", func(t *testing.T) {
		def := types.DocumentDefinition{Key: "birth_certificate", ValidityType: types.ValidityNone}
		doc := types.CaseDocument{UploadedAt: classifierNow.AddDate(-20, 0, 0)}

		c := Classify(def, doc, classifierNow)
		assert.Nil(t, c.ExpiresAt)
		assert.Equal(t, types.DocumentStatusUploaded, c.Status)
	})

	t.Run("fixed days uses calendar-day arithmetic from upload", func(t *testing.T) {
		doc := types.CaseDocument{UploadedAt: time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)}

		c := Classify(fixedDaysDef(90), doc, classifierNow)
		require.NotNil(t, c.ExpiresAt)
		assert.Equal(t, time.Date(2026, time.May, 30, 9, 30, 0, 0, time.UTC), *c.ExpiresAt)
	})

	t.Run("document five days from expiry needs attention", func(t *testing.T) {
		// Uploaded 10 years minus 5 days ago against a 10-year validity.
		doc := types.CaseDocument{UploadedAt: classifierNow.AddDate(0, 0, -3645)}

		c := Classify(fixedDaysDef(3650), doc, classifierNow)
		assert.Equal(t, 5, c.DaysUntilExpiration)
		assert.Equal(t, types.DocumentStatusNeedsAttention, c.Status)
	})

	t.Run("well before the warn window stays uploaded", func(t *testing.T) {
		doc := types.CaseDocument{UploadedAt: classifierNow.AddDate(0, 0, -10)}

		c := Classify(fixedDaysDef(3650), doc, classifierNow)
		assert.Equal(t, types.DocumentStatusUploaded, c.Status)
		assert.Greater(t, c.DaysUntilExpiration, DefaultWarnDays)
	})

	t.Run("negative days until expiration means expired", func(t *testing.T) {
		exp := classifierNow.AddDate(0, 0, -2)
		def := types.DocumentDefinition{Key: "proof", ValidityType: types.ValidityUserSet}
		doc := types.CaseDocument{UploadedAt: classifierNow.AddDate(-1, 0, 0), ExpiresAt: &exp}

		c := Classify(def, doc, classifierNow)
		assert.Equal(t, types.DocumentStatusExpired, c.Status)
		assert.Equal(t, -2, c.DaysUntilExpiration)
	})

	t.Run("expiration earlier today counts as expires today, not expired", func(t *testing.T) {
		exp := classifierNow.Add(-time.Hour)
		def := types.DocumentDefinition{Key: "proof", ValidityType: types.ValidityUserSet}
		doc := types.CaseDocument{UploadedAt: classifierNow.AddDate(-1, 0, 0), ExpiresAt: &exp}

		c := Classify(def, doc, classifierNow)
		assert.Equal(t, 0, c.DaysUntilExpiration)
		assert.Equal(t, types.DocumentStatusNeedsAttention, c.Status)
	})

	t.Run("user set validity without a declared date never expires", func(t *testing.T) {
		def := types.DocumentDefinition{Key: "proof", ValidityType: types.ValidityUserSet}
		doc := types.CaseDocument{UploadedAt: classifierNow.AddDate(-5, 0, 0)}

		c := Classify(def, doc, classifierNow)
		assert.Nil(t, c.ExpiresAt)
		assert.Equal(t, types.DocumentStatusUploaded, c.Status)
	})

	t.Run("malformed fixed days definition is treated as non-expiring", func(t *testing.T) {
		doc := types.CaseDocument{UploadedAt: classifierNow.AddDate(-5, 0, 0)}

		c := Classify(fixedDaysDef(0), doc, classifierNow)
		assert.Nil(t, c.ExpiresAt)
		assert.Equal(t, types.DocumentStatusUploaded, c.Status)
	})

	t.Run("definition warn days widens the window", func(t *testing.T) {
		def := fixedDaysDef(730)
		def.DefaultWarnDays = 90
		doc := types.CaseDocument{UploadedAt: classifierNow.AddDate(0, 0, -650)}

		c := Classify(def, doc, classifierNow)
		assert.Equal(t, 80, c.DaysUntilExpiration)
		assert.Equal(t, types.DocumentStatusNeedsAttention, c.Status)
	})

	t.Run("document warn override only ever raises the window", func(t *testing.T) {
		doc := types.CaseDocument{
			UploadedAt: classifierNow.AddDate(0, 0, -3590),
			WarnDays:   utils.IntPtr(90),
		}
		c := Classify(fixedDaysDef(3650), doc, classifierNow)
		assert.Equal(t, types.DocumentStatusNeedsAttention, c.Status)

		// A lower override does not shrink below the definition default.
		doc.WarnDays = utils.IntPtr(1)
		doc.UploadedAt = classifierNow.AddDate(0, 0, -3630) // 20 days out
		c = Classify(fixedDaysDef(3650), doc, classifierNow)
		assert.Equal(t, types.DocumentStatusNeedsAttention, c.Status)
	})

	t.Run("deterministic for fixed inputs", func(t *testing.T) {
		doc := types.CaseDocument{UploadedAt: classifierNow.AddDate(0, 0, -100)}
		first := Classify(fixedDaysDef(365), doc, classifierNow)
		second := Classify(fixedDaysDef(365), doc, classifierNow)
		assert.Equal(t, first, second)
	})
}

func TestValidateExpirationDate(t *testing.T) {
	uploadedAt := classifierNow.Add(-time.Hour)

	tests := []struct {
		name   string
		date   time.Time
		valid  bool
		reason string
	}{
		{
			name:  "one year out is valid",
			date:  classifierNow.AddDate(1, 0, 0),
			valid: true,
		},
		{
			name:   "past date rejected",
			date:   classifierNow.AddDate(0, 0, -1),
			reason: "expiration date is in the past",
		},
		{
			name:   "beyond ten years rejected",
			date:   classifierNow.AddDate(10, 0, 1),
			reason: "expiration date is more than 10 years in the future",
		},
		{
			name:  "exactly ten years accepted",
			date:  classifierNow.AddDate(10, 0, 0),
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateExpirationDate(tt.date, uploadedAt, classifierNow)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}

	t.Run("date before upload rejected", func(t *testing.T) {
		futureUpload := classifierNow.AddDate(0, 1, 0)
		got := ValidateExpirationDate(classifierNow.AddDate(0, 0, 15), futureUpload, classifierNow)
		assert.False(t, got.Valid)
		assert.Equal(t, "expiration date is before the upload date", got.Reason)
	})
}
