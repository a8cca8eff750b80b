package server

import (
	"testing"
	"time"

	"visadesk/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChecklistRows(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	passport := types.DocumentDefinition{
		Key:          "passport_bio_page",
		Name:         "Passport Biographical Page",
		Category:     types.CategoryCivil,
		ValidityType: types.ValidityUserSet,
	}
	birthCert := types.DocumentDefinition{
		Key:          "birth_certificate_beneficiary",
		Name:         "Birth Certificate",
		Category:     types.CategoryCivil,
		ValidityType: types.ValidityNone,
	}

	expiresAt := now.AddDate(0, 0, 45)
	byDefinition := map[string][]*types.CaseDocument{
		"passport_bio_page": {
			{ID: "doc2", DefinitionKey: "passport_bio_page", Version: 2, UploadedAt: now.AddDate(0, 0, -1), ExpiresAt: &expiresAt},
			{ID: "doc1", DefinitionKey: "passport_bio_page", Version: 1, UploadedAt: now.AddDate(0, -6, 0)},
		},
	}

	rows := buildChecklistRows([]types.DocumentDefinition{passport, birthCert}, byDefinition, false, now)
	require.Len(t, rows, 2)

	// Rows keep the definitions' order and expiry comes from the newest
	// version.
	assert.Equal(t, "passport_bio_page", rows[0].Definition.Key)
	assert.Len(t, rows[0].Documents, 2)
	require.NotNil(t, rows[0].ExpiresAt)
	assert.Equal(t, expiresAt, *rows[0].ExpiresAt)
	assert.Equal(t, 45, rows[0].DaysUntilExpiration)
	assert.False(t, rows[0].Optional)

	assert.Equal(t, "birth_certificate_beneficiary", rows[1].Definition.Key)
	assert.Empty(t, rows[1].Documents)
	assert.Nil(t, rows[1].ExpiresAt)
}
