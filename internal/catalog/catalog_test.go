package catalog

import (
	"testing"

	"visadesk/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionsAreWellFormed(t *testing.T) {
	seen := make(map[string]struct{}, len(Definitions))
	for _, def := range Definitions {
		_, dup := seen[def.Key]
		assert.Falsef(t, dup, "duplicate definition key %s", def.Key)
		seen[def.Key] = struct{}{}

		assert.NotEmptyf(t, def.Name, "definition %s has no name", def.Key)
		assert.NotEmptyf(t, def.Category, "definition %s has no category", def.Key)
		assert.NotEmptyf(t, def.Roles, "definition %s has no roles", def.Key)

		if def.ValidityType == types.ValidityFixedDays {
			assert.Positivef(t, def.ValidityDays, "definition %s has fixed validity but no window", def.Key)
		} else {
			assert.Zerof(t, def.ValidityDays, "definition %s carries a validity window it never uses", def.Key)
		}
	}
}

func TestLookup(t *testing.T) {
	def, ok := Lookup("passport_bio_page")
	require.True(t, ok)
	assert.Equal(t, "passport_bio_page", def.Key)

	_, ok = Lookup("not_a_document")
	assert.False(t, ok)
}
