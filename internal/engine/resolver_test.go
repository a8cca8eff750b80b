package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visadesk/pkg/types"
)

func testCatalog() []types.DocumentDefinition {
	return []types.DocumentDefinition{
		{
			Key:      "passport",
			Name:     "Passport",
			Category: types.CategoryCivil,
			Required: true,
		},
		{
			Key:      "translations",
			Name:     "Certified Translations",
			Category: types.CategoryTranslation,
			Required: false,
		},
		{
			Key:      "marriage_certificate",
			Name:     "Marriage Certificate",
			Category: types.CategoryCivil,
			Required: true,
			RequiredWhen: &types.RequiredWhen{
				VisaCategories: []types.VisaCategory{types.VisaIR1, types.VisaCR1},
			},
		},
		{
			Key:      "joint_sponsor_affidavit",
			Name:     "Joint Sponsor Affidavit",
			Category: types.CategoryFinancial,
			Required: true,
			RequiredWhen: &types.RequiredWhen{
				Flags: map[types.ScenarioFlag]bool{types.FlagJointSponsorUsed: true},
			},
		},
		{
			Key:      "divorce_decree",
			Name:     "Divorce Decree",
			Category: types.CategoryCivil,
			Required: true,
			RequiredWhen: &types.RequiredWhen{
				VisaCategories: []types.VisaCategory{types.VisaIR1, types.VisaCR1},
				Flags:          map[types.ScenarioFlag]bool{types.FlagPriorMarriagePetitioner: true},
			},
		},
	}
}

func defKeys(defs []types.DocumentDefinition) []string {
	keys := make([]string, 0, len(defs))
	for _, def := range defs {
		keys = append(keys, def.Key)
	}
	return keys
}

func TestResolveRequired(t *testing.T) {
	t.Run("unconditional entries follow their base flag", func(t *testing.T) {
		cfg := &types.CaseConfig{VisaCategory: types.VisaF4}

		got := ResolveRequired(testCatalog(), cfg, false)
		assert.Equal(t, []string{"passport"}, defKeys(got))

		got = ResolveRequired(testCatalog(), cfg, true)
		assert.Equal(t, []string{"passport", "translations"}, defKeys(got))
	})

	t.Run("visa category gate excludes inapplicable entries entirely", func(t *testing.T) {
		cfg := &types.CaseConfig{VisaCategory: types.VisaF4}

		got := ResolveRequired(testCatalog(), cfg, true)
		assert.NotContains(t, defKeys(got), "marriage_certificate")
	})

	t.Run("matching category makes conditional entry required", func(t *testing.T) {
		cfg := &types.CaseConfig{VisaCategory: types.VisaIR1}

		got := ResolveRequired(testCatalog(), cfg, false)
		assert.Contains(t, defKeys(got), "marriage_certificate")
	})

	t.Run("flag conjunction requires every condition", func(t *testing.T) {
		cfg := &types.CaseConfig{VisaCategory: types.VisaIR1}

		got := ResolveRequired(testCatalog(), cfg, false)
		assert.NotContains(t, defKeys(got), "divorce_decree")

		cfg.PriorMarriagePetitioner = true
		got = ResolveRequired(testCatalog(), cfg, false)
		assert.Contains(t, defKeys(got), "divorce_decree")
	})

	t.Run("failed condition excludes even from the optional set", func(t *testing.T) {
		// joint_sponsor_used=false never matches a requiredWhen wanting true.
		cfg := &types.CaseConfig{VisaCategory: types.VisaIR1}

		got := ResolveRequired(testCatalog(), cfg, true)
		assert.NotContains(t, defKeys(got), "joint_sponsor_affidavit")
	})

	t.Run("unknown flag in predicate never matches", func(t *testing.T) {
		catalog := []types.DocumentDefinition{{
			Key:      "mystery",
			Name:     "Mystery Document",
			Category: types.CategoryMisc,
			Required: true,
			RequiredWhen: &types.RequiredWhen{
				Flags: map[types.ScenarioFlag]bool{types.ScenarioFlag("not_a_real_flag"): false},
			},
		}}
		cfg := &types.CaseConfig{VisaCategory: types.VisaIR1}

		got := ResolveRequired(catalog, cfg, true)
		assert.Empty(t, got)
	})

	t.Run("required sorted by category then name, optional appended", func(t *testing.T) {
		cfg := &types.CaseConfig{VisaCategory: types.VisaIR1}
		cfg.PriorMarriagePetitioner = true
		cfg.JointSponsorUsed = true

		got := ResolveRequired(testCatalog(), cfg, true)
		require.Equal(t, []string{
			"divorce_decree",          // civil
			"marriage_certificate",    // civil
			"passport",                // civil
			"joint_sponsor_affidavit", // financial
			"translations",            // optional tail
		}, defKeys(got))
	})

	t.Run("adding a matching flag never shrinks the required set", func(t *testing.T) {
		base := &types.CaseConfig{VisaCategory: types.VisaCR1}
		before := defKeys(ResolveRequired(testCatalog(), base, false))

		withFlag := *base
		withFlag.JointSponsorUsed = true
		after := defKeys(ResolveRequired(testCatalog(), &withFlag, false))

		for _, key := range before {
			assert.Contains(t, after, key)
		}
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		cfg := &types.CaseConfig{VisaCategory: types.VisaCR1}
		cfg.PriorMarriagePetitioner = true

		first := ResolveRequired(testCatalog(), cfg, true)
		second := ResolveRequired(testCatalog(), cfg, true)
		assert.Equal(t, first, second)
	})
}
