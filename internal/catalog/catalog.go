// Package catalog is the source of truth for document definitions. The
// catalog is compile-time data: the engine reads it directly, and
// `visadesk seed` mirrors it into the database for admin reporting.
//
// To add a definition: append it here with a new stable key and run `just seed`.
// To remove one: delete it here and run `just seed` (auto-deleted from DB).
// Keys are stable forever; uploaded documents reference them.
package catalog

import "visadesk/pkg/types"

// Definitions lists every supporting document the portal knows about.
// compile-time safe - if DocumentDefinition changes, this won't compile.
var Definitions = []types.DocumentDefinition{
	{
		Key:          "passport_bio_page",
		Name:         "Passport Biographic Page",
		Description:  "Photo page of the beneficiary's currently valid passport",
		Category:     types.CategoryCivil,
		Roles:        []types.DocumentRole{types.RoleBeneficiary},
		Required:     true,
		ValidityType: types.ValidityFixedDays,
		ValidityDays: 3650,
	},
	{
		Key:          "birth_certificate_beneficiary",
		Name:         "Birth Certificate (Beneficiary)",
		Description:  "Long-form birth certificate issued by the civil registry",
		Category:     types.CategoryCivil,
		Roles:        []types.DocumentRole{types.RoleBeneficiary},
		Required:     true,
		ValidityType: types.ValidityNone,
	},
	{
		Key:          "proof_of_citizenship",
		Name:         "Proof of Citizenship or LPR Status",
		Description:  "Petitioner's US passport, naturalization certificate, or green card",
		Category:     types.CategoryCivil,
		Roles:        []types.DocumentRole{types.RolePetitioner},
		Required:     true,
		ValidityType: types.ValidityUserSet,
	},
	{
		Key:          "marriage_certificate",
		Name:         "Marriage Certificate",
		Description:  "Civil marriage certificate for the petitioning couple",
		Category:     types.CategoryCivil,
		Roles:        []types.DocumentRole{types.RolePetitioner, types.RoleBeneficiary},
		Required:     true,
		ValidityType: types.ValidityNone,
		RequiredWhen: &types.RequiredWhen{
			VisaCategories: []types.VisaCategory{types.VisaIR1, types.VisaCR1, types.VisaF2A},
		},
	},
	{
		Key:          "divorce_decree_petitioner",
		Name:         "Divorce Decree (Petitioner)",
		Description:  "Final divorce decree or annulment for each prior marriage of the petitioner",
		Category:     types.CategoryCivil,
		Roles:        []types.DocumentRole{types.RolePetitioner},
		Required:     true,
		ValidityType: types.ValidityNone,
		RequiredWhen: &types.RequiredWhen{
			Flags: map[types.ScenarioFlag]bool{types.FlagPriorMarriagePetitioner: true},
		},
	},
	{
		Key:          "divorce_decree_beneficiary",
		Name:         "Divorce Decree (Beneficiary)",
		Description:  "Final divorce decree or annulment for each prior marriage of the beneficiary",
		Category:     types.CategoryCivil,
		Roles:        []types.DocumentRole{types.RoleBeneficiary},
		Required:     true,
		ValidityType: types.ValidityNone,
		RequiredWhen: &types.RequiredWhen{
			Flags: map[types.ScenarioFlag]bool{types.FlagPriorMarriageBeneficiary: true},
		},
	},
	{
		Key:          "adoption_decree",
		Name:         "Adoption Decree",
		Description:  "Full and final adoption decree with legal custody dates",
		Category:     types.CategoryCivil,
		Roles:        []types.DocumentRole{types.RolePetitioner},
		Required:     true,
		ValidityType: types.ValidityNone,
		RequiredWhen: &types.RequiredWhen{
			VisaCategories: []types.VisaCategory{types.VisaIR2, types.VisaCR2, types.VisaF2A},
			Flags:          map[types.ScenarioFlag]bool{types.FlagAdoptedChild: true},
		},
	},
	{
		Key:             "affidavit_of_support",
		Name:            "Affidavit of Support (I-864)",
		Description:     "Signed affidavit of support with most recent federal tax return",
		Category:        types.CategoryFinancial,
		Roles:           []types.DocumentRole{types.RolePetitioner},
		Required:        true,
		ValidityType:    types.ValidityFixedDays,
		ValidityDays:    365,
		DefaultWarnDays: 60,
	},
	{
		Key:          "tax_returns",
		Name:         "Federal Tax Returns (3 years)",
		Description:  "Transcripts or returns with W-2s for the three most recent tax years",
		Category:     types.CategoryFinancial,
		Roles:        []types.DocumentRole{types.RolePetitioner},
		Required:     true,
		ValidityType: types.ValidityNone,
	},
	{
		Key:             "pay_stubs",
		Name:            "Recent Pay Stubs",
		Description:     "Pay stubs covering the most recent six months of employment",
		Category:        types.CategoryFinancial,
		Roles:           []types.DocumentRole{types.RolePetitioner},
		Required:        false,
		ValidityType:    types.ValidityFixedDays,
		ValidityDays:    180,
		DefaultWarnDays: 30,
	},
	{
		Key:             "joint_sponsor_affidavit",
		Name:            "Joint Sponsor Affidavit of Support",
		Description:     "I-864 from the joint sponsor with their tax return and proof of status",
		Category:        types.CategoryFinancial,
		Roles:           []types.DocumentRole{types.RoleJointSponsor},
		Required:        true,
		ValidityType:    types.ValidityFixedDays,
		ValidityDays:    365,
		DefaultWarnDays: 60,
		RequiredWhen: &types.RequiredWhen{
			Flags: map[types.ScenarioFlag]bool{types.FlagJointSponsorUsed: true},
		},
	},
	{
		Key:          "household_member_consent",
		Name:         "Household Member Income Consent (I-864A)",
		Description:  "Contract between sponsor and household member whose income is counted",
		Category:     types.CategoryFinancial,
		Roles:        []types.DocumentRole{types.RoleHouseholdMember},
		Required:     false,
		ValidityType: types.ValidityNone,
	},
	{
		Key:          "relationship_evidence",
		Name:         "Proof of Bona Fide Relationship",
		Description:  "Joint accounts, lease or deed, correspondence, and photos together",
		Category:     types.CategoryRelationship,
		Roles:        []types.DocumentRole{types.RolePetitioner, types.RoleBeneficiary},
		Required:     true,
		ValidityType: types.ValidityNone,
		RequiredWhen: &types.RequiredWhen{
			VisaCategories: []types.VisaCategory{types.VisaIR1, types.VisaCR1, types.VisaK1, types.VisaF2A},
		},
	},
	{
		Key:          "intent_to_marry",
		Name:         "Statements of Intent to Marry",
		Description:  "Signed statements from both parties affirming intent to marry within 90 days",
		Category:     types.CategoryRelationship,
		Roles:        []types.DocumentRole{types.RolePetitioner, types.RoleBeneficiary},
		Required:     true,
		ValidityType: types.ValidityNone,
		RequiredWhen: &types.RequiredWhen{
			VisaCategories: []types.VisaCategory{types.VisaK1},
		},
	},
	{
		Key:             "police_certificate",
		Name:            "Police Clearance Certificate",
		Description:     "Certificate from each country lived in for over 12 months since age 16",
		Category:        types.CategoryPolice,
		Roles:           []types.DocumentRole{types.RoleBeneficiary},
		Required:        true,
		ValidityType:    types.ValidityFixedDays,
		ValidityDays:    730,
		DefaultWarnDays: 90,
		RequiredWhen: &types.RequiredWhen{
			Flags: map[types.ScenarioFlag]bool{types.FlagPoliceCertificateRequired: true},
		},
	},
	{
		Key:          "court_records",
		Name:         "Court and Prison Records",
		Description:  "Certified court disposition for every arrest or conviction",
		Category:     types.CategoryPolice,
		Roles:        []types.DocumentRole{types.RoleBeneficiary},
		Required:     true,
		ValidityType: types.ValidityNone,
		RequiredWhen: &types.RequiredWhen{
			Flags: map[types.ScenarioFlag]bool{types.FlagCriminalHistory: true},
		},
	},
	{
		Key:          "military_records",
		Name:         "Military Service Records",
		Description:  "Service and discharge records for any military service",
		Category:     types.CategoryPolice,
		Roles:        []types.DocumentRole{types.RoleBeneficiary},
		Required:     true,
		ValidityType: types.ValidityNone,
		RequiredWhen: &types.RequiredWhen{
			Flags: map[types.ScenarioFlag]bool{types.FlagMilitaryService: true},
		},
	},
	{
		Key:          "waiver_documentation",
		Name:         "Inadmissibility Waiver Documentation",
		Description:  "I-601 waiver filing and supporting evidence for prior violations",
		Category:     types.CategoryMisc,
		Roles:        []types.DocumentRole{types.RoleBeneficiary},
		Required:     true,
		ValidityType: types.ValidityNone,
		RequiredWhen: &types.RequiredWhen{
			Flags: map[types.ScenarioFlag]bool{types.FlagImmigrationViolations: true},
		},
	},
	{
		Key:             "medical_exam",
		Name:            "Immigration Medical Examination",
		Description:     "Sealed exam results from an authorized panel physician",
		Category:        types.CategoryMedical,
		Roles:           []types.DocumentRole{types.RoleBeneficiary},
		Required:        true,
		ValidityType:    types.ValidityFixedDays,
		ValidityDays:    180,
		DefaultWarnDays: 45,
	},
	{
		Key:             "passport_photos",
		Name:            "Passport-Style Photos",
		Description:     "Two identical color photos taken within the last six months",
		Category:        types.CategoryPhotos,
		Roles:           []types.DocumentRole{types.RoleBeneficiary},
		Required:        true,
		ValidityType:    types.ValidityFixedDays,
		ValidityDays:    180,
		DefaultWarnDays: 30,
	},
	{
		Key:          "certified_translations",
		Name:         "Certified Translations",
		Description:  "Certified English translation for every foreign-language document",
		Category:     types.CategoryTranslation,
		Roles:        []types.DocumentRole{types.RolePetitioner, types.RoleBeneficiary},
		Required:     false,
		ValidityType: types.ValidityNone,
	},
	{
		Key:          "i94_travel_history",
		Name:         "I-94 and Travel History",
		Description:  "Most recent I-94 record and list of US entries, if any",
		Category:     types.CategoryMisc,
		Roles:        []types.DocumentRole{types.RoleBeneficiary},
		Required:     false,
		ValidityType: types.ValidityPolicyVariable,
	},
}

// ByKey indexes Definitions for engine lookups.
func ByKey() map[string]types.DocumentDefinition {
	m := make(map[string]types.DocumentDefinition, len(Definitions))
	for _, def := range Definitions {
		m[def.Key] = def
	}
	return m
}

// Lookup returns the definition for key.
func Lookup(key string) (types.DocumentDefinition, bool) {
	for _, def := range Definitions {
		if def.Key == key {
			return def, true
		}
	}
	return types.DocumentDefinition{}, false
}
