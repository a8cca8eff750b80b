// Package engine implements the document requirement and lifecycle engine:
// requirement resolution, expiration classification, reminder generation,
// and completeness stats. Every function is a pure function of its inputs;
// "now" is always a parameter and no function performs I/O or mutates its
// arguments.
package engine

import (
	"sort"

	"visadesk/pkg/types"
)

// ResolveRequired filters the catalog down to the definitions relevant to
// the given case. Required entries come first, sorted by (category, name);
// when includeOptional is set, applicable-but-not-required entries follow
// in the same order. Callers render checklist sections in exactly this
// order.
//
// A definition carrying a RequiredWhen predicate is required when every
// condition matches and excluded entirely otherwise, even from the optional
// set and even if its base Required flag is set.
func ResolveRequired(catalog []types.DocumentDefinition, cfg *types.CaseConfig, includeOptional bool) []types.DocumentDefinition {
	var required, optional []types.DocumentDefinition

	for _, def := range catalog {
		switch {
		case def.RequiredWhen != nil:
			if conditionsMatch(def.RequiredWhen, cfg) {
				required = append(required, def)
			}
		case def.Required:
			required = append(required, def)
		case includeOptional:
			optional = append(optional, def)
		}
	}

	sortDefinitions(required)
	sortDefinitions(optional)

	return append(required, optional...)
}

func conditionsMatch(when *types.RequiredWhen, cfg *types.CaseConfig) bool {
	if len(when.VisaCategories) > 0 {
		found := false
		for _, cat := range when.VisaCategories {
			if cat == cfg.VisaCategory {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for flag, want := range when.Flags {
		got, ok := cfg.ScenarioFlags.Value(flag)
		if !ok || got != want {
			return false
		}
	}

	return true
}

func sortDefinitions(defs []types.DocumentDefinition) {
	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].Category != defs[j].Category {
			return defs[i].Category < defs[j].Category
		}
		return defs[i].Name < defs[j].Name
	})
}
