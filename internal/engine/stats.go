package engine

import (
	"math"

	"visadesk/pkg/types"
)

// ComputeStats derives completeness counts for progress displays.
//
// requiredDefs must be the mandatory set only (ResolveRequired with
// includeOptional=false); optional documents never affect the completeness
// percentage. Documents are expected to carry the status stamped from
// Classify. Expiring and expired counts run across every document passed,
// not just those linked to a mandatory definition, matching what a user
// sees in a full document list.
func ComputeStats(requiredDefs []types.DocumentDefinition, docs []*types.CaseDocument) types.DocumentStats {
	byKey := make(map[string][]*types.CaseDocument, len(docs))
	for _, doc := range docs {
		byKey[doc.DefinitionKey] = append(byKey[doc.DefinitionKey], doc)
	}

	stats := types.DocumentStats{Total: len(requiredDefs)}

	for _, def := range requiredDefs {
		linked := byKey[def.Key]
		if len(linked) == 0 {
			stats.Missing++
			continue
		}

		// A definition is satisfied when any linked version is present and
		// not expired; an expiring document still counts toward
		// completeness. A definition whose only documents are expired is
		// neither satisfied nor missing: it exists but needs renewal.
		for _, doc := range linked {
			if doc.Status == types.DocumentStatusUploaded || doc.Status == types.DocumentStatusNeedsAttention {
				stats.Uploaded++
				break
			}
		}
	}

	for _, doc := range docs {
		switch doc.Status {
		case types.DocumentStatusNeedsAttention:
			stats.Expiring++
		case types.DocumentStatusExpired:
			stats.Expired++
		}
	}

	if stats.Total > 0 {
		stats.PercentComplete = int(math.Round(100 * float64(stats.Uploaded) / float64(stats.Total)))
	}

	return stats
}
