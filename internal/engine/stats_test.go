package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"visadesk/pkg/types"
)

func requiredDefs(keys ...string) []types.DocumentDefinition {
	defs := make([]types.DocumentDefinition, 0, len(keys))
	for _, key := range keys {
		defs = append(defs, types.DocumentDefinition{Key: key, Required: true})
	}
	return defs
}

func docWithStatus(id, key string, status types.DocumentStatus) *types.CaseDocument {
	return &types.CaseDocument{ID: id, DefinitionKey: key, Status: status}
}

func TestComputeStats(t *testing.T) {
	t.Run("single requirement with no uploads", func(t *testing.T) {
		stats := ComputeStats(requiredDefs("passport"), nil)
		assert.Equal(t, types.DocumentStats{Total: 1, Missing: 1}, stats)
	})

	t.Run("expiring document still satisfies its requirement", func(t *testing.T) {
		docs := []*types.CaseDocument{docWithStatus("d1", "passport", types.DocumentStatusNeedsAttention)}

		stats := ComputeStats(requiredDefs("passport"), docs)
		assert.Equal(t, 1, stats.Uploaded)
		assert.Equal(t, 0, stats.Missing)
		assert.Equal(t, 1, stats.Expiring)
		assert.Equal(t, 100, stats.PercentComplete)
	})

	t.Run("expired-only definition is neither satisfied nor missing", func(t *testing.T) {
		docs := []*types.CaseDocument{docWithStatus("d1", "passport", types.DocumentStatusExpired)}

		stats := ComputeStats(requiredDefs("passport"), docs)
		assert.Equal(t, 0, stats.Uploaded)
		assert.Equal(t, 0, stats.Missing)
		assert.Equal(t, 1, stats.Expired)
		assert.Equal(t, 0, stats.PercentComplete)
	})

	t.Run("any satisfying version counts once per definition", func(t *testing.T) {
		docs := []*types.CaseDocument{
			docWithStatus("d1", "passport", types.DocumentStatusExpired),
			docWithStatus("d2", "passport", types.DocumentStatusUploaded),
			docWithStatus("d3", "passport", types.DocumentStatusUploaded),
		}

		stats := ComputeStats(requiredDefs("passport"), docs)
		assert.Equal(t, 1, stats.Uploaded)
		assert.Equal(t, 1, stats.Expired)
	})

	t.Run("expiry counts span documents outside the mandatory set", func(t *testing.T) {
		docs := []*types.CaseDocument{
			docWithStatus("d1", "optional_doc", types.DocumentStatusNeedsAttention),
			docWithStatus("d2", "another_optional", types.DocumentStatusExpired),
		}

		stats := ComputeStats(requiredDefs("passport"), docs)
		assert.Equal(t, types.DocumentStats{
			Total:    1,
			Missing:  1,
			Expiring: 1,
			Expired:  1,
		}, stats)
	})

	t.Run("zero requirements means zero percent", func(t *testing.T) {
		stats := ComputeStats(nil, nil)
		assert.Equal(t, 0, stats.PercentComplete)
	})

	t.Run("percent rounds and stays within bounds", func(t *testing.T) {
		defs := requiredDefs("a", "b", "c")
		docs := []*types.CaseDocument{
			docWithStatus("d1", "a", types.DocumentStatusUploaded),
			docWithStatus("d2", "b", types.DocumentStatusUploaded),
		}

		stats := ComputeStats(defs, docs)
		assert.Equal(t, 67, stats.PercentComplete)

		full := append(docs, docWithStatus("d3", "c", types.DocumentStatusUploaded))
		stats = ComputeStats(defs, full)
		assert.Equal(t, 100, stats.PercentComplete)
	})
}
