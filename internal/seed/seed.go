package seed

import (
	"context"
	"fmt"

	"visadesk/internal/catalog"
	"visadesk/internal/store"

	"github.com/sirupsen/logrus"
)

// SyncDefinitions mirrors the compiled document catalog into the database so
// reporting queries can join against it. The catalog in code is the source of
// truth: entries are upserted and rows whose key no longer exists are removed.
func SyncDefinitions(ctx context.Context, repo *store.DefinitionRepository) error {
	existing, err := repo.AllKeys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list mirrored definitions: %w", err)
	}

	known := make(map[string]struct{}, len(catalog.Definitions))
	for i := range catalog.Definitions {
		def := catalog.Definitions[i]
		known[def.Key] = struct{}{}

		if err := repo.UpsertDefinition(ctx, &def); err != nil {
			return fmt.Errorf("failed to upsert definition %s: %w", def.Key, err)
		}
	}

	for _, key := range existing {
		if _, ok := known[key]; ok {
			continue
		}

		logrus.WithField("key", key).Info("removing stale definition mirror")
		if err := repo.DeleteDefinition(ctx, key); err != nil {
			return fmt.Errorf("failed to delete stale definition %s: %w", key, err)
		}
	}

	return nil
}
