package main

import (
	"context"
	"fmt"

	"visadesk/internal/db"
	"visadesk/internal/seed"
	"visadesk/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Mirror the document catalog into the database",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		definitionRepo := store.NewDefinitionRepository(pool)

		logrus.Info("Syncing document definitions...")
		if err := seed.SyncDefinitions(ctx, definitionRepo); err != nil {
			return fmt.Errorf("failed to sync document definitions: %w", err)
		}

		logrus.Info("Document definitions synced successfully")

		return nil
	},
}
