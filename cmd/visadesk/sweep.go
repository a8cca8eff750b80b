package main

import (
	"context"
	"fmt"
	"time"

	"visadesk/internal/catalog"
	"visadesk/internal/db"
	"visadesk/internal/engine"
	"visadesk/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var sweepCommand = &cli.Command{
	Name:  "sweep",
	Usage: "Evaluate reminders for every case, intended to run on a schedule",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Log reminders without advancing throttle state",
		},
	},
	Action: sweep,
}

func sweep(cCtx *cli.Context) error {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

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

	caseRepo := store.NewCaseRepository(pool)
	documentRepo := store.NewDocumentRepository(pool)
	notificationRepo := store.NewNotificationRepository(pool)

	cases, err := caseRepo.AllCases(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cases: %w", err)
	}

	now := time.Now().UTC()
	defs := catalog.ByKey()
	dryRun := cCtx.Bool("dry-run")

	var surfaced int
	for _, caseCfg := range cases {
		docs, err := documentRepo.DocumentsByCase(ctx, caseCfg.ID)
		if err != nil {
			logger.WithError(err).WithField("case_id", caseCfg.ID).Error("failed to load case documents, skipping")
			continue
		}

		notifCfg, err := notificationRepo.ConfigByUser(ctx, caseCfg.UserID)
		if err != nil {
			logger.WithError(err).WithField("user_id", caseCfg.UserID).Error("failed to load notification config, skipping")
			continue
		}

		required := engine.ResolveRequired(catalog.Definitions, caseCfg, false)
		requiredKeys := make([]string, 0, len(required))
		for _, def := range required {
			requiredKeys = append(requiredKeys, def.Key)
		}

		msgs := engine.Generate(docs, defs, requiredKeys, notifCfg, &notifCfg.NotificationPreferences, now)
		if len(msgs) == 0 {
			continue
		}

		// Delivery here is a structured log line per reminder; an email or
		// push integration would hang off the same loop.
		for _, msg := range msgs {
			logger.WithFields(logrus.Fields{
				"user_id":  caseCfg.UserID,
				"case_id":  caseCfg.ID,
				"id":       msg.ID,
				"type":     msg.Type,
				"severity": msg.Severity,
			}).Info(msg.Message)
		}
		surfaced += len(msgs)

		if dryRun {
			continue
		}

		notifCfg.RecordSurfaced(msgs, now)
		if err := notificationRepo.UpdateConfig(ctx, notifCfg); err != nil {
			logger.WithError(err).WithField("user_id", caseCfg.UserID).Error("failed to record surfaced reminders")
		}
	}

	logger.WithFields(logrus.Fields{
		"cases":     len(cases),
		"reminders": surfaced,
	}).Info("sweep complete")

	return nil
}
