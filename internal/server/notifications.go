package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"visadesk/internal/catalog"
	"visadesk/internal/engine"
	"visadesk/internal/utils"
	"visadesk/pkg/types"
)

func (s *Service) handleNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.internalServerError(w)
		return
	}

	cfg, err := s.caseRepo.CaseByUser(ctx, userID)
	if errors.Is(err, types.ErrCaseNotFound) {
		http.Redirect(w, r, "/onboarding", http.StatusFound)
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to load case for notifications")
		s.internalServerError(w)
		return
	}

	docs, err := s.documentRepo.DocumentsByCase(ctx, cfg.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load case documents")
		s.internalServerError(w)
		return
	}

	notifCfg, err := s.notificationRepo.ConfigByUser(ctx, userID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load notification config")
		s.internalServerError(w)
		return
	}

	now := time.Now().UTC()

	required := engine.ResolveRequired(catalog.Definitions, cfg, false)
	requiredKeys := make([]string, 0, len(required))
	for _, def := range required {
		requiredKeys = append(requiredKeys, def.Key)
	}

	msgs := engine.Generate(docs, catalog.ByKey(), requiredKeys, notifCfg, &notifCfg.NotificationPreferences, now)

	data := &types.NotificationsPageData{
		BasePageData:  types.BasePageData{Title: "Reminders"},
		Notifications: msgs,
		SnoozedUntil:  notifCfg.SnoozedUntil,
	}

	if err := s.renderTemplate(w, r, "page.notifications", data); err != nil {
		s.logger.WithError(err).Error("failed to render notifications page")
		s.internalServerError(w)
		return
	}

	// Record what was surfaced so the next visit is rate limited.
	notifCfg.RecordSurfaced(msgs, now)
	if err := s.notificationRepo.UpdateConfig(ctx, notifCfg); err != nil {
		s.logger.WithError(err).Error("failed to record surfaced reminders")
	}
}

func (s *Service) handlePostSnooze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.internalServerError(w)
		return
	}

	notifCfg, err := s.notificationRepo.ConfigByUser(ctx, userID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load notification config")
		s.internalServerError(w)
		return
	}

	days := 7
	if raw := r.PostFormValue("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.redirectChecklistWithError(w, r, "Snooze length must be a positive number of days.")
			return
		}
		days = parsed
	}

	notifCfg.SnoozedUntil = utils.TimePtr(time.Now().UTC().AddDate(0, 0, days))
	if err := s.notificationRepo.UpdateConfig(ctx, notifCfg); err != nil {
		s.logger.WithError(err).Error("failed to snooze reminders")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/notifications", http.StatusFound)
}
