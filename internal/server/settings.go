package server

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"visadesk/pkg/types"
)

type notificationSettingsForm struct {
	EnableMissing    bool   `form:"enable_missing"`
	EnableExpiring   bool   `form:"enable_expiring"`
	EnableExpired    bool   `form:"enable_expired"`
	Cadence          string `form:"cadence"`
	ExpiryThresholds string `form:"expiry_thresholds"`
}

func (s *Service) handleGetNotificationSettings(w http.ResponseWriter, r *http.Request) {
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

	data := &types.NotificationSettingsPageData{
		BasePageData: types.BasePageData{Title: "Reminder Settings"},
		Preferences:  notifCfg.NotificationPreferences,
		Notice:       r.URL.Query().Get("notice"),
	}

	if err := s.renderTemplate(w, r, "page.settings.notifications", data); err != nil {
		s.logger.WithError(err).Error("failed to render reminder settings page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostNotificationSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.internalServerError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Error("failed to parse reminder settings form")
		s.internalServerError(w)
		return
	}

	var settings = new(notificationSettingsForm)
	if err := decoder.Decode(settings, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode reminder settings form")
		s.internalServerError(w)
		return
	}

	cadence, ok := parseCadence(settings.Cadence)
	if !ok {
		s.redirectChecklistWithError(w, r, "Choose a reminder cadence.")
		return
	}

	thresholds, err := parseThresholds(settings.ExpiryThresholds)
	if err != nil {
		s.redirectChecklistWithError(w, r, "Expiry thresholds must be positive whole numbers of days.")
		return
	}

	notifCfg, err := s.notificationRepo.ConfigByUser(ctx, userID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load notification config")
		s.internalServerError(w)
		return
	}

	notifCfg.EnableMissingDocReminders = settings.EnableMissing
	notifCfg.EnableExpiringReminders = settings.EnableExpiring
	notifCfg.EnableExpiredReminders = settings.EnableExpired
	notifCfg.Cadence = cadence
	notifCfg.ExpiryThresholds = thresholds

	if err := s.notificationRepo.UpdateConfig(ctx, notifCfg); err != nil {
		s.logger.WithError(err).Error("failed to save reminder settings")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/settings/notifications?notice=Reminder+settings+saved.", http.StatusFound)
}

func parseCadence(v string) (types.ReminderCadence, bool) {
	switch types.ReminderCadence(v) {
	case types.CadenceDisabled, types.CadenceDaily, types.CadenceWeekly, types.CadenceMonthly:
		return types.ReminderCadence(v), true
	}
	return "", false
}

// parseThresholds accepts a comma separated day list and normalizes it
// descending, the order the generator expects to evaluate trigger points.
func parseThresholds(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return types.DefaultNotificationPreferences().ExpiryThresholds, nil
	}

	seen := make(map[int]struct{})
	thresholds := make([]int, 0, 4)
	for _, part := range strings.Split(raw, ",") {
		days, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || days < 1 {
			return nil, strconv.ErrSyntax
		}
		if _, ok := seen[days]; ok {
			continue
		}
		seen[days] = struct{}{}
		thresholds = append(thresholds, days)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(thresholds)))
	return thresholds, nil
}
