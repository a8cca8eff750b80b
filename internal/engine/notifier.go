package engine

import (
	"fmt"
	"sort"
	"time"

	"visadesk/pkg/types"
)

// Generate produces the deduplicated, rate-limited reminder list for one
// user's document set at one instant.
//
// The generator reads throttle state but never writes it: after surfacing
// the returned messages, callers advance the throttle via
// NotificationConfig.RecordSurfaced and persist it on their own schedule.
// Records referencing a definition missing from defs are skipped; a stale
// document never blocks the rest of the evaluation.
func Generate(
	docs []*types.CaseDocument,
	defs map[string]types.DocumentDefinition,
	requiredKeys []string,
	throttle *types.NotificationConfig,
	prefs *types.NotificationPreferences,
	now time.Time,
) []types.NotificationMessage {
	if throttle == nil {
		throttle = &types.NotificationConfig{}
	}
	if prefs == nil {
		defaults := types.DefaultNotificationPreferences()
		prefs = &defaults
	}

	// Global snooze is the kill switch, checked before anything else.
	if throttle.SnoozedUntil != nil && now.Before(*throttle.SnoozedUntil) {
		return []types.NotificationMessage{}
	}

	msgs := make([]types.NotificationMessage, 0)
	msgs = append(msgs, missingDocMessages(docs, defs, requiredKeys, throttle, prefs, now)...)

	for _, doc := range docs {
		def, ok := defs[doc.DefinitionKey]
		if !ok {
			continue
		}

		c := Classify(def, *doc, now)
		if c.ExpiresAt == nil {
			continue
		}

		switch {
		case c.DaysUntilExpiration < 0:
			if prefs.EnableExpiredReminders {
				msgs = append(msgs, expiredMessage(def, doc, c, now))
			}
		default:
			if prefs.EnableExpiringReminders && expiryReminderDue(doc.ID, c.DaysUntilExpiration, throttle, prefs, now) {
				msgs = append(msgs, expiringMessage(def, doc, c, now))
			}
		}
	}

	sortMessages(msgs)
	return msgs
}

func missingDocMessages(
	docs []*types.CaseDocument,
	defs map[string]types.DocumentDefinition,
	requiredKeys []string,
	throttle *types.NotificationConfig,
	prefs *types.NotificationPreferences,
	now time.Time,
) []types.NotificationMessage {
	if !prefs.EnableMissingDocReminders {
		return nil
	}

	cadenceDays, ok := prefs.Cadence.Days()
	if !ok {
		return nil
	}
	if last := throttle.LastMissingReminder; last != nil {
		if now.Sub(*last) < time.Duration(cadenceDays)*24*time.Hour {
			return nil
		}
	}

	present := make(map[string]bool, len(docs))
	for _, doc := range docs {
		present[doc.DefinitionKey] = true
	}

	var msgs []types.NotificationMessage
	for _, key := range requiredKeys {
		if present[key] {
			continue
		}

		name := key
		if def, ok := defs[key]; ok {
			name = def.Name
		}

		msgs = append(msgs, types.NotificationMessage{
			ID:             "missing_" + key,
			Type:           types.NotificationDocMissing,
			Severity:       types.SeverityWarning,
			Message:        fmt.Sprintf("%s is required for your case but has not been uploaded yet.", name),
			DefinitionKey:  key,
			ActionRequired: true,
			CreatedAt:      now,
		})
	}

	return msgs
}

func expiredMessage(def types.DocumentDefinition, doc *types.CaseDocument, c Classification, now time.Time) types.NotificationMessage {
	return types.NotificationMessage{
		ID:             "expired_" + doc.ID,
		Type:           types.NotificationDocExpired,
		Severity:       types.SeverityError,
		Message:        fmt.Sprintf("%s expired %s. Upload a current version.", def.Name, daysAgo(-c.DaysUntilExpiration)),
		DocumentID:     doc.ID,
		DefinitionKey:  doc.DefinitionKey,
		ActionRequired: true,
		CreatedAt:      now,
	}
}

func expiringMessage(def types.DocumentDefinition, doc *types.CaseDocument, c Classification, now time.Time) types.NotificationMessage {
	severity := types.SeverityWarning
	if c.DaysUntilExpiration <= 7 {
		severity = types.SeverityError
	}

	return types.NotificationMessage{
		ID:             "expiring_" + doc.ID,
		Type:           types.NotificationDocExpiringSoon,
		Severity:       severity,
		Message:        fmt.Sprintf("%s %s.", def.Name, expiresIn(c.DaysUntilExpiration)),
		DocumentID:     doc.ID,
		DefinitionKey:  doc.DefinitionKey,
		ActionRequired: severity == types.SeverityError,
		CreatedAt:      now,
	}
}

// expiryReminderDue applies per-document rate limiting: the closer the
// expiration, the more often a reminder may repeat. Thresholds are trigger
// points, not bands; a document is a candidate when its days-until is at or
// below any configured threshold.
func expiryReminderDue(documentID string, days int, throttle *types.NotificationConfig, prefs *types.NotificationPreferences, now time.Time) bool {
	triggered := false
	for _, threshold := range prefs.ExpiryThresholds {
		if days <= threshold {
			triggered = true
			break
		}
	}
	if !triggered {
		return false
	}

	last, ok := throttle.LastExpiryReminders[documentID]
	if !ok {
		return true
	}

	return now.Sub(last) >= time.Duration(reminderIntervalDays(days))*24*time.Hour
}

func reminderIntervalDays(daysUntilExpiration int) int {
	switch {
	case daysUntilExpiration <= 7:
		return 1
	case daysUntilExpiration <= 30:
		return 3
	case daysUntilExpiration <= 60:
		return 7
	}
	return 14
}

var severityRank = map[types.NotificationSeverity]int{
	types.SeverityError:   0,
	types.SeverityWarning: 1,
	types.SeverityInfo:    2,
}

// sortMessages orders by severity, then recency descending. The ordering is
// a display contract for the UI layer.
func sortMessages(msgs []types.NotificationMessage) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if severityRank[msgs[i].Severity] != severityRank[msgs[j].Severity] {
			return severityRank[msgs[i].Severity] < severityRank[msgs[j].Severity]
		}
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
}

func daysAgo(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}

func expiresIn(days int) string {
	switch days {
	case 0:
		return "expires today"
	case 1:
		return "expires tomorrow"
	}
	return fmt.Sprintf("expires in %d days", days)
}
