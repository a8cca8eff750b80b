package types

import "time"

// NotificationType classifies what a notification asks the user to do.
type NotificationType string

const (
	NotificationDocMissing      NotificationType = "DOC_MISSING"
	NotificationDocExpiringSoon NotificationType = "DOC_EXPIRING_SOON"
	NotificationDocExpired      NotificationType = "DOC_EXPIRED"
)

// NotificationSeverity orders notifications for display.
type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "info"
	SeverityWarning NotificationSeverity = "warning"
	SeverityError   NotificationSeverity = "error"
)

// ReminderCadence is the user-tunable interval between repeated
// missing-document reminders.
type ReminderCadence string

const (
	CadenceDisabled ReminderCadence = "disabled"
	CadenceDaily    ReminderCadence = "daily"
	CadenceWeekly   ReminderCadence = "weekly"
	CadenceMonthly  ReminderCadence = "monthly"
)

// Days returns the minimum number of days between reminders for this
// cadence. The second return is false when the cadence never fires.
func (c ReminderCadence) Days() (int, bool) {
	switch c {
	case CadenceDaily:
		return 1, true
	case CadenceWeekly:
		return 7, true
	case CadenceMonthly:
		return 30, true
	}
	return 0, false
}

// NotificationMessage is one actionable reminder. Messages are ephemeral:
// regenerated on every evaluation pass, never persisted as the source of
// truth. IDs are derived from type + target so regeneration is idempotent
// and consumers can deduplicate.
type NotificationMessage struct {
	ID       string               `json:"id"`
	Type     NotificationType     `json:"type"`
	Severity NotificationSeverity `json:"severity"`
	Message  string               `json:"message"`

	// DefinitionKey is set for DOC_MISSING; DocumentID for the expiry types.
	DefinitionKey string `json:"definitionKey,omitempty"`
	DocumentID    string `json:"documentId,omitempty"`

	ActionRequired bool       `json:"actionRequired"`
	Read           bool       `json:"read"`
	SnoozedUntil   *time.Time `json:"snoozedUntil,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// NotificationPreferences are the user-tunable knobs for reminder
// generation.
type NotificationPreferences struct {
	EnableMissingDocReminders bool            `db:"enable_missing" form:"enable_missing"`
	EnableExpiringReminders   bool            `db:"enable_expiring" form:"enable_expiring"`
	EnableExpiredReminders    bool            `db:"enable_expired" form:"enable_expired"`
	Cadence                   ReminderCadence `db:"cadence" form:"cadence"`
	// ExpiryThresholds are trigger points in days-until-expiration, not
	// mutually exclusive bands. Stored as jsonb.
	ExpiryThresholds []int `db:"expiry_thresholds"`
}

// DefaultNotificationPreferences returns the preferences assigned on first
// use.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		EnableMissingDocReminders: true,
		EnableExpiringReminders:   true,
		EnableExpiredReminders:    true,
		Cadence:                   CadenceWeekly,
		ExpiryThresholds:          []int{90, 60, 30, 7},
	}
}

// NotificationConfig is the persisted throttle state for one user, updated
// by callers each time a notification is actually surfaced.
type NotificationConfig struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`

	LastMissingReminder *time.Time `db:"last_missing_reminder"`
	// LastExpiryReminders maps document id to the last time an expiring
	// reminder for that document was surfaced. Stored as jsonb.
	LastExpiryReminders map[string]time.Time `db:"last_expiry_reminders"`
	SnoozedUntil        *time.Time           `db:"snoozed_until"`

	NotificationPreferences

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// RecordSurfaced advances throttle timestamps for every message in msgs.
// The notification generator itself never mutates throttle state; callers
// invoke this after successfully surfacing the messages, then persist.
func (c *NotificationConfig) RecordSurfaced(msgs []NotificationMessage, now time.Time) {
	for _, msg := range msgs {
		switch msg.Type {
		case NotificationDocMissing:
			t := now
			c.LastMissingReminder = &t
		case NotificationDocExpiringSoon:
			if c.LastExpiryReminders == nil {
				c.LastExpiryReminders = make(map[string]time.Time)
			}
			c.LastExpiryReminders[msg.DocumentID] = now
		}
	}
}

// DocumentStats summarizes checklist completeness for progress displays.
type DocumentStats struct {
	Total           int `json:"total"`
	Uploaded        int `json:"uploaded"`
	Missing         int `json:"missing"`
	Expiring        int `json:"expiring"`
	Expired         int `json:"expired"`
	PercentComplete int `json:"percentComplete"`
}
