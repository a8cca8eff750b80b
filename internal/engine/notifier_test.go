package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visadesk/internal/utils"
	"visadesk/pkg/types"
)

var notifierNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func notifierDefs() map[string]types.DocumentDefinition {
	return map[string]types.DocumentDefinition{
		"passport": {
			Key:          "passport",
			Name:         "Passport",
			ValidityType: types.ValidityFixedDays,
			ValidityDays: 3650,
		},
		"medical_exam": {
			Key:          "medical_exam",
			Name:         "Medical Examination",
			ValidityType: types.ValidityFixedDays,
			ValidityDays: 180,
		},
		"birth_certificate": {
			Key:          "birth_certificate",
			Name:         "Birth Certificate",
			ValidityType: types.ValidityNone,
		},
	}
}

func expiringPassport(daysOut int) *types.CaseDocument {
	return &types.CaseDocument{
		ID:            "doc1",
		DefinitionKey: "passport",
		UploadedAt:    notifierNow.AddDate(0, 0, daysOut-3650),
	}
}

func msgIDs(msgs []types.NotificationMessage) []string {
	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestGenerate(t *testing.T) {
	prefs := types.DefaultNotificationPreferences()

	t.Run("document expiring within seven days emits an error reminder", func(t *testing.T) {
		docs := []*types.CaseDocument{expiringPassport(5)}

		msgs := Generate(docs, notifierDefs(), nil, nil, &prefs, notifierNow)
		require.Len(t, msgs, 1)
		assert.Equal(t, "expiring_doc1", msgs[0].ID)
		assert.Equal(t, types.NotificationDocExpiringSoon, msgs[0].Type)
		assert.Equal(t, types.SeverityError, msgs[0].Severity)
		assert.True(t, msgs[0].ActionRequired)
		assert.Contains(t, msgs[0].Message, "expires in 5 days")
	})

	t.Run("just-surfaced reminder is rate limited on the next pass", func(t *testing.T) {
		docs := []*types.CaseDocument{expiringPassport(5)}
		throttle := &types.NotificationConfig{}

		first := Generate(docs, notifierDefs(), nil, throttle, &prefs, notifierNow)
		require.Len(t, first, 1)

		throttle.RecordSurfaced(first, notifierNow)
		second := Generate(docs, notifierDefs(), nil, throttle, &prefs, notifierNow)
		assert.Empty(t, second)

		// A full day later the <=7 day bucket is due again.
		third := Generate(docs, notifierDefs(), nil, throttle, &prefs, notifierNow.Add(24*time.Hour))
		assert.Len(t, third, 1)
	})

	t.Run("farther thresholds use wider reminder intervals", func(t *testing.T) {
		docs := []*types.CaseDocument{expiringPassport(45)}
		throttle := &types.NotificationConfig{
			LastExpiryReminders: map[string]time.Time{"doc1": notifierNow.AddDate(0, 0, -5)},
		}

		// 45 days out sits in the <=60 bucket: once per 7 days.
		msgs := Generate(docs, notifierDefs(), nil, throttle, &prefs, notifierNow)
		assert.Empty(t, msgs)

		throttle.LastExpiryReminders["doc1"] = notifierNow.AddDate(0, 0, -8)
		msgs = Generate(docs, notifierDefs(), nil, throttle, &prefs, notifierNow)
		require.Len(t, msgs, 1)
		assert.Equal(t, types.SeverityWarning, msgs[0].Severity)
		assert.False(t, msgs[0].ActionRequired)
	})

	t.Run("days beyond every threshold emit nothing", func(t *testing.T) {
		docs := []*types.CaseDocument{expiringPassport(120)}

		msgs := Generate(docs, notifierDefs(), nil, nil, &prefs, notifierNow)
		assert.Empty(t, msgs)
	})

	t.Run("expired document reports days since expiry", func(t *testing.T) {
		docs := []*types.CaseDocument{expiringPassport(-3)}

		msgs := Generate(docs, notifierDefs(), nil, nil, &prefs, notifierNow)
		require.Len(t, msgs, 1)
		assert.Equal(t, "expired_doc1", msgs[0].ID)
		assert.Equal(t, types.NotificationDocExpired, msgs[0].Type)
		assert.Equal(t, types.SeverityError, msgs[0].Severity)
		assert.Contains(t, msgs[0].Message, "expired 3 days ago")
	})

	t.Run("missing documents emit one warning per definition", func(t *testing.T) {
		required := []string{"passport", "birth_certificate"}
		docs := []*types.CaseDocument{expiringPassport(500)}

		msgs := Generate(docs, notifierDefs(), required, nil, &prefs, notifierNow)
		require.Len(t, msgs, 1)
		assert.Equal(t, "missing_birth_certificate", msgs[0].ID)
		assert.Equal(t, types.NotificationDocMissing, msgs[0].Type)
		assert.Equal(t, types.SeverityWarning, msgs[0].Severity)
		assert.Contains(t, msgs[0].Message, "Birth Certificate")
	})

	t.Run("missing reminders honor the cadence", func(t *testing.T) {
		required := []string{"birth_certificate"}
		throttle := &types.NotificationConfig{
			LastMissingReminder: utils.TimePtr(notifierNow.AddDate(0, 0, -3)),
		}

		msgs := Generate(nil, notifierDefs(), required, throttle, &prefs, notifierNow)
		assert.Empty(t, msgs, "weekly cadence with a 3 day old reminder is not due")

		throttle.LastMissingReminder = utils.TimePtr(notifierNow.AddDate(0, 0, -8))
		msgs = Generate(nil, notifierDefs(), required, throttle, &prefs, notifierNow)
		assert.Len(t, msgs, 1)
	})

	t.Run("disabled cadence never reminds about missing documents", func(t *testing.T) {
		p := types.DefaultNotificationPreferences()
		p.Cadence = types.CadenceDisabled

		msgs := Generate(nil, notifierDefs(), []string{"birth_certificate"}, nil, &p, notifierNow)
		assert.Empty(t, msgs)
	})

	t.Run("global snooze suppresses everything", func(t *testing.T) {
		throttle := &types.NotificationConfig{
			SnoozedUntil: utils.TimePtr(notifierNow.Add(time.Hour)),
		}
		docs := []*types.CaseDocument{expiringPassport(-3)}

		msgs := Generate(docs, notifierDefs(), []string{"birth_certificate"}, throttle, &prefs, notifierNow)
		assert.Empty(t, msgs)

		// An elapsed snooze no longer suppresses.
		throttle.SnoozedUntil = utils.TimePtr(notifierNow.Add(-time.Minute))
		msgs = Generate(docs, notifierDefs(), []string{"birth_certificate"}, throttle, &prefs, notifierNow)
		assert.NotEmpty(t, msgs)
	})

	t.Run("preference toggles suppress their pass", func(t *testing.T) {
		p := types.DefaultNotificationPreferences()
		p.EnableMissingDocReminders = false
		p.EnableExpiredReminders = false
		p.EnableExpiringReminders = false

		docs := []*types.CaseDocument{expiringPassport(-3), {
			ID:            "doc2",
			DefinitionKey: "medical_exam",
			UploadedAt:    notifierNow.AddDate(0, 0, -175),
		}}

		msgs := Generate(docs, notifierDefs(), []string{"birth_certificate"}, nil, &p, notifierNow)
		assert.Empty(t, msgs)
	})

	t.Run("record referencing an unknown definition is skipped", func(t *testing.T) {
		docs := []*types.CaseDocument{{
			ID:            "stale",
			DefinitionKey: "removed_definition",
			UploadedAt:    notifierNow.AddDate(-3, 0, 0),
		}, expiringPassport(5)}

		msgs := Generate(docs, notifierDefs(), nil, nil, &prefs, notifierNow)
		require.Len(t, msgs, 1)
		assert.Equal(t, "expiring_doc1", msgs[0].ID)
	})

	t.Run("output is sorted errors first", func(t *testing.T) {
		docs := []*types.CaseDocument{
			expiringPassport(45), // warning
			{
				ID:            "doc2",
				DefinitionKey: "medical_exam",
				UploadedAt:    notifierNow.AddDate(0, 0, -178), // expires in 2 days: error
			},
		}

		msgs := Generate(docs, notifierDefs(), []string{"birth_certificate"}, nil, &prefs, notifierNow)
		require.Len(t, msgs, 3)
		assert.Equal(t, types.SeverityError, msgs[0].Severity)
		assert.Equal(t, "expiring_doc2", msgs[0].ID)
		for i := 1; i < len(msgs); i++ {
			assert.GreaterOrEqual(t, severityRank[msgs[i].Severity], severityRank[msgs[i-1].Severity])
		}
	})

	t.Run("identical inputs yield identical id sets", func(t *testing.T) {
		docs := []*types.CaseDocument{expiringPassport(5), expiringPassport(45)}
		docs[1].ID = "doc9"

		first := Generate(docs, notifierDefs(), []string{"birth_certificate"}, nil, &prefs, notifierNow)
		second := Generate(docs, notifierDefs(), []string{"birth_certificate"}, nil, &prefs, notifierNow)
		assert.Equal(t, msgIDs(first), msgIDs(second))
	})

	t.Run("nil throttle and preferences use defaults", func(t *testing.T) {
		docs := []*types.CaseDocument{expiringPassport(5)}

		msgs := Generate(docs, notifierDefs(), nil, nil, nil, notifierNow)
		assert.Len(t, msgs, 1)
	})
}
