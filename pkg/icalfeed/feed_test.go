package icalfeed_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amity-app/amity/pkg/agenda"
	"github.com/amity-app/amity/pkg/icalfeed"
	"github.com/amity-app/amity/pkg/models"
)

func TestEncode(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should emit a valid stub for an empty window", func(t *testing.T) {
		data, err := icalfeed.Encode(nil, now)
		require.NoError(t, err)

		feed := string(data)
		assert.True(t, strings.HasPrefix(feed, "BEGIN:VCALENDAR"))
		assert.Contains(t, feed, "END:VCALENDAR")
		assert.NotContains(t, feed, "BEGIN:VEVENT")
	})

	t.Run("should emit one VEVENT per occurrence with a stable UID", func(t *testing.T) {
		occurrences := []agenda.Occurrence{
			{
				Event: models.Event{
					ID:                 42,
					FriendID:           7,
					Title:              "Birthday",
					Recurrence:         models.RecurrenceYearly,
					ReminderDaysBefore: 7,
				},
				Friend:    models.Friend{ID: 7, Name: "Ada"},
				Date:      models.NewDate(2026, 3, 10),
				DaysUntil: 9,
			},
		}

		data, err := icalfeed.Encode(occurrences, now)
		require.NoError(t, err)

		feed := string(data)
		assert.Contains(t, feed, "BEGIN:VEVENT")
		assert.Contains(t, feed, "UID:42-2026@amity.app")
		assert.Contains(t, feed, "SUMMARY:Birthday (Ada)")
		assert.Contains(t, feed, "DTSTART;VALUE=DATE:20260310")
	})

	t.Run("should attach a display alarm from the reminder lead", func(t *testing.T) {
		occurrences := []agenda.Occurrence{
			{
				Event: models.Event{
					ID:                 1,
					FriendID:           2,
					Title:              "Anniversary",
					ReminderDaysBefore: 3,
				},
				Friend: models.Friend{ID: 2, Name: "Grace"},
				Date:   models.NewDate(2026, 3, 5),
			},
		}

		data, err := icalfeed.Encode(occurrences, now)
		require.NoError(t, err)

		feed := string(data)
		assert.Contains(t, feed, "BEGIN:VALARM")
		assert.Contains(t, feed, "TRIGGER:-P3D")
		assert.Contains(t, feed, "ACTION:DISPLAY")
	})

	t.Run("should omit the alarm when the reminder lead is zero", func(t *testing.T) {
		occurrences := []agenda.Occurrence{
			{
				Event:  models.Event{ID: 1, FriendID: 2, Title: "Coffee"},
				Friend: models.Friend{ID: 2, Name: "Grace"},
				Date:   models.NewDate(2026, 3, 5),
			},
		}

		data, err := icalfeed.Encode(occurrences, now)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "BEGIN:VALARM")
	})
}
