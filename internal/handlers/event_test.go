package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amity-app/amity/internal/handlers"
	"github.com/amity-app/amity/pkg/models"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 9, 0, 0, 0, time.UTC)
	}
}

func TestEventHandler_Upcoming(t *testing.T) {
	friends := newStubFriendRepo(
		models.Friend{ID: 1, Name: "Ada"},
		models.Friend{ID: 2, Name: "bruno"},
	)

	t.Run("should return the agenda ordered and classified", func(t *testing.T) {
		events := newStubEventRepo(
			models.Event{ID: 10, FriendID: 1, Title: "Birthday", Date: models.NewDate(1990, 3, 1), EventType: models.EventTypeBirthday, Recurrence: models.RecurrenceYearly},
			models.Event{ID: 11, FriendID: 2, Title: "Coffee", Date: models.NewDate(2026, 3, 5), Recurrence: models.RecurrenceNone},
			models.Event{ID: 12, FriendID: 1, Title: "Anniversary", Date: models.NewDate(2020, 3, 5), Recurrence: models.RecurrenceYearly},
		)
		h := handlers.NewEventHandler(events, friends).WithClock(fixedClock(2026, 3, 1))
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodGet, "/api/events/upcoming", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[handlers.UpcomingResponse](t, rec)
		assert.Equal(t, "2026-03-01", resp.Today.String())
		assert.Equal(t, 30, resp.WindowDays)
		require.Len(t, resp.Items, 3)

		// Date asc, then friend name case-insensitive
		assert.Equal(t, int64(10), resp.Items[0].Event.ID)
		assert.Equal(t, int64(12), resp.Items[1].Event.ID)
		assert.Equal(t, int64(11), resp.Items[2].Event.ID)

		assert.Equal(t, "today", string(resp.Items[0].Urgency))
		assert.Equal(t, "this_week", string(resp.Items[1].Urgency))
		assert.Equal(t, "this_week", string(resp.Items[2].Urgency))
	})

	t.Run("should respect the days parameter", func(t *testing.T) {
		events := newStubEventRepo(
			models.Event{ID: 10, FriendID: 1, Title: "Near", Date: models.NewDate(2026, 3, 3), Recurrence: models.RecurrenceNone},
			models.Event{ID: 11, FriendID: 1, Title: "Far", Date: models.NewDate(2026, 3, 20), Recurrence: models.RecurrenceNone},
		)
		h := handlers.NewEventHandler(events, friends).WithClock(fixedClock(2026, 3, 1))
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodGet, "/api/events/upcoming?days=7", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[handlers.UpcomingResponse](t, rec)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Near", resp.Items[0].Event.Title)
	})

	t.Run("should reject an out-of-range days parameter", func(t *testing.T) {
		h := handlers.NewEventHandler(newStubEventRepo(), friends).WithClock(fixedClock(2026, 3, 1))
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodGet, "/api/events/upcoming?days=400", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = makeRequest(t, e, http.MethodGet, "/api/events/upcoming?days=abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should surface unresolved events as diagnostics", func(t *testing.T) {
		events := newStubEventRepo(
			models.Event{ID: 10, FriendID: 99, Title: "Orphan", Date: models.NewDate(2026, 3, 3), Recurrence: models.RecurrenceNone},
		)
		h := handlers.NewEventHandler(events, friends).WithClock(fixedClock(2026, 3, 1))
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodGet, "/api/events/upcoming", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[handlers.UpcomingResponse](t, rec)
		assert.Empty(t, resp.Items)
		require.Len(t, resp.Diagnostics, 1)
		assert.Equal(t, int64(10), resp.Diagnostics[0].EventID)
	})
}

func TestEventHandler_UpcomingFeed(t *testing.T) {
	friends := newStubFriendRepo(models.Friend{ID: 1, Name: "Ada"})
	events := newStubEventRepo(
		models.Event{ID: 10, FriendID: 1, Title: "Birthday", Date: models.NewDate(1990, 3, 5), Recurrence: models.RecurrenceYearly, ReminderDaysBefore: 7},
	)
	h := handlers.NewEventHandler(events, friends).WithClock(fixedClock(2026, 3, 1))
	e := newTestServer(h)

	rec := makeRequest(t, e, http.MethodGet, "/api/events/upcoming/feed.ics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")

	body := rec.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "SUMMARY:Birthday (Ada)")
	assert.Contains(t, body, "UID:10-2026@amity.app")
}

func TestEventHandler_CRUD(t *testing.T) {
	friends := newStubFriendRepo(models.Friend{ID: 1, Name: "Ada"})

	t.Run("should create an event with defaults applied", func(t *testing.T) {
		events := newStubEventRepo()
		h := handlers.NewEventHandler(events, friends)
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodPost, "/api/friends/1/events", map[string]any{
			"title": "Housewarming",
			"date":  "2026-09-12",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		event := decodeBody[models.Event](t, rec)
		assert.Equal(t, models.EventTypeCustom, event.EventType)
		assert.Equal(t, models.RecurrenceNone, event.Recurrence)
		assert.Equal(t, models.DefaultReminderDays, event.ReminderDaysBefore)
	})

	t.Run("should 404 when creating an event for an unknown friend", func(t *testing.T) {
		h := handlers.NewEventHandler(newStubEventRepo(), friends)
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodPost, "/api/friends/99/events", map[string]any{
			"title": "Nope",
			"date":  "2026-09-12",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should reject an unknown recurrence value", func(t *testing.T) {
		h := handlers.NewEventHandler(newStubEventRepo(), friends)
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodPost, "/api/friends/1/events", map[string]any{
			"title":      "Legacy",
			"date":       "2026-09-12",
			"recurrence": "once",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should delete an event", func(t *testing.T) {
		events := newStubEventRepo(models.Event{ID: 10, FriendID: 1, Title: "Coffee", Date: models.NewDate(2026, 3, 5)})
		h := handlers.NewEventHandler(events, friends)
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodDelete, "/api/events/10", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = makeRequest(t, e, http.MethodDelete, "/api/events/10", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
