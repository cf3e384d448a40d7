package agenda

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amity-app/amity/pkg/calendar"
	"github.com/amity-app/amity/pkg/models"
)

// Occurrence is a single upcoming instance of an event: the concrete date
// it next falls on and how far away that is. Occurrences are derived fresh
// from the anchor date on every call and are never persisted.
type Occurrence struct {
	Event     models.Event  `json:"event"`
	Friend    models.Friend `json:"friend"`
	Date      models.Date   `json:"date"`
	DaysUntil int           `json:"days_until"`
}

// Diagnostic reports an event that had to be excluded from the agenda:
// either its friend reference does not resolve or its recurrence rule is
// unrecognized. Exclusions are best-effort partial results, not fatal
// errors, but they are never dropped without trace.
type Diagnostic struct {
	EventID  int64  `json:"event_id"`
	FriendID int64  `json:"friend_id"`
	Reason   string `json:"reason"`
}

// SelectUpcoming produces the ordered agenda: every event whose next
// occurrence falls within windowDays of today, inclusive on both ends.
//
// One-time events whose anchor has passed are permanently excluded; they
// never resurface in any window. The result is sorted by occurrence date,
// then by owning friend name (case-insensitive), then by event ID, so
// identical inputs always yield identically ordered output.
func SelectUpcoming(events []models.Event, friendsByID map[int64]models.Friend, today models.Date, windowDays int) ([]Occurrence, []Diagnostic) {
	var occurrences []Occurrence
	var diagnostics []Diagnostic

	for _, event := range events {
		date, err := NextOccurrence(event.Date, event.Recurrence, today)
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{
				EventID:  event.ID,
				FriendID: event.FriendID,
				Reason:   err.Error(),
			})
			continue
		}

		daysUntil := calendar.DayDifference(today, date)
		if daysUntil < 0 || daysUntil > windowDays {
			continue
		}

		friend, ok := friendsByID[event.FriendID]
		if !ok {
			diagnostics = append(diagnostics, Diagnostic{
				EventID:  event.ID,
				FriendID: event.FriendID,
				Reason:   fmt.Sprintf("friend %d not found", event.FriendID),
			})
			continue
		}

		occurrences = append(occurrences, Occurrence{
			Event:     event,
			Friend:    friend,
			Date:      date,
			DaysUntil: daysUntil,
		})
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		a, b := occurrences[i], occurrences[j]
		if !a.Date.Equal(b.Date.Time) {
			return a.Date.Before(b.Date.Time)
		}
		an, bn := strings.ToLower(a.Friend.Name), strings.ToLower(b.Friend.Name)
		if an != bn {
			return an < bn
		}
		return a.Event.ID < b.Event.ID
	})

	return occurrences, diagnostics
}
