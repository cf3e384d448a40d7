// Package agenda computes upcoming occurrences of tracked events. It is
// the pure core of the reminder system: every function takes an explicit
// "today" and performs no I/O, so the same inputs always produce the same
// agenda.
package agenda

import (
	"fmt"

	"github.com/amity-app/amity/pkg/calendar"
	"github.com/amity-app/amity/pkg/models"
)

// NextOccurrence resolves the next qualifying date of an event relative to
// today.
//
// RecurrenceNone returns the anchor unchanged, even when it is in the
// past; one-time events are a single point in time and are never rolled
// forward. RecurrenceYearly returns the anchor's month/day in today's
// year, or in the next year when that date has already passed, so the
// result is always >= today and at most ~366 days out.
//
// An unrecognized recurrence is an error; the caller decides whether to
// drop or surface the event, but it is never silently defaulted.
func NextOccurrence(anchor models.Date, recurrence models.Recurrence, today models.Date) (models.Date, error) {
	switch recurrence {
	case models.RecurrenceNone:
		return anchor, nil
	case models.RecurrenceYearly:
		occurrence := calendar.WithYear(anchor, today.Year())
		if occurrence.Before(today.Time) {
			occurrence = calendar.WithYear(anchor, today.Year()+1)
		}
		return occurrence, nil
	default:
		return models.Date{}, fmt.Errorf("unknown recurrence %q", recurrence)
	}
}
