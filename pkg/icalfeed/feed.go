// Package icalfeed renders the upcoming agenda as an iCalendar feed so
// calendar clients can subscribe to it. The feed is recomputed from the
// occurrence list on every request; nothing is cached or persisted.
package icalfeed

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/amity-app/amity/pkg/agenda"
)

const (
	prodID    = "-//Amity//Agenda//EN"
	calName   = "Amity Upcoming Events"
	uidDomain = "amity.app"
)

// Encode renders the occurrences as a VCALENDAR. UIDs are derived from the
// event ID and occurrence year, so re-fetching the feed updates events in
// place instead of duplicating them.
func Encode(occurrences []agenda.Occurrence, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText("X-WR-CALNAME", calName)
	cal.Props.SetText("CALSCALE", "GREGORIAN")

	dtStampProp := ical.NewProp(ical.PropDateTimeStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, occ := range occurrences {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%d-%d@%s", occ.Event.ID, occ.Date.Year(), uidDomain))
		event.Props.SetText(ical.PropSummary, fmt.Sprintf("%s (%s)", occ.Event.Title, occ.Friend.Name))

		dtStartProp := ical.NewProp(ical.PropDateTimeStart)
		dtStartProp.SetDate(occ.Date.Time)
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		if occ.Event.ReminderDaysBefore > 0 {
			addAlarm(event, occ.Event.ReminderDaysBefore, occ.Event.Title)
		}

		cal.Children = append(cal.Children, event.Component)
	}

	// A calendar with no components is invalid, so emit a bare stub when
	// the window is empty.
	if len(cal.Children) == 0 {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:%s\r\nEND:VCALENDAR\r\n", prodID)
		return buf.Bytes(), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}

	return buf.Bytes(), nil
}

// addAlarm appends a DISPLAY alarm firing daysBefore days ahead of the event.
func addAlarm(event *ical.Event, daysBefore int, description string) {
	alarm := ical.NewComponent(ical.CompAlarm)
	alarm.Props.SetText(ical.PropAction, "DISPLAY")
	alarm.Props.SetText(ical.PropDescription, description)

	// Set the trigger manually to avoid a VALUE=TEXT param.
	triggerProp := ical.NewProp(ical.PropTrigger)
	triggerProp.Value = fmt.Sprintf("-P%dD", daysBefore)
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
