package models

import (
	"fmt"
	"time"
)

// EventType classifies what an event commemorates
type EventType string

const (
	EventTypeBirthday    EventType = "birthday"
	EventTypeAnniversary EventType = "anniversary"
	EventTypeCustom      EventType = "custom"
)

// ParseEventType validates a raw event type value. Unknown values are an
// error, never silently coerced.
func ParseEventType(value string) (EventType, error) {
	switch EventType(value) {
	case EventTypeBirthday, EventTypeAnniversary, EventTypeCustom:
		return EventType(value), nil
	default:
		return "", fmt.Errorf("unknown event type %q", value)
	}
}

// Recurrence defines how an event repeats
type Recurrence string

const (
	// RecurrenceNone marks a one-time event. Its anchor date is never
	// rolled forward; once past, the event stays past.
	RecurrenceNone Recurrence = "none"
	// RecurrenceYearly repeats on the anchor's month/day every year.
	RecurrenceYearly Recurrence = "yearly"
)

// ParseRecurrence validates a raw recurrence value.
func ParseRecurrence(value string) (Recurrence, error) {
	switch Recurrence(value) {
	case RecurrenceNone, RecurrenceYearly:
		return Recurrence(value), nil
	default:
		return "", fmt.Errorf("unknown recurrence %q", value)
	}
}

// DefaultReminderDays is applied when a create request omits the reminder
// lead time.
const DefaultReminderDays = 7

// Event is a dated occasion attached to a friend. Date is the anchor date
// the event was originally scheduled for; the next occurrence of a
// recurring event is always derived from it, never written back.
type Event struct {
	ID                 int64      `json:"id" db:"id"`
	FriendID           int64      `json:"friend_id" db:"friend_id"`
	Title              string     `json:"title" db:"title"`
	Date               Date       `json:"date" db:"date"`
	EventType          EventType  `json:"event_type" db:"event_type"`
	Recurrence         Recurrence `json:"recurrence" db:"recurrence"`
	ReminderDaysBefore int        `json:"reminder_days_before" db:"reminder_days_before"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// CreateEventRequest is the request to create an event
type CreateEventRequest struct {
	Title              string     `json:"title" validate:"required"`
	Date               Date       `json:"date" validate:"required"`
	EventType          EventType  `json:"event_type" validate:"omitempty,oneof=birthday anniversary custom"`
	Recurrence         Recurrence `json:"recurrence" validate:"omitempty,oneof=none yearly"`
	ReminderDaysBefore *int       `json:"reminder_days_before,omitempty" validate:"omitempty,gte=0"`
}

// UpdateEventRequest is the request to update an event. Nil fields are
// left unchanged.
type UpdateEventRequest struct {
	Title              *string     `json:"title,omitempty" validate:"omitempty,min=1"`
	Date               *Date       `json:"date,omitempty"`
	EventType          *EventType  `json:"event_type,omitempty" validate:"omitempty,oneof=birthday anniversary custom"`
	Recurrence         *Recurrence `json:"recurrence,omitempty" validate:"omitempty,oneof=none yearly"`
	ReminderDaysBefore *int        `json:"reminder_days_before,omitempty" validate:"omitempty,gte=0"`
}
