package models

import (
	"fmt"
	"time"
)

// ActionType classifies a logged social action. Sent/received pairs track
// direction; hangout is mutual.
type ActionType string

const (
	ActionSentWish        ActionType = "sent_wish"
	ActionReceivedWish    ActionType = "received_wish"
	ActionSentGift        ActionType = "sent_gift"
	ActionReceivedGift    ActionType = "received_gift"
	ActionSentMessage     ActionType = "sent_message"
	ActionReceivedMessage ActionType = "received_message"
	ActionHangout         ActionType = "hangout"
)

// AllActionTypes lists every action kind in a stable order. Summaries are
// zero-filled against this list so consumers never need a membership check.
var AllActionTypes = []ActionType{
	ActionSentWish,
	ActionReceivedWish,
	ActionSentGift,
	ActionReceivedGift,
	ActionSentMessage,
	ActionReceivedMessage,
	ActionHangout,
}

// ParseActionType validates a raw action value.
func ParseActionType(value string) (ActionType, error) {
	for _, a := range AllActionTypes {
		if ActionType(value) == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action type %q", value)
}

// ReciprocityLog records a single social action with a friend. Logs are
// append-only from the engine's point of view.
type ReciprocityLog struct {
	ID        int64      `json:"id" db:"id"`
	FriendID  int64      `json:"friend_id" db:"friend_id"`
	Action    ActionType `json:"action" db:"action"`
	Date      Date       `json:"date" db:"date"`
	Notes     *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// CreateReciprocityLogRequest is the request to log an action
type CreateReciprocityLogRequest struct {
	Action ActionType `json:"action" validate:"required,oneof=sent_wish received_wish sent_gift received_gift sent_message received_message hangout"`
	Date   Date       `json:"date" validate:"required"`
	Notes  *string    `json:"notes,omitempty"`
}
