package models

// ChatRequest is a message to the assistant, optionally scoped to a friend
// so replies can be personalized.
type ChatRequest struct {
	Message  string `json:"message" validate:"required"`
	FriendID *int64 `json:"friend_id,omitempty"`
}

// ChatResponse is the assistant's reply
type ChatResponse struct {
	Reply       string   `json:"reply"`
	Suggestions []string `json:"suggestions"`
}
