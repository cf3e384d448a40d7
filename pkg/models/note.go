package models

import "time"

// Well-known note categories. The column is free text, so callers may
// invent their own; these are the ones the UI and assistant understand.
const (
	NoteCategoryFavorites = "favorites"
	NoteCategoryGiftIdeas = "gift_ideas"
	NoteCategoryGeneral   = "general"
)

// Note is a free-form note attached to a friend.
type Note struct {
	ID        int64     `json:"id" db:"id"`
	FriendID  int64     `json:"friend_id" db:"friend_id"`
	Category  string    `json:"category" db:"category"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateNoteRequest is the request to create a note
type CreateNoteRequest struct {
	Category string `json:"category"`
	Content  string `json:"content" validate:"required"`
}

// UpdateNoteRequest is the request to update a note. Nil fields are left
// unchanged.
type UpdateNoteRequest struct {
	Category *string `json:"category,omitempty"`
	Content  *string `json:"content,omitempty" validate:"omitempty,min=1"`
}
