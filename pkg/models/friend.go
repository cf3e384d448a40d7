package models

import "time"

// Friend is a tracked contact. Friends own events, notes and reciprocity
// logs; deleting a friend cascades to all of them.
type Friend struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Birthday  *Date     `json:"birthday,omitempty" db:"birthday"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Email     *string   `json:"email,omitempty" db:"email"`
	PhotoURL  *string   `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateFriendRequest is the request to create a friend
type CreateFriendRequest struct {
	Name     string  `json:"name" validate:"required"`
	Birthday *Date   `json:"birthday,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// UpdateFriendRequest is the request to update a friend. Nil fields are
// left unchanged.
type UpdateFriendRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Birthday *Date   `json:"birthday,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}
