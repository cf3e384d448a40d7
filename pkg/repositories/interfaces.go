package repositories

import (
	"context"

	"github.com/amity-app/amity/pkg/models"
)

// FriendRepo defines the interface for friend repository operations
type FriendRepo interface {
	List(ctx context.Context, search string) ([]models.Friend, error)
	Get(ctx context.Context, id int64) (*models.Friend, error)
	MapByID(ctx context.Context) (map[int64]models.Friend, error)
	Create(ctx context.Context, req models.CreateFriendRequest) (*models.Friend, error)
	Update(ctx context.Context, id int64, req models.UpdateFriendRequest) (*models.Friend, error)
	Delete(ctx context.Context, id int64) error
}

// EventRepo defines the interface for event repository operations
type EventRepo interface {
	ListForFriend(ctx context.Context, friendID int64) ([]models.Event, error)
	ListAll(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, friendID int64, req models.CreateEventRequest) (*models.Event, error)
	Update(ctx context.Context, id int64, req models.UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
}

// NoteRepo defines the interface for note repository operations
type NoteRepo interface {
	ListForFriend(ctx context.Context, friendID int64, category string) ([]models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	Create(ctx context.Context, friendID int64, req models.CreateNoteRequest) (*models.Note, error)
	Update(ctx context.Context, id int64, req models.UpdateNoteRequest) (*models.Note, error)
	Delete(ctx context.Context, id int64) error
}

// ReciprocityRepo defines the interface for reciprocity log repository operations
type ReciprocityRepo interface {
	ListForFriend(ctx context.Context, friendID int64) ([]models.ReciprocityLog, error)
	ListAll(ctx context.Context) ([]models.ReciprocityLog, error)
	Get(ctx context.Context, id int64) (*models.ReciprocityLog, error)
	Create(ctx context.Context, friendID int64, req models.CreateReciprocityLogRequest) (*models.ReciprocityLog, error)
	Delete(ctx context.Context, id int64) error
}
