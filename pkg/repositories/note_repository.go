package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/amity-app/amity/pkg/database"
	"github.com/amity-app/amity/pkg/models"
	"github.com/amity-app/amity/pkg/tracing"
)

var noteColumns = []string{"id", "friend_id", "category", "content", "created_at", "updated_at"}

// NoteRepository handles note persistence
type NoteRepository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db database.DB, logger ectologger.Logger) *NoteRepository {
	return &NoteRepository{
		db:     db,
		logger: logger,
	}
}

// ListForFriend returns a friend's notes, newest first, optionally
// filtered by category.
func (r *NoteRepository) ListForFriend(ctx context.Context, friendID int64, category string) ([]models.Note, error) {
	ctx, span := tracing.StartSpan(ctx, "NoteRepository.ListForFriend")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(noteColumns...)
	sb.From("notes")
	sb.Where(sb.Equal("friend_id", friendID))
	if category != "" {
		sb.Where(sb.Equal("category", category))
	}
	sb.OrderBy("created_at DESC", "id DESC")

	query, args := sb.Build()
	notes := []models.Note{}
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"friend_id": friendID}).Error("Failed to list notes")
		return nil, Internal("failed to list notes")
	}

	return notes, nil
}

// Get retrieves a note by ID
func (r *NoteRepository) Get(ctx context.Context, id int64) (*models.Note, error) {
	ctx, span := tracing.StartSpan(ctx, "NoteRepository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(noteColumns...)
	sb.From("notes")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var note models.Note
	if err := r.db.GetContext(ctx, &note, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFound("note %d not found", id)
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get note")
		return nil, Internal("failed to get note")
	}

	return &note, nil
}

// Create creates a new note for a friend
func (r *NoteRepository) Create(ctx context.Context, friendID int64, req models.CreateNoteRequest) (*models.Note, error) {
	ctx, span := tracing.StartSpan(ctx, "NoteRepository.Create")
	defer span.End()

	category := req.Category
	if category == "" {
		category = models.NoteCategoryGeneral
	}

	now := time.Now().UTC()
	note := &models.Note{
		FriendID:  friendID,
		Category:  category,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("notes")
	sb.Cols("friend_id", "category", "content", "created_at", "updated_at")
	sb.Values(note.FriendID, note.Category, note.Content, note.CreatedAt, note.UpdatedAt)
	sb.Returning("id")

	query, args := sb.Build()
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&note.ID); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"friend_id": friendID}).Error("Failed to create note")
		return nil, Internal("failed to create note")
	}

	return note, nil
}

// Update applies a partial update to a note
func (r *NoteRepository) Update(ctx context.Context, id int64, req models.UpdateNoteRequest) (*models.Note, error) {
	ctx, span := tracing.StartSpan(ctx, "NoteRepository.Update")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, Internal("failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	note, err := r.getForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		note.Category = *req.Category
	}
	if req.Content != nil {
		note.Content = *req.Content
	}

	note.UpdatedAt = time.Now().UTC()

	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("notes")
	ub.Set(
		ub.Assign("category", note.Category),
		ub.Assign("content", note.Content),
		ub.Assign("updated_at", note.UpdatedAt),
	)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to update note")
		return nil, Internal("failed to update note")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, Internal("failed to commit")
	}

	return note, nil
}

// Delete removes a note
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "NoteRepository.Delete")
	defer span.End()

	db := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	db.DeleteFrom("notes")
	db.Where(db.Equal("id", id))

	query, args := db.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to delete note")
		return Internal("failed to delete note")
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return NotFound("note %d not found", id)
	}

	return nil
}

func (r *NoteRepository) getForUpdate(ctx context.Context, tx database.Tx, id int64) (*models.Note, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(noteColumns...)
	sb.From("notes")
	sb.Where(sb.Equal("id", id))
	sb.SQL("FOR UPDATE")

	query, args := sb.Build()
	var note models.Note
	if err := tx.GetContext(ctx, &note, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFound("note %d not found", id)
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get note for update")
		return nil, Internal("failed to get note")
	}
	return &note, nil
}
