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

var friendColumns = []string{"id", "name", "birthday", "phone", "email", "photo_url", "created_at", "updated_at"}

// FriendRepository handles friend persistence
type FriendRepository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db database.DB, logger ectologger.Logger) *FriendRepository {
	return &FriendRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all friends ordered by name. When search is non-empty the
// list is filtered by a case-insensitive substring match on the name.
func (r *FriendRepository) List(ctx context.Context, search string) ([]models.Friend, error) {
	ctx, span := tracing.StartSpan(ctx, "FriendRepository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(friendColumns...)
	sb.From("friends")
	if search != "" {
		sb.Where(sb.ILike("name", "%"+search+"%"))
	}
	sb.OrderBy("name ASC", "id ASC")

	query, args := sb.Build()
	friends := []models.Friend{}
	if err := r.db.SelectContext(ctx, &friends, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list friends")
		return nil, Internal("failed to list friends")
	}

	return friends, nil
}

// Get retrieves a friend by ID
func (r *FriendRepository) Get(ctx context.Context, id int64) (*models.Friend, error) {
	ctx, span := tracing.StartSpan(ctx, "FriendRepository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(friendColumns...)
	sb.From("friends")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var friend models.Friend
	if err := r.db.GetContext(ctx, &friend, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFound("friend %d not found", id)
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get friend")
		return nil, Internal("failed to get friend")
	}

	return &friend, nil
}

// MapByID loads every friend keyed by ID, the shape the agenda selector
// and reciprocity summarizer take as input.
func (r *FriendRepository) MapByID(ctx context.Context) (map[int64]models.Friend, error) {
	ctx, span := tracing.StartSpan(ctx, "FriendRepository.MapByID")
	defer span.End()

	friends, err := r.List(ctx, "")
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Friend, len(friends))
	for _, friend := range friends {
		byID[friend.ID] = friend
	}
	return byID, nil
}

// Create creates a new friend
func (r *FriendRepository) Create(ctx context.Context, req models.CreateFriendRequest) (*models.Friend, error) {
	ctx, span := tracing.StartSpan(ctx, "FriendRepository.Create")
	defer span.End()

	now := time.Now().UTC()
	friend := &models.Friend{
		Name:      req.Name,
		Birthday:  req.Birthday,
		Phone:     req.Phone,
		Email:     req.Email,
		PhotoURL:  req.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("friends")
	sb.Cols("name", "birthday", "phone", "email", "photo_url", "created_at", "updated_at")
	sb.Values(friend.Name, friend.Birthday, friend.Phone, friend.Email, friend.PhotoURL, friend.CreatedAt, friend.UpdatedAt)
	sb.Returning("id")

	query, args := sb.Build()
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&friend.ID); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"name": req.Name}).Error("Failed to create friend")
		return nil, Internal("failed to create friend")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": friend.ID, "name": friend.Name}).Info("Created friend")
	return friend, nil
}

// Update applies a partial update to a friend. Nil request fields leave
// the stored value unchanged.
func (r *FriendRepository) Update(ctx context.Context, id int64, req models.UpdateFriendRequest) (*models.Friend, error) {
	ctx, span := tracing.StartSpan(ctx, "FriendRepository.Update")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, Internal("failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	friend, err := r.getForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		friend.Name = *req.Name
	}
	if req.Birthday != nil {
		friend.Birthday = req.Birthday
	}
	if req.Phone != nil {
		friend.Phone = req.Phone
	}
	if req.Email != nil {
		friend.Email = req.Email
	}
	if req.PhotoURL != nil {
		friend.PhotoURL = req.PhotoURL
	}
	friend.UpdatedAt = time.Now().UTC()

	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("friends")
	ub.Set(
		ub.Assign("name", friend.Name),
		ub.Assign("birthday", friend.Birthday),
		ub.Assign("phone", friend.Phone),
		ub.Assign("email", friend.Email),
		ub.Assign("photo_url", friend.PhotoURL),
		ub.Assign("updated_at", friend.UpdatedAt),
	)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to update friend")
		return nil, Internal("failed to update friend")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, Internal("failed to commit")
	}

	return friend, nil
}

// Delete removes a friend. Events, notes and reciprocity logs cascade.
func (r *FriendRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "FriendRepository.Delete")
	defer span.End()

	db := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	db.DeleteFrom("friends")
	db.Where(db.Equal("id", id))

	query, args := db.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to delete friend")
		return Internal("failed to delete friend")
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return NotFound("friend %d not found", id)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("Deleted friend")
	return nil
}

func (r *FriendRepository) getForUpdate(ctx context.Context, tx database.Tx, id int64) (*models.Friend, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(friendColumns...)
	sb.From("friends")
	sb.Where(sb.Equal("id", id))
	sb.SQL("FOR UPDATE")

	query, args := sb.Build()
	var friend models.Friend
	if err := tx.GetContext(ctx, &friend, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFound("friend %d not found", id)
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get friend for update")
		return nil, Internal("failed to get friend")
	}
	return &friend, nil
}
