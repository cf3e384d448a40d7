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

var reciprocityColumns = []string{"id", "friend_id", "action", "date", "notes", "created_at"}

// ReciprocityRepository handles reciprocity log persistence
type ReciprocityRepository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewReciprocityRepository creates a new reciprocity repository
func NewReciprocityRepository(db database.DB, logger ectologger.Logger) *ReciprocityRepository {
	return &ReciprocityRepository{
		db:     db,
		logger: logger,
	}
}

// ListForFriend returns a friend's reciprocity logs, newest action first.
func (r *ReciprocityRepository) ListForFriend(ctx context.Context, friendID int64) ([]models.ReciprocityLog, error) {
	ctx, span := tracing.StartSpan(ctx, "ReciprocityRepository.ListForFriend")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(reciprocityColumns...)
	sb.From("reciprocity_logs")
	sb.Where(sb.Equal("friend_id", friendID))
	sb.OrderBy("date DESC", "id DESC")

	query, args := sb.Build()
	logs := []models.ReciprocityLog{}
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"friend_id": friendID}).Error("Failed to list reciprocity logs")
		return nil, Internal("failed to list reciprocity logs")
	}

	return logs, nil
}

// ListAll returns every reciprocity log, the input snapshot for the
// balance summarizer.
func (r *ReciprocityRepository) ListAll(ctx context.Context) ([]models.ReciprocityLog, error) {
	ctx, span := tracing.StartSpan(ctx, "ReciprocityRepository.ListAll")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(reciprocityColumns...)
	sb.From("reciprocity_logs")
	sb.OrderBy("id ASC")

	query, args := sb.Build()
	logs := []models.ReciprocityLog{}
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list all reciprocity logs")
		return nil, Internal("failed to list reciprocity logs")
	}

	return logs, nil
}

// Get retrieves a reciprocity log by ID
func (r *ReciprocityRepository) Get(ctx context.Context, id int64) (*models.ReciprocityLog, error) {
	ctx, span := tracing.StartSpan(ctx, "ReciprocityRepository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(reciprocityColumns...)
	sb.From("reciprocity_logs")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var log models.ReciprocityLog
	if err := r.db.GetContext(ctx, &log, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFound("reciprocity log %d not found", id)
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get reciprocity log")
		return nil, Internal("failed to get reciprocity log")
	}

	return &log, nil
}

// Create records a reciprocity action for a friend
func (r *ReciprocityRepository) Create(ctx context.Context, friendID int64, req models.CreateReciprocityLogRequest) (*models.ReciprocityLog, error) {
	ctx, span := tracing.StartSpan(ctx, "ReciprocityRepository.Create")
	defer span.End()

	log := &models.ReciprocityLog{
		FriendID:  friendID,
		Action:    req.Action,
		Date:      req.Date,
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("reciprocity_logs")
	sb.Cols("friend_id", "action", "date", "notes", "created_at")
	sb.Values(log.FriendID, log.Action, log.Date, log.Notes, log.CreatedAt)
	sb.Returning("id")

	query, args := sb.Build()
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&log.ID); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"friend_id": friendID, "action": req.Action}).Error("Failed to create reciprocity log")
		return nil, Internal("failed to create reciprocity log")
	}

	return log, nil
}

// Delete removes a reciprocity log
func (r *ReciprocityRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "ReciprocityRepository.Delete")
	defer span.End()

	db := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	db.DeleteFrom("reciprocity_logs")
	db.Where(db.Equal("id", id))

	query, args := db.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to delete reciprocity log")
		return Internal("failed to delete reciprocity log")
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return NotFound("reciprocity log %d not found", id)
	}

	return nil
}
