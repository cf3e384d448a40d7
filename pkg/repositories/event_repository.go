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

var eventColumns = []string{"id", "friend_id", "title", "date", "event_type", "recurrence", "reminder_days_before", "created_at"}

// EventRepository handles event persistence. Only the anchor date is ever
// stored; occurrence dates are derived by the agenda engine on demand.
type EventRepository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.DB, logger ectologger.Logger) *EventRepository {
	return &EventRepository{
		db:     db,
		logger: logger,
	}
}

// ListForFriend returns a friend's events ordered by anchor date.
func (r *EventRepository) ListForFriend(ctx context.Context, friendID int64) ([]models.Event, error) {
	ctx, span := tracing.StartSpan(ctx, "EventRepository.ListForFriend")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(eventColumns...)
	sb.From("events")
	sb.Where(sb.Equal("friend_id", friendID))
	sb.OrderBy("date ASC", "id ASC")

	query, args := sb.Build()
	events := []models.Event{}
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"friend_id": friendID}).Error("Failed to list events")
		return nil, Internal("failed to list events")
	}

	return events, nil
}

// ListAll returns every event across all friends, the input snapshot for
// the agenda selector.
func (r *EventRepository) ListAll(ctx context.Context) ([]models.Event, error) {
	ctx, span := tracing.StartSpan(ctx, "EventRepository.ListAll")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(eventColumns...)
	sb.From("events")
	sb.OrderBy("id ASC")

	query, args := sb.Build()
	events := []models.Event{}
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list all events")
		return nil, Internal("failed to list events")
	}

	return events, nil
}

// Get retrieves an event by ID
func (r *EventRepository) Get(ctx context.Context, id int64) (*models.Event, error) {
	ctx, span := tracing.StartSpan(ctx, "EventRepository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(eventColumns...)
	sb.From("events")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFound("event %d not found", id)
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get event")
		return nil, Internal("failed to get event")
	}

	return &event, nil
}

// Create creates a new event for a friend. Defaults: custom type, no
// recurrence, seven-day reminder lead.
func (r *EventRepository) Create(ctx context.Context, friendID int64, req models.CreateEventRequest) (*models.Event, error) {
	ctx, span := tracing.StartSpan(ctx, "EventRepository.Create")
	defer span.End()

	eventType := req.EventType
	if eventType == "" {
		eventType = models.EventTypeCustom
	}
	recurrence := req.Recurrence
	if recurrence == "" {
		recurrence = models.RecurrenceNone
	}
	reminderDays := models.DefaultReminderDays
	if req.ReminderDaysBefore != nil {
		reminderDays = *req.ReminderDaysBefore
	}

	event := &models.Event{
		FriendID:           friendID,
		Title:              req.Title,
		Date:               req.Date,
		EventType:          eventType,
		Recurrence:         recurrence,
		ReminderDaysBefore: reminderDays,
		CreatedAt:          time.Now().UTC(),
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("events")
	sb.Cols("friend_id", "title", "date", "event_type", "recurrence", "reminder_days_before", "created_at")
	sb.Values(event.FriendID, event.Title, event.Date, event.EventType, event.Recurrence, event.ReminderDaysBefore, event.CreatedAt)
	sb.Returning("id")

	query, args := sb.Build()
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&event.ID); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"friend_id": friendID, "title": req.Title}).Error("Failed to create event")
		return nil, Internal("failed to create event")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": event.ID, "friend_id": friendID}).Info("Created event")
	return event, nil
}

// Update applies a partial update to an event
func (r *EventRepository) Update(ctx context.Context, id int64, req models.UpdateEventRequest) (*models.Event, error) {
	ctx, span := tracing.StartSpan(ctx, "EventRepository.Update")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, Internal("failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	event, err := r.getForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.EventType != nil {
		event.EventType = *req.EventType
	}
	if req.Recurrence != nil {
		event.Recurrence = *req.Recurrence
	}
	if req.ReminderDaysBefore != nil {
		event.ReminderDaysBefore = *req.ReminderDaysBefore
	}

	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("events")
	ub.Set(
		ub.Assign("title", event.Title),
		ub.Assign("date", event.Date),
		ub.Assign("event_type", event.EventType),
		ub.Assign("recurrence", event.Recurrence),
		ub.Assign("reminder_days_before", event.ReminderDaysBefore),
	)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to update event")
		return nil, Internal("failed to update event")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, Internal("failed to commit")
	}

	return event, nil
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "EventRepository.Delete")
	defer span.End()

	db := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	db.DeleteFrom("events")
	db.Where(db.Equal("id", id))

	query, args := db.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to delete event")
		return Internal("failed to delete event")
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return NotFound("event %d not found", id)
	}

	return nil
}

func (r *EventRepository) getForUpdate(ctx context.Context, tx database.Tx, id int64) (*models.Event, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(eventColumns...)
	sb.From("events")
	sb.Where(sb.Equal("id", id))
	sb.SQL("FOR UPDATE")

	query, args := sb.Build()
	var event models.Event
	if err := tx.GetContext(ctx, &event, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFound("event %d not found", id)
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get event for update")
		return nil, Internal("failed to get event")
	}
	return &event, nil
}
