// Package reminders runs the background reminder sweeper. On every poll it
// recomputes which events are inside their reminder lead time and emits a
// structured notification log per due event. Occurrences are derived fresh
// each cycle; nothing about them is written back.
package reminders

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/amity-app/amity/pkg/agenda"
	"github.com/amity-app/amity/pkg/models"
	"github.com/amity-app/amity/pkg/tracing"
)

var (
	// ErrSweeperStopped is returned when the sweeper is stopped
	ErrSweeperStopped = errors.New("sweeper stopped")

	// ErrSweeperAlreadyRunning is returned when trying to start an already running sweeper
	ErrSweeperAlreadyRunning = errors.New("sweeper already running")
)

const (
	// DefaultPollInterval is the default interval between sweeps
	DefaultPollInterval = 1 * time.Hour

	// maxReminderWindowDays caps the selector window; a lead time longer
	// than a full year would never fire anyway.
	maxReminderWindowDays = 366
)

// Store is the data access the sweeper needs
type Store interface {
	ListAll(ctx context.Context) ([]models.Event, error)
}

// FriendStore resolves friend references for due events
type FriendStore interface {
	MapByID(ctx context.Context) (map[int64]models.Friend, error)
}

// Config holds configuration for the sweeper
type Config struct {
	// PollInterval is how often to sweep for due reminders
	PollInterval time.Duration
}

// Sweeper polls for events inside their reminder lead time
type Sweeper struct {
	events  Store
	friends FriendStore
	config  Config
	logger  ectologger.Logger
	now     func() time.Time

	// Coordination
	stopCh   chan struct{}
	stoppedC chan struct{}
	running  bool
	mu       sync.RWMutex
}

// NewSweeper creates a new reminder sweeper
func NewSweeper(events Store, friends FriendStore, config Config, logger ectologger.Logger) *Sweeper {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}

	return &Sweeper{
		events:   events,
		friends:  friends,
		config:   config,
		logger:   logger,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		stoppedC: make(chan struct{}),
	}
}

// Start starts the sweeper
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrSweeperAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	s.logger.WithContext(ctx).Infof("Starting reminder sweeper: poll_interval=%s", s.config.PollInterval)

	go s.pollLoop(ctx)

	return nil
}

// Stop stops the sweeper gracefully
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.logger.WithContext(ctx).Info("Stopping reminder sweeper...")

	close(s.stopCh)

	select {
	case <-s.stoppedC:
		s.logger.WithContext(ctx).Info("Reminder sweeper stopped gracefully")
	case <-ctx.Done():
		s.logger.WithContext(ctx).Warn("Reminder sweeper shutdown timed out")
		return ctx.Err()
	}

	return nil
}

// IsRunning returns whether the sweeper is running
func (s *Sweeper) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// pollLoop continuously sweeps for due reminders
func (s *Sweeper) pollLoop(ctx context.Context) {
	defer close(s.stoppedC)

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	// Run immediately on start
	s.sweep(ctx)

	for {
		select {
		case <-s.stopCh:
			s.logger.WithContext(ctx).Debug("Reminder sweeper poll loop stopping")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep emits one notification log per due reminder. Due means the next
// occurrence is within that event's own reminder lead time.
func (s *Sweeper) sweep(ctx context.Context) {
	ctx, span := tracing.StartSpan(ctx, "Sweeper.sweep")
	defer span.End()

	today := models.DateOf(s.now())

	due, diagnostics, err := s.DueReminders(ctx, today)
	if err != nil {
		return
	}

	for _, d := range diagnostics {
		s.logger.WithContext(ctx).WithFields(map[string]any{
			"event_id":  d.EventID,
			"friend_id": d.FriendID,
			"reason":    d.Reason,
		}).Warn("Skipped event during reminder sweep")
	}

	for _, occ := range due {
		s.logger.WithContext(ctx).WithFields(map[string]any{
			"event_id":   occ.Event.ID,
			"friend_id":  occ.Friend.ID,
			"friend":     occ.Friend.Name,
			"title":      occ.Event.Title,
			"date":       occ.Date.String(),
			"days_until": occ.DaysUntil,
		}).Info("Reminder due")
	}

	s.logger.WithContext(ctx).Debugf("Reminder sweep complete: due=%d skipped=%d", len(due), len(diagnostics))
}

// DueReminders returns the occurrences whose days-until is within their
// event's reminder lead time as of today.
func (s *Sweeper) DueReminders(ctx context.Context, today models.Date) ([]agenda.Occurrence, []agenda.Diagnostic, error) {
	events, err := s.events.ListAll(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to list events for reminder sweep")
		return nil, nil, err
	}

	friendsByID, err := s.friends.MapByID(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to map friends for reminder sweep")
		return nil, nil, err
	}

	occurrences, diagnostics := agenda.SelectUpcoming(events, friendsByID, today, maxReminderWindowDays)

	var due []agenda.Occurrence
	for _, occ := range occurrences {
		if occ.DaysUntil <= occ.Event.ReminderDaysBefore {
			due = append(due, occ)
		}
	}

	return due, diagnostics, nil
}
