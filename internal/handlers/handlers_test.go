package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/amity-app/amity/pkg/middleware"
	"github.com/amity-app/amity/pkg/models"
	"github.com/amity-app/amity/pkg/repositories"
)

// stubFriendRepo is an in-memory FriendRepo for handler tests
type stubFriendRepo struct {
	friends map[int64]models.Friend
	nextID  int64
}

func newStubFriendRepo(friends ...models.Friend) *stubFriendRepo {
	s := &stubFriendRepo{friends: map[int64]models.Friend{}, nextID: 1}
	for _, f := range friends {
		s.friends[f.ID] = f
		if f.ID >= s.nextID {
			s.nextID = f.ID + 1
		}
	}
	return s
}

func (s *stubFriendRepo) List(ctx context.Context, search string) ([]models.Friend, error) {
	var out []models.Friend
	for _, f := range s.friends {
		out = append(out, f)
	}
	return out, nil
}

func (s *stubFriendRepo) Get(ctx context.Context, id int64) (*models.Friend, error) {
	f, ok := s.friends[id]
	if !ok {
		return nil, repositories.NotFound("friend %d not found", id)
	}
	return &f, nil
}

func (s *stubFriendRepo) MapByID(ctx context.Context) (map[int64]models.Friend, error) {
	return s.friends, nil
}

func (s *stubFriendRepo) Create(ctx context.Context, req models.CreateFriendRequest) (*models.Friend, error) {
	f := models.Friend{ID: s.nextID, Name: req.Name, Birthday: req.Birthday, Phone: req.Phone, Email: req.Email, PhotoURL: req.PhotoURL}
	s.friends[f.ID] = f
	s.nextID++
	return &f, nil
}

func (s *stubFriendRepo) Update(ctx context.Context, id int64, req models.UpdateFriendRequest) (*models.Friend, error) {
	f, ok := s.friends[id]
	if !ok {
		return nil, repositories.NotFound("friend %d not found", id)
	}
	if req.Name != nil {
		f.Name = *req.Name
	}
	s.friends[id] = f
	return &f, nil
}

func (s *stubFriendRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := s.friends[id]; !ok {
		return repositories.NotFound("friend %d not found", id)
	}
	delete(s.friends, id)
	return nil
}

// stubEventRepo is an in-memory EventRepo for handler tests
type stubEventRepo struct {
	events map[int64]models.Event
	nextID int64
}

func newStubEventRepo(events ...models.Event) *stubEventRepo {
	s := &stubEventRepo{events: map[int64]models.Event{}, nextID: 1}
	for _, e := range events {
		s.events[e.ID] = e
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}
	return s
}

func (s *stubEventRepo) ListForFriend(ctx context.Context, friendID int64) ([]models.Event, error) {
	var out []models.Event
	for _, e := range s.events {
		if e.FriendID == friendID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubEventRepo) ListAll(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	for _, e := range s.events {
		out = append(out, e)
	}
	return out, nil
}

func (s *stubEventRepo) Get(ctx context.Context, id int64) (*models.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, repositories.NotFound("event %d not found", id)
	}
	return &e, nil
}

func (s *stubEventRepo) Create(ctx context.Context, friendID int64, req models.CreateEventRequest) (*models.Event, error) {
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
	e := models.Event{ID: s.nextID, FriendID: friendID, Title: req.Title, Date: req.Date, EventType: eventType, Recurrence: recurrence, ReminderDaysBefore: reminderDays}
	s.events[e.ID] = e
	s.nextID++
	return &e, nil
}

func (s *stubEventRepo) Update(ctx context.Context, id int64, req models.UpdateEventRequest) (*models.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, repositories.NotFound("event %d not found", id)
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	s.events[id] = e
	return &e, nil
}

func (s *stubEventRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := s.events[id]; !ok {
		return repositories.NotFound("event %d not found", id)
	}
	delete(s.events, id)
	return nil
}

// stubNoteRepo is an in-memory NoteRepo for handler tests
type stubNoteRepo struct {
	notes  map[int64]models.Note
	nextID int64
}

func newStubNoteRepo(notes ...models.Note) *stubNoteRepo {
	s := &stubNoteRepo{notes: map[int64]models.Note{}, nextID: 1}
	for _, n := range notes {
		s.notes[n.ID] = n
		if n.ID >= s.nextID {
			s.nextID = n.ID + 1
		}
	}
	return s
}

func (s *stubNoteRepo) ListForFriend(ctx context.Context, friendID int64, category string) ([]models.Note, error) {
	var out []models.Note
	for _, n := range s.notes {
		if n.FriendID == friendID && (category == "" || n.Category == category) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNoteRepo) Get(ctx context.Context, id int64) (*models.Note, error) {
	n, ok := s.notes[id]
	if !ok {
		return nil, repositories.NotFound("note %d not found", id)
	}
	return &n, nil
}

func (s *stubNoteRepo) Create(ctx context.Context, friendID int64, req models.CreateNoteRequest) (*models.Note, error) {
	category := req.Category
	if category == "" {
		category = models.NoteCategoryGeneral
	}
	n := models.Note{ID: s.nextID, FriendID: friendID, Category: category, Content: req.Content}
	s.notes[n.ID] = n
	s.nextID++
	return &n, nil
}

func (s *stubNoteRepo) Update(ctx context.Context, id int64, req models.UpdateNoteRequest) (*models.Note, error) {
	n, ok := s.notes[id]
	if !ok {
		return nil, repositories.NotFound("note %d not found", id)
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.Category != nil {
		n.Category = *req.Category
	}
	s.notes[id] = n
	return &n, nil
}

func (s *stubNoteRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := s.notes[id]; !ok {
		return repositories.NotFound("note %d not found", id)
	}
	delete(s.notes, id)
	return nil
}

// stubReciprocityRepo is an in-memory ReciprocityRepo for handler tests
type stubReciprocityRepo struct {
	logs   map[int64]models.ReciprocityLog
	nextID int64
}

func newStubReciprocityRepo(logs ...models.ReciprocityLog) *stubReciprocityRepo {
	s := &stubReciprocityRepo{logs: map[int64]models.ReciprocityLog{}, nextID: 1}
	for _, l := range logs {
		s.logs[l.ID] = l
		if l.ID >= s.nextID {
			s.nextID = l.ID + 1
		}
	}
	return s
}

func (s *stubReciprocityRepo) ListForFriend(ctx context.Context, friendID int64) ([]models.ReciprocityLog, error) {
	var out []models.ReciprocityLog
	for _, l := range s.logs {
		if l.FriendID == friendID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubReciprocityRepo) ListAll(ctx context.Context) ([]models.ReciprocityLog, error) {
	var out []models.ReciprocityLog
	for _, l := range s.logs {
		out = append(out, l)
	}
	return out, nil
}

func (s *stubReciprocityRepo) Get(ctx context.Context, id int64) (*models.ReciprocityLog, error) {
	l, ok := s.logs[id]
	if !ok {
		return nil, repositories.NotFound("reciprocity log %d not found", id)
	}
	return &l, nil
}

func (s *stubReciprocityRepo) Create(ctx context.Context, friendID int64, req models.CreateReciprocityLogRequest) (*models.ReciprocityLog, error) {
	l := models.ReciprocityLog{ID: s.nextID, FriendID: friendID, Action: req.Action, Date: req.Date, Notes: req.Notes}
	s.logs[l.ID] = l
	s.nextID++
	return &l, nil
}

func (s *stubReciprocityRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := s.logs[id]; !ok {
		return repositories.NotFound("reciprocity log %d not found", id)
	}
	delete(s.logs, id)
	return nil
}

// newTestServer builds an echo instance with the error handler installed
// and the given handlers registered under /api.
func newTestServer(register ...interface{ RegisterRoutes(g *echo.Group) }) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.Error(testLogger())
	api := e.Group("/api")
	for _, h := range register {
		h.RegisterRoutes(api)
	}
	return e
}

func makeRequest(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {})
}
