package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amity-app/amity/pkg/agenda"
	"github.com/amity-app/amity/pkg/icalfeed"
	"github.com/amity-app/amity/pkg/models"
	"github.com/amity-app/amity/pkg/repositories"
	"github.com/amity-app/amity/pkg/utils"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 366
)

// EventHandler handles event-related API requests, including the derived
// upcoming agenda. The wall clock is read once per request at this
// boundary; everything below takes the resulting date explicitly.
type EventHandler struct {
	events  repositories.EventRepo
	friends repositories.FriendRepo
	now     func() time.Time
}

// NewEventHandler creates a new event handler
func NewEventHandler(events repositories.EventRepo, friends repositories.FriendRepo) *EventHandler {
	return &EventHandler{
		events:  events,
		friends: friends,
		now:     time.Now,
	}
}

// WithClock overrides the wall clock source. Tests use it to pin "today".
func (h *EventHandler) WithClock(now func() time.Time) *EventHandler {
	h.now = now
	return h
}

// RegisterRoutes registers the event routes
func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/friends/:id/events", h.ListForFriend)
	g.POST("/friends/:id/events", h.Create)
	g.GET("/events/upcoming", h.Upcoming)
	g.GET("/events/upcoming/feed.ics", h.UpcomingFeed)
	g.PUT("/events/:id", h.Update)
	g.DELETE("/events/:id", h.Delete)
}

// ListForFriend handles GET /friends/:id/events
func (h *EventHandler) ListForFriend(c echo.Context) error {
	ctx := c.Request().Context()

	friendID, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	// 404 for an unknown friend rather than an empty list
	if _, err := h.friends.Get(ctx, friendID); err != nil {
		return err
	}

	events, err := h.events.ListForFriend(ctx, friendID)
	if err != nil {
		return err
	}

	return SuccessResponse(c, events)
}

// Create handles POST /friends/:id/events
func (h *EventHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	friendID, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.friends.Get(ctx, friendID); err != nil {
		return err
	}

	req, err := utils.BindRequest[models.CreateEventRequest](c)
	if err != nil {
		return err
	}

	event, err := h.events.Create(ctx, friendID, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, event)
}

// Update handles PUT /events/:id
func (h *EventHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	req, err := utils.BindRequest[models.UpdateEventRequest](c)
	if err != nil {
		return err
	}

	event, err := h.events.Update(ctx, id, req)
	if err != nil {
		return err
	}

	return SuccessResponse(c, event)
}

// Delete handles DELETE /events/:id
func (h *EventHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.events.Delete(ctx, id); err != nil {
		return err
	}

	return NoContentResponse(c)
}

// UpcomingItem is one agenda entry with its urgency tier attached
type UpcomingItem struct {
	agenda.Occurrence
	Urgency agenda.Tier `json:"urgency"`
}

// UpcomingResponse is the response body for the upcoming agenda
type UpcomingResponse struct {
	Today       models.Date         `json:"today"`
	WindowDays  int                 `json:"window_days"`
	Items       []UpcomingItem      `json:"items"`
	Diagnostics []agenda.Diagnostic `json:"diagnostics,omitempty"`
}

// Upcoming handles GET /events/upcoming?days=
func (h *EventHandler) Upcoming(c echo.Context) error {
	windowDays, err := parseWindowDays(c.QueryParam("days"))
	if err != nil {
		return err
	}

	today := models.DateOf(h.now())

	occurrences, diagnostics, err := h.upcomingWindow(c, today, windowDays)
	if err != nil {
		return err
	}

	items := make([]UpcomingItem, 0, len(occurrences))
	for _, occ := range occurrences {
		items = append(items, UpcomingItem{
			Occurrence: occ,
			Urgency:    agenda.AgendaClassifier.Classify(occ.DaysUntil),
		})
	}

	return SuccessResponse(c, UpcomingResponse{
		Today:       today,
		WindowDays:  windowDays,
		Items:       items,
		Diagnostics: diagnostics,
	})
}

// UpcomingFeed handles GET /events/upcoming/feed.ics
func (h *EventHandler) UpcomingFeed(c echo.Context) error {
	windowDays, err := parseWindowDays(c.QueryParam("days"))
	if err != nil {
		return err
	}

	now := h.now()
	today := models.DateOf(now)

	occurrences, _, err := h.upcomingWindow(c, today, windowDays)
	if err != nil {
		return err
	}

	data, err := icalfeed.Encode(occurrences, now)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", data)
}

func (h *EventHandler) upcomingWindow(c echo.Context, today models.Date, windowDays int) ([]agenda.Occurrence, []agenda.Diagnostic, error) {
	ctx := c.Request().Context()

	events, err := h.events.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	friendsByID, err := h.friends.MapByID(ctx)
	if err != nil {
		return nil, nil, err
	}

	occurrences, diagnostics := agenda.SelectUpcoming(events, friendsByID, today, windowDays)
	return occurrences, diagnostics, nil
}

func parseWindowDays(raw string) (int, error) {
	if raw == "" {
		return defaultWindowDays, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, BadRequest("invalid days: must be an integer")
	}
	if days < 0 || days > maxWindowDays {
		return 0, BadRequest("invalid days: must be between 0 and 366")
	}

	return days, nil
}
