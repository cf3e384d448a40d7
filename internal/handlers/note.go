package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/amity-app/amity/pkg/models"
	"github.com/amity-app/amity/pkg/repositories"
	"github.com/amity-app/amity/pkg/utils"
)

// NoteHandler handles note-related API requests
type NoteHandler struct {
	notes   repositories.NoteRepo
	friends repositories.FriendRepo
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(notes repositories.NoteRepo, friends repositories.FriendRepo) *NoteHandler {
	return &NoteHandler{
		notes:   notes,
		friends: friends,
	}
}

// RegisterRoutes registers the note routes
func (h *NoteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/friends/:id/notes", h.ListForFriend)
	g.POST("/friends/:id/notes", h.Create)
	g.PUT("/notes/:id", h.Update)
	g.DELETE("/notes/:id", h.Delete)
}

// ListForFriend handles GET /friends/:id/notes?category=
func (h *NoteHandler) ListForFriend(c echo.Context) error {
	ctx := c.Request().Context()

	friendID, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.friends.Get(ctx, friendID); err != nil {
		return err
	}

	notes, err := h.notes.ListForFriend(ctx, friendID, c.QueryParam("category"))
	if err != nil {
		return err
	}

	return SuccessResponse(c, notes)
}

// Create handles POST /friends/:id/notes
func (h *NoteHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	friendID, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.friends.Get(ctx, friendID); err != nil {
		return err
	}

	req, err := utils.BindRequest[models.CreateNoteRequest](c)
	if err != nil {
		return err
	}

	note, err := h.notes.Create(ctx, friendID, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, note)
}

// Update handles PUT /notes/:id
func (h *NoteHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	req, err := utils.BindRequest[models.UpdateNoteRequest](c)
	if err != nil {
		return err
	}

	note, err := h.notes.Update(ctx, id, req)
	if err != nil {
		return err
	}

	return SuccessResponse(c, note)
}

// Delete handles DELETE /notes/:id
func (h *NoteHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notes.Delete(ctx, id); err != nil {
		return err
	}

	return NoContentResponse(c)
}
