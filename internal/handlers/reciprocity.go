package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/amity-app/amity/pkg/models"
	"github.com/amity-app/amity/pkg/reciprocity"
	"github.com/amity-app/amity/pkg/repositories"
	"github.com/amity-app/amity/pkg/utils"
)

// ReciprocityHandler handles reciprocity log and balance summary requests
type ReciprocityHandler struct {
	logs    repositories.ReciprocityRepo
	friends repositories.FriendRepo
}

// NewReciprocityHandler creates a new reciprocity handler
func NewReciprocityHandler(logs repositories.ReciprocityRepo, friends repositories.FriendRepo) *ReciprocityHandler {
	return &ReciprocityHandler{
		logs:    logs,
		friends: friends,
	}
}

// RegisterRoutes registers the reciprocity routes
func (h *ReciprocityHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/friends/:id/reciprocity", h.ListForFriend)
	g.POST("/friends/:id/reciprocity", h.Create)
	g.DELETE("/reciprocity/:id", h.Delete)
	g.GET("/reciprocity/summary", h.Summary)
}

// ListForFriend handles GET /friends/:id/reciprocity
func (h *ReciprocityHandler) ListForFriend(c echo.Context) error {
	ctx := c.Request().Context()

	friendID, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.friends.Get(ctx, friendID); err != nil {
		return err
	}

	logs, err := h.logs.ListForFriend(ctx, friendID)
	if err != nil {
		return err
	}

	return SuccessResponse(c, logs)
}

// Create handles POST /friends/:id/reciprocity
func (h *ReciprocityHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	friendID, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.friends.Get(ctx, friendID); err != nil {
		return err
	}

	req, err := utils.BindRequest[models.CreateReciprocityLogRequest](c)
	if err != nil {
		return err
	}

	log, err := h.logs.Create(ctx, friendID, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, log)
}

// Delete handles DELETE /reciprocity/:id
func (h *ReciprocityHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.logs.Delete(ctx, id); err != nil {
		return err
	}

	return NoContentResponse(c)
}

// SummaryResponse is the response body for the reciprocity balance summary
type SummaryResponse struct {
	Summaries   []reciprocity.Summary    `json:"summaries"`
	Diagnostics []reciprocity.Diagnostic `json:"diagnostics,omitempty"`
}

// Summary handles GET /reciprocity/summary
func (h *ReciprocityHandler) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	logs, err := h.logs.ListAll(ctx)
	if err != nil {
		return err
	}

	friendsByID, err := h.friends.MapByID(ctx)
	if err != nil {
		return err
	}

	summaries, diagnostics := reciprocity.Summarize(logs, friendsByID)

	return SuccessResponse(c, SummaryResponse{
		Summaries:   summaries,
		Diagnostics: diagnostics,
	})
}
