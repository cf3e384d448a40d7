package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/amity-app/amity/pkg/models"
	"github.com/amity-app/amity/pkg/repositories"
	"github.com/amity-app/amity/pkg/utils"
)

// FriendHandler handles friend-related API requests
type FriendHandler struct {
	friends repositories.FriendRepo
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(friends repositories.FriendRepo) *FriendHandler {
	return &FriendHandler{
		friends: friends,
	}
}

// RegisterRoutes registers the friend routes
func (h *FriendHandler) RegisterRoutes(g *echo.Group) {
	friends := g.Group("/friends")
	friends.GET("", h.List)
	friends.POST("", h.Create)
	friends.GET("/:id", h.Get)
	friends.PUT("/:id", h.Update)
	friends.DELETE("/:id", h.Delete)
}

// List handles GET /friends?q=
func (h *FriendHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	friends, err := h.friends.List(ctx, c.QueryParam("q"))
	if err != nil {
		return err
	}

	return SuccessResponse(c, friends)
}

// Get handles GET /friends/:id
func (h *FriendHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	friend, err := h.friends.Get(ctx, id)
	if err != nil {
		return err
	}

	return SuccessResponse(c, friend)
}

// Create handles POST /friends
func (h *FriendHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	req, err := utils.BindRequest[models.CreateFriendRequest](c)
	if err != nil {
		return err
	}

	friend, err := h.friends.Create(ctx, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, friend)
}

// Update handles PUT /friends/:id
func (h *FriendHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	req, err := utils.BindRequest[models.UpdateFriendRequest](c)
	if err != nil {
		return err
	}

	friend, err := h.friends.Update(ctx, id, req)
	if err != nil {
		return err
	}

	return SuccessResponse(c, friend)
}

// Delete handles DELETE /friends/:id
func (h *FriendHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.friends.Delete(ctx, id); err != nil {
		return err
	}

	return NoContentResponse(c)
}
