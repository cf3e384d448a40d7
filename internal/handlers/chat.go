package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/amity-app/amity/pkg/chat"
	"github.com/amity-app/amity/pkg/models"
	"github.com/amity-app/amity/pkg/repositories"
	"github.com/amity-app/amity/pkg/utils"
)

// ChatHandler handles assistant requests
type ChatHandler struct {
	suggester *chat.Suggester
	friends   repositories.FriendRepo
	notes     repositories.NoteRepo
}

// NewChatHandler creates a new chat handler
func NewChatHandler(suggester *chat.Suggester, friends repositories.FriendRepo, notes repositories.NoteRepo) *ChatHandler {
	return &ChatHandler{
		suggester: suggester,
		friends:   friends,
		notes:     notes,
	}
}

// RegisterRoutes registers the chat routes
func (h *ChatHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/chat", h.Chat)
}

// Chat handles POST /chat. When a friend is referenced the reply is
// personalized with their name and favorites notes.
func (h *ChatHandler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	req, err := utils.BindRequest[models.ChatRequest](c)
	if err != nil {
		return err
	}

	var friend *models.Friend
	var favorites []string
	if req.FriendID != nil {
		friend, err = h.friends.Get(ctx, *req.FriendID)
		if err != nil {
			return err
		}

		notes, err := h.notes.ListForFriend(ctx, friend.ID, models.NoteCategoryFavorites)
		if err != nil {
			return err
		}
		for _, note := range notes {
			favorites = append(favorites, note.Content)
		}
	}

	return SuccessResponse(c, h.suggester.Reply(req.Message, friend, favorites))
}
