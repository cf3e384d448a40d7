package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amity-app/amity/internal/handlers"
	"github.com/amity-app/amity/pkg/models"
)

func TestReciprocityHandler(t *testing.T) {
	friends := newStubFriendRepo(
		models.Friend{ID: 1, Name: "Ada"},
		models.Friend{ID: 2, Name: "Bruno"},
	)

	t.Run("should log an action", func(t *testing.T) {
		h := handlers.NewReciprocityHandler(newStubReciprocityRepo(), friends)
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodPost, "/api/friends/1/reciprocity", map[string]any{
			"action": "sent_gift",
			"date":   "2026-03-01",
			"notes":  "Birthday book",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		log := decodeBody[models.ReciprocityLog](t, rec)
		assert.Equal(t, models.ActionSentGift, log.Action)
	})

	t.Run("should reject an unknown action", func(t *testing.T) {
		h := handlers.NewReciprocityHandler(newStubReciprocityRepo(), friends)
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodPost, "/api/friends/1/reciprocity", map[string]any{
			"action": "ghosted",
			"date":   "2026-03-01",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should summarize with zero-filled actions", func(t *testing.T) {
		logs := newStubReciprocityRepo(
			models.ReciprocityLog{ID: 1, FriendID: 1, Action: models.ActionSentWish, Date: models.NewDate(2026, 1, 1)},
			models.ReciprocityLog{ID: 2, FriendID: 1, Action: models.ActionSentWish, Date: models.NewDate(2026, 2, 1)},
			models.ReciprocityLog{ID: 3, FriendID: 1, Action: models.ActionHangout, Date: models.NewDate(2026, 2, 10)},
			models.ReciprocityLog{ID: 4, FriendID: 2, Action: models.ActionReceivedGift, Date: models.NewDate(2026, 2, 20)},
		)
		h := handlers.NewReciprocityHandler(logs, friends)
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodGet, "/api/reciprocity/summary", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[handlers.SummaryResponse](t, rec)
		require.Len(t, resp.Summaries, 2)

		ada := resp.Summaries[0]
		assert.Equal(t, "Ada", ada.FriendName)
		assert.Equal(t, 2, ada.Actions[models.ActionSentWish])
		assert.Equal(t, 1, ada.Actions[models.ActionHangout])
		assert.Equal(t, 0, ada.Actions[models.ActionSentGift])
		assert.Len(t, ada.Actions, len(models.AllActionTypes))
	})

	t.Run("should report logs with unknown friends as diagnostics", func(t *testing.T) {
		logs := newStubReciprocityRepo(
			models.ReciprocityLog{ID: 1, FriendID: 99, Action: models.ActionSentWish, Date: models.NewDate(2026, 1, 1)},
		)
		h := handlers.NewReciprocityHandler(logs, friends)
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodGet, "/api/reciprocity/summary", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[handlers.SummaryResponse](t, rec)
		assert.Empty(t, resp.Summaries)
		require.Len(t, resp.Diagnostics, 1)
	})
}
