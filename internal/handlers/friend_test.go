package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amity-app/amity/internal/handlers"
	"github.com/amity-app/amity/pkg/models"
)

func TestFriendHandler(t *testing.T) {
	t.Run("should create a friend", func(t *testing.T) {
		h := handlers.NewFriendHandler(newStubFriendRepo())
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodPost, "/api/friends", map[string]any{
			"name":     "Ada",
			"birthday": "1990-06-15",
			"email":    "ada@example.com",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		friend := decodeBody[models.Friend](t, rec)
		assert.Equal(t, "Ada", friend.Name)
		require.NotNil(t, friend.Birthday)
		assert.Equal(t, "1990-06-15", friend.Birthday.String())
	})

	t.Run("should reject a friend without a name", func(t *testing.T) {
		h := handlers.NewFriendHandler(newStubFriendRepo())
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodPost, "/api/friends", map[string]any{
			"email": "ada@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject an invalid email", func(t *testing.T) {
		h := handlers.NewFriendHandler(newStubFriendRepo())
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodPost, "/api/friends", map[string]any{
			"name":  "Ada",
			"email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should get and delete a friend", func(t *testing.T) {
		h := handlers.NewFriendHandler(newStubFriendRepo(models.Friend{ID: 1, Name: "Ada"}))
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodGet, "/api/friends/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = makeRequest(t, e, http.MethodDelete, "/api/friends/1", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = makeRequest(t, e, http.MethodGet, "/api/friends/1", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should reject a non-numeric id", func(t *testing.T) {
		h := handlers.NewFriendHandler(newStubFriendRepo())
		e := newTestServer(h)

		rec := makeRequest(t, e, http.MethodGet, "/api/friends/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
