package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, app *fiber.App, token, text string) uint {
	t.Helper()
	status, post := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]any{"text": text})
	require.Equal(t, http.StatusCreated, status)
	return uint(post["id"].(float64))
}

func TestCreatePost(t *testing.T) {
	app, _ := newTestApp(t)
	token, userID := registerUser(t, app, "Post Author", "author@example.com", "secret123")

	t.Run("Requires auth", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/posts", "", map[string]any{"text": "hi"})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "MISSING_TOKEN", body["code"])
	})

	t.Run("Requires text", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]any{"text": "   "})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})

	t.Run("Stamps author name and avatar", func(t *testing.T) {
		status, post := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]any{"text": "hello world"})
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "hello world", post["text"])
		assert.Equal(t, "Post Author", post["name"])
		assert.Equal(t, float64(userID), post["user_id"])
		assert.NotEmpty(t, post["avatar"])
	})
}

func TestGetPosts(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := registerUser(t, app, "Feed User", "feed@example.com", "secret123")

	createPost(t, app, token, "first")
	createPost(t, app, token, "second")
	third := createPost(t, app, token, "third")

	t.Run("Requires auth", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodGet, "/api/posts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("Newest first", func(t *testing.T) {
		status, posts := doJSONList(t, app, http.MethodGet, "/api/posts", token, nil)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, posts, 3)
		assert.Equal(t, "third", posts[0]["text"])
		assert.Equal(t, "first", posts[2]["text"])
	})

	t.Run("Single post by id", func(t *testing.T) {
		status, post := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", third), token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "third", post["text"])
	})

	t.Run("Unknown id is 404", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/posts/9999", token, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND", body["code"])
	})
}

func TestDeletePost(t *testing.T) {
	app, _ := newTestApp(t)
	ownerToken, _ := registerUser(t, app, "Owner", "owner@example.com", "secret123")
	otherToken, _ := registerUser(t, app, "Other", "other@example.com", "secret123")

	postID := createPost(t, app, ownerToken, "mine")

	t.Run("Non-owner is forbidden", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), otherToken, nil)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "FORBIDDEN", body["code"])
	})

	t.Run("Owner can delete", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), ownerToken, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Post removed", body["msg"])

		status, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), ownerToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestLikeUnlike(t *testing.T) {
	app, _ := newTestApp(t)
	aliceToken, aliceID := registerUser(t, app, "Alice", "alice@example.com", "secret123")
	bobToken, _ := registerUser(t, app, "Bob", "bob@example.com", "secret123")

	postID := createPost(t, app, bobToken, "like me")
	likePath := fmt.Sprintf("/api/posts/like/%d", postID)
	unlikePath := fmt.Sprintf("/api/posts/unlike/%d", postID)

	t.Run("Like returns likes list", func(t *testing.T) {
		status, likes := doJSONList(t, app, http.MethodPut, likePath, aliceToken, nil)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, likes, 1)
		assert.Equal(t, float64(aliceID), likes[0]["user_id"])
	})

	t.Run("Double like is a conflict", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPut, likePath, aliceToken, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "CONFLICT", body["code"])
	})

	t.Run("Both users can like", func(t *testing.T) {
		status, likes := doJSONList(t, app, http.MethodPut, likePath, bobToken, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, likes, 2)
	})

	t.Run("Unlike removes only own like", func(t *testing.T) {
		status, likes := doJSONList(t, app, http.MethodPut, unlikePath, aliceToken, nil)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, likes, 1)
		assert.NotEqual(t, float64(aliceID), likes[0]["user_id"])
	})

	t.Run("Unlike without a like is a conflict", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPut, unlikePath, aliceToken, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "CONFLICT", body["code"])
	})

	t.Run("Like on unknown post is 404", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPut, "/api/posts/like/9999", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestComments(t *testing.T) {
	app, _ := newTestApp(t)
	authorToken, _ := registerUser(t, app, "Author", "ca@example.com", "secret123")
	commenterToken, commenterID := registerUser(t, app, "Commenter", "cc@example.com", "secret123")

	postID := createPost(t, app, authorToken, "discuss")
	commentPath := fmt.Sprintf("/api/posts/comment/%d", postID)

	t.Run("Requires text", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, commentPath, commenterToken, map[string]any{"text": ""})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})

	t.Run("Comment on unknown post is 404", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/posts/comment/9999", commenterToken, map[string]any{"text": "hi"})
		assert.Equal(t, http.StatusNotFound, status)
	})

	var commentID uint
	t.Run("Add returns comments newest first", func(t *testing.T) {
		status, comments := doJSONList(t, app, http.MethodPost, commentPath, commenterToken, map[string]any{"text": "first!"})
		require.Equal(t, http.StatusCreated, status)
		require.Len(t, comments, 1)

		status, comments = doJSONList(t, app, http.MethodPost, commentPath, commenterToken, map[string]any{"text": "second!"})
		require.Equal(t, http.StatusCreated, status)
		require.Len(t, comments, 2)
		assert.Equal(t, "second!", comments[0]["text"])
		assert.Equal(t, "Commenter", comments[0]["name"])
		assert.Equal(t, float64(commenterID), comments[0]["user_id"])

		commentID = uint(comments[0]["id"].(float64))
	})

	t.Run("Only the comment author may remove it", func(t *testing.T) {
		path := fmt.Sprintf("/api/posts/comment/%d/%d", postID, commentID)

		status, body := doJSON(t, app, http.MethodDelete, path, authorToken, nil)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "FORBIDDEN", body["code"])

		status, comments := doJSONList(t, app, http.MethodDelete, path, commenterToken, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, comments, 1)
	})

	t.Run("Removing unknown comment is 404", func(t *testing.T) {
		path := fmt.Sprintf("/api/posts/comment/%d/9999", postID)
		status, body := doJSON(t, app, http.MethodDelete, path, commenterToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND", body["code"])
	})
}
