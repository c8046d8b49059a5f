package server

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	_, app := newTestApp(t)
	token := register(t, app, "alice@example.com", "Alice Jones", "password123")

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, "Alice Jones", body["fullName"])
	assert.NotContains(t, body, "password")
}

func TestUpdateMyProfile(t *testing.T) {
	_, app := newTestApp(t)
	token := register(t, app, "alice@example.com", "Alice Jones", "password123")

	resp, body := doJSON(t, app, fiber.MethodPut, "/api/users/me", token, fiber.Map{
		"fullName":     "Alice J.",
		"profileImage": "https://example.com/a.png",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alice J.", body["fullName"])
	assert.Equal(t, "https://example.com/a.png", body["profileImage"])
}

func TestChangePasswordAndRelogin(t *testing.T) {
	_, app := newTestApp(t)
	token := register(t, app, "alice@example.com", "Alice Jones", "password123")

	resp, _ := doJSON(t, app, fiber.MethodPut, "/api/users/me", token, fiber.Map{
		"newPassword": "better-password-456",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The old password stops working, the new one logs in.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "password123",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	login(t, app, "alice@example.com", "better-password-456")
}

func TestDeleteMyAccount(t *testing.T) {
	_, app := newTestApp(t)
	aliceToken := register(t, app, "alice@example.com", "Alice Jones", "password123")
	bobToken := register(t, app, "bob@example.com", "Bob Smith", "password123")

	// Bob follows Alice; her posts stay up after she leaves.
	postID := createPost(t, app, aliceToken, "Left Behind")
	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/follows/alice@example.com", bobToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/users/me", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Her token dies with the account.
	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/users/me", aliceToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Bob no longer follows anyone.
	resp, body := doJSON(t, app, fiber.MethodGet, "/api/follows/", bobToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["following"])

	// The post is still readable under her recorded name.
	resp, body = doJSON(t, app, fiber.MethodGet, "/api/posts/"+postID, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alice Jones", body["post"].(map[string]any)["author"])
}

func TestGetUserProfile(t *testing.T) {
	_, app := newTestApp(t)
	token := register(t, app, "alice@example.com", "Alice Jones", "password123")
	register(t, app, "bob@example.com", "Bob Smith", "password123")

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/users/bob@example.com", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bob Smith", body["fullName"])
	assert.NotContains(t, body, "password")

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/users/ghost@example.com", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetUserPosts(t *testing.T) {
	_, app := newTestApp(t)
	aliceToken := register(t, app, "alice@example.com", "Alice Jones", "password123")
	bobToken := register(t, app, "bob@example.com", "Bob Smith", "password123")

	createPost(t, app, aliceToken, "Alice One")
	createPost(t, app, aliceToken, "Alice Two")
	createPost(t, app, bobToken, "Bob One")

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/users/alice@example.com/posts", bobToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "alice@example.com", item.(map[string]any)["authorEmail"])
	}

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/users/ghost@example.com/posts", bobToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetUserProfileEscapedEmail(t *testing.T) {
	_, app := newTestApp(t)
	token := register(t, app, "alice@example.com", "Alice Jones", "password123")
	register(t, app, "bob@example.com", "Bob Smith", "password123")

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/users/bob%40example.com", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bob Smith", body["fullName"])
}
