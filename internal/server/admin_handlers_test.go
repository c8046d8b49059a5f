package server

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	_, app := newTestApp(t)
	token := register(t, app, "alice@example.com", "Alice Jones", "password123")

	for _, path := range []string{"/api/admin/stats", "/api/admin/users"} {
		resp, _ := doJSON(t, app, fiber.MethodGet, path, token, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, path)
	}
}

func TestAdminStats(t *testing.T) {
	s, app := newTestApp(t)
	aliceToken := register(t, app, "alice@example.com", "Alice Jones", "password123")
	register(t, app, "admin@example.com", "Admin", "password123")
	promote(t, s, "admin@example.com")
	adminToken := login(t, app, "admin@example.com", "password123")

	id := createPost(t, app, aliceToken, "One")
	createPost(t, app, aliceToken, "Two")
	resp, _ := doJSON(t, app, fiber.MethodPut,
		"/api/admin/posts/"+id+"/disabled", adminToken, fiber.Map{"disabled": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	users := body["users"].(map[string]any)
	posts := body["posts"].(map[string]any)
	assert.Equal(t, float64(2), users["total"])
	assert.Equal(t, float64(2), posts["total"])
	assert.Equal(t, float64(1), posts["matching"])
	assert.Equal(t, float64(1), posts["rest"])
}

func TestAdminListUsers(t *testing.T) {
	s, app := newTestApp(t)
	register(t, app, "alice@example.com", "Alice Jones", "password123")
	register(t, app, "bob@example.com", "Bob Smith", "password123")
	register(t, app, "admin@example.com", "Admin", "password123")
	promote(t, s, "admin@example.com")
	adminToken := login(t, app, "admin@example.com", "password123")

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["users"], 3)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/admin/users?search=bob", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	users := body["users"].([]any)
	require.Len(t, users, 1)
	assert.Equal(t, "bob@example.com", users[0].(map[string]any)["email"])
}

func TestAdminDisableAndReenableUser(t *testing.T) {
	s, app := newTestApp(t)
	register(t, app, "alice@example.com", "Alice Jones", "password123")
	register(t, app, "admin@example.com", "Admin", "password123")
	promote(t, s, "admin@example.com")
	adminToken := login(t, app, "admin@example.com", "password123")

	resp, body := doJSON(t, app, fiber.MethodPut,
		"/api/admin/users/alice@example.com/disabled", adminToken, fiber.Map{"disabled": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["disabled"])

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "password123",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPut,
		"/api/admin/users/alice@example.com/disabled", adminToken, fiber.Map{"disabled": false})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	login(t, app, "alice@example.com", "password123")
}

func TestAdminCannotDisableThemselves(t *testing.T) {
	s, app := newTestApp(t)
	register(t, app, "admin@example.com", "Admin", "password123")
	promote(t, s, "admin@example.com")
	adminToken := login(t, app, "admin@example.com", "password123")

	resp, body := doJSON(t, app, fiber.MethodPut,
		"/api/admin/users/admin@example.com/disabled", adminToken, fiber.Map{"disabled": true})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestAdminCannotDeleteOtherAccounts(t *testing.T) {
	s, app := newTestApp(t)
	register(t, app, "alice@example.com", "Alice Jones", "password123")
	register(t, app, "admin@example.com", "Admin", "password123")
	promote(t, s, "admin@example.com")
	adminToken := login(t, app, "admin@example.com", "password123")

	// No admin delete endpoint exists; moderation is disable/enable.
	resp, _ := doJSON(t, app, fiber.MethodDelete,
		"/api/admin/users/alice@example.com", adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Alice's account is untouched.
	login(t, app, "alice@example.com", "password123")
}

func TestAdminCannotDeletePosts(t *testing.T) {
	s, app := newTestApp(t)
	aliceToken := register(t, app, "alice@example.com", "Alice Jones", "password123")
	register(t, app, "admin@example.com", "Admin", "password123")
	promote(t, s, "admin@example.com")
	adminToken := login(t, app, "admin@example.com", "password123")

	id := createPost(t, app, aliceToken, "Stays Up")

	resp, _ := doJSON(t, app, fiber.MethodDelete, "/api/admin/posts/"+id, adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// The author-only rule holds on the regular endpoint too.
	resp, body := doJSON(t, app, fiber.MethodDelete, "/api/posts/"+id, adminToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/posts/"+id, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
