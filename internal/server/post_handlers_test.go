package server

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createPost makes a post through the API and returns its id.
func createPost(t *testing.T, app *fiber.App, token, title string) string {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/posts", token, fiber.Map{
		"title":    title,
		"content":  "some content worth reading",
		"category": "Technology",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "create post: %v", body)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestPostLifecycle(t *testing.T) {
	_, app := newTestApp(t)
	token := register(t, app, "alice@example.com", "Alice Jones", "password123")

	id := createPost(t, app, token, "My First Post")

	// Anyone can read it.
	resp, body := doJSON(t, app, fiber.MethodGet, "/api/posts/"+id, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	post := body["post"].(map[string]any)
	assert.Equal(t, "My First Post", post["title"])
	assert.Equal(t, "Alice Jones", post["author"])
	assert.Equal(t, float64(0), body["averageRating"])

	// The author can edit it.
	resp, body = doJSON(t, app, fiber.MethodPut, "/api/posts/"+id, token, fiber.Map{
		"title": "My Edited Post",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "My Edited Post", body["title"])

	// And delete it.
	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/posts/"+id, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/posts/"+id, "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreatePostRequiresAuth(t *testing.T) {
	_, app := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/posts", "", fiber.Map{
		"title": "T", "content": "C", "category": "Technology",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestEditAnotherUsersPost(t *testing.T) {
	_, app := newTestApp(t)
	aliceToken := register(t, app, "alice@example.com", "Alice Jones", "password123")
	bobToken := register(t, app, "bob@example.com", "Bob Smith", "password123")

	id := createPost(t, app, aliceToken, "Alice Writes")

	resp, _ := doJSON(t, app, fiber.MethodPut, "/api/posts/"+id, bobToken, fiber.Map{
		"title": "Bob Rewrites",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/posts/"+id, bobToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestListPostsFiltersAndPages(t *testing.T) {
	_, app := newTestApp(t)
	token := register(t, app, "alice@example.com", "Alice Jones", "password123")

	for i := 0; i < 12; i++ {
		createPost(t, app, token, fmt.Sprintf("Post %02d", i))
	}

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/posts/?page=2&pageSize=5", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 5)
	assert.Equal(t, float64(12), body["totalItems"])
	assert.Equal(t, float64(3), body["totalPages"])

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/posts/?search=Post+03", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/posts/?category=Travel", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["items"])
}

func TestRatePostAveraging(t *testing.T) {
	_, app := newTestApp(t)
	aliceToken := register(t, app, "alice@example.com", "Alice Jones", "password123")
	bobToken := register(t, app, "bob@example.com", "Bob Smith", "password123")

	id := createPost(t, app, aliceToken, "Rate Me")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/posts/"+id+"/ratings", bobToken, fiber.Map{"rating": 4})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/posts/"+id+"/ratings", bobToken, fiber.Map{"rating": 5})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 4.5, body["averageRating"])

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/posts/"+id+"/ratings", bobToken, fiber.Map{"rating": 6})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestCommentFlowNotifiesAuthor(t *testing.T) {
	_, app := newTestApp(t)
	aliceToken := register(t, app, "alice@example.com", "Alice Jones", "password123")
	bobToken := register(t, app, "bob@example.com", "Bob Smith", "password123")

	id := createPost(t, app, aliceToken, "Discuss")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/posts/"+id+"/comments", bobToken, fiber.Map{
		"text": "Great read",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	comments := body["comments"].([]any)
	require.Len(t, comments, 1)
	commentID := comments[0].(map[string]any)["id"].(string)

	// Alice got a notification about Bob's comment.
	resp, body = doJSON(t, app, fiber.MethodGet, "/api/notifications/", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	notifs := body["notifications"].([]any)
	require.Len(t, notifs, 1)
	n := notifs[0].(map[string]any)
	assert.Equal(t, "comment", n["type"])
	assert.Equal(t, "bob@example.com", n["fromEmail"])
	assert.Equal(t, id, n["postId"])

	// Bob edits his comment; the edit is flagged.
	resp, body = doJSON(t, app, fiber.MethodPut,
		"/api/posts/"+id+"/comments/"+commentID, bobToken, fiber.Map{"text": "Even better on reread"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	edited := body["comments"].([]any)[0].(map[string]any)
	assert.Equal(t, "Even better on reread", edited["text"])
	assert.Equal(t, true, edited["edited"])

	// Alice, as post author, can delete it.
	resp, body = doJSON(t, app, fiber.MethodDelete,
		"/api/posts/"+id+"/comments/"+commentID, aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["comments"])
}

func TestGetCommentsPublic(t *testing.T) {
	_, app := newTestApp(t)
	token := register(t, app, "alice@example.com", "Alice Jones", "password123")
	id := createPost(t, app, token, "Discuss")

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/posts/"+id+"/comments", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["comments"])
}

func TestFeedShowsFollowedAuthorsOnly(t *testing.T) {
	_, app := newTestApp(t)
	aliceToken := register(t, app, "alice@example.com", "Alice Jones", "password123")
	bobToken := register(t, app, "bob@example.com", "Bob Smith", "password123")
	carolToken := register(t, app, "carol@example.com", "Carol King", "password123")

	createPost(t, app, aliceToken, "From Alice")
	createPost(t, app, bobToken, "From Bob")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/follows/alice@example.com", carolToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/feed", carolToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "From Alice", items[0].(map[string]any)["title"])
}

func TestDisabledPostHiddenFromListings(t *testing.T) {
	s, app := newTestApp(t)
	aliceToken := register(t, app, "alice@example.com", "Alice Jones", "password123")
	register(t, app, "admin@example.com", "Admin", "password123")
	promote(t, s, "admin@example.com")
	adminToken := login(t, app, "admin@example.com", "password123")

	id := createPost(t, app, aliceToken, "Soon Hidden")

	resp, _ := doJSON(t, app, fiber.MethodPut,
		"/api/admin/posts/"+id+"/disabled", adminToken, fiber.Map{"disabled": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Anonymous readers get a 404 and an empty listing.
	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/posts/"+id, "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, body := doJSON(t, app, fiber.MethodGet, "/api/posts/", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["items"])

	// The author still sees their own disabled post.
	resp, body = doJSON(t, app, fiber.MethodGet, "/api/posts/"+id, aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	post := body["post"].(map[string]any)
	assert.Equal(t, true, post["disabled"])
}
