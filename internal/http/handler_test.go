package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"threadboard/internal/auth"
	"threadboard/internal/metrics"
	"threadboard/internal/repository/sqlite"
	"threadboard/internal/service"
)

type testEnv struct {
	server  *httptest.Server
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T, rps float64, burst int) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "forum.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.CreateAll(context.Background(), db))

	userRepo := sqlite.NewUserRepository(db)
	sessions, err := auth.NewSessions("test-secret-test-secret", time.Hour, nil)
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	m := metrics.New()

	handler := NewHandler(Options{
		Users: service.NewUserServiceWithCost(userRepo, bcrypt.MinCost),
		Forum: service.NewForumService(
			userRepo,
			sqlite.NewCategoryRepository(db),
			sqlite.NewThreadRepository(db),
			sqlite.NewCommentRepository(db),
		),
		Directory:      service.NewDirectoryService(sqlite.NewCityRepository(db), sqlite.NewCustomerRepository(db)),
		Sessions:       sessions,
		Metrics:        m,
		Logger:         logger,
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	handler.RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, metrics: m}
}

// client is a browser-like session with its own cookie jar that never follows redirects.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func (e *testEnv) client(t *testing.T) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{
		t:    t,
		base: e.server.URL,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *client) send(req *http.Request) (*http.Response, []byte) {
	c.t.Helper()
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, body
}

func (c *client) json(method, path string, payload any) (*http.Response, []byte) {
	c.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(c.t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, body)
	require.NoError(c.t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req)
}

func (c *client) form(path string, values url.Values) *http.Response {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodPost, c.base+path, strings.NewReader(values.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ := c.send(req)
	return resp
}

func (c *client) get(path string) (*http.Response, string) {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.base+path, nil)
	require.NoError(c.t, err)
	resp, body := c.send(req)
	return resp, string(body)
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

type errorBody struct {
	Error string `json:"error"`
}

// register signs up and logs in, returning the new user id.
func (c *client) register(name string) int64 {
	c.t.Helper()
	resp, body := c.json(http.MethodPost, "/api/signup", gin.H{
		"username": name,
		"email":    name + "@example.com",
		"password": "pw-" + name,
	})
	require.Equal(c.t, http.StatusCreated, resp.StatusCode, string(body))
	user := decode[UserResponse](c.t, body)

	resp, body = c.json(http.MethodPost, "/api/login", gin.H{"username": name, "password": "pw-" + name})
	require.Equal(c.t, http.StatusOK, resp.StatusCode, string(body))
	return user.ID
}

func (c *client) createCategory(name string) CategoryResponse {
	c.t.Helper()
	resp, body := c.json(http.MethodPost, "/api/categories", gin.H{"name": name})
	require.Equal(c.t, http.StatusCreated, resp.StatusCode, string(body))
	return decode[CategoryResponse](c.t, body)
}

func (c *client) createThread(title string, categoryID int64) ThreadResponse {
	c.t.Helper()
	resp, body := c.json(http.MethodPost, "/api/threads", gin.H{
		"title":       title,
		"content":     "content of " + title,
		"category_id": categoryID,
	})
	require.Equal(c.t, http.StatusCreated, resp.StatusCode, string(body))
	return decode[ThreadResponse](c.t, body)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	resp, body := env.client(t).get("/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":"ok"}`, body)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	c := env.client(t)

	resp, body := c.json(http.MethodPost, "/api/signup", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[map[string]any](t, body)
	assert.Equal(t, "alice", created["username"])
	assert.Equal(t, "alice@example.com", created["email"])
	assert.NotContains(t, string(body), "password")

	resp, body = c.json(http.MethodPost, "/api/login", gin.H{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid credentials", decode[errorBody](t, body).Error)

	resp, body = c.json(http.MethodPost, "/api/login", gin.H{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"user_id":`+strconv.FormatInt(int64(created["id"].(float64)), 10)+`,"username":"alice"}`, string(body))

	resp, body = c.json(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", decode[UserResponse](t, body).Username)
}

func TestSignupRejectsMissingFields(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	resp, body := env.client(t).json(http.MethodPost, "/api/signup", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, decode[errorBody](t, body).Error)
}

func TestDuplicateSignupIsRejected(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	c := env.client(t)
	c.register("alice")

	resp, body := c.json(http.MethodPost, "/api/signup", gin.H{
		"username": "alice", "email": "second@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "username already exists", decode[errorBody](t, body).Error)

	web := env.client(t)
	resp = web.form("/signup", url.Values{
		"username": {"alice"}, "email": {"third@example.com"}, "password": {"pw"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/signup", resp.Header.Get("Location"))

	resp, page := web.get("/signup")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, "username already exists")

	_, page = web.get("/signup")
	assert.NotContains(t, page, "username already exists")
}

func TestLogoutRequiresSession(t *testing.T) {
	env := newTestEnv(t, 0, 0)

	anon := env.client(t)
	resp, body := anon.json(http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"authentication required"}`, string(body))

	c := env.client(t)
	c.register("alice")
	resp, _ = c.json(http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = c.json(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedPagesRedirectToLogin(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	c := env.client(t)

	resp, _ := c.get("/profile")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = c.form("/create_thread_web", url.Values{"title": {"x"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	_, page := c.get("/login")
	assert.Contains(t, page, "Please log in to continue.")
}

func TestCategoriesRoundTrip(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	c := env.client(t)

	created := c.createCategory("Memes")
	assert.Equal(t, "Memes", created.Name)

	resp, body := c.json(http.MethodPost, "/api/categories", gin.H{"name": "Memes"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "name already exists", decode[errorBody](t, body).Error)

	resp, body = c.json(http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []CategoryResponse{created}, decode[[]CategoryResponse](t, body))
}

func TestCreateThread(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	c := env.client(t)
	userID := c.register("alice")
	category := c.createCategory("General")

	thread := c.createThread("Hello", category.ID)
	assert.Equal(t, userID, thread.UserID)
	assert.Equal(t, category.ID, thread.CategoryID)
	_, err := time.Parse(time.RFC3339, thread.CreatedAt)
	require.NoError(t, err)

	resp, body := c.json(http.MethodPost, "/api/threads", gin.H{
		"title": "Lost", "content": "nowhere", "category_id": 999,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

	resp, _ = c.json(http.MethodPost, "/api/threads", gin.H{"title": "No body", "category_id": category.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = c.json(http.MethodGet, "/api/threads/"+strconv.FormatInt(thread.ID, 10), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[FeedThreadResponse](t, body)
	assert.Equal(t, "alice", got.Author.Username)
	assert.Equal(t, "General", got.Category.Name)

	resp, _ = c.json(http.MethodGet, "/api/threads/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = c.json(http.MethodGet, "/api/threads/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	anon := env.client(t)
	resp, _ = anon.json(http.MethodPost, "/api/threads", gin.H{
		"title": "Anon", "content": "x", "category_id": category.ID,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOwnershipIsEnforced(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	alice := env.client(t)
	alice.register("alice")
	bob := env.client(t)
	bobID := bob.register("bob")

	category := alice.createCategory("General")
	thread := alice.createThread("Mine", category.ID)
	threadPath := "/api/threads/" + strconv.FormatInt(thread.ID, 10)

	resp, _ := bob.json(http.MethodPut, threadPath, gin.H{"title": "Theirs", "content": "x", "category_id": category.ID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = bob.json(http.MethodDelete, threadPath, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := bob.json(http.MethodPost, "/api/comments", gin.H{"content": "hi", "thread_id": thread.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	comment := decode[CommentResponse](t, body)
	assert.Equal(t, bobID, comment.UserID)

	commentPath := "/api/comments/" + strconv.FormatInt(comment.ID, 10)
	resp, _ = alice.json(http.MethodPut, commentPath, gin.H{"content": "edited"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = bob.json(http.MethodPut, commentPath, gin.H{"content": "edited"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = alice.json(http.MethodPut, "/api/users/"+strconv.FormatInt(bobID, 10), gin.H{"email": "x@example.com"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = alice.json(http.MethodPut, threadPath, gin.H{"title": "Renamed", "content": "x", "category_id": category.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[ThreadResponse](t, body)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, thread.CreatedAt, updated.CreatedAt)

	resp, body = alice.json(http.MethodDelete, threadPath, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"deleted":`+strconv.FormatInt(thread.ID, 10)+`}`, string(body))

	resp, _ = bob.json(http.MethodPut, commentPath, gin.H{"content": "gone"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserDeletion(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	alice := env.client(t)
	aliceID := alice.register("alice")
	category := alice.createCategory("General")
	alice.createThread("Keeps me around", category.ID)

	resp, body := alice.json(http.MethodDelete, "/api/users/"+strconv.FormatInt(aliceID, 10), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

	resp, _ = alice.json(http.MethodGet, "/api/users/"+strconv.FormatInt(aliceID, 10), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	bob := env.client(t)
	bobID := bob.register("bob")
	resp, body = bob.json(http.MethodDelete, "/api/users/"+strconv.FormatInt(bobID, 10), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"deleted":`+strconv.FormatInt(bobID, 10)+`}`, string(body))

	resp, _ = alice.json(http.MethodGet, "/api/users/"+strconv.FormatInt(bobID, 10), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = bob.json(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	c := env.client(t)
	id := c.register("alice")
	path := "/api/users/" + strconv.FormatInt(id, 10)

	resp, _ := c.json(http.MethodPut, path, gin.H{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := c.json(http.MethodPut, path, gin.H{"email": "alice@new.example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@new.example.com", decode[UserResponse](t, body).Email)

	resp, body = c.json(http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decode[[]UserResponse](t, body)
	require.Len(t, users, 1)
	assert.Equal(t, "alice@new.example.com", users[0].Email)
}

func TestFeedNewestFirst(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	alice := env.client(t)
	alice.register("alice")
	bob := env.client(t)
	bob.register("bob")

	category := alice.createCategory("General")
	first := alice.createThread("first", category.ID)
	second := bob.createThread("second", category.ID)

	for _, text := range []string{"one", "two"} {
		resp, _ := bob.json(http.MethodPost, "/api/comments", gin.H{"content": text, "thread_id": first.ID})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := env.client(t).json(http.MethodGet, "/api/feed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	feed := decode[[]FeedThreadResponse](t, body)
	require.Len(t, feed, 2)

	assert.Equal(t, second.ID, feed[0].ID)
	assert.Equal(t, "bob", feed[0].Author.Username)
	assert.NotNil(t, feed[0].Comments)
	assert.Empty(t, feed[0].Comments)

	assert.Equal(t, first.ID, feed[1].ID)
	assert.Equal(t, "General", feed[1].Category.Name)
	require.Len(t, feed[1].Comments, 2)
	assert.Equal(t, "one", feed[1].Comments[0].Content)
	assert.Equal(t, "two", feed[1].Comments[1].Content)
	for _, cm := range feed[1].Comments {
		assert.Equal(t, first.ID, cm.ThreadID)
		require.NotNil(t, cm.Author)
		assert.Equal(t, "bob", cm.Author.Username)
	}

	resp, body = env.client(t).json(http.MethodGet, "/api/threads", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	threads := decode[[]ThreadResponse](t, body)
	require.Len(t, threads, 2)
	assert.Equal(t, second.ID, threads[0].ID)
}

func TestEmptyFeedIsArray(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	resp, body := env.client(t).json(http.MethodGet, "/api/feed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestWebForumFlow(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	c := env.client(t)

	resp := c.form("/signup", url.Values{"username": {"alice"}, "email": {"alice@example.com"}, "password": {"pw"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = c.form("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	_, page := c.get("/login")
	assert.Contains(t, page, "invalid credentials")

	resp = c.form("/login", url.Values{"username": {"alice"}, "password": {"pw"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/feed", resp.Header.Get("Location"))

	category := c.createCategory("General")

	resp = c.form("/create_thread_web", url.Values{
		"title":       {"From the browser"},
		"content":     {"posted via form"},
		"category_id": {strconv.FormatInt(category.ID, 10)},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/feed", resp.Header.Get("Location"))

	resp = c.form("/create_thread_web", url.Values{"title": {"No category"}, "content": {"x"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, page = c.get("/feed")
	assert.Contains(t, page, "category_id is required")
	assert.Contains(t, page, "From the browser")

	_, body := c.json(http.MethodGet, "/api/threads", nil)
	threads := decode[[]ThreadResponse](t, body)
	require.Len(t, threads, 1)
	threadID := strconv.FormatInt(threads[0].ID, 10)

	resp = c.form("/create_comment_web", url.Values{"thread_id": {threadID}, "content": {"a reply"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, page = c.get("/edit_thread/" + threadID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, "From the browser")

	resp = c.form("/edit_thread/"+threadID, url.Values{
		"title":       {"Edited title"},
		"content":     {"posted via form"},
		"category_id": {strconv.FormatInt(category.ID, 10)},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, page = c.get("/feed")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, "Edited title")
	assert.Contains(t, page, "a reply")

	resp, page = c.get("/profile")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, "Edited title")

	resp = c.form("/delete_thread/"+threadID, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = c.json(http.MethodGet, "/api/feed", nil)
	assert.JSONEq(t, `[]`, string(body))

	resp = c.form("/logout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	resp, _ = c.get("/profile")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestLogoutLinkDoesNotEndSession(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	c := env.client(t)
	c.register("alice")

	resp, page := c.get("/logout")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, `action="/logout"`)

	resp, _ = c.get("/profile")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, page = c.get("/feed")
	assert.Contains(t, page, `<form method="post" action="/logout"`)
	assert.NotContains(t, page, `href="/logout"`)

	resp = c.form("/logout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp, body := c.json(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, string(body))
}

func TestDirectoryEndpoints(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	c := env.client(t)

	resp, body := c.json(http.MethodPost, "/api/cities", gin.H{"name": "Porto"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Porto", decode[CityResponse](t, body).Name)

	resp, _ = c.json(http.MethodPost, "/api/cities", gin.H{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = c.json(http.MethodPost, "/api/customers", gin.H{"name": "Ana", "zip": "4000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "4000", decode[CustomerResponse](t, body).Zip)

	resp, body = c.json(http.MethodGet, "/api/cities", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]CityResponse](t, body), 1)

	resp, body = c.json(http.MethodGet, "/api/customers", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]CustomerResponse](t, body), 1)
}

func TestLoginIsRateLimited(t *testing.T) {
	env := newTestEnv(t, 0.001, 1)
	c := env.client(t)

	resp, _ := c.json(http.MethodPost, "/api/login", gin.H{"username": "x", "password": "y"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := c.json(http.MethodPost, "/api/login", gin.H{"username": "x", "password": "y"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "too many requests", decode[errorBody](t, body).Error)

	resp, _ = c.json(http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, 0, 0)
	c := env.client(t)
	c.createCategory("Memes")

	resp, page := c.get("/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, `forum_store_writes_total{entity="category",op="create"} 1`)
	assert.Contains(t, page, `route="/api/categories"`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(service.ErrValidation))
	assert.Equal(t, http.StatusUnauthorized, statusFor(service.ErrInvalidCredentials))
	assert.Equal(t, http.StatusForbidden, statusFor(service.ErrForbidden))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
