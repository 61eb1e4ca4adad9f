package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studynotes-be/internal/bootstrap"
	"studynotes-be/internal/config"
	"studynotes-be/internal/pkg/logger"
	"studynotes-be/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Reason  string          `json:"reason"`
	Data    json.RawMessage `json:"data"`
}

type noteBody struct {
	Id         uint   `json:"id"`
	AuthorId   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	Title      string `json:"title"`
	Class      string `json:"class"`
	Topic      string `json:"topic"`
	Year       int    `json:"year"`
	Content    string `json:"content"`
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Port: "0", Environment: "test", CorsAllowedOrigins: "*"},
		Database: config.DatabaseConfig{
			Driver:       config.StoreDriverMemory,
			QueryTimeout: time.Second,
		},
		Auth: config.AuthConfig{
			JWTSecret:         "server-test-secret-0123456789abcdef",
			JWTIssuer:         "studynotes",
			JWTAudience:       "studynotes-web",
			TokenLifetime:     time.Hour,
			BcryptCost:        4,
			RevocationEnabled: true,
		},
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	container, err := bootstrap.NewContainer(testConfig(), bootstrap.Dependencies{
		UowFactory: memory.NewRepositoryFactory(memory.NewStore()),
		Logger:     logger.NewNopLogger(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })
	return New(testConfig(), container).GetApp()
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, *envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	if len(raw) == 0 {
		return resp, nil
	}

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp, &env
}

func register(t *testing.T, app *fiber.App, cwid, first, email string) string {
	t.Helper()
	resp, env := call(t, app, http.MethodPost, "/auth/register", "", map[string]string{
		"cwid":      cwid,
		"firstName": first,
		"lastName":  "Student",
		"email":     email,
		"password":  "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func createMidterm(t *testing.T, app *fiber.App, token string) noteBody {
	t.Helper()
	resp, env := call(t, app, http.MethodPost, "/notes", token, map[string]interface{}{
		"title":   "Midterm Review",
		"class":   "MIS330",
		"topic":   "SQL",
		"year":    2024,
		"content": "joins and aggregates",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	var note noteBody
	require.NoError(t, json.Unmarshal(env.Data, &note))
	return note
}

func decodeNotes(t *testing.T, env *envelope) []noteBody {
	t.Helper()
	var notes []noteBody
	require.NoError(t, json.Unmarshal(env.Data, &notes))
	return notes
}

func TestScenario_SearchIsCaseInsensitive(t *testing.T) {
	app := newTestApp(t)

	tokenA := register(t, app, "12345678", "Ada", "ada@example.edu")
	n1 := createMidterm(t, app, tokenA)
	register(t, app, "87654321", "Bob", "bob@example.edu")

	resp, env := call(t, app, http.MethodGet, "/notes?topic=sql", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notes := decodeNotes(t, env)
	require.Len(t, notes, 1)
	assert.Equal(t, n1.Id, notes[0].Id)
	assert.Equal(t, "Ada Student", notes[0].AuthorName)
	assert.Equal(t, "1", resp.Header.Get("X-Total-Count"))
	assert.Equal(t, "1", resp.Header.Get("X-Page"))
	assert.Equal(t, "10", resp.Header.Get("X-Page-Size"))

	resp, env = call(t, app, http.MethodGet, "/notes?title=nomatch", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeNotes(t, env))
	assert.Equal(t, "0", resp.Header.Get("X-Total-Count"))
}

func TestScenario_PartialUpdateKeepsOtherFields(t *testing.T) {
	app := newTestApp(t)

	tokenA := register(t, app, "12345678", "Ada", "ada@example.edu")
	n1 := createMidterm(t, app, tokenA)

	resp, env := call(t, app, http.MethodPut, fmt.Sprintf("/notes/%d", n1.Id), tokenA, map[string]int{"year": 2025})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)

	resp, env = call(t, app, http.MethodGet, fmt.Sprintf("/notes/%d", n1.Id), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got noteBody
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, n1.Title, got.Title)
	assert.Equal(t, n1.Class, got.Class)
	assert.Equal(t, n1.Topic, got.Topic)
	assert.Equal(t, n1.Content, got.Content)
}

func TestScenario_NonOwnerCannotDelete(t *testing.T) {
	app := newTestApp(t)

	tokenA := register(t, app, "12345678", "Ada", "ada@example.edu")
	n1 := createMidterm(t, app, tokenA)
	tokenB := register(t, app, "87654321", "Bob", "bob@example.edu")

	resp, env := call(t, app, http.MethodDelete, fmt.Sprintf("/notes/%d", n1.Id), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)

	resp, _ = call(t, app, http.MethodGet, fmt.Sprintf("/notes/%d", n1.Id), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = call(t, app, http.MethodDelete, fmt.Sprintf("/notes/%d", n1.Id), tokenA, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Nil(t, env)
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)
	token := register(t, app, "12345678", "Ada", "ada@example.edu")

	resp, env := call(t, app, http.MethodPost, "/auth/register", "", map[string]string{
		"cwid": "12345678", "firstName": "A", "lastName": "B", "email": "new@example.edu", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "duplicate_cwid", env.Reason)

	resp, env = call(t, app, http.MethodPost, "/auth/register", "", map[string]string{
		"cwid": "1234", "firstName": "A", "lastName": "B", "email": "x@example.edu", "password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "cwid must be exactly 8 digits", env.Message)

	resp, env = call(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ada@example.edu", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email or password", env.Message)

	resp, env = call(t, app, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me struct {
		CWID       string `json:"cwid"`
		NotesCount int64  `json:"notesCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "12345678", me.CWID)

	resp, env = call(t, app, http.MethodGet, "/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "authentication required", env.Message)

	resp, _ = call(t, app, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRatingsAndProfiles(t *testing.T) {
	app := newTestApp(t)
	tokenA := register(t, app, "12345678", "Ada", "ada@example.edu")
	n1 := createMidterm(t, app, tokenA)
	tokenB := register(t, app, "87654321", "Bob", "bob@example.edu")

	ratingsPath := fmt.Sprintf("/api/notes/%d/ratings", n1.Id)

	resp, env := call(t, app, http.MethodPost, ratingsPath, tokenA, map[string]int{"value": 5})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "own_note", env.Reason)

	resp, _ = call(t, app, http.MethodPost, ratingsPath, tokenB, map[string]int{"value": 4})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env = call(t, app, http.MethodPost, ratingsPath, tokenB, map[string]int{"value": 5})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "already_rated", env.Reason)

	resp, env = call(t, app, http.MethodGet, ratingsPath, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary struct {
		Average float64 `json:"average"`
		Count   int64   `json:"count"`
		Stars   string  `json:"stars"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 4.0, summary.Average)
	assert.Equal(t, int64(1), summary.Count)
	assert.Equal(t, "★★★★☆", summary.Stars)

	resp, env = call(t, app, http.MethodGet, "/api/notes/popular", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeNotes(t, env), 1)

	resp, env = call(t, app, http.MethodGet, "/users/12345678", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile struct {
		FullName   string `json:"fullName"`
		NotesCount int64  `json:"notesCount"`
		Email      string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Ada Student", profile.FullName)
	assert.Equal(t, int64(1), profile.NotesCount)
	assert.Empty(t, profile.Email)

	resp, env = call(t, app, http.MethodGet, "/users/12345678/notes?pageSize=5", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeNotes(t, env), 1)
	assert.Equal(t, "5", resp.Header.Get("X-Page-Size"))

	resp, env = call(t, app, http.MethodPut, "/users/profile", tokenB, map[string]string{"firstName": "Robert"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "Robert", user.FirstName)
	assert.Equal(t, "Student", user.LastName)
}

func TestListTreatsBlankParamsAsAbsent(t *testing.T) {
	app := newTestApp(t)
	tokenA := register(t, app, "12345678", "Ada", "ada@example.edu")
	createMidterm(t, app, tokenA)

	for _, path := range []string{"/notes?year=", "/notes?page=", "/notes?pageSize=", "/notes?year=&page=&pageSize=&title="} {
		t.Run(path, func(t *testing.T) {
			resp, env := call(t, app, http.MethodGet, path, "", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
			assert.Len(t, decodeNotes(t, env), 1)
			assert.Equal(t, "1", resp.Header.Get("X-Total-Count"))
			assert.Equal(t, "1", resp.Header.Get("X-Page"))
			assert.Equal(t, "10", resp.Header.Get("X-Page-Size"))
		})
	}

	resp, env := call(t, app, http.MethodGet, "/notes?year=2024", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeNotes(t, env), 1)

	resp, env = call(t, app, http.MethodGet, "/notes?year=1999", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeNotes(t, env))

	resp, env = call(t, app, http.MethodGet, "/notes?page=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "page must be a whole number", env.Message)
}

func TestListSortOrderIgnoresCase(t *testing.T) {
	app := newTestApp(t)
	tokenA := register(t, app, "12345678", "Ada", "ada@example.edu")
	createMidterm(t, app, tokenA)

	for _, order := range []string{"Asc", "DESC", "asc"} {
		resp, env := call(t, app, http.MethodGet, "/notes?sortBy=title&sortOrder="+order, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
		assert.Len(t, decodeNotes(t, env), 1)
	}

	resp, env := call(t, app, http.MethodGet, "/notes?sortOrder=sideways", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "sortOrder must be one of: asc desc", env.Message)
}

func TestListValidationAndHealth(t *testing.T) {
	app := newTestApp(t)

	resp, _ := call(t, app, http.MethodGet, "/notes?pageSize=101", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/notes?page=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/notes/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/notes/42", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/notes", "", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get(fiber.HeaderXRequestID))
}
