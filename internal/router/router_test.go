package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/config"
	"taskboard-api/internal/database"
	"taskboard-api/internal/metrics"
)

// setupTestRouter builds a router backed by an in-memory database
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.SafeAutoMigrate(db, zap.NewNop()))

	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	sessions := auth.NewSessionCodec("test-hash-key", "test-block-key", time.Hour, false)

	return Setup(Config{
		DB:             db,
		Logger:         zap.NewNop(),
		Metrics:        m,
		Sessions:       sessions,
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		BasePath:       "/api",
		AllowedOrigins: []string{"http://localhost:3000"},
		Admin: config.AdminConfig{
			Name:         "Administrador",
			Email:        "admin@edusqa.com",
			PasswordHash: "$2a$10$XOPbrlUPQdwdJUpSrIF6X.LbE14qsMmKGhM1A8W9iqaG3vv1BD7WC",
		},
	})
}

// envelope mirrors the JSON response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, cookies []*http.Cookie, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func TestHealthEndpoint(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil, nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/metrics", nil, nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestAuthenticationRequired(t *testing.T) {
	r := setupTestRouter(t)

	for _, path := range []string{"/api/projects", "/api/users", "/api/stats/projects"} {
		w := doJSON(t, r, http.MethodGet, path, nil, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "expected 401 for %s", path)
	}
}

func TestRegisterLoginProjectTaskFlow(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Ana Torres",
		"email":    "ana@example.com",
		"password": "s3cret!",
	}, nil, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "s3cret!",
	}, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Create a project with the session cookie
	w = doJSON(t, r, http.MethodPost, "/api/projects", map[string]string{
		"name":        "Website redesign",
		"description": "Full redesign of the marketing site",
	}, cookies, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var project struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, w, &project)
	assert.Equal(t, "Website redesign", project.Name)

	// The project shows up in the listing
	w = doJSON(t, r, http.MethodGet, "/api/projects", nil, cookies, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Website redesign")

	// Create a task; the default group is created on demand
	w = doJSON(t, r, http.MethodPost, "/api/tasks", map[string]string{
		"projectId": project.ID,
		"title":     "Draft landing page copy",
	}, cookies, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%s/groups", project.ID), nil, cookies, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tareas")
	assert.Contains(t, w.Body.String(), "Draft landing page copy")

	// Statistics over the new project
	w = doJSON(t, r, http.MethodGet, "/api/stats/projects", nil, cookies, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestBearerTokenFallback(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Luis Vega",
		"email":    "luis@example.com",
		"password": "s3cret!",
	}, nil, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "luis@example.com",
		"password": "s3cret!",
	}, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	w = doJSON(t, r, http.MethodPost, "/api/auth/token", nil, cookies, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var token struct {
		Token string `json:"token"`
	}
	decodeData(t, w, &token)
	require.NotEmpty(t, token.Token)

	// The API token works without the session cookie
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, nil, token.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "luis@example.com")

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Eva Ruiz",
		"email":    "eva@example.com",
		"password": "s3cret!",
	}, nil, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "eva@example.com",
		"password": "s3cret!",
	}, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", nil, w.Result().Cookies(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}
