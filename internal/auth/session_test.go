package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/internal/domain"
)

func newTestCodec() *SessionCodec {
	return NewSessionCodec("test-hash-key", "test-block-key", 7*24*time.Hour, false)
}

func TestSessionCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec()

	user := &domain.User{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Name:      "Ana",
		Email:     "ana@example.com",
	}

	rec := httptest.NewRecorder()
	require.NoError(t, codec.Issue(rec, user))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	sessionUser, err := codec.Read(req)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sessionUser.ID)
	assert.Equal(t, "Ana", sessionUser.Name)
	assert.Equal(t, "ana@example.com", sessionUser.Email)
}

func TestSessionCodec_Read_NoCookie(t *testing.T) {
	codec := newTestCodec()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := codec.Read(req)
	assert.Error(t, err)
}

func TestSessionCodec_Read_Tampered(t *testing.T) {
	codec := newTestCodec()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-valid-session"})

	_, err := codec.Read(req)
	assert.Error(t, err)
}

func TestSessionCodec_Read_DifferentKeys(t *testing.T) {
	issuer := NewSessionCodec("key-a", "block-a", time.Hour, false)
	reader := NewSessionCodec("key-b", "block-b", time.Hour, false)

	user := &domain.User{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Name:      "Ana",
		Email:     "ana@example.com",
	}

	rec := httptest.NewRecorder()
	require.NoError(t, issuer.Issue(rec, user))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	_, err := reader.Read(req)
	assert.Error(t, err)
}

func TestSessionCodec_Clear(t *testing.T) {
	codec := newTestCodec()

	rec := httptest.NewRecorder()
	codec.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
