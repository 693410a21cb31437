package auth

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"

	"taskboard-api/internal/domain"
)

// CookieName is the session cookie set on login
const CookieName = "session"

// SessionUser is the identity stored inside the session cookie
type SessionUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type sessionPayload struct {
	User SessionUser `json:"user"`
}

// SessionCodec encodes and decodes the signed, encrypted session cookie
type SessionCodec struct {
	codec  *securecookie.SecureCookie
	maxAge time.Duration
	secure bool
}

// NewSessionCodec builds a codec from the configured key material.
// Keys are stretched to the required length with SHA-256 so operators can
// supply passphrases of any length. Empty keys fall back to random ones,
// which invalidates all sessions on restart.
func NewSessionCodec(hashKey, blockKey string, maxAge time.Duration, secure bool) *SessionCodec {
	sc := securecookie.New(deriveKey(hashKey), deriveKey(blockKey))
	sc.MaxAge(int(maxAge.Seconds()))
	sc.SetSerializer(securecookie.JSONEncoder{})

	return &SessionCodec{
		codec:  sc,
		maxAge: maxAge,
		secure: secure,
	}
}

func deriveKey(key string) []byte {
	if key == "" {
		return securecookie.GenerateRandomKey(32)
	}
	sum := sha256.Sum256([]byte(key))
	return sum[:]
}

// Issue writes the session cookie for the given user
func (s *SessionCodec) Issue(w http.ResponseWriter, user *domain.User) error {
	payload := sessionPayload{
		User: SessionUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	}

	encoded, err := s.codec.Encode(CookieName, payload)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read decodes the session cookie from the request. Returns an error for
// absent, tampered or expired cookies; callers treat any error as "not
// logged in".
func (s *SessionCodec) Read(r *http.Request) (*SessionUser, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, err
	}

	var payload sessionPayload
	if err := s.codec.Decode(CookieName, cookie.Value, &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}

// Clear expires the session cookie
func (s *SessionCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
