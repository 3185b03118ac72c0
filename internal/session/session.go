package session

import (
	"context"
	"net/http"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Data is the server-side session payload referenced by the cookie token.
type Data struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Store keeps sessions keyed by an opaque token. The idle timeout is
// sliding: Touch pushes the expiry forward by the store's TTL.
type Store interface {
	Create(ctx context.Context, data Data) (string, error)
	Get(ctx context.Context, token string) (Data, bool, error)
	Touch(ctx context.Context, token string) error
	Destroy(ctx context.Context, token string) error
}

const tokenLength = 32

func newToken() (string, error) {
	return gonanoid.New(tokenLength)
}

func WriteCookie(w http.ResponseWriter, name, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	})
}

func ClearCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func TokenFromRequest(r *http.Request, cookieName string) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
