package pkg

import (
	"net/http"
	"time"
)

const (
	SessionCookieName = "user_session"
	sessionCookieTTL  = 24 * time.Hour
)

// EnsureSessionCookie returns the session id carried by the request, issuing a new cookie when there is none.
func EnsureSessionCookie(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && IsSessionID(cookie.Value) {
		return cookie.Value
	}

	sessionID := GenerateNewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sessionID
}
