package server

import (
	"net/http"

	"github.com/google/uuid"
)

// clientCookie identifies a browser across sessions; theme preferences are
// keyed by it.
const clientCookie = "showcase_client"

const clientCookieMaxAge = 365 * 24 * 60 * 60

// existingClientID returns the client id carried by r, if any.
func existingClientID(r *http.Request) (string, bool) {
	c, err := r.Cookie(clientCookie)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

// clientID returns the client id of r, issuing a new one when absent.
func clientID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := existingClientID(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     clientCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   clientCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
