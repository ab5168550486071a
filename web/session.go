package web

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	sessionCookie = "sid"
	sessionHeader = "X-Session-ID"
)

type sessionKey struct{}

// withSession makes sure every request has a session id, issuing a new
// cookie when the browser did not send a valid one.
func withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}

		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withAPISession picks up a session id from the X-Session-ID header or the
// sid cookie but never issues one. Requests without a session are served
// without the roster cache.
func withAPISession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if h := r.Header.Get(sessionHeader); h != "" {
			if _, err := uuid.Parse(h); err == nil {
				id = h
			}
		}
		if id == "" {
			if c, err := r.Cookie(sessionCookie); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}
