package http

import (
	"context"
	"net/http"
)

// Authentication is an upstream concern; the gateway forwards the
// verified account id in this header and we trust it as-is.
const userIDHeader = "X-User-ID"

type userIDKey struct{}

// Identity copies the forwarded user id into the request context.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(userIDHeader); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey{}, id))
		}
		next.ServeHTTP(w, r)
	})
}

// UserID returns the authenticated user id, or "" when none was
// forwarded.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
