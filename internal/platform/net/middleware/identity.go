package middleware

import (
	"net/http"

	pnet "stencil/internal/platform/net"
)

// IdentityPort is a tiny seam the identity layer implements
type IdentityPort interface {
	// Parse returns the caller identity and UI session id from the request or an error
	Parse(r *http.Request) (actorID string, sessionID string, err error)
}

// Identity resolves the caller identity on every request. It is a no-op until
// wired with a port
func Identity(p IdentityPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			actor, sess, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithActor(r.Context(), actor)
			ctx = pnet.WithSession(ctx, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
