package httpkit

import (
	"compress/flate"
	"net/http"

	"stencil/internal/modkit/scope"
	pnet "stencil/internal/platform/net"
	phttp "stencil/internal/platform/net/http"
	"stencil/internal/platform/net/middleware"
	"stencil/internal/platform/store"
)

// CommonStack returns a baseline per module middleware slice
// compose with your auth or tenancy middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.Logger(),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * 1e9), // 30s
	}
}

// Identity wires the identity middleware to the platform JSON writer and
// stamps the resolved actor and session into the request scope and into the
// store context, so repos and the SQL tracer see who is asking
func Identity(p middleware.IdentityPort) func(http.Handler) http.Handler {
	// middleware expects write func(w http.ResponseWriter, status int, body any)
	// use phttp.JSON which matches that signature
	inner := middleware.Identity(p, phttp.JSON)
	return func(next http.Handler) http.Handler {
		return inner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if aid := pnet.ActorID(ctx); aid != "" {
				ctx = scope.With(ctx, map[string]string{
					ScopeActor:   aid,
					ScopeSession: pnet.SessionID(ctx),
				})
				ctx = store.WithActor(ctx, aid)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		}))
	}
}
