package httpkit

import (
	"net/http"

	"stencil/internal/modkit/scope"
	perrs "stencil/internal/platform/errors"
	pnet "stencil/internal/platform/net"
)

// Scope keys the identity middleware stamps for cross boundary consumers
const (
	ScopeActor   = "actor"
	ScopeSession = "session"
)

// Actor returns the resolved caller identity from the request context.
// It falls back to the request scope for contexts built outside the
// platform net middleware
func Actor(r *http.Request) (string, error) {
	if aid := pnet.ActorID(r.Context()); aid != "" {
		return aid, nil
	}
	if aid, ok := scope.Get(r.Context(), ScopeActor); ok && aid != "" {
		return aid, nil
	}
	return "", perrs.Unauthorizedf("missing caller identity")
}

// Session returns the resolved UI session id from the request context,
// with the same scope fallback as Actor
func Session(r *http.Request) (string, error) {
	if sid := pnet.SessionID(r.Context()); sid != "" {
		return sid, nil
	}
	if sid, ok := scope.Get(r.Context(), ScopeSession); ok && sid != "" {
		return sid, nil
	}
	return "", perrs.Unauthorizedf("missing session id")
}

// MustActor returns the caller identity or panics
// only use on routes behind the identity middleware
func MustActor(r *http.Request) string {
	aid, err := Actor(r)
	if err != nil {
		panic(err)
	}
	return aid
}

// MustSession returns the session id or panics
// only use on routes behind the identity middleware
func MustSession(r *http.Request) string {
	sid, err := Session(r)
	if err != nil {
		panic(err)
	}
	return sid
}
