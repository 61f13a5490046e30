// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"net/http"
	"strings"

	perrs "stencil/internal/platform/errors"
	pnet "stencil/internal/platform/net"
)

// Forwarded identity headers injected by the workspace proxy in front of the
// app. The session header is set by the UI itself (one id per browser tab)
const (
	HeaderForwardedUser  = "X-Forwarded-User"
	HeaderForwardedEmail = "X-Forwarded-Email"
	HeaderSessionID      = "X-Session-Id"
)

// AnonymousActor is the identity assumed when the proxy headers are absent
// and the port does not require one (local dev, curl)
const AnonymousActor = "anonymous"

// ForwardedPort implements middleware.IdentityPort by reading the forwarded
// identity headers. When no session header is present each request becomes
// its own session so detection results never bleed across callers
type ForwardedPort struct {
	requireActor bool
}

// NewForwardedPort builds a ForwardedPort
// requireActor rejects requests that carry no forwarded identity
func NewForwardedPort(requireActor bool) *ForwardedPort {
	return &ForwardedPort{requireActor: requireActor}
}

// Parse extracts the actor and session ids from the request headers
func (p *ForwardedPort) Parse(r *http.Request) (string, string, error) {
	actor := strings.TrimSpace(r.Header.Get(HeaderForwardedUser))
	if actor == "" {
		actor = strings.TrimSpace(r.Header.Get(HeaderForwardedEmail))
	}
	if actor == "" {
		if p.requireActor {
			return "", "", perrs.Unauthorizedf("missing forwarded identity")
		}
		actor = AnonymousActor
	}

	sess := strings.TrimSpace(r.Header.Get(HeaderSessionID))
	if sess == "" {
		sess = pnet.RequestID(r.Context())
	}
	return actor, sess, nil
}
