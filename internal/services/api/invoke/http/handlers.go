// Package http provides http transport for endpoint invocation
package http

import (
	stdhttp "net/http"

	"stencil/internal/modkit/httpkit"
	"stencil/internal/services/api/invoke/domain"
)

// Register mounts the invoke endpoint on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.InvokeInput](r, "/", h.invoke)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /invoke Invoke invokeEndpoint
// @Summary Forward a payload to a serving endpoint
// @Tags Invoke
// @Accept json
// @Produce json
// @Param payload body domain.InvokeInput true "Endpoint and payload"
// @Success 200 {object} domain.InvokeResponse "ok"
// @Failure 403 {object} httpkit.Envelope "invocation blocked for this session"
// @Router /invoke [post]
func (h *handlers) invoke(r *stdhttp.Request, in domain.InvokeInput) (any, error) {
	return h.svc.Invoke(r.Context(), httpkit.MustSession(r), in)
}
