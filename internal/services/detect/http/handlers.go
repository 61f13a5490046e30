// Package http provides http transport for schema detection
package http

import (
	stdhttp "net/http"

	"stencil/internal/modkit/httpkit"
	"stencil/internal/services/detect/domain"
)

// Register mounts detection endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.DetectInput](r, "/", h.detect)
	httpkit.Delete(r, "/session", h.clearSession)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /detect Detect detectSchema
// @Summary Detect the input schema of a serving endpoint and synthesize an example payload
// @Tags Detect
// @Accept json
// @Produce json
// @Param payload body domain.DetectInput true "Endpoint to detect"
// @Success 200 {object} domain.Result "ok"
// @Router /detect [post]
func (h *handlers) detect(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	res := h.svc.Detect(r.Context(), domain.Request{
		SessionID:     httpkit.MustSession(r),
		ActorID:       httpkit.MustActor(r),
		EndpointName:  in.EndpointName,
		CorrelationID: in.CorrelationID,
	})
	return res, nil
}

// swagger:route DELETE /detect/session Detect detectClearSession
// @Summary Clear the caller's session cache and invoke blocks
// @Tags Detect
// @Produce json
// @Success 200 {object} ClearedResponse "ok"
// @Router /detect/session [delete]
func (h *handlers) clearSession(r *stdhttp.Request) (any, error) {
	sess := httpkit.MustSession(r)
	h.svc.ClearSession(sess)
	return ClearedResponse{Cleared: true}, nil
}

// ClearedResponse acknowledges a session reset
type ClearedResponse struct {
	Cleared bool `json:"cleared" example:"true"`
}
