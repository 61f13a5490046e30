// Package http provides http transport for the endpoint catalog
package http

import (
	stdhttp "net/http"

	"stencil/internal/modkit/httpkit"
	"stencil/internal/services/api/catalog/domain"
)

// Register mounts catalog endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.EndpointsInput](r, "/endpoints", h.endpoints)
	httpkit.PostJSON[domain.EndpointInput](r, "/endpoint", h.endpoint)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /catalog/endpoints Catalog catalogEndpoints
// @Summary Serving endpoints visible to the caller, paginated by name
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body domain.EndpointsInput true "Page"
// @Success 200 {object} domain.EndpointsPage "ok"
// @Router /catalog/endpoints [post]
func (h *handlers) endpoints(r *stdhttp.Request, in domain.EndpointsInput) (any, error) {
	return h.svc.Endpoints(r.Context(), in)
}

// swagger:route POST /catalog/endpoint Catalog catalogEndpoint
// @Summary Metadata for one serving endpoint
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body domain.EndpointInput true "Endpoint name"
// @Success 200 {object} serving.Endpoint "ok"
// @Router /catalog/endpoint [post]
func (h *handlers) endpoint(r *stdhttp.Request, in domain.EndpointInput) (any, error) {
	return h.svc.Endpoint(r.Context(), in.Name)
}
