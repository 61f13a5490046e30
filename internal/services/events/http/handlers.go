// Package http provides http transport for the detection event log
package http

import (
	stdhttp "net/http"

	"stencil/internal/modkit/httpkit"
	"stencil/internal/services/events/domain"
)

// Register mounts event endpoints on the given router
func Register(r httpkit.Router, reader domain.ReaderPort) {
	h := &handlers{reader: reader}
	httpkit.PostJSON[domain.RecentInput](r, "/recent", h.recent)
}

type handlers struct{ reader domain.ReaderPort }

// swagger:route POST /events/recent Events eventsRecent
// @Summary Recent detection events, newest first
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body domain.RecentInput true "Filters"
// @Success 200 {array} domain.DetectionEvent "ok"
// @Router /events/recent [post]
func (h *handlers) recent(r *stdhttp.Request, in domain.RecentInput) (any, error) {
	return h.reader.Recent(r.Context(), in)
}
