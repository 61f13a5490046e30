// Package http provides http transport for user preferences
package http

import (
	stdhttp "net/http"

	"stencil/internal/modkit/httpkit"
	"stencil/internal/services/api/prefs/domain"
)

// Register mounts preference endpoints on the given router. Preference rows
// belong to a real user, so the whole group requires a forwarded identity
// even when the rest of the API accepts anonymous callers
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Protected(r, httpkit.NewForwardedPort(true), func(pr httpkit.Router) {
		httpkit.PostJSON[domain.GetInput](pr, "/get", h.get)
		httpkit.PostJSON[domain.SetInput](pr, "/set", h.set)
		httpkit.PostJSON[domain.DeleteInput](pr, "/delete", h.del)
		httpkit.PostJSON[domain.ListInput](pr, "/list", h.list)
	})
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /prefs/get Prefs prefsGet
// @Summary Read one preference for the acting user
// @Tags Prefs
// @Accept json
// @Produce json
// @Param payload body domain.GetInput true "Key"
// @Success 200 {object} domain.Pref "ok"
// @Router /prefs/get [post]
func (h *handlers) get(r *stdhttp.Request, in domain.GetInput) (any, error) {
	return h.svc.Get(r.Context(), httpkit.MustActor(r), in)
}

// swagger:route POST /prefs/set Prefs prefsSet
// @Summary Upsert one preference for the acting user
// @Tags Prefs
// @Accept json
// @Produce json
// @Param payload body domain.SetInput true "Key and JSON value"
// @Success 200 {object} domain.Pref "ok"
// @Router /prefs/set [post]
func (h *handlers) set(r *stdhttp.Request, in domain.SetInput) (any, error) {
	return h.svc.Set(r.Context(), httpkit.MustActor(r), in)
}

// swagger:route POST /prefs/delete Prefs prefsDelete
// @Summary Delete one preference for the acting user
// @Tags Prefs
// @Accept json
// @Produce json
// @Param payload body domain.DeleteInput true "Key"
// @Success 200 {object} domain.DeletedResponse "ok"
// @Router /prefs/delete [post]
func (h *handlers) del(r *stdhttp.Request, in domain.DeleteInput) (any, error) {
	if err := h.svc.Delete(r.Context(), httpkit.MustActor(r), in); err != nil {
		return nil, err
	}
	return domain.DeletedResponse{Deleted: true}, nil
}

// swagger:route POST /prefs/list Prefs prefsList
// @Summary List the acting user's preferences
// @Tags Prefs
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Optional key prefix"
// @Success 200 {array} domain.Pref "ok"
// @Router /prefs/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), httpkit.MustActor(r), in)
}
