// Package http provides http transport for settings
package http

import (
	stdhttp "net/http"

	"shopsense/internal/modkit/httpkit"
	dom "shopsense/internal/services/settings/domain"
)

// Register mounts settings endpoints on the given router
func Register(r httpkit.Router, svc dom.AdminPort) {
	h := &handlers{svc: svc}

	// current snapshot
	httpkit.Get(r, "/settings", h.get)

	// partial update; the whole batch is rejected when any field is invalid
	httpkit.PostJSON[map[string]any](r, "/settings", h.update)
}

type handlers struct{ svc dom.AdminPort }

func (h *handlers) get(_ *stdhttp.Request) (any, error) {
	return h.svc.Get(), nil
}

func (h *handlers) update(r *stdhttp.Request, fields map[string]any) (any, error) {
	return h.svc.Update(r.Context(), fields)
}
