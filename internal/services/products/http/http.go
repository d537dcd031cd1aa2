// Package http provides http transport for the product catalog
package http

import (
	stdhttp "net/http"

	"shopsense/internal/modkit/httpkit"
	dom "shopsense/internal/services/products/domain"
)

// Register mounts catalog endpoints on the given router
func Register(r httpkit.Router, svc dom.AdminPort) {
	h := &handlers{svc: svc}

	httpkit.Get(r, "/barcodes", h.list)
	httpkit.PostJSON[dom.CreateInput](r, "/barcodes", h.create)
	httpkit.Get(r, "/barcodes/{barcode}", h.get)
	httpkit.PutJSON[dom.UpdateInput](r, "/barcodes/{barcode}", h.update)
	httpkit.Delete(r, "/barcodes/{barcode}", h.del)
}

type handlers struct{ svc dom.AdminPort }

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

func (h *handlers) create(r *stdhttp.Request, in dom.CreateInput) (any, error) {
	rec, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(rec), nil
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.FindByBarcode(r.Context(), httpkit.Param(r, "barcode"))
}

func (h *handlers) update(r *stdhttp.Request, in dom.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), httpkit.Param(r, "barcode"), in)
}

func (h *handlers) del(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), httpkit.Param(r, "barcode")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
