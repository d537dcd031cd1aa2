package httpkit

import (
	"net/http"

	phttp "shopsense/internal/platform/net/http"
)

// GetJSON mounts a pure JSON handler under GET
func GetJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, phttp.JSONHandler(h))
}

// PostJSON mounts a pure JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// PutJSON mounts a pure JSON handler under PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, phttp.JSONHandler(h))
}

// Body-less JSON endpoints

// Get registers a no-body handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.JSONHandlerNoBody(h))
}

// Post registers a no-body handler and uses the envelope adapter
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.JSONHandlerNoBody(h))
}

// Delete mounts a body-less JSON handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, phttp.JSONHandlerNoBody(h))
}
