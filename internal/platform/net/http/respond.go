// Package http provides helpers for writing JSON responses with a consistent envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "shopsense/internal/platform/errors"
	pnet "shopsense/internal/platform/net"
)

// Envelope is the standard response body for all endpoints
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	reqID := pnet.RequestID(r.Context())
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wr.Code,
		Error:      wr.Message,
		Field:      wr.Field,
		RequestID:  reqID,
	})
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	// optional headers if a handler wants to add any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	// allow header overrides
	if resp.Header != nil {
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	// If Body is an error, derive status from the error before building the envelope
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}

	reqID := pnet.RequestID(r.Context())
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  reqID,
		Data:       resp.Body,
	})
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }
