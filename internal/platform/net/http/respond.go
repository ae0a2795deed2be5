// Package http writes every response, success or failure, in one JSON envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "phishguard/internal/platform/errors"
	"phishguard/internal/platform/logger"
	pnet "phishguard/internal/platform/net"
)

// Envelope is the body of every JSON response
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON encodes v with status; encode failures after the header is out are dropped
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorEnvelope derives status and body from err's code
func ErrorEnvelope(err error, reqID string) (int, Envelope) {
	status := perr.HTTPStatus(err)
	wire := perr.WireFrom(err)
	return status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wire.Code,
		Error:      wire.Message,
		Field:      wire.Field,
		RequestID:  reqID,
	}
}

// Response is what a return-style handler hands back
// An error Body wins over Status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK wraps data in a 200
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error lets err pick the status
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a return-style handler to net/http
func Handle(h func(*stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).writeTo(w, r)
	}
}

func (resp Response) writeTo(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())

	if err, ok := resp.Body.(error); ok && err != nil {
		status, env := ErrorEnvelope(err, reqID)
		if status >= stdhttp.StatusInternalServerError {
			logger.C(r.Context()).Error().Err(err).
				Stringer("code", env.Code).
				Int("status", status).
				Msg("request failed")
		}
		JSON(w, status, env)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  reqID,
		Data:       resp.Body,
	})
}
