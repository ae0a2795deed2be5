// Package httpkit is the routing surface service modules use instead of importing the platform http package
package httpkit

import (
	"net/http"

	phttp "phishguard/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router
	// Handler is the platform handler type
	Handler = phttp.Handler
	// Response is what Call style handlers may return to pick their own status
	Response = phttp.Response
)

// Call adapts a body-less handler; a plain value is wrapped in a 200 envelope
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}
