package http

import (
	"net/http"

	"phishguard/internal/platform/net/http/bind"
)

// JSONHandler decodes and validates the body into T, calls fn, and wraps the result in a 200 envelope
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
