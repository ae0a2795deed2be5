package middleware

import (
	"net/http"
	"runtime/debug"

	perr "phishguard/internal/platform/errors"
	"phishguard/internal/platform/logger"
	pnet "phishguard/internal/platform/net"
	phttp "phishguard/internal/platform/net/http"
)

// RecoverJSON turns a handler panic into the standard 500 envelope with code panic
// The panic value and stack go to the log only; http.ErrAbortHandler is re-raised
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			switch v {
			case nil:
				return
			case http.ErrAbortHandler:
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			id := pnet.RequestID(r.Context())
			if id != "" {
				w.Header().Set("X-Request-ID", id)
			}
			status, env := phttp.ErrorEnvelope(perr.PanicErrf("internal error"), id)
			phttp.JSON(w, status, env)
		}()
		next.ServeHTTP(w, r)
	})
}
