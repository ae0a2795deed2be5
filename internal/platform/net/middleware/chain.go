// Package middleware assembles the http chain every phishguard api runs behind
// chi and go-chi/cors do the work; callers never see their types
package middleware

import (
	"compress/flate"
	"io"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
	"github.com/klauspost/compress/gzip"

	pnet "phishguard/internal/platform/net"
	pstrings "phishguard/internal/platform/strings"
)

// StackOptions tunes the api chain
type StackOptions struct {
	Timeout     time.Duration // 0 disables the request deadline
	Slow        time.Duration // access log warns at or above this
	MaxInflight int           // 0 disables throttling
	CORS        *CORSOptions  // nil disables CORS
}

// Stack is the ordered chain, outermost first
// Recovery sits inside the access log so a panic still gets logged with its 500
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		chimw.RealIP,
		RequestID(),
		AccessLog(AccessLogOptions{Slow: o.Slow}),
		RecoverJSON,
	}
	if o.CORS != nil {
		chain = append(chain, CORS(*o.CORS))
	}
	if o.MaxInflight > 0 {
		chain = append(chain, chimw.Throttle(o.MaxInflight))
	}
	if o.Timeout > 0 {
		chain = append(chain, chimw.Timeout(o.Timeout))
	}
	return append(chain, Compress(flate.DefaultCompression), chimw.NoCache)
}

// RequestID keeps an inbound X-Request-ID or mints one, echoes it on the response,
// and hands it to the request scoped logger
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		tag := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := pnet.RequestID(r.Context())
			if id != "" {
				w.Header().Set("X-Request-ID", id)
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithRequest(r.Context(), id)))
		})
		return chimw.RequestID(tag)
	}
}

// Compress negotiates gzip or deflate; gzip goes through klauspost's encoder
func Compress(level int) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level, "application/json", "text/plain")
	c.SetEncoder("gzip", func(w io.Writer, level int) io.Writer {
		gw, err := gzip.NewWriterLevel(w, level)
		if err != nil {
			return gzip.NewWriter(w)
		}
		return gw
	})
	return c.Handler
}

// AllowContentType rejects bodies with any other media type with 415
func AllowContentType(types ...string) func(http.Handler) http.Handler {
	return chimw.AllowContentType(types...)
}

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// CORSOptions is the subset of go-chi/cors the api exposes
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS fills unset lists with what the predict api needs
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
