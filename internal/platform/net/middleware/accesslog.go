package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"phishguard/internal/platform/logger"
)

// AccessLogOptions tunes AccessLog
type AccessLogOptions struct {
	Slow time.Duration // 0 never warns on latency
}

// statusRecorder remembers what the handler wrote
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	n, err := s.ResponseWriter.Write(p)
	s.written += n
	return n, err
}

// AccessLog writes one line per request on the request scoped logger
// 5xx logs at error, slow requests at warn, the rest at info
func AccessLog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)
			took := time.Since(start)

			l := logger.C(r.Context())
			lvl := zerolog.InfoLevel
			switch {
			case rec.status >= http.StatusInternalServerError:
				lvl = zerolog.ErrorLevel
			case opt.Slow > 0 && took >= opt.Slow:
				lvl = zerolog.WarnLevel
			}
			l.WithLevel(lvl).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Int("bytes", rec.written).
				Dur("elapsed", took).
				Str("remote", r.RemoteAddr).
				Msg("request done")
		})
	}
}
