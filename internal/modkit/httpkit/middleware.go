package httpkit

import (
	"net/http"
	"time"

	"phishguard/internal/platform/config"
	"phishguard/internal/platform/net/middleware"
)

// StackFromConfig reads the per process middleware knobs
// c is usually config.New().Prefix("CORE_API_")
func StackFromConfig(c config.Conf) middleware.StackOptions {
	o := middleware.StackOptions{
		Timeout:     c.MayDuration("TIMEOUT", 30*time.Second),
		Slow:        c.MayDuration("SLOW", 500*time.Millisecond),
		MaxInflight: c.MayInt("MAX_INFLIGHT", 0),
	}
	if origins := c.MayCSV("CORS_ORIGINS", nil); len(origins) > 0 {
		o.CORS = &middleware.CORSOptions{AllowedOrigins: origins, MaxAge: 300}
	}
	return o
}

// CommonStack returns the baseline api middleware slice plus a /health heartbeat
func CommonStack(c config.Conf) []func(http.Handler) http.Handler {
	return append(middleware.Stack(StackFromConfig(c)), middleware.Heartbeat("/health"))
}
