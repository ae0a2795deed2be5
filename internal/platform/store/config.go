package store

import (
	"time"

	"phishguard/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot knobs
	ConnectRetries int           // ping attempts before giving up
	PingTimeout    time.Duration // per attempt
}

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
)

// FromEnv reads PGSQL_* keys under c
// PG is enabled only when a URL is present
func FromEnv(app string, c config.Conf) Config {
	pc := c.Prefix("PGSQL_")
	url := pc.MayString("URL", "")
	return Config{
		AppName: app,
		PG: PGConfig{
			Enabled:        url != "",
			URL:            url,
			MaxConns:       int32(pc.MayInt("MAX_CONNS", 4)),
			LogSQL:         pc.MayBool("LOG_SQL", false),
			SlowQueryMs:    pc.MayInt("SLOW_MS", 500),
			ConnectRetries: pc.MayInt("CONNECT_RETRIES", defaultConnectRetries),
			PingTimeout:    pc.MayDuration("PING_TIMEOUT", defaultPingTimeout),
		},
	}
}

func (c PGConfig) retries() int {
	if c.ConnectRetries <= 0 {
		return defaultConnectRetries
	}
	return c.ConnectRetries
}

func (c PGConfig) pingTimeout() time.Duration {
	if c.PingTimeout <= 0 {
		return defaultPingTimeout
	}
	return c.PingTimeout
}
