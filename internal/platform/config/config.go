// Package config reads phishguard settings from environment variables
//
// Keys are composed from prefixes, so a module handed Prefix("CORE_CORPUS_")
// reads CORE_CORPUS_QUERY_TIMEOUT as MayDuration("QUERY_TIMEOUT", ...)
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"phishguard/internal/platform/logger"
)

// Conf is a prefixed view over the environment; the zero value reads unprefixed keys
type Conf struct{ prefix string }

func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) value(key string) string { return strings.TrimSpace(os.Getenv(c.key(key))) }

// may parses key with parse; blank keeps def, a parse failure warns and keeps def
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.value(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).
			Msg("unparsable env value, using default")
		return def
	}
	return v
}

// MustString panics through the logger when key is unset or blank
func (c Conf) MustString(key string) string {
	v := c.value(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

func (c Conf) MayString(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits on commas and drops blank items; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.value(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value as written when it case-insensitively matches one of allowed
// Anything else panics; a misspelt mode should stop startup, not silently fall back
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
