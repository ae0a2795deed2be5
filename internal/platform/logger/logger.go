// Package logger owns the process-wide zerolog root and request-scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"phishguard/internal/platform/config/raw"
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Options shapes the root logger
type Options struct {
	Level       string
	Format      string // console or json
	Output      string // stdout or stderr; ignored when Writer is set
	Service     string
	Writer      io.Writer
	WithCaller  bool
	SampleEvery int
	Fields      map[string]string
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT, LOG_SERVICE, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(env.Get("LEVEL", "info")),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Output:      strings.ToLower(env.Get("OUTPUT", "stderr")),
		Service:     env.Get("SERVICE", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var root atomic.Pointer[Logger]

// Init builds the root logger from opt and installs it; later calls replace it
func Init(opt Options) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	l := build(opt)
	root.Store(&l)
}

func build(opt Options) Logger {
	w := opt.Writer
	switch {
	case w != nil:
	case opt.Output == "stdout":
		w = os.Stdout
	default:
		w = os.Stderr
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	c := zerolog.New(w).Level(ParseLevel(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		c = c.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	for k, v := range opt.Fields {
		c = c.Str(k, v)
	}
	if opt.WithCaller {
		c = c.Caller()
	}

	l := c.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// ParseLevel accepts zerolog level names plus "warning"; anything else is info
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Get returns the root logger, building it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	l := build(FromEnv())
	root.CompareAndSwap(nil, &l)
	return root.Load()
}

// Named is a child of the root tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}

type requestIDKey struct{}

// WithRequest stores reqID for C; an empty id leaves ctx as is
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, reqID)
}

// C is the logger for work done on behalf of ctx
func C(ctx context.Context) *Logger {
	id, _ := ctx.Value(requestIDKey{}).(string)
	if id == "" {
		return Get()
	}
	l := Get().With().Str("request_id", id).Logger()
	return &l
}
