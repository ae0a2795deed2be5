package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"

	"phishguard/internal/platform/testkit"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":     zerolog.TraceLevel,
		"debug":     zerolog.DebugLevel,
		"INFO":      zerolog.InfoLevel,
		"warn":      zerolog.WarnLevel,
		" warning ": zerolog.WarnLevel,
		"error":     zerolog.ErrorLevel,
		"fatal":     zerolog.FatalLevel,
		"panic":     zerolog.PanicLevel,
		"":          zerolog.InfoLevel,
		"nonsense":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// capture installs a root logger writing to a buffer; callers hold testkit.Serial
func capture(t *testing.T, opt Options) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	opt.Writer = &buf
	Init(opt)
	t.Cleanup(func() { Init(Options{Level: "info", Format: "json"}) })
	return &buf
}

func TestInit_JSONFields(t *testing.T) {
	testkit.Serial(t)
	buf := capture(t, Options{
		Level:   "debug",
		Format:  "json",
		Service: "phishguard-api",
		Fields:  map[string]string{"model_id": "m-1"},
	})

	Named("predict").Debug().Msg("scored")
	C(WithRequest(context.Background(), "req-123")).Info().Msg("served")

	out := buf.String()
	for _, want := range []string{
		`"service":"phishguard-api"`,
		`"model_id":"m-1"`,
		`"component":"predict"`,
		`"request_id":"req-123"`,
		`"message":"served"`,
	} {
		testkit.MustContain(t, out, want)
	}
}

func TestInit_ReplacesRootAndFiltersLevel(t *testing.T) {
	testkit.Serial(t)
	first := capture(t, Options{Level: "info", Format: "json"})
	Get().Info().Msg("one")

	second := capture(t, Options{Level: "warn", Format: "console"})
	Get().Info().Msg("dropped")
	Get().Warn().Msg("two")

	testkit.MustContain(t, first.String(), "one")
	if bytes.Contains(first.Bytes(), []byte("two")) {
		t.Fatal("old writer still receiving after Init")
	}
	if bytes.Contains(second.Bytes(), []byte("dropped")) {
		t.Fatal("info line passed a warn logger")
	}
	testkit.MustContain(t, second.String(), "two")
}

func TestC_WithoutRequestID(t *testing.T) {
	testkit.Serial(t)
	buf := capture(t, Options{Level: "info", Format: "json"})
	ctx := WithRequest(context.Background(), "")
	if ctx != context.Background() {
		t.Fatal("empty id should leave ctx untouched")
	}
	C(ctx).Info().Msg("bare")
	if bytes.Contains(buf.Bytes(), []byte("request_id")) {
		t.Fatalf("unexpected request_id in %s", buf)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_OUTPUT", "stdout")
	t.Setenv("LOG_SERVICE", "phishguard-train")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	want := Options{
		Level: "warn", Format: "json", Output: "stdout",
		Service: "phishguard-train", WithCaller: true, SampleEvery: 5,
	}
	if got := FromEnv(); got.Level != want.Level || got.Format != want.Format ||
		got.Output != want.Output || got.Service != want.Service ||
		got.WithCaller != want.WithCaller || got.SampleEvery != want.SampleEvery {
		t.Fatalf("FromEnv = %+v", got)
	}

	for _, k := range []string{"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT"} {
		t.Setenv(k, "")
	}
	if got := FromEnv(); got.Level != "info" || got.Format != "console" || got.Output != "stderr" {
		t.Fatalf("defaults = %+v", got)
	}
}
