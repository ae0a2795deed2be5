package config

import (
	"testing"
	"time"

	kit "phishguard/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	model := New().Prefix("CORE_").Prefix("MODEL_")
	if got := model.key("PATH"); got != "CORE_MODEL_PATH" {
		t.Fatalf("key() = %q, want %q", got, "CORE_MODEL_PATH")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	t.Setenv("SERVICE_PGSQL_DBURL", "  postgres://u:p@db:5432/mail ")
	if got := c.MustString("DBURL"); got != "postgres://u:p@db:5432/mail" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })

	t.Setenv("SERVICE_PGSQL_WS", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("WS") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("CORE_MODEL_")
	if got := c.MayString("PATH", "models/phishing_model.bin"); got != "models/phishing_model.bin" {
		t.Fatalf("MayString default = %q", got)
	}
	t.Setenv("CORE_MODEL_PATH", " /var/lib/phishguard/model.bin ")
	if got := c.MayString("PATH", "x"); got != "/var/lib/phishguard/model.bin" {
		t.Fatalf("MayString value = %q", got)
	}
}

func TestMayNumbers(t *testing.T) {
	c := New().Prefix("CORE_TRAIN_")
	if got := c.MayInt("SEED", 42); got != 42 {
		t.Fatalf("MayInt default = %d", got)
	}
	t.Setenv("CORE_TRAIN_SEED", " 7 ")
	if got := c.MayInt("SEED", 42); got != 7 {
		t.Fatalf("MayInt ok = %d", got)
	}
	t.Setenv("CORE_TRAIN_WORKERS", "many")
	if got := c.MayInt("WORKERS", 3); got != 3 {
		t.Fatalf("MayInt bad -> default = %d", got)
	}

	if got := c.MayFloat64("TEST_SIZE", 0.2); got != 0.2 {
		t.Fatalf("MayFloat64 default = %v", got)
	}
	t.Setenv("CORE_TRAIN_TEST_SIZE", "0.25")
	if got := c.MayFloat64("TEST_SIZE", 0.2); got != 0.25 {
		t.Fatalf("MayFloat64 ok = %v", got)
	}
	t.Setenv("CORE_TRAIN_C", "lots")
	if got := c.MayFloat64("C", 1.0); got != 1.0 {
		t.Fatalf("MayFloat64 bad -> default = %v", got)
	}
}

func TestMayBoolAndDuration(t *testing.T) {
	c := New().Prefix("CORE_API_")
	if !c.MayBool("PROFILER", true) {
		t.Fatalf("MayBool default true expected")
	}
	t.Setenv("CORE_API_PROFILER", "false")
	if c.MayBool("PROFILER", true) {
		t.Fatalf("MayBool false expected")
	}
	t.Setenv("CORE_API_BAD", "nope")
	if c.MayBool("BAD", false) {
		t.Fatalf("MayBool bad -> default false expected")
	}

	if got := c.MayDuration("TIMEOUT", 5*time.Second); got != 5*time.Second {
		t.Fatalf("MayDuration default = %v", got)
	}
	t.Setenv("CORE_API_TIMEOUT", "150ms")
	if got := c.MayDuration("TIMEOUT", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration ok = %v", got)
	}
	t.Setenv("CORE_API_SLOW", "soon")
	if got := c.MayDuration("SLOW", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad -> default = %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CORE_API_")
	def := []string{"*"}
	if got := c.MayCSV("CORS_ORIGINS", def); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV default mismatch: %#v", got)
	}
	t.Setenv("CORE_API_CORS_ORIGINS", " https://a.example, https://b.example , ,")
	got := c.MayCSV("CORS_ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("MayCSV = %#v", got)
	}
	t.Setenv("CORE_API_EMPTY", " , ,")
	if got := c.MayCSV("EMPTY", def); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV all-empty -> default mismatch: %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("CORE_TRAIN_")
	if got := c.MayEnum("SOURCE", "csv", "csv", "pg"); got != "csv" {
		t.Fatalf("MayEnum default = %q", got)
	}
	t.Setenv("CORE_TRAIN_SOURCE", "PG")
	if got := c.MayEnum("SOURCE", "csv", "csv", "pg"); got != "PG" {
		t.Fatalf("MayEnum allowed value = %q", got)
	}
	t.Setenv("CORE_TRAIN_SOURCE", "s3")
	kit.MustPanic(t, func() { _ = c.MayEnum("SOURCE", "csv", "csv", "pg") })
}
