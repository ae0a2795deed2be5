package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"phishguard/internal/platform/config"
	perr "phishguard/internal/platform/errors"
	phttp "phishguard/internal/platform/net/http"
)

type scoreIn struct {
	Text string `json:"text" validate:"notblank"`
}

func serve(t *testing.T, mux http.Handler, method, path, body string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	var env phttp.Envelope
	if strings.Contains(rec.Header().Get("Content-Type"), "json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: body %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, env
}

func mountAll(mw ...func(http.Handler) http.Handler) *chi.Mux {
	mux := chi.NewRouter()
	MountAPIV1(phttp.AdaptChi(mux), mw, func(api Router) {
		MountUnder(api, "/predict", nil, func(r Router) {
			PostJSON(r, "/", func(_ *http.Request, in scoreIn) (any, error) {
				return map[string]int{"len": len(in.Text)}, nil
			})
		})
		MountUnder(api, "/meta", nil, func(r Router) {
			Get(r, "/model", func(*http.Request) (any, error) {
				return nil, perr.New(perr.ErrorCodeArtifactNotFound, "no model")
			})
			Get(r, "/reload", func(*http.Request) (any, error) {
				return phttp.Response{Status: http.StatusAccepted, Body: "queued"}, nil
			})
		})
	})
	return mux
}

func TestRoutes(t *testing.T) {
	mux := mountAll()
	cases := []struct {
		name, method, path, body string
		status                   int
	}{
		{"post json", http.MethodPost, "/api/v1/predict/", `{"text":"claim your prize"}`, http.StatusOK},
		{"blank text fails validation", http.MethodPost, "/api/v1/predict/", `{"text":"  "}`, http.StatusBadRequest},
		{"error maps to status", http.MethodGet, "/api/v1/meta/model", "", http.StatusServiceUnavailable},
		{"response passes through", http.MethodGet, "/api/v1/meta/reload", "", http.StatusAccepted},
		{"unversioned path", http.MethodGet, "/meta/model", "", http.StatusNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, env := serve(t, mux, c.method, c.path, c.body)
			if rec.Code != c.status {
				t.Fatalf("status %d, want %d: %s", rec.Code, c.status, rec.Body.String())
			}
			if c.status == http.StatusOK && env.StatusCode != http.StatusOK {
				t.Fatalf("envelope %+v", env)
			}
		})
	}
}

func TestMountAPI_VersionAndMiddleware(t *testing.T) {
	mark := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Scope", "api")
			next.ServeHTTP(w, r)
		})
	}
	mux := chi.NewRouter()
	MountAPI(phttp.AdaptChi(mux), "/v2", []func(http.Handler) http.Handler{mark}, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})
	rec, _ := serve(t, mux, http.MethodGet, "/api/v2/ping", "")
	if rec.Code != http.StatusOK || rec.Header().Get("X-Scope") != "api" {
		t.Fatalf("code %d scope %q", rec.Code, rec.Header().Get("X-Scope"))
	}
}

func TestCommonStack(t *testing.T) {
	mux := mountAll(CommonStack(config.New().Prefix("CORE_API_"))...)

	rec, env := serve(t, mux, http.MethodPost, "/api/v1/predict/", `{"text":"verify your password"}`)
	if rec.Code != http.StatusOK || env.RequestID == "" {
		t.Fatalf("code %d envelope %+v", rec.Code, env)
	}

	h := CommonStack(config.New().Prefix("CORE_API_"))
	var root http.Handler = http.NotFoundHandler()
	for i := len(h) - 1; i >= 0; i-- {
		root = h[i](root)
	}
	hb := httptest.NewRecorder()
	root.ServeHTTP(hb, httptest.NewRequest(http.MethodGet, "/health", nil))
	if hb.Code != http.StatusOK {
		t.Fatalf("heartbeat %d", hb.Code)
	}
}

func TestStackFromConfig(t *testing.T) {
	c := config.New().Prefix("CORE_API_")
	o := StackFromConfig(c)
	if o.Timeout != 30*time.Second || o.Slow != 500*time.Millisecond || o.MaxInflight != 0 || o.CORS != nil {
		t.Fatalf("defaults: %+v", o)
	}

	t.Setenv("CORE_API_TIMEOUT", "5s")
	t.Setenv("CORE_API_MAX_INFLIGHT", "64")
	t.Setenv("CORE_API_CORS_ORIGINS", "https://mail.example.com, https://ops.example.com")
	o = StackFromConfig(c)
	if o.Timeout != 5*time.Second || o.MaxInflight != 64 {
		t.Fatalf("overrides: %+v", o)
	}
	if o.CORS == nil || len(o.CORS.AllowedOrigins) != 2 || o.CORS.MaxAge != 300 {
		t.Fatalf("cors: %+v", o.CORS)
	}
}
