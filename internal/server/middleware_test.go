package server

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"

	"github.com/desertthunder/followback/internal/shared"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusCreated)
})

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"XForwardedFor", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "", "1.2.3.4"},
		{"XRealIP", map[string]string{"X-Real-IP": "9.8.7.6"}, "", "9.8.7.6"},
		{"RemoteAddr", nil, "10.0.0.1:12345", "10.0.0.1"},
		{"InvalidRemoteAddr", nil, "not-an-addr", "not-an-addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if tt.remote != "" {
				req.RemoteAddr = tt.remote
			}
			if ip := GetClientIP(req); ip != tt.want {
				t.Errorf("expected %s, got %q", tt.want, ip)
			}
		})
	}
}

func TestWithCORS(t *testing.T) {
	t.Run("Preflight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WithCORS(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/upload", nil))

		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("expected wildcard origin")
		}
	})

	t.Run("Passthrough", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WithCORS(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", nil))

		if rec.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("expected wildcard origin")
		}
	})
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := shared.NewLogger(&buf)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("Generates ID", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WithLogger(logger)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		if seen == "" {
			t.Fatal("expected request ID in context")
		}
		if rec.Header().Get(RequestIDHeader) != seen {
			t.Errorf("expected response header %s, got %s", seen, rec.Header().Get(RequestIDHeader))
		}
		out := buf.String()
		if !strings.Contains(out, "access") || !strings.Contains(out, "status=418") {
			t.Errorf("expected access log with status, got %s", out)
		}
	})

	t.Run("Keeps Incoming ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		WithLogger(logger)(next).ServeHTTP(httptest.NewRecorder(), req)

		if seen != "abc-123" {
			t.Errorf("expected incoming ID, got %s", seen)
		}
	})
}

func TestWithRateLimit(t *testing.T) {
	t.Run("Exhausted", func(t *testing.T) {
		h := WithRateLimit(rate.NewLimiter(rate.Limit(0.001), 1))(okHandler)

		first := httptest.NewRecorder()
		h.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/upload", nil))
		if first.Code != http.StatusCreated {
			t.Fatalf("expected first request through, got %d", first.Code)
		}

		second := httptest.NewRecorder()
		h.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/upload", nil))
		if second.Code != http.StatusTooManyRequests {
			t.Errorf("expected 429, got %d", second.Code)
		}
		if second.Header().Get("Retry-After") == "" {
			t.Error("expected Retry-After header")
		}
	})

	t.Run("Nil Limiter", func(t *testing.T) {
		h := WithRateLimit(nil)(okHandler)
		for range 5 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", nil))
			if rec.Code != http.StatusCreated {
				t.Fatalf("expected unlimited passthrough, got %d", rec.Code)
			}
		}
	})
}

func TestWithBearerAuth(t *testing.T) {
	h := WithBearerAuth("s3cret", "/health")(okHandler)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"Missing", "/upload", "", http.StatusUnauthorized},
		{"Wrong", "/upload", "Bearer nope", http.StatusUnauthorized},
		{"Valid", "/upload", "Bearer s3cret", http.StatusCreated},
		{"Public Path", "/health", "", http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}

	t.Run("Disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WithBearerAuth("")(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", nil))
		if rec.Code != http.StatusCreated {
			t.Errorf("expected passthrough, got %d", rec.Code)
		}
	})
}

func TestBasicRouter(t *testing.T) {
	t.Run("Method Filter Runs Inside Middleware", func(t *testing.T) {
		router := NewBasicRouter()
		router.Use(WithCORS)
		router.Handle(http.MethodPost, "/things", okHandler)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/things", nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected preflight 204, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if rec.Header().Get("Allow") != http.MethodPost {
			t.Errorf("expected Allow header, got %q", rec.Header().Get("Allow"))
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mark("first"), mark("second"))
		router.Handler(HealthHandler{})
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		if strings.Join(order, ",") != "first,second" {
			t.Errorf("expected first,second; got %v", order)
		}
	})
}

func TestNewBackendRouter(t *testing.T) {
	cfg := shared.DefaultConfig().Server
	cfg.APIToken = "s3cret"
	router := NewBackendRouter(cfg, shared.NewLogger(io.Discard), nil)

	t.Run("Health Is Public", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("Upload Requires Token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("expected CORS headers on rejected requests")
		}
	})

	t.Run("Preflight Skips Auth", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/upload", nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
	})
}
