package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tailor-backend/internal/convert"
	"tailor-backend/internal/payments"
	"tailor-backend/internal/resumes"
	"tailor-backend/internal/shared/auth"
	"tailor-backend/internal/shared/config"
	"tailor-backend/internal/usage"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := convert.NewService(nil, nil, nil, nil, resumes.NewMemoryRepo(), usage.NewService(), nil)
	return NewRouter(RouterDeps{
		Config:          config.Config{Env: "dev"},
		Verifier:        auth.NewVerifier("secret"),
		ConvertHandler:  convert.NewHandler(svc),
		PaymentsHandler: payments.NewHandler(""),
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "API is running!") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestConversionRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/tailor", "/convert-latex", "/convert-json-to-latex"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", path, w.Code)
		}
	}
}

func TestWebhookOutsideAuth(t *testing.T) {
	router := newTestRouter(t)

	// Unconfigured secret answers 503, not 401: the route is reachable
	// without a bearer token.
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9000":  ":9000",
		":9001": ":9001",
	}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Errorf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
