package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tailor-backend/internal/shared/config"
)

func devConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:             "dev",
		Port:            "8080",
		CORSAllowOrigin: []string{"*"},
		JWTSecret:       "test-secret",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		LocalPublicURL:  "http://localhost:8080/files",
		LatexOutputDir:  t.TempDir(),
		PdflatexBin:     "pdflatex",
		LatexTimeout:    time.Minute,
		LLMTimeout:      time.Minute,
	}
}

func TestBuildDevDegradesGracefully(t *testing.T) {
	// No database, no model key, no email key: a dev build still comes up
	// with in-memory stores and disabled pipelines.
	app, err := Build(devConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.Router == nil {
		t.Fatal("Router is nil")
	}
	if app.DB != nil {
		t.Error("DB should be nil without DATABASE_URL")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
}

func TestBuildProdRequiresSecrets(t *testing.T) {
	cfg := devConfig(t)
	cfg.Env = "prod"

	if _, err := Build(cfg); err == nil {
		t.Fatal("Build succeeded in prod without GEMINI_API_KEY and DATABASE_URL")
	}
}

func TestBuildS3RequiresBucket(t *testing.T) {
	cfg := devConfig(t)
	cfg.ObjectStoreType = "s3"
	cfg.AWSRegion = ""
	cfg.S3Bucket = ""

	if _, err := Build(cfg); err == nil {
		t.Fatal("Build succeeded with OBJECT_STORE=s3 and no bucket")
	}
}
