package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	DatabaseURL string

	JWTSecret string

	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration

	ObjectStoreType string
	LocalStoreDir   string
	LocalPublicURL  string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string

	LatexOutputDir string
	PdflatexBin    string
	LatexTimeout   time.Duration

	ResendAPIKey string
	EmailFrom    string

	StripeWebhookSecret string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),

		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		LLMTimeout:   getEnvDuration("LLM_TIMEOUT", 120*time.Second),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		LocalPublicURL:  getEnv("LOCAL_PUBLIC_URL", "http://localhost:8080/files"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		LatexOutputDir: getEnv("LATEX_OUTPUT_DIR", "./latex_output"),
		PdflatexBin:    getEnv("PDFLATEX_BIN", "pdflatex"),
		LatexTimeout:   getEnvDuration("LATEX_TIMEOUT", 60*time.Second),

		ResendAPIKey: strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
		EmailFrom:    getEnv("EMAIL_FROM", "Resume Tailor <noreply@resumetailor.app>"),

		StripeWebhookSecret: strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET")),
	}
}

// Validate enforces the credentials every request path depends on. Outside
// dev-like environments missing secrets fail startup instead of failing at
// first use.
func (c Config) Validate() error {
	if c.IsDevLike() {
		return nil
	}
	var missing []string
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.ObjectStoreType == "s3" && strings.TrimSpace(c.S3Bucket) == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration in %s: %s", c.Env, strings.Join(missing, ", "))
	}
	return nil
}

// IsDevLike reports whether the environment tolerates degraded dependencies.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
