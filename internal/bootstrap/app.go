package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tmc/langchaingo/llms"

	"tailor-backend/internal/convert"
	"tailor-backend/internal/latex"
	"tailor-backend/internal/llm"
	"tailor-backend/internal/notify"
	"tailor-backend/internal/payments"
	"tailor-backend/internal/resumes"
	"tailor-backend/internal/shared/auth"
	"tailor-backend/internal/shared/config"
	"tailor-backend/internal/shared/server"
	"tailor-backend/internal/shared/storage/db"
	"tailor-backend/internal/shared/storage/object"
	localstore "tailor-backend/internal/shared/storage/object/local"
	s3store "tailor-backend/internal/shared/storage/object/s3"
	"tailor-backend/internal/shared/telemetry"
	"tailor-backend/internal/usage"
)

// App holds the process-lifetime dependencies: one database handle, one
// object store, one model client, and the services built on them.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.Uploader
	Verifier        *auth.Verifier
	UsageService    *usage.Service
	ResumesRepo     resumes.Repo
	NotifyService   *notify.Service
	ConvertService  *convert.Service
	ConvertHandler  *convert.Handler
	PaymentsHandler *payments.Handler
}

// Build validates configuration and wires every dependency. In dev-like
// environments missing externals degrade (in-memory stores, 503 pipelines)
// instead of refusing to start.
func Build(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	model, err := buildModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	var tailorChain *llm.TailorChain
	var latexChain *llm.LatexChain
	if model != nil {
		tailorChain = llm.NewTailorChain(model, cfg.LLMTimeout)
		latexChain = llm.NewLatexChain(model, cfg.LLMTimeout)
	}

	var usageSvc *usage.Service
	var resumesRepo resumes.Repo
	if sqlDB != nil {
		usageSvc = usage.NewPostgresService(usage.NewPGStore(sqlDB))
		resumesRepo = &resumes.PGRepo{DB: sqlDB}
	} else {
		usageSvc = usage.NewService()
		resumesRepo = resumes.NewMemoryRepo()
	}

	verifier := auth.NewVerifier(cfg.JWTSecret)
	compiler := latex.NewCompiler(cfg.LatexOutputDir, cfg.PdflatexBin, cfg.LatexTimeout)
	notifySvc := notify.NewService(cfg.ResendAPIKey, cfg.EmailFrom, verifier)

	var convertSvc *convert.Service
	if tailorChain != nil {
		convertSvc = convert.NewService(tailorChain, latexChain, compiler, store, resumesRepo, usageSvc, notifySvc)
	} else {
		convertSvc = convert.NewService(nil, nil, compiler, store, resumesRepo, usageSvc, notifySvc)
	}

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		Store:           store,
		Verifier:        verifier,
		UsageService:    usageSvc,
		ResumesRepo:     resumesRepo,
		NotifyService:   notifySvc,
		ConvertService:  convertSvc,
		ConvertHandler:  convert.NewHandler(convertSvc),
		PaymentsHandler: payments.NewHandler(cfg.StripeWebhookSecret),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Verifier:        verifier,
		ConvertHandler:  app.ConvertHandler,
		PaymentsHandler: app.PaymentsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("DATABASE_URL empty, using in-memory stores", nil)
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultServerOptions())
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("database connect failed, using in-memory stores", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if cfg.IsDevLike() {
			telemetry.Warn("migrations failed, using in-memory stores", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Uploader, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.S3PublicBaseURL)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.LocalPublicURL), nil
	}
}

// buildModel returns nil without error when no API key is configured in a
// dev-like environment; the conversion endpoints then answer 503.
func buildModel(ctx context.Context, cfg config.Config) (llms.Model, error) {
	if cfg.GeminiAPIKey == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("GEMINI_API_KEY empty, model pipelines disabled", nil)
			return nil, nil
		}
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	model, err := llm.NewGoogleAI(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("initialize model client: %w", err)
	}
	return model, nil
}
