package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tailor-backend/internal/convert"
	"tailor-backend/internal/payments"
	"tailor-backend/internal/shared/auth"
	"tailor-backend/internal/shared/config"
	"tailor-backend/internal/shared/server/middleware"
	"tailor-backend/internal/shared/server/respond"
)

// RouterDeps carries the constructed handlers into route registration.
type RouterDeps struct {
	Config          config.Config
	Verifier        *auth.Verifier
	ConvertHandler  *convert.Handler
	PaymentsHandler *payments.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// The health check, the Stripe webhook, and locally stored files sit outside
// bearer auth; everything else requires a token.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"message": "API is running!"})
	})

	if deps.PaymentsHandler != nil {
		deps.PaymentsHandler.Register(r)
	}
	if deps.Config.ObjectStoreType == "local" {
		r.Static("/files", deps.Config.LocalStoreDir)
	}

	authed := r.Group("/", middleware.Auth(deps.Verifier))
	deps.ConvertHandler.Register(authed)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
