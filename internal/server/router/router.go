package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/genapagie/ovinpro/internal/server/handlers"
	"github.com/genapagie/ovinpro/pkg/token"
)

// Handlers bundles the HTTP adapters the router wires up.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Livestock *handlers.LivestockHandler
	Backup    *handlers.BackupHandler
	Analysis  *handlers.AnalysisHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, tokens *token.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/api/auth/register", h.Auth.Register)
	r.POST("/api/auth/login", h.Auth.Login)

	api := r.Group("/api", authMiddleware(tokens))
	{
		api.GET("/breeders", h.Livestock.ListBreeders)
		api.POST("/breeders", h.Livestock.SaveBreeder)
		api.DELETE("/breeders/:id", h.Livestock.DeleteBreeder)

		api.GET("/prices", h.Livestock.ListPrices)
		api.POST("/prices", h.Livestock.UpsertPrice)

		api.GET("/sheep", h.Livestock.ListSheep)
		api.POST("/sheep", h.Livestock.SaveSheep)
		api.DELETE("/sheep/:id", h.Livestock.DeleteSheep)

		api.GET("/records/health", h.Livestock.ListHealth)
		api.POST("/records/health", h.Livestock.AddHealth)
		api.GET("/records/production", h.Livestock.ListProduction)
		api.POST("/records/production", h.Livestock.AddProduction)
		api.GET("/records/reproduction", h.Livestock.ListReproduction)
		api.POST("/records/reproduction", h.Livestock.AddReproduction)
		api.GET("/records/nutrition", h.Livestock.ListNutrition)
		api.POST("/records/nutrition", h.Livestock.AddNutrition)

		api.GET("/backup/export", h.Backup.Export)
		api.POST("/backup/import", h.Backup.Import)

		api.POST("/analysis", h.Analysis.Analyze)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
