// api/router.go
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/Annany2002/docvault-backend/api/handlers"
	"github.com/Annany2002/docvault-backend/api/middleware" // Import middleware package
	"github.com/Annany2002/docvault-backend/api/models"
	"github.com/Annany2002/docvault-backend/config"
	"github.com/Annany2002/docvault-backend/internal/logger"
	"github.com/Annany2002/docvault-backend/internal/service"
)

var (
	customLog = logger.NewLogger()
)

// SetupRouter initializes the Gin router and sets up all routes.
func SetupRouter(db *sqlx.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware(cfg))
	// Runs after Recovery/logging but wraps every handler below.
	router.Use(middleware.ErrorHandler())

	if err := models.RegisterValidators(); err != nil {
		customLog.Fatalf("Failed to register request validators: %v", err)
	}

	// Initialize services and handlers
	accounts := service.NewAccountService(db, cfg.BcryptCost)
	documents := service.NewDocumentService(db)
	authHandler := handlers.NewAuthHandler(accounts, cfg)
	documentHandler := handlers.NewDocumentHandler(documents, cfg)

	// --- Public Routes ---
	router.GET("/ping", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			customLog.Warnf("DB Ping error during /ping request: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "pong, but DB connection error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authRoutes := router.Group("/")
	authRoutes.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)))
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
	}

	// --- Email-identified Routes ---
	documentRoutes := router.Group("/documents")
	documentRoutes.Use(middleware.BodyLimit(cfg.MaxUploadBytes))
	documentRoutes.Use(middleware.AccountMiddleware(accounts))
	{
		documentRoutes.POST("/save", documentHandler.SaveDocument)
		documentRoutes.GET("/list", documentHandler.ListDocuments)
		documentRoutes.GET("/:id/download", documentHandler.DownloadDocument)
		documentRoutes.PUT("/:id/rename", documentHandler.RenameDocument)
		documentRoutes.DELETE("/:id", documentHandler.DeleteDocument)
	}

	return router
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}

	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			break
		}
	}
	if !corsCfg.AllowAllOrigins {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	if !corsCfg.AllowAllOrigins && len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}

	return cors.New(corsCfg)
}
