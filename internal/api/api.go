// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/api/handlers"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/api/middleware"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/auth"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/service"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/storage"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/telemetry"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Network   *service.NetworkService
	Tokens    *auth.TokenManager
	Metrics   *telemetry.Registry
	Snapshots *storage.SnapshotStore // optional
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	if services.Metrics != nil {
		router.Use(middleware.Metrics(services.Metrics))
	}
	router.Use(cors.New(corsConfig(allowedOrigins)))

	health := handlers.NewHealthHandler(services.Network)
	router.GET("/health", health.Health)
	if services.Metrics != nil {
		router.GET("/metrics", gin.WrapH(services.Metrics.Handler()))
	}

	apiGroup := router.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(services.Network, services.Tokens)
	apiGroup.POST("/auth/login", authHandler.Login)

	private := apiGroup.Group("")
	private.Use(middleware.Authenticate(services.Tokens))
	admin := middleware.RequireAdmin()

	private.GET("/auth/me", authHandler.Me)

	network := handlers.NewNetworkHandler(services.Network)
	reports := handlers.NewAnalyticsHandler(services.Network)
	companies := private.Group("/companies")
	{
		companies.GET("", network.ListCompanies)
		companies.POST("", admin, network.CreateCompany)
		companies.GET("/:id", network.GetCompany)
		companies.DELETE("/:id", admin, network.DeleteCompany)
		companies.PATCH("/:id/data", admin, network.UpdateData)

		companies.POST("/:id/nodes", admin, network.AddNode)
		companies.PUT("/:id/nodes/:nodeId", admin, network.UpdateNode)
		companies.DELETE("/:id/nodes/:kind/:nodeId", admin, network.DeleteNode)
		companies.PUT("/:id/connections", admin, network.UpdateConnection)

		companies.GET("/:id/scenario", network.ScenarioStatus)
		companies.POST("/:id/stress-tests", admin, network.ApplyStressTest)
		companies.POST("/:id/reset", admin, network.ResetScenario)

		companies.PUT("/:id/targets/:metric", admin, network.UpdateNetworkTarget)
		companies.PUT("/:id/warehouses/:warehouseId/targets/:metric", network.UpdateWarehouseTarget)

		companies.GET("/:id/forecast", reports.GetForecast)
		companies.GET("/:id/warnings", reports.GetWarnings)
		companies.GET("/:id/outlook", reports.GetOutlook)
	}

	imports := handlers.NewImportHandler(services.Network)
	private.GET("/templates/company", imports.DownloadTemplate)
	private.POST("/imports", admin, imports.ImportWorkbook)

	if services.Snapshots != nil {
		snapshots := handlers.NewSnapshotHandler(services.Network, services.Snapshots)
		group := private.Group("/snapshots", admin)
		{
			group.GET("", snapshots.List)
			group.POST("", snapshots.Export)
			group.POST("/restore", snapshots.Restore)
		}
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	cfg := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			cfg.AllowOrigins = nil
			cfg.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			cfg.AllowOrigins = normalizedOrigins
		}
	}
	return cfg
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
