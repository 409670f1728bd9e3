package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/jeffmcadams/namecheap-go/api/handlers"
	"github.com/jeffmcadams/namecheap-go/api/middleware"
	"github.com/jeffmcadams/namecheap-go/internal/config"
	"github.com/jeffmcadams/namecheap-go/internal/repository"
	"github.com/jeffmcadams/namecheap-go/internal/tracing"
	"github.com/jeffmcadams/namecheap-go/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, cfg *config.Config, s *services.Services, repos *repository.Repositories) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	// setup handlers
	domainHandler := handlers.NewDomainHandler(repos, cfg, s)
	dnsHandler := handlers.NewDNSHandler(s)

	// Health check endpoint (no custom context needed)
	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-NAMECHEAP-GO-API-KEY",
		ValidAPIKey: cfg.AppConfig.APIKey,
	})

	// API group with version and custom context
	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	api.Use(middleware.TenantValidationMiddleware())
	api.Use(middleware.CustomContextMiddleware("namecheap-go"))
	api.Use(middleware.TracingMiddleware())
	{
		domains := api.Group("/domains")
		{
			domains.GET("", domainHandler.ListDomains())
			domains.POST("", domainHandler.RegisterDomain())
			domains.POST("/check", domainHandler.CheckDomains())
			domains.GET("/:domain", domainHandler.GetDomain())
			domains.GET("/:domain/price", domainHandler.GetDomainPrice())
			domains.PUT("/:domain/nameservers", dnsHandler.UpdateNameservers())

			records := domains.Group("/:domain/records")
			{
				records.GET("", dnsHandler.ListDNSRecords())
				records.POST("", dnsHandler.UpsertDNSRecord())
				records.DELETE("", dnsHandler.DeleteDNSRecord())
			}
		}
	}
}
