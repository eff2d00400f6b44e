// Package server assembles the HTTP router.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"photo-template-backend/internal/config"
	"photo-template-backend/internal/handlers"
	"photo-template-backend/internal/metrics"
	"photo-template-backend/internal/middleware"
	"photo-template-backend/internal/services"
)

type Dependencies struct {
	Config     *config.Config
	Orders     *services.OrderService
	Composites *services.CompositeService
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
}

func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	router := gin.New()
	router.MaxMultipartMemory = 8 << 20

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.Metrics(deps.Metrics))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", handlers.HealthHandler)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// Stored files
	router.Static(services.UploadsPrefix, cfg.UploadsDir)
	router.Static(services.ProcessedPrefix, cfg.ProcessedDir)
	router.Static(services.TemplatesPrefix, cfg.TemplatesDir)

	ordersHandler := handlers.NewOrdersHandler(deps.Orders, cfg.MaxUploadBytes)
	processHandler := handlers.NewProcessHandler(deps.Composites, cfg.MaxUploadBytes)
	templatesHandler := handlers.NewTemplatesHandler(deps.Composites)

	api := router.Group("/api")

	api.POST("/orders", ordersHandler.SubmitOrder)
	api.GET("/orders/:id", ordersHandler.GetOrder)

	api.POST("/process-image", processHandler.ProcessImage)
	api.POST("/process-image/inline", processHandler.ProcessInline)

	api.GET("/templates", templatesHandler.ListTemplates)

	return router
}
