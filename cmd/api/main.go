package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/bocho8/chronos/api/swagger"
	"github.com/bocho8/chronos/internal/handler"
	"github.com/bocho8/chronos/internal/middleware"
	"github.com/bocho8/chronos/internal/repository"
	"github.com/bocho8/chronos/internal/service"
	"github.com/bocho8/chronos/pkg/cache"
	"github.com/bocho8/chronos/pkg/config"
	"github.com/bocho8/chronos/pkg/database"
	"github.com/bocho8/chronos/pkg/logger"
	corsmiddleware "github.com/bocho8/chronos/pkg/middleware/cors"
	reqidmiddleware "github.com/bocho8/chronos/pkg/middleware/requestid"
)

// @title Chronos Schedule Engine API
// @version 0.1.0
// @description Weekly timetable conflict detection and compliance engine
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The catalog cache degrades to direct reads without redis.
		logr.Sugar().Warnw("redis unavailable, catalog cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	assignmentRepo := repository.NewAssignmentRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	observationRepo := repository.NewObservationRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	catalogSvc := service.NewCatalogService(catalogRepo, cacheRepo, metricsSvc, logr, cfg.Catalog.CacheTTL)
	placementSvc := service.NewPlacementService(assignmentRepo, availabilityRepo, catalogSvc, metricsSvc, validate, logr, cfg.Engine.StrictMode, cfg.Engine.SuggestionLimit)
	bulkSvc := service.NewBulkService(assignmentRepo, availabilityRepo, catalogSvc, placementSvc, metricsSvc, validate, logr, cfg.Engine.StrictMode)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, catalogSvc, validate, logr)
	observationSvc := service.NewObservationService(observationRepo, catalogSvc, validate, logr)
	exportSvc := service.NewExportService(assignmentRepo, catalogSvc, logr)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := observationSvc.EnsureDefaults(seedCtx); err != nil {
		logr.Sugar().Warnw("failed to seed predefined observations", "error", err)
	}
	cancel()

	placementHandler := handler.NewPlacementHandler(placementSvc, bulkSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	observationHandler := handler.NewObservationHandler(observationSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/placements", placementHandler.List)
		api.POST("/placements", placementHandler.Create)
		api.POST("/placements/validate", placementHandler.Validate)
		api.POST("/placements/bulk", placementHandler.Bulk)
		api.PUT("/placements/:id", placementHandler.Update)
		api.DELETE("/placements/:id", placementHandler.Delete)

		api.GET("/groups/:id/placements", placementHandler.ListByGroup)
		api.GET("/groups/:id/subjects/:subjectId/compliance", placementHandler.Compliance)

		api.GET("/teachers/:id/placements", placementHandler.ListByTeacher)
		api.GET("/teachers/:id/availability", availabilityHandler.Matrix)
		api.PUT("/teachers/:id/availability", availabilityHandler.Toggle)
		api.GET("/teachers/:id/observations", observationHandler.ListByTeacher)
		api.POST("/teachers/:id/observations", observationHandler.Create)
		api.DELETE("/teachers/:id/observations/:obsId", observationHandler.Delete)

		api.GET("/observations/predefined", observationHandler.ListPredefined)

		api.GET("/catalog", catalogHandler.Snapshot)
		api.DELETE("/catalog/cache", catalogHandler.Invalidate)
		api.GET("/subjects/:id/teachers", placementHandler.SubjectTeachers)

		if cfg.Exports.Enabled {
			api.GET("/groups/:id/timetable/export", exportHandler.GroupTimetable)
			api.GET("/teachers/:id/timetable/export", exportHandler.TeacherTimetable)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "strict_mode", cfg.Engine.StrictMode)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
