package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Eastyn7/cqt-cloudplatform-backend/api/swagger"
	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/handler"
	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/middleware"
	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/repository"
	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/service"
	"github.com/Eastyn7/cqt-cloudplatform-backend/pkg/cache"
	"github.com/Eastyn7/cqt-cloudplatform-backend/pkg/config"
	"github.com/Eastyn7/cqt-cloudplatform-backend/pkg/database"
	"github.com/Eastyn7/cqt-cloudplatform-backend/pkg/logger"
	corsmiddleware "github.com/Eastyn7/cqt-cloudplatform-backend/pkg/middleware/cors"
	reqidmiddleware "github.com/Eastyn7/cqt-cloudplatform-backend/pkg/middleware/requestid"
)

// @title CQT Cloud Platform API
// @version 1.0.0
// @description Recruitment season and applicant workflow backend
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, listing cache disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(repository.NewRedisCacheRepository(redisClient), metricsSvc, cfg.Cache.TTL, logr, true)
		}
	}

	validate := validator.New()

	seasonRepo := repository.NewSeasonRepository(db)
	applicantRepo := repository.NewApplicantRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	identityRepo := repository.NewIdentityRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	seasonSvc := service.NewSeasonService(seasonRepo, cacheSvc, validate, logr)
	recruitmentSvc := service.NewRecruitmentService(applicantRepo, seasonRepo, memberRepo, deptRepo, validate, logr)
	reviewSvc := service.NewReviewService(applicantRepo, validate, logr, cfg.Recruitment.DefaultPosition)
	authSvc := service.NewAuthService(userRepo, identityRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	exportSvc := service.NewExportService(applicantRepo, seasonRepo, nil, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	seasonHandler := handler.NewSeasonHandler(seasonSvc)
	recruitmentHandler := handler.NewRecruitmentHandler(recruitmentSvc, reviewSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	adminOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)
	superOnly := middleware.RequireRoles(models.RoleSuperAdmin)

	seasons := api.Group("/recruitment-seasons")
	{
		seasons.GET("/current", seasonHandler.Current)

		seasons.GET("", middleware.JWT(authSvc), adminOnly, seasonHandler.List)
		seasons.POST("/open", middleware.JWT(authSvc), superOnly,
			middleware.Audit(auditRepo, "season_open", "recruitment_seasons"), seasonHandler.Open)
		seasons.POST("/close", middleware.JWT(authSvc), superOnly,
			middleware.Audit(auditRepo, "season_close", "recruitment_seasons"), seasonHandler.Close)
		seasons.POST("/close-all", middleware.JWT(authSvc), superOnly,
			middleware.Audit(auditRepo, "season_close_all", "recruitment_seasons"), seasonHandler.CloseAll)
		seasons.DELETE("", middleware.JWT(authSvc), superOnly,
			middleware.Audit(auditRepo, "season_delete", "recruitment_seasons"), seasonHandler.Delete)
	}

	recruitment := authed.Group("/recruitment")
	{
		recruitment.POST("/apply", recruitmentHandler.Submit)
		recruitment.GET("/my-application", recruitmentHandler.MyApplication)

		recruitment.GET("/applicants", adminOnly, recruitmentHandler.AdminPage)
		recruitment.GET("/department-applicants", adminOnly, recruitmentHandler.DepartmentApplicants)
		recruitment.POST("/review", adminOnly,
			middleware.Audit(auditRepo, "applicant_review", "team_recruitment"), recruitmentHandler.Review)
		recruitment.POST("/assign", adminOnly,
			middleware.Audit(auditRepo, "applicant_assign", "team_recruitment"), recruitmentHandler.Assign)

		if cfg.Recruitment.ExportEnabled {
			recruitment.GET("/export", adminOnly, exportHandler.Roster)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
