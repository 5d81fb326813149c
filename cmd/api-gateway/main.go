package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/RoaringMaas/edutrack-lms/api/swagger"
	"github.com/RoaringMaas/edutrack-lms/internal/handler"
	"github.com/RoaringMaas/edutrack-lms/internal/middleware"
	"github.com/RoaringMaas/edutrack-lms/internal/repository"
	"github.com/RoaringMaas/edutrack-lms/internal/service"
	"github.com/RoaringMaas/edutrack-lms/pkg/cache"
	"github.com/RoaringMaas/edutrack-lms/pkg/config"
	"github.com/RoaringMaas/edutrack-lms/pkg/database"
	"github.com/RoaringMaas/edutrack-lms/pkg/logger"
	corsmiddleware "github.com/RoaringMaas/edutrack-lms/pkg/middleware/cors"
	reqidmiddleware "github.com/RoaringMaas/edutrack-lms/pkg/middleware/requestid"
	"github.com/RoaringMaas/edutrack-lms/pkg/narrative"
	"github.com/RoaringMaas/edutrack-lms/pkg/storage"
)

// @title EduTrack LMS API
// @version 1.0.0
// @description Classroom gradebook: rosters, assessments, homework tracking, reports and parent share links
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
	defer db.Close()

	// Redis only accelerates the parent view; the API serves without it.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, parent view cache disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	fileStore, err := storage.NewLocalStorage(cfg.Uploads.StorageDir, cfg.Uploads.PublicBaseURL)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}

	narrativeClient := narrative.NewClient(cfg.Narrative)
	var generator narrative.Generator
	if narrativeClient.Enabled() {
		generator = narrativeClient
	}

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	guard := service.NewAccessGuard(classRepo, studentRepo, assignmentRepo, assessmentRepo)
	metricsSvc := service.NewMetricsService()

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	classSvc := service.NewClassService(classRepo, guard, nil, logr)
	studentSvc := service.NewStudentService(studentRepo, guard, nil, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, guard, nil, logr)
	submissionSvc := service.NewSubmissionService(submissionRepo, guard, nil, logr)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, fileStore, service.UploadLimits{
		MaxFileSizeBytes: cfg.Uploads.MaxFileSizeBytes,
		AllowedMIMEs:     cfg.Uploads.AllowedMIMEs,
	}, guard, nil, logr)
	gradeSvc := service.NewGradeService(gradeRepo, studentRepo, assessmentRepo, guard, nil, logr)
	shareLinkSvc := service.NewShareLinkService(studentRepo, guard, logr)
	parentViewSvc := service.NewParentViewService(
		studentRepo, classRepo, assessmentRepo, gradeRepo, assignmentRepo, submissionRepo,
		redisClient, cfg.ParentView.CacheTTL, logr,
	)
	reportSvc := service.NewReportService(studentRepo, assessmentRepo, assignmentRepo, gradeRepo, submissionRepo, guard, generator, metricsSvc, logr)
	noteSvc := service.NewNoteService(noteRepo, guard, logr)
	adminSvc := service.NewAdminService(userRepo, nil, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Scrape)
	r.Static("/files", cfg.Uploads.StorageDir)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r.Group(cfg.APIPrefix), handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Class:       handler.NewClassHandler(classSvc),
		Student:     handler.NewStudentHandler(studentSvc),
		Assignment:  handler.NewAssignmentHandler(assignmentSvc),
		Submission:  handler.NewSubmissionHandler(submissionSvc),
		Assessment:  handler.NewAssessmentHandler(assessmentSvc),
		Grade:       handler.NewGradeHandler(gradeSvc, metricsSvc),
		ShareLink:   handler.NewShareLinkHandler(shareLinkSvc, parentViewSvc),
		Report:      handler.NewReportHandler(reportSvc),
		Note:        handler.NewNoteHandler(noteSvc),
		Admin:       handler.NewAdminHandler(adminSvc),
		Metrics:     metricsHandler,
		AuthService: authSvc,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
