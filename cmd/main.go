package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/scribehire/scribehire/config"
	"github.com/scribehire/scribehire/database"
	_ "github.com/scribehire/scribehire/docs" // Swagger docs
	adminctrl "github.com/scribehire/scribehire/internal/controller/admin"
	publicctrl "github.com/scribehire/scribehire/internal/controller/public"
	"github.com/scribehire/scribehire/internal/logger"
	"github.com/scribehire/scribehire/internal/middleware"
	"github.com/scribehire/scribehire/internal/model"
	"github.com/scribehire/scribehire/internal/repository"
	"github.com/scribehire/scribehire/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title ScribeHire Writing Assessment API
// @version 1.0
// @description Multi-tenant writing assessment: admins define tests and invite candidates by tokenized link; candidates submit free-text attempts; reviewers and an AI rubric produce reports.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewTestRepository,
			repository.NewCandidateRepository,
			repository.NewTestLinkRepository,
			repository.NewAttemptRepository,
			repository.NewReportRepository,
		),

		fx.Provide(
			service.NewTestService,
			service.NewInvitationService,
			service.NewSubmissionService,
			service.NewAttemptService,
			service.NewReportService,
			service.NewGeminiScoringService,
			service.NewResendEmailService,
		),

		fx.Provide(
			adminctrl.NewTestController,
			adminctrl.NewAttemptController,
			adminctrl.NewReportController,
			publicctrl.NewSubmissionController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Organization-ID", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	testCtrl *adminctrl.TestController,
	attemptCtrl *adminctrl.AttemptController,
	reportCtrl *adminctrl.ReportController,
	submissionCtrl *publicctrl.SubmissionController,
) {
	// Candidate-facing routes, addressed by link token only.
	publicGroup := router.Group("/api/v1")
	{
		publicGroup.GET("/test/:token", submissionCtrl.GetTest)
		publicGroup.POST("/test/:token/attempts", submissionCtrl.SubmitAttempt)
	}

	// Admin routes require an organization context.
	adminGroup := router.Group("/api/v1/admin")
	adminGroup.Use(middleware.RequireOrganization())
	{
		tests := adminGroup.Group("/tests")
		tests.POST("", testCtrl.CreateTest)
		tests.GET("", testCtrl.ListTests)
		tests.GET("/:test_id", testCtrl.GetTest)
		tests.PUT("/:test_id", testCtrl.UpdateTest)
		tests.DELETE("/:test_id", testCtrl.DeleteTest)
		tests.POST("/:test_id/invitations", testCtrl.InviteCandidate)
		tests.GET("/:test_id/links", testCtrl.ListLinks)

		adminGroup.GET("/candidates", testCtrl.ListCandidates)

		attempts := adminGroup.Group("/attempts")
		attempts.GET("", attemptCtrl.ListAttempts)
		attempts.GET("/:attempt_id", attemptCtrl.GetAttempt)
		attempts.POST("/:attempt_id/ai-score", attemptCtrl.GenerateAIScore)

		reports := adminGroup.Group("/reports")
		reports.POST("", reportCtrl.UpsertReport)
		reports.GET("", reportCtrl.ListReports)
		reports.GET("/:report_id", reportCtrl.GetReport)
		reports.DELETE("/:report_id", reportCtrl.DeleteReport)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Writing assessment API starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Test{},
		&model.Candidate{},
		&model.TestLink{},
		&model.Attempt{},
		&model.Report{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
