package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quizmind/quizmind-api/config"
	"github.com/quizmind/quizmind-api/database"
	_ "github.com/quizmind/quizmind-api/docs" // Swagger docs
	adminctrl "github.com/quizmind/quizmind-api/internal/controller/admin"
	userctrl "github.com/quizmind/quizmind-api/internal/controller/user"
	"github.com/quizmind/quizmind-api/internal/logger"
	"github.com/quizmind/quizmind-api/internal/middleware"
	"github.com/quizmind/quizmind-api/internal/model"
	"github.com/quizmind/quizmind-api/internal/repository"
	"github.com/quizmind/quizmind-api/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title QuizMind API
// @version 1.0
// @description REST backend for the QuizMind quiz and IQ-test apps: accounts, test catalog, scoring with rank/percentile, result history.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewTestResultRepository,
		),

		// Services layer
		fx.Provide(
			service.NewTokenService,
			service.NewAuthService,
			service.NewCatalogService,
			func(testRepo repository.TestRepository, resultRepo repository.TestResultRepository, db *gorm.DB) service.ScoringService {
				return service.NewScoringService(testRepo, resultRepo, db)
			},
			service.NewAdminTestService,
		),

		// API controllers layer
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewTestController,
			userctrl.NewResultController,
			adminctrl.NewAdminTestController,
			adminctrl.NewAdminResultController,
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

	// Route gin's request log through zerolog.
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
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokenSvc service.TokenService,
	userRepo repository.UserRepository,
	authCtrl *userctrl.AuthController,
	testCtrl *userctrl.TestController,
	resultCtrl *userctrl.ResultController,
	adminTestCtrl *adminctrl.AdminTestController,
	adminResultCtrl *adminctrl.AdminResultController,
) {
	requireAuth := middleware.RequireAuth(tokenSvc, userRepo)
	adminOnly := middleware.AuthorizeRoles(model.RoleAdmin, model.RoleSuperAdmin)

	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)

		// Public catalog and the historic unauthenticated submit.
		api.GET("/tests", testCtrl.GetAllTests)
		api.GET("/tests/:test_id/questions", testCtrl.GetTestQuestions)
		api.POST("/tests/:test_id/submit", testCtrl.QuickSubmit)

		resultsGroup := api.Group("/test-results", requireAuth)
		resultsGroup.POST("", resultCtrl.SubmitResult)
		resultsGroup.GET("/user", resultCtrl.GetMyResults)
		resultsGroup.GET("/user/:result_id", resultCtrl.GetResultByID)
	}

	adminGroup := router.Group("/api/v1/admin", requireAuth, adminOnly)
	{
		adminGroup.POST("/tests", adminTestCtrl.CreateTest)
		adminGroup.PUT("/tests/:test_id", adminTestCtrl.UpdateTest)
		adminGroup.POST("/tests/:test_id/questions", adminTestCtrl.AddQuestion)
		adminGroup.PUT("/questions/:question_id", adminTestCtrl.UpdateQuestion)
		adminGroup.DELETE("/questions/:question_id", adminTestCtrl.DeleteQuestion)
		adminGroup.GET("/test-results", adminResultCtrl.ListResults)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizMind API server starting on port %s", cfg.Server.Port)
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
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.TestResult{},
		&model.AnswerDetail{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
