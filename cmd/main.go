package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hzerradi/avancement-api/config"
	"github.com/hzerradi/avancement-api/database"
	_ "github.com/hzerradi/avancement-api/docs" // Swagger docs - auto-generated
	adminctrl "github.com/hzerradi/avancement-api/internal/controller/admin"
	authctrl "github.com/hzerradi/avancement-api/internal/controller/auth"
	candidatctrl "github.com/hzerradi/avancement-api/internal/controller/candidat"
	evalctrl "github.com/hzerradi/avancement-api/internal/controller/evaluation"
	"github.com/hzerradi/avancement-api/internal/draft"
	"github.com/hzerradi/avancement-api/internal/logger"
	"github.com/hzerradi/avancement-api/internal/middleware"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"github.com/hzerradi/avancement-api/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title API Avancement de Grade
// @version 1.0
// @description API de gestion des candidatures d'avancement au grade de Professeur de l'Enseignement Supérieur: dossier de candidature en six étapes, évaluation par commission et validation des résultats.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			func(cfg *config.Config) draft.Store {
				return draft.NewFileCache(cfg.Storage.DraftDir, 500*time.Millisecond)
			},
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewCandidatureRepository,
			repository.NewProfileRepository,
			repository.NewEnseignementRepository,
			repository.NewPfeRepository,
			repository.NewActiviteRepository,
			repository.NewDocumentRepository,
			repository.NewNoteRepository,
			repository.NewResultRepository,
			repository.NewCommissionRepository,
			repository.NewDeadlineRepository,
			repository.NewSettingRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthService,
			service.NewCandidatureService,
			service.NewProfileService,
			service.NewEnseignementService,
			service.NewPfeService,
			service.NewActiviteService,
			func(cs service.CandidatureService, docRepo repository.DocumentRepository, actRepo repository.ActiviteRepository, cfg *config.Config) service.DocumentService {
				return service.NewDocumentService(cs, docRepo, actRepo, cfg.Storage.UploadDir)
			},
			service.NewDossierService,
			service.NewEvaluationService,
			service.NewResultService,
			service.NewDeadlineService,
			service.NewAdminService,
		),

		// API Controllers Layer
		fx.Provide(
			middleware.NewAuthMiddleware,
			authctrl.NewAuthController,
			candidatctrl.NewCandidatureController,
			candidatctrl.NewProfileController,
			candidatctrl.NewEnseignementController,
			candidatctrl.NewPfeController,
			candidatctrl.NewActiviteController,
			candidatctrl.NewDocumentController,
			evalctrl.NewDossierController,
			evalctrl.NewResultController,
			adminctrl.NewAdminController,
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
	gin.SetMode(gin.DebugMode)

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
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
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
	auth *middleware.AuthMiddleware,
	authController *authctrl.AuthController,
	candidatureController *candidatctrl.CandidatureController,
	profileController *candidatctrl.ProfileController,
	enseignementController *candidatctrl.EnseignementController,
	pfeController *candidatctrl.PfeController,
	activiteController *candidatctrl.ActiviteController,
	documentController *candidatctrl.DocumentController,
	dossierController *evalctrl.DossierController,
	resultController *evalctrl.ResultController,
	adminController *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/logout", authController.Logout)
		authGroup.GET("/me", auth.RequireAuth(), authController.Me)
	}

	// Candidate space: the six-step wizard and its sub-resources.
	candidat := api.Group("/candidat", auth.RequireAuth(), auth.RequireRole(model.RoleCandidat))
	{
		candidat.GET("/deadlines", candidatureController.ActiveDeadlines)

		candidature := candidat.Group("/candidature")
		candidature.GET("", candidatureController.GetCandidature)
		candidature.GET("/status", candidatureController.GetStatus)
		candidature.PUT("/step/:step", candidatureController.SetCurrentStep)
		candidature.POST("/submit", candidatureController.Submit)

		candidature.GET("/profile", profileController.GetProfile)
		candidature.PUT("/profile", profileController.SaveProfile)
		candidature.PATCH("/profile/autosave", profileController.AutosaveProfile)

		candidature.GET("/enseignements", enseignementController.List)
		candidature.PUT("/enseignements", enseignementController.ReplaceAll)
		candidature.POST("/enseignements", enseignementController.Add)
		candidature.DELETE("/enseignements/:id", enseignementController.Delete)

		candidature.GET("/pfes", pfeController.List)
		candidature.PUT("/pfes", pfeController.ReplaceAll)
		candidature.POST("/pfes", pfeController.Add)
		candidature.PUT("/pfes/:id", pfeController.Update)
		candidature.DELETE("/pfes/:id", pfeController.Delete)

		candidature.GET("/activites", activiteController.List)
		candidature.GET("/activites/categories", activiteController.Categories)
		candidature.POST("/activites", activiteController.Save)
		candidature.PUT("/activites", activiteController.ReplaceAll)
		candidature.DELETE("/activites/:id", activiteController.Delete)

		candidature.POST("/documents", documentController.Upload)
		candidature.GET("/documents", documentController.List)
		candidature.GET("/documents/:id/download", documentController.Download)
		candidature.DELETE("/documents/:id", documentController.Delete)
	}

	// Evaluation space: commission members and the president share the
	// dossier views; the result surface is president-only.
	evaluation := api.Group("/evaluation", auth.RequireAuth(), auth.RequireRole(model.RoleCommission, model.RolePresident))
	{
		evaluation.GET("/dossiers", dossierController.List)
		evaluation.GET("/dossiers/:id", dossierController.Get)
		evaluation.GET("/dossiers/:id/documents", dossierController.Documents)
		evaluation.GET("/dossiers/:id/documents/:document_id/download", dossierController.DownloadDocument)
		evaluation.GET("/dossiers/:id/notes", dossierController.GetNotes)
		evaluation.PUT("/dossiers/:id/notes", dossierController.SaveNotes)

		president := evaluation.Group("", auth.RequireRole(model.RolePresident))
		president.GET("/dossiers/:id/result", resultController.Get)
		president.PUT("/dossiers/:id/result", resultController.Save)
		president.POST("/dossiers/:id/result/validate", resultController.Validate)
	}

	// Back office.
	admin := api.Group("/admin", auth.RequireAuth(), auth.RequireRole(model.RoleAdmin, model.RoleSysteme))
	{
		admin.GET("/users", adminController.ListUsers)
		admin.POST("/users", adminController.CreateUser)
		admin.DELETE("/users/:id", adminController.DeleteUser)
		admin.POST("/candidates", adminController.CreateCandidate)

		admin.GET("/commissions", adminController.ListCommissions)
		admin.POST("/commissions", adminController.CreateCommission)
		admin.GET("/commissions/:id/members", adminController.ListCommissionMembers)
		admin.POST("/commissions/:id/members", adminController.AddCommissionMember)
		admin.DELETE("/commissions/:id/members/:member_id", adminController.RemoveCommissionMember)

		admin.GET("/dossiers", adminController.ListDossiers)
		admin.GET("/dossiers/:id", adminController.GetDossier)
		admin.PUT("/dossiers/:id/status", adminController.TransitionDossier)

		admin.GET("/deadlines", adminController.ListDeadlines)
		admin.POST("/deadlines", adminController.CreateDeadline)
		admin.PUT("/deadlines/:id", adminController.UpdateDeadline)
		admin.DELETE("/deadlines/:id", adminController.DeleteDeadline)

		admin.GET("/analytics/overview", adminController.AnalyticsOverview)
		admin.GET("/settings", adminController.GetSettings)
		admin.PUT("/settings", adminController.UpdateSettings)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Avancement API server starting on port %s", cfg.Server.Port)
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
		&model.Candidature{},
		&model.Profile{},
		&model.Enseignement{},
		&model.Pfe{},
		&model.Activite{},
		&model.Document{},
		&model.EvaluationNote{},
		&model.Result{},
		&model.Commission{},
		&model.CommissionUser{},
		&model.Deadline{},
		&model.Setting{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
