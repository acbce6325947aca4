package main

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jobdeck/jobboard-api/internal/auth"
	"github.com/jobdeck/jobboard-api/internal/config"
	"github.com/jobdeck/jobboard-api/internal/database"
	"github.com/jobdeck/jobboard-api/internal/handlers"
	"github.com/jobdeck/jobboard-api/internal/middleware"
	"github.com/jobdeck/jobboard-api/internal/models"
	"github.com/jobdeck/jobboard-api/internal/services"
	"github.com/jobdeck/jobboard-api/internal/storage"
)

func main() {
	// 1. Load environment variables (.env is optional outside dev)
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("loading config: ", err)
	}
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Database connection + migrations
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logrus.Fatal("connecting to database: ", err)
	}

	// 3. Core services
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	authService := services.NewAuthService(db, tokens)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db)
	userService := services.NewUserService(db)
	statsService := services.NewStatsService(db)

	resumes, err := storage.NewResumeStore(cfg.Uploads.Dir)
	if err != nil {
		logrus.Fatal("preparing upload dir: ", err)
	}

	// 4. Handlers
	authHandler := handlers.NewAuthHandler(authService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, resumes)
	userHandler := handlers.NewUserHandler(userService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// 5. Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	requireAuth := middleware.RequireAuth(tokens, authService)
	optionalAuth := middleware.OptionalAuth(tokens, authService)

	// 6. Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", requireAuth, authHandler.Me)
		api.PUT("/auth/me", requireAuth, authHandler.UpdateProfile)

		// Public job feed; a bearer token is honored so owners see their
		// own unapproved listings.
		api.GET("/jobs", jobHandler.List)
		api.GET("/jobs/:id", optionalAuth, jobHandler.Get)

		jobs := api.Group("/jobs", requireAuth)
		{
			jobs.POST("", middleware.RequireRoles(models.RoleCompany, models.RoleAdmin), jobHandler.Create)
			jobs.PUT("/:id", middleware.RequireRoles(models.RoleCompany, models.RoleAdmin), jobHandler.Update)
			jobs.DELETE("/:id", middleware.RequireRoles(models.RoleCompany, models.RoleAdmin), jobHandler.Delete)
			jobs.POST("/:id/apply", middleware.RequireRoles(models.RoleApplicant), applicationHandler.Apply)
			jobs.GET("/:id/applications", middleware.RequireRoles(models.RoleCompany, models.RoleAdmin), applicationHandler.ListForJob)
		}

		apps := api.Group("/applications", requireAuth)
		{
			apps.GET("", applicationHandler.List)
			apps.GET("/:id", applicationHandler.Get)
			apps.PUT("/:id/status", middleware.RequireRoles(models.RoleCompany), applicationHandler.UpdateStatus)
		}

		company := api.Group("/company", requireAuth, middleware.RequireRoles(models.RoleCompany))
		{
			company.GET("/jobs", jobHandler.ListOwn)
			company.GET("/stats", statsHandler.Company)
		}

		api.GET("/applicant/stats", requireAuth, middleware.RequireRoles(models.RoleApplicant), statsHandler.Applicant)

		users := api.Group("/users", requireAuth)
		{
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), userHandler.Delete)
		}

		admin := api.Group("/admin", requireAuth, middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/users", userHandler.List)
			admin.GET("/jobs", jobHandler.ListAll)
			admin.PUT("/jobs/:id/approval", jobHandler.SetApproval)
			admin.GET("/stats", statsHandler.Admin)
		}
	}

	// 7. Serve
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logrus.Infof("server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatal("server failed to start: ", err)
	}
}
