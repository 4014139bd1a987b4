package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"fitness-intake-backend/internal/config"
	"fitness-intake-backend/internal/database"
	"fitness-intake-backend/internal/draft"
	"fitness-intake-backend/internal/handlers"
	"fitness-intake-backend/internal/middleware"
	"fitness-intake-backend/internal/submission"
	"fitness-intake-backend/internal/supabase"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Direct Postgres connection: the server's write/read path and migrations.
	var dbClient *supabase.DatabaseClient
	if cfg.DatabaseURL != "" {
		dbClient, err = supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			logrus.WithError(err).Warn("failed to initialize database client; admin and submission endpoints will be limited")
		} else {
			defer dbClient.Close()

			migrator, err := database.NewMigrator(cfg.DatabaseURL)
			if err != nil {
				logrus.WithError(err).Warn("failed to initialize migrator")
			} else {
				defer migrator.Close()
				if err := migrator.Run(); err != nil {
					logrus.WithError(err).Warn("migration failed")
				} else {
					logrus.Info("migrations completed")
				}
			}
		}
	} else {
		logrus.Warn("DATABASE_URL not set; submissions cannot be persisted")
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseStorageBucket)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize storage client")
	}

	authClient := supabase.NewAuthClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)

	draftDir := cfg.DraftDir
	if draftDir == "" {
		draftDir, err = draft.DefaultDir()
		if err != nil {
			logrus.WithError(err).Fatal("failed to resolve draft directory")
		}
	}
	draftStore, err := draft.NewStore(draftDir)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize draft store")
	}

	flusher := draft.NewFlusher(draftStore, 5*time.Second)
	flushCtx, stopFlusher := context.WithCancel(context.Background())
	defer stopFlusher()
	go flusher.Run(flushCtx)

	policy := submission.TolerateSecondary
	if cfg.SubmissionRollbackPolicy == "strict" {
		policy = submission.StrictRollback
	}
	var sagaStore submission.Store
	if dbClient != nil {
		sagaStore = dbClient
	}
	saga := submission.NewSaga(sagaStore, storageClient, policy)

	questionnaireHandler := handlers.NewQuestionnaireHandler(draftStore, flusher, saga)
	uploadHandler := handlers.NewUploadHandler(storageClient)
	authHandler := handlers.NewAuthHandler(authClient)
	submissionsHandler := handlers.NewSubmissionsHandler(dbClient)
	exportHandler := handlers.NewExportHandler(dbClient)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")

	api.POST("/auth/login", authHandler.Login)

	// Questionnaire endpoints are keyed by a client-generated token; no auth.
	q := api.Group("/questionnaire/:client_id")
	q.GET("", questionnaireHandler.GetState)
	q.POST("/answers", questionnaireHandler.SaveAnswers)
	q.POST("/next", questionnaireHandler.Next)
	q.POST("/previous", questionnaireHandler.Previous)
	q.POST("/uploads", uploadHandler.Upload)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.GET("/submissions", submissionsHandler.List)
	admin.GET("/submissions/:submission_id", submissionsHandler.Get)
	admin.GET("/export", exportHandler.Export)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logrus.WithField("port", cfg.Port).Info("server starting")
	if err := server.ListenAndServe(); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
