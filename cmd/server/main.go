package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "teamhealth/docs"
	"teamhealth/internal/cache"
	"teamhealth/internal/config"
	"teamhealth/internal/logging"
	"teamhealth/internal/repository"
	"teamhealth/internal/service"
	"teamhealth/internal/transport/rest"
	"teamhealth/internal/transport/ws"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// @title Team Health API
// @version 1.0
// @description Team effectiveness survey scoring, team reports and organization rollups
// @host localhost:8080
// @BasePath /v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return err
	}
	defer mongoClient.Disconnect(context.Background())

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		return err
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	db := mongoClient.Database(cfg.Mongo.Database)
	repository.EnsureIndexes(ctx, db, logger)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return err
	}
	logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

	wsHub := ws.NewHub(logger)
	defer wsHub.Close()

	orgRepo := repository.NewOrganizationRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)
	participantRepo := repository.NewParticipantRepo(db)
	reportRepo := repository.NewReportRepo(db)

	reportCache := cache.NewReportCache(rdb, cfg.Redis.ReportTTL)
	ranking := cache.NewRankingCache(rdb)
	sessions := cache.NewSessionCache(rdb)

	if cfg.Auth.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD not set, admin login is disabled")
	}
	if !cfg.MailEnabled() {
		logger.Warn("MAIL_API_KEY not set, mail is logged instead of sent")
	}

	authSvc := service.NewAuthService(cfg.Auth, sessions, logger)
	orgSvc := service.NewOrganizationService(orgRepo, assessmentRepo, logger)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, participantRepo, orgRepo, logger)
	submissionSvc := service.NewSubmissionService(participantRepo, assessmentRepo, reportCache, logger)
	reportSvc := service.NewReportService(assessmentRepo, participantRepo, reportRepo, orgRepo, reportCache, ranking, logger)
	exportSvc := service.NewExportService(assessmentRepo, participantRepo)
	mailer := service.NewMailer(cfg.Mail, logger)
	notifySvc := service.NewNotificationService(assessmentRepo, participantRepo, orgRepo, reportSvc, mailer, cfg.Mail.SendDelay, cfg.Mail.SurveyURL, logger)

	// wsHub implements service.Broadcaster
	submissionSvc.SetBroadcaster(wsHub)
	reportSvc.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AuthService:         authSvc,
		OrganizationService: orgSvc,
		AssessmentService:   assessmentSvc,
		SubmissionService:   submissionSvc,
		ReportService:       reportSvc,
		ExportService:       exportSvc,
		NotificationService: notifySvc,
		WSHub:               wsHub,
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.Strings("endpoints", []string{
			"POST /v1/auth/login",
			"GET  /v1/questions",
			"POST /v1/participants/{code}/responses",
			"/v1/organizations",
			"/v1/assessments",
			"WS   /v1/ws/assessments/{id}",
			"WS   /v1/ws/organizations/{id}",
		}))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down server", zap.Stringer("signal", sig))
	case err := <-errCh:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}
