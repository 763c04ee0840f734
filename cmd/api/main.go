package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/mobimama/mobimama-api/internal/config"
	"github.com/mobimama/mobimama-api/internal/email"
	adminHandler "github.com/mobimama/mobimama-api/internal/handler/admin"
	authHandler "github.com/mobimama/mobimama-api/internal/handler/auth"
	motherHandler "github.com/mobimama/mobimama-api/internal/handler/mother"
	publicHandler "github.com/mobimama/mobimama-api/internal/handler/public"
	staffHandler "github.com/mobimama/mobimama-api/internal/handler/staff"
	"github.com/mobimama/mobimama-api/internal/i18n"
	"github.com/mobimama/mobimama-api/internal/middleware"
	"github.com/mobimama/mobimama-api/internal/repository/postgres"
	"github.com/mobimama/mobimama-api/internal/router"
	"github.com/mobimama/mobimama-api/internal/session"
	appointmentService "github.com/mobimama/mobimama-api/internal/service/appointment"
	assistantService "github.com/mobimama/mobimama-api/internal/service/assistant"
	authService "github.com/mobimama/mobimama-api/internal/service/auth"
	clinicService "github.com/mobimama/mobimama-api/internal/service/clinic"
	tipService "github.com/mobimama/mobimama-api/internal/service/tip"
	userService "github.com/mobimama/mobimama-api/internal/service/user"
	"github.com/mobimama/mobimama-api/pkg/logger"
	"github.com/mobimama/mobimama-api/pkg/metrics"
)

func main() {
	// .env is optional; deployed environments set real variables.
	_ = godotenv.Load()

	log := logger.New(nil)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	sessions, err := session.NewRedisStore(cfg.Redis.URL, cfg.Session.TTL)
	if err != nil {
		log.Warn("redis unavailable, using in-process sessions", map[string]interface{}{"error": err.Error()})
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}
	tokens := session.NewTokenCodec(cfg.Secrets.SessionSecret, cfg.Session.TTL)

	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	clinicRepo := postgres.NewClinicRepository(base)
	tipRepo := postgres.NewTipRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)

	var notifier email.Notifier = email.Noop{}
	if cfg.Secrets.SMTPHost != "" && cfg.Secrets.ClinicInbox != "" {
		notifier = email.NewService(email.Config{
			Host:        cfg.Secrets.SMTPHost,
			Port:        cfg.Secrets.SMTPPort,
			Username:    cfg.Secrets.SMTPUser,
			Password:    cfg.Secrets.SMTPPassword,
			From:        cfg.Secrets.SMTPUser,
			ClinicInbox: cfg.Secrets.ClinicInbox,
		})
	}

	m := metrics.New("mobimama")

	authSvc := authService.NewService(userRepo, sessions, tokens)
	tipSvc := tipService.NewService(tipRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, clinicRepo, notifier, log)
	clinicSvc := clinicService.NewService(clinicRepo)
	userSvc := userService.NewService(userRepo, clinicRepo, appointmentRepo)
	assistantSvc := assistantService.NewService(assistantService.Config{
		APIKey:  cfg.Secrets.GeminiAPIKey,
		Model:   cfg.Assistant.Model,
		Timeout: cfg.Assistant.Timeout,
	}, m, log)

	bundle := i18n.NewBundle()

	r := router.New(
		router.Config{
			RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:      cfg.RateLimit.Burst,
			RequestTimeout: cfg.Server.RequestTimeout,
			CORS:           middleware.DefaultCORSConfig(),
		},
		log,
		m,
		authSvc,
		sessions,
		bundle,
		authHandler.NewHandler(authSvc),
		publicHandler.NewHandler(tipSvc, bundle, cfg.Server.AudioDir),
		motherHandler.NewHandler(tipSvc, appointmentSvc, assistantSvc),
		staffHandler.NewHandler(tipSvc, appointmentSvc),
		adminHandler.NewHandler(userSvc, clinicSvc, appointmentSvc),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server starting", map[string]interface{}{"port": cfg.Server.Port})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
