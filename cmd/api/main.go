package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medconnect/hospital-booking/cmd/mainconfig"
	"github.com/medconnect/hospital-booking/internal/api/router"
	"github.com/medconnect/hospital-booking/internal/appointments"
	"github.com/medconnect/hospital-booking/internal/audio"
	appconfig "github.com/medconnect/hospital-booking/internal/config"
	"github.com/medconnect/hospital-booking/internal/doctors"
	"github.com/medconnect/hospital-booking/internal/notify"
	"github.com/medconnect/hospital-booking/internal/observability/metrics"
	"github.com/medconnect/hospital-booking/internal/patients"
	"github.com/medconnect/hospital-booking/internal/video"
	"github.com/medconnect/hospital-booking/pkg/logging"
)

func main() {
	// Load .env when present, real env always wins.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting hospital-booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	pool := connectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pool != nil {
		defer pool.Close()
	}

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	// Repositories: Postgres when configured, in-memory otherwise so the
	// service still runs in local demos.
	var (
		doctorRepo      doctors.Repository
		patientRepo     patients.Repository
		appointmentRepo appointments.Repository
	)
	if pool != nil {
		doctorRepo = doctors.NewPostgresRepository(pool)
		patientRepo = patients.NewPostgresRepository(pool)
		appointmentRepo = appointments.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		doctorRepo = doctors.NewInMemoryRepository()
		patientRepo = patients.NewInMemoryRepository()
		appointmentRepo = appointments.NewInMemoryRepository()
	}

	// Audio storage (soft dependency).
	var audioStore appointments.AudioUploader
	if cfg.AudioBucket != "" {
		audioStore = audio.NewStore(s3.NewFromConfig(awsCfg), audio.Config{
			Bucket:    cfg.AudioBucket,
			KeyPrefix: cfg.AudioKeyPrefix,
			Region:    cfg.AWSRegion,
			BaseURL:   cfg.AWSEndpointOverride,
		}, logger)
	} else {
		logger.Warn("AUDIO_BUCKET not set, audio recordings will not be stored")
	}

	// Email (soft dependency).
	sesClient := sesv2.NewFromConfig(awsCfg)
	emailSender := setupEmailSender(cfg, sesClient, logger)
	notifier := notify.NewService(emailSender, logger)

	// Video provisioning (soft dependency): the API client when configured,
	// always wrapped so confirmation can fall back to the static link.
	videoProvider := setupVideoProvider(cfg, logger)

	bookingMetrics, metricsHandler := setupBookingMetrics()

	service := appointments.NewService(
		doctorRepo,
		patientRepo,
		appointmentRepo,
		audioStore,
		notifier,
		videoProvider,
		cfg.FallbackMeetLink,
		bookingMetrics,
		logger,
	)

	auth := doctors.NewAuthenticator(doctorRepo, cfg.JWTSecret, cfg.TokenExpiry, logger)

	r := router.New(&router.Config{
		Logger:              logger,
		DoctorsHandler:      doctors.NewHandler(doctorRepo, auth, logger),
		AppointmentsHandler: appointments.NewHandler(service, logger),
		MetricsHandler:      metricsHandler,
		JWTSecret:           cfg.JWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerSecond:  cfg.RateLimitPerSecond,
		RateLimitBurst:      cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// connectPostgresPool returns a pgx pool, or nil when no URL is configured.
func connectPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) *pgxpool.Pool {
	if databaseURL == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		os.Exit(1)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Error("failed to ping postgres", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to postgres")
	return pool
}

// setupEmailSender picks the provider: explicit EMAIL_PROVIDER wins, "auto"
// prefers SendGrid when a key is present and falls back to SES, and with no
// usable provider emails are logged by the stub sender.
func setupEmailSender(cfg *appconfig.Config, sesClient *sesv2.Client, logger *logging.Logger) notify.EmailSender {
	ses := func() notify.EmailSender {
		if cfg.EmailFromAddress == "" {
			return nil
		}
		s := notify.NewSESSender(sesClient, notify.SESConfig{
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
		if s == nil {
			return nil
		}
		return s
	}
	sendgrid := func() notify.EmailSender {
		s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
		if s == nil {
			return nil
		}
		return s
	}

	var sender notify.EmailSender
	switch cfg.EmailProvider {
	case "ses":
		sender = ses()
	case "sendgrid":
		sender = sendgrid()
	case "stub":
	default: // auto
		if sender = sendgrid(); sender == nil {
			sender = ses()
		}
	}
	if sender == nil {
		logger.Warn("no email provider configured, using stub sender")
		sender = notify.NewStubEmailSender(logger)
	}
	return sender
}

// setupVideoProvider wires the external video API when configured and always
// keeps the static Meet link as the fallback.
func setupVideoProvider(cfg *appconfig.Config, logger *logging.Logger) video.Provider {
	client := video.NewAPIClient(video.ClientConfig{
		BaseURL:   cfg.VideoAPIBaseURL,
		APIKey:    cfg.VideoAPIKey,
		APISecret: cfg.VideoAPISecret,
		PublicURL: cfg.PublicBaseURL,
	}, logger)
	if client == nil {
		logger.Warn("video API not configured, confirmations will use the fallback meet link")
		return video.NewStaticProvider(cfg.FallbackMeetLink)
	}
	return video.NewFallbackProvider(client, cfg.FallbackMeetLink, logger)
}

// setupBookingMetrics registers the appointment metrics on a private
// registry together with the standard process and Go collectors.
func setupBookingMetrics() (*metrics.BookingMetrics, http.Handler) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewBookingMetrics(reg)
	return m, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
