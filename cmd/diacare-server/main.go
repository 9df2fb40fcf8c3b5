package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diacare/diacare/internal/config"
	"github.com/diacare/diacare/internal/domain/appointment"
	"github.com/diacare/diacare/internal/domain/assessment"
	"github.com/diacare/diacare/internal/domain/doctor"
	"github.com/diacare/diacare/internal/domain/medicalrecord"
	"github.com/diacare/diacare/internal/domain/message"
	"github.com/diacare/diacare/internal/domain/notification"
	"github.com/diacare/diacare/internal/domain/patient"
	"github.com/diacare/diacare/internal/domain/population"
	"github.com/diacare/diacare/internal/domain/prescription"
	"github.com/diacare/diacare/internal/domain/vitals"
	"github.com/diacare/diacare/internal/platform/auth"
	"github.com/diacare/diacare/internal/platform/middleware"
	"github.com/diacare/diacare/internal/platform/push"
	"github.com/diacare/diacare/internal/platform/store"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "diacare-server",
		Short: "Diabetes care API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	// Stores: local files always, remote document store when configured.
	local := store.NewLocal(cfg.DataDir)
	var remote *store.Firestore
	if cfg.RemoteConfigured() {
		remote, err = store.NewFirestore(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to remote store")
		}
		defer remote.Close()
		logger.Info().Str("project", cfg.FirebaseProjectID).Msg("remote store connected")
	} else {
		logger.Warn().Str("dir", cfg.DataDir).Msg("no remote store configured, running on local files only")
	}

	dual := func(name string) *store.Dual {
		var r store.Remote
		if remote != nil {
			r = remote.Collection(name)
		}
		return store.NewDual(name, r, local.Collection(name), logger)
	}
	var patientsRemote store.Remote
	if remote != nil {
		patientsRemote = remote.Collection(patient.CollectionName)
	}

	// Push transport
	var sender push.Sender
	if cfg.PushEnabled && cfg.RemoteConfigured() {
		fcm, err := push.NewFCMSender(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize push transport")
		}
		sender = fcm
		logger.Info().Msg("push transport ready")
	}

	// Repositories and services
	doctorRepo := doctor.NewStoreRepo(dual(doctor.CollectionName))
	patientSvc := patient.NewService(patient.NewStoreRepo(dual(patient.CollectionName)), doctorRepo)
	appointmentRepo := appointment.NewStoreRepo(dual(appointment.CollectionName))
	prescriptionSvc := prescription.NewService(prescription.NewStoreRepo(dual(prescription.CollectionName)))
	recordSvc := medicalrecord.NewService(medicalrecord.NewStoreRepo(dual(medicalrecord.CollectionName)))
	vitalsSvc := vitals.NewService(vitals.NewStoreRepo(patientsRemote, local.Collection(vitals.LocalCollectionName), logger))
	assessmentSvc := assessment.NewService(assessment.NewStoreRepo(patientsRemote, local.Collection(assessment.LocalCollectionName), logger))
	messageSvc := message.NewService(message.NewStoreRepo(dual(message.CollectionName)), patientSvc)

	notificationSvc := notification.NewService(
		notification.NewStoreRepo(dual(notification.CollectionName)),
		notification.NewStoreTokenRepo(dual(notification.TokenCollectionName)),
		sender,
		logger,
	)
	appointmentSvc := appointment.NewService(appointmentRepo, notificationSvc)
	populationSvc := population.NewService(patientSvc, vitalsSvc, prescriptionSvc, appointmentSvc)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	if cfg.IsDev() {
		api.Use(auth.DevMiddleware())
	} else {
		api.Use(auth.Middleware(cfg.JWTSecret))
	}

	patient.NewHandler(patientSvc).RegisterRoutes(api)
	appointment.NewHandler(appointmentSvc).RegisterRoutes(api)
	prescription.NewHandler(prescriptionSvc).RegisterRoutes(api)
	medicalrecord.NewHandler(recordSvc).RegisterRoutes(api)
	vitals.NewHandler(vitalsSvc).RegisterRoutes(api)
	assessment.NewHandler(assessmentSvc).RegisterRoutes(api)
	message.NewHandler(messageSvc).RegisterRoutes(api)
	notification.NewHandler(notificationSvc).RegisterRoutes(api)
	population.NewHandler(populationSvc).RegisterRoutes(api)

	// Start
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	// Graceful shutdown: stop accepting requests, then drain pending push
	// deliveries before exiting.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
	notificationSvc.Flush()
	return nil
}
