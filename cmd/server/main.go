package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"github.com/yusufkecer/body-composition-backend/internal/bodycomp"
	"github.com/yusufkecer/body-composition-backend/internal/config"
	"github.com/yusufkecer/body-composition-backend/internal/db"
	"github.com/yusufkecer/body-composition-backend/internal/handler"
	"github.com/yusufkecer/body-composition-backend/internal/logging"
	"github.com/yusufkecer/body-composition-backend/internal/metrics"
	"github.com/yusufkecer/body-composition-backend/internal/middleware"
	"github.com/yusufkecer/body-composition-backend/internal/repository"
	"github.com/yusufkecer/body-composition-backend/internal/service"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("failed to read .env: %v", err)
	}
	cfg := config.Load()

	logging.Setup(logging.SetupParams{
		LogFileName:   cfg.LogFile,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
	})

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable must be set")
	}

	constants := bodycomp.DefaultConstants()
	if cfg.ConstantsFile != "" {
		var err error
		if constants, err = bodycomp.LoadConstants(cfg.ConstantsFile); err != nil {
			log.Fatalf("failed to load body composition constants: %v", err)
		}
		log.WithField("file", cfg.ConstantsFile).Info("loaded body composition constants")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, database); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager("bodycomp", "server", reg)

	accountRepo := repository.NewAccountRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	measurementRepo := repository.NewMeasurementRepository(database)
	workoutRepo := repository.NewWorkoutRepository(database)

	var history service.TrainingHistory = service.NoTrainingHistory{}
	if cfg.TrainingHistoryEnabled {
		history = workoutRepo
	}
	bodyCompService := service.NewBodyCompositionService(
		profileRepo,
		measurementRepo,
		history,
		bodycomp.NewCalculator(constants),
		metricsManager,
	)

	router := handler.NewRouter(handler.RouterParams{
		JWTSecret:       cfg.JWTSecret,
		APIKey:          cfg.APIKey,
		AllowedOrigins:  cfg.AllowedOrigins,
		DB:              database,
		Metrics:         metricsManager,
		Gatherer:        reg,
		Auth:            handler.NewAuthHandler(cfg.JWTSecret, accountRepo),
		Profile:         handler.NewProfileHandler(profileRepo),
		Measurements:    handler.NewMeasurementHandler(measurementRepo, profileRepo),
		Workouts:        handler.NewWorkoutHandler(workoutRepo),
		BodyComposition: handler.NewBodyCompositionHandler(bodyCompService),
		LoginLimiter:    middleware.NewRateLimiter(5, 15*time.Minute),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}
