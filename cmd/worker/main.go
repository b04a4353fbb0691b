package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authusecases "github.com/soripaulos/medical-quiz-app-sub001/internal/application/authsession/usecases"
	quizusecases "github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/usecases"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/database"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/metrics"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/repository"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/scheduler"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/cli/bootstrap"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/goroutine"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

const (
	authCleanupCron    = "30 3 * * *"
	jobTimeout         = 2 * time.Minute
	metricsListenAddr  = ":9091"
	metricsStopTimeout = 5 * time.Second
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		fmt.Printf("failed to start worker: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("starting housekeeping worker", "environment", env)

	db := database.Get()
	sessionRepo := repository.NewQuizSessionRepository(db)
	answerRepo := repository.NewUserAnswerRepository(db)
	profileRepo := repository.NewUserProfileRepository(db)
	authSessionRepo := repository.NewAuthSessionRepository(db)

	m := metrics.New()

	sweep := quizusecases.NewSweepAllUseCase(
		sessionRepo, answerRepo, profileRepo, cfg.Quiz.AbandonAfter, cfg.Quiz.SweepBatch, m, log,
	)
	cleanup := authusecases.NewCleanupAuthSessionsUseCase(authSessionRepo, cfg.Session.RetentionDays, log)

	manager, err := scheduler.NewSchedulerManager(log, m)
	if err != nil {
		log.Fatalw("failed to create scheduler", "error", err)
	}
	if err := manager.RegisterIntervalJob(sweep, cfg.Quiz.SweepInterval, jobTimeout); err != nil {
		log.Fatalw("failed to register sweep job", "error", err)
	}
	if err := manager.RegisterCronJob(cleanup, authCleanupCron, jobTimeout); err != nil {
		log.Fatalw("failed to register auth session cleanup job", "error", err)
	}

	metricsSrv := &http.Server{
		Addr:              metricsListenAddr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	goroutine.SafeGo(log, "worker-metrics", func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("metrics listener stopped", "error", err)
		}
	})

	manager.Start()
	log.Infow("housekeeping worker started",
		"sweep_interval", cfg.Quiz.SweepInterval,
		"auth_cleanup_cron", authCleanupCron)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Infow("received signal, shutting down", "signal", sig)

	if err := manager.Stop(); err != nil {
		log.Errorw("scheduler shutdown failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), metricsStopTimeout)
	defer cancel()
	if err := metricsSrv.Shutdown(ctx); err != nil {
		log.Errorw("metrics listener shutdown failed", "error", err)
	}

	log.Infow("housekeeping worker stopped")
}
