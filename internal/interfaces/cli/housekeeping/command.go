// Package housekeeping exposes one-shot maintenance runs for cron or operators.
package housekeeping

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	authusecases "github.com/soripaulos/medical-quiz-app-sub001/internal/application/authsession/usecases"
	quizusecases "github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/usecases"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/database"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/repository"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/cli/bootstrap"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

var (
	env     string
	daysOld int
)

func NewSweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Repair orphaned quiz sessions once",
		Long:  `Clear dangling active-session pointers and abandon sessions with no activity inside the abandon window, for every user.`,
		RunE:  runSweep,
	}
	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	return cmd
}

func NewCleanupSessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup-sessions",
		Short: "Purge ended auth sessions",
		Long:  `Hard-delete ended auth sessions older than the retention window. Active sessions are kept.`,
		RunE:  runCleanupSessions,
	}
	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().IntVar(&daysOld, "days-old", 0, "Retention window in days (0 uses session.retention_days)")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := database.Get()
	uc := quizusecases.NewSweepAllUseCase(
		repository.NewQuizSessionRepository(db),
		repository.NewUserAnswerRepository(db),
		repository.NewUserProfileRepository(db),
		cfg.Quiz.AbandonAfter,
		cfg.Quiz.SweepBatch,
		nil,
		log,
	)

	result, err := uc.Execute(ctx)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	fmt.Printf("pointers cleared: %d\nsessions abandoned: %d\n", result.PointersCleared, result.Abandoned)
	for _, d := range result.Degraded {
		fmt.Printf("degraded: %s\n", d)
	}
	return nil
}

func runCleanupSessions(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	uc := authusecases.NewCleanupAuthSessionsUseCase(
		repository.NewAuthSessionRepository(database.Get()),
		cfg.Session.RetentionDays,
		log,
	)

	result, err := uc.Execute(cmd.Context(), authusecases.CleanupAuthSessionsCommand{DaysOld: daysOld})
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	fmt.Printf("deleted %d auth sessions ended before %s\n", result.Deleted, result.Cutoff.Format("2006-01-02 15:04:05"))
	return nil
}
