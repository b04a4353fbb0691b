// Package seed imports question banks into the database.
package seed

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/question/usecases"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/database"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/repository"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/cli/bootstrap"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

var (
	env  string
	file string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import a YAML question bank",
		Long:  `Upsert questions from a YAML file. Invalid entries are skipped and listed.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the question bank (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	_, log, err := bootstrap.Init(env)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open question bank: %w", err)
	}
	defer f.Close()

	uc := usecases.NewImportQuestionsUseCase(repository.NewQuestionRepository(database.Get()), log)
	result, err := uc.Execute(cmd.Context(), f)
	if err != nil {
		return err
	}

	fmt.Printf("imported %d questions from %s\n", result.Imported, file)
	for _, s := range result.Skipped {
		fmt.Printf("skipped: %s\n", s)
	}
	return nil
}
