package http

import (
	"gorm.io/gorm"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	questionRepo    *repository.QuestionRepository
	quizSessionRepo *repository.QuizSessionRepository
	answerRepo      *repository.UserAnswerRepository
	progressRepo    *repository.UserQuestionProgressRepository
	noteRepo        *repository.UserNoteRepository
	authSessionRepo *repository.AuthSessionRepository
	profileRepo     *repository.UserProfileRepository
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		questionRepo:    repository.NewQuestionRepository(db),
		quizSessionRepo: repository.NewQuizSessionRepository(db),
		answerRepo:      repository.NewUserAnswerRepository(db),
		progressRepo:    repository.NewUserQuestionProgressRepository(db),
		noteRepo:        repository.NewUserNoteRepository(db),
		authSessionRepo: repository.NewAuthSessionRepository(db),
		profileRepo:     repository.NewUserProfileRepository(db),
	}
}
