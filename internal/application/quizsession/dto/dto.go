package dto

import (
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
)

type QuizSessionDTO struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"session_name"`
	Type                 string              `json:"session_type"`
	Mode                 string              `json:"session_mode,omitempty"`
	Status               string              `json:"status"`
	IsActive             bool                `json:"is_active"`
	IsPaused             bool                `json:"is_paused"`
	TrackProgress        bool                `json:"track_progress"`
	TotalQuestions       int                 `json:"total_questions"`
	CurrentQuestionIndex int                 `json:"current_question_index"`
	TimeLimit            *int                `json:"time_limit,omitempty"`
	TimeRemaining        *int                `json:"time_remaining,omitempty"`
	QuestionsOrder       []uint              `json:"questions_order"`
	Filters              question.Filter     `json:"filters"`
	ActiveTimeSeconds    int                 `json:"active_time_seconds"`
	TotalTimeSpent       int                 `json:"total_time_spent"`
	Metrics              quizsession.Metrics `json:"metrics"`
	Score                float64             `json:"score"`
	CreatedAt            time.Time           `json:"created_at"`
	LastActivityAt       *time.Time          `json:"last_activity_at,omitempty"`
	CompletedAt          *time.Time          `json:"completed_at,omitempty"`
	AbandonedAt          *time.Time          `json:"abandoned_at,omitempty"`
}

func ToQuizSessionDTO(s *quizsession.QuizSession) *QuizSessionDTO {
	if s == nil {
		return nil
	}
	return &QuizSessionDTO{
		ID:                   s.ID,
		Name:                 s.Name,
		Type:                 string(s.Type),
		Mode:                 s.Mode,
		Status:               s.Status.String(),
		IsActive:             s.IsActive,
		IsPaused:             s.IsPaused,
		TrackProgress:        s.TrackProgress,
		TotalQuestions:       s.TotalQuestions,
		CurrentQuestionIndex: s.CurrentQuestionIndex,
		TimeLimit:            s.TimeLimit,
		TimeRemaining:        s.TimeRemaining,
		QuestionsOrder:       s.QuestionsOrder,
		Filters:              s.Filters,
		ActiveTimeSeconds:    s.ActiveTimeSeconds,
		TotalTimeSpent:       s.TotalTimeSpent,
		Metrics:              s.Metrics,
		Score:                s.Score(),
		CreatedAt:            s.CreatedAt,
		LastActivityAt:       s.LastActivityAt,
		CompletedAt:          s.CompletedAt,
		AbandonedAt:          s.AbandonedAt,
	}
}

func ToQuizSessionDTOs(list []*quizsession.QuizSession) []*QuizSessionDTO {
	out := make([]*QuizSessionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, ToQuizSessionDTO(s))
	}
	return out
}

type AnswerDTO struct {
	QuestionID           uint      `json:"question_id"`
	SelectedChoiceLetter string    `json:"selected_choice_letter"`
	IsCorrect            bool      `json:"is_correct"`
	TimeSpent            int       `json:"time_spent"`
	AnsweredAt           time.Time `json:"answered_at"`
}

func ToAnswerDTO(a *answer.UserAnswer) *AnswerDTO {
	return &AnswerDTO{
		QuestionID:           a.QuestionID,
		SelectedChoiceLetter: a.SelectedChoiceLetter,
		IsCorrect:            a.IsCorrect,
		TimeSpent:            a.TimeSpent,
		AnsweredAt:           a.AnsweredAt,
	}
}

// ResultItemDTO is one question of a results view in presentation order.
type ResultItemDTO struct {
	Order           int               `json:"order"`
	QuestionID      uint              `json:"question_id"`
	Specialty       string            `json:"specialty"`
	ExamType        string            `json:"exam_type"`
	Year            int               `json:"year"`
	Difficulty      string            `json:"difficulty"`
	Stem            string            `json:"stem"`
	Choices         map[string]string `json:"choices"`
	CorrectChoice   string            `json:"correct_choice_letter"`
	SelectedChoice  string            `json:"selected_choice_letter,omitempty"`
	Answered        bool              `json:"answered"`
	IsCorrect       bool              `json:"is_correct"`
	TimeSpent       int               `json:"time_spent"`
	ExplanationHTML string            `json:"explanation_html"`
	Note            string            `json:"note,omitempty"`
	Flagged         bool              `json:"flagged"`
}

type ResultsDTO struct {
	Session *QuizSessionDTO     `json:"session"`
	Metrics quizsession.Metrics `json:"metrics"`
	Score   float64             `json:"score"`
	Items   []*ResultItemDTO    `json:"items"`
}

type ActiveTimeDTO struct {
	SessionID         string     `json:"session_id"`
	Status            string     `json:"status"`
	ActiveTimeSeconds int        `json:"active_time_seconds"`
	TimeRemaining     *int       `json:"time_remaining,omitempty"`
	LastActivityAt    *time.Time `json:"last_activity_at,omitempty"`
}
