package quizsession

import (
	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/usecases"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
)

type CreateSessionRequest struct {
	Name          string          `json:"session_name" binding:"required,max=200"`
	SessionType   string          `json:"session_type" binding:"required,oneof=practice exam"`
	Mode          string          `json:"session_mode" binding:"omitempty,max=50"`
	Filters       question.Filter `json:"filters"`
	QuestionIDs   []uint          `json:"question_ids" binding:"omitempty,max=500,dive,gt=0"`
	QuestionCount int             `json:"question_count" binding:"omitempty,min=1,max=500"`
	TimeLimit     *int            `json:"time_limit" binding:"omitempty,min=1"`
	Randomize     bool            `json:"randomize"`
	TrackProgress *bool           `json:"track_progress"`
}

func (r *CreateSessionRequest) ToCommand(userID string) usecases.CreateQuizSessionCommand {
	trackProgress := true
	if r.TrackProgress != nil {
		trackProgress = *r.TrackProgress
	}
	return usecases.CreateQuizSessionCommand{
		UserID:        userID,
		Name:          r.Name,
		SessionType:   r.SessionType,
		Mode:          r.Mode,
		Filters:       r.Filters,
		QuestionIDs:   r.QuestionIDs,
		QuestionCount: r.QuestionCount,
		TimeLimit:     r.TimeLimit,
		Randomize:     r.Randomize,
		TrackProgress: trackProgress,
	}
}

type RecordAnswerRequest struct {
	Choice    string `json:"choice" binding:"required" validate:"choice_letter"`
	IsCorrect bool   `json:"is_correct"`
	TimeSpent int    `json:"time_spent" binding:"min=0"`
}

type FlagQuestionRequest struct {
	Flagged bool `json:"flagged"`
}

type PauseSessionRequest struct {
	TimeRemaining *int `json:"time_remaining" binding:"omitempty,min=0"`
}

type SyncTimeRequest struct {
	ElapsedSeconds int  `json:"elapsed_seconds" binding:"min=0"`
	TimeRemaining  *int `json:"time_remaining" binding:"omitempty,min=0"`
}
