package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/persistence/models"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/db"
)

type UserAnswerRepository struct {
	db *gorm.DB
}

func NewUserAnswerRepository(gdb *gorm.DB) *UserAnswerRepository {
	return &UserAnswerRepository{db: gdb}
}

var _ answer.AnswerRepository = (*UserAnswerRepository)(nil)

func (r *UserAnswerRepository) Upsert(ctx context.Context, a *answer.UserAnswer) error {
	model := &models.UserAnswerModel{
		UserID:               a.UserID,
		QuestionID:           a.QuestionID,
		SessionID:            a.SessionID,
		SelectedChoiceLetter: a.SelectedChoiceLetter,
		IsCorrect:            a.IsCorrect,
		TimeSpent:            a.TimeSpent,
		AnsweredAt:           a.AnsweredAt,
	}
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}, {Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"selected_choice_letter", "is_correct", "time_spent", "answered_at",
			}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user answer: %w", err)
	}
	return nil
}

func (r *UserAnswerRepository) ListBySession(ctx context.Context, userID, sessionID string) ([]*answer.UserAnswer, error) {
	var list []models.UserAnswerModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OwnedBy(userID)).
		Where("session_id = ?", sessionID).
		Order("answered_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user answers: %w", err)
	}

	out := make([]*answer.UserAnswer, len(list))
	for i, m := range list {
		out[i] = &answer.UserAnswer{
			UserID:               m.UserID,
			SessionID:            m.SessionID,
			QuestionID:           m.QuestionID,
			SelectedChoiceLetter: m.SelectedChoiceLetter,
			IsCorrect:            m.IsCorrect,
			TimeSpent:            m.TimeSpent,
			AnsweredAt:           m.AnsweredAt,
		}
	}
	return out, nil
}

func (r *UserAnswerRepository) CountBySession(ctx context.Context, userID, sessionID string) (int, int, error) {
	var counts struct {
		Correct   int
		Incorrect int
	}
	err := db.GetTxFromContext(ctx, r.db).Model(&models.UserAnswerModel{}).
		Scopes(db.OwnedBy(userID)).
		Where("session_id = ?", sessionID).
		Select("COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS correct, " +
			"COALESCE(SUM(CASE WHEN is_correct THEN 0 ELSE 1 END), 0) AS incorrect").
		Scan(&counts).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count user answers: %w", err)
	}
	return counts.Correct, counts.Incorrect, nil
}

func (r *UserAnswerRepository) AccuracyBySpecialty(ctx context.Context, userID string, since time.Time) ([]answer.SpecialtyStat, error) {
	var rows []struct {
		Specialty string
		Attempted int
		Correct   int
	}
	err := db.GetTxFromContext(ctx, r.db).
		Table("user_answers AS ua").
		Joins("JOIN questions AS q ON q.id = ua.question_id").
		Where("ua.user_id = ? AND ua.answered_at >= ?", userID, since).
		Select("q.specialty AS specialty, COUNT(*) AS attempted, " +
			"COALESCE(SUM(CASE WHEN ua.is_correct THEN 1 ELSE 0 END), 0) AS correct").
		Group("q.specialty").
		Order("q.specialty ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate accuracy by specialty: %w", err)
	}

	out := make([]answer.SpecialtyStat, len(rows))
	for i, row := range rows {
		out[i] = answer.SpecialtyStat{Specialty: row.Specialty, Attempted: row.Attempted, Correct: row.Correct}
	}
	return out, nil
}

func (r *UserAnswerRepository) AnswerTimeline(ctx context.Context, userID string, since time.Time) ([]answer.AnswerPoint, error) {
	var rows []models.UserAnswerModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OwnedBy(userID)).
		Where("answered_at >= ?", since).
		Select("answered_at", "is_correct").
		Order("answered_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load answer timeline: %w", err)
	}

	out := make([]answer.AnswerPoint, len(rows))
	for i, row := range rows {
		out[i] = answer.AnswerPoint{AnsweredAt: row.AnsweredAt, IsCorrect: row.IsCorrect}
	}
	return out, nil
}

type UserQuestionProgressRepository struct {
	db *gorm.DB
}

func NewUserQuestionProgressRepository(gdb *gorm.DB) *UserQuestionProgressRepository {
	return &UserQuestionProgressRepository{db: gdb}
}

var _ answer.ProgressRepository = (*UserQuestionProgressRepository)(nil)

func (r *UserQuestionProgressRepository) RecordAttempt(ctx context.Context, userID string, questionID uint, correct bool, at time.Time) error {
	correctInc := 0
	if correct {
		correctInc = 1
	}
	model := &models.UserQuestionProgressModel{
		UserID:         userID,
		QuestionID:     questionID,
		TimesAttempted: 1,
		TimesCorrect:   correctInc,
		LastAttempted:  &at,
		UpdatedAt:      at,
	}
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"times_attempted": gorm.Expr("times_attempted + 1"),
				"times_correct":   gorm.Expr("times_correct + ?", correctInc),
				"last_attempted":  at,
				"updated_at":      at,
			}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to record question attempt: %w", err)
	}
	return nil
}

func (r *UserQuestionProgressRepository) SetFlag(ctx context.Context, userID string, questionID uint, flagged bool, at time.Time) error {
	model := &models.UserQuestionProgressModel{
		UserID:     userID,
		QuestionID: questionID,
		IsFlagged:  flagged,
		UpdatedAt:  at,
	}
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"is_flagged": flagged,
				"updated_at": at,
			}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to set question flag: %w", err)
	}
	return nil
}

func (r *UserQuestionProgressRepository) ListByQuestions(ctx context.Context, userID string, questionIDs []uint) ([]*answer.Progress, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var list []models.UserQuestionProgressModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OwnedBy(userID)).
		Where("question_id IN ?", questionIDs).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list question progress: %w", err)
	}

	out := make([]*answer.Progress, len(list))
	for i, m := range list {
		out[i] = &answer.Progress{
			UserID:         m.UserID,
			QuestionID:     m.QuestionID,
			TimesAttempted: m.TimesAttempted,
			TimesCorrect:   m.TimesCorrect,
			IsFlagged:      m.IsFlagged,
			LastAttempted:  m.LastAttempted,
			UpdatedAt:      m.UpdatedAt,
		}
	}
	return out, nil
}

type UserNoteRepository struct {
	db *gorm.DB
}

func NewUserNoteRepository(gdb *gorm.DB) *UserNoteRepository {
	return &UserNoteRepository{db: gdb}
}

var _ answer.NoteRepository = (*UserNoteRepository)(nil)

func (r *UserNoteRepository) Upsert(ctx context.Context, n *answer.Note) error {
	model := &models.UserNoteModel{
		UserID:     n.UserID,
		QuestionID: n.QuestionID,
		Content:    n.Content,
		UpdatedAt:  n.UpdatedAt,
	}
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user note: %w", err)
	}
	return nil
}

func (r *UserNoteRepository) ListByQuestions(ctx context.Context, userID string, questionIDs []uint) ([]*answer.Note, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var list []models.UserNoteModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OwnedBy(userID)).
		Where("question_id IN ?", questionIDs).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user notes: %w", err)
	}

	out := make([]*answer.Note, len(list))
	for i, m := range list {
		out[i] = &answer.Note{UserID: m.UserID, QuestionID: m.QuestionID, Content: m.Content, UpdatedAt: m.UpdatedAt}
	}
	return out, nil
}
