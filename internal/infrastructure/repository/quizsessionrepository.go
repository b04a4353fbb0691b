package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/persistence/mappers"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/persistence/models"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/db"
	apperrors "github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
)

// activityColumns are written only through CompareAndTouch and SyncTime.
var activityColumns = []string{"active_time_seconds", "activity_version", "last_activity_at"}

type QuizSessionRepository struct {
	db     *gorm.DB
	mapper mappers.QuizSessionMapper
}

func NewQuizSessionRepository(gdb *gorm.DB) *QuizSessionRepository {
	return &QuizSessionRepository{
		db:     gdb,
		mapper: mappers.NewQuizSessionMapper(),
	}
}

var _ quizsession.Repository = (*QuizSessionRepository)(nil)

func (r *QuizSessionRepository) Create(ctx context.Context, s *quizsession.QuizSession, questions []quizsession.SessionQuestion) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create quiz session: %w", err)
	}

	rows := make([]models.SessionQuestionModel, len(questions))
	for i, q := range questions {
		rows[i] = models.SessionQuestionModel{
			SessionID:     q.SessionID,
			QuestionID:    q.QuestionID,
			QuestionOrder: q.Order,
		}
	}
	if len(rows) > 0 {
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return fmt.Errorf("failed to create session questions: %w", err)
		}
	}
	return nil
}

func (r *QuizSessionRepository) GetByID(ctx context.Context, sessionID string) (*quizsession.QuizSession, error) {
	var model models.QuizSessionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", sessionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("quiz session not found")
		}
		return nil, fmt.Errorf("failed to get quiz session: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// Update writes the lifecycle columns of s. Activity columns and the exam
// timer are left to their dedicated writers.
func (r *QuizSessionRepository) Update(ctx context.Context, s *quizsession.QuizSession) error {
	return r.update(ctx, s, "time_remaining")
}

// UpdateWithTimer is Update plus time_remaining.
func (r *QuizSessionRepository) UpdateWithTimer(ctx context.Context, s *quizsession.QuizSession) error {
	return r.update(ctx, s)
}

func (r *QuizSessionRepository) update(ctx context.Context, s *quizsession.QuizSession, extraOmit ...string) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		return err
	}

	// RowsAffected is not checked: MySQL reports 0 for an unchanged row.
	omit := append([]string{"id", "user_id", "created_at"}, activityColumns...)
	omit = append(omit, extraOmit...)
	err = db.GetTxFromContext(ctx, r.db).Model(model).
		Where("user_id = ?", s.UserID).
		Select("*").Omit(omit...).
		Updates(model).Error
	if err != nil {
		return fmt.Errorf("failed to update quiz session: %w", err)
	}
	return nil
}

// UpdateProgress writes the question cursor and the created->active
// transition. A session paused or closed since it was loaded is left as is.
func (r *QuizSessionRepository) UpdateProgress(ctx context.Context, s *quizsession.QuizSession) error {
	err := db.GetTxFromContext(ctx, r.db).Model(&models.QuizSessionModel{}).
		Where("id = ? AND user_id = ? AND status IN ?", s.ID, s.UserID,
			[]string{vo.StatusCreated.String(), vo.StatusActive.String()}).
		Updates(map[string]interface{}{
			"current_question_index": s.CurrentQuestionIndex,
			"status":                 s.Status.String(),
			"is_paused":              s.IsPaused,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update session progress: %w", err)
	}
	return nil
}

func (r *QuizSessionRepository) QuestionOrder(ctx context.Context, sessionID string, questionID uint) (int, error) {
	var row models.SessionQuestionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.NewNotFoundError("question is not part of this session")
		}
		return 0, fmt.Errorf("failed to get session question: %w", err)
	}
	return row.QuestionOrder, nil
}

func (r *QuizSessionRepository) ListQuestions(ctx context.Context, sessionID string) ([]quizsession.SessionQuestion, error) {
	var rows []models.SessionQuestionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("session_id = ?", sessionID).
		Order("question_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list session questions: %w", err)
	}

	out := make([]quizsession.SessionQuestion, len(rows))
	for i, row := range rows {
		out[i] = quizsession.SessionQuestion{
			SessionID:  row.SessionID,
			QuestionID: row.QuestionID,
			Order:      row.QuestionOrder,
		}
	}
	return out, nil
}

func (r *QuizSessionRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*quizsession.QuizSession, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.QuizSessionModel{}).Scopes(db.OwnedBy(userID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count quiz sessions: %w", err)
	}

	var list []models.QuizSessionModel
	if err := query.Order("created_at DESC").Scopes(db.Paginate(page, pageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list quiz sessions: %w", err)
	}

	out, err := r.toDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *QuizSessionRepository) ListIdle(ctx context.Context, userID string, idleBefore time.Time, limit int) ([]*quizsession.QuizSession, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Where("is_active = ?", true).
		Where("COALESCE(last_activity_at, created_at) < ?", idleBefore).
		Order("created_at ASC")
	if userID != "" {
		query = query.Scopes(db.OwnedBy(userID))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var list []models.QuizSessionModel
	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list idle quiz sessions: %w", err)
	}
	return r.toDomainList(list)
}

func (r *QuizSessionRepository) ListCompletedByUser(ctx context.Context, userID string, since time.Time) ([]*quizsession.QuizSession, error) {
	var list []models.QuizSessionModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OwnedBy(userID)).
		Where("status = ? AND completed_at >= ?", vo.StatusCompleted.String(), since).
		Order("completed_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list completed quiz sessions: %w", err)
	}
	return r.toDomainList(list)
}

func (r *QuizSessionRepository) CompareAndTouch(ctx context.Context, sessionID, userID string, expected quizsession.ActivityStamp, now time.Time, addSeconds int) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.QuizSessionModel{}).
		Where("id = ? AND user_id = ? AND activity_version = ?", sessionID, userID, expected.Version).
		Updates(map[string]interface{}{
			"activity_version":    gorm.Expr("activity_version + 1"),
			"active_time_seconds": gorm.Expr("active_time_seconds + ?", addSeconds),
			"last_activity_at":    now,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to record session activity: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *QuizSessionRepository) SyncTime(ctx context.Context, sessionID, userID string, elapsed int, remaining *int, now time.Time) error {
	updates := map[string]interface{}{
		"active_time_seconds": gorm.Expr("CASE WHEN active_time_seconds < ? THEN ? ELSE active_time_seconds END", elapsed, elapsed),
		"activity_version":    gorm.Expr("activity_version + 1"),
		"last_activity_at":    now,
	}
	if remaining != nil {
		updates["time_remaining"] = *remaining
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.QuizSessionModel{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to sync session time: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("quiz session not found")
	}
	return nil
}

func (r *QuizSessionRepository) toDomainList(list []models.QuizSessionModel) ([]*quizsession.QuizSession, error) {
	out := make([]*quizsession.QuizSession, 0, len(list))
	for i := range list {
		s, err := r.mapper.ToDomain(&list[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map quiz session %s: %w", list[i].ID, err)
		}
		out = append(out, s)
	}
	return out, nil
}
