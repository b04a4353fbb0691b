package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/persistence/mappers"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/persistence/models"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/db"
)

type QuestionRepository struct {
	db     *gorm.DB
	mapper mappers.QuestionMapper
}

func NewQuestionRepository(gdb *gorm.DB) *QuestionRepository {
	return &QuestionRepository{
		db:     gdb,
		mapper: mappers.NewQuestionMapper(),
	}
}

var _ question.Repository = (*QuestionRepository)(nil)

func applyQuestionFilter(f question.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if len(f.Specialties) > 0 {
			q = q.Where("specialty IN ?", f.Specialties)
		}
		if len(f.ExamTypes) > 0 {
			q = q.Where("exam_type IN ?", f.ExamTypes)
		}
		if len(f.Years) > 0 {
			q = q.Where("year IN ?", f.Years)
		}
		if len(f.Difficulties) > 0 {
			q = q.Where("difficulty IN ?", f.Difficulties)
		}
		return q
	}
}

func (r *QuestionRepository) List(ctx context.Context, filter question.Filter, page, pageSize int) ([]*question.Question, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.QuestionModel{}).Scopes(applyQuestionFilter(filter))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count questions: %w", err)
	}

	var list []models.QuestionModel
	if err := query.Order("id ASC").Scopes(db.Paginate(page, pageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}

	out, err := r.toDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *QuestionRepository) ListIDs(ctx context.Context, filter question.Filter, limit int) ([]uint, error) {
	var ids []uint
	query := db.GetTxFromContext(ctx, r.db).Model(&models.QuestionModel{}).
		Scopes(applyQuestionFilter(filter)).
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list question ids: %w", err)
	}
	return ids, nil
}

func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*question.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.QuestionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return r.toDomainList(list)
}

func (r *QuestionRepository) Upsert(ctx context.Context, q *question.Question) error {
	model, err := r.mapper.ToModel(q)
	if err != nil {
		return err
	}
	err = db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"specialty", "exam_type", "year", "difficulty", "stem", "choices", "correct_choice_letter", "explanation"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert question: %w", err)
	}
	q.ID = model.ID
	return nil
}

func (r *QuestionRepository) toDomainList(list []models.QuestionModel) ([]*question.Question, error) {
	out := make([]*question.Question, 0, len(list))
	for i := range list {
		q, err := r.mapper.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}
