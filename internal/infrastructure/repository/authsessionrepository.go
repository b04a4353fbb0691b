package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/authsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/persistence/mappers"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/persistence/models"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/db"
	apperrors "github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
)

type AuthSessionRepository struct {
	db     *gorm.DB
	mapper *mappers.AuthSessionMapperImpl
}

func NewAuthSessionRepository(gdb *gorm.DB) *AuthSessionRepository {
	return &AuthSessionRepository{
		db:     gdb,
		mapper: &mappers.AuthSessionMapperImpl{},
	}
}

var _ authsession.Repository = (*AuthSessionRepository)(nil)

func (r *AuthSessionRepository) Create(ctx context.Context, s *authsession.AuthSession) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.ToModel(s)).Error; err != nil {
		return fmt.Errorf("failed to create auth session: %w", err)
	}
	return nil
}

func (r *AuthSessionRepository) GetByID(ctx context.Context, sessionID string) (*authsession.AuthSession, error) {
	var model models.AuthSessionModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", sessionID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("auth session not found")
		}
		return nil, fmt.Errorf("failed to get auth session: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *AuthSessionRepository) ListActiveByUser(ctx context.Context, userID string) ([]*authsession.AuthSession, error) {
	var list []models.AuthSessionModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OwnedBy(userID)).
		Where("is_active = ?", true).
		Order("created_at DESC").Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active auth sessions: %w", err)
	}
	return r.mapper.ToDomainList(list), nil
}

func (r *AuthSessionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*authsession.AuthSession, error) {
	var list []models.AuthSessionModel
	query := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OwnedBy(userID)).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list auth sessions: %w", err)
	}
	return r.mapper.ToDomainList(list), nil
}

func (r *AuthSessionRepository) Deactivate(ctx context.Context, sessionID string, endedAt time.Time) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.AuthSessionModel{}).
		Where("id = ? AND is_active = ?", sessionID, true).
		Updates(map[string]interface{}{
			"is_active": false,
			"ended_at":  endedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to deactivate auth session: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := tx.Model(&models.AuthSessionModel{}).Where("id = ?", sessionID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check auth session: %w", err)
	}
	if count == 0 {
		return false, apperrors.NewNotFoundError("auth session not found")
	}
	return false, nil
}

func (r *AuthSessionRepository) DeactivateAllByUser(ctx context.Context, userID string, endedAt time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.AuthSessionModel{}).
		Scopes(db.OwnedBy(userID)).
		Where("is_active = ?", true).
		Updates(map[string]interface{}{
			"is_active": false,
			"ended_at":  endedAt,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to deactivate auth sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *AuthSessionRepository) Touch(ctx context.Context, sessionID string, at time.Time) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.AuthSessionModel{}).
		Where("id = ? AND is_active = ?", sessionID, true).
		Update("last_activity", at)
	if result.Error != nil {
		return fmt.Errorf("failed to touch auth session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("auth session not found or inactive")
	}
	return nil
}

func (r *AuthSessionRepository) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("is_active = ?", false).
		Where("(ended_at IS NOT NULL AND ended_at < ?) OR (ended_at IS NULL AND last_activity < ?)", cutoff, cutoff).
		Delete(&models.AuthSessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete ended auth sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
