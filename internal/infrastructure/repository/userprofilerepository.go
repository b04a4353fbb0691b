package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/persistence/models"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/db"
	apperrors "github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
)

type UserProfileRepository struct {
	db *gorm.DB
}

func NewUserProfileRepository(gdb *gorm.DB) *UserProfileRepository {
	return &UserProfileRepository{db: gdb}
}

var _ profile.Repository = (*UserProfileRepository)(nil)

func (r *UserProfileRepository) EnsureExists(ctx context.Context, p *profile.UserProfile) error {
	model := &models.UserProfileModel{
		UserID:      p.UserID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		IsAdmin:     p.IsAdmin,
	}
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to ensure user profile: %w", err)
	}
	return nil
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID string) (*profile.UserProfile, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), userID)
}

func (r *UserProfileRepository) LockForUpdate(ctx context.Context, userID string) (*profile.UserProfile, error) {
	return r.get(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), userID)
}

func (r *UserProfileRepository) get(query *gorm.DB, userID string) (*profile.UserProfile, error) {
	var model models.UserProfileModel
	if err := query.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user profile not found")
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return toProfile(&model), nil
}

func (r *UserProfileRepository) SetActiveSession(ctx context.Context, userID, sessionID string) error {
	err := db.GetTxFromContext(ctx, r.db).Model(&models.UserProfileModel{}).
		Where("user_id = ?", userID).
		Update("active_session_id", sessionID).Error
	if err != nil {
		return fmt.Errorf("failed to set active session: %w", err)
	}
	return nil
}

func (r *UserProfileRepository) ClearActiveSessionIf(ctx context.Context, userID, sessionID string) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.UserProfileModel{}).
		Where("user_id = ? AND active_session_id = ?", userID, sessionID).
		Update("active_session_id", nil)
	if result.Error != nil {
		return false, fmt.Errorf("failed to clear active session: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *UserProfileRepository) ListWithActiveSession(ctx context.Context, afterUserID string, limit int) ([]*profile.UserProfile, error) {
	var list []models.UserProfileModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("active_session_id IS NOT NULL AND user_id > ?", afterUserID).
		Order("user_id ASC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles with active session: %w", err)
	}

	out := make([]*profile.UserProfile, len(list))
	for i := range list {
		out[i] = toProfile(&list[i])
	}
	return out, nil
}

func toProfile(m *models.UserProfileModel) *profile.UserProfile {
	return &profile.UserProfile{
		UserID:          m.UserID,
		Email:           m.Email,
		DisplayName:     m.DisplayName,
		IsAdmin:         m.IsAdmin,
		ActiveSessionID: m.ActiveSessionID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
