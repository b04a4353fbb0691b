package mappers

import (
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/authsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/persistence/models"
)

// AuthSessionMapper converts between login sessions and their persistence model.
type AuthSessionMapper interface {
	ToModel(entity *authsession.AuthSession) *models.AuthSessionModel
	ToDomain(model *models.AuthSessionModel) *authsession.AuthSession
}

type AuthSessionMapperImpl struct{}

func NewAuthSessionMapper() AuthSessionMapper {
	return &AuthSessionMapperImpl{}
}

func (m *AuthSessionMapperImpl) ToModel(entity *authsession.AuthSession) *models.AuthSessionModel {
	if entity == nil {
		return nil
	}
	return &models.AuthSessionModel{
		ID:           entity.ID,
		UserID:       entity.UserID,
		IsActive:     entity.IsActive,
		UserAgent:    entity.UserAgent,
		IPAddress:    entity.IPAddress,
		CreatedAt:    entity.CreatedAt,
		LastActivity: entity.LastActivity,
		EndedAt:      entity.EndedAt,
	}
}

func (m *AuthSessionMapperImpl) ToDomain(model *models.AuthSessionModel) *authsession.AuthSession {
	if model == nil {
		return nil
	}
	return &authsession.AuthSession{
		ID:           model.ID,
		UserID:       model.UserID,
		IsActive:     model.IsActive,
		UserAgent:    model.UserAgent,
		IPAddress:    model.IPAddress,
		CreatedAt:    model.CreatedAt,
		LastActivity: model.LastActivity,
		EndedAt:      model.EndedAt,
	}
}

// ToDomainList converts a slice of models.
func (m *AuthSessionMapperImpl) ToDomainList(list []models.AuthSessionModel) []*authsession.AuthSession {
	out := make([]*authsession.AuthSession, len(list))
	for i := range list {
		out[i] = m.ToDomain(&list[i])
	}
	return out
}
