package authsession

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/authsession/usecases"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/common"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/authorization"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/constants"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

type Handler struct {
	createUC usecases.CreateAuthSessionExecutor
	listUC   usecases.ListAuthSessionsExecutor
	endUC    usecases.EndAuthSessionExecutor
	endAllUC usecases.EndAllAuthSessionsExecutor
	logger   logger.Interface
}

func NewHandler(
	createUC usecases.CreateAuthSessionExecutor,
	listUC usecases.ListAuthSessionsExecutor,
	endUC usecases.EndAuthSessionExecutor,
	endAllUC usecases.EndAllAuthSessionsExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createUC: createUC,
		listUC:   listUC,
		endUC:    endUC,
		endAllUC: endAllUC,
		logger:   logger,
	}
}

// CreateSession handles POST /auth/sessions
// @Summary Register a login
// @Description Records a new auth session. Older sessions beyond the concurrent limit are ended.
// @Tags auth-sessions
// @Produce json
// @Security Bearer
// @Success 201 {object} utils.APIResponse{data=usecases.CreateAuthSessionResult}
// @Failure 401 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /auth/sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	role := authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateAuthSessionCommand{
		UserID:      userID,
		Email:       c.GetString(constants.ContextKeyUserEmail),
		DisplayName: c.GetString(constants.ContextKeyUserName),
		IsAdmin:     role == authorization.RoleAdmin,
		UserAgent:   c.Request.UserAgent(),
		IPAddress:   c.ClientIP(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if len(result.Deactivated) > 0 {
		h.logger.Infow("older auth sessions ended by login",
			"user_id", userID,
			"count", len(result.Deactivated),
		)
	}

	utils.CreatedResponse(c, result, "Session created successfully")
}

// ListSessions handles GET /auth/sessions
// @Summary List the caller's auth sessions
// @Tags auth-sessions
// @Produce json
// @Security Bearer
// @Param active query bool false "Only active sessions"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/sessions [get]
func (h *Handler) ListSessions(c *gin.Context) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sessions, err := h.listUC.Execute(c.Request.Context(), usecases.ListAuthSessionsQuery{
		UserID:           userID,
		CurrentSessionID: common.SessionID(c),
		ActiveOnly:       c.Query("active") == "true",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", sessions)
}

// EndSession handles DELETE /auth/sessions/:id
// @Summary Sign out one session
// @Tags auth-sessions
// @Security Bearer
// @Param id path string true "Auth session ID"
// @Success 204
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /auth/sessions/{id} [delete]
func (h *Handler) EndSession(c *gin.Context) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sessionID, err := utils.ParseUUIDParam(c, "id", "auth session")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.endUC.Execute(c.Request.Context(), usecases.EndAuthSessionCommand{
		UserID:    userID,
		SessionID: sessionID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// EndAllSessions handles DELETE /auth/sessions
// @Summary Sign out everywhere
// @Tags auth-sessions
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=usecases.EndAllAuthSessionsResult}
// @Failure 401 {object} utils.APIResponse
// @Router /auth/sessions [delete]
func (h *Handler) EndAllSessions(c *gin.Context) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.endAllUC.Execute(c.Request.Context(), usecases.EndAllAuthSessionsCommand{UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All sessions ended", result)
}
