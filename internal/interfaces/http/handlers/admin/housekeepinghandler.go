package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authusecases "github.com/soripaulos/medical-quiz-app-sub001/internal/application/authsession/usecases"
	quizusecases "github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/usecases"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/common"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

// HousekeepingHandler exposes the maintenance jobs the worker also runs.
type HousekeepingHandler struct {
	cleanupUC authusecases.CleanupAuthSessionsExecutor
	sweepUC   quizusecases.SweepAllExecutor
	logger    logger.Interface
}

func NewHousekeepingHandler(
	cleanupUC authusecases.CleanupAuthSessionsExecutor,
	sweepUC quizusecases.SweepAllExecutor,
	log logger.Interface,
) *HousekeepingHandler {
	return &HousekeepingHandler{
		cleanupUC: cleanupUC,
		sweepUC:   sweepUC,
		logger:    log,
	}
}

type CleanupAuthSessionsRequest struct {
	DaysOld int `json:"days_old" binding:"min=0,max=3650"`
}

// CleanupAuthSessions handles POST /admin/auth-sessions/cleanup
// @Summary Delete ended auth sessions older than a cutoff
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CleanupAuthSessionsRequest false "Cutoff in days, retention default when omitted"
// @Success 200 {object} utils.APIResponse{data=authusecases.CleanupAuthSessionsResult}
// @Failure 403 {object} utils.APIResponse
// @Router /admin/auth-sessions/cleanup [post]
func (h *HousekeepingHandler) CleanupAuthSessions(c *gin.Context) {
	var req CleanupAuthSessionsRequest
	if c.Request.ContentLength > 0 {
		if err := common.BindJSON(c, &req); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	result, err := h.cleanupUC.Execute(c.Request.Context(), authusecases.CleanupAuthSessionsCommand{DaysOld: req.DaysOld})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("admin triggered auth session cleanup",
		"admin_id", c.GetString("user_id"),
		"deleted", result.Deleted,
	)
	utils.SuccessResponse(c, http.StatusOK, "Auth sessions cleaned up", result)
}

// SweepQuizSessions handles POST /admin/quiz-sessions/sweep
// @Summary Repair orphaned quiz sessions for every user
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=quizusecases.SweepAllResult}
// @Failure 403 {object} utils.APIResponse
// @Router /admin/quiz-sessions/sweep [post]
func (h *HousekeepingHandler) SweepQuizSessions(c *gin.Context) {
	result, err := h.sweepUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("quiz session sweep failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Quiz sessions swept", result)
}
