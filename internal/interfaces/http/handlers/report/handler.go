package report

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/report/usecases"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/common"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

type summaryUseCase interface {
	Execute(ctx context.Context, query usecases.SummaryQuery) (*usecases.SummaryDTO, error)
}

type progressUseCase interface {
	Execute(ctx context.Context, query usecases.ProgressQuery) (*usecases.ProgressDTO, error)
}

type Handler struct {
	summaryUC  summaryUseCase
	progressUC progressUseCase
	logger     logger.Interface
}

func NewHandler(summaryUC summaryUseCase, progressUC progressUseCase, logger logger.Interface) *Handler {
	return &Handler{summaryUC: summaryUC, progressUC: progressUC, logger: logger}
}

// Summary handles GET /reports/summary
// @Summary Performance summary
// @Description Completed sessions, average score and accuracy by specialty over a window of days.
// @Tags reports
// @Produce json
// @Security Bearer
// @Param days query int false "Window in days" default(30)
// @Success 200 {object} utils.APIResponse{data=usecases.SummaryDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /reports/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	days, err := common.ParseDays(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	summary, err := h.summaryUC.Execute(c.Request.Context(), usecases.SummaryQuery{UserID: userID, Days: days})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

// Progress handles GET /reports/progress
// @Summary Daily progress series
// @Tags reports
// @Produce json
// @Security Bearer
// @Param days query int false "Window in days" default(30)
// @Success 200 {object} utils.APIResponse{data=usecases.ProgressDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /reports/progress [get]
func (h *Handler) Progress(c *gin.Context) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	days, err := common.ParseDays(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	progress, err := h.progressUC.Execute(c.Request.Context(), usecases.ProgressQuery{UserID: userID, Days: days})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", progress)
}
