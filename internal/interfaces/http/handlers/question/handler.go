package question

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/question/usecases"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/common"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

type Handler struct {
	listUC     listQuestionsUseCase
	saveNoteUC saveNoteUseCase
	logger     logger.Interface
}

func NewHandler(listUC listQuestionsUseCase, saveNoteUC saveNoteUseCase, logger logger.Interface) *Handler {
	return &Handler{listUC: listUC, saveNoteUC: saveNoteUC, logger: logger}
}

type SaveNoteRequest struct {
	Content string `json:"content"`
}

// ListQuestions handles GET /questions
// @Summary Browse the question catalogue
// @Description Filters accept comma-separated values. Answer keys are never included.
// @Tags questions
// @Produce json
// @Security Bearer
// @Param specialty query string false "Specialties"
// @Param exam_type query string false "Exam types"
// @Param year query string false "Years"
// @Param difficulty query string false "Difficulties"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /questions [get]
func (h *Handler) ListQuestions(c *gin.Context) {
	filter, err := common.ParseQuestionFilter(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListQuestionsQuery{
		Filter:   filter,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Questions, result.Total, result.Page, result.PageSize)
}

// SaveNote handles PUT /notes/:question_id
// @Summary Save the caller's note on a question
// @Tags questions
// @Accept json
// @Produce json
// @Security Bearer
// @Param question_id path int true "Question ID"
// @Param note body SaveNoteRequest true "Note"
// @Success 200 {object} utils.APIResponse{data=usecases.NoteDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /notes/{question_id} [put]
func (h *Handler) SaveNote(c *gin.Context) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	questionID, err := utils.ParseUintParam(c, "question_id", "question")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SaveNoteRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	note, err := h.saveNoteUC.Execute(c.Request.Context(), usecases.SaveNoteCommand{
		UserID:     userID,
		QuestionID: questionID,
		Content:    req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Note saved", note)
}
