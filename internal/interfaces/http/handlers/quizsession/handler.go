package quizsession

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/usecases"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/common"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/id"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

type Handler struct {
	createUC     usecases.CreateQuizSessionExecutor
	activateUC   usecases.ActivateSessionExecutor
	recordUC     usecases.RecordAnswerExecutor
	flagUC       usecases.FlagQuestionExecutor
	pauseUC      usecases.PauseSessionExecutor
	endUC        usecases.EndSessionExecutor
	activeTimeUC usecases.GetActiveTimeExecutor
	syncUC       usecases.SyncTimeExecutor
	resultsUC    usecases.GetResultsExecutor
	historyUC    usecases.ListHistoryExecutor
	getActiveUC  usecases.GetActiveQuizSessionExecutor
	cleanupUC    usecases.OrphanCleaner
	logger       logger.Interface
}

// Executors groups the use cases the handler dispatches to.
type Executors struct {
	Create     usecases.CreateQuizSessionExecutor
	Activate   usecases.ActivateSessionExecutor
	Record     usecases.RecordAnswerExecutor
	Flag       usecases.FlagQuestionExecutor
	Pause      usecases.PauseSessionExecutor
	End        usecases.EndSessionExecutor
	ActiveTime usecases.GetActiveTimeExecutor
	Sync       usecases.SyncTimeExecutor
	Results    usecases.GetResultsExecutor
	History    usecases.ListHistoryExecutor
	GetActive  usecases.GetActiveQuizSessionExecutor
	Cleanup    usecases.OrphanCleaner
}

func NewHandler(ex Executors, logger logger.Interface) *Handler {
	return &Handler{
		createUC:     ex.Create,
		activateUC:   ex.Activate,
		recordUC:     ex.Record,
		flagUC:       ex.Flag,
		pauseUC:      ex.Pause,
		endUC:        ex.End,
		activeTimeUC: ex.ActiveTime,
		syncUC:       ex.Sync,
		resultsUC:    ex.Results,
		historyUC:    ex.History,
		getActiveUC:  ex.GetActive,
		cleanupUC:    ex.Cleanup,
		logger:       logger,
	}
}

// identify resolves the caller and the quiz session path parameter.
func identify(c *gin.Context) (userID, sessionID string, ok bool) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", "", false
	}
	sessionID, err = utils.ParseSIDParam(c, "id", id.PrefixQuizSession, "quiz session")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", "", false
	}
	return userID, sessionID, true
}

func (h *Handler) logDegraded(op, sessionID string, degraded []string) {
	if len(degraded) > 0 {
		h.logger.Warnw("quiz session operation completed with degraded steps",
			"operation", op,
			"session_id", sessionID,
			"steps", degraded,
		)
	}
}

// CreateSession handles POST /quiz-sessions
// @Summary Create a quiz session
// @Description Selects questions, stores the presentation order and points the user's active session at it.
// @Tags quiz-sessions
// @Accept json
// @Produce json
// @Security Bearer
// @Param session body CreateSessionRequest true "Session configuration"
// @Success 201 {object} utils.APIResponse{data=usecases.CreateQuizSessionResult}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /quiz-sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateSessionRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create quiz session", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Session != nil {
		h.logDegraded("create", result.Session.ID, result.Degraded)
	}
	utils.CreatedResponse(c, result, "Quiz session created successfully")
}

// ListHistory handles GET /quiz-sessions
// @Summary List quiz history
// @Tags quiz-sessions
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /quiz-sessions [get]
func (h *Handler) ListHistory(c *gin.Context) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.historyUC.Execute(c.Request.Context(), usecases.ListHistoryQuery{
		UserID:   userID,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Sessions, result.Total, result.Page, result.PageSize)
}

// GetActiveSession handles GET /quiz-sessions/active
// @Summary Get the session the user's active pointer refers to
// @Tags quiz-sessions
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Router /quiz-sessions/active [get]
func (h *Handler) GetActiveSession(c *gin.Context) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	session, err := h.getActiveUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", session)
}

// CleanupOrphans handles POST /quiz-sessions/cleanup
// @Summary Repair the caller's session state
// @Description Clears a dangling active-session pointer and abandons idle sessions.
// @Tags quiz-sessions
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=usecases.CleanupOrphanedSessionsResult}
// @Router /quiz-sessions/cleanup [post]
func (h *Handler) CleanupOrphans(c *gin.Context) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.cleanupUC.Execute(c.Request.Context(), usecases.CleanupOrphanedSessionsCommand{UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// StartSession handles POST /quiz-sessions/:id/start
// @Summary Start activity on a session
// @Tags quiz-sessions
// @Produce json
// @Security Bearer
// @Param id path string true "Quiz session ID"
// @Success 200 {object} utils.APIResponse{data=usecases.ActivateSessionResult}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /quiz-sessions/{id}/start [post]
func (h *Handler) StartSession(c *gin.Context) {
	h.activate(c, false)
}

// ResumeSession handles POST /quiz-sessions/:id/resume
// @Summary Resume a paused session
// @Tags quiz-sessions
// @Produce json
// @Security Bearer
// @Param id path string true "Quiz session ID"
// @Success 200 {object} utils.APIResponse{data=usecases.ActivateSessionResult}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /quiz-sessions/{id}/resume [post]
func (h *Handler) ResumeSession(c *gin.Context) {
	h.activate(c, true)
}

func (h *Handler) activate(c *gin.Context, resume bool) {
	userID, sessionID, ok := identify(c)
	if !ok {
		return
	}

	result, err := h.activateUC.Execute(c.Request.Context(), usecases.ActivateSessionCommand{
		SessionID: sessionID,
		UserID:    userID,
		Resume:    resume,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logDegraded("activate", sessionID, result.Degraded)
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RecordAnswer handles PUT /quiz-sessions/:id/answers/:question_id
// @Summary Record an answer
// @Tags quiz-sessions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Quiz session ID"
// @Param question_id path int true "Question ID"
// @Param answer body RecordAnswerRequest true "Answer"
// @Success 200 {object} utils.APIResponse{data=usecases.RecordAnswerResult}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /quiz-sessions/{id}/answers/{question_id} [put]
func (h *Handler) RecordAnswer(c *gin.Context) {
	userID, sessionID, ok := identify(c)
	if !ok {
		return
	}

	questionID, err := utils.ParseUintParam(c, "question_id", "question")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RecordAnswerRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.recordUC.Execute(c.Request.Context(), usecases.RecordAnswerCommand{
		SessionID:  sessionID,
		UserID:     userID,
		QuestionID: questionID,
		Choice:     req.Choice,
		IsCorrect:  req.IsCorrect,
		TimeSpent:  req.TimeSpent,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logDegraded("record_answer", sessionID, result.Degraded)
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// FlagQuestion handles PUT /quiz-sessions/:id/flags/:question_id
// @Summary Flag or unflag a question for review
// @Tags quiz-sessions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Quiz session ID"
// @Param question_id path int true "Question ID"
// @Param flag body FlagQuestionRequest true "Flag state"
// @Success 200 {object} utils.APIResponse{data=usecases.FlagQuestionResult}
// @Router /quiz-sessions/{id}/flags/{question_id} [put]
func (h *Handler) FlagQuestion(c *gin.Context) {
	userID, sessionID, ok := identify(c)
	if !ok {
		return
	}

	questionID, err := utils.ParseUintParam(c, "question_id", "question")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req FlagQuestionRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.flagUC.Execute(c.Request.Context(), usecases.FlagQuestionCommand{
		SessionID:  sessionID,
		UserID:     userID,
		QuestionID: questionID,
		Flagged:    req.Flagged,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// PauseSession handles POST /quiz-sessions/:id/pause
// @Summary Pause a session
// @Tags quiz-sessions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Quiz session ID"
// @Param pause body PauseSessionRequest false "Remaining exam time"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /quiz-sessions/{id}/pause [post]
func (h *Handler) PauseSession(c *gin.Context) {
	userID, sessionID, ok := identify(c)
	if !ok {
		return
	}

	var req PauseSessionRequest
	if c.Request.ContentLength > 0 {
		if err := common.BindJSON(c, &req); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	session, err := h.pauseUC.Execute(c.Request.Context(), usecases.PauseSessionCommand{
		SessionID:     sessionID,
		UserID:        userID,
		TimeRemaining: req.TimeRemaining,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Quiz session paused", session)
}

// EndSession handles POST /quiz-sessions/:id/end
// @Summary Complete a session
// @Description Computes final metrics. Ending a completed session returns the stored metrics.
// @Tags quiz-sessions
// @Produce json
// @Security Bearer
// @Param id path string true "Quiz session ID"
// @Success 200 {object} utils.APIResponse{data=usecases.EndSessionResult}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /quiz-sessions/{id}/end [post]
func (h *Handler) EndSession(c *gin.Context) {
	userID, sessionID, ok := identify(c)
	if !ok {
		return
	}

	result, err := h.endUC.Execute(c.Request.Context(), usecases.EndSessionCommand{
		SessionID: sessionID,
		UserID:    userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logDegraded("end", sessionID, result.Degraded)
	utils.SuccessResponse(c, http.StatusOK, "Quiz session completed", result)
}

// GetActiveTime handles GET /quiz-sessions/:id/active-time
// @Summary Get accumulated active time
// @Tags quiz-sessions
// @Produce json
// @Security Bearer
// @Param id path string true "Quiz session ID"
// @Success 200 {object} utils.APIResponse
// @Router /quiz-sessions/{id}/active-time [get]
func (h *Handler) GetActiveTime(c *gin.Context) {
	userID, sessionID, ok := identify(c)
	if !ok {
		return
	}

	result, err := h.activeTimeUC.Execute(c.Request.Context(), usecases.GetActiveTimeQuery{
		SessionID: sessionID,
		UserID:    userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// SyncTime handles POST /quiz-sessions/:id/sync
// @Summary Sync client timer readings
// @Tags quiz-sessions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Quiz session ID"
// @Param sync body SyncTimeRequest true "Timer readings"
// @Success 200 {object} utils.APIResponse{data=usecases.SyncTimeResult}
// @Router /quiz-sessions/{id}/sync [post]
func (h *Handler) SyncTime(c *gin.Context) {
	userID, sessionID, ok := identify(c)
	if !ok {
		return
	}

	var req SyncTimeRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.syncUC.Execute(c.Request.Context(), usecases.SyncTimeCommand{
		SessionID:      sessionID,
		UserID:         userID,
		ElapsedSeconds: req.ElapsedSeconds,
		TimeRemaining:  req.TimeRemaining,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetResults handles GET /quiz-sessions/:id/results
// @Summary Get the results view of a session
// @Tags quiz-sessions
// @Produce json
// @Security Bearer
// @Param id path string true "Quiz session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /quiz-sessions/{id}/results [get]
func (h *Handler) GetResults(c *gin.Context) {
	userID, sessionID, ok := identify(c)
	if !ok {
		return
	}

	result, err := h.resultsUC.Execute(c.Request.Context(), usecases.GetResultsQuery{
		SessionID: sessionID,
		UserID:    userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
