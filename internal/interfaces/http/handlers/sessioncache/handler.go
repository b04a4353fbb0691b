package sessioncache

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/sessioncache"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/common"
	apperrors "github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

// Reconciler is the client session cache the handler serves.
type Reconciler interface {
	Save(ctx context.Context, key sessioncache.ClientKey, snap *sessioncache.Snapshot) (*sessioncache.Snapshot, error)
	Load(ctx context.Context, key sessioncache.ClientKey) (*sessioncache.Snapshot, error)
	Update(ctx context.Context, key sessioncache.ClientKey, p sessioncache.Patch) (*sessioncache.Snapshot, error)
	Clear(ctx context.Context, key sessioncache.ClientKey) error
	Reconcile(ctx context.Context, key sessioncache.ClientKey) (*sessioncache.ReconcileResult, error)
	ResumeTarget(ctx context.Context, key sessioncache.ClientKey) (*sessioncache.ResumeTarget, error)
}

type Handler struct {
	reconciler Reconciler
	logger     logger.Interface
}

func NewHandler(reconciler Reconciler, logger logger.Interface) *Handler {
	return &Handler{reconciler: reconciler, logger: logger}
}

func clientKey(c *gin.Context) (sessioncache.ClientKey, bool) {
	userID, err := common.UserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return sessioncache.ClientKey{}, false
	}
	return sessioncache.ClientKey{UserID: userID, ClientID: common.ClientID(c)}, true
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, sessioncache.ErrNoSnapshot) {
		utils.ErrorResponseWithError(c, apperrors.NewNotFoundError(err.Error()))
		return
	}
	utils.ErrorResponseWithError(c, err)
}

// Save handles PUT /cache
// @Summary Replace the client's cached session snapshot
// @Tags session-cache
// @Accept json
// @Produce json
// @Security Bearer
// @Param X-Client-ID header string false "Client slot"
// @Param snapshot body sessioncache.Snapshot true "Snapshot"
// @Success 200 {object} utils.APIResponse{data=sessioncache.Snapshot}
// @Failure 400 {object} utils.APIResponse
// @Router /cache [put]
func (h *Handler) Save(c *gin.Context) {
	key, ok := clientKey(c)
	if !ok {
		return
	}

	var snap sessioncache.Snapshot
	if err := common.BindJSON(c, &snap); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	saved, err := h.reconciler.Save(c.Request.Context(), key, &snap)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", saved)
}

// Load handles GET /cache
// @Summary Load the client's cached session snapshot
// @Tags session-cache
// @Produce json
// @Security Bearer
// @Param X-Client-ID header string false "Client slot"
// @Success 200 {object} utils.APIResponse{data=sessioncache.Snapshot}
// @Failure 404 {object} utils.APIResponse
// @Router /cache [get]
func (h *Handler) Load(c *gin.Context) {
	key, ok := clientKey(c)
	if !ok {
		return
	}

	snap, err := h.reconciler.Load(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", snap)
}

// Update handles PATCH /cache
// @Summary Merge a partial update into the cached snapshot
// @Description Fails with 404 when nothing was saved before.
// @Tags session-cache
// @Accept json
// @Produce json
// @Security Bearer
// @Param X-Client-ID header string false "Client slot"
// @Param patch body sessioncache.Patch true "Partial snapshot"
// @Success 200 {object} utils.APIResponse{data=sessioncache.Snapshot}
// @Failure 404 {object} utils.APIResponse
// @Router /cache [patch]
func (h *Handler) Update(c *gin.Context) {
	key, ok := clientKey(c)
	if !ok {
		return
	}

	var patch sessioncache.Patch
	if err := common.BindJSON(c, &patch); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	snap, err := h.reconciler.Update(c.Request.Context(), key, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", snap)
}

// Clear handles DELETE /cache
// @Summary Clear the client's cached snapshot
// @Tags session-cache
// @Security Bearer
// @Param X-Client-ID header string false "Client slot"
// @Success 204
// @Router /cache [delete]
func (h *Handler) Clear(c *gin.Context) {
	key, ok := clientKey(c)
	if !ok {
		return
	}

	if err := h.reconciler.Clear(c.Request.Context(), key); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// Reconcile handles POST /cache/reconcile
// @Summary Merge the cached snapshot with server state
// @Tags session-cache
// @Produce json
// @Security Bearer
// @Param X-Client-ID header string false "Client slot"
// @Success 200 {object} utils.APIResponse{data=sessioncache.ReconcileResult}
// @Failure 404 {object} utils.APIResponse
// @Router /cache/reconcile [post]
func (h *Handler) Reconcile(c *gin.Context) {
	key, ok := clientKey(c)
	if !ok {
		return
	}

	result, err := h.reconciler.Reconcile(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ResumeTarget handles GET /cache/resume
// @Summary Find the session the client should return to
// @Tags session-cache
// @Produce json
// @Security Bearer
// @Param X-Client-ID header string false "Client slot"
// @Success 200 {object} utils.APIResponse{data=sessioncache.ResumeTarget}
// @Router /cache/resume [get]
func (h *Handler) ResumeTarget(c *gin.Context) {
	key, ok := clientKey(c)
	if !ok {
		return
	}

	target, err := h.reconciler.ResumeTarget(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", target)
}
