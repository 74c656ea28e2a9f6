package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type EntryHandler struct {
	svc    *services.EntryService
	logger *zap.Logger
}

func NewEntryHandler(svc *services.EntryService, logger *zap.Logger) *EntryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryHandler{
		svc:    svc,
		logger: logger,
	}
}

type recordTodayRequest struct {
	Completed []bool `json:"completed" binding:"required"`
}

type recordResponse struct {
	Date      string `json:"date"`
	Completed []bool `json:"completed"`
	Warning   string `json:"warning,omitempty"`
}

type entriesResponse struct {
	Records domain.Records `json:"records"`
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.GET("", h.List)
		entries.GET("/today", h.Today)
		entries.POST("/today", h.RecordToday)
	}
}

// RecordToday godoc
// @Summary  Record today's completions
// @Description One flag per habit, in habit order. Replaces any earlier submission for today.
// @Tags     entries
// @Accept   json
// @Produce  json
// @Param    body body recordTodayRequest true "Completion flags"
// @Success  200 {object} recordResponse
// @Failure  400 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Router   /entries/today [post]
func (h *EntryHandler) RecordToday(c *gin.Context) {
	var req recordTodayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.svc.RecordToday(c.Request.Context(), services.RecordTodayInput{Completed: req.Completed})
	if err != nil && !errors.Is(err, domain.ErrStorageUnavailable) {
		handleError(c, h.logger, err)
		return
	}

	resp := recordResponse{Date: result.Date, Completed: result.Completed}
	if err != nil {
		resp.Warning = storageWarning
	}
	c.JSON(http.StatusOK, resp)
}

// Today godoc
// @Summary  Today's record
// @Tags     entries
// @Produce  json
// @Success  200 {object} recordResponse
// @Failure  404 {object} map[string]string
// @Router   /entries/today [get]
func (h *EntryHandler) Today(c *gin.Context) {
	result, ok := h.svc.Today()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing recorded today"})
		return
	}
	c.JSON(http.StatusOK, recordResponse{Date: result.Date, Completed: result.Completed})
}

// List godoc
// @Summary  All daily records
// @Tags     entries
// @Produce  json
// @Success  200 {object} entriesResponse
// @Router   /entries [get]
func (h *EntryHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, entriesResponse{Records: h.svc.List()})
}
