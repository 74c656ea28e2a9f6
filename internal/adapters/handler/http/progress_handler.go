package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type ProgressHandler struct {
	svc    *services.ProgressService
	logger *zap.Logger
}

func NewProgressHandler(svc *services.ProgressService, logger *zap.Logger) *ProgressHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressHandler{svc: svc, logger: logger}
}

type summaryResponse struct {
	Habits []domain.HabitSummary `json:"habits"`
}

func (h *ProgressHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/habits/:index/progress", h.GetProgress)
	r.GET("/summary", h.GetSummary)
	r.GET("/calendar", h.GetCalendar)
}

// GetProgress godoc
// @Summary  Progress of one habit
// @Tags     progress
// @Produce  json
// @Param    index path int true "Habit position, starting at 0"
// @Success  200 {object} domain.Progress
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Router   /habits/{index}/progress [get]
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "habit index must be an integer"})
		return
	}

	progress, err := h.svc.Progress(index)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetSummary godoc
// @Summary  Dashboard summary
// @Tags     progress
// @Produce  json
// @Success  200 {object} summaryResponse
// @Router   /summary [get]
func (h *ProgressHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, summaryResponse{Habits: h.svc.Summary()})
}

// GetCalendar godoc
// @Summary  Month calendar
// @Tags     progress
// @Produce  json
// @Param    month query string false "Month as YYYY-MM, defaults to the current month"
// @Success  200 {object} domain.MonthGrid
// @Failure  400 {object} map[string]string
// @Router   /calendar [get]
func (h *ProgressHandler) GetCalendar(c *gin.Context) {
	grid, err := h.svc.Calendar(services.CalendarInput{Month: c.Query("month")})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, grid)
}
