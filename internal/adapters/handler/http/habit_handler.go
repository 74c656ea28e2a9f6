package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type HabitHandler struct {
	svc    *services.HabitService
	logger *zap.Logger
}

func NewHabitHandler(svc *services.HabitService, logger *zap.Logger) *HabitHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HabitHandler{
		svc:    svc,
		logger: logger,
	}
}

type setupHabitRequest struct {
	Name            string `json:"name"`
	Reason          string `json:"reason"`
	TargetDays      int    `json:"targetDays"`
	RewardMilestone int    `json:"rewardMilestone"`
	Reward          string `json:"reward"`
}

type setupRequest struct {
	Habits []setupHabitRequest `json:"habits" binding:"required"`
}

type habitsResponse struct {
	Habits  []domain.Habit `json:"habits"`
	Warning string         `json:"warning,omitempty"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Setup)
		habits.GET("", h.List)
	}
}

// Setup godoc
// @Summary  Define the habit list
// @Description Commits up to four habits on first run. Invalid entries are dropped.
// @Tags     habits
// @Accept   json
// @Produce  json
// @Param    body body setupRequest true "Habits"
// @Success  201 {object} habitsResponse
// @Failure  400 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Failure  422 {object} map[string]string
// @Router   /habits [post]
func (h *HabitHandler) Setup(c *gin.Context) {
	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.SetupInput{Habits: make([]services.SetupHabitInput, 0, len(req.Habits))}
	for _, r := range req.Habits {
		input.Habits = append(input.Habits, services.SetupHabitInput{
			Name:            r.Name,
			Reason:          r.Reason,
			TargetDays:      r.TargetDays,
			RewardMilestone: r.RewardMilestone,
			Reward:          r.Reward,
		})
	}

	habits, err := h.svc.Setup(c.Request.Context(), input)
	resp := habitsResponse{Habits: habits}
	if err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			handleError(c, h.logger, err)
			return
		}
		resp.Warning = storageWarning
	}

	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary  List habits
// @Tags     habits
// @Produce  json
// @Success  200 {object} habitsResponse
// @Router   /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, habitsResponse{Habits: h.svc.List()})
}
