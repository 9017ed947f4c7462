package handlers

import (
	"net/http"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/middleware"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	tasks services.TaskService
}

func NewStatsHandler(tasks services.TaskService) *StatsHandler {
	return &StatsHandler{tasks: tasks}
}

// GetSummary aggregates the board the requester is allowed to see. The
// numbers are derived from the same listing the board endpoint serves, so
// the two never disagree.
func (h *StatsHandler) GetSummary(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	views, err := h.tasks.ListAll(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, services.Summarize(views))
}
