package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

// StatsHandler handles statistics endpoints
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// ProjectStatistics godoc
// @Summary      Project statistics
// @Description  Aggregates the caller's projects by status, priority and
// @Description  schedule. The filter bounds the window: month, quarter, year
// @Description  or all (default).
// @Tags         stats
// @Produce      json
// @Param        filter query string false "Time filter" Enums(month, quarter, year, all)
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectStatisticsResponse} "Statistics"
// @Failure      400 {object} response.ErrorResponse "Invalid filter"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Router       /stats/projects [get]
func (h *StatsHandler) ProjectStatistics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.ProjectStatistics(c.Request.Context(), userID, c.Query("filter"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stats)
}

// TaskStatistics godoc
// @Summary      Task statistics
// @Description  Aggregates tasks across the caller's projects, including the
// @Description  measured average completion time in days.
// @Tags         stats
// @Produce      json
// @Param        filter query string false "Time filter" Enums(month, quarter, year, all)
// @Success      200 {object} response.SuccessResponse{data=dto.TaskStatisticsResponse} "Statistics"
// @Failure      400 {object} response.ErrorResponse "Invalid filter"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Router       /stats/tasks [get]
func (h *StatsHandler) TaskStatistics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.TaskStatistics(c.Request.Context(), userID, c.Query("filter"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stats)
}

// TeamStatistics godoc
// @Summary      Team statistics
// @Description  Per-member completed task counts and task distribution across
// @Description  the caller's projects.
// @Tags         stats
// @Produce      json
// @Param        filter query string false "Time filter" Enums(month, quarter, year, all)
// @Success      200 {object} response.SuccessResponse{data=dto.TeamStatisticsResponse} "Statistics"
// @Failure      400 {object} response.ErrorResponse "Invalid filter"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Router       /stats/team [get]
func (h *StatsHandler) TeamStatistics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.TeamStatistics(c.Request.Context(), userID, c.Query("filter"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stats)
}
