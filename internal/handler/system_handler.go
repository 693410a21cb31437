package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/database"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

// SystemHandler handles health and maintenance endpoints
type SystemHandler struct {
	db          *gorm.DB
	authService service.AuthService
	logger      *zap.Logger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *gorm.DB, authService service.AuthService, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		db:          db,
		authService: authService,
		logger:      logger,
	}
}

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]interface{} "Service status"
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": database.IsConnected(),
	})
}

// FixDatabase godoc
// @Summary      Repair the database schema
// @Description  Re-runs migrations against the live database. With
// @Description  recreate=true the task tables are dropped and rebuilt, losing
// @Description  their data. Administrators only.
// @Tags         system
// @Produce      json
// @Param        recreate query bool false "Drop and rebuild task tables" default(false)
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "Schema repaired"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Failure      403 {object} response.ErrorResponse "Not an administrator"
// @Failure      500 {object} response.ErrorResponse "Migration failed"
// @Router       /system/fix-database [get]
func (h *SystemHandler) FixDatabase(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	isAdmin, err := h.authService.IsAdmin(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !isAdmin {
		response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Administrator role required")
		return
	}

	recreate, _ := strconv.ParseBool(c.DefaultQuery("recreate", "false"))

	h.logger.Warn("Database repair requested",
		zap.String("user_id", userID.String()),
		zap.Bool("recreate", recreate),
	)

	if recreate {
		err = database.RecreateTaskTables(h.db, h.logger)
	} else {
		err = database.SafeAutoMigrate(h.db, h.logger)
	}
	if err != nil {
		h.logger.Error("Database repair failed", zap.Error(err))
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Database repair failed")
		return
	}

	mode := "migrated"
	if recreate {
		mode = "recreated"
	}
	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Database " + mode + " successfully"})
}
