package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

// TaskHandler handles board, task and comment endpoints
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateGroup godoc
// @Summary      Create a task group
// @Description  Appends a new board column to the project
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        request body dto.CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.GroupResponse} "Group created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Router       /projects/{projectId}/groups [post]
func (h *TaskHandler) CreateGroup(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	group, err := h.taskService.CreateGroup(c.Request.Context(), projectID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, group)
}

// ListGroups godoc
// @Summary      List the project board
// @Description  Returns the project's groups in position order, each with its
// @Description  top-level tasks and one level of subtasks. A project without
// @Description  groups gets its default column created on first read.
// @Tags         tasks
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.GroupResponse} "Board"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Router       /projects/{projectId}/groups [get]
func (h *TaskHandler) ListGroups(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	groups, err := h.taskService.ListGroups(c.Request.Context(), projectID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, groups)
}

// CreateTask godoc
// @Summary      Create a task
// @Description  Creates a top-level task. Without an explicit group the task
// @Description  lands in the project's first column.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateTaskRequest true "Task creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.TaskResponse} "Task created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Router       /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, task)
}

// CreateSubtask godoc
// @Summary      Create a subtask
// @Description  Creates a task nested under a parent. The subtask inherits
// @Description  the parent's project and column.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Parent task ID (UUID)"
// @Param        request body dto.CreateSubtaskRequest true "Subtask creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.TaskResponse} "Subtask created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Parent task not found"
// @Router       /tasks/{taskId}/subtasks [post]
func (h *TaskHandler) CreateSubtask(c *gin.Context) {
	parentID, ok := parseUUIDParam(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	subtask, err := h.taskService.CreateSubtask(c.Request.Context(), parentID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, subtask)
}

// GetTask godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "Task"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Router       /tasks/{taskId} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// UpdateTask godoc
// @Summary      Update a task
// @Description  Applies a partial update. Owner and collaborators alike.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.UpdateTaskRequest true "Task update request"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "Task updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Router       /tasks/{taskId} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// UpdateStatus godoc
// @Summary      Update a task's status
// @Description  Moves a task to another board state. Drag and drop on the
// @Description  board is a plain status update.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.UpdateTaskStatusRequest true "Status update request"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "Status updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Router       /tasks/{taskId}/status [patch]
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateStatus(c.Request.Context(), taskID, userID, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// MoveTask godoc
// @Summary      Move a task to another group
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.MoveTaskRequest true "Move request"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "Task moved"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Task or group not found"
// @Router       /tasks/{taskId}/move [patch]
func (h *TaskHandler) MoveTask(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.taskService.MoveToGroup(c.Request.Context(), taskID, userID, req.GroupID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary      Delete a task
// @Description  Deletes a task. Subtasks and comments follow via cascade.
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "Task deleted"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Router       /tasks/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// AddComment godoc
// @Summary      Comment on a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.CreateCommentRequest true "Comment request"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentResponse} "Comment added"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Router       /tasks/{taskId}/comments [post]
func (h *TaskHandler) AddComment(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.taskService.AddComment(c.Request.Context(), taskID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}

// ListComments godoc
// @Summary      List a task's comments
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CommentResponse} "Comments"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Router       /tasks/{taskId}/comments [get]
func (h *TaskHandler) ListComments(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	comments, err := h.taskService.ListComments(c.Request.Context(), taskID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comments)
}
