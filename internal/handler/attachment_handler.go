package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

// AttachmentHandler handles task file attachment endpoints
type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// PresignUpload godoc
// @Summary      Request an upload URL
// @Description  Issues a presigned PUT URL for a task attachment. The file is
// @Description  held as TEMP until a task create or update references its ID,
// @Description  and is cleaned up after 24 hours otherwise.
// @Tags         attachments
// @Accept       json
// @Produce      json
// @Param        request body dto.PresignUploadRequest true "Upload request"
// @Success      200 {object} response.SuccessResponse{data=dto.PresignUploadResponse} "Upload URL"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Router       /attachments/presign [post]
func (h *AttachmentHandler) PresignUpload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	resp, err := h.attachmentService.PresignUpload(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, resp)
}

// ListForTask godoc
// @Summary      List a task's attachments
// @Description  Returns the task's confirmed attachments with presigned
// @Description  download URLs
// @Tags         attachments
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.AttachmentResponse} "Attachments"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Router       /tasks/{taskId}/attachments [get]
func (h *AttachmentHandler) ListForTask(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	attachments, err := h.attachmentService.ListForTask(c.Request.Context(), taskID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, attachments)
}

// DeleteAttachment godoc
// @Summary      Delete an attachment
// @Description  Removes an attachment from storage and the database. Allowed
// @Description  for the uploader and the owner of the project it belongs to.
// @Tags         attachments
// @Produce      json
// @Param        attachmentId path string true "Attachment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "Attachment deleted"
// @Failure      403 {object} response.ErrorResponse "No access"
// @Failure      404 {object} response.ErrorResponse "Attachment not found"
// @Router       /attachments/{attachmentId} [delete]
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	attachmentID, ok := parseUUIDParam(c, "attachmentId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), attachmentID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Attachment deleted"})
}
