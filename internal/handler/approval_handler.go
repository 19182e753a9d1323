package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/service"
	"github.com/sevasetu/volunteerhub/pkg/apperror"
	"github.com/sevasetu/volunteerhub/pkg/response"
	"github.com/sevasetu/volunteerhub/pkg/validator"
)

type ApprovalHandler struct {
	service service.ApprovalService
}

func NewApprovalHandler(service service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{service: service}
}

func (h *ApprovalHandler) GetPendingApprovals(c *gin.Context) {
	var filter dto.PendingApprovalFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	approvals, err := h.service.GetPendingApprovals(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": approvals})
}

func (h *ApprovalHandler) ApproveHours(c *gin.Context) {
	callerID, err := response.GetCallerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	participationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidInput)
		return
	}

	var req dto.ApproveHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	participation, err := h.service.ApproveHours(c.Request.Context(), callerID, participationID, req.ApprovedHours, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, participation)
}

func (h *ApprovalHandler) RejectHours(c *gin.Context) {
	callerID, err := response.GetCallerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	participationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidInput)
		return
	}

	var req dto.RejectHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	participation, err := h.service.RejectHours(c.Request.Context(), callerID, participationID, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, participation)
}

func (h *ApprovalHandler) BulkApproveHours(c *gin.Context) {
	callerID, err := response.GetCallerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.BulkApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	ids := make([]uuid.UUID, 0, len(req.ParticipationIDs))
	for _, raw := range req.ParticipationIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.ErrInvalidInput)
			return
		}
		ids = append(ids, id)
	}

	count, err := h.service.BulkApproveHours(c.Request.Context(), callerID, ids, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BulkApproveResponse{Count: count})
}

func (h *ApprovalHandler) ResetApproval(c *gin.Context) {
	callerID, err := response.GetCallerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	participationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidInput)
		return
	}

	participation, err := h.service.ResetApproval(c.Request.Context(), callerID, participationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, participation)
}
