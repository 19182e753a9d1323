package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/service"
	"github.com/sevasetu/volunteerhub/pkg/response"
	"github.com/sevasetu/volunteerhub/pkg/validator"
)

type RoleHandler struct {
	service service.RoleService
}

func NewRoleHandler(service service.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

func (h *RoleHandler) ListDefinitions(c *gin.Context) {
	definitions, err := h.service.ListDefinitions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": definitions})
}

func (h *RoleHandler) AssignRole(c *gin.Context) {
	callerID, err := response.GetCallerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.AssignRole(c.Request.Context(), callerID, req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "role assigned"})
}

func (h *RoleHandler) RevokeRole(c *gin.Context) {
	var req dto.RevokeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.RevokeRole(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "role revoked"})
}
