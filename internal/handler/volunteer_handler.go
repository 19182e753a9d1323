package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/model"
	"github.com/sevasetu/volunteerhub/internal/service"
	"github.com/sevasetu/volunteerhub/pkg/apperror"
	"github.com/sevasetu/volunteerhub/pkg/response"
	"github.com/sevasetu/volunteerhub/pkg/validator"
)

type VolunteerHandler struct {
	service     service.VolunteerService
	roleService service.RoleService
}

func NewVolunteerHandler(service service.VolunteerService, roleService service.RoleService) *VolunteerHandler {
	return &VolunteerHandler{service: service, roleService: roleService}
}

func (h *VolunteerHandler) GetMe(c *gin.Context) {
	callerID, err := response.GetCallerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	volunteer, err := h.service.GetVolunteer(c.Request.Context(), callerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, volunteer)
}

func (h *VolunteerHandler) GetVolunteer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidInput)
		return
	}

	volunteer, err := h.service.GetVolunteer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, volunteer)
}

func (h *VolunteerHandler) ListVolunteers(c *gin.Context) {
	var filter dto.VolunteerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	volunteers, err := h.service.ListVolunteers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, volunteers)
}

func (h *VolunteerHandler) UpdateProfile(c *gin.Context) {
	callerID, err := response.GetCallerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	targetID := callerID
	if raw := c.Param("id"); raw != "" {
		targetID, err = uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.ErrInvalidInput)
			return
		}
	}

	var req dto.UpdateVolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	level, err := h.roleService.CallerLevel(c.Request.Context(), callerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	volunteer, err := h.service.UpdateProfile(c.Request.Context(), callerID, targetID, level >= model.LevelAdmin, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, volunteer)
}

func (h *VolunteerHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidInput)
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "volunteer deactivated"})
}

func (h *VolunteerHandler) UploadAvatar(c *gin.Context) {
	callerID, err := response.GetCallerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	defer file.Close()

	url, err := h.service.UploadAvatar(c.Request.Context(), callerID, file, header.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
