package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "rentfleet/internal/handler/dto/request"
	resdto "rentfleet/internal/handler/dto/response"
	"rentfleet/internal/handler/middleware"
	"rentfleet/internal/infra"
	"rentfleet/internal/usecase/commands"
	"rentfleet/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TemplateHandler struct {
	templateCommands commands.TemplateCommands
	bookingCommands  commands.BookingCommands
	templateQueries  queries.TemplateQueries
}

func NewTemplateHandler(
	templateCommands commands.TemplateCommands,
	bookingCommands commands.BookingCommands,
	templateQueries queries.TemplateQueries,
) *TemplateHandler {
	return &TemplateHandler{
		templateCommands: templateCommands,
		bookingCommands:  bookingCommands,
		templateQueries:  templateQueries,
	}
}

// @Summary Create template
// @Description Create an equipment template with its initial instances
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTemplateRequest true "Template request"
// @Success 201 {object} resdto.TemplateResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	renterID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	templateID, err := h.templateCommands.CreateTemplate(c.Request.Context(), renterID, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDuplicateTemplateCode):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Template code already in use",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	view, err := h.templateQueries.GetByID(c.Request.Context(), templateID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, resdto.FromTemplateView(view))
}

// @Summary List templates
// @Description List equipment templates, newest first
// @Tags templates
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} resdto.TemplateListResponse
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.templateQueries.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.TemplateListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromTemplateListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get template
// @Description Get a template with its instances
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} resdto.TemplateResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid template ID format",
		})
		return
	}

	view, err := h.templateQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Template not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTemplateView(view))
}

// @Summary Check availability
// @Description Dry-run availability and pricing for a window
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Param count query int false "Requested unit count"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /templates/{id}/availability [get]
func (h *TemplateHandler) CheckAvailability(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid template ID format",
		})
		return
	}

	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid availability query",
		})
		return
	}

	report, err := h.bookingCommands.CheckAvailability(c.Request.Context(), templateID, query.Start, query.End, query.UnitCount())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrTemplateNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Template not found",
			})
		case errors.Is(err, commands.ErrInvalidWindow), errors.Is(err, commands.ErrInvalidUnitCount):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid availability query",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityReport(report))
}

// @Summary Update instance status
// @Description Move an instance between active, maintenance and retired
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Instance ID"
// @Param request body reqdto.UpdateInstanceStatusRequest true "Status request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /instances/{id}/status [patch]
func (h *TemplateHandler) UpdateInstanceStatus(c *gin.Context) {
	renterID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	instanceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid instance ID format",
		})
		return
	}

	var req reqdto.UpdateInstanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.templateCommands.UpdateInstanceStatus(c.Request.Context(), renterID, instanceID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInstanceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Instance not found",
			})
		case errors.Is(err, commands.ErrNotTemplateOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Caller does not own the template",
			})
		case errors.Is(err, commands.ErrInvalidInstanceStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid instance status",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
