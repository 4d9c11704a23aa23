package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bra1695/backend-kanban/internal/dto"
	apierrors "github.com/bra1695/backend-kanban/internal/errors"
	"github.com/bra1695/backend-kanban/internal/middleware"
	"github.com/bra1695/backend-kanban/internal/services"
)

// SubtaskHandler coordinates subtask HTTP handlers.
type SubtaskHandler struct {
	subtaskService *services.SubtaskService
}

// NewSubtaskHandler creates a new SubtaskHandler.
func NewSubtaskHandler(subtaskService *services.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{subtaskService: subtaskService}
}

type subtaskRequest struct {
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	DateStart   *string `json:"date_start" form:"date_start"`
	DateEnd     *string `json:"date_end" form:"date_end"`
	Hour        *string `json:"hour" form:"hour"`
	IsCompleted *bool   `json:"is_completed" form:"is_completed"`
}

// AddSubtask appends a subtask to a task.
func (h *SubtaskHandler) AddSubtask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req subtaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.Title == nil || *req.Title == "" {
		apierrors.BadRequest(c, "title is required")
		return
	}

	dateStart, err := parseDate(req.DateStart)
	if err != nil {
		apierrors.BadRequest(c, "invalid date_start")
		return
	}
	dateEnd, err := parseDate(req.DateEnd)
	if err != nil {
		apierrors.BadRequest(c, "invalid date_end")
		return
	}

	images, closeImages, err := formImages(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid image upload")
		return
	}
	defer closeImages()

	input := services.CreateSubtaskInput{
		Title:     *req.Title,
		DateStart: dateStart,
		DateEnd:   dateEnd,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Hour != nil {
		input.Hour = *req.Hour
	}
	if req.IsCompleted != nil {
		input.IsCompleted = *req.IsCompleted
	}

	subtask, err := h.subtaskService.Add(c.Request.Context(), c.Param("slug"), input, principal, images)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubtaskDTO(*subtask))
}

// ListSubtasks returns the subtasks of a task in order.
func (h *SubtaskHandler) ListSubtasks(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	subtasks, err := h.subtaskService.List(c.Param("slug"), principal)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubtaskDTOs(subtasks))
}

// GetSubtask returns one subtask.
func (h *SubtaskHandler) GetSubtask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	subtask, err := h.subtaskService.Get(c.Param("slug"), c.Param("subtaskSlug"), principal)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubtaskDTO(*subtask))
}

// UpdateSubtask applies a partial update; unspecified fields keep their value.
func (h *SubtaskHandler) UpdateSubtask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req subtaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dateStart, err := parseDate(req.DateStart)
	if err != nil {
		apierrors.BadRequest(c, "invalid date_start")
		return
	}
	dateEnd, err := parseDate(req.DateEnd)
	if err != nil {
		apierrors.BadRequest(c, "invalid date_end")
		return
	}

	images, closeImages, err := formImages(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid image upload")
		return
	}
	defer closeImages()

	subtask, err := h.subtaskService.Update(c.Request.Context(), c.Param("slug"), c.Param("subtaskSlug"), services.UpdateSubtaskInput{
		Title:       req.Title,
		Description: req.Description,
		DateStart:   dateStart,
		DateEnd:     dateEnd,
		Hour:        req.Hour,
		IsCompleted: req.IsCompleted,
	}, principal, images)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubtaskDTO(*subtask))
}

// DeleteSubtask removes one subtask.
func (h *SubtaskHandler) DeleteSubtask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.subtaskService.Delete(c.Param("slug"), c.Param("subtaskSlug"), principal); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subtask deleted successfully"})
}
