package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bra1695/backend-kanban/internal/dto"
	apierrors "github.com/bra1695/backend-kanban/internal/errors"
	"github.com/bra1695/backend-kanban/internal/middleware"
	"github.com/bra1695/backend-kanban/internal/services"
	"github.com/bra1695/backend-kanban/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// taskRequest is shared by create and update; JSON and multipart form are
// both accepted, with image files only arriving via multipart.
type taskRequest struct {
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Status      *string `json:"status" form:"status"`
	DateStart   *string `json:"date_start" form:"date_start"`
	DateEnd     *string `json:"date_end" form:"date_end"`
	Hour        *string `json:"hour" form:"hour"`
	AffectedTo  *uint64 `json:"affected_to" form:"affected_to"`
}

// CreateTask creates a task inside a column, uploading any attached images.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req taskRequest
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

	input := services.CreateTaskInput{
		Title:     *req.Title,
		DateStart: dateStart,
		DateEnd:   dateEnd,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Status != nil {
		input.Status = *req.Status
	}
	if req.Hour != nil {
		input.Hour = *req.Hour
	}
	if req.AffectedTo != nil {
		input.AffectedTo = *req.AffectedTo
	}

	task, err := h.taskService.Create(c.Request.Context(), c.Param("columnSlug"), input, principal, images)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks lists the tasks of the principal's organization.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	tasks, total, err := h.taskService.ListOrganization(principal, params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks: dto.ToTaskDTOs(tasks),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// ListAssignedTasks lists the tasks assigned to the principal.
func (h *TaskHandler) ListAssignedTasks(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListAssigned(principal)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns one task with its subtasks.
func (h *TaskHandler) GetTask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	task, err := h.taskService.Get(c.Param("slug"), principal)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update; unspecified fields keep their value.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req taskRequest
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

	task, err := h.taskService.Update(c.Request.Context(), c.Param("slug"), services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DateStart:   dateStart,
		DateEnd:     dateEnd,
		Hour:        req.Hour,
		AffectedTo:  req.AffectedTo,
	}, principal, images)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes one task and its subtasks.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.taskService.Delete(c.Param("slug"), principal); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrNoOrganization):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskTitleTaken),
		errors.Is(err, services.ErrSubtaskTitleTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrSubtaskNotFound),
		errors.Is(err, services.ErrColumnNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrImageUpload):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

// parseDate accepts RFC 3339 or plain yyyy-mm-dd values.
func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// formImages opens the "images" files of a multipart request. Non-multipart
// requests just yield no images.
func formImages(c *gin.Context) ([]io.Reader, func(), error) {
	contentType := c.ContentType()
	if !strings.HasPrefix(contentType, "multipart/") {
		return nil, func() {}, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, err
	}

	var (
		readers []io.Reader
		opened  []multipart.File
	)
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, header := range form.File["images"] {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, file)
		readers = append(readers, file)
	}
	return readers, closeAll, nil
}
