package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bra1695/backend-kanban/internal/dto"
	apierrors "github.com/bra1695/backend-kanban/internal/errors"
	"github.com/bra1695/backend-kanban/internal/middleware"
	"github.com/bra1695/backend-kanban/internal/services"
)

// ColumnHandler coordinates column HTTP handlers.
type ColumnHandler struct {
	columnService *services.ColumnService
}

// NewColumnHandler creates a new ColumnHandler.
func NewColumnHandler(columnService *services.ColumnService) *ColumnHandler {
	return &ColumnHandler{columnService: columnService}
}

// AddColumn appends one column to a board and returns the updated board.
func (h *ColumnHandler) AddColumn(c *gin.Context) {
	type AddColumnRequest struct {
		Name string `json:"name" binding:"required"`
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req AddColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.columnService.Add(c.Param("slug"), req.Name, principal)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// ListColumns returns the columns of an owned board in order.
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	columns, err := h.columnService.List(c.Param("slug"), principal)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnDTOs(columns))
}

// UpdateColumn renames a column; the slug is re-derived.
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	type UpdateColumnRequest struct {
		Name *string `json:"name"`
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.Update(c.Param("columnSlug"), services.UpdateColumnInput{
		Name: req.Name,
	}, principal)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnDTO(*column))
}

// DeleteColumn removes a column and the tasks nested under it.
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.columnService.Delete(c.Param("columnSlug"), principal); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Column deleted successfully"})
}
