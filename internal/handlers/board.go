package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bra1695/backend-kanban/internal/dto"
	apierrors "github.com/bra1695/backend-kanban/internal/errors"
	"github.com/bra1695/backend-kanban/internal/middleware"
	"github.com/bra1695/backend-kanban/internal/services"
)

// BoardHandler coordinates board HTTP handlers.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// CreateBoard creates a board owned by the principal.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	type CreateBoardRequest struct {
		Name    string   `json:"name" binding:"required"`
		TeamIDs []uint64 `json:"team_ids"`
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.Create(services.CreateBoardInput{
		Name:    req.Name,
		TeamIDs: req.TeamIDs,
	}, principal)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(*board))
}

// ListBoards lists the boards created by the principal.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	boards, err := h.boardService.List(principal)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTOs(boards))
}

// GetBoard returns one owned board with its full hierarchy.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	board, err := h.boardService.Get(c.Param("slug"), principal)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// UpdateBoard applies a partial update to an owned board.
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	type UpdateBoardRequest struct {
		Name    *string   `json:"name"`
		TeamIDs *[]uint64 `json:"team_ids"`
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.Update(c.Param("slug"), services.UpdateBoardInput{
		Name:    req.Name,
		TeamIDs: req.TeamIDs,
	}, principal)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// DeleteBoard removes an owned board and everything nested under it.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.boardService.Delete(c.Param("slug"), principal); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrBoardNameTaken),
		errors.Is(err, services.ErrColumnNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrColumnNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
