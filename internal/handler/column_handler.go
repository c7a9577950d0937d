package handler

import (
	"net/http"

	"pharus/internal/model"
	"pharus/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ColumnHandler struct {
	columnRepo *repository.ColumnRepository
}

func NewColumnHandler(columnRepo *repository.ColumnRepository) *ColumnHandler {
	return &ColumnHandler{columnRepo: columnRepo}
}

type CreateColumnRequest struct {
	Title    string `json:"title" binding:"required"`
	Type     string `json:"type" binding:"omitempty,oneof=pending in_progress review completed"`
	Position int    `json:"position"`
}

type ColumnResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Position int    `json:"position"`
}

func toColumnResponse(col *model.Column) ColumnResponse {
	return ColumnResponse{
		ID:       col.ID.String(),
		Title:    col.Title,
		Type:     col.Type,
		Position: col.Position,
	}
}

func (h *ColumnHandler) Create(c *gin.Context) {
	if currentUserID(c) == uuid.Nil {
		return
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	column := &model.Column{
		Title:    req.Title,
		Type:     req.Type,
		Position: req.Position,
	}
	if err := h.columnRepo.Create(c.Request.Context(), column); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create column"})
		return
	}

	c.JSON(http.StatusCreated, toColumnResponse(column))
}

func (h *ColumnHandler) GetAll(c *gin.Context) {
	columns, err := h.columnRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}

	resp := make([]ColumnResponse, 0, len(columns))
	for i := range columns {
		resp = append(resp, toColumnResponse(&columns[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Seed creates the default four columns on an empty board.
func (h *ColumnHandler) Seed(c *gin.Context) {
	if currentUserID(c) == uuid.Nil {
		return
	}

	columns, err := h.columnRepo.SeedDefaults(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed columns"})
		return
	}

	resp := make([]ColumnResponse, 0, len(columns))
	for i := range columns {
		resp = append(resp, toColumnResponse(&columns[i]))
	}
	c.JSON(http.StatusOK, resp)
}
