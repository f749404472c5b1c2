package handler

import (
	"github.com/branchstock/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ItemHandler handles item catalogue endpoints
type ItemHandler struct {
	BaseHandler
	itemService *catalog.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *catalog.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create godoc
// @ID           createItem
// @Summary      Create an item
// @Description  The item starts with zero counters. Its article must exist.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateItemRequest true "Item creation request"
// @Success      201 {object} dto.Response{data=catalog.ItemResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req catalog.CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// GetByID godoc
// @ID           getItemById
// @Summary      Get item by ID
// @Tags         items
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.ItemResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /items/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}
