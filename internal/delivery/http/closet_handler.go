package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wardrobe/backend/internal/domain"
)

type pageQuery struct {
	Skip  int `form:"skip" binding:"min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type searchQuery struct {
	pageQuery
	Query      string `form:"query"`
	CategoryID *int64 `form:"category_id"`
	Color      string `form:"color"`
	Season     string `form:"season"`
}

// ListCategories handles GET /api/closet/categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.closet.ListCategories(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory handles GET /api/closet/category/:id
func (h *Handler) GetCategory(c *gin.Context) {
	categoryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	category, err := h.closet.GetCategoryWithClothes(c.Request.Context(), userIDFrom(c), categoryID, q.Skip, q.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// SearchItems handles GET /api/closet/items/search
func (h *Handler) SearchItems(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	items, err := h.closet.SearchItems(c.Request.Context(), userIDFrom(c), domain.ItemFilter{
		Query:      q.Query,
		CategoryID: q.CategoryID,
		Color:      q.Color,
		Season:     q.Season,
		Skip:       q.Skip,
		Limit:      q.Limit,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem handles GET /api/closet/items/:id
func (h *Handler) GetItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.closet.GetItem(c.Request.Context(), userIDFrom(c), itemID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateItem handles POST /api/closet/items
func (h *Handler) CreateItem(c *gin.Context) {
	var req domain.ClothingItemCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.closet.CreateItem(c.Request.Context(), userIDFrom(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DeleteItem handles DELETE /api/closet/items/:id
func (h *Handler) DeleteItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.closet.DeleteItem(c.Request.Context(), userIDFrom(c), itemID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
