package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wardrobe/backend/internal/domain"
	"github.com/wardrobe/backend/internal/usecase"
)

type wishlistQuery struct {
	pageQuery
	AddedToCloset *bool `form:"added_to_closet"`
}

type similarQuery struct {
	Threshold *float64 `form:"threshold"`
	Limit     *int     `form:"limit"`
}

// ListWishlist handles GET /api/wishlist/items
func (h *Handler) ListWishlist(c *gin.Context) {
	var q wishlistQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	items, err := h.wishlist.List(c.Request.Context(), userIDFrom(c), domain.WishlistFilter{
		AddedToCloset: q.AddedToCloset,
		Skip:          q.Skip,
		Limit:         q.Limit,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetWishlistItem handles GET /api/wishlist/items/:id
func (h *Handler) GetWishlistItem(c *gin.Context) {
	wishlistID, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.wishlist.Get(c.Request.Context(), userIDFrom(c), wishlistID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateWishlistItem handles POST /api/wishlist/items
func (h *Handler) CreateWishlistItem(c *gin.Context) {
	var req domain.WishlistItemCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.wishlist.Create(c.Request.Context(), userIDFrom(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateWishlistItem handles PUT /api/wishlist/items/:id
func (h *Handler) UpdateWishlistItem(c *gin.Context) {
	wishlistID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req domain.WishlistItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.wishlist.Update(c.Request.Context(), userIDFrom(c), wishlistID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteWishlistItem handles DELETE /api/wishlist/items/:id
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	wishlistID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.wishlist.Delete(c.Request.Context(), userIDFrom(c), wishlistID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Wishlist item deleted successfully"})
}

// AddToCloset handles POST /api/wishlist/items/:id/add-to-closet
func (h *Handler) AddToCloset(c *gin.Context) {
	wishlistID, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.wishlist.AddToCloset(c.Request.Context(), userIDFrom(c), wishlistID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// FindSimilarItems handles GET /api/wishlist/items/:id/similar-items
func (h *Handler) FindSimilarItems(c *gin.Context) {
	wishlistID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var q similarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	items, err := h.wishlist.FindSimilar(c.Request.Context(), userIDFrom(c), wishlistID, usecase.SimilarParams{
		Threshold: q.Threshold,
		Limit:     q.Limit,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// WishlistStats handles GET /api/wishlist/stats
func (h *Handler) WishlistStats(c *gin.Context) {
	stats, err := h.wishlist.Stats(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
