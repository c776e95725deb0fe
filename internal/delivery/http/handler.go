package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wardrobe/backend/internal/domain"
	"github.com/wardrobe/backend/internal/usecase"
)

const (
	serviceName    = "wardrobe-backend"
	serviceVersion = "1.0.0"
)

// Pinger is a dependency the health check can probe
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	closet   *usecase.ClosetService
	wishlist *usecase.WishlistService
	logger   *zap.Logger
	checks   map[string]Pinger
}

// NewHandler creates a new HTTP handler. checks are probed by /health.
func NewHandler(
	closet *usecase.ClosetService,
	wishlist *usecase.WishlistService,
	logger *zap.Logger,
	checks map[string]Pinger,
) *Handler {
	return &Handler{
		closet:   closet,
		wishlist: wishlist,
		logger:   logger,
		checks:   checks,
	}
}

// HealthCheck reports service status and probes each dependency
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	code := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = "unavailable"
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	c.JSON(code, gin.H{
		"status":       status,
		"service":      serviceName,
		"version":      serviceVersion,
		"dependencies": deps,
	})
}

// respondError maps domain errors to status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, domain.ErrWishlistItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
	case errors.Is(err, domain.ErrClothingItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errors.Is(err, domain.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
	case errors.Is(err, domain.ErrAlreadyInCloset):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item already added to closet"})
	case errors.Is(err, domain.ErrCategoryRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category is required to add to closet"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", requestIDFrom(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}

// pathID parses a positive integer path parameter
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}
