package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wardrobe/backend/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ClosetService manages categories and the items a user owns
type ClosetService struct {
	closet    domain.ClosetRepository
	revisions *userRevisions
	logger    *zap.Logger
}

// NewClosetService creates a new closet service. Writes bump the same per-user
// cache revision the wishlist service reads, so cached similar items go stale.
func NewClosetService(
	closet domain.ClosetRepository,
	cache domain.CacheRepository,
	logger *zap.Logger,
	config WishlistServiceConfig,
) *ClosetService {
	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ClosetService{
		closet:    closet,
		revisions: &userRevisions{cache: cache, ttl: ttl},
		logger:    logger.Named("closet"),
	}
}

// ListCategories returns every category with the user's item count
func (s *ClosetService) ListCategories(ctx context.Context, userID int64) ([]domain.CategorySummary, error) {
	categories, err := s.closet.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategoryWithClothes returns a category and a page of the user's items filed under it
func (s *ClosetService) GetCategoryWithClothes(
	ctx context.Context,
	userID, categoryID int64,
	skip, limit int,
) (*domain.CategoryWithClothes, error) {
	category, err := s.closet.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	skip, limit = normalizePage(skip, limit)
	items, err := s.closet.SearchItems(ctx, userID, domain.ItemFilter{
		CategoryID: &categoryID,
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list category items: %w", err)
	}

	return &domain.CategoryWithClothes{Category: *category, Clothes: items}, nil
}

// SearchItems filters the user's closet
func (s *ClosetService) SearchItems(ctx context.Context, userID int64, filter domain.ItemFilter) ([]domain.ClothingItem, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Color = strings.TrimSpace(filter.Color)
	filter.Season = strings.TrimSpace(filter.Season)
	filter.Skip, filter.Limit = normalizePage(filter.Skip, filter.Limit)

	items, err := s.closet.SearchItems(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return items, nil
}

// GetItem returns one item owned by the user
func (s *ClosetService) GetItem(ctx context.Context, userID, itemID int64) (*domain.ClothingItem, error) {
	return s.closet.GetItem(ctx, userID, itemID)
}

// CreateItem adds an item to the user's closet
func (s *ClosetService) CreateItem(ctx context.Context, userID int64, req *domain.ClothingItemCreate) (*domain.ClothingItem, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidRequest
	}

	category, err := s.closet.GetCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	categoryID := req.CategoryID
	item := &domain.ClothingItem{
		UserID:       userID,
		CategoryID:   &categoryID,
		CategoryName: category.CategoryName,
		Name:         req.Name,
		Brand:        req.Brand,
		Color:        req.Color,
		Season:       req.Season,
		Occasion:     req.Occasion,
		Style:        req.Style,
		Material:     req.Material,
		PurchaseDate: req.PurchaseDate,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		Notes:        req.Notes,
	}
	if err := s.closet.CreateItem(ctx, item, req.TagIDs); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.invalidate(ctx, userID)
	return item, nil
}

// DeleteItem removes an item from the user's closet
func (s *ClosetService) DeleteItem(ctx context.Context, userID, itemID int64) error {
	if err := s.closet.DeleteItem(ctx, userID, itemID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *ClosetService) invalidate(ctx context.Context, userID int64) {
	if err := s.revisions.bump(ctx, userID); err != nil {
		s.logger.Warn("failed to bump cache revision", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// normalizePage clamps paging parameters: negative skip becomes 0,
// a missing limit becomes 20 and limits above 100 are capped
func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return skip, limit
}
