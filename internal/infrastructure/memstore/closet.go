package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/wardrobe/backend/internal/domain"
)

// ClosetRepository implements domain.ClosetRepository in memory
type ClosetRepository struct {
	store *Store
}

var _ domain.ClosetRepository = (*ClosetRepository)(nil)

func (r *ClosetRepository) ListCategories(ctx context.Context, userID int64) ([]domain.CategorySummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[int64]int)
	for _, item := range r.store.items {
		if item.UserID == userID && item.CategoryID != nil {
			counts[*item.CategoryID]++
		}
	}

	result := make([]domain.CategorySummary, 0, len(r.store.categories))
	for id, c := range r.store.categories {
		result = append(result, domain.CategorySummary{Category: c, ItemCount: counts[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CategoryID < result[j].CategoryID
	})
	return result, nil
}

func (r *ClosetRepository) GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.categories[categoryID]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *ClosetRepository) ListItems(ctx context.Context, userID int64) ([]domain.ClothingItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.userItemsLocked(userID, func(domain.ClothingItem) bool { return true }), nil
}

// SearchItems matches query against name, brand and color, case-insensitively.
// Color and season filters are substring matches as well.
func (r *ClosetRepository) SearchItems(ctx context.Context, userID int64, filter domain.ItemFilter) ([]domain.ClothingItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := strings.ToLower(filter.Query)
	color := strings.ToLower(filter.Color)
	season := strings.ToLower(filter.Season)

	items := r.userItemsLocked(userID, func(item domain.ClothingItem) bool {
		if query != "" &&
			!containsFold(item.Name, query) &&
			!containsFold(item.Brand, query) &&
			!containsFold(item.Color, query) {
			return false
		}
		if filter.CategoryID != nil && (item.CategoryID == nil || *item.CategoryID != *filter.CategoryID) {
			return false
		}
		if color != "" && !containsFold(item.Color, color) {
			return false
		}
		if season != "" && !containsFold(item.Season, season) {
			return false
		}
		return true
	})
	return page(items, filter.Skip, filter.Limit), nil
}

func (r *ClosetRepository) GetItem(ctx context.Context, userID, itemID int64) (*domain.ClothingItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.items[itemID]
	if !ok || item.UserID != userID {
		return nil, domain.ErrClothingItemNotFound
	}
	return &item, nil
}

func (r *ClosetRepository) CreateItem(ctx context.Context, item *domain.ClothingItem, tagIDs []int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.insertItemLocked(item, tagIDs)
	return nil
}

func (r *ClosetRepository) DeleteItem(ctx context.Context, userID, itemID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.items[itemID]
	if !ok || item.UserID != userID {
		return domain.ErrClothingItemNotFound
	}
	delete(r.store.items, itemID)
	delete(r.store.itemTags, itemID)
	return nil
}

// TagIDs returns the tags attached to a closet item
func (r *ClosetRepository) TagIDs(itemID int64) []int64 {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]int64(nil), r.store.itemTags[itemID]...)
}

// userItemsLocked returns the user's matching items in insertion order
func (r *ClosetRepository) userItemsLocked(userID int64, keep func(domain.ClothingItem) bool) []domain.ClothingItem {
	items := make([]domain.ClothingItem, 0)
	for _, item := range r.store.items {
		if item.UserID == userID && keep(item) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ItemID < items[j].ItemID
	})
	return items
}

func containsFold(s, lowerSubstr string) bool {
	return strings.Contains(strings.ToLower(s), lowerSubstr)
}
