package memstore

import (
	"context"
	"sort"

	"github.com/wardrobe/backend/internal/domain"
)

// WishlistRepository implements domain.WishlistRepository in memory
type WishlistRepository struct {
	store *Store
}

var _ domain.WishlistRepository = (*WishlistRepository)(nil)

// List returns the user's entries, newest first
func (r *WishlistRepository) List(ctx context.Context, userID int64, filter domain.WishlistFilter) ([]domain.WishlistItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	items := make([]domain.WishlistItem, 0)
	for _, item := range r.store.wishlist {
		if item.UserID != userID {
			continue
		}
		if filter.AddedToCloset != nil && item.AddedToCloset != *filter.AddedToCloset {
			continue
		}
		items = append(items, cloneWishlistItem(item))
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].WishlistID > items[j].WishlistID
	})
	return page(items, filter.Skip, filter.Limit), nil
}

func (r *WishlistRepository) Get(ctx context.Context, userID, wishlistID int64) (*domain.WishlistItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.wishlist[wishlistID]
	if !ok || item.UserID != userID {
		return nil, domain.ErrWishlistItemNotFound
	}
	item = cloneWishlistItem(item)
	return &item, nil
}

func (r *WishlistRepository) Create(ctx context.Context, item *domain.WishlistItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	item.WishlistID = r.store.nextWishlistID
	r.store.nextWishlistID++
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.TagIDs == nil {
		item.TagIDs = []int64{}
	}
	r.store.wishlist[item.WishlistID] = cloneWishlistItem(*item)
	return nil
}

func (r *WishlistRepository) Update(ctx context.Context, item *domain.WishlistItem, replaceTags bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.wishlist[item.WishlistID]
	if !ok || existing.UserID != item.UserID {
		return domain.ErrWishlistItemNotFound
	}
	if !replaceTags {
		item.TagIDs = existing.TagIDs
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = r.store.now()
	r.store.wishlist[item.WishlistID] = cloneWishlistItem(*item)
	return nil
}

func (r *WishlistRepository) Delete(ctx context.Context, userID, wishlistID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.wishlist[wishlistID]
	if !ok || item.UserID != userID {
		return domain.ErrWishlistItemNotFound
	}
	delete(r.store.wishlist, wishlistID)
	return nil
}

// MoveToCloset copies the entry and its tags into the closet under one lock
func (r *WishlistRepository) MoveToCloset(ctx context.Context, item *domain.WishlistItem) (*domain.ClothingItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.wishlist[item.WishlistID]
	if !ok || existing.UserID != item.UserID {
		return nil, domain.ErrWishlistItemNotFound
	}
	if existing.AddedToCloset {
		return nil, domain.ErrAlreadyInCloset
	}

	closetItem := existing.ToClothingItem()
	r.store.insertItemLocked(closetItem, existing.TagIDs)

	existing.AddedToCloset = true
	existing.UpdatedAt = r.store.now()
	r.store.wishlist[existing.WishlistID] = existing

	item.AddedToCloset = true
	item.UpdatedAt = existing.UpdatedAt
	return closetItem, nil
}

func (r *WishlistRepository) Stats(ctx context.Context, userID int64) (*domain.WishlistStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stats := &domain.WishlistStats{ByCategory: make(map[string]int)}
	for _, item := range r.store.wishlist {
		if item.UserID != userID {
			continue
		}
		stats.TotalItems++
		if item.AddedToCloset {
			stats.AddedToCloset++
		}
		if name := r.store.categoryName(item.CategoryID); name != "" {
			stats.ByCategory[name]++
		}
	}
	stats.NotAdded = stats.TotalItems - stats.AddedToCloset
	return stats, nil
}

func cloneWishlistItem(item domain.WishlistItem) domain.WishlistItem {
	item.TagIDs = append([]int64{}, item.TagIDs...)
	return item
}
