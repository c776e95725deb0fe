package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ClosetRepository defines persistence for categories and owned items.
// Every item lookup is scoped to the owning user.
type ClosetRepository interface {
	ListCategories(ctx context.Context, userID int64) ([]CategorySummary, error)
	GetCategory(ctx context.Context, categoryID int64) (*Category, error)
	ListItems(ctx context.Context, userID int64) ([]ClothingItem, error)
	SearchItems(ctx context.Context, userID int64, filter ItemFilter) ([]ClothingItem, error)
	GetItem(ctx context.Context, userID, itemID int64) (*ClothingItem, error)
	CreateItem(ctx context.Context, item *ClothingItem, tagIDs []int64) error
	DeleteItem(ctx context.Context, userID, itemID int64) error
}

// WishlistRepository defines persistence for wishlist entries
type WishlistRepository interface {
	List(ctx context.Context, userID int64, filter WishlistFilter) ([]WishlistItem, error)
	Get(ctx context.Context, userID, wishlistID int64) (*WishlistItem, error)
	Create(ctx context.Context, item *WishlistItem) error
	Update(ctx context.Context, item *WishlistItem, replaceTags bool) error
	Delete(ctx context.Context, userID, wishlistID int64) error
	// MoveToCloset creates the closet item, copies tags and flags the entry, atomically
	MoveToCloset(ctx context.Context, item *WishlistItem) (*ClothingItem, error)
	Stats(ctx context.Context, userID int64) (*WishlistStats, error)
}
