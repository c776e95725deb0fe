// Package memstore keeps closet and wishlist data in process memory.
// It backs the "memory" database driver and handler tests.
package memstore

import (
	"sync"
	"time"

	"github.com/wardrobe/backend/internal/domain"
)

// DefaultCategories seeds a fresh store
var DefaultCategories = []domain.Category{
	{CategoryID: 1, CategoryName: "Tops", CategoryType: "top"},
	{CategoryID: 2, CategoryName: "Bottoms", CategoryType: "bottom"},
	{CategoryID: 3, CategoryName: "Outerwear", CategoryType: "outerwear"},
	{CategoryID: 4, CategoryName: "Shoes", CategoryType: "shoes"},
	{CategoryID: 5, CategoryName: "Accessories", CategoryType: "accessory"},
}

// Store holds all rows behind a single lock
type Store struct {
	mu sync.RWMutex

	categories map[int64]domain.Category
	items      map[int64]domain.ClothingItem
	itemTags   map[int64][]int64
	wishlist   map[int64]domain.WishlistItem

	nextItemID     int64
	nextWishlistID int64
	now            func() time.Time
}

// New creates a store seeded with the given categories
func New(categories []domain.Category) *Store {
	s := &Store{
		categories:     make(map[int64]domain.Category, len(categories)),
		items:          make(map[int64]domain.ClothingItem),
		itemTags:       make(map[int64][]int64),
		wishlist:       make(map[int64]domain.WishlistItem),
		nextItemID:     1,
		nextWishlistID: 1,
		now:            time.Now,
	}
	created := s.now()
	for _, c := range categories {
		if c.CreatedAt.IsZero() {
			c.CreatedAt = created
		}
		s.categories[c.CategoryID] = c
	}
	return s
}

// Closet returns the closet repository view of the store
func (s *Store) Closet() *ClosetRepository {
	return &ClosetRepository{store: s}
}

// Wishlist returns the wishlist repository view of the store
func (s *Store) Wishlist() *WishlistRepository {
	return &WishlistRepository{store: s}
}

// insertItemLocked stores a closet item; callers hold the write lock
func (s *Store) insertItemLocked(item *domain.ClothingItem, tagIDs []int64) {
	item.ItemID = s.nextItemID
	s.nextItemID++
	item.CreatedAt = s.now()
	if item.CategoryID != nil {
		if c, ok := s.categories[*item.CategoryID]; ok {
			item.CategoryName = c.CategoryName
		}
	}
	s.items[item.ItemID] = *item
	if len(tagIDs) > 0 {
		s.itemTags[item.ItemID] = append([]int64(nil), tagIDs...)
	}
}

func (s *Store) categoryName(id *int64) string {
	if id == nil {
		return ""
	}
	return s.categories[*id].CategoryName
}

func page[T any](rows []T, skip, limit int) []T {
	if skip >= len(rows) {
		return []T{}
	}
	rows = rows[skip:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
