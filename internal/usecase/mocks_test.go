package usecase

import (
	"context"
	"time"

	"github.com/wardrobe/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string]interface{}
	getError  error
	keyErrors map[string]error
	setError  error
	getCalled bool
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]interface{}),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if err, ok := m.keyErrors[key]; ok {
		return nil, err
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockClosetRepository is a mock implementation of domain.ClosetRepository
type MockClosetRepository struct {
	categories map[int64]domain.Category
	items      []domain.ClothingItem
	listError  error
	listCalls  int
	lastFilter domain.ItemFilter
	createdTag []int64
	nextID     int64
}

func NewMockClosetRepository() *MockClosetRepository {
	return &MockClosetRepository{
		categories: map[int64]domain.Category{
			1: {CategoryID: 1, CategoryName: "Tops", CategoryType: "top"},
			3: {CategoryID: 3, CategoryName: "Outerwear", CategoryType: "outerwear"},
		},
		nextID: 100,
	}
}

func (m *MockClosetRepository) ListCategories(ctx context.Context, userID int64) ([]domain.CategorySummary, error) {
	result := make([]domain.CategorySummary, 0, len(m.categories))
	for _, c := range m.categories {
		result = append(result, domain.CategorySummary{Category: c})
	}
	return result, nil
}

func (m *MockClosetRepository) GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error) {
	c, ok := m.categories[categoryID]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

func (m *MockClosetRepository) ListItems(ctx context.Context, userID int64) ([]domain.ClothingItem, error) {
	m.listCalls++
	if m.listError != nil {
		return nil, m.listError
	}
	var result []domain.ClothingItem
	for _, item := range m.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockClosetRepository) SearchItems(ctx context.Context, userID int64, filter domain.ItemFilter) ([]domain.ClothingItem, error) {
	m.lastFilter = filter
	return m.ListItems(ctx, userID)
}

func (m *MockClosetRepository) GetItem(ctx context.Context, userID, itemID int64) (*domain.ClothingItem, error) {
	for _, item := range m.items {
		if item.ItemID == itemID && item.UserID == userID {
			return &item, nil
		}
	}
	return nil, domain.ErrClothingItemNotFound
}

func (m *MockClosetRepository) CreateItem(ctx context.Context, item *domain.ClothingItem, tagIDs []int64) error {
	item.ItemID = m.nextID
	m.nextID++
	m.items = append(m.items, *item)
	m.createdTag = tagIDs
	return nil
}

func (m *MockClosetRepository) DeleteItem(ctx context.Context, userID, itemID int64) error {
	for i, item := range m.items {
		if item.ItemID == itemID && item.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrClothingItemNotFound
}

// MockWishlistRepository is a mock implementation of domain.WishlistRepository
type MockWishlistRepository struct {
	items       map[int64]*domain.WishlistItem
	lastFilter  domain.WishlistFilter
	replaceTags bool
	moveError   error
	moved       []int64
	nextID      int64
}

func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{
		items:  make(map[int64]*domain.WishlistItem),
		nextID: 1,
	}
}

func (m *MockWishlistRepository) List(ctx context.Context, userID int64, filter domain.WishlistFilter) ([]domain.WishlistItem, error) {
	m.lastFilter = filter
	var result []domain.WishlistItem
	for _, item := range m.items {
		if item.UserID == userID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (m *MockWishlistRepository) Get(ctx context.Context, userID, wishlistID int64) (*domain.WishlistItem, error) {
	item, ok := m.items[wishlistID]
	if !ok || item.UserID != userID {
		return nil, domain.ErrWishlistItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *MockWishlistRepository) Create(ctx context.Context, item *domain.WishlistItem) error {
	item.WishlistID = m.nextID
	m.nextID++
	copied := *item
	m.items[item.WishlistID] = &copied
	return nil
}

func (m *MockWishlistRepository) Update(ctx context.Context, item *domain.WishlistItem, replaceTags bool) error {
	if _, ok := m.items[item.WishlistID]; !ok {
		return domain.ErrWishlistItemNotFound
	}
	m.replaceTags = replaceTags
	copied := *item
	m.items[item.WishlistID] = &copied
	return nil
}

func (m *MockWishlistRepository) Delete(ctx context.Context, userID, wishlistID int64) error {
	item, ok := m.items[wishlistID]
	if !ok || item.UserID != userID {
		return domain.ErrWishlistItemNotFound
	}
	delete(m.items, wishlistID)
	return nil
}

func (m *MockWishlistRepository) MoveToCloset(ctx context.Context, item *domain.WishlistItem) (*domain.ClothingItem, error) {
	if m.moveError != nil {
		return nil, m.moveError
	}
	m.moved = append(m.moved, item.WishlistID)
	m.items[item.WishlistID].AddedToCloset = true
	closetItem := item.ToClothingItem()
	closetItem.ItemID = 500 + item.WishlistID
	return closetItem, nil
}

func (m *MockWishlistRepository) Stats(ctx context.Context, userID int64) (*domain.WishlistStats, error) {
	stats := &domain.WishlistStats{ByCategory: map[string]int{}}
	for _, item := range m.items {
		if item.UserID != userID {
			continue
		}
		stats.TotalItems++
		if item.AddedToCloset {
			stats.AddedToCloset++
		}
	}
	stats.NotAdded = stats.TotalItems - stats.AddedToCloset
	return stats, nil
}
