package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardrobe/backend/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func TestClosetRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("counts only the user's items per category", func(t *testing.T) {
		store := New(DefaultCategories)
		closet := store.Closet()

		require.NoError(t, closet.CreateItem(ctx, &domain.ClothingItem{UserID: 1, CategoryID: int64Ptr(1), Name: "Tee"}, nil))
		require.NoError(t, closet.CreateItem(ctx, &domain.ClothingItem{UserID: 1, CategoryID: int64Ptr(1), Name: "Shirt"}, nil))
		require.NoError(t, closet.CreateItem(ctx, &domain.ClothingItem{UserID: 2, CategoryID: int64Ptr(1), Name: "Polo"}, nil))

		categories, err := closet.ListCategories(ctx, 1)
		require.NoError(t, err)
		require.Len(t, categories, len(DefaultCategories))
		assert.Equal(t, "Tops", categories[0].CategoryName)
		assert.Equal(t, 2, categories[0].ItemCount)
		assert.Equal(t, 0, categories[1].ItemCount)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := New(DefaultCategories).Closet().GetCategory(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})

	t.Run("items are scoped to their owner", func(t *testing.T) {
		closet := New(DefaultCategories).Closet()
		item := &domain.ClothingItem{UserID: 1, CategoryID: int64Ptr(4), Name: "Sneakers"}
		require.NoError(t, closet.CreateItem(ctx, item, []int64{3}))
		assert.Equal(t, "Shoes", item.CategoryName)

		_, err := closet.GetItem(ctx, 2, item.ItemID)
		assert.ErrorIs(t, err, domain.ErrClothingItemNotFound)
		assert.ErrorIs(t, closet.DeleteItem(ctx, 2, item.ItemID), domain.ErrClothingItemNotFound)

		got, err := closet.GetItem(ctx, 1, item.ItemID)
		require.NoError(t, err)
		assert.Equal(t, "Sneakers", got.Name)
		assert.Equal(t, []int64{3}, closet.TagIDs(item.ItemID))

		require.NoError(t, closet.DeleteItem(ctx, 1, item.ItemID))
		_, err = closet.GetItem(ctx, 1, item.ItemID)
		assert.ErrorIs(t, err, domain.ErrClothingItemNotFound)
	})

	t.Run("search filters", func(t *testing.T) {
		closet := New(DefaultCategories).Closet()
		for _, item := range []*domain.ClothingItem{
			{UserID: 1, CategoryID: int64Ptr(1), Name: "Black Hoodie", Brand: "Nike", Color: "Black", Season: "Winter"},
			{UserID: 1, CategoryID: int64Ptr(1), Name: "White Tee", Brand: "Uniqlo", Color: "White", Season: "Summer"},
			{UserID: 1, CategoryID: int64Ptr(4), Name: "Runner", Brand: "Nike", Color: "Navy Blue", Season: "All Seasons"},
		} {
			require.NoError(t, closet.CreateItem(ctx, item, nil))
		}

		tests := []struct {
			name   string
			filter domain.ItemFilter
			want   []string
		}{
			{"query matches brand", domain.ItemFilter{Query: "nike"}, []string{"Black Hoodie", "Runner"}},
			{"query matches color", domain.ItemFilter{Query: "white"}, []string{"White Tee"}},
			{"category", domain.ItemFilter{CategoryID: int64Ptr(4)}, []string{"Runner"}},
			{"color substring", domain.ItemFilter{Color: "blue"}, []string{"Runner"}},
			{"season", domain.ItemFilter{Season: "summer"}, []string{"White Tee"}},
			{"paging", domain.ItemFilter{Skip: 1, Limit: 1}, []string{"White Tee"}},
			{"skip past end", domain.ItemFilter{Skip: 5}, []string{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				items, err := closet.SearchItems(ctx, 1, tt.filter)
				require.NoError(t, err)
				names := make([]string, 0, len(items))
				for _, item := range items {
					names = append(names, item.Name)
				}
				assert.Equal(t, tt.want, names)
			})
		}
	})
}

func TestWishlistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("lists newest first with added filter", func(t *testing.T) {
		store := New(DefaultCategories)
		wishlist := store.Wishlist()
		for _, name := range []string{"first", "second", "third"} {
			require.NoError(t, wishlist.Create(ctx, &domain.WishlistItem{UserID: 1, CategoryID: int64Ptr(1), Name: name}))
		}
		_, err := wishlist.MoveToCloset(ctx, &domain.WishlistItem{WishlistID: 2, UserID: 1})
		require.NoError(t, err)

		items, err := wishlist.List(ctx, 1, domain.WishlistFilter{})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "third", items[0].Name)
		assert.Equal(t, "first", items[2].Name)

		added := false
		items, err = wishlist.List(ctx, 1, domain.WishlistFilter{AddedToCloset: &added})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("update keeps tags unless replaced", func(t *testing.T) {
		wishlist := New(DefaultCategories).Wishlist()
		item := &domain.WishlistItem{UserID: 1, Name: "Scarf", TagIDs: []int64{1, 2}}
		require.NoError(t, wishlist.Create(ctx, item))

		update := &domain.WishlistItem{WishlistID: item.WishlistID, UserID: 1, Name: "Wool Scarf"}
		require.NoError(t, wishlist.Update(ctx, update, false))
		got, err := wishlist.Get(ctx, 1, item.WishlistID)
		require.NoError(t, err)
		assert.Equal(t, "Wool Scarf", got.Name)
		assert.Equal(t, []int64{1, 2}, got.TagIDs)

		update.TagIDs = []int64{5}
		require.NoError(t, wishlist.Update(ctx, update, true))
		got, err = wishlist.Get(ctx, 1, item.WishlistID)
		require.NoError(t, err)
		assert.Equal(t, []int64{5}, got.TagIDs)
	})

	t.Run("move to closet copies tags once", func(t *testing.T) {
		store := New(DefaultCategories)
		wishlist := store.Wishlist()
		item := &domain.WishlistItem{UserID: 1, CategoryID: int64Ptr(3), Name: "Parka", Color: "Green", TagIDs: []int64{7}}
		require.NoError(t, wishlist.Create(ctx, item))

		closetItem, err := wishlist.MoveToCloset(ctx, item)
		require.NoError(t, err)
		assert.Equal(t, "Parka", closetItem.Name)
		assert.Equal(t, "Outerwear", closetItem.CategoryName)
		assert.Equal(t, []int64{7}, store.Closet().TagIDs(closetItem.ItemID))
		assert.True(t, item.AddedToCloset)

		_, err = wishlist.MoveToCloset(ctx, item)
		assert.ErrorIs(t, err, domain.ErrAlreadyInCloset)
	})

	t.Run("stats", func(t *testing.T) {
		wishlist := New(DefaultCategories).Wishlist()
		require.NoError(t, wishlist.Create(ctx, &domain.WishlistItem{UserID: 1, CategoryID: int64Ptr(1), Name: "a"}))
		require.NoError(t, wishlist.Create(ctx, &domain.WishlistItem{UserID: 1, CategoryID: int64Ptr(1), Name: "b"}))
		require.NoError(t, wishlist.Create(ctx, &domain.WishlistItem{UserID: 1, Name: "c"}))
		require.NoError(t, wishlist.Create(ctx, &domain.WishlistItem{UserID: 2, CategoryID: int64Ptr(2), Name: "d"}))
		_, err := wishlist.MoveToCloset(ctx, &domain.WishlistItem{WishlistID: 1, UserID: 1})
		require.NoError(t, err)

		stats, err := wishlist.Stats(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalItems)
		assert.Equal(t, 1, stats.AddedToCloset)
		assert.Equal(t, 2, stats.NotAdded)
		assert.Equal(t, map[string]int{"Tops": 2}, stats.ByCategory)
	})

	t.Run("other users cannot see entries", func(t *testing.T) {
		wishlist := New(DefaultCategories).Wishlist()
		item := &domain.WishlistItem{UserID: 1, Name: "Belt"}
		require.NoError(t, wishlist.Create(ctx, item))

		_, err := wishlist.Get(ctx, 2, item.WishlistID)
		assert.ErrorIs(t, err, domain.ErrWishlistItemNotFound)
		assert.ErrorIs(t, wishlist.Delete(ctx, 2, item.WishlistID), domain.ErrWishlistItemNotFound)
	})
}
