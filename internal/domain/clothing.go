package domain

import "time"

// Category groups closet and wishlist items (e.g. "Tops", "Shoes")
type Category struct {
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CategoryType string    `json:"category_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// CategorySummary is a category plus the number of the user's items filed under it
type CategorySummary struct {
	Category
	ItemCount int `json:"item_count"`
}

// CategoryWithClothes is a category and a page of the user's items in it
type CategoryWithClothes struct {
	Category
	Clothes []ClothingItem `json:"clothes"`
}

// ClothingItem is an item the user owns
type ClothingItem struct {
	ItemID       int64      `json:"item_id"`
	UserID       int64      `json:"user_id"`
	CategoryID   *int64     `json:"category_id"`
	CategoryName string     `json:"category,omitempty"`
	Name         string     `json:"name"`
	Brand        string     `json:"brand,omitempty"`
	Color        string     `json:"color,omitempty"`
	Season       string     `json:"season,omitempty"`
	Occasion     string     `json:"occasion,omitempty"`
	Style        string     `json:"style,omitempty"`
	Material     string     `json:"material,omitempty"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
	Price        *float64   `json:"price,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Comparable projects the item onto the fields the similarity matcher looks at
func (c *ClothingItem) Comparable() ComparableItem {
	return ComparableItem{
		Name:       c.Name,
		Brand:      c.Brand,
		Color:      c.Color,
		Season:     c.Season,
		Occasion:   c.Occasion,
		Style:      c.Style,
		CategoryID: c.CategoryID,
	}
}

// WishlistItem is something the user wants but may not own yet
type WishlistItem struct {
	WishlistID    int64     `json:"wishlist_id"`
	UserID        int64     `json:"user_id"`
	CategoryID    *int64    `json:"category_id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand,omitempty"`
	Color         string    `json:"color,omitempty"`
	Season        string    `json:"season,omitempty"`
	Occasion      string    `json:"occasion,omitempty"`
	Style         string    `json:"style,omitempty"`
	Material      string    `json:"material,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	TagIDs        []int64   `json:"tag_ids"`
	AddedToCloset bool      `json:"added_to_closet"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Comparable projects the wishlist entry onto the fields the similarity matcher looks at
func (w *WishlistItem) Comparable() ComparableItem {
	return ComparableItem{
		Name:       w.Name,
		Brand:      w.Brand,
		Color:      w.Color,
		Season:     w.Season,
		Occasion:   w.Occasion,
		Style:      w.Style,
		CategoryID: w.CategoryID,
	}
}

// ToClothingItem builds the closet item created when the entry is bought
func (w *WishlistItem) ToClothingItem() *ClothingItem {
	return &ClothingItem{
		UserID:     w.UserID,
		CategoryID: w.CategoryID,
		Name:       w.Name,
		Brand:      w.Brand,
		Color:      w.Color,
		Season:     w.Season,
		Occasion:   w.Occasion,
		Style:      w.Style,
		Material:   w.Material,
		Price:      w.Price,
		ImageURL:   w.ImageURL,
		Notes:      w.Notes,
	}
}

// ClothingItemCreate is the request body for adding an item to the closet
type ClothingItemCreate struct {
	CategoryID   int64      `json:"category_id" binding:"required"`
	Name         string     `json:"name" binding:"required"`
	Brand        string     `json:"brand"`
	Color        string     `json:"color"`
	Season       string     `json:"season"`
	Occasion     string     `json:"occasion"`
	Style        string     `json:"style"`
	Material     string     `json:"material"`
	PurchaseDate *time.Time `json:"purchase_date"`
	Price        *float64   `json:"price"`
	ImageURL     string     `json:"image_url"`
	Notes        string     `json:"notes"`
	TagIDs       []int64    `json:"tag_ids"`
}

// WishlistItemCreate is the request body for a new wishlist entry
type WishlistItemCreate struct {
	CategoryID *int64   `json:"category_id"`
	Name       string   `json:"name" binding:"required"`
	Brand      string   `json:"brand"`
	Color      string   `json:"color"`
	Season     string   `json:"season"`
	Occasion   string   `json:"occasion"`
	Style      string   `json:"style"`
	Material   string   `json:"material"`
	Price      *float64 `json:"price"`
	ImageURL   string   `json:"image_url"`
	Notes      string   `json:"notes"`
	TagIDs     []int64  `json:"tag_ids"`
}

// WishlistItemUpdate is a partial update; nil fields are left untouched
type WishlistItemUpdate struct {
	CategoryID *int64   `json:"category_id"`
	Name       *string  `json:"name"`
	Brand      *string  `json:"brand"`
	Color      *string  `json:"color"`
	Season     *string  `json:"season"`
	Occasion   *string  `json:"occasion"`
	Style      *string  `json:"style"`
	Material   *string  `json:"material"`
	Price      *float64 `json:"price"`
	ImageURL   *string  `json:"image_url"`
	Notes      *string  `json:"notes"`
	TagIDs     *[]int64 `json:"tag_ids"`
}

// ItemFilter narrows a closet search
type ItemFilter struct {
	Query      string
	CategoryID *int64
	Color      string
	Season     string
	Skip       int
	Limit      int
}

// WishlistFilter narrows a wishlist listing
type WishlistFilter struct {
	AddedToCloset *bool
	Skip          int
	Limit         int
}

// WishlistStats summarizes a user's wishlist
type WishlistStats struct {
	TotalItems    int            `json:"total_items"`
	AddedToCloset int            `json:"added_to_closet"`
	NotAdded      int            `json:"not_added"`
	ByCategory    map[string]int `json:"by_category"`
}
