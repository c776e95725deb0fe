package domain

import "errors"

var (
	// ErrWishlistItemNotFound is returned when a wishlist entry does not exist for the user
	ErrWishlistItemNotFound = errors.New("wishlist item not found")

	// ErrClothingItemNotFound is returned when a closet item does not exist for the user
	ErrClothingItemNotFound = errors.New("item not found")

	// ErrCategoryNotFound is returned when a referenced category does not exist
	ErrCategoryNotFound = errors.New("category not found")

	// ErrAlreadyInCloset is returned when a wishlist entry was already moved to the closet
	ErrAlreadyInCloset = errors.New("item already added to closet")

	// ErrCategoryRequired is returned when a closet item would be created without a category
	ErrCategoryRequired = errors.New("category is required to add to closet")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnauthorized is returned when the request carries no usable user identity
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
