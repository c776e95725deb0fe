package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/wardrobe/backend/internal/domain"
	"github.com/wardrobe/backend/internal/observability"
)

// Defaults for similar-item lookups
const (
	defaultSimilarThreshold = 0.01
	defaultSimilarLimit     = 10
	defaultSimilarMaxLimit  = 50
	defaultCacheTTL         = 10 * time.Minute
)

// WishlistServiceConfig holds configuration for the wishlist service
type WishlistServiceConfig struct {
	CacheTTL         time.Duration
	DefaultThreshold *float64 // nil selects the built-in default
	DefaultLimit     int
	MaxLimit         int
}

// SimilarParams are the optional query parameters of a similar-item lookup
type SimilarParams struct {
	Threshold *float64
	Limit     *int
}

// WishlistService manages wishlist entries and finds owned items similar to them
type WishlistService struct {
	wishlist  domain.WishlistRepository
	closet    domain.ClosetRepository
	cache     domain.CacheRepository
	matcher   *SimilarityMatcher
	revisions *userRevisions
	logger    *zap.Logger

	cacheTTL         time.Duration
	defaultThreshold float64
	defaultLimit     int
	maxLimit         int
}

// NewWishlistService creates a new wishlist service with dependencies
func NewWishlistService(
	wishlist domain.WishlistRepository,
	closet domain.ClosetRepository,
	cache domain.CacheRepository,
	matcher *SimilarityMatcher,
	logger *zap.Logger,
	config WishlistServiceConfig,
) *WishlistService {
	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	maxLimit := config.MaxLimit
	if maxLimit <= 0 {
		maxLimit = defaultSimilarMaxLimit
	}

	limit := config.DefaultLimit
	if limit <= 0 || limit > maxLimit {
		limit = min(defaultSimilarLimit, maxLimit)
	}

	threshold := defaultSimilarThreshold
	if config.DefaultThreshold != nil && *config.DefaultThreshold >= 0 && *config.DefaultThreshold <= 1 {
		threshold = *config.DefaultThreshold
	}

	return &WishlistService{
		wishlist:         wishlist,
		closet:           closet,
		cache:            cache,
		matcher:          matcher,
		revisions:        &userRevisions{cache: cache, ttl: cacheTTL},
		logger:           logger.Named("wishlist"),
		cacheTTL:         cacheTTL,
		defaultThreshold: threshold,
		defaultLimit:     limit,
		maxLimit:         maxLimit,
	}
}

// List returns the user's wishlist, newest first
func (s *WishlistService) List(ctx context.Context, userID int64, filter domain.WishlistFilter) ([]domain.WishlistItem, error) {
	filter.Skip, filter.Limit = normalizePage(filter.Skip, filter.Limit)
	items, err := s.wishlist.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return items, nil
}

// Get returns one wishlist entry owned by the user
func (s *WishlistService) Get(ctx context.Context, userID, wishlistID int64) (*domain.WishlistItem, error) {
	return s.wishlist.Get(ctx, userID, wishlistID)
}

// Create adds a wishlist entry. A category, when given, must exist.
func (s *WishlistService) Create(ctx context.Context, userID int64, req *domain.WishlistItemCreate) (*domain.WishlistItem, error) {
	if req == nil || req.Name == "" {
		return nil, domain.ErrInvalidRequest
	}

	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	item := &domain.WishlistItem{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Brand:      req.Brand,
		Color:      req.Color,
		Season:     req.Season,
		Occasion:   req.Occasion,
		Style:      req.Style,
		Material:   req.Material,
		Price:      req.Price,
		ImageURL:   req.ImageURL,
		Notes:      req.Notes,
		TagIDs:     req.TagIDs,
	}
	if err := s.wishlist.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create wishlist item: %w", err)
	}

	s.invalidate(ctx, userID)
	return item, nil
}

// Update applies a partial update to a wishlist entry
func (s *WishlistService) Update(
	ctx context.Context,
	userID, wishlistID int64,
	req *domain.WishlistItemUpdate,
) (*domain.WishlistItem, error) {
	if req == nil {
		return nil, domain.ErrInvalidRequest
	}

	item, err := s.wishlist.Get(ctx, userID, wishlistID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	applyWishlistUpdate(item, req)
	if item.Name == "" {
		return nil, domain.ErrInvalidRequest
	}

	if err := s.wishlist.Update(ctx, item, req.TagIDs != nil); err != nil {
		return nil, fmt.Errorf("update wishlist item: %w", err)
	}

	s.invalidate(ctx, userID)
	return item, nil
}

// Delete removes a wishlist entry
func (s *WishlistService) Delete(ctx context.Context, userID, wishlistID int64) error {
	if err := s.wishlist.Delete(ctx, userID, wishlistID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// AddToCloset turns a wishlist entry into an owned item and marks the entry as added
func (s *WishlistService) AddToCloset(ctx context.Context, userID, wishlistID int64) (*domain.ClothingItem, error) {
	item, err := s.wishlist.Get(ctx, userID, wishlistID)
	if err != nil {
		return nil, err
	}

	if item.AddedToCloset {
		return nil, domain.ErrAlreadyInCloset
	}
	if item.CategoryID == nil {
		return nil, domain.ErrCategoryRequired
	}

	closetItem, err := s.wishlist.MoveToCloset(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("add to closet: %w", err)
	}

	s.logger.Info("wishlist item added to closet",
		zap.Int64("user_id", userID),
		zap.Int64("wishlist_id", wishlistID),
		zap.Int64("item_id", closetItem.ItemID),
	)

	s.invalidate(ctx, userID)
	return closetItem, nil
}

// FindSimilar ranks the user's closet items against a wishlist entry.
// Flow: resolve params -> load entry -> check cache -> load closet -> match -> cache -> return
func (s *WishlistService) FindSimilar(
	ctx context.Context,
	userID, wishlistID int64,
	params SimilarParams,
) ([]domain.SimilarItem, error) {
	threshold, limit, err := s.resolveSimilarParams(params)
	if err != nil {
		return nil, err
	}

	wish, err := s.wishlist.Get(ctx, userID, wishlistID)
	if err != nil {
		return nil, err
	}

	cacheKey, cacheable := s.similarCacheKey(ctx, userID, wishlistID, threshold, limit)
	if cacheable {
		if cached, ok := s.getSimilarFromCache(ctx, cacheKey); ok {
			observability.SimilarityCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		}
	}
	observability.SimilarityCacheLookups.WithLabelValues("miss").Inc()

	closetItems, err := s.closet.ListItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load closet: %w", err)
	}

	start := time.Now()
	candidates := make([]domain.Candidate, len(closetItems))
	byID := make(map[int64]*domain.ClothingItem, len(closetItems))
	for i := range closetItems {
		candidates[i] = domain.Candidate{ID: closetItems[i].ItemID, Item: closetItems[i].Comparable()}
		byID[closetItems[i].ItemID] = &closetItems[i]
	}

	matches := s.matcher.FindSimilar(wish.Comparable(), candidates, threshold, limit)

	observability.SimilarityComparisons.Add(float64(len(candidates)))
	observability.SimilarityDuration.Observe(time.Since(start).Seconds())
	observability.SimilarityResults.Observe(float64(len(matches)))

	results := make([]domain.SimilarItem, 0, len(matches))
	for _, match := range matches {
		results = append(results, toSimilarItem(byID[match.ID], match))
	}

	s.logger.Debug("similar items ranked",
		zap.Int64("user_id", userID),
		zap.Int64("wishlist_id", wishlistID),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(results)),
		zap.Float64("threshold", threshold),
	)

	if !cacheable {
		return results, nil
	}
	if err := s.cache.Set(ctx, cacheKey, results, s.cacheTTL); err != nil {
		// Serving uncached results is fine
		s.logger.Warn("failed to cache similar items", zap.String("key", cacheKey), zap.Error(err))
	}

	return results, nil
}

// Stats summarizes the user's wishlist
func (s *WishlistService) Stats(ctx context.Context, userID int64) (*domain.WishlistStats, error) {
	stats, err := s.wishlist.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("wishlist stats: %w", err)
	}
	return stats, nil
}

func (s *WishlistService) resolveSimilarParams(params SimilarParams) (float64, int, error) {
	threshold := s.defaultThreshold
	if params.Threshold != nil {
		threshold = *params.Threshold
		if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
			return 0, 0, fmt.Errorf("%w: threshold must be between 0 and 1", domain.ErrInvalidRequest)
		}
	}

	limit := s.defaultLimit
	if params.Limit != nil {
		limit = *params.Limit
		if limit < 1 || limit > s.maxLimit {
			return 0, 0, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidRequest, s.maxLimit)
		}
	}

	return threshold, limit, nil
}

// similarCacheKey format: "similar:{user}:{revision}:{wishlist}:{threshold}:{limit}".
// It reports false when the revision is unreadable and the cache must be skipped.
func (s *WishlistService) similarCacheKey(ctx context.Context, userID, wishlistID int64, threshold float64, limit int) (string, bool) {
	rev, err := s.revisions.current(ctx, userID)
	if err != nil {
		s.logger.Warn("cache revision unavailable, bypassing cache", zap.Int64("user_id", userID), zap.Error(err))
		return "", false
	}
	return fmt.Sprintf("similar:%d:%s:%d:%g:%d", userID, rev, wishlistID, threshold, limit), true
}

func (s *WishlistService) getSimilarFromCache(ctx context.Context, key string) ([]domain.SimilarItem, bool) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("similar item cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var items []domain.SimilarItem
	if err := decodeCached(value, &items); err != nil {
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return items, true
}

func (s *WishlistService) ensureCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.closet.GetCategory(ctx, *categoryID); err != nil {
		return err
	}
	return nil
}

func (s *WishlistService) invalidate(ctx context.Context, userID int64) {
	if err := s.revisions.bump(ctx, userID); err != nil {
		s.logger.Warn("failed to bump cache revision", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func applyWishlistUpdate(item *domain.WishlistItem, req *domain.WishlistItemUpdate) {
	if req.CategoryID != nil {
		item.CategoryID = req.CategoryID
	}
	setString(&item.Name, req.Name)
	setString(&item.Brand, req.Brand)
	setString(&item.Color, req.Color)
	setString(&item.Season, req.Season)
	setString(&item.Occasion, req.Occasion)
	setString(&item.Style, req.Style)
	setString(&item.Material, req.Material)
	setString(&item.ImageURL, req.ImageURL)
	setString(&item.Notes, req.Notes)
	if req.Price != nil {
		item.Price = req.Price
	}
	if req.TagIDs != nil {
		item.TagIDs = *req.TagIDs
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// toSimilarItem shapes a match for the response; scores are rounded to 3 decimals
func toSimilarItem(item *domain.ClothingItem, match domain.MatchResult) domain.SimilarItem {
	return domain.SimilarItem{
		ItemID:          item.ItemID,
		Name:            item.Name,
		Brand:           item.Brand,
		Color:           item.Color,
		Season:          item.Season,
		Occasion:        item.Occasion,
		Style:           item.Style,
		Category:        item.CategoryName,
		ImageURL:        item.ImageURL,
		Price:           item.Price,
		SimilarityScore: roundTo(match.Score, 3),
		MatchFields:     match.MatchFields,
		MatchDetails: domain.MatchDetails{
			NameSimilarity:   match.FieldScores[domain.FieldName],
			BrandSimilarity:  match.FieldScores[domain.FieldBrand],
			ColorSimilarity:  match.FieldScores[domain.FieldColor],
			CategoryMatch:    match.FieldScores[domain.FieldCategory] > 0,
			SeasonSimilarity: match.FieldScores[domain.FieldSeason],
		},
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
