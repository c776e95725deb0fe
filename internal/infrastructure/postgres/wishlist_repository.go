package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/wardrobe/backend/internal/domain"
)

const wishlistSelect = `SELECT w.wishlist_id, w.user_id, w.category_id, w.name, w.brand, w.color, w.season,
	w.occasion, w.style, w.material, w.price, w.image_url, w.notes, w.added_to_closet,
	w.created_at, w.updated_at,
	COALESCE(array_agg(t.tag_id ORDER BY t.tag_id) FILTER (WHERE t.tag_id IS NOT NULL), '{}')
FROM wishlist_items w
LEFT JOIN wishlist_tags t ON t.wishlist_id = w.wishlist_id`

// WishlistRepository implements domain.WishlistRepository
type WishlistRepository struct {
	db *sql.DB
}

var _ domain.WishlistRepository = (*WishlistRepository)(nil)

func NewWishlistRepository(db *sql.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// List returns the user's entries, newest first
func (r *WishlistRepository) List(ctx context.Context, userID int64, filter domain.WishlistFilter) ([]domain.WishlistItem, error) {
	query := wishlistSelect + ` WHERE w.user_id = $1`
	args := []interface{}{userID}
	if filter.AddedToCloset != nil {
		args = append(args, *filter.AddedToCloset)
		query += fmt.Sprintf(` AND w.added_to_closet = $%d`, len(args))
	}
	args = append(args, filter.Limit, filter.Skip)
	query += fmt.Sprintf(` GROUP BY w.wishlist_id ORDER BY w.created_at DESC, w.wishlist_id DESC LIMIT $%d OFFSET $%d`,
		len(args)-1, len(args))

	return r.queryWishlist(ctx, query, args...)
}

func (r *WishlistRepository) Get(ctx context.Context, userID, wishlistID int64) (*domain.WishlistItem, error) {
	items, err := r.queryWishlist(ctx,
		wishlistSelect+` WHERE w.wishlist_id = $1 AND w.user_id = $2 GROUP BY w.wishlist_id`,
		wishlistID, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrWishlistItemNotFound
	}
	return &items[0], nil
}

func (r *WishlistRepository) Create(ctx context.Context, item *domain.WishlistItem) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `INSERT INTO wishlist_items
	(user_id, category_id, name, brand, color, season, occasion, style, material, price, image_url, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING wishlist_id, created_at, updated_at`,
			item.UserID, nullInt64(item.CategoryID), item.Name,
			nullString(item.Brand), nullString(item.Color), nullString(item.Season),
			nullString(item.Occasion), nullString(item.Style), nullString(item.Material),
			nullFloat64(item.Price), nullString(item.ImageURL), nullString(item.Notes),
		).Scan(&item.WishlistID, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert wishlist item: %w", err)
		}
		return insertWishlistTags(ctx, tx, item)
	})
}

func (r *WishlistRepository) Update(ctx context.Context, item *domain.WishlistItem, replaceTags bool) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `UPDATE wishlist_items SET
	category_id = $3, name = $4, brand = $5, color = $6, season = $7, occasion = $8,
	style = $9, material = $10, price = $11, image_url = $12, notes = $13, updated_at = NOW()
WHERE wishlist_id = $1 AND user_id = $2
RETURNING updated_at`,
			item.WishlistID, item.UserID, nullInt64(item.CategoryID), item.Name,
			nullString(item.Brand), nullString(item.Color), nullString(item.Season),
			nullString(item.Occasion), nullString(item.Style), nullString(item.Material),
			nullFloat64(item.Price), nullString(item.ImageURL), nullString(item.Notes),
		).Scan(&item.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrWishlistItemNotFound
		}
		if err != nil {
			return fmt.Errorf("update wishlist item: %w", err)
		}

		if !replaceTags {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM wishlist_tags WHERE wishlist_id = $1`, item.WishlistID); err != nil {
			return fmt.Errorf("clear wishlist tags: %w", err)
		}
		return insertWishlistTags(ctx, tx, item)
	})
}

func (r *WishlistRepository) Delete(ctx context.Context, userID, wishlistID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE wishlist_id = $1 AND user_id = $2`, wishlistID, userID)
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	if n == 0 {
		return domain.ErrWishlistItemNotFound
	}
	return nil
}

// MoveToCloset locks the entry, inserts the closet item, copies tags and flags the entry
func (r *WishlistRepository) MoveToCloset(ctx context.Context, item *domain.WishlistItem) (*domain.ClothingItem, error) {
	var closetItem *domain.ClothingItem
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var added bool
		err := tx.QueryRowContext(ctx,
			`SELECT added_to_closet FROM wishlist_items WHERE wishlist_id = $1 AND user_id = $2 FOR UPDATE`,
			item.WishlistID, item.UserID,
		).Scan(&added)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrWishlistItemNotFound
		}
		if err != nil {
			return fmt.Errorf("lock wishlist item: %w", err)
		}
		if added {
			return domain.ErrAlreadyInCloset
		}

		closetItem = item.ToClothingItem()
		if err := insertClothingItem(ctx, tx, closetItem); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO clothing_tags (item_id, tag_id) SELECT $1, tag_id FROM wishlist_tags WHERE wishlist_id = $2`,
			closetItem.ItemID, item.WishlistID,
		); err != nil {
			return fmt.Errorf("copy tags: %w", err)
		}

		if err := tx.QueryRowContext(ctx,
			`UPDATE wishlist_items SET added_to_closet = TRUE, updated_at = NOW() WHERE wishlist_id = $1 RETURNING updated_at`,
			item.WishlistID,
		).Scan(&item.UpdatedAt); err != nil {
			return fmt.Errorf("flag wishlist item: %w", err)
		}
		item.AddedToCloset = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closetItem, nil
}

func (r *WishlistRepository) Stats(ctx context.Context, userID int64) (*domain.WishlistStats, error) {
	stats := &domain.WishlistStats{ByCategory: make(map[string]int)}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE added_to_closet) FROM wishlist_items WHERE user_id = $1`,
		userID,
	).Scan(&stats.TotalItems, &stats.AddedToCloset)
	if err != nil {
		return nil, fmt.Errorf("count wishlist: %w", err)
	}
	stats.NotAdded = stats.TotalItems - stats.AddedToCloset

	rows, err := r.db.QueryContext(ctx, `SELECT c.category_name, COUNT(w.wishlist_id)
FROM wishlist_items w
JOIN categories c ON c.category_id = w.category_id
WHERE w.user_id = $1
GROUP BY c.category_name`, userID)
	if err != nil {
		return nil, fmt.Errorf("count wishlist by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name  string
			count int
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		stats.ByCategory[name] = count
	}
	return stats, rows.Err()
}

func (r *WishlistRepository) queryWishlist(ctx context.Context, query string, args ...interface{}) ([]domain.WishlistItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query wishlist: %w", err)
	}
	defer rows.Close()

	items := make([]domain.WishlistItem, 0)
	for rows.Next() {
		var (
			item                                                          domain.WishlistItem
			categoryID                                                    sql.NullInt64
			brand, color, season, occasion, style, material, image, notes sql.NullString
			price                                                         sql.NullFloat64
			tags                                                          pq.Int64Array
		)
		err := rows.Scan(
			&item.WishlistID, &item.UserID, &categoryID, &item.Name,
			&brand, &color, &season, &occasion, &style, &material,
			&price, &image, &notes, &item.AddedToCloset,
			&item.CreatedAt, &item.UpdatedAt, &tags,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}

		item.CategoryID = int64From(categoryID)
		item.Brand = brand.String
		item.Color = color.String
		item.Season = season.String
		item.Occasion = occasion.String
		item.Style = style.String
		item.Material = material.String
		item.Price = float64From(price)
		item.ImageURL = image.String
		item.Notes = notes.String
		item.TagIDs = []int64(tags)
		if item.TagIDs == nil {
			item.TagIDs = []int64{}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func insertWishlistTags(ctx context.Context, tx *sql.Tx, item *domain.WishlistItem) error {
	if len(item.TagIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO wishlist_tags (wishlist_id, tag_id)
SELECT $1, tag_id FROM tags WHERE tag_id = ANY($2)
ON CONFLICT DO NOTHING`,
		item.WishlistID, pq.Array(item.TagIDs),
	)
	if err != nil {
		return fmt.Errorf("insert wishlist tags: %w", err)
	}
	return nil
}
