package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/wardrobe/backend/internal/domain"
)

const itemSelect = `SELECT i.item_id, i.user_id, i.category_id, COALESCE(c.category_name, ''),
	i.name, i.brand, i.color, i.season, i.occasion, i.style, i.material,
	i.purchase_date, i.price, i.image_url, i.notes, i.created_at
FROM clothing_items i
LEFT JOIN categories c ON c.category_id = i.category_id`

// ClosetRepository implements domain.ClosetRepository
type ClosetRepository struct {
	db *sql.DB
}

var _ domain.ClosetRepository = (*ClosetRepository)(nil)

func NewClosetRepository(db *sql.DB) *ClosetRepository {
	return &ClosetRepository{db: db}
}

func (r *ClosetRepository) ListCategories(ctx context.Context, userID int64) ([]domain.CategorySummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT c.category_id, c.category_name, c.category_type, c.created_at, COUNT(i.item_id)
FROM categories c
LEFT JOIN clothing_items i ON i.category_id = c.category_id AND i.user_id = $1
GROUP BY c.category_id, c.category_name, c.category_type, c.created_at
ORDER BY c.category_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	result := make([]domain.CategorySummary, 0)
	for rows.Next() {
		var s domain.CategorySummary
		if err := rows.Scan(&s.CategoryID, &s.CategoryName, &s.CategoryType, &s.CreatedAt, &s.ItemCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *ClosetRepository) GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT category_id, category_name, category_type, created_at FROM categories WHERE category_id = $1`,
		categoryID,
	).Scan(&c.CategoryID, &c.CategoryName, &c.CategoryType, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	return &c, nil
}

func (r *ClosetRepository) ListItems(ctx context.Context, userID int64) ([]domain.ClothingItem, error) {
	return r.queryItems(ctx, itemSelect+` WHERE i.user_id = $1 ORDER BY i.item_id`, userID)
}

// SearchItems uses ILIKE for the free-text query and the color and season filters
func (r *ClosetRepository) SearchItems(ctx context.Context, userID int64, filter domain.ItemFilter) ([]domain.ClothingItem, error) {
	conds := []string{"i.user_id = $1"}
	args := []interface{}{userID}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		conds = append(conds, fmt.Sprintf("(i.name ILIKE %s OR i.brand ILIKE %s OR i.color ILIKE %s)", p, p, p))
	}
	if filter.CategoryID != nil {
		conds = append(conds, "i.category_id = "+arg(*filter.CategoryID))
	}
	if filter.Color != "" {
		conds = append(conds, "i.color ILIKE "+arg("%"+filter.Color+"%"))
	}
	if filter.Season != "" {
		conds = append(conds, "i.season ILIKE "+arg("%"+filter.Season+"%"))
	}

	query := itemSelect + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY i.item_id"
	query += " LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Skip)

	return r.queryItems(ctx, query, args...)
}

func (r *ClosetRepository) GetItem(ctx context.Context, userID, itemID int64) (*domain.ClothingItem, error) {
	items, err := r.queryItems(ctx, itemSelect+` WHERE i.item_id = $1 AND i.user_id = $2`, itemID, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrClothingItemNotFound
	}
	return &items[0], nil
}

func (r *ClosetRepository) CreateItem(ctx context.Context, item *domain.ClothingItem, tagIDs []int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := insertClothingItem(ctx, tx, item); err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		// Unknown tag ids are skipped
		_, err := tx.ExecContext(ctx,
			`INSERT INTO clothing_tags (item_id, tag_id)
SELECT $1, tag_id FROM tags WHERE tag_id = ANY($2)
ON CONFLICT DO NOTHING`,
			item.ItemID, pq.Array(tagIDs),
		)
		if err != nil {
			return fmt.Errorf("insert item tags: %w", err)
		}
		return nil
	})
}

func (r *ClosetRepository) DeleteItem(ctx context.Context, userID, itemID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clothing_items WHERE item_id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n == 0 {
		return domain.ErrClothingItemNotFound
	}
	return nil
}

func (r *ClosetRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]domain.ClothingItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ClothingItem, 0)
	for rows.Next() {
		item, err := scanClothingItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanClothingItem(rows *sql.Rows) (domain.ClothingItem, error) {
	var (
		item                                                          domain.ClothingItem
		categoryID                                                    sql.NullInt64
		brand, color, season, occasion, style, material, image, notes sql.NullString
		purchased                                                     sql.NullTime
		price                                                         sql.NullFloat64
	)
	err := rows.Scan(
		&item.ItemID, &item.UserID, &categoryID, &item.CategoryName,
		&item.Name, &brand, &color, &season, &occasion, &style, &material,
		&purchased, &price, &image, &notes, &item.CreatedAt,
	)
	if err != nil {
		return item, fmt.Errorf("scan item: %w", err)
	}

	item.CategoryID = int64From(categoryID)
	item.Brand = brand.String
	item.Color = color.String
	item.Season = season.String
	item.Occasion = occasion.String
	item.Style = style.String
	item.Material = material.String
	item.PurchaseDate = timeFrom(purchased)
	item.Price = float64From(price)
	item.ImageURL = image.String
	item.Notes = notes.String
	return item, nil
}

func insertClothingItem(ctx context.Context, tx *sql.Tx, item *domain.ClothingItem) error {
	err := tx.QueryRowContext(ctx, `INSERT INTO clothing_items
	(user_id, category_id, name, brand, color, season, occasion, style, material, purchase_date, price, image_url, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING item_id, created_at`,
		item.UserID, nullInt64(item.CategoryID), item.Name,
		nullString(item.Brand), nullString(item.Color), nullString(item.Season),
		nullString(item.Occasion), nullString(item.Style), nullString(item.Material),
		nullTime(item.PurchaseDate), nullFloat64(item.Price),
		nullString(item.ImageURL), nullString(item.Notes),
	).Scan(&item.ItemID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}
