package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/catalog"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/metrics"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/models"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/money"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/utils"
	"github.com/lib/pq"
)

// CatalogRepository is the read-only scan/filter surface of the catalog
// store. It is injected into the engine so tests can substitute a mock store.
type CatalogRepository interface {
	QueryProducts(ctx context.Context, pred catalog.Predicate, orderBy string, limit, offset int) ([]*models.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	CategoryCounts(ctx context.Context, platformID string) ([]models.CategoryFacet, error)
	TagVocabulary(ctx context.Context, platformID string) ([]string, error)
	PriceBounds(ctx context.Context) (minPrice, maxPrice *money.Money, err error)
}

type catalogRepository struct {
	DB      *sql.DB
	timeout time.Duration
}

func NewCatalogRepo(db *sql.DB, timeout time.Duration) CatalogRepository {
	return &catalogRepository{DB: db, timeout: timeout}
}

const productColumns = `id, slug, name, description, price, original_price, discount, platform_id, category_id, rating, review_count, sold, image, author, is_featured, is_new, tags, created_at, updated_at`

func (r *catalogRepository) QueryProducts(ctx context.Context, pred catalog.Predicate, orderBy string, limit, offset int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithQueryTimeout(ctx, r.timeout)
	defer cancel()

	defer observe("products")()

	cond, args := pred.SQL()

	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, cond, orderBy, len(args)+1, len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	dbCtx, cancel := utils.WithQueryTimeout(ctx, r.timeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s, content FROM products WHERE deleted_at IS NULL AND slug = $1`, productColumns)

	row := r.DB.QueryRowContext(dbCtx, query, slug)

	product := &models.Product{}

	var (
		priceStr      string
		originalPrice sql.NullString
		discount      sql.NullInt64
		rating        sql.NullFloat64
		reviewCount   sql.NullInt64
		sold          sql.NullInt64
		image         sql.NullString
		isFeatured    sql.NullBool
		isNew         sql.NullBool
		tags          pq.StringArray
		content       sql.NullString
	)

	err := row.Scan(&product.ID, &product.Slug, &product.Name, &product.Description,
		&priceStr, &originalPrice, &discount, &product.PlatformID, &product.CategoryID,
		&rating, &reviewCount, &sold, &image, &product.Author,
		&isFeatured, &isNew, &tags, &product.CreatedAt, &product.UpdatedAt, &content)
	if err != nil {
		return nil, fmt.Errorf("querying product by slug: %w", err)
	}

	if err := fillProduct(product, priceStr, originalPrice, discount, rating, reviewCount, sold, image, isFeatured, isNew, tags); err != nil {
		return nil, err
	}

	product.Content = content.String

	return product, nil
}

func (r *catalogRepository) CategoryCounts(ctx context.Context, platformID string) ([]models.CategoryFacet, error) {
	dbCtx, cancel := utils.WithQueryTimeout(ctx, r.timeout)
	defer cancel()

	defer observe("category_facet")()

	// INNER JOIN drops products pointing at a category row that does not
	// exist; such rows stay listable but never count toward a facet.
	cond, args := catalog.Scope("p", platformID).SQL()

	query := fmt.Sprintf(`
		SELECT p.platform_id, p.category_id, c.name, COUNT(*)
		FROM products p
		JOIN categories c ON c.platform_id = p.platform_id AND c.id = p.category_id
		WHERE %s
		GROUP BY p.platform_id, p.category_id, c.name
		ORDER BY c.name ASC, p.category_id ASC`, cond)

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying category counts: %w", err)
	}

	defer rows.Close()

	var facets []models.CategoryFacet

	for rows.Next() {
		var facet models.CategoryFacet

		if err := rows.Scan(&facet.PlatformID, &facet.ID, &facet.Name, &facet.Count); err != nil {
			return nil, fmt.Errorf("scanning category count row: %w", err)
		}

		facets = append(facets, facet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category count rows: %w", err)
	}

	return facets, nil
}

func (r *catalogRepository) TagVocabulary(ctx context.Context, platformID string) ([]string, error) {
	dbCtx, cancel := utils.WithQueryTimeout(ctx, r.timeout)
	defer cancel()

	defer observe("tag_facet")()

	cond, args := catalog.Scope("", platformID).SQL()

	query := fmt.Sprintf(`
		SELECT DISTINCT tag
		FROM products, unnest(tags) AS tag
		WHERE %s
		ORDER BY tag ASC`, cond)

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tag vocabulary: %w", err)
	}

	defer rows.Close()

	var tags []string

	for rows.Next() {
		var tag string

		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}

		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tag rows: %w", err)
	}

	return tags, nil
}

// PriceBounds spans the whole non-deleted catalog; the platform scope does
// not apply to the global price slider. Nil bounds mean an empty catalog.
func (r *catalogRepository) PriceBounds(ctx context.Context) (*money.Money, *money.Money, error) {
	dbCtx, cancel := utils.WithQueryTimeout(ctx, r.timeout)
	defer cancel()

	defer observe("price_bounds")()

	query := `SELECT MIN(price), MAX(price) FROM products WHERE deleted_at IS NULL`

	var minStr, maxStr sql.NullString

	if err := r.DB.QueryRowContext(dbCtx, query).Scan(&minStr, &maxStr); err != nil {
		return nil, nil, fmt.Errorf("querying price bounds: %w", err)
	}

	if !minStr.Valid || !maxStr.Valid {
		return nil, nil, nil
	}

	minPrice, err := money.Parse(minStr.String)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing min price: %w", err)
	}

	maxPrice, err := money.Parse(maxStr.String)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing max price: %w", err)
	}

	return &minPrice, &maxPrice, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	var (
		priceStr      string
		originalPrice sql.NullString
		discount      sql.NullInt64
		rating        sql.NullFloat64
		reviewCount   sql.NullInt64
		sold          sql.NullInt64
		image         sql.NullString
		isFeatured    sql.NullBool
		isNew         sql.NullBool
		tags          pq.StringArray
	)

	err := row.Scan(&product.ID, &product.Slug, &product.Name, &product.Description,
		&priceStr, &originalPrice, &discount, &product.PlatformID, &product.CategoryID,
		&rating, &reviewCount, &sold, &image, &product.Author,
		&isFeatured, &isNew, &tags, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := fillProduct(product, priceStr, originalPrice, discount, rating, reviewCount, sold, image, isFeatured, isNew, tags); err != nil {
		return nil, err
	}

	return product, nil
}

func fillProduct(product *models.Product, priceStr string, originalPrice sql.NullString,
	discount sql.NullInt64, rating sql.NullFloat64, reviewCount, sold sql.NullInt64,
	image sql.NullString, isFeatured, isNew sql.NullBool, tags pq.StringArray,
) error {
	price, err := money.Parse(priceStr)
	if err != nil {
		return fmt.Errorf("parsing price for product %s: %w", product.ID, err)
	}

	product.Price = price

	if originalPrice.Valid {
		op, err := money.Parse(originalPrice.String)
		if err != nil {
			return fmt.Errorf("parsing original price for product %s: %w", product.ID, err)
		}

		product.OriginalPrice = &op
	}

	if discount.Valid {
		d := int(discount.Int64)
		product.Discount = &d
	}

	if rating.Valid {
		product.Rating = &rating.Float64
	}

	if reviewCount.Valid {
		n := int(reviewCount.Int64)
		product.ReviewCount = &n
	}

	if sold.Valid {
		n := int(sold.Int64)
		product.Sold = &n
	}

	if image.Valid {
		product.Image = &image.String
	}

	if isFeatured.Valid {
		product.IsFeatured = &isFeatured.Bool
	}

	if isNew.Valid {
		product.IsNew = &isNew.Bool
	}

	product.Tags = tags

	return nil
}

func observe(query string) func() {
	start := time.Now()

	return func() {
		metrics.ObserveCatalogQuery(query, time.Since(start))
	}
}
