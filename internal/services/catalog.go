package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/api/middleware"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/cache"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/catalog"
	appErrors "github.com/aaravmahajanofficial/digital-goods-marketplace/internal/errors"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/models"
	repository "github.com/aaravmahajanofficial/digital-goods-marketplace/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultProductImage is substituted when a product has no stored image.
const DefaultProductImage = "/assets/placeholder-product.png"

// Empty-catalog fallback for the price slider.
const (
	emptyCatalogPriceMin = 0
	emptyCatalogPriceMax = 100
)

type CatalogService interface {
	ListProducts(ctx context.Context, spec *catalog.FilterSpec) ([]models.CatalogProduct, error)
	Facets(ctx context.Context, platformID string) (*models.CatalogFacets, error)
	ProductBySlug(ctx context.Context, slug string) (*models.ProductDetail, error)
}

type catalogService struct {
	repo     repository.CatalogRepository
	cache    cache.Cache
	facetTTL time.Duration
	sanitize *bluemonday.Policy
}

func NewCatalogService(repo repository.CatalogRepository, cacheStore cache.Cache, facetTTL time.Duration) CatalogService {
	return &catalogService{
		repo:     repo,
		cache:    cacheStore,
		facetTTL: facetTTL,
		sanitize: bluemonday.UGCPolicy(),
	}
}

// ListProducts runs the compiled filter against the store and projects the
// rows into the public shape. The result is deduplicated by id as a safety
// net; the query itself should never fan out duplicates.
func (s *catalogService) ListProducts(ctx context.Context, spec *catalog.FilterSpec) ([]models.CatalogProduct, error) {
	pred := catalog.Compile(spec)

	rows, err := s.repo.QueryProducts(ctx, pred, spec.Sort.OrderBy(), spec.Limit, spec.Offset)
	if err != nil {
		cond, _ := pred.SQL()
		middleware.LoggerFromContext(ctx).Error("Catalog query failed",
			slog.String("predicate", cond),
			slog.String("error", err.Error()))

		return nil, appErrors.QueryFailureError("Failed to query catalog").WithError(err)
	}

	seen := make(map[string]struct{}, len(rows))
	products := make([]models.CatalogProduct, 0, len(rows))

	for _, row := range rows {
		if _, dup := seen[row.ID]; dup {
			continue
		}

		seen[row.ID] = struct{}{}
		products = append(products, projectProduct(row))
	}

	return products, nil
}

// Facets computes the category, tag and price-bound facets concurrently.
// Each sub-computation fails on its own: a failed facet is rendered absent
// while its siblings still return. Results are cached briefly per platform
// scope; the engine queries themselves stay stateless.
func (s *catalogService) Facets(ctx context.Context, platformID string) (*models.CatalogFacets, error) {
	platformID = catalog.NormalizeScope(platformID)

	logger := middleware.LoggerFromContext(ctx)
	cacheKey := facetCacheKey(platformID)

	if s.cache != nil {
		var cached models.CatalogFacets

		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			logger.Warn("Facet cache lookup failed", slog.String("error", err.Error()))
		} else if hit {
			return &cached, nil
		}
	}

	var (
		wg sync.WaitGroup

		categories []models.CategoryFacet
		catErr     error

		tags   []string
		tagErr error

		priceRange *models.PriceRange
		priceErr   error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()

		categories, catErr = s.repo.CategoryCounts(ctx, platformID)
	}()

	go func() {
		defer wg.Done()

		tags, tagErr = s.repo.TagVocabulary(ctx, platformID)
	}()

	go func() {
		defer wg.Done()

		minPrice, maxPrice, err := s.repo.PriceBounds(ctx)
		if err != nil {
			priceErr = err

			return
		}

		bounds := models.PriceRange{Min: emptyCatalogPriceMin, Max: emptyCatalogPriceMax}
		if minPrice != nil && maxPrice != nil {
			bounds = models.PriceRange{Min: minPrice.Float64(), Max: maxPrice.Float64()}
		}

		priceRange = &bounds
	}()

	wg.Wait()

	if catErr != nil && tagErr != nil && priceErr != nil {
		logger.Error("All facet queries failed",
			slog.String("category_error", catErr.Error()),
			slog.String("tag_error", tagErr.Error()),
			slog.String("price_error", priceErr.Error()))

		return nil, appErrors.QueryFailureError("Failed to compute catalog facets").WithError(catErr)
	}

	facets := &models.CatalogFacets{}

	if catErr != nil {
		logger.Error("Category facet failed", slog.String("error", catErr.Error()))
	} else {
		if categories == nil {
			categories = []models.CategoryFacet{}
		}

		facets.Categories = categories
	}

	if tagErr != nil {
		logger.Error("Tag facet failed", slog.String("error", tagErr.Error()))
	} else {
		if tags == nil {
			tags = []string{}
		}

		facets.Tags = tags
	}

	if priceErr != nil {
		logger.Error("Price bound facet failed", slog.String("error", priceErr.Error()))
	} else {
		facets.PriceRange = priceRange
	}

	// Only a fully computed facet set is worth pinning in the cache.
	if s.cache != nil && catErr == nil && tagErr == nil && priceErr == nil {
		if err := s.cache.Set(ctx, cacheKey, facets, s.facetTTL); err != nil {
			logger.Warn("Facet cache write failed", slog.String("error", err.Error()))
		}
	}

	return facets, nil
}

func (s *catalogService) ProductBySlug(ctx context.Context, slug string) (*models.ProductDetail, error) {
	row, err := s.repo.ProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		middleware.LoggerFromContext(ctx).Error("Product lookup failed",
			slog.String("slug", slug),
			slog.String("error", err.Error()))

		return nil, appErrors.QueryFailureError("Failed to query catalog").WithError(err)
	}

	detail := &models.ProductDetail{
		CatalogProduct: projectProduct(row),
		// Listing bodies are seller-supplied rich text; strip anything
		// outside the UGC policy before serving.
		Content: s.sanitize.Sanitize(row.Content),
	}

	return detail, nil
}

// projectProduct maps a stored row into the public shape. Absent values get
// explicit defaults; invalid values never reach this point because the store
// layer rejects them at scan time.
func projectProduct(row *models.Product) models.CatalogProduct {
	product := models.CatalogProduct{
		ID:          row.ID,
		Slug:        row.Slug,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price.Float64(),
		Platform:    row.PlatformID,
		Category:    row.CategoryID,
		Author:      row.Author,
		Image:       DefaultProductImage,
		Tags:        []string{},
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if row.OriginalPrice != nil {
		product.OriginalPrice = row.OriginalPrice.Float64()
	}

	if row.Discount != nil {
		product.Discount = *row.Discount
	}

	if row.Rating != nil {
		product.Rating = *row.Rating
	}

	if row.ReviewCount != nil {
		product.ReviewCount = *row.ReviewCount
	}

	if row.Sold != nil {
		product.Sold = *row.Sold
	}

	if row.Image != nil && *row.Image != "" {
		product.Image = *row.Image
	}

	if row.IsFeatured != nil {
		product.IsFeatured = *row.IsFeatured
	}

	if row.IsNew != nil {
		product.IsNew = *row.IsNew
	}

	if len(row.Tags) > 0 {
		product.Tags = row.Tags
	}

	return product
}

func facetCacheKey(platformID string) string {
	if platformID == "" {
		platformID = catalog.ScopeAll
	}

	return cache.Key(cache.FacetKeyPrefix, platformID)
}
