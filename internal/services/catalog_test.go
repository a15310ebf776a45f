package service_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/catalog"
	appErrors "github.com/aaravmahajanofficial/digital-goods-marketplace/internal/errors"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/models"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/money"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/digital-goods-marketplace/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeCache is an in-memory stand-in for the Redis facet cache.
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string, value any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(raw, value)
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	f.data[key] = raw

	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.data, key)

	return nil
}

func (f *fakeCache) Close() error { return nil }

func mustMoney(t *testing.T, s string) money.Money {
	t.Helper()

	m, err := money.Parse(s)
	require.NoError(t, err)

	return m
}

func storedProduct(id string) *models.Product {
	return &models.Product{
		ID:         id,
		Slug:       id + "-slug",
		Name:       "Product " + id,
		PlatformID: "roblox",
		CategoryID: "scripts",
		Price:      money.Money{},
		Author:     "dev",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Projection Defaults", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.CatalogRepository)
		catalogService := service.NewCatalogService(mockRepo, nil, time.Minute)

		price := mustMoney(t, "19.99")
		original := mustMoney(t, "39.99")
		discount := 50
		rating := 4.5

		full := &models.Product{
			ID: "p1", Slug: "auto-farm", Name: "Auto Farm", Description: "A farming script",
			Price: price, OriginalPrice: &original, Discount: &discount,
			PlatformID: "roblox", CategoryID: "scripts",
			Rating: &rating, Author: "devone", Tags: []string{"farming"},
		}

		bare := storedProduct("p2")

		spec := &catalog.FilterSpec{Sort: catalog.SortFeatured, Limit: 50}

		mockRepo.On("QueryProducts", mock.Anything, mock.Anything, spec.Sort.OrderBy(), 50, 0).
			Return([]*models.Product{full, bare}, nil).Once()

		// Act
		products, err := catalogService.ListProducts(ctx, spec)

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 2)

		assert.Equal(t, "p1", products[0].ID)
		assert.InDelta(t, 19.99, products[0].Price, 1e-9)
		assert.InDelta(t, 39.99, products[0].OriginalPrice, 1e-9)
		assert.Equal(t, 50, products[0].Discount)
		assert.InDelta(t, 4.5, products[0].Rating, 1e-9)
		assert.Equal(t, "roblox", products[0].Platform)
		assert.Equal(t, []string{"farming"}, products[0].Tags)

		// Absent stored values become explicit defaults, never nulls.
		assert.Zero(t, products[1].Rating)
		assert.Zero(t, products[1].ReviewCount)
		assert.Zero(t, products[1].Sold)
		assert.Zero(t, products[1].Discount)
		assert.False(t, products[1].IsFeatured)
		assert.False(t, products[1].IsNew)
		assert.Equal(t, service.DefaultProductImage, products[1].Image)
		assert.NotNil(t, products[1].Tags)
		assert.Empty(t, products[1].Tags)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Deduplicates By ID", func(t *testing.T) {
		// The store should never fan out duplicates, but the projector must
		// degrade safely if it does.
		mockRepo := new(mocks.CatalogRepository)
		catalogService := service.NewCatalogService(mockRepo, nil, time.Minute)

		spec := &catalog.FilterSpec{Sort: catalog.SortFeatured, Limit: 50}

		mockRepo.On("QueryProducts", mock.Anything, mock.Anything, mock.Anything, 50, 0).
			Return([]*models.Product{storedProduct("p1"), storedProduct("p1"), storedProduct("p2")}, nil).Once()

		products, err := catalogService.ListProducts(ctx, spec)

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "p1", products[0].ID)
		assert.Equal(t, "p2", products[1].ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty Result Is Not An Error", func(t *testing.T) {
		mockRepo := new(mocks.CatalogRepository)
		catalogService := service.NewCatalogService(mockRepo, nil, time.Minute)

		spec := &catalog.FilterSpec{Sort: catalog.SortFeatured, Limit: 50, Offset: 5000}

		mockRepo.On("QueryProducts", mock.Anything, mock.Anything, mock.Anything, 50, 5000).
			Return(nil, nil).Once()

		products, err := catalogService.ListProducts(ctx, spec)

		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Store Error Surfaces As Query Failure", func(t *testing.T) {
		mockRepo := new(mocks.CatalogRepository)
		catalogService := service.NewCatalogService(mockRepo, nil, time.Minute)

		spec := &catalog.FilterSpec{Sort: catalog.SortFeatured, Limit: 50}

		mockRepo.On("QueryProducts", mock.Anything, mock.Anything, mock.Anything, 50, 0).
			Return(nil, errors.New("store exploded")).Once()

		products, err := catalogService.ListProducts(ctx, spec)

		require.Error(t, err)
		assert.Nil(t, products)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeQueryFailure, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestFacets(t *testing.T) {
	ctx := context.Background()

	categories := []models.CategoryFacet{
		{ID: "rpg", Name: "RPG", PlatformID: "steam", Count: 12},
	}
	tags := []string{"farming", "puzzle", "rpg"}

	t.Run("Success - All Facets", func(t *testing.T) {
		mockRepo := new(mocks.CatalogRepository)
		catalogService := service.NewCatalogService(mockRepo, nil, time.Minute)

		minPrice := mustMoney(t, "0")
		maxPrice := mustMoney(t, "49.99")

		mockRepo.On("CategoryCounts", mock.Anything, "steam").Return(categories, nil).Once()
		mockRepo.On("TagVocabulary", mock.Anything, "steam").Return(tags, nil).Once()
		mockRepo.On("PriceBounds", mock.Anything).Return(&minPrice, &maxPrice, nil).Once()

		facets, err := catalogService.Facets(ctx, "steam")

		require.NoError(t, err)
		assert.Equal(t, categories, facets.Categories)
		assert.Equal(t, tags, facets.Tags)
		require.NotNil(t, facets.PriceRange)
		assert.InDelta(t, 0, facets.PriceRange.Min, 1e-9)
		assert.InDelta(t, 49.99, facets.PriceRange.Max, 1e-9)
		mockRepo.AssertExpectations(t)
	})

	t.Run("All Sentinel Widens Scope", func(t *testing.T) {
		mockRepo := new(mocks.CatalogRepository)
		catalogService := service.NewCatalogService(mockRepo, nil, time.Minute)

		minPrice := mustMoney(t, "1")
		maxPrice := mustMoney(t, "2")

		mockRepo.On("CategoryCounts", mock.Anything, "").Return(nil, nil).Once()
		mockRepo.On("TagVocabulary", mock.Anything, "").Return(nil, nil).Once()
		mockRepo.On("PriceBounds", mock.Anything).Return(&minPrice, &maxPrice, nil).Once()

		facets, err := catalogService.Facets(ctx, "all")

		require.NoError(t, err)
		assert.NotNil(t, facets.Categories)
		assert.Empty(t, facets.Categories)
		assert.NotNil(t, facets.Tags)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty Catalog Price Default", func(t *testing.T) {
		mockRepo := new(mocks.CatalogRepository)
		catalogService := service.NewCatalogService(mockRepo, nil, time.Minute)

		mockRepo.On("CategoryCounts", mock.Anything, "").Return(nil, nil).Once()
		mockRepo.On("TagVocabulary", mock.Anything, "").Return(nil, nil).Once()
		mockRepo.On("PriceBounds", mock.Anything).Return(nil, nil, nil).Once()

		facets, err := catalogService.Facets(ctx, "")

		require.NoError(t, err)
		require.NotNil(t, facets.PriceRange)
		assert.InDelta(t, 0, facets.PriceRange.Min, 1e-9)
		assert.InDelta(t, 100, facets.PriceRange.Max, 1e-9)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Partial Failure Keeps Siblings", func(t *testing.T) {
		mockRepo := new(mocks.CatalogRepository)
		catalogService := service.NewCatalogService(mockRepo, nil, time.Minute)

		minPrice := mustMoney(t, "0")
		maxPrice := mustMoney(t, "9.99")

		mockRepo.On("CategoryCounts", mock.Anything, "steam").Return(categories, nil).Once()
		mockRepo.On("TagVocabulary", mock.Anything, "steam").Return(nil, errors.New("tag query timeout")).Once()
		mockRepo.On("PriceBounds", mock.Anything).Return(&minPrice, &maxPrice, nil).Once()

		facets, err := catalogService.Facets(ctx, "steam")

		require.NoError(t, err, "one failed facet must not fail the request")
		assert.Equal(t, categories, facets.Categories)
		assert.Nil(t, facets.Tags, "the failed facet renders absent")
		require.NotNil(t, facets.PriceRange)
		mockRepo.AssertExpectations(t)
	})

	t.Run("All Facets Failing Is A Query Failure", func(t *testing.T) {
		mockRepo := new(mocks.CatalogRepository)
		catalogService := service.NewCatalogService(mockRepo, nil, time.Minute)

		boom := errors.New("store down")

		mockRepo.On("CategoryCounts", mock.Anything, "steam").Return(nil, boom).Once()
		mockRepo.On("TagVocabulary", mock.Anything, "steam").Return(nil, boom).Once()
		mockRepo.On("PriceBounds", mock.Anything).Return(nil, nil, boom).Once()

		facets, err := catalogService.Facets(ctx, "steam")

		require.Error(t, err)
		assert.Nil(t, facets)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeQueryFailure, appErr.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Cache Hit Skips The Store", func(t *testing.T) {
		mockRepo := new(mocks.CatalogRepository)
		facetCache := newFakeCache()
		catalogService := service.NewCatalogService(mockRepo, facetCache, time.Minute)

		minPrice := mustMoney(t, "0")
		maxPrice := mustMoney(t, "49.99")

		mockRepo.On("CategoryCounts", mock.Anything, "steam").Return(categories, nil).Once()
		mockRepo.On("TagVocabulary", mock.Anything, "steam").Return(tags, nil).Once()
		mockRepo.On("PriceBounds", mock.Anything).Return(&minPrice, &maxPrice, nil).Once()

		first, err := catalogService.Facets(ctx, "steam")
		require.NoError(t, err)

		// Second call is served from the cache; the .Once() expectations
		// would fail if the store were hit again.
		second, err := catalogService.Facets(ctx, "steam")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Partial Result Is Not Cached", func(t *testing.T) {
		mockRepo := new(mocks.CatalogRepository)
		facetCache := newFakeCache()
		catalogService := service.NewCatalogService(mockRepo, facetCache, time.Minute)

		minPrice := mustMoney(t, "0")
		maxPrice := mustMoney(t, "9.99")

		mockRepo.On("CategoryCounts", mock.Anything, "steam").Return(categories, nil).Twice()
		mockRepo.On("TagVocabulary", mock.Anything, "steam").Return(nil, errors.New("flaky")).Twice()
		mockRepo.On("PriceBounds", mock.Anything).Return(&minPrice, &maxPrice, nil).Twice()

		_, err := catalogService.Facets(ctx, "steam")
		require.NoError(t, err)

		_, err = catalogService.Facets(ctx, "steam")
		require.NoError(t, err)

		mockRepo.AssertExpectations(t)
	})
}

func TestProductBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Content Sanitized", func(t *testing.T) {
		mockRepo := new(mocks.CatalogRepository)
		catalogService := service.NewCatalogService(mockRepo, nil, time.Minute)

		row := storedProduct("p1")
		row.Content = `<p>Great script</p><script>alert("xss")</script>`

		mockRepo.On("ProductBySlug", mock.Anything, "p1-slug").Return(row, nil).Once()

		detail, err := catalogService.ProductBySlug(ctx, "p1-slug")

		require.NoError(t, err)
		assert.Equal(t, "p1", detail.ID)
		assert.Equal(t, "<p>Great script</p>", detail.Content)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(mocks.CatalogRepository)
		catalogService := service.NewCatalogService(mockRepo, nil, time.Minute)

		mockRepo.On("ProductBySlug", mock.Anything, "missing").Return(nil, sql.ErrNoRows).Once()

		detail, err := catalogService.ProductBySlug(ctx, "missing")

		require.Error(t, err)
		assert.Nil(t, detail)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}
