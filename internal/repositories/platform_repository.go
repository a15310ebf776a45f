package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/models"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/utils"
)

type PlatformRepository interface {
	ListPlatforms(ctx context.Context) ([]models.Platform, error)
	ListCategories(ctx context.Context, platformID string) ([]models.Category, error)
}

type platformRepository struct {
	DB      *sql.DB
	timeout time.Duration
}

func NewPlatformRepo(db *sql.DB, timeout time.Duration) PlatformRepository {
	return &platformRepository{DB: db, timeout: timeout}
}

func (r *platformRepository) ListPlatforms(ctx context.Context) ([]models.Platform, error) {
	dbCtx, cancel := utils.WithQueryTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT id, name, description FROM platforms ORDER BY name ASC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying platforms: %w", err)
	}

	defer rows.Close()

	var platforms []models.Platform

	for rows.Next() {
		var platform models.Platform

		var description sql.NullString

		if err := rows.Scan(&platform.ID, &platform.Name, &description); err != nil {
			return nil, fmt.Errorf("scanning platform row: %w", err)
		}

		platform.Description = description.String
		platforms = append(platforms, platform)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating platform rows: %w", err)
	}

	return platforms, nil
}

// ListCategories returns a platform's categories with the denormalized
// cached_count passed through as stored. The count may be stale; filtered
// views recompute counts live through the facet queries instead.
func (r *platformRepository) ListCategories(ctx context.Context, platformID string) ([]models.Category, error) {
	dbCtx, cancel := utils.WithQueryTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT id, platform_id, name, cached_count, description
			  FROM categories
			  WHERE platform_id = $1
			  ORDER BY name ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, platformID)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}

	defer rows.Close()

	var categories []models.Category

	for rows.Next() {
		var category models.Category

		var description sql.NullString

		if err := rows.Scan(&category.ID, &category.PlatformID, &category.Name, &category.CachedCount, &description); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}

		category.Description = description.String
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}
