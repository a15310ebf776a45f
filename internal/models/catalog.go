package models

import (
	"time"

	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/money"
)

type Platform struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Category identity is composite: the same category id may exist under
// different platforms.
type Category struct {
	ID          string `json:"id"`
	PlatformID  string `json:"platformId"`
	Name        string `json:"name"`
	CachedCount int    `json:"cachedCount"`
	Description string `json:"description,omitempty"`
}

// Product is the catalog row as stored. Pointer fields distinguish a
// genuinely absent value from a zero one; the projector substitutes defaults,
// never the store layer.
type Product struct {
	ID            string
	Slug          string
	Name          string
	Description   string
	Content       string
	Price         money.Money
	OriginalPrice *money.Money
	Discount      *int
	PlatformID    string
	CategoryID    string
	Rating        *float64
	ReviewCount   *int
	Sold          *int
	Image         *string
	Author        string
	AuthorID      *string
	IsFeatured    *bool
	IsNew         *bool
	Tags          []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// CatalogProduct is the public projection served to buyers.
type CatalogProduct struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	Discount      int       `json:"discount"`
	Platform      string    `json:"platform"`
	Category      string    `json:"category"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	Sold          int       `json:"sold"`
	Image         string    `json:"image"`
	Author        string    `json:"author"`
	Tags          []string  `json:"tags"`
	IsFeatured    bool      `json:"isFeatured"`
	IsNew         bool      `json:"isNew"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProductDetail adds the long-form listing body, sanitized before serving.
type ProductDetail struct {
	CatalogProduct

	Content string `json:"content"`
}

type CategoryFacet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PlatformID string `json:"platformId"`
	Count      int    `json:"count"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CatalogFacets describes the space of available filter refinements. A facet
// that failed to compute is rendered as null while its siblings are kept.
type CatalogFacets struct {
	Categories []CategoryFacet `json:"categories"`
	Tags       []string        `json:"tags"`
	PriceRange *PriceRange     `json:"priceRange"`
}
