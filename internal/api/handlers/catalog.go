package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/api/middleware"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/catalog"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/errors"
	service "github.com/aaravmahajanofficial/digital-goods-marketplace/internal/services"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/utils/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	specParser     *catalog.SpecParser
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, specParser: catalog.NewSpecParser()}
}

// for eg: GET /api/v1/catalog/products?search=farm&platformId=steam&tags=rpg&tags=puzzle&sortBy=price-low
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		spec, err := h.specParser.Parse(r.URL.Query())
		if err != nil {
			logger.Warn("Rejected catalog query", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		products, err := h.catalogService.ListProducts(r.Context(), spec)
		if err != nil {
			response.Error(w, err)

			return
		}

		// An empty page is a normal response, distinct from a query failure.
		response.Success(w, http.StatusOK, products)
	}
}

// for eg: GET /api/v1/catalog/facets?platformId=steam
func (h *CatalogHandler) Facets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facets, err := h.catalogService.Facets(r.Context(), r.URL.Query().Get("platformId"))
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, facets)
	}
}

// for eg: GET /api/v1/products/{slug}
func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		if slug == "" {
			response.Error(w, errors.AddValidationError("slug", "must not be empty"))

			return
		}

		product, err := h.catalogService.ProductBySlug(r.Context(), slug)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}
