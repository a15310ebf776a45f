package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/errors"
	service "github.com/aaravmahajanofficial/digital-goods-marketplace/internal/services"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/utils/response"
)

type PlatformHandler struct {
	platformService service.PlatformService
}

func NewPlatformHandler(platformService service.PlatformService) *PlatformHandler {
	return &PlatformHandler{platformService: platformService}
}

// for eg: GET /api/v1/platforms
func (h *PlatformHandler) ListPlatforms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platforms, err := h.platformService.ListPlatforms(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, platforms)
	}
}

// for eg: GET /api/v1/platforms/{id}/categories
func (h *PlatformHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platformID := r.PathValue("id")
		if platformID == "" {
			response.Error(w, errors.AddValidationError("id", "must not be empty"))

			return
		}

		categories, err := h.platformService.ListCategories(r.Context(), platformID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}
