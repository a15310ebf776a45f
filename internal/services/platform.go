package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/api/middleware"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/errors"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/models"
	repository "github.com/aaravmahajanofficial/digital-goods-marketplace/internal/repositories"
)

type PlatformService interface {
	ListPlatforms(ctx context.Context) ([]models.Platform, error)
	ListCategories(ctx context.Context, platformID string) ([]models.Category, error)
}

type platformService struct {
	repo repository.PlatformRepository
}

func NewPlatformService(repo repository.PlatformRepository) PlatformService {
	return &platformService{repo: repo}
}

func (s *platformService) ListPlatforms(ctx context.Context) ([]models.Platform, error) {
	platforms, err := s.repo.ListPlatforms(ctx)
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Platform query failed", slog.String("error", err.Error()))

		return nil, errors.QueryFailureError("Failed to fetch platforms").WithError(err)
	}

	if platforms == nil {
		platforms = []models.Platform{}
	}

	return platforms, nil
}

func (s *platformService) ListCategories(ctx context.Context, platformID string) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx, platformID)
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Category query failed",
			slog.String("platform_id", platformID),
			slog.String("error", err.Error()))

		return nil, errors.QueryFailureError("Failed to fetch categories").WithError(err)
	}

	if categories == nil {
		categories = []models.Category{}
	}

	return categories, nil
}
