package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/digital-goods-marketplace/internal/errors"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/models"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/digital-goods-marketplace/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListPlatforms(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.PlatformRepository)
		platformService := service.NewPlatformService(mockRepo)

		platforms := []models.Platform{
			{ID: "roblox", Name: "Roblox"},
			{ID: "steam", Name: "Steam"},
		}

		mockRepo.On("ListPlatforms", mock.Anything).Return(platforms, nil).Once()

		// Act
		result, err := platformService.ListPlatforms(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, platforms, result)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty Result", func(t *testing.T) {
		mockRepo := new(mocks.PlatformRepository)
		platformService := service.NewPlatformService(mockRepo)

		mockRepo.On("ListPlatforms", mock.Anything).Return(nil, nil).Once()

		result, err := platformService.ListPlatforms(ctx)

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure", func(t *testing.T) {
		mockRepo := new(mocks.PlatformRepository)
		platformService := service.NewPlatformService(mockRepo)

		mockRepo.On("ListPlatforms", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		result, err := platformService.ListPlatforms(ctx)

		require.Error(t, err)
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeQueryFailure, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.PlatformRepository)
		platformService := service.NewPlatformService(mockRepo)

		categories := []models.Category{
			{ID: "scripts", PlatformID: "roblox", Name: "Scripts", CachedCount: 42},
		}

		mockRepo.On("ListCategories", mock.Anything, "roblox").Return(categories, nil).Once()

		result, err := platformService.ListCategories(ctx, "roblox")

		require.NoError(t, err)
		assert.Equal(t, categories, result)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown Platform Yields Empty List", func(t *testing.T) {
		mockRepo := new(mocks.PlatformRepository)
		platformService := service.NewPlatformService(mockRepo)

		mockRepo.On("ListCategories", mock.Anything, "nope").Return(nil, nil).Once()

		result, err := platformService.ListCategories(ctx, "nope")

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure", func(t *testing.T) {
		mockRepo := new(mocks.PlatformRepository)
		platformService := service.NewPlatformService(mockRepo)

		mockRepo.On("ListCategories", mock.Anything, "roblox").Return(nil, errors.New("timeout")).Once()

		result, err := platformService.ListCategories(ctx, "roblox")

		require.Error(t, err)
		assert.Nil(t, result)
		mockRepo.AssertExpectations(t)
	})
}
