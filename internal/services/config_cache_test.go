package services

import (
	"context"
	"testing"
	"time"

	"storefront-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSiteConfigCache_Get_CachesWithinTTL(t *testing.T) {
	repo := new(mocks.MockConfigRepository)
	repo.On("Get", mock.Anything).Return(newTestConfig(), nil).Once()

	cache := NewSiteConfigCache(repo, time.Minute)

	first, err := cache.Get(context.Background())
	assert.NoError(t, err)
	second, err := cache.Get(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
}

func TestSiteConfigCache_Invalidate_ForcesRefetch(t *testing.T) {
	repo := new(mocks.MockConfigRepository)
	repo.On("Get", mock.Anything).Return(newTestConfig(), nil).Times(2)

	cache := NewSiteConfigCache(repo, time.Minute)

	_, err := cache.Get(context.Background())
	assert.NoError(t, err)

	cache.Invalidate()

	_, err = cache.Get(context.Background())
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSiteConfigCache_TTLExpiry(t *testing.T) {
	repo := new(mocks.MockConfigRepository)
	repo.On("Get", mock.Anything).Return(newTestConfig(), nil).Times(2)

	cache := NewSiteConfigCache(repo, 10*time.Millisecond)

	_, err := cache.Get(context.Background())
	assert.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = cache.Get(context.Background())
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSiteConfigCache_ErrorNotCached(t *testing.T) {
	repo := new(mocks.MockConfigRepository)
	repo.On("Get", mock.Anything).Return(nil, assert.AnError).Once()
	repo.On("Get", mock.Anything).Return(newTestConfig(), nil).Once()

	cache := NewSiteConfigCache(repo, time.Minute)

	_, err := cache.Get(context.Background())
	assert.Error(t, err)

	cfg, err := cache.Get(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	repo.AssertExpectations(t)
}
