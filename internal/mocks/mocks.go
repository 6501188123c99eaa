package mocks

import (
	"context"
	"time"

	"storefront-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *domain.Order, items []domain.ItemRequest, cfg *domain.SiteConfig) error {
	args := m.Called(ctx, order, items, cfg)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByPublicCode(ctx context.Context, code string) (*domain.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uint64, expectedUpdatedAt time.Time, update domain.StatusUpdate) (int64, error) {
	args := m.Called(ctx, id, expectedUpdatedAt, update)
	return args.Get(0).(int64), args.Error(1)
}

type MockBlockedCustomerRepository struct {
	mock.Mock
}

func (m *MockBlockedCustomerRepository) IsBlocked(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlockedCustomerRepository) Block(ctx context.Context, phone, reason string) error {
	args := m.Called(ctx, phone, reason)
	return args.Error(0)
}

func (m *MockBlockedCustomerRepository) Unblock(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) Get(ctx context.Context) (*domain.SiteConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SiteConfig), args.Error(1)
}

func (m *MockConfigRepository) Update(ctx context.Context, cfg *domain.SiteConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type MockSMSClient struct {
	mock.Mock
}

func (m *MockSMSClient) Send(ctx context.Context, phone, message string) error {
	args := m.Called(ctx, phone, message)
	return args.Error(0)
}
