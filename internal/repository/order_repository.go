package repository

import (
	"context"
	"time"

	"storefront-service/internal/domain"
)

// OrderRepository owns all order persistence, including the creation
// transaction (stock check + decrement + insert) and the compare-and-swap
// status write.
type OrderRepository interface {
	// CreateOrder resolves and locks each requested product, verifies stock,
	// snapshots unit prices, decrements stock and inserts the order with its
	// items in one transaction. On return the order carries its items,
	// totals and generated ID. Any failure rolls back everything.
	CreateOrder(ctx context.Context, order *domain.Order, items []domain.ItemRequest, cfg *domain.SiteConfig) error

	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByPublicCode(ctx context.Context, code string) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Order, error)

	// UpdateStatus performs a conditional write guarded by the previous
	// updated_at value and returns the number of rows matched. Zero rows
	// means another actor changed the order since it was read.
	UpdateStatus(ctx context.Context, id uint64, expectedUpdatedAt time.Time, update domain.StatusUpdate) (int64, error)
}

type BlockedCustomerRepository interface {
	IsBlocked(ctx context.Context, phone string) (bool, error)
	Block(ctx context.Context, phone, reason string) error
	Unblock(ctx context.Context, phone string) error
}

type ConfigRepository interface {
	Get(ctx context.Context) (*domain.SiteConfig, error)
	Update(ctx context.Context, cfg *domain.SiteConfig) error
}
