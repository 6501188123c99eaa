package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/ratelimit"
	"storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService struct {
	orders    repository.OrderRepository
	blocked   repository.BlockedCustomerRepository
	config    *SiteConfigCache
	limiter   ratelimit.Limiter
	publisher rabbitmq.PublisherInterface
}

func NewOrderService(
	orders repository.OrderRepository,
	blocked repository.BlockedCustomerRepository,
	config *SiteConfigCache,
	limiter ratelimit.Limiter,
	publisher rabbitmq.PublisherInterface,
) *OrderService {
	return &OrderService{
		orders:    orders,
		blocked:   blocked,
		config:    config,
		limiter:   limiter,
		publisher: publisher,
	}
}

type CreateOrderInput struct {
	CustomerName   string
	Phone          string
	Province       string
	District       string
	Address        string
	Landmark       string
	Notes          string
	InsideValley   bool
	IdempotencyKey string
	ClientIP       string
	Items          []domain.ItemRequest
}

// CreateOrder runs the full checkout pipeline: rate limit, blacklist,
// idempotency replay, then the atomic create (stock decrement included), then
// the fire-and-forget created event.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if s.limiter != nil && in.ClientIP != "" {
		allowed, err := s.limiter.Allow(ctx, in.ClientIP)
		if err != nil {
			// A down limiter must not take checkout down with it.
			log.Printf("rate limiter unavailable: %v", err)
		} else if !allowed {
			return nil, domain.ErrTooManyRequests
		}
	}

	isBlocked, err := s.blocked.IsBlocked(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if isBlocked {
		return nil, domain.ErrCustomerBlocked
	}

	if in.IdempotencyKey != "" {
		existing, err := s.orders.FindByIdempotencyKey(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		PublicCode:   newPublicCode(),
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Province:     in.Province,
		District:     in.District,
		Address:      in.Address,
		Landmark:     in.Landmark,
		Notes:        in.Notes,
		InsideValley: in.InsideValley,
		ClientIP:     in.ClientIP,
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		order.IdempotencyKey = &key
	}

	if err := s.orders.CreateOrder(ctx, order, in.Items, cfg); err != nil {
		// Two identical retries can race past the lookup above; the loser
		// hits the unique key and gets the winner's order back.
		if in.IdempotencyKey != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := s.orders.FindByIdempotencyKey(ctx, in.IdempotencyKey)
			if ferr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}

	go s.publishOrderCreated(context.Background(), order)

	return order, nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:    order.ID,
		PublicCode: order.PublicCode,
		Phone:      order.Phone,
		Total:      order.Total,
		CreatedAt:  order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, domain.EventOrderCreated, evt); err != nil {
		log.Printf("failed to publish %s for order %s: %v", domain.EventOrderCreated, order.PublicCode, err)
	}
}

func (s *OrderService) GetOrderByCode(ctx context.Context, code string) (*domain.Order, error) {
	o, err := s.orders.FindByPublicCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.orders.ListRecent(ctx, limit)
}

func newPublicCode() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
