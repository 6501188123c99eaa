package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"
)

type StatusService struct {
	orders    repository.OrderRepository
	publisher rabbitmq.PublisherInterface
}

func NewStatusService(orders repository.OrderRepository, publisher rabbitmq.PublisherInterface) *StatusService {
	return &StatusService{orders: orders, publisher: publisher}
}

type UpdateStatusInput struct {
	OrderID           uint64
	NewStatus         domain.OrderStatus
	ExpectedUpdatedAt time.Time
	Reason            string
	TrackingNumber    string
	CourierName       string
	AdminNotes        string
	PaymentReceived   *bool
}

// UpdateStatus validates the transition and applies it with a conditional
// write on the previous updated_at. Admin operators read orders into a
// browser tab and come back minutes later; optimistic locking keeps us from
// holding row locks for that long.
func (s *StatusService) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	if !in.NewStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, in.NewStatus)
	}
	if !order.Status.CanTransitionTo(in.NewStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, in.NewStatus)
	}

	// Early reject on stale reads; the conditional write below re-verifies
	// atomically in case someone sneaks in between.
	if !order.UpdatedAt.Equal(in.ExpectedUpdatedAt) {
		return nil, domain.ErrConcurrentModification
	}

	affected, err := s.orders.UpdateStatus(ctx, in.OrderID, in.ExpectedUpdatedAt, domain.StatusUpdate{
		Status:          in.NewStatus,
		RejectReason:    in.Reason,
		TrackingNumber:  in.TrackingNumber,
		CourierName:     in.CourierName,
		AdminNotes:      in.AdminNotes,
		PaymentReceived: in.PaymentReceived,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrConcurrentModification
	}

	updated, err := s.orders.FindByID(ctx, in.OrderID)
	if err != nil || updated == nil {
		// The write committed; hand back what we know rather than failing.
		order.Status = in.NewStatus
		updated = order
	}

	if in.NewStatus == domain.StatusConfirmed || in.NewStatus == domain.StatusShipped {
		go s.publishStatusChanged(context.Background(), updated)
	}

	return updated, nil
}

func (s *StatusService) publishStatusChanged(ctx context.Context, order *domain.Order) {
	evt := domain.OrderStatusChangedEvent{
		OrderID:        order.ID,
		PublicCode:     order.PublicCode,
		Phone:          order.Phone,
		Status:         order.Status,
		TrackingNumber: order.TrackingNumber,
		CourierName:    order.CourierName,
		ChangedAt:      order.UpdatedAt,
	}
	if err := s.publisher.Publish(ctx, domain.EventOrderStatusChanged, evt); err != nil {
		log.Printf("failed to publish %s for order %s: %v", domain.EventOrderStatusChanged, order.PublicCode, err)
	}
}
