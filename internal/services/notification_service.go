package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra"
)

// NotificationService turns order events into customer SMS messages. Every
// failure here is logged and dropped: the order state is already committed
// and a flaky gateway must never surface to the customer flow.
type NotificationService struct {
	sms infra.SMSClientInterface
}

func NewNotificationService(sms infra.SMSClientInterface) *NotificationService {
	return &NotificationService{sms: sms}
}

// HandleEvent is the AMQP consumer callback.
func (s *NotificationService) HandleEvent(routingKey string, body []byte) {
	ctx := context.Background()

	switch routingKey {
	case domain.EventOrderCreated:
		var evt domain.OrderCreatedEvent
		if err := json.Unmarshal(body, &evt); err != nil {
			log.Printf("notification: bad %s payload: %v", routingKey, err)
			return
		}
		msg := fmt.Sprintf("Thank you for your order %s. Total NPR %d. We will confirm it shortly.", evt.PublicCode, evt.Total)
		s.send(ctx, evt.Phone, msg)

	case domain.EventOrderStatusChanged:
		var evt domain.OrderStatusChangedEvent
		if err := json.Unmarshal(body, &evt); err != nil {
			log.Printf("notification: bad %s payload: %v", routingKey, err)
			return
		}
		switch evt.Status {
		case domain.StatusConfirmed:
			s.send(ctx, evt.Phone, fmt.Sprintf("Your order %s has been confirmed and is being prepared.", evt.PublicCode))
		case domain.StatusShipped:
			msg := fmt.Sprintf("Your order %s has been shipped", evt.PublicCode)
			if evt.CourierName != "" && evt.TrackingNumber != "" {
				msg += fmt.Sprintf(" via %s, tracking %s", evt.CourierName, evt.TrackingNumber)
			}
			s.send(ctx, evt.Phone, msg+".")
		default:
			// Other statuses do not notify the customer.
		}

	default:
		log.Printf("notification: ignoring unknown routing key %q", routingKey)
	}
}

func (s *NotificationService) send(ctx context.Context, phone, message string) {
	if err := s.sms.Send(ctx, phone, message); err != nil {
		log.Printf("notification: sms to %s failed: %v", phone, err)
	}
}
