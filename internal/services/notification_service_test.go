package services

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotificationService_HandleEvent(t *testing.T) {
	created, _ := json.Marshal(domain.OrderCreatedEvent{
		OrderID:    1,
		PublicCode: "ORD-ABCD1234",
		Phone:      "9841000000",
		Total:      2100,
		CreatedAt:  time.Now(),
	})
	shipped, _ := json.Marshal(domain.OrderStatusChangedEvent{
		OrderID:        1,
		PublicCode:     "ORD-ABCD1234",
		Phone:          "9841000000",
		Status:         domain.StatusShipped,
		TrackingNumber: "TRK-100",
		CourierName:    "Aramex",
	})
	cancelled, _ := json.Marshal(domain.OrderStatusChangedEvent{
		OrderID:    1,
		PublicCode: "ORD-ABCD1234",
		Phone:      "9841000000",
		Status:     domain.StatusCancelled,
	})

	t.Run("order created sends sms", func(t *testing.T) {
		sms := new(mocks.MockSMSClient)
		sms.On("Send", mock.Anything, "9841000000", mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, "ORD-ABCD1234") && strings.Contains(msg, "2100")
		})).Return(nil)

		NewNotificationService(sms).HandleEvent(domain.EventOrderCreated, created)
		sms.AssertExpectations(t)
	})

	t.Run("shipped includes courier and tracking", func(t *testing.T) {
		sms := new(mocks.MockSMSClient)
		sms.On("Send", mock.Anything, "9841000000", mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, "Aramex") && strings.Contains(msg, "TRK-100")
		})).Return(nil)

		NewNotificationService(sms).HandleEvent(domain.EventOrderStatusChanged, shipped)
		sms.AssertExpectations(t)
	})

	t.Run("cancellation sends nothing", func(t *testing.T) {
		sms := new(mocks.MockSMSClient)
		NewNotificationService(sms).HandleEvent(domain.EventOrderStatusChanged, cancelled)
		sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed payload is dropped", func(t *testing.T) {
		sms := new(mocks.MockSMSClient)
		NewNotificationService(sms).HandleEvent(domain.EventOrderCreated, []byte("{not json"))
		sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("gateway failure is swallowed", func(t *testing.T) {
		sms := new(mocks.MockSMSClient)
		sms.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		// Must not panic or propagate.
		NewNotificationService(sms).HandleEvent(domain.EventOrderCreated, created)
		sms.AssertExpectations(t)
	})
}
