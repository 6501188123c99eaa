package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testAdminToken = "test-admin-token"

type handlerMocks struct {
	repo    *mocks.MockOrderRepository
	blocked *mocks.MockBlockedCustomerRepository
	cfg     *mocks.MockConfigRepository
	limiter *mocks.MockLimiter
	pub     *mocks.MockPublisher
}

func newTestRouter() (*gin.Engine, handlerMocks) {
	gin.SetMode(gin.TestMode)

	m := handlerMocks{
		repo:    new(mocks.MockOrderRepository),
		blocked: new(mocks.MockBlockedCustomerRepository),
		cfg:     new(mocks.MockConfigRepository),
		limiter: new(mocks.MockLimiter),
		pub:     new(mocks.MockPublisher),
	}

	cache := services.NewSiteConfigCache(m.cfg, time.Minute)
	orderSvc := services.NewOrderService(m.repo, m.blocked, cache, m.limiter, m.pub)
	statusSvc := services.NewStatusService(m.repo, m.pub)

	h := NewHandler(orderSvc, statusSvc, m.cfg, cache, m.blocked, nil, testAdminToken)

	r := gin.New()
	h.RegisterRoutes(r)
	return r, m
}

func validCreateBody() map[string]any {
	return map[string]any{
		"customerName":   "Sita Sharma",
		"phone":          "9841000000",
		"province":       "Bagmati",
		"district":       "Kathmandu",
		"address":        "Baneshwor",
		"isInsideValley": true,
		"items":          []map[string]any{{"productId": 1, "quantity": 2}},
	}
}

func doJSON(r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateOrder(t *testing.T) {
	t.Run("missing required fields returns 400", func(t *testing.T) {
		r, _ := newTestRouter()
		body := validCreateBody()
		delete(body, "phone")

		w := doJSON(r, "POST", "/orders", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty items returns 400", func(t *testing.T) {
		r, _ := newTestRouter()
		body := validCreateBody()
		body["items"] = []map[string]any{}

		w := doJSON(r, "POST", "/orders", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("successful creation returns 201", func(t *testing.T) {
		r, m := newTestRouter()
		m.limiter.On("Allow", mock.Anything, mock.Anything).Return(true, nil)
		m.blocked.On("IsBlocked", mock.Anything, "9841000000").Return(false, nil)
		m.cfg.On("Get", mock.Anything).Return(&domain.SiteConfig{
			DeliveryChargeInside:  100,
			DeliveryChargeOutside: 150,
			FreeDeliveryThreshold: 5000,
		}, nil)
		m.repo.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil).
			Run(func(args mock.Arguments) {
				order := args.Get(1).(*domain.Order)
				order.ID = 10
				order.Total = 2100
			})
		m.pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		w := doJSON(r, "POST", "/orders", validCreateBody(), nil)
		assert.Equal(t, http.StatusCreated, w.Code)

		var created domain.Order
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, uint64(10), created.ID)
		assert.Contains(t, created.PublicCode, "ORD-")
	})

	t.Run("blocked customer returns 403", func(t *testing.T) {
		r, m := newTestRouter()
		m.limiter.On("Allow", mock.Anything, mock.Anything).Return(true, nil)
		m.blocked.On("IsBlocked", mock.Anything, "9841000000").Return(true, nil)

		w := doJSON(r, "POST", "/orders", validCreateBody(), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rate limited returns 429", func(t *testing.T) {
		r, m := newTestRouter()
		m.limiter.On("Allow", mock.Anything, mock.Anything).Return(false, nil)

		w := doJSON(r, "POST", "/orders", validCreateBody(), nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("insufficient stock returns 400 naming the product", func(t *testing.T) {
		r, m := newTestRouter()
		m.limiter.On("Allow", mock.Anything, mock.Anything).Return(true, nil)
		m.blocked.On("IsBlocked", mock.Anything, mock.Anything).Return(false, nil)
		m.cfg.On("Get", mock.Anything).Return(&domain.SiteConfig{}, nil)
		m.repo.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.InsufficientStockError{ProductID: 2, ProductName: "Argan Shampoo", Available: 0, Requested: 1})

		w := doJSON(r, "POST", "/orders", validCreateBody(), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Argan Shampoo")
	})
}

func TestHandler_GetOrder(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r, m := newTestRouter()
		m.repo.On("FindByPublicCode", mock.Anything, "ORD-ABCD1234").Return(&domain.Order{
			ID:         1,
			PublicCode: "ORD-ABCD1234",
			Status:     domain.StatusPending,
		}, nil)

		w := doJSON(r, "GET", "/orders/ORD-ABCD1234", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing returns 404", func(t *testing.T) {
		r, m := newTestRouter()
		m.repo.On("FindByPublicCode", mock.Anything, "ORD-NOPE0000").Return(nil, nil)

		w := doJSON(r, "GET", "/orders/ORD-NOPE0000", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_AdminAuth(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, "GET", "/admin/orders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, "GET", "/admin/orders", nil, map[string]string{"X-Admin-Token": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_UpdateOrderStatus(t *testing.T) {
	auth := map[string]string{"X-Admin-Token": testAdminToken}
	readAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("concurrent modification returns 409 with success false", func(t *testing.T) {
		r, m := newTestRouter()
		stale := &domain.Order{ID: 1, PublicCode: "ORD-ABCD1234", Status: domain.StatusPending, UpdatedAt: readAt.Add(time.Minute)}
		m.repo.On("FindByID", mock.Anything, uint64(1)).Return(stale, nil)

		w := doJSON(r, "PATCH", "/admin/orders/1/status", map[string]any{
			"newStatus":     "CONFIRMED",
			"lastUpdatedAt": readAt.Format(time.RFC3339),
		}, auth)

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp UpdateStatusResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("successful transition returns success true", func(t *testing.T) {
		r, m := newTestRouter()
		current := &domain.Order{ID: 1, PublicCode: "ORD-ABCD1234", Status: domain.StatusPending, UpdatedAt: readAt}
		updated := &domain.Order{ID: 1, PublicCode: "ORD-ABCD1234", Status: domain.StatusConfirmed, UpdatedAt: readAt.Add(time.Second)}
		m.repo.On("FindByID", mock.Anything, uint64(1)).Return(current, nil).Once()
		m.repo.On("UpdateStatus", mock.Anything, uint64(1), mock.Anything, mock.Anything).Return(int64(1), nil)
		m.repo.On("FindByID", mock.Anything, uint64(1)).Return(updated, nil).Once()
		m.pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		w := doJSON(r, "PATCH", "/admin/orders/1/status", map[string]any{
			"newStatus":     "CONFIRMED",
			"lastUpdatedAt": readAt.Format(time.RFC3339),
		}, auth)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp UpdateStatusResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("invalid transition returns 400", func(t *testing.T) {
		r, m := newTestRouter()
		current := &domain.Order{ID: 1, PublicCode: "ORD-ABCD1234", Status: domain.StatusPending, UpdatedAt: readAt}
		m.repo.On("FindByID", mock.Anything, uint64(1)).Return(current, nil)

		w := doJSON(r, "PATCH", "/admin/orders/1/status", map[string]any{
			"newStatus":     "DELIVERED",
			"lastUpdatedAt": readAt.Format(time.RFC3339),
		}, auth)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_UpdateConfig_InvalidatesCache(t *testing.T) {
	auth := map[string]string{"X-Admin-Token": testAdminToken}
	r, m := newTestRouter()

	m.cfg.On("Update", mock.Anything, mock.MatchedBy(func(cfg *domain.SiteConfig) bool {
		return cfg.DeliveryChargeInside == 120 && cfg.FreeDeliveryThreshold == 6000
	})).Return(nil)

	w := doJSON(r, "PUT", "/admin/config", map[string]any{
		"deliveryChargeInside":  120,
		"deliveryChargeOutside": 180,
		"freeDeliveryThreshold": 6000,
	}, auth)

	assert.Equal(t, http.StatusOK, w.Code)
	m.cfg.AssertExpectations(t)
}
