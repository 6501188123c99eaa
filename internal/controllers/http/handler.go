package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const orderCacheTTL = 10 * time.Second

type Handler struct {
	orders      *services.OrderService
	status      *services.StatusService
	configRepo  repository.ConfigRepository
	configCache *services.SiteConfigCache
	blocked     repository.BlockedCustomerRepository
	rdb         *redis.Client
	adminToken  string
}

func NewHandler(
	orders *services.OrderService,
	status *services.StatusService,
	configRepo repository.ConfigRepository,
	configCache *services.SiteConfigCache,
	blocked repository.BlockedCustomerRepository,
	rdb *redis.Client,
	adminToken string,
) *Handler {
	return &Handler{
		orders:      orders,
		status:      status,
		configRepo:  configRepo,
		configCache: configCache,
		blocked:     blocked,
		rdb:         rdb,
		adminToken:  adminToken,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/:code", h.GetOrder)

	admin := r.Group("/admin", AdminAuth(h.adminToken))
	admin.GET("/orders", h.ListOrders)
	admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	admin.GET("/config", h.GetConfig)
	admin.PUT("/config", h.UpdateConfig)
	admin.POST("/blocked-customers", h.BlockCustomer)
	admin.DELETE("/blocked-customers/:phone", h.UnblockCustomer)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]domain.ItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.ItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), services.CreateOrderInput{
		CustomerName:   req.CustomerName,
		Phone:          req.Phone,
		Province:       req.Province,
		District:       req.District,
		Address:        req.Address,
		Landmark:       req.Landmark,
		Notes:          req.Notes,
		InsideValley:   *req.IsInsideValley,
		IdempotencyKey: req.IdempotencyKey,
		ClientIP:       c.ClientIP(),
		Items:          items,
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrder(c *gin.Context) {
	code := c.Param("code")
	ctx := c.Request.Context()
	cacheKey := "orders:code:" + code

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var order domain.Order
			if json.Unmarshal([]byte(b), &order) == nil {
				c.JSON(http.StatusOK, order)
				return
			}
		}
	}

	order, err := h.orders.GetOrderByCode(ctx, code)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(order); err == nil {
			h.rdb.Set(ctx, cacheKey, data, orderCacheTTL)
		}
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	orders, err := h.orders.ListRecentOrders(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, UpdateStatusResponse{Success: false, Error: "invalid order id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, UpdateStatusResponse{Success: false, Error: err.Error()})
		return
	}

	order, err := h.status.UpdateStatus(c.Request.Context(), services.UpdateStatusInput{
		OrderID:           id,
		NewStatus:         domain.OrderStatus(req.NewStatus),
		ExpectedUpdatedAt: req.LastUpdatedAt,
		Reason:            req.Reason,
		TrackingNumber:    req.TrackingNumber,
		CourierName:       req.CourierName,
		AdminNotes:        req.AdminNotes,
		PaymentReceived:   req.PaymentReceived,
	})
	if err != nil {
		c.JSON(statusForError(err), UpdateStatusResponse{Success: false, Error: err.Error()})
		return
	}

	if h.rdb != nil {
		h.rdb.Del(context.Background(), "orders:code:"+order.PublicCode)
	}

	c.JSON(http.StatusOK, UpdateStatusResponse{Success: true})
}

func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.configRepo.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := &domain.SiteConfig{
		DeliveryChargeInside:  *req.DeliveryChargeInside,
		DeliveryChargeOutside: *req.DeliveryChargeOutside,
		FreeDeliveryThreshold: *req.FreeDeliveryThreshold,
		GlobalDiscountPercent: req.GlobalDiscountPercent,
		GlobalDiscountStart:   req.GlobalDiscountStart,
		GlobalDiscountEnd:     req.GlobalDiscountEnd,
		AllowStacking:         req.AllowStacking,
	}
	if err := h.configRepo.Update(c.Request.Context(), cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.configCache.Invalidate()

	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) BlockCustomer(c *gin.Context) {
	var req BlockCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.blocked.Block(c.Request.Context(), req.Phone, req.Reason); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"phone": req.Phone})
}

func (h *Handler) UnblockCustomer(c *gin.Context) {
	phone := c.Param("phone")
	if err := h.blocked.Unblock(c.Request.Context(), phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func statusForError(err error) int {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrCustomerBlocked):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.As(err, &stockErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
