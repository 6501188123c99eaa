package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateOrder(ctx context.Context, order *domain.Order, items []domain.ItemRequest, cfg *domain.SiteConfig) error {
	now := time.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subtotal int64
		lines := make([]domain.OrderItem, 0, len(items))

		for _, req := range items {
			var product domain.Product
			// Row lock so concurrent checkouts for the same product
			// serialize on the check-then-decrement.
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, req.ProductID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, req.ProductID)
				}
				return err
			}

			if product.Stock < int64(req.Quantity) {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   req.Quantity,
				}
			}

			res := tx.Model(&domain.Product{}).
				Where("id = ? AND stock >= ?", product.ID, req.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", req.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   req.Quantity,
				}
			}

			unit := cfg.UnitPrice(&product, order.InsideValley, now)
			lines = append(lines, domain.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    req.Quantity,
				UnitPrice:   unit,
			})
			subtotal += unit * int64(req.Quantity)
		}

		order.Items = lines
		order.Subtotal = subtotal
		order.DeliveryCharge = cfg.DeliveryCharge(subtotal, order.InsideValley)
		order.Total = subtotal + order.DeliveryCharge
		order.Status = domain.StatusPending

		return tx.Create(order).Error
	})
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByPublicCode(ctx context.Context, code string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("public_code = ?", code).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("idempotency_key = ?", key).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, expectedUpdatedAt time.Time, update domain.StatusUpdate) (int64, error) {
	fields := map[string]any{
		"status":     update.Status,
		"updated_at": time.Now(),
	}
	if update.RejectReason != "" {
		fields["reject_reason"] = update.RejectReason
	}
	if update.TrackingNumber != "" {
		fields["tracking_number"] = update.TrackingNumber
	}
	if update.CourierName != "" {
		fields["courier_name"] = update.CourierName
	}
	if update.AdminNotes != "" {
		fields["admin_notes"] = update.AdminNotes
	}
	if update.PaymentReceived != nil {
		fields["payment_received"] = *update.PaymentReceived
	}

	// The updated_at guard makes the write itself re-verify the optimistic
	// lock, so there is no gap between check and update.
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND updated_at = ?", id, expectedUpdatedAt).
		Updates(fields)
	return res.RowsAffected, res.Error
}
