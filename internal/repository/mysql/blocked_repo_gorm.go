package mysql

import (
	"context"
	"errors"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type blockedRepo struct {
	db *gorm.DB
}

func NewBlockedCustomerRepository(db *gorm.DB) repository.BlockedCustomerRepository {
	return &blockedRepo{db: db}
}

func (r *blockedRepo) IsBlocked(ctx context.Context, phone string) (bool, error) {
	var entry domain.BlockedCustomer
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *blockedRepo) Block(ctx context.Context, phone, reason string) error {
	entry := domain.BlockedCustomer{Phone: phone, Reason: reason}
	// Re-blocking an already blocked number just refreshes the reason.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"reason"}),
	}).Create(&entry).Error
}

func (r *blockedRepo) Unblock(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).Where("phone = ?", phone).
		Delete(&domain.BlockedCustomer{}).Error
}
