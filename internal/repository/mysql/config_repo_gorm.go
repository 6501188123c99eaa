package mysql

import (
	"context"
	"errors"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

// Defaults used until an admin saves the config for the first time.
const (
	defaultDeliveryInside  = 100
	defaultDeliveryOutside = 150
	defaultFreeThreshold   = 5000
)

type configRepo struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) repository.ConfigRepository {
	return &configRepo{db: db}
}

func (r *configRepo) Get(ctx context.Context) (*domain.SiteConfig, error) {
	var cfg domain.SiteConfig
	err := r.db.WithContext(ctx).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.SiteConfig{
				ID:                    1,
				DeliveryChargeInside:  defaultDeliveryInside,
				DeliveryChargeOutside: defaultDeliveryOutside,
				FreeDeliveryThreshold: defaultFreeThreshold,
			}, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepo) Update(ctx context.Context, cfg *domain.SiteConfig) error {
	cfg.ID = 1
	return r.db.WithContext(ctx).Save(cfg).Error
}
