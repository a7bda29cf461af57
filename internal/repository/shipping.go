package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"joyeria-checkout/internal/model"
)

type ShippingSettingRepository interface {
	Get(ctx context.Context) (*model.ShippingSetting, error)
	Update(ctx context.Context, threshold, cost decimal.Decimal) (*model.ShippingSetting, error)
}

type shippingSettingRepoImpl struct {
	db *gorm.DB
}

func NewShippingSettingRepository(db *gorm.DB) ShippingSettingRepository {
	return &shippingSettingRepoImpl{db: db}
}

func (r *shippingSettingRepoImpl) Get(ctx context.Context) (*model.ShippingSetting, error) {
	var setting model.ShippingSetting
	err := r.db.WithContext(ctx).
		Order("id").
		First(&setting).Error

	if err != nil {
		return nil, err
	}

	return &setting, nil
}

// Update rewrites the single settings row, creating it on first use.
func (r *shippingSettingRepoImpl) Update(ctx context.Context, threshold, cost decimal.Decimal) (*model.ShippingSetting, error) {
	var setting model.ShippingSetting
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Order("id").First(&setting).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			setting = model.ShippingSetting{
				FreeShippingThreshold: threshold,
				StandardShippingCost:  cost,
			}
			return tx.Create(&setting).Error
		}
		if err != nil {
			return err
		}

		setting.FreeShippingThreshold = threshold
		setting.StandardShippingCost = cost
		setting.UpdatedAt = time.Now()
		return tx.Save(&setting).Error
	})

	if err != nil {
		return nil, err
	}

	return &setting, nil
}
