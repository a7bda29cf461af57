package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"joyeria-checkout/internal/apperr"
	"joyeria-checkout/internal/model"
	"joyeria-checkout/internal/repository"
	"joyeria-checkout/internal/shipping"
)

type ShippingSettingsService interface {
	Get(ctx context.Context) (*model.ShippingSetting, error)
	Update(ctx context.Context, threshold, cost decimal.Decimal) (*model.ShippingSetting, error)
}

type shippingSettingsServiceImpl struct {
	repo     repository.ShippingSettingRepository
	resolver *shipping.Resolver
}

func NewShippingSettingsService(repo repository.ShippingSettingRepository, resolver *shipping.Resolver) ShippingSettingsService {
	return &shippingSettingsServiceImpl{repo: repo, resolver: resolver}
}

// Get returns the stored settings, or the hardcoded defaults before the row
// has ever been written.
func (s *shippingSettingsServiceImpl) Get(ctx context.Context) (*model.ShippingSetting, error) {
	setting, err := s.repo.Get(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.ShippingSetting{
			FreeShippingThreshold: shipping.DefaultFreeShippingThreshold,
			StandardShippingCost:  shipping.DefaultStandardShippingCost,
		}, nil
	}
	return setting, err
}

// Update rewrites the settings and drops the resolver cache so the next
// checkout sees the new values immediately instead of after the TTL.
func (s *shippingSettingsServiceImpl) Update(ctx context.Context, threshold, cost decimal.Decimal) (*model.ShippingSetting, error) {
	if threshold.IsNegative() || cost.IsNegative() {
		return nil, apperr.Validation("shipping settings must not be negative")
	}

	setting, err := s.repo.Update(ctx, threshold, cost)
	if err != nil {
		return nil, err
	}

	s.resolver.Invalidate()
	return setting, nil
}
