package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joyeria-checkout/internal/repository"
	"joyeria-checkout/internal/shipping"
)

func TestShippingSettingsDefaultsBeforeFirstWrite(t *testing.T) {
	db := testDB(t)
	repo := repository.NewShippingSettingRepository(db)
	svc := NewShippingSettingsService(repo, shipping.NewResolver(repo, testLogger()))

	setting, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, setting.FreeShippingThreshold.Equal(shipping.DefaultFreeShippingThreshold))
	assert.True(t, setting.StandardShippingCost.Equal(shipping.DefaultStandardShippingCost))
}

func TestShippingSettingsUpdateTakesEffectImmediately(t *testing.T) {
	db := testDB(t)
	repo := repository.NewShippingSettingRepository(db)
	resolver := shipping.NewResolver(repo, testLogger())
	svc := NewShippingSettingsService(repo, resolver)
	ctx := context.Background()

	_, err := svc.Update(ctx, decimal.NewFromInt(50), decimal.RequireFromString("9.99"))
	require.NoError(t, err)

	// Warm the resolver cache on the stored row.
	cost := resolver.Cost(ctx, decimal.NewFromInt(30))
	require.True(t, cost.Equal(decimal.RequireFromString("9.99")), "got %s", cost)

	_, err = svc.Update(ctx, decimal.NewFromInt(20), decimal.NewFromInt(5))
	require.NoError(t, err)

	// The admin update invalidates the cache: no 5-minute wait.
	cost = resolver.Cost(ctx, decimal.NewFromInt(30))
	assert.True(t, cost.IsZero(), "got %s", cost)

	cost = resolver.Cost(ctx, decimal.NewFromInt(10))
	assert.True(t, cost.Equal(decimal.NewFromInt(5)), "got %s", cost)
}

func TestShippingSettingsRejectNegative(t *testing.T) {
	db := testDB(t)
	repo := repository.NewShippingSettingRepository(db)
	svc := NewShippingSettingsService(repo, shipping.NewResolver(repo, testLogger()))

	_, err := svc.Update(context.Background(), decimal.NewFromInt(-1), decimal.NewFromInt(5))
	require.Error(t, err)
}
