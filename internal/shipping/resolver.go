package shipping

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"joyeria-checkout/internal/model"
	"joyeria-checkout/internal/repository"
)

// Fallback settings used whenever the store cannot be reached. Checkout never
// blocks on a settings fetch.
var (
	DefaultFreeShippingThreshold = decimal.RequireFromString("50")
	DefaultStandardShippingCost  = decimal.RequireFromString("9.99")
)

const cacheTTL = 5 * time.Minute

// Resolver computes the shipping cost for a PEN subtotal from a cached copy
// of the store settings. It is injectable state, not a package singleton, so
// the TTL and invalidation are testable.
type Resolver struct {
	repo repository.ShippingSettingRepository
	log  *logrus.Logger

	mu        sync.Mutex
	setting   *model.ShippingSetting
	fetchedAt time.Time
	now       func() time.Time
}

func NewResolver(repo repository.ShippingSettingRepository, log *logrus.Logger) *Resolver {
	return &Resolver{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Cost returns 0 when the subtotal reaches the free-shipping threshold and
// the flat cost otherwise. The subtotal must be the PEN subtotal: eligibility
// is always decided in the base currency, even on the USD path, so borderline
// orders behave the same on both providers.
func (r *Resolver) Cost(ctx context.Context, subtotal decimal.Decimal) decimal.Decimal {
	threshold, cost := r.settings(ctx)

	if subtotal.GreaterThanOrEqual(threshold) {
		return decimal.Zero
	}
	return cost
}

// Threshold exposes the currently effective free-shipping threshold, for
// builder metadata.
func (r *Resolver) Threshold(ctx context.Context) decimal.Decimal {
	threshold, _ := r.settings(ctx)
	return threshold
}

// Invalidate drops the cached settings; the next Cost call re-fetches.
// Called when an admin updates the settings row.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setting = nil
	r.fetchedAt = time.Time{}
}

func (r *Resolver) settings(ctx context.Context) (threshold, cost decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.setting != nil && r.now().Sub(r.fetchedAt) < cacheTTL {
		return r.setting.FreeShippingThreshold, r.setting.StandardShippingCost
	}

	setting, err := r.repo.Get(ctx)
	if err != nil {
		r.log.WithError(err).Warn("shipping settings fetch failed, using defaults")
		// Serve the stale copy over hardcoded defaults when we have one.
		if r.setting != nil {
			return r.setting.FreeShippingThreshold, r.setting.StandardShippingCost
		}
		return DefaultFreeShippingThreshold, DefaultStandardShippingCost
	}

	r.setting = setting
	r.fetchedAt = r.now()
	return setting.FreeShippingThreshold, setting.StandardShippingCost
}
