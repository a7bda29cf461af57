package shipping

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joyeria-checkout/internal/model"
)

type stubSettingsRepo struct {
	setting *model.ShippingSetting
	err     error
	calls   int
}

func (s *stubSettingsRepo) Get(ctx context.Context) (*model.ShippingSetting, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.setting, nil
}

func (s *stubSettingsRepo) Update(ctx context.Context, threshold, cost decimal.Decimal) (*model.ShippingSetting, error) {
	s.setting = &model.ShippingSetting{FreeShippingThreshold: threshold, StandardShippingCost: cost}
	return s.setting, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testSetting(threshold, cost string) *model.ShippingSetting {
	return &model.ShippingSetting{
		FreeShippingThreshold: decimal.RequireFromString(threshold),
		StandardShippingCost:  decimal.RequireFromString(cost),
	}
}

func TestCostThreshold(t *testing.T) {
	repo := &stubSettingsRepo{setting: testSetting("50", "9.99")}
	r := NewResolver(repo, testLogger())
	ctx := context.Background()

	tests := []struct {
		subtotal string
		want     string
	}{
		{"50", "0"},
		{"50.01", "0"},
		{"120", "0"},
		{"49.99", "9.99"},
		{"0.01", "9.99"},
	}

	for _, tt := range tests {
		got := r.Cost(ctx, decimal.RequireFromString(tt.subtotal))
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
			"subtotal %s: got %s", tt.subtotal, got)
	}
}

func TestCostCachesWithinTTL(t *testing.T) {
	repo := &stubSettingsRepo{setting: testSetting("50", "9.99")}
	r := NewResolver(repo, testLogger())
	ctx := context.Background()

	base := time.Now()
	r.now = func() time.Time { return base }

	r.Cost(ctx, decimal.NewFromInt(10))
	r.Cost(ctx, decimal.NewFromInt(20))
	r.Cost(ctx, decimal.NewFromInt(30))
	require.Equal(t, 1, repo.calls)

	// Past the TTL the next call re-fetches.
	r.now = func() time.Time { return base.Add(cacheTTL + time.Second) }
	r.Cost(ctx, decimal.NewFromInt(10))
	assert.Equal(t, 2, repo.calls)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	repo := &stubSettingsRepo{setting: testSetting("50", "9.99")}
	r := NewResolver(repo, testLogger())
	ctx := context.Background()

	r.Cost(ctx, decimal.NewFromInt(10))
	require.Equal(t, 1, repo.calls)

	repo.setting = testSetting("100", "5.00")
	r.Invalidate()

	got := r.Cost(ctx, decimal.NewFromInt(60))
	assert.Equal(t, 2, repo.calls)
	assert.True(t, got.Equal(decimal.RequireFromString("5.00")), "got %s", got)
}

func TestCostFallsBackToDefaults(t *testing.T) {
	repo := &stubSettingsRepo{err: fmt.Errorf("store unreachable")}
	r := NewResolver(repo, testLogger())
	ctx := context.Background()

	// Fetch failure never blocks checkout; defaults apply.
	got := r.Cost(ctx, decimal.NewFromInt(49))
	assert.True(t, got.Equal(DefaultStandardShippingCost), "got %s", got)

	got = r.Cost(ctx, decimal.NewFromInt(50))
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestCostServesStaleOverDefaults(t *testing.T) {
	repo := &stubSettingsRepo{setting: testSetting("80", "4.50")}
	r := NewResolver(repo, testLogger())
	ctx := context.Background()

	base := time.Now()
	r.now = func() time.Time { return base }
	r.Cost(ctx, decimal.NewFromInt(10))

	// Fetch starts failing after expiry; the stale copy wins over defaults.
	repo.err = fmt.Errorf("store unreachable")
	r.now = func() time.Time { return base.Add(cacheTTL + time.Minute) }

	got := r.Cost(ctx, decimal.NewFromInt(10))
	assert.True(t, got.Equal(decimal.RequireFromString("4.50")), "got %s", got)
}
