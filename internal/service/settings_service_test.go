package service

import (
	"context"
	"testing"

	"github.com/hc2580411/vwms/internal/model"
	"github.com/hc2580411/vwms/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsEnv(t *testing.T) SettingsService {
	t.Helper()
	env := newTestEnv(t)
	return NewSettingsService(repository.NewSettingRepository(env.db), env.snapshots)
}

func TestSettingsUpsert(t *testing.T) {
	svc := newSettingsEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, model.SettingTaxRate, "0.05"))
	require.NoError(t, svc.Set(ctx, model.SettingTaxRate, "0.075"))

	v, found, err := svc.Get(ctx, model.SettingTaxRate)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "0.075", v)

	_, found, err = svc.Get(ctx, "no_such_key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSnapshotAppliesDefaults(t *testing.T) {
	svc := newSettingsEnv(t)
	ctx := context.Background()

	cfg, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	// Seeded values win where present, defaults fill the rest.
	assert.Equal(t, "AED", cfg.DisplayCurrency)
	assert.Equal(t, 1.0, cfg.ExchangeRate)
	assert.Equal(t, 0.0, cfg.TaxRate)
	assert.Equal(t, 10.0, cfg.LowStockThreshold)
}

func TestSnapshotIgnoresGarbageValues(t *testing.T) {
	svc := newSettingsEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, model.SettingExchangeRate, "not-a-number"))
	require.NoError(t, svc.Set(ctx, model.SettingLowStockThreshold, "-4"))

	cfg, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.ExchangeRate, "unparseable rate falls back to default")
	assert.Equal(t, 10.0, cfg.LowStockThreshold, "negative threshold falls back to default")
}

func TestSnapshotReadsStoredOverrides(t *testing.T) {
	svc := newSettingsEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, model.SettingDisplayCurrency, "USD"))
	require.NoError(t, svc.Set(ctx, model.SettingExchangeRate, "0.272"))

	cfg, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.DisplayCurrency)
	assert.InDelta(t, 0.272, cfg.ExchangeRate, 1e-9)
}
