package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hc2580411/vwms/internal/currency"
	"github.com/hc2580411/vwms/internal/infra"
	"github.com/hc2580411/vwms/internal/model"
	"github.com/hc2580411/vwms/internal/repository"
)

// Settings is the typed view over the key/value table, with defaults applied
// once at load instead of scattered through call sites.
type Settings struct {
	DisplayCurrency   string  `json:"display_currency"`
	ExchangeRate      float64 `json:"exchange_rate"`
	TaxRate           float64 `json:"tax_rate"`
	LowStockThreshold float64 `json:"low_stock_threshold"`
}

// Defaults when a key is absent or unparseable.
const (
	defaultExchangeRate      = 1
	defaultTaxRate           = 0
	defaultLowStockThreshold = 10
)

type SettingsService interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
	// Snapshot returns the typed settings with defaults filled in.
	Snapshot(ctx context.Context) (Settings, error)
}

type settingsService struct {
	repo      repository.SettingRepository
	snapshots *infra.SnapshotStore
}

func NewSettingsService(repo repository.SettingRepository, snapshots *infra.SnapshotStore) SettingsService {
	return &settingsService{repo: repo, snapshots: snapshots}
}

func (s *settingsService) Get(ctx context.Context, key string) (string, bool, error) {
	return s.repo.Get(ctx, key)
}

func (s *settingsService) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Set(ctx, key, value); err != nil {
		return err
	}
	if err := s.snapshots.Save(); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

func (s *settingsService) All(ctx context.Context) (map[string]string, error) {
	return s.repo.All(ctx)
}

func (s *settingsService) Snapshot(ctx context.Context) (Settings, error) {
	raw, err := s.repo.All(ctx)
	if err != nil {
		return Settings{}, err
	}
	out := Settings{
		DisplayCurrency:   currency.CanonicalCode,
		ExchangeRate:      defaultExchangeRate,
		TaxRate:           defaultTaxRate,
		LowStockThreshold: defaultLowStockThreshold,
	}
	if v, ok := raw[model.SettingDisplayCurrency]; ok && v != "" {
		out.DisplayCurrency = v
	}
	if v, ok := raw[model.SettingExchangeRate]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			out.ExchangeRate = f
		}
	}
	if v, ok := raw[model.SettingTaxRate]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			out.TaxRate = f
		}
	}
	if v, ok := raw[model.SettingLowStockThreshold]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			out.LowStockThreshold = f
		}
	}
	return out, nil
}
