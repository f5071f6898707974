package models

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultsDecode(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := decodeConfig(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Preferences.VegMode || cfg.Preferences.Theme != ThemeSystem {
		t.Fatalf("preferences = %+v", cfg.Preferences)
	}
	if cfg.CatalogStore != "memory" || cfg.OrderStore != "memory" {
		t.Fatalf("stores = %s/%s", cfg.CatalogStore, cfg.OrderStore)
	}
	if cfg.Tracking.PreparingAfter != 3*time.Second || cfg.Tracking.DeliveredAfter != 18*time.Second {
		t.Fatalf("tracking = %+v", cfg.Tracking)
	}
	if cfg.Pricing.DeliveryFee != 2.99 || cfg.Pricing.TaxRate != 0.08875 {
		t.Fatalf("pricing = %+v", cfg.Pricing)
	}
}

func TestConfigFileOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("json")
	err := v.ReadConfig(strings.NewReader(`{
		"order_store": "redis",
		"preferences": {"veg_mode": true, "theme": "dark"},
		"redis": {"order_ttl": "2h"},
		"tracking": {"delivered_after": "40s"}
	}`))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	cfg, err := decodeConfig(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.OrderStore != "redis" || !cfg.Preferences.VegMode || cfg.Preferences.Theme != ThemeDark {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Redis.OrderTTL != 2*time.Hour || cfg.Tracking.DeliveredAfter != 40*time.Second {
		t.Fatalf("durations = %s %s", cfg.Redis.OrderTTL, cfg.Tracking.DeliveredAfter)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*viper.Viper){
		"catalog store": func(v *viper.Viper) { v.Set("catalog_store", "redis") },
		"order store":   func(v *viper.Viper) { v.Set("order_store", "mongo") },
		"theme":         func(v *viper.Viper) { v.Set("preferences.theme", "neon") },
		"negative fee":  func(v *viper.Viper) { v.Set("pricing.delivery_fee", -1) },
	}
	for name, mutate := range cases {
		v := viper.New()
		SetDefaults(v)
		mutate(v)
		if _, err := decodeConfig(v); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
