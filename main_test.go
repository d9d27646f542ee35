package main

import (
	"testing"

	"github.com/kelseyhightower/envconfig"
)

func setRequired(t *testing.T) {
	t.Setenv("SHOPIFY_API_SECRET", "hush")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestAppConfigDefaults(t *testing.T) {
	setRequired(t)

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		t.Fatalf("process: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr default = %q", cfg.HTTPAddr)
	}
	if cfg.Environment != "development" {
		t.Fatalf("Environment default = %q", cfg.Environment)
	}
	if cfg.ShopifyAPIVersion != "2025-01" {
		t.Fatalf("API version default = %q", cfg.ShopifyAPIVersion)
	}
	if cfg.Gemini.Model != "gemini-1.5-flash" {
		t.Fatalf("Gemini model default = %q", cfg.Gemini.Model)
	}
	if cfg.OnSaleLimit != 20 {
		t.Fatalf("OnSaleLimit default = %d", cfg.OnSaleLimit)
	}
}

func TestAppConfigRequiresShopifySecret(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SHOPIFY_API_SECRET", "")

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err == nil {
		t.Fatalf("expected error for missing SHOPIFY_API_SECRET")
	}
}

func TestAppConfigOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("ONSALE_LIMIT", "5")

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		t.Fatalf("process: %v", err)
	}
	if cfg.HTTPAddr != ":9090" || cfg.Gemini.APIKey != "key" || cfg.OnSaleLimit != 5 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}
