package runtimeconfig

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidateRejectsDuplicateShops(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shops = append(cfg.Shops, Shop{ID: "goodlifeshop", Name: "重複"})

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	errs, ok := err.(validation.Errors)
	if !ok {
		t.Fatalf("expected validation.Errors, got %T", err)
	}
	if _, ok := errs["shops.2.id"]; !ok {
		t.Errorf("expected duplicate shop id flagged, got %v", errs)
	}
}

func TestValidateRejectsUnknownDefaultShop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultShop = "unknown-shop"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown default shop")
	}
}

func TestValidateRejectsBadEncoding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Importer.Encoding = "euc-jp"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unsupported encoding")
	}
}

func TestValidateLoggingOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown provider")
	}

	cfg = DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown level")
	}

	cfg = DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown format")
	}

	cfg = DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "pretty"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("pretty format must validate: %v", err)
	}
}

func TestShopName(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ShopName("marumoto"); got != "まるげん" {
		t.Errorf("expected display name, got %q", got)
	}
	if got := cfg.ShopName("other"); got != "other" {
		t.Errorf("expected id fallback, got %q", got)
	}
}
