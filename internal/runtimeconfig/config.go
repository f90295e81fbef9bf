package runtimeconfig

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config aggregates runtime settings for the sale page builder. Fields use
// simple types so host applications can bind them from flags or files.
type Config struct {
	Enabled     bool
	Shops       []Shop
	DefaultShop string
	Catalog     CatalogConfig
	Importer    ImporterConfig
	Generator   GeneratorConfig
	Markdown    MarkdownParserConfig
	Logging     LoggingConfig
	HTTP        HTTPConfig
}

// Shop identifies one storefront the builder can target.
type Shop struct {
	ID   string
	Name string
}

// CatalogConfig captures the storefront pieces product resolution needs.
type CatalogConfig struct {
	Domain              string
	PlaceholderImageURL string
	FallbackName        string
}

// ImporterConfig captures price-list ingestion behaviour.
type ImporterConfig struct {
	// Encoding of uploaded price lists: "shift_jis" (the storefront's
	// export default) or "utf8".
	Encoding string
}

// GeneratorConfig captures page export behaviour.
type GeneratorConfig struct {
	Title          string
	PopupViewLimit int
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime
// configuration of banner header rendering.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// HTTPConfig captures the editor API listener settings.
type HTTPConfig struct {
	Addr string
}

// DefaultConfig returns the production defaults: both storefronts, Shift-JIS
// price lists, a three-view popup cap and console logging.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Shops: []Shop{
			{ID: "goodlifeshop", Name: "グットライフショップ"},
			{ID: "marumoto", Name: "まるげん"},
		},
		DefaultShop: "goodlifeshop",
		Catalog: CatalogConfig{
			Domain:              "rakuten.co.jp",
			PlaceholderImageURL: "https://placehold.jp/150x150.png?text=NoImage",
			FallbackName:        "名称未設定",
		},
		Importer: ImporterConfig{
			Encoding: "shift_jis",
		},
		Generator: GeneratorConfig{
			Title:          "楽天スーパーセール特設ページ",
			PopupViewLimit: 3,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	errs := validation.Errors{}

	seen := map[string]bool{}
	for i, shop := range cfg.Shops {
		if strings.TrimSpace(shop.ID) == "" {
			errs[fmt.Sprintf("shops.%d.id", i)] = validation.NewError(
				"salepage.config.shop_id_required", "shop id is required")
			continue
		}
		if seen[shop.ID] {
			errs[fmt.Sprintf("shops.%d.id", i)] = validation.NewError(
				"salepage.config.shop_id_duplicate", "shop id is duplicated")
		}
		seen[shop.ID] = true
	}
	if cfg.DefaultShop != "" && !seen[cfg.DefaultShop] {
		errs["defaultShop"] = validation.NewError(
			"salepage.config.default_shop_unknown", "default shop is not listed in shops")
	}

	switch normalize(cfg.Importer.Encoding) {
	case "", "shift_jis", "utf8":
	default:
		errs["importer.encoding"] = validation.NewError(
			"salepage.config.encoding_invalid", "encoding must be shift_jis or utf8")
	}

	if cfg.Generator.PopupViewLimit < 0 {
		errs["generator.popupViewLimit"] = validation.NewError(
			"salepage.config.popup_limit_invalid", "popup view limit must not be negative")
	}

	provider := normalize(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		errs["logging.provider"] = validation.NewError(
			"salepage.config.logging_provider_unknown", "logging provider is invalid")
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		errs["logging.level"] = validation.NewError(
			"salepage.config.logging_level_invalid", "logging level is invalid")
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			errs["logging.format"] = validation.NewError(
				"salepage.config.logging_format_invalid", "logging format is invalid")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ShopName resolves a shop id to its display name, falling back to the id.
func (cfg Config) ShopName(id string) string {
	for _, shop := range cfg.Shops {
		if shop.ID == id {
			return shop.Name
		}
	}
	return id
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
