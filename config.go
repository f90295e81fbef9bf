package salepage

import "github.com/goliatone/go-salepage/internal/runtimeconfig"

type (
	Config               = runtimeconfig.Config
	Shop                 = runtimeconfig.Shop
	CatalogConfig        = runtimeconfig.CatalogConfig
	ImporterConfig       = runtimeconfig.ImporterConfig
	GeneratorConfig      = runtimeconfig.GeneratorConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	HTTPConfig           = runtimeconfig.HTTPConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
