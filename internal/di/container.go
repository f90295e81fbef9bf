// Package di wires the sale-page services from runtime configuration.
package di

import (
	"fmt"

	"github.com/goliatone/go-salepage/internal/catalog"
	"github.com/goliatone/go-salepage/internal/document"
	"github.com/goliatone/go-salepage/internal/generator"
	"github.com/goliatone/go-salepage/internal/importer"
	"github.com/goliatone/go-salepage/internal/logging"
	"github.com/goliatone/go-salepage/internal/logging/console"
	"github.com/goliatone/go-salepage/internal/logging/gologger"
	"github.com/goliatone/go-salepage/internal/markdown"
	"github.com/goliatone/go-salepage/internal/runtimeconfig"
	"github.com/goliatone/go-salepage/pkg/interfaces"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	markdownParser interfaces.MarkdownParser

	resolver     *catalog.Resolver
	importerSvc  *importer.Service
	documentSvc  document.Service
	generatorSvc generator.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the config-selected logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithMarkdownParser overrides the default banner header renderer.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		if parser != nil {
			c.markdownParser = parser
		}
	}
}

// NewContainer validates cfg and builds the service graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}
	if c.markdownParser == nil {
		c.markdownParser = markdown.NewGoldmarkParser(interfaces.ParseOptions{
			Extensions: cfg.Markdown.Extensions,
			Sanitize:   cfg.Markdown.Sanitize,
			HardWraps:  cfg.Markdown.HardWraps,
			SafeMode:   cfg.Markdown.SafeMode,
		})
	}

	c.resolver = catalog.NewResolver(catalog.Config{
		Domain:              cfg.Catalog.Domain,
		PlaceholderImageURL: cfg.Catalog.PlaceholderImageURL,
		FallbackName:        cfg.Catalog.FallbackName,
	}, catalog.WithLogger(logging.CatalogLogger(c.loggerProvider)))

	c.importerSvc = importer.New(importer.WithLogger(logging.ImporterLogger(c.loggerProvider)))

	c.documentSvc = document.NewService(document.Dependencies{
		Resolver: c.resolver,
		Markdown: c.markdownParser,
		Logger:   logging.DocumentLogger(c.loggerProvider),
	})

	c.generatorSvc = generator.NewService(generator.Config{
		Title:          cfg.Generator.Title,
		PopupViewLimit: cfg.Generator.PopupViewLimit,
	}, generator.Dependencies{
		Logger: logging.GeneratorLogger(c.loggerProvider),
	})

	return c, nil
}

func buildLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch provider := cfg.Provider; provider {
	case "", "console":
		var min *console.Level
		if level, ok := consoleLevel(cfg.Level); ok {
			min = &level
		}
		return console.NewProvider(console.Options{MinLevel: min}), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		return nil, fmt.Errorf("di: unknown logging provider %q", provider)
	}
}

func consoleLevel(level string) (console.Level, bool) {
	switch level {
	case "trace":
		return console.LevelTrace, true
	case "debug":
		return console.LevelDebug, true
	case "info":
		return console.LevelInfo, true
	case "warn", "warning":
		return console.LevelWarn, true
	case "error":
		return console.LevelError, true
	case "fatal":
		return console.LevelFatal, true
	default:
		return console.LevelInfo, false
	}
}

// LoggerProvider exposes the wired logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MarkdownParser exposes the wired banner header renderer.
func (c *Container) MarkdownParser() interfaces.MarkdownParser {
	return c.markdownParser
}

// Resolver exposes the product resolver.
func (c *Container) Resolver() *catalog.Resolver {
	return c.resolver
}

// Importer exposes the price-list importer.
func (c *Container) Importer() *importer.Service {
	return c.importerSvc
}

// DocumentService exposes the document operations service.
func (c *Container) DocumentService() document.Service {
	return c.documentSvc
}

// GeneratorService exposes the page generator.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// ImportEncoding maps the configured price-list encoding onto the importer's
// encoding selector.
func (c *Container) ImportEncoding() importer.Encoding {
	if c.Config.Importer.Encoding == "utf8" {
		return importer.EncodingUTF8
	}
	return importer.EncodingShiftJIS
}
