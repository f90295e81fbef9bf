package salepage

import (
	"github.com/goliatone/go-salepage/internal/catalog"
	"github.com/goliatone/go-salepage/internal/di"
	"github.com/goliatone/go-salepage/internal/document"
	"github.com/goliatone/go-salepage/internal/generator"
	salehttp "github.com/goliatone/go-salepage/internal/http"
	"github.com/goliatone/go-salepage/internal/importer"
	"github.com/goliatone/go-salepage/pkg/interfaces"
)

// DocumentService exports the document operations contract for consumers of the
// salepage package.
type DocumentService = document.Service

// GeneratorService exports the static page generator contract.
type GeneratorService = generator.Service

// ImporterService exports the price-list importer.
type ImporterService = *importer.Service

// CatalogResolver exports the product resolver.
type CatalogResolver = *catalog.Resolver

// MarkdownParser exports the markdown parser contract used for banner headers.
type MarkdownParser = interfaces.MarkdownParser

// Document exports the working page document.
type Document = document.Document

// Block exports the page block contract.
type Block = document.Block

// BlockType exports the block variant discriminator.
type BlockType = document.BlockType

// Product exports the enriched product placed on product grids.
type Product = catalog.Product

// Dataset exports an imported price list.
type Dataset = catalog.Dataset

// EditorAPI exports the HTTP editor surface.
type EditorAPI = salehttp.EditorAPI

// Module represents the top level sale-page runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a sale-page module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Documents returns the configured document service.
func (m *Module) Documents() DocumentService {
	return m.container.DocumentService()
}

// Generator returns the configured page generator.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Importer returns the configured price-list importer.
func (m *Module) Importer() ImporterService {
	return m.container.Importer()
}

// Catalog returns the configured product resolver.
func (m *Module) Catalog() CatalogResolver {
	return m.container.Resolver()
}

// Markdown returns the configured markdown parser.
func (m *Module) Markdown() MarkdownParser {
	return m.container.MarkdownParser()
}

// EditorAPI builds the HTTP editor wired against the module's services. The
// session starts on the configured default shop.
func (m *Module) EditorAPI(opts ...salehttp.EditorOption) *EditorAPI {
	base := []salehttp.EditorOption{
		salehttp.WithDocumentService(m.container.DocumentService()),
		salehttp.WithGeneratorService(m.container.GeneratorService()),
		salehttp.WithImporter(m.container.Importer(), m.container.ImportEncoding()),
		salehttp.WithShop(m.container.Config.DefaultShop),
		salehttp.WithLogger(m.container.LoggerProvider().GetLogger("editor")),
	}
	return salehttp.NewEditorAPI(append(base, opts...)...)
}
