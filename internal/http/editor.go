// Package http exposes the single-operator editor API over net/http. All
// endpoints act on one in-memory session: the working document plus the most
// recently uploaded price list.
package http

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-salepage/internal/catalog"
	"github.com/goliatone/go-salepage/internal/document"
	"github.com/goliatone/go-salepage/internal/generator"
	"github.com/goliatone/go-salepage/internal/importer"
	"github.com/goliatone/go-salepage/internal/logging"
	"github.com/goliatone/go-salepage/pkg/interfaces"
)

// EditorAPI registers the editor endpoints: block CRUD, product placement,
// price-list upload, project save/load and page export.
type EditorAPI struct {
	basePath  string
	documents document.Service
	generate  generator.Service
	importSvc *importer.Service
	encoding  importer.Encoding
	logger    interfaces.Logger
	clock     func() time.Time

	mu      sync.Mutex
	doc     *document.Document
	dataset *catalog.Dataset
}

// EditorOption mutates the EditorAPI configuration.
type EditorOption func(*EditorAPI)

// NewEditorAPI constructs an editor API instance. A document service is
// required; everything else has usable defaults.
func NewEditorAPI(opts ...EditorOption) *EditorAPI {
	api := &EditorAPI{
		basePath: "/admin/api",
		encoding: importer.EncodingShiftJIS,
		logger:   logging.NoOp(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	if api.doc == nil && api.documents != nil {
		api.doc = api.documents.New("")
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) EditorOption {
	return func(api *EditorAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithDocumentService wires the document operations service.
func WithDocumentService(service document.Service) EditorOption {
	return func(api *EditorAPI) {
		api.documents = service
	}
}

// WithGeneratorService wires the page generator used by the HTML export.
func WithGeneratorService(service generator.Service) EditorOption {
	return func(api *EditorAPI) {
		api.generate = service
	}
}

// WithImporter wires the price-list importer and upload encoding.
func WithImporter(service *importer.Service, encoding importer.Encoding) EditorOption {
	return func(api *EditorAPI) {
		api.importSvc = service
		if encoding != "" {
			api.encoding = encoding
		}
	}
}

// WithShop sets the session's initial shop.
func WithShop(shopID string) EditorOption {
	return func(api *EditorAPI) {
		if api.documents != nil {
			api.doc = api.documents.New(shopID)
		}
	}
}

// WithLogger attaches a request logger.
func WithLogger(logger interfaces.Logger) EditorOption {
	return func(api *EditorAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithClock overrides the save timestamp source.
func WithClock(clock func() time.Time) EditorOption {
	return func(api *EditorAPI) {
		if clock != nil {
			api.clock = clock
		}
	}
}

// Register attaches the editor endpoints to the provided mux.
func (api *EditorAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api.documents == nil {
		return fmt.Errorf("http: document service is required")
	}
	base := api.basePath

	doc := joinPath(base, "document")
	mux.HandleFunc("GET "+doc, api.handleDocumentGet)
	mux.HandleFunc("PUT "+joinPath(base, "document/shop"), api.handleShopSet)
	mux.HandleFunc("PUT "+joinPath(base, "document/popup"), api.handlePopupSet)

	blocks := joinPath(base, "document/blocks")
	mux.HandleFunc("POST "+blocks, api.handleBlockAdd)
	mux.HandleFunc("PUT "+blocks+"/{id}", api.handleBlockUpdate)
	mux.HandleFunc("DELETE "+blocks+"/{id}", api.handleBlockRemove)
	mux.HandleFunc("POST "+joinPath(base, "document/blocks/move"), api.handleBlockMove)
	mux.HandleFunc("PUT "+blocks+"/{id}/header", api.handleBannerHeader)

	mux.HandleFunc("POST "+blocks+"/{id}/products", api.handleProductAdd)
	mux.HandleFunc("PUT "+blocks+"/{id}/products/{index}", api.handleProductReplace)
	mux.HandleFunc("DELETE "+blocks+"/{id}/products/{index}", api.handleProductRemove)
	mux.HandleFunc("PUT "+blocks+"/{id}/products/{index}/comment", api.handleProductComment)
	mux.HandleFunc("POST "+blocks+"/{id}/products/{index}/move", api.handleProductMove)

	mux.HandleFunc("POST "+joinPath(base, "catalog"), api.handleCatalogUpload)
	mux.HandleFunc("GET "+joinPath(base, "project"), api.handleProjectSave)
	mux.HandleFunc("POST "+joinPath(base, "project"), api.handleProjectLoad)
	mux.HandleFunc("GET "+joinPath(base, "export/html"), api.handleExportHTML)
	mux.HandleFunc("GET "+joinPath(base, "export/products.csv"), api.handleExportReport)

	return nil
}

// update applies op to the session under the lock and commits the returned
// document. A failed op leaves the session untouched.
func (api *EditorAPI) update(op func(doc *document.Document, dataset *catalog.Dataset) (*document.Document, error)) (*document.Document, error) {
	api.mu.Lock()
	defer api.mu.Unlock()
	next, err := op(api.doc, api.dataset)
	if err != nil {
		return nil, err
	}
	api.doc = next
	return next, nil
}

func (api *EditorAPI) snapshot() *document.Document {
	api.mu.Lock()
	defer api.mu.Unlock()
	return api.doc
}
