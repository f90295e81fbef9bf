package generator

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-salepage/internal/document"
	"github.com/goliatone/go-salepage/internal/logging"
	"github.com/goliatone/go-salepage/pkg/interfaces"
)

// ErrDocumentRequired signals a nil document passed to Generate.
var ErrDocumentRequired = errors.New("generator: document is required")

// Service renders an editable document into one self-contained HTML page.
// The output embeds all CSS and scripts inline so the page needs no network
// fetches beyond the product and banner images it references.
type Service interface {
	Generate(ctx context.Context, doc *document.Document) (string, error)
}

// Config carries page-level generation settings.
type Config struct {
	// Title is the <title> of the exported page.
	Title string
	// PopupViewLimit caps how many visits show the popup ad per browser.
	PopupViewLimit int
}

// DefaultConfig returns the production export settings.
func DefaultConfig() Config {
	return Config{
		Title:          "楽天スーパーセール特設ページ",
		PopupViewLimit: 3,
	}
}

// Dependencies lists the generator's collaborators.
type Dependencies struct {
	Logger interfaces.Logger
}

// NewService wires a page generator. Zero-value config fields fall back to
// the defaults.
func NewService(cfg Config, deps Dependencies) Service {
	defaults := DefaultConfig()
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = defaults.Title
	}
	if cfg.PopupViewLimit <= 0 {
		cfg.PopupViewLimit = defaults.PopupViewLimit
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &service{cfg: cfg, deps: deps}
}

type service struct {
	cfg  Config
	deps Dependencies
}

// Generate walks the block list in document order and emits the full page.
// Generation reads nothing besides the document and the fixed config, so
// equal documents always produce byte-identical output.
func (s *service) Generate(_ context.Context, doc *document.Document) (string, error) {
	if doc == nil {
		return "", ErrDocumentRequired
	}

	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html lang=\"ja\">\n<head>\n")
	page.WriteString("<meta charset=\"UTF-8\">\n")
	page.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	page.WriteString("<title>" + escape(s.cfg.Title) + "</title>\n")
	page.WriteString("<style>\n")
	page.WriteString(baseStylesheet)
	writeDocumentStyles(&page, doc)
	page.WriteString("</style>\n</head>\n<body>\n")

	page.WriteString("<div id=\"rakuten-sale-app\">\n")
	writePopup(&page, doc, s.cfg.PopupViewLimit)
	writeNavigation(&page, doc)
	for _, block := range doc.Blocks {
		writeBlock(&page, block)
	}
	page.WriteString("</div>\n")

	page.WriteString(timerScript)
	page.WriteString(navToggleScript)
	page.WriteString(textFitScript)
	page.WriteString("</body>\n</html>\n")

	s.deps.Logger.Debug("page generated", "shop", doc.ShopID, "blocks", len(doc.Blocks), "bytes", page.Len())
	return page.String(), nil
}
