// Package report exports the products placed across a document as a tabular
// summary the shop staff can cross-check against the storefront.
package report

import (
	"bytes"
	"encoding/csv"
	"errors"

	"github.com/goliatone/go-salepage/internal/document"
)

// ErrDocumentRequired signals a nil document passed to ProductList.
var ErrDocumentRequired = errors.New("report: document is required")

// Kind distinguishes featured products from regular grid entries.
const (
	KindHero   = "hero"
	KindNormal = "normal"
)

var header = []string{"ブロック名", "種別", "商品コード", "商品名", "税込価格", "URL"}

// ProductList renders every product of every product grid, in document
// order, as CSV with one row per placed product.
func ProductList(doc *document.Document) ([]byte, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, grid := range doc.ProductGrids() {
		for _, product := range grid.HeroProducts {
			if err := w.Write([]string{grid.Title, KindHero, product.Code, product.Name, product.Price, product.URL}); err != nil {
				return nil, err
			}
		}
		for _, product := range grid.GridProducts {
			if err := w.Write([]string{grid.Title, KindNormal, product.Code, product.Name, product.Price, product.URL}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
