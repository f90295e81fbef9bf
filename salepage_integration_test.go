package salepage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	salepage "github.com/goliatone/go-salepage"
	"github.com/goliatone/go-salepage/internal/document"
	"github.com/goliatone/go-salepage/internal/importer"
)

const priceList = "商品管理番号（商品URL）,商品名,通常購入販売価格,表示価格,商品画像パス1\n" +
	"apron-01,【送料無料】まくら,1000,1500,/goodlifeshop/cabinet/apron.jpg\n"

func newModule(t *testing.T) *salepage.Module {
	t.Helper()
	cfg := salepage.DefaultConfig()
	cfg.Importer.Encoding = "utf8"
	module, err := salepage.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module
}

func TestModule_DocumentToPage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	module := newModule(t)

	docs := module.Documents()
	doc := docs.New("goodlifeshop")

	doc, grid, err := docs.AddBlock(ctx, doc, document.TypeProductGrid)
	if err != nil {
		t.Fatalf("add block: %v", err)
	}
	doc, err = docs.UpdateBlock(ctx, doc, grid.BlockID(), func(block document.Block) (document.Block, error) {
		g := block.(*document.ProductGridBlock)
		g.NameFilter = "【送料無料】"
		return g, nil
	})
	if err != nil {
		t.Fatalf("set name filter: %v", err)
	}

	dataset, err := module.Importer().Parse(strings.NewReader(priceList), "dl-normal-item.csv", importer.EncodingUTF8)
	if err != nil {
		t.Fatalf("parse price list: %v", err)
	}
	doc, err = docs.AddProduct(ctx, doc, grid.BlockID(), document.ListGrid, "apron-01", dataset)
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	page, err := module.Generator().Generate(ctx, doc)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(page, ">まくら</div>") {
		t.Error("expected redacted product name in page")
	}
	if !strings.Contains(page, "1,100") {
		t.Error("expected tax-inclusive price in page")
	}
}

func TestModule_EditorAPI(t *testing.T) {
	t.Parallel()
	module := newModule(t)

	mux := http.NewServeMux()
	if err := module.EditorAPI().Register(mux); err != nil {
		t.Fatalf("register: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/document", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"shopId": "goodlifeshop"`) {
		t.Errorf("expected default shop session, got %s", rec.Body.String())
	}
}

func TestModule_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := salepage.DefaultConfig()
	cfg.Importer.Encoding = "euc-jp"
	if _, err := salepage.New(cfg); err == nil {
		t.Fatal("expected configuration error")
	}
}
