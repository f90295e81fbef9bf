// Command example walks the library API end to end: it assembles a small sale
// page, enriches products from a price-list CSV and writes the generated HTML
// plus the project JSON next to each other.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	salepage "github.com/goliatone/go-salepage"
	"github.com/goliatone/go-salepage/internal/document"
	"github.com/goliatone/go-salepage/internal/importer"
)

const samplePriceList = "商品管理番号（商品URL）,商品名,通常購入販売価格,表示価格,商品画像パス1\n" +
	"apron-01,【送料無料】ロングエプロン,1000,1500,/goodlifeshop/cabinet/apron.jpg\n" +
	"knife-02,三徳包丁 18cm,2980,3980,/goodlifeshop/cabinet/knife.jpg\n" +
	"pan-03,フライパン 26cm,2480,,/goodlifeshop/cabinet/pan.jpg\n"

func main() {
	csvPath := flag.String("csv", "", "price list CSV (Shift-JIS storefront export); omit to use a built-in sample")
	outPath := flag.String("o", "sale-page.html", "output HTML path")
	projectPath := flag.String("project", "sale-project.json", "output project JSON path")
	flag.Parse()

	if err := run(context.Background(), *csvPath, *outPath, *projectPath); err != nil {
		log.Fatalf("example: %v", err)
	}
}

func run(ctx context.Context, csvPath, outPath, projectPath string) error {
	module, err := salepage.New(salepage.DefaultConfig())
	if err != nil {
		return err
	}

	dataset, err := loadPriceList(module, csvPath)
	if err != nil {
		return err
	}
	fmt.Printf("price list: %d products\n", dataset.Len())

	docs := module.Documents()
	doc := docs.New("goodlifeshop")
	doc.PopupImage = "https://image.rakuten.co.jp/goodlifeshop/cabinet/popup.jpg"

	doc, top, err := docs.AddBlock(ctx, doc, document.TypeTopImage)
	if err != nil {
		return err
	}
	doc, err = docs.UpdateBlock(ctx, doc, top.BlockID(), func(block document.Block) (document.Block, error) {
		b := block.(*document.TopImageBlock)
		b.ImageURL = "https://image.rakuten.co.jp/goodlifeshop/cabinet/header.jpg"
		return b, nil
	})
	if err != nil {
		return err
	}

	doc, grid, err := docs.AddBlock(ctx, doc, document.TypeProductGrid)
	if err != nil {
		return err
	}
	doc, err = docs.UpdateBlock(ctx, doc, grid.BlockID(), func(block document.Block) (document.Block, error) {
		g := block.(*document.ProductGridBlock)
		g.Title = "キッチン用品"
		g.BgColor = "#bf0000"
		return g, nil
	})
	if err != nil {
		return err
	}

	doc, err = docs.AddProduct(ctx, doc, grid.BlockID(), document.ListHero, "apron-01", dataset)
	if err != nil {
		return err
	}
	for _, code := range []string{"knife-02", "pan-03"} {
		if doc, err = docs.AddProduct(ctx, doc, grid.BlockID(), document.ListGrid, code, dataset); err != nil {
			return err
		}
	}
	if doc, err = docs.SetProductComment(ctx, doc, grid.BlockID(), document.ListGrid, 0, "スタッフおすすめ"); err != nil {
		return err
	}

	page, err := module.Generator().Generate(ctx, doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(page), 0o644); err != nil {
		return err
	}
	fmt.Printf("page: %s (%d bytes)\n", outPath, len(page))

	project, err := document.SaveProject(doc, time.Now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(projectPath, project, 0o644); err != nil {
		return err
	}
	fmt.Printf("project: %s\n", projectPath)
	return nil
}

func loadPriceList(module *salepage.Module, csvPath string) (*salepage.Dataset, error) {
	if csvPath == "" {
		return module.Importer().Parse(strings.NewReader(samplePriceList), "sample.csv", importer.EncodingUTF8)
	}
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return module.Importer().Parse(file, csvPath, importer.EncodingShiftJIS)
}
