package catalog_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-salepage/internal/catalog"
)

func testDataset(rows ...catalog.Row) *catalog.Dataset {
	return &catalog.Dataset{Source: "dl-normal-item.csv", Rows: rows}
}

func TestResolveMergesRows(t *testing.T) {
	resolver := catalog.NewResolver(catalog.Config{})
	dataset := testDataset(
		catalog.Row{
			"商品管理番号（商品URL）": "ab-123",
			"商品名":            "X",
		},
		catalog.Row{
			"商品管理番号（商品URL）": "ab-123",
			"通常購入販売価格":       "500",
		},
	)

	product, err := resolver.Resolve("ab-123", dataset, "goodlifeshop")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if product.Name != "X" {
		t.Fatalf("expected merged name X got %q", product.Name)
	}
	if product.Price != "550" {
		t.Fatalf("expected tax-inclusive 550 got %s", product.Price)
	}
	if product.RefPrice != "" {
		t.Fatalf("expected empty reference price got %q", product.RefPrice)
	}
	if product.Comment != "" {
		t.Fatalf("expected empty comment got %q", product.Comment)
	}
}

func TestResolveLaterRowsWin(t *testing.T) {
	resolver := catalog.NewResolver(catalog.Config{})
	dataset := testDataset(
		catalog.Row{
			"商品管理番号（商品URL）": "ab-123",
			"商品名":            "旧名称",
			"通常購入販売価格":       "100",
		},
		catalog.Row{
			"商品管理番号（商品URL）": "ab-123",
			"商品名":            "新名称",
			"通常購入販売価格":       "200",
		},
	)

	product, err := resolver.Resolve("ab-123", dataset, "goodlifeshop")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if product.Name != "新名称" {
		t.Fatalf("expected later name to win got %q", product.Name)
	}
	if product.Price != "220" {
		t.Fatalf("expected price from later row got %s", product.Price)
	}
}

func TestResolveIdempotent(t *testing.T) {
	resolver := catalog.NewResolver(catalog.Config{})
	dataset := testDataset(catalog.Row{
		"商品管理番号（商品URL）": "ab-123",
		"商品名":            "サンダル",
		"通常購入販売価格":       "1000",
		"表示価格":           "2000",
		"商品画像パス1":        "/item/ab-123.jpg",
	})

	first, err := resolver.Resolve("ab-123", dataset, "goodlifeshop")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := resolver.Resolve("ab-123", dataset, "goodlifeshop")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical products got %+v vs %+v", first, second)
	}
}

func TestResolveURLs(t *testing.T) {
	resolver := catalog.NewResolver(catalog.Config{})

	dataset := testDataset(catalog.Row{
		"商品管理番号（商品URL）": "ab-123",
		"商品画像パス1":        "/sandal/main.jpg",
	})
	product, err := resolver.Resolve("ab-123", dataset, "goodlifeshop")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if product.URL != "https://item.rakuten.co.jp/goodlifeshop/ab-123/" {
		t.Fatalf("unexpected product url %s", product.URL)
	}
	if product.ImageURL != "https://image.rakuten.co.jp/goodlifeshop/cabinet/sandal/main.jpg" {
		t.Fatalf("unexpected image url %s", product.ImageURL)
	}

	dataset = testDataset(catalog.Row{
		"商品管理番号（商品URL）": "cd-456",
		"商品画像パス1":        "https://cdn.example.com/cd.jpg",
	})
	product, err = resolver.Resolve("cd-456", dataset, "goodlifeshop")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if product.ImageURL != "https://cdn.example.com/cd.jpg" {
		t.Fatalf("expected absolute image url passthrough got %s", product.ImageURL)
	}

	dataset = testDataset(catalog.Row{"商品管理番号（商品URL）": "ef-789"})
	product, err = resolver.Resolve("ef-789", dataset, "goodlifeshop")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if product.ImageURL != "https://placehold.jp/150x150.png?text=NoImage" {
		t.Fatalf("expected placeholder image got %s", product.ImageURL)
	}
	if product.Price != "0" {
		t.Fatalf("expected default price 0 got %s", product.Price)
	}
	if product.Name != "名称未設定" {
		t.Fatalf("expected fallback name got %s", product.Name)
	}
}

func TestResolvePriceFallbackColumn(t *testing.T) {
	resolver := catalog.NewResolver(catalog.Config{})
	dataset := testDataset(catalog.Row{
		"商品管理番号（商品URL）": "ab-123",
		"販売価格":           "300",
	})

	product, err := resolver.Resolve("ab-123", dataset, "goodlifeshop")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if product.Price != "330" {
		t.Fatalf("expected fallback price column got %s", product.Price)
	}
}

func TestResolveErrors(t *testing.T) {
	resolver := catalog.NewResolver(catalog.Config{})
	dataset := testDataset(catalog.Row{"商品管理番号（商品URL）": "ab-123"})

	if _, err := resolver.Resolve("ab-123", dataset, ""); !errors.Is(err, catalog.ErrShopRequired) {
		t.Fatalf("expected ErrShopRequired got %v", err)
	}
	if _, err := resolver.Resolve("ab-123", testDataset(), "goodlifeshop"); !errors.Is(err, catalog.ErrNoDataset) {
		t.Fatalf("expected ErrNoDataset got %v", err)
	}
	if _, err := resolver.Resolve("ab-123", nil, "goodlifeshop"); !errors.Is(err, catalog.ErrNoDataset) {
		t.Fatalf("expected ErrNoDataset for nil dataset got %v", err)
	}
	if _, err := resolver.Resolve("zz-999", dataset, "goodlifeshop"); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound got %v", err)
	}
}
