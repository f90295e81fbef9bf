package catalog

// Row is one parsed price-list record keyed by the export's column headers.
type Row map[string]string

// Dataset holds an ordered price-list snapshot. Row order matters: when a
// product code appears on several rows the later row carries the
// authoritative value for any field it fills in.
type Dataset struct {
	Source string
	Rows   []Row
}

// Len reports the number of rows loaded.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Product is the canonical resolved product record. Price fields hold
// tax-inclusive decimal strings; RefPrice stays empty when the price list
// carries no compare-at price. Comment is operator-entered and is never
// derived from the price list.
type Product struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	RefPrice string `json:"refPrice"`
	ImageURL string `json:"imageUrl"`
	URL      string `json:"url"`
	Comment  string `json:"comment"`
}

// Columns names the price-list export columns the resolver reads. The
// defaults match the storefront's dl-normal-item.csv layout.
type Columns struct {
	Code          string
	Name          string
	Price         string
	PriceFallback string
	RefPrice      string
	ImagePath     string
}

// DefaultColumns returns the column names of the standard item export.
func DefaultColumns() Columns {
	return Columns{
		Code:          "商品管理番号（商品URL）",
		Name:          "商品名",
		Price:         "通常購入販売価格",
		PriceFallback: "販売価格",
		RefPrice:      "表示価格",
		ImagePath:     "商品画像パス1",
	}
}

// Config captures the storefront identity pieces URL resolution depends on.
type Config struct {
	// Domain is the storefront domain used for item and image URLs.
	Domain string
	// PlaceholderImageURL is substituted when a product has no image path.
	PlaceholderImageURL string
	// FallbackName is shown when no row carries a product name.
	FallbackName string
	Columns      Columns
}

// DefaultConfig returns the production storefront settings.
func DefaultConfig() Config {
	return Config{
		Domain:              "rakuten.co.jp",
		PlaceholderImageURL: "https://placehold.jp/150x150.png?text=NoImage",
		FallbackName:        "名称未設定",
		Columns:             DefaultColumns(),
	}
}
