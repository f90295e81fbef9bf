package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-salepage/internal/catalog"
	"github.com/goliatone/go-salepage/internal/document"
)

func newTestGenerator() Service {
	return NewService(Config{}, Dependencies{})
}

func testGrid() *document.ProductGridBlock {
	grid := document.NewBlock(document.TypeProductGrid).(*document.ProductGridBlock)
	grid.Title = "キッチン用品"
	return grid
}

func testDocument(blocks ...document.Block) *document.Document {
	return &document.Document{ShopID: "goodlifeshop", Blocks: blocks}
}

func TestGenerateNilDocument(t *testing.T) {
	_, err := newTestGenerator().Generate(context.Background(), nil)
	if !errors.Is(err, ErrDocumentRequired) {
		t.Fatalf("expected ErrDocumentRequired, got %v", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	grid := testGrid()
	grid.GridProducts = []catalog.Product{
		{Code: "apron-01", Name: "エプロン", Price: "1100", RefPrice: "1650", URL: "https://item.rakuten.co.jp/goodlifeshop/apron-01/"},
	}
	doc := testDocument(grid)
	doc.PopupImage = "https://image.rakuten.co.jp/goodlifeshop/cabinet/popup.jpg"

	svc := newTestGenerator()
	first, err := svc.Generate(context.Background(), doc)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := svc.Generate(context.Background(), doc)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if first != second {
		t.Error("equal documents must generate byte-identical pages")
	}
}

func TestGenerateSelfContained(t *testing.T) {
	page, err := newTestGenerator().Generate(context.Background(), testDocument(testGrid()))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(page, "<script src=") || strings.Contains(page, "<link") {
		t.Error("exported page must not reference external assets")
	}
	if !strings.Contains(page, "<style>") {
		t.Error("expected inline stylesheet")
	}
}

func TestGenerateEmptyBlocksEmitNothing(t *testing.T) {
	top := document.NewBlock(document.TypeTopImage)
	banners := document.NewBlock(document.TypeBannerList)
	coupons := document.NewBlock(document.TypeCouponList)
	timers := document.NewBlock(document.TypeTimerBanner)

	page, err := newTestGenerator().Generate(context.Background(), testDocument(top, banners, coupons, timers))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, marker := range []string{"top-image", "banner-stack", "coupon-grid", "timer-banner"} {
		if strings.Contains(page, "class=\""+marker) {
			t.Errorf("empty block leaked %q markup", marker)
		}
	}
}

func TestGenerateSpacerAndCustomHTML(t *testing.T) {
	spacer := document.NewBlock(document.TypeSpacer).(*document.SpacerBlock)
	spacer.Height = 80
	custom := document.NewBlock(document.TypeCustomHTML).(*document.CustomHTMLBlock)
	custom.Content = `<marquee>SALE <b>開催中</b></marquee>`

	page, err := newTestGenerator().Generate(context.Background(), testDocument(spacer, custom))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(page, `style="height: 80px;"`) {
		t.Error("expected spacer height inline style")
	}
	// Operator markup passes through unescaped.
	if !strings.Contains(page, custom.Content) {
		t.Error("expected custom HTML verbatim")
	}
}

func TestGenerateNavigationIndexesGrids(t *testing.T) {
	first := testGrid()
	second := testGrid()
	second.Title = "日用品"

	page, err := newTestGenerator().Generate(context.Background(), testDocument(first, second))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(page, "#cat-"+first.ID.String()) || !strings.Contains(page, "#cat-"+second.ID.String()) {
		t.Error("expected nav anchors for every product grid")
	}
	if !strings.Contains(page, ">日用品</a>") {
		t.Error("expected grid title as nav label")
	}
}

func TestGeneratePopupOnlyWithImage(t *testing.T) {
	svc := newTestGenerator()

	page, err := svc.Generate(context.Background(), testDocument())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(page, "id=\"popup\"") {
		t.Error("popup emitted without an image")
	}

	doc := testDocument()
	doc.PopupImage = "https://image.rakuten.co.jp/goodlifeshop/cabinet/popup.jpg"
	page, err = svc.Generate(context.Background(), doc)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(page, "id=\"popup\"") {
		t.Error("expected popup overlay")
	}
	if !strings.Contains(page, `popupShown_goodlifeshop`) {
		t.Error("expected per-shop popup counter key")
	}
	if !strings.Contains(page, "shownCount < 3") {
		t.Error("expected default view limit of 3")
	}
}

func TestGenerateBadgeShowsDiscount(t *testing.T) {
	grid := testGrid()
	grid.GridProducts = []catalog.Product{
		{Code: "a", Name: "A", Price: "900", RefPrice: "1000"},
		{Code: "b", Name: "B", Price: "900"},
		{Code: "c", Name: "C", Price: "900", RefPrice: "800"},
	}

	page, err := newTestGenerator().Generate(context.Background(), testDocument(grid))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(page, ">100円OFF<") {
		t.Error("expected visible 100円OFF badge")
	}
	if got := strings.Count(page, "price-badge is-hidden"); got != 2 {
		t.Errorf("expected 2 hidden badges, got %d", got)
	}
	if strings.Contains(page, "-100円OFF") {
		t.Error("badge must never show a negative discount")
	}
}

func TestGenerateRedactsNames(t *testing.T) {
	grid := testGrid()
	grid.NameFilter = "【送料無料】"
	grid.HeroProducts = []catalog.Product{{Code: "a", Name: "【送料無料】サンダル", Price: "1100"}}

	page, err := newTestGenerator().Generate(context.Background(), testDocument(grid))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(page, ">サンダル</div>") {
		t.Error("expected redacted hero name")
	}
	if strings.Contains(page, "【送料無料】サンダル") {
		t.Error("filter term leaked into output")
	}
}

func TestGenerateDarkBackgroundForcesWhiteText(t *testing.T) {
	dark := testGrid()
	dark.BgColor = "#333333"
	light := testGrid()
	light.BgColor = "#ffffff"

	page, err := newTestGenerator().Generate(context.Background(), testDocument(dark, light))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(page, "background-color: #333333; color: #fff") {
		t.Error("expected white text on dark section")
	}
	if !strings.Contains(page, "background-color: #ffffff; color: #333") {
		t.Error("expected dark text on light section")
	}
}

func TestGenerateBubbleKeyframes(t *testing.T) {
	shown := testGrid()
	shown.MobileCommentDuration = 3
	shown.MobileCommentInterval = 1
	hidden := testGrid()
	hidden.MobileCommentShow = false

	page, err := newTestGenerator().Generate(context.Background(), testDocument(shown, hidden))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// 3s of 4s visible.
	if !strings.Contains(page, "@keyframes bubbleLoop-"+shown.ID.String()+" { 0%, 75% { opacity: 1;") {
		t.Error("expected 75% visible phase for 3s/1s timing")
	}
	if !strings.Contains(page, "animation: bubbleLoop-"+shown.ID.String()+" 4s infinite") {
		t.Error("expected 4s loop for 3s/1s timing")
	}
	if !strings.Contains(page, "#sec-"+hidden.ID.String()+" .comment-bubble { display: none !important; }") {
		t.Error("expected bubbles hidden when disabled")
	}
	if strings.Contains(page, "bubbleLoop-"+hidden.ID.String()+" ") {
		t.Error("disabled grid must not get a bubble animation")
	}
}

func TestGenerateTimerBannerAttributes(t *testing.T) {
	timer := document.NewBlock(document.TypeTimerBanner).(*document.TimerBannerBlock)
	timer.Banners = []document.TimerBannerItem{
		{
			ImageItem: document.ImageItem{ImageURL: "https://image.rakuten.co.jp/goodlifeshop/cabinet/sale.jpg"},
			StartTime: "2026-08-01T00:00",
			EndTime:   "2026-08-31T23:59",
		},
		{ImageItem: document.ImageItem{}},
	}

	page, err := newTestGenerator().Generate(context.Background(), testDocument(timer))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(page, `data-start="2026-08-01T00:00"`) || !strings.Contains(page, `data-end="2026-08-31T23:59"`) {
		t.Error("expected window bounds as data attributes")
	}
	if got := strings.Count(page, "class=\"timer-banner"); got != 1 {
		t.Errorf("imageless banners must be skipped, got %d rendered", got)
	}
}

func TestGenerateBottomButton(t *testing.T) {
	grid := testGrid()
	grid.BottomButtonLink = "https://item.rakuten.co.jp/goodlifeshop/sale/"
	grid.BottomButtonBgColor = "#006400"
	grid.BottomButtonTextColor = "#ffff00"

	page, err := newTestGenerator().Generate(context.Background(), testDocument(grid))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(page, "background-color: #006400; color: #ffff00 !important;") {
		t.Error("expected configured button colors")
	}
	if !strings.Contains(page, ">もっと見る</a>") {
		t.Error("expected default button label")
	}

	without := testGrid()
	page, err = newTestGenerator().Generate(context.Background(), testDocument(without))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(page, "section-bottom-btn\"") {
		t.Error("button emitted without a link")
	}
}

func TestGenerateHeroBannerMode(t *testing.T) {
	grid := testGrid()
	grid.HeroMode = document.HeroModeBanner
	grid.HeroBanners = []document.ImageItem{
		{ImageURL: "https://image.rakuten.co.jp/goodlifeshop/cabinet/hero.jpg", LinkURL: "https://item.rakuten.co.jp/goodlifeshop/sale/"},
	}
	grid.HeroProducts = []catalog.Product{{Code: "a", Name: "A", Price: "1100"}}

	page, err := newTestGenerator().Generate(context.Background(), testDocument(grid))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(page, "hero-banner-img") {
		t.Error("expected hero banner markup")
	}
	if strings.Contains(page, "class=\"hero-area\"") {
		t.Error("banner mode must not render hero products")
	}
}

func TestGenerateBannerLayoutColumns(t *testing.T) {
	stack := document.NewBlock(document.TypeBannerList).(*document.BannerListBlock)
	stack.Banners = []document.ImageItem{{ImageURL: "https://example.test/a.jpg"}}
	grid := document.NewBlock(document.TypeBannerList).(*document.BannerListBlock)
	grid.Layout = "3"
	grid.Banners = []document.ImageItem{{ImageURL: "https://example.test/b.jpg"}}
	grid.HeaderHTML = "<h2>今週の目玉</h2>"

	page, err := newTestGenerator().Generate(context.Background(), testDocument(stack, grid))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(page, "class=\"banner-stack\"") {
		t.Error("layout 1 must render a vertical stack")
	}
	if !strings.Contains(page, "grid-template-columns: repeat(3, 1fr);") {
		t.Error("layout 3 must render a 3-column grid")
	}
	if !strings.Contains(page, "<h2>今週の目玉</h2>") {
		t.Error("expected header HTML above banners")
	}
}

func TestVisiblePhasePercent(t *testing.T) {
	cases := []struct {
		duration, interval int
		expected           int
	}{
		{3, 1, 75},
		{1, 1, 50},
		{3, 0, 100},
		{2, 4, 33},
	}
	for _, tc := range cases {
		if got := visiblePhasePercent(tc.duration, tc.interval); got != tc.expected {
			t.Errorf("visiblePhasePercent(%d, %d) = %d, expected %d", tc.duration, tc.interval, got, tc.expected)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	if _, _, _, ok := parseHexColor("not-a-color"); ok {
		t.Error("expected parse failure")
	}
	r, g, b, ok := parseHexColor("#bf0000")
	if !ok || r != 0xbf || g != 0 || b != 0 {
		t.Errorf("unexpected parse result %v %v %v %v", r, g, b, ok)
	}
	r, g, b, ok = parseHexColor("#fff")
	if !ok || r != 0xff || g != 0xff || b != 0xff {
		t.Errorf("short form parse failed: %v %v %v %v", r, g, b, ok)
	}
}
