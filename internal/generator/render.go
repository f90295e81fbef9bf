package generator

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-salepage/internal/catalog"
	"github.com/goliatone/go-salepage/internal/document"
	"github.com/goliatone/go-salepage/internal/pricing"
)

func escape(value string) string {
	return html.EscapeString(value)
}

// writeNavigation emits the slide-out MENU panel with an index entry per
// product grid, anchored to each grid's section title.
func writeNavigation(page *strings.Builder, doc *document.Document) {
	page.WriteString("<div class=\"sale-nav-container\">\n")
	page.WriteString("  <div class=\"sale-nav-trigger\">MENU</div>\n")
	page.WriteString("  <div class=\"sale-nav-list\">\n")
	page.WriteString("    <div style=\"font-weight:bold; border-bottom:2px solid #bf0000; padding-bottom:5px; margin-bottom:5px;\">INDEX</div>\n")
	for _, grid := range doc.ProductGrids() {
		fmt.Fprintf(page, "    <a href=\"#cat-%s\">%s</a>\n", grid.ID.String(), escape(grid.Title))
	}
	page.WriteString("  </div>\n</div>\n")
}

func writeBlock(page *strings.Builder, block document.Block) {
	switch b := block.(type) {
	case *document.TopImageBlock:
		writeTopImage(page, b)
	case *document.BannerListBlock:
		writeBannerList(page, b)
	case *document.CouponListBlock:
		writeCouponList(page, b)
	case *document.CustomHTMLBlock:
		page.WriteString("<div class=\"sale-content-inner\">")
		page.WriteString("<div class=\"custom-html\">" + b.Content + "</div>")
		page.WriteString("</div>\n")
	case *document.SpacerBlock:
		fmt.Fprintf(page, "<div class=\"spacer\" style=\"height: %dpx;\"></div>\n", b.Height)
	case *document.TimerBannerBlock:
		writeTimerBanners(page, b)
	case *document.ProductGridBlock:
		writeProductGrid(page, b)
	}
}

func writeTopImage(page *strings.Builder, block *document.TopImageBlock) {
	if block.ImageURL == "" {
		return
	}
	page.WriteString("<div class=\"sale-content-inner\">\n<div class=\"top-image\">\n")
	writeLinkedImage(page, document.ImageItem{ImageURL: block.ImageURL, LinkURL: block.LinkURL}, "alt=\"Top\"")
	page.WriteString("</div>\n</div>\n")
}

func writeBannerList(page *strings.Builder, block *document.BannerListBlock) {
	if len(block.Banners) == 0 {
		return
	}
	page.WriteString("<div class=\"sale-content-inner\">\n")
	if block.HeaderHTML != "" {
		page.WriteString("<div class=\"banner-header\">" + block.HeaderHTML + "</div>\n")
	}
	if columns := bannerColumns(block.Layout); columns > 1 {
		fmt.Fprintf(page, "<div class=\"banner-grid\" style=\"grid-template-columns: repeat(%d, 1fr);\">\n", columns)
	} else {
		page.WriteString("<div class=\"banner-stack\">\n")
	}
	for _, banner := range block.Banners {
		page.WriteString("  <div class=\"banner-item\">\n")
		writeLinkedImage(page, banner, "style=\"width:100%\"")
		page.WriteString("  </div>\n")
	}
	page.WriteString("</div>\n</div>\n")
}

func writeCouponList(page *strings.Builder, block *document.CouponListBlock) {
	if len(block.Coupons) == 0 {
		return
	}
	page.WriteString("<div class=\"sale-content-inner\">\n<div class=\"coupon-grid\">\n")
	for _, coupon := range block.Coupons {
		page.WriteString("  <div class=\"coupon-item\">\n")
		writeLinkedImage(page, coupon, "style=\"width:100%\"")
		page.WriteString("  </div>\n")
	}
	page.WriteString("</div>\n</div>\n")
}

// writeTimerBanners emits each banner with its window as data attributes.
// Banners start hidden and the inline timer script reveals the in-window
// ones on the viewer's machine, so out-of-window banners never flash on
// load. Without scripts nothing shows.
func writeTimerBanners(page *strings.Builder, block *document.TimerBannerBlock) {
	visible := make([]document.TimerBannerItem, 0, len(block.Banners))
	for _, banner := range block.Banners {
		if banner.ImageURL != "" {
			visible = append(visible, banner)
		}
	}
	if len(visible) == 0 {
		return
	}

	page.WriteString("<div class=\"sale-content-inner\">\n")
	for _, banner := range visible {
		fmt.Fprintf(page, "<div class=\"timer-banner banner-stack\" data-start=\"%s\" data-end=\"%s\" style=\"margin-bottom:30px; display:none;\">\n",
			escape(banner.StartTime), escape(banner.EndTime))
		writeLinkedImage(page, banner.ImageItem, "style=\"width:100%\"")
		page.WriteString("</div>\n")
	}
	page.WriteString("</div>\n")
}

func writeProductGrid(page *strings.Builder, block *document.ProductGridBlock) {
	id := block.ID.String()
	fmt.Fprintf(page, "<div id=\"sec-%s\" class=\"cat-section-wrapper\" style=\"background-color: %s; color: %s\">\n<div class=\"sale-content-inner\">\n",
		id, escape(block.BgColor), textColorFor(block.BgColor))
	fmt.Fprintf(page, "<div id=\"cat-%s\" class=\"cat-title\">%s</div>\n", id, escape(block.Title))

	switch block.HeroMode {
	case document.HeroModeBanner:
		for _, banner := range block.HeroBanners {
			if banner.ImageURL == "" {
				continue
			}
			page.WriteString("<div style=\"margin-bottom: 20px;\">\n")
			writeLinkedImage(page, banner, "class=\"hero-banner-img\" alt=\"Featured\" style=\"width:100%\"")
			page.WriteString("</div>\n")
		}
	default:
		for _, product := range block.HeroProducts {
			writeHeroProduct(page, product, block.NameFilter)
		}
	}

	if len(block.GridProducts) > 0 {
		page.WriteString("<div class=\"grid-area\">\n")
		for _, product := range block.GridProducts {
			writeGridCard(page, product, block.NameFilter)
		}
		page.WriteString("</div>\n")
	}

	if block.BottomButtonLink != "" {
		text := block.BottomButtonText
		if text == "" {
			text = document.DefaultBottomButtonText
		}
		page.WriteString("<div style=\"text-align:center; margin-top:30px;\">\n")
		fmt.Fprintf(page, "  <a href=\"%s\" class=\"section-bottom-btn\" target=\"_blank\" style=\"background-color: %s; color: %s !important;\">%s</a>\n",
			escape(block.BottomButtonLink), escape(block.BottomButtonBgColor), escape(block.BottomButtonTextColor), escape(text))
		page.WriteString("</div>\n")
	}

	page.WriteString("</div>\n</div>\n")
}

func writeHeroProduct(page *strings.Builder, product catalog.Product, nameFilter string) {
	page.WriteString("<div class=\"hero-area\">\n  <div class=\"hero-img-container\">\n")
	fmt.Fprintf(page, "    <img src=\"%s\">\n", escape(product.ImageURL))
	if product.Comment != "" {
		fmt.Fprintf(page, "    <div class=\"comment-bubble\">%s</div>\n", escape(product.Comment))
	}
	page.WriteString("  </div>\n  <div class=\"hero-info\">\n")
	fmt.Fprintf(page, "    <div class=\"hero-name\">%s</div>\n", escape(catalog.Redact(product.Name, nameFilter)))
	writeBadge(page, product)
	writePriceBox(page, product)
	fmt.Fprintf(page, "    <a href=\"%s\" target=\"_blank\" class=\"btn-buy\" style=\"text-decoration:none !important;\">商品ページへ</a>\n", escape(product.URL))
	page.WriteString("  </div>\n</div>\n")
}

func writeGridCard(page *strings.Builder, product catalog.Product, nameFilter string) {
	page.WriteString("  <div class=\"item-card\">\n")
	fmt.Fprintf(page, "    <a href=\"%s\" target=\"_blank\" style=\"text-decoration:none; border:none;\">\n", escape(product.URL))
	page.WriteString("      <div class=\"img-wrap\">\n")
	fmt.Fprintf(page, "        <img src=\"%s\">\n", escape(product.ImageURL))
	if product.Comment != "" {
		fmt.Fprintf(page, "        <div class=\"comment-bubble\">%s</div>\n", escape(product.Comment))
	}
	page.WriteString("      </div>\n")
	fmt.Fprintf(page, "      <div class=\"grid-name\">%s</div>\n", escape(catalog.Redact(product.Name, nameFilter)))
	writeBadge(page, product)
	writePriceBox(page, product)
	page.WriteString("      <span class=\"grid-btn\">商品ページへ</span>\n    </a>\n  </div>\n")
}

// writeBadge always emits the badge element so card heights stay aligned;
// without a discount it is only hidden.
func writeBadge(page *strings.Builder, product catalog.Product) {
	label, visible := pricing.Discount(product.Price, product.RefPrice)
	if visible {
		fmt.Fprintf(page, "    <div class=\"price-badge\">%s</div>\n", escape(label))
		return
	}
	page.WriteString("    <div class=\"price-badge is-hidden\">0円OFF</div>\n")
}

func writePriceBox(page *strings.Builder, product catalog.Product) {
	page.WriteString("    <div class=\"price-box\">\n")
	if product.RefPrice != "" {
		fmt.Fprintf(page, "      <span class=\"price-ref\">%s円</span><span class=\"price-arrow\">➡</span>\n", escape(pricing.Display(product.RefPrice)))
	}
	fmt.Fprintf(page, "      <span class=\"price-sale\">%s円</span>\n    </div>\n", escape(pricing.Display(product.Price)))
}

func writeLinkedImage(page *strings.Builder, item document.ImageItem, imgAttrs string) {
	if item.LinkURL != "" {
		fmt.Fprintf(page, "    <a href=\"%s\" target=\"_blank\" style=\"text-decoration:none; border:none;\">\n", escape(item.LinkURL))
	}
	fmt.Fprintf(page, "    <img src=\"%s\" %s>\n", escape(item.ImageURL), imgAttrs)
	if item.LinkURL != "" {
		page.WriteString("    </a>\n")
	}
}

// textColorFor forces white text on dark backgrounds. The cutoff is the
// perceived luminance midpoint; unparseable colors keep the default dark
// text.
func textColorFor(bgColor string) string {
	r, g, b, ok := parseHexColor(bgColor)
	if !ok {
		return "#333"
	}
	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	if luminance < 0.5 {
		return "#fff"
	}
	return "#333"
}

func parseHexColor(value string) (r, g, b uint8, ok bool) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(value) {
	case 3:
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(parsed >> 16), uint8(parsed >> 8), uint8(parsed), true
}
