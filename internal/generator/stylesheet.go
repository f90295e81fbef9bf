package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-salepage/internal/document"
)

// baseStylesheet is the fixed page styling shared by every export. Block
// specific rules (banner grid columns, comment bubble timing) are generated
// per document by writeDocumentStyles.
const baseStylesheet = `  body { margin: 0; padding: 0; font-family: "Hiragino Kaku Gothic ProN", "Meiryo", sans-serif; line-height: 1.6; color: #333; }
  * { box-sizing: border-box; }
  img { max-width: 100%; height: auto; display: block; margin: 0 auto; border: none !important; outline: none !important; }

  #rakuten-sale-app a {
    text-decoration: none !important; color: inherit !important; transition: opacity 0.3s; display: block;
    border: none !important; outline: none !important; box-shadow: none !important;
  }
  #rakuten-sale-app a:hover { opacity: 0.9; text-decoration: none !important; border: none !important; }

  .sale-content-inner { max-width: 900px; margin: 0 auto; padding: 0 10px; position: relative; }

  .sale-nav-container { position: fixed; left: 0; top: 20%; z-index: 9999; transform: translateX(-100%); transition: transform 0.3s; display: flex; }
  .sale-nav-container:hover, .sale-nav-container.is-open { transform: translateX(0); }
  .sale-nav-trigger { background: #333; color: #fff; width: 40px; padding: 15px 0; display: flex; align-items: center; justify-content: center; font-weight: bold; cursor: pointer; border-radius: 0 8px 8px 0; writing-mode: vertical-rl; letter-spacing: 2px; box-shadow: 2px 2px 5px rgba(0,0,0,0.2); position: absolute; left: 100%; top: 0; }
  .sale-nav-list { background: rgba(255,255,255,0.95); border: 1px solid #ddd; border-left: none; box-shadow: 2px 2px 10px rgba(0,0,0,0.1); padding: 15px; min-width: 200px; display: flex; flex-direction: column; gap: 10px; border-radius: 0 0 8px 0; }
  .sale-nav-list a { display: block; font-size: 14px; color: #333 !important; padding: 8px; border-bottom: 1px dashed #eee !important; }
  .sale-nav-list a:hover { color: #bf0000 !important; padding-left: 12px; }

  .top-image { margin-bottom: 20px; width: 100%; }
  .banner-header { margin-bottom: 15px; }
  .banner-stack { display: flex; flex-direction: column; gap: 15px; margin-bottom: 30px; }
  .banner-grid { display: grid; gap: 15px; margin-bottom: 30px; }
  .coupon-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 15px; margin-bottom: 30px; }

  .cat-section-wrapper { width: 100%; padding: 40px 0; margin-bottom: 0; }
  .cat-title { text-align: center; font-size: 26px; font-weight: bold; margin: 0 0 40px; padding: 10px 0; letter-spacing: 3px; position: relative; color: inherit; animation: titlePulse 3s ease-in-out infinite; }
  .cat-title::after { content: ''; display: block; width: 50px; height: 3px; background: #bf0000; margin: 15px auto 0; transition: width 0.3s; animation: lineSway 3s ease-in-out infinite; }

  .hero-area {
    display: flex; border: 1px solid #eee; margin-bottom: 30px; background:#fff;
    box-shadow: 0 4px 12px rgba(0,0,0,0.08); border-radius: 8px;
    color:#333; position: relative; overflow: visible !important; z-index: 10;
  }
  .hero-area:hover { z-index: 50; }

  .hero-img-container { width: 50%; position: relative; }
  .hero-img-container img { width: 100%; height: 100%; object-fit: cover; border-radius: 8px 0 0 8px; }
  .hero-info { width: 50%; padding: 30px; display: flex; flex-direction: column; justify-content: center; text-align: center; }
  .hero-name { font-size: 18px; font-weight: bold; margin-bottom: 15px; }

  .price-badge { display: inline-block; background: #bf0000; color: #fff; font-weight: bold; font-size: 14px; padding: 4px 14px; border-radius: 20px; margin: 0 auto 10px; }
  .price-badge.is-hidden { visibility: hidden; }
  .price-box { margin: 15px 0; display: flex; justify-content: center; align-items: baseline; gap: 10px; flex-wrap: wrap; }
  .price-ref { color: #999; text-decoration: line-through; font-size: 14px; }
  .price-arrow { color: #ccc; font-size: 12px; margin: 0 5px; display: inline-block; }
  .price-sale { color: #bf0000; font-weight: bold; font-family: Arial; }
  .hero-info .price-sale { font-size: 36px; }
  .btn-buy { background: linear-gradient(to bottom, #d90000, #bf0000); color: white !important; padding: 12px 40px; border-radius: 30px; font-weight: bold; display:inline-block; margin-top:15px; text-decoration: none !important; }

  .grid-area { display: grid; grid-template-columns: repeat(4, 1fr); gap: 15px; color:#333; }
  .item-card {
    border: 1px solid #f0f0f0; padding: 10px; text-align: center; background:#fff;
    display: flex; flex-direction: column; justify-content: space-between; height: 100%;
    border-radius: 6px; transition: all 0.3s; position: relative; top: 0;
    overflow: visible !important; z-index: 10;
  }
  .item-card:hover { top: -5px; border-color: #ffd1d1; box-shadow: 0 10px 20px rgba(0,0,0,0.1); z-index: 50; }
  .item-card .price-badge { font-size: 11px; padding: 2px 10px; margin: 0 0 4px auto; }

  .img-wrap { position: relative; width: 100%; margin-bottom: 8px; }
  .img-wrap img { width: 100%; height: 180px; object-fit: contain; }
  .grid-name { font-size: 13px; height: 90px; overflow: hidden; line-height: 1.4; margin-bottom: 5px; text-align: left; color: #555; display: -webkit-box; -webkit-line-clamp: 5; -webkit-box-orient: vertical; }
  .item-card .price-box { justify-content: flex-end; padding-right: 5px; margin: 5px 0 0; }
  .item-card .price-sale { font-size: 18px; }

  .grid-btn {
    display: block;
    background: #bf0000; color: #fff !important;
    text-align: center;
    padding: 10px 0;
    margin-top: 8px; border-radius: 4px;
    font-weight: bold;
    font-size: 15px;
    transition: opacity 0.2s; text-decoration: none !important;
  }
  .item-card:hover .grid-btn { opacity: 0.8; }

  .section-bottom-btn {
    display: inline-block;
    padding: 20px 80px;
    border-radius: 50px;
    font-weight: bold;
    text-decoration: none !important;
    box-shadow: 0 5px 15px rgba(0,0,0,0.2);
    transition: transform 0.2s;
    font-size: 24px;
  }
  .section-bottom-btn:hover { transform: translateY(-2px); opacity: 0.9; }

  .comment-bubble {
    position: absolute; bottom: 100%; left: 50%; transform: translateX(-50%); margin-bottom: 10px;
    background: #333; color: #fff; padding: 8px 12px; border-radius: 6px;
    font-size: 12px; font-weight: bold; width: 180px; text-align: center;
    pointer-events: none; z-index: 9999;
    box-shadow: 0 4px 10px rgba(0,0,0,0.2); opacity: 0; visibility: hidden; transition: all 0.3s;
  }
  .comment-bubble::after { content: ''; position: absolute; top: 100%; left: 50%; margin-left: -6px; border-width: 6px; border-style: solid; border-color: #333 transparent transparent transparent; }
  .item-card:hover .comment-bubble, .hero-img-container:hover .comment-bubble { opacity: 1; visibility: visible; transform: translateX(-50%) translateY(-5px); }

  .spacer { width: 100%; }

  .overlay { position: fixed; top: 0; left: 0; width: 100%; height: 100%; background: rgba(0,0,0,0.6); display: none; justify-content: center; align-items: center; z-index: 10000; }
  .popup-banner { background: transparent; padding: 0; text-align: center; position: relative; }
  .popup-banner img { width: 900px; max-width: 95%; display: block; margin: 0 auto; }
  .popup-banner .close-btn { display: inline-block; margin-top: 15px; padding: 10px 30px; font-size: 24px; font-weight: bold; color: #fff; background: #333; border-radius: 8px; cursor: pointer; box-shadow: 0 0 6px rgba(0,0,0,0.4); transition: 0.2s ease; }
  .popup-banner .close-btn:hover { background: #555; }

  @keyframes titlePulse { 0%, 100% { transform: scale(1); } 50% { transform: scale(1.05); } }
  @keyframes lineSway { 0%, 100% { width: 50px; } 50% { width: 100px; } }

  @media screen and (max-width: 1024px) {
    .hero-area { flex-direction: column; }
    .hero-img-container { width: 100%; }
    .hero-img-container img { border-radius: 8px 8px 0 0; }
    .hero-info { width: 100%; }
    .grid-area { display: grid !important; grid-template-columns: 1fr 1fr !important; gap: 8px !important; }
    .banner-grid { grid-template-columns: 1fr !important; }
    .grid-name { font-size: 12px; height: 84px; }
    .sale-nav-trigger { width: 30px; font-size: 12px; padding: 10px 0; }

    .comment-bubble {
       top: auto !important; bottom: 0 !important; left: 0 !important; width: 100% !important; margin: 0 !important;
       border-radius: 0 0 4px 4px !important; background: rgba(0,0,0,0.75) !important; transform: none !important;
    }
    .comment-bubble::after {
      display: block !important; top: auto !important; bottom: 100% !important; left: 50% !important;
      border-color: transparent transparent rgba(0,0,0,0.75) transparent !important;
    }
  }
`

// writeDocumentStyles emits the per-block rules: one comment bubble keyframe
// per product grid and a hide rule when bubbles are disabled. Each animation
// is keyed by the block id so grids with different timings never collide.
func writeDocumentStyles(page *strings.Builder, doc *document.Document) {
	grids := doc.ProductGrids()
	if len(grids) == 0 {
		return
	}

	page.WriteString("\n  @media screen and (max-width: 1024px) {\n")
	for _, grid := range grids {
		id := grid.ID.String()
		if !grid.MobileCommentShow {
			fmt.Fprintf(page, "    #sec-%s .comment-bubble { display: none !important; }\n", id)
			continue
		}
		total := grid.MobileCommentDuration + grid.MobileCommentInterval
		fmt.Fprintf(page, "    #sec-%s .comment-bubble { animation: bubbleLoop-%s %ds infinite !important; }\n", id, id, total)
	}
	page.WriteString("  }\n")

	for _, grid := range grids {
		if !grid.MobileCommentShow {
			continue
		}
		id := grid.ID.String()
		visible := visiblePhasePercent(grid.MobileCommentDuration, grid.MobileCommentInterval)
		if visible >= 100 {
			fmt.Fprintf(page, "  @keyframes bubbleLoop-%s { 0%%, 100%% { opacity: 1; visibility: visible; } }\n", id)
			continue
		}
		fmt.Fprintf(page, "  @keyframes bubbleLoop-%s { 0%%, %d%% { opacity: 1; visibility: visible; } %d%%, 100%% { opacity: 0; visibility: hidden; } }\n",
			id, visible, visible+1)
	}
}

// visiblePhasePercent sizes the visible phase of the bubble loop in whole
// percent: duration seconds on, interval seconds off.
func visiblePhasePercent(duration, interval int) int {
	total := duration + interval
	if total <= 0 {
		return 100
	}
	return duration * 100 / total
}

// bannerColumns parses the banner list layout into a column count, treating
// anything unrecognized as the single-column stack.
func bannerColumns(layout string) int {
	columns, err := strconv.Atoi(strings.TrimSpace(layout))
	if err != nil || columns < 1 || columns > 4 {
		return 1
	}
	return columns
}
