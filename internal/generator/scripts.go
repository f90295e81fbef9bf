package generator

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-salepage/internal/document"
)

// timerScript hides countdown banners outside their configured windows. Both
// bounds are optional and checked independently against the viewer's clock.
const timerScript = `<script>
  (function(){
    var now = new Date().getTime();
    var banners = document.querySelectorAll('.timer-banner');
    if(banners.length === 0) return;
    banners.forEach(function(banner){
      var s = banner.getAttribute('data-start');
      var e = banner.getAttribute('data-end');
      var start = s ? new Date(s).getTime() : null;
      var end = e ? new Date(e).getTime() : null;
      if(start && now < start) { banner.style.display = 'none'; return; }
      if(end && now > end) { banner.style.display = 'none'; return; }
      banner.style.display = 'block';
    });
  })();
</script>
`

// navToggleScript opens the index menu on tap for viewports without hover.
const navToggleScript = `<script>
  (function(){
    var container = document.querySelector('.sale-nav-container');
    var trigger = document.querySelector('.sale-nav-trigger');
    if(!container || !trigger) return;
    trigger.addEventListener('click', function(){ container.classList.toggle('is-open'); });
  })();
</script>
`

// textFitScript steps button labels down through fixed font sizes so long
// call-to-action text stays inside the pill.
const textFitScript = `<script>
  (function(){
    document.querySelectorAll('.section-bottom-btn').forEach(function(btn){
      var len = btn.textContent.trim().length;
      if(len > 18) { btn.style.fontSize = '14px'; }
      else if(len > 12) { btn.style.fontSize = '18px'; }
      else if(len > 8) { btn.style.fontSize = '20px'; }
    });
  })();
</script>
`

// writePopup emits the popup ad overlay and its display-count gate. Nothing
// is emitted without a popup image. The view counter persists per shop in
// the viewer's browser and stops the popup after viewLimit visits.
func writePopup(page *strings.Builder, doc *document.Document, viewLimit int) {
	if doc.PopupImage == "" {
		return
	}

	page.WriteString("<div class=\"overlay\" id=\"popup\">\n  <div class=\"popup-banner\">\n")
	if doc.PopupLink != "" {
		fmt.Fprintf(page, "    <a href=\"%s\" target=\"_blank\">\n", escape(doc.PopupLink))
	}
	fmt.Fprintf(page, "    <img src=\"%s\" border=\"0\">\n", escape(doc.PopupImage))
	if doc.PopupLink != "" {
		page.WriteString("    </a>\n")
	}
	page.WriteString("    <div class=\"close-btn\" id=\"closeBtn\">× 閉じる</div>\n  </div>\n</div>\n")

	fmt.Fprintf(page, `<script>
  window.onload = function() {
    let shownCount = localStorage.getItem("popupShown_%[1]s");
    shownCount = shownCount ? parseInt(shownCount, 10) : 0;
    if (shownCount < %[2]d) {
      document.getElementById("popup").style.display = "flex";
      localStorage.setItem("popupShown_%[1]s", shownCount + 1);
    }
  };
  document.getElementById("closeBtn").onclick = function() { document.getElementById("popup").style.display = "none"; };
</script>
`, doc.ShopID, viewLimit)
}
