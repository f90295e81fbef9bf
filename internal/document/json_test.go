package document

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestProjectRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	doc := svc.New("goodlifeshop")
	doc.PopupImage = "https://image.rakuten.co.jp/goodlifeshop/cabinet/popup.jpg"
	doc.PopupLink = "https://item.rakuten.co.jp/goodlifeshop/sale/"

	for _, bt := range BlockTypes() {
		var err error
		doc, _, err = svc.AddBlock(ctx, doc, bt)
		if err != nil {
			t.Fatalf("AddBlock(%s): %v", bt, err)
		}
	}
	gridID := doc.Blocks[len(doc.Blocks)-1].BlockID()
	doc, err := svc.AddProduct(ctx, doc, gridID, ListHero, "apron-01", testDataset())
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	saved := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	data, err := SaveProject(doc, saved)
	if err != nil {
		t.Fatalf("SaveProject: %v", err)
	}

	project, err := LoadProject(data)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if project.SavedAt != "2026-08-31T12:00:00.000Z" {
		t.Errorf("unexpected savedAt %q", project.SavedAt)
	}
	if !reflect.DeepEqual(project.Document, doc) {
		t.Errorf("round trip changed the document:\n got %+v\nwant %+v", project.Document, doc)
	}
}

func TestSaveProjectDeterministic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	doc, _, err := svc.AddBlock(ctx, svc.New("goodlifeshop"), TypeProductGrid)
	if err != nil {
		t.Fatalf("AddBlock: %v", err)
	}

	saved := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	first, err := SaveProject(doc, saved)
	if err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	second, err := SaveProject(doc, saved)
	if err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical documents must serialize to identical bytes")
	}
}

func TestLoadProjectMigratesSingularHeroFields(t *testing.T) {
	data := []byte(`{
	  "shopId": "goodlifeshop",
	  "blocks": [
	    {
	      "type": "product_grid",
	      "title": "キッチン用品",
	      "heroProduct": {"code": "apron-01", "name": "エプロン", "price": "1100"},
	      "heroBanner": {"imageUrl": "", "linkUrl": ""},
	      "gridProducts": []
	    }
	  ]
	}`)

	project, err := LoadProject(data)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	grid, ok := project.Document.Blocks[0].(*ProductGridBlock)
	if !ok {
		t.Fatalf("expected product grid, got %T", project.Document.Blocks[0])
	}
	if len(grid.HeroProducts) != 1 || grid.HeroProducts[0].Code != "apron-01" {
		t.Errorf("expected heroProduct migrated into list, got %+v", grid.HeroProducts)
	}
	// An all-empty singular banner is noise from old saves, not content.
	if len(grid.HeroBanners) != 0 {
		t.Errorf("expected empty heroBanner dropped, got %+v", grid.HeroBanners)
	}
}

func TestLoadProjectMigratesFlatTimerFields(t *testing.T) {
	data := []byte(`{
	  "shopId": "goodlifeshop",
	  "blocks": [
	    {
	      "type": "timer_banner",
	      "imageUrl": "https://image.rakuten.co.jp/goodlifeshop/cabinet/sale.jpg",
	      "linkUrl": "https://item.rakuten.co.jp/goodlifeshop/sale/",
	      "startTime": "2026-08-01T00:00",
	      "endTime": "2026-08-31T23:59"
	    }
	  ]
	}`)

	project, err := LoadProject(data)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	timer, ok := project.Document.Blocks[0].(*TimerBannerBlock)
	if !ok {
		t.Fatalf("expected timer banner, got %T", project.Document.Blocks[0])
	}
	if len(timer.Banners) != 1 {
		t.Fatalf("expected 1 migrated banner, got %d", len(timer.Banners))
	}
	banner := timer.Banners[0]
	if banner.StartTime != "2026-08-01T00:00" || banner.EndTime != "2026-08-31T23:59" {
		t.Errorf("window fields not migrated: %+v", banner)
	}
	if banner.ImageURL == "" {
		t.Error("image url not migrated")
	}
}

func TestLoadProjectBackfillsGridDefaults(t *testing.T) {
	data := []byte(`{
	  "shopId": "goodlifeshop",
	  "blocks": [{"type": "product_grid", "title": "セール"}]
	}`)

	project, err := LoadProject(data)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	grid := project.Document.Blocks[0].(*ProductGridBlock)

	if grid.BgColor != DefaultGridBgColor {
		t.Errorf("expected default background, got %q", grid.BgColor)
	}
	if grid.HeroMode != HeroModeProduct {
		t.Errorf("expected hero mode product, got %q", grid.HeroMode)
	}
	if grid.BottomButtonBgColor != DefaultBottomButtonBgColor ||
		grid.BottomButtonTextColor != DefaultBottomButtonTextColor {
		t.Errorf("expected default button colors, got %q/%q",
			grid.BottomButtonBgColor, grid.BottomButtonTextColor)
	}
	if !grid.MobileCommentShow {
		t.Error("expected comment bubbles shown by default")
	}
	if grid.MobileCommentDuration != DefaultMobileCommentDuration {
		t.Errorf("expected default duration, got %d", grid.MobileCommentDuration)
	}
	if grid.MobileCommentInterval != DefaultMobileCommentInterval {
		t.Errorf("expected default interval, got %d", grid.MobileCommentInterval)
	}
	if err := grid.Validate(); err != nil {
		t.Errorf("backfilled grid must validate: %v", err)
	}
}

func TestLoadProjectKeepsExplicitZeroInterval(t *testing.T) {
	data := []byte(`{
	  "shopId": "goodlifeshop",
	  "blocks": [{"type": "product_grid", "mobileCommentShow": false, "mobileCommentInterval": 0}]
	}`)

	project, err := LoadProject(data)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	grid := project.Document.Blocks[0].(*ProductGridBlock)
	if grid.MobileCommentShow {
		t.Error("expected explicit false to survive load")
	}
	if grid.MobileCommentInterval != 0 {
		t.Errorf("expected explicit zero interval to survive, got %d", grid.MobileCommentInterval)
	}
}

func TestLoadProjectRejectsUnknownBlockType(t *testing.T) {
	data := []byte(`{"shopId": "goodlifeshop", "blocks": [{"type": "carousel"}]}`)

	_, err := LoadProject(data)
	if !errors.Is(err, ErrProjectInvalid) {
		t.Fatalf("expected ErrProjectInvalid, got %v", err)
	}
}

func TestLoadProjectRejectsBadShape(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
	}{
		{"not json", `{"shopId": `},
		{"missing blocks", `{"shopId": "goodlifeshop"}`},
		{"blocks not array", `{"shopId": "goodlifeshop", "blocks": {}}`},
		{"block missing type", `{"shopId": "goodlifeshop", "blocks": [{}]}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadProject([]byte(tc.data)); !errors.Is(err, ErrProjectInvalid) {
				t.Fatalf("expected ErrProjectInvalid, got %v", err)
			}
		})
	}
}
