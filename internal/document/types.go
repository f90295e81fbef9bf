package document

import (
	"slices"

	"github.com/google/uuid"

	"github.com/goliatone/go-salepage/internal/catalog"
)

// BlockType discriminates the fixed set of page block variants. The string
// values double as the wire format in saved project files.
type BlockType string

const (
	TypeTopImage    BlockType = "top_image"
	TypeBannerList  BlockType = "banner_list"
	TypeCouponList  BlockType = "coupon_list"
	TypeCustomHTML  BlockType = "custom_html"
	TypeSpacer      BlockType = "spacer"
	TypeTimerBanner BlockType = "timer_banner"
	TypeProductGrid BlockType = "product_grid"
)

// BlockTypes lists every variant in a stable order.
func BlockTypes() []BlockType {
	return []BlockType{
		TypeTopImage,
		TypeBannerList,
		TypeCouponList,
		TypeCustomHTML,
		TypeSpacer,
		TypeTimerBanner,
		TypeProductGrid,
	}
}

// Block is the closed sum over the seven content block variants. Every block
// carries a stable random identifier assigned at creation; the id anchors DOM
// fragments and navigation links in generated pages and never changes.
type Block interface {
	Type() BlockType
	BlockID() uuid.UUID
	// Clone returns a deep copy so copy-on-write document updates never
	// alias block-owned slices.
	Clone() Block
	// Validate reports user-input errors on the block's current field values.
	Validate() error
}

// ImageItem is a linked image used by banners, coupons and hero banners. It
// has no identity beyond its position in the containing list.
type ImageItem struct {
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl"`
}

// TimerBannerItem is a linked banner visible only inside its time window.
// Either bound may be empty, meaning unbounded on that side. Times are local
// datetime strings (2006-01-02T15:04) evaluated by the exported page itself.
type TimerBannerItem struct {
	ImageItem
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// HeroMode selects what a product grid features above its card grid.
type HeroMode string

const (
	HeroModeProduct HeroMode = "product"
	HeroModeBanner  HeroMode = "banner"
)

// TopImageBlock renders a full-width image, optionally linked.
type TopImageBlock struct {
	ID       uuid.UUID `json:"id"`
	ImageURL string    `json:"imageUrl"`
	LinkURL  string    `json:"linkUrl"`
}

// BannerListBlock renders a stack or grid of linked banners with an optional
// HTML header above it.
type BannerListBlock struct {
	ID         uuid.UUID   `json:"id"`
	Banners    []ImageItem `json:"banners"`
	Layout     string      `json:"layout"`
	HeaderHTML string      `json:"headerHtml"`
}

// CouponListBlock renders coupon images in a fixed two-column grid.
type CouponListBlock struct {
	ID      uuid.UUID   `json:"id"`
	Coupons []ImageItem `json:"coupons"`
}

// CustomHTMLBlock injects operator-trusted markup verbatim.
type CustomHTMLBlock struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
}

// SpacerBlock inserts fixed vertical whitespace between sections.
type SpacerBlock struct {
	ID     uuid.UUID `json:"id"`
	Height int       `json:"height"`
}

// TimerBannerBlock renders banners that the exported page shows only inside
// their configured windows.
type TimerBannerBlock struct {
	ID      uuid.UUID         `json:"id"`
	Banners []TimerBannerItem `json:"banners"`
}

// ProductGridBlock is a titled product section: a hero area (featured
// products or banners), a card grid, and an optional call-to-action button.
type ProductGridBlock struct {
	ID           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	BgColor      string            `json:"bgColor"`
	HeroMode     HeroMode          `json:"heroMode"`
	HeroProducts []catalog.Product `json:"heroProducts"`
	HeroBanners  []ImageItem       `json:"heroBanners"`
	GridProducts []catalog.Product `json:"gridProducts"`

	BottomButtonText      string `json:"bottomButtonText"`
	BottomButtonLink      string `json:"bottomButtonLink"`
	BottomButtonBgColor   string `json:"bottomButtonBgColor"`
	BottomButtonTextColor string `json:"bottomButtonTextColor"`

	// NameFilter holds comma-separated redaction terms stripped from product
	// names at render time.
	NameFilter string `json:"nameFilter"`

	// Comment bubble behaviour on narrow viewports.
	MobileCommentShow     bool `json:"mobileCommentShow"`
	MobileCommentDuration int  `json:"mobileCommentDuration"`
	MobileCommentInterval int  `json:"mobileCommentInterval"`
}

// Document is the full editable state: shop identity, the ordered block list
// and the popup ad settings. Block order is the export order.
type Document struct {
	ShopID     string  `json:"shopId"`
	Blocks     []Block `json:"blocks"`
	PopupImage string  `json:"popupImage"`
	PopupLink  string  `json:"popupLink"`
}

func (b *TopImageBlock) Type() BlockType    { return TypeTopImage }
func (b *BannerListBlock) Type() BlockType  { return TypeBannerList }
func (b *CouponListBlock) Type() BlockType  { return TypeCouponList }
func (b *CustomHTMLBlock) Type() BlockType  { return TypeCustomHTML }
func (b *SpacerBlock) Type() BlockType      { return TypeSpacer }
func (b *TimerBannerBlock) Type() BlockType { return TypeTimerBanner }
func (b *ProductGridBlock) Type() BlockType { return TypeProductGrid }

func (b *TopImageBlock) BlockID() uuid.UUID    { return b.ID }
func (b *BannerListBlock) BlockID() uuid.UUID  { return b.ID }
func (b *CouponListBlock) BlockID() uuid.UUID  { return b.ID }
func (b *CustomHTMLBlock) BlockID() uuid.UUID  { return b.ID }
func (b *SpacerBlock) BlockID() uuid.UUID      { return b.ID }
func (b *TimerBannerBlock) BlockID() uuid.UUID { return b.ID }
func (b *ProductGridBlock) BlockID() uuid.UUID { return b.ID }

func (b *TopImageBlock) Clone() Block {
	cloned := *b
	return &cloned
}

func (b *BannerListBlock) Clone() Block {
	cloned := *b
	cloned.Banners = slices.Clone(b.Banners)
	return &cloned
}

func (b *CouponListBlock) Clone() Block {
	cloned := *b
	cloned.Coupons = slices.Clone(b.Coupons)
	return &cloned
}

func (b *CustomHTMLBlock) Clone() Block {
	cloned := *b
	return &cloned
}

func (b *SpacerBlock) Clone() Block {
	cloned := *b
	return &cloned
}

func (b *TimerBannerBlock) Clone() Block {
	cloned := *b
	cloned.Banners = slices.Clone(b.Banners)
	return &cloned
}

func (b *ProductGridBlock) Clone() Block {
	cloned := *b
	cloned.HeroProducts = slices.Clone(b.HeroProducts)
	cloned.HeroBanners = slices.Clone(b.HeroBanners)
	cloned.GridProducts = slices.Clone(b.GridProducts)
	return &cloned
}

// Clone deep-copies the document so operations can return a new value while
// the caller's copy stays untouched.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	cloned := *d
	cloned.Blocks = make([]Block, len(d.Blocks))
	for i, block := range d.Blocks {
		cloned.Blocks[i] = block.Clone()
	}
	return &cloned
}

// BlockByID returns the block with the given id, or nil when absent.
func (d *Document) BlockByID(id uuid.UUID) Block {
	for _, block := range d.Blocks {
		if block.BlockID() == id {
			return block
		}
	}
	return nil
}

// ProductGrids returns the product-grid blocks in document order; the
// generator builds the page navigation index from their titles.
func (d *Document) ProductGrids() []*ProductGridBlock {
	grids := make([]*ProductGridBlock, 0, len(d.Blocks))
	for _, block := range d.Blocks {
		if grid, ok := block.(*ProductGridBlock); ok {
			grids = append(grids, grid)
		}
	}
	return grids
}

// Defaults applied when a block of each variant is created, and backfilled
// for optional fields missing from older project files.
const (
	DefaultSpacerHeight          = 50
	DefaultBannerLayout          = "1"
	DefaultGridTitle             = "カテゴリ名"
	DefaultGridBgColor           = "#ffffff"
	DefaultBottomButtonText      = "もっと見る"
	DefaultBottomButtonBgColor   = "#bf0000"
	DefaultBottomButtonTextColor = "#ffffff"
	DefaultMobileCommentDuration = 3
	DefaultMobileCommentInterval = 1
)

// NewBlock constructs a block of the requested variant with its documented
// defaults and a freshly generated identifier. Unknown types return nil.
func NewBlock(blockType BlockType) Block {
	id := uuid.New()
	switch blockType {
	case TypeTopImage:
		return &TopImageBlock{ID: id}
	case TypeBannerList:
		return &BannerListBlock{
			ID:      id,
			Banners: []ImageItem{},
			Layout:  DefaultBannerLayout,
		}
	case TypeCouponList:
		return &CouponListBlock{ID: id, Coupons: []ImageItem{}}
	case TypeCustomHTML:
		return &CustomHTMLBlock{ID: id}
	case TypeSpacer:
		return &SpacerBlock{ID: id, Height: DefaultSpacerHeight}
	case TypeTimerBanner:
		return &TimerBannerBlock{ID: id, Banners: []TimerBannerItem{}}
	case TypeProductGrid:
		return &ProductGridBlock{
			ID:                    id,
			Title:                 DefaultGridTitle,
			BgColor:               DefaultGridBgColor,
			HeroMode:              HeroModeProduct,
			HeroProducts:          []catalog.Product{},
			HeroBanners:           []ImageItem{},
			GridProducts:          []catalog.Product{},
			BottomButtonBgColor:   DefaultBottomButtonBgColor,
			BottomButtonTextColor: DefaultBottomButtonTextColor,
			MobileCommentShow:     true,
			MobileCommentDuration: DefaultMobileCommentDuration,
			MobileCommentInterval: DefaultMobileCommentInterval,
		}
	default:
		return nil
	}
}
