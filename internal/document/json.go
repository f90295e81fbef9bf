package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-salepage/internal/catalog"
)

// SavedAtLayout is the timestamp format written into project files.
const SavedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Project is a document plus the save timestamp, as stored on disk.
type Project struct {
	Document *Document
	SavedAt  string
}

// projectEnvelope is the on-disk shape. Blocks are kept raw so each one can
// be decoded by its type discriminator.
type projectEnvelope struct {
	ShopID     string            `json:"shopId"`
	Blocks     []json.RawMessage `json:"blocks"`
	PopupImage string            `json:"popupImage"`
	PopupLink  string            `json:"popupLink"`
	SavedAt    string            `json:"savedAt"`
}

// SaveProject serializes the document into the project file format. The
// output is stable: identical documents produce identical bytes apart from
// the timestamp.
func SaveProject(doc *Document, now time.Time) ([]byte, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}

	blocks := make([]json.RawMessage, 0, len(doc.Blocks))
	for _, block := range doc.Blocks {
		encoded, err := encodeBlock(block)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, encoded)
	}

	return json.MarshalIndent(projectEnvelope{
		ShopID:     doc.ShopID,
		Blocks:     blocks,
		PopupImage: doc.PopupImage,
		PopupLink:  doc.PopupLink,
		SavedAt:    now.UTC().Format(SavedAtLayout),
	}, "", "  ")
}

// LoadProject parses a project file, validating its shape and migrating
// fields written by earlier releases to the current block model. Any block
// with an unrecognized type rejects the whole file.
func LoadProject(data []byte) (*Project, error) {
	if err := validateProjectSchema(data); err != nil {
		return nil, err
	}

	var envelope projectEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProjectInvalid, err)
	}

	doc := &Document{
		ShopID:     envelope.ShopID,
		Blocks:     make([]Block, 0, len(envelope.Blocks)),
		PopupImage: envelope.PopupImage,
		PopupLink:  envelope.PopupLink,
	}
	for i, raw := range envelope.Blocks {
		block, err := decodeBlock(raw)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		doc.Blocks = append(doc.Blocks, block)
	}
	return &Project{Document: doc, SavedAt: envelope.SavedAt}, nil
}

// DecodeBlock parses one block in the project wire shape, applying the same
// migrations and default backfill as LoadProject. Editor transports use it to
// accept full-block updates.
func DecodeBlock(raw json.RawMessage) (Block, error) {
	return decodeBlock(raw)
}

// EncodeBlock renders one block in the project wire shape.
func EncodeBlock(block Block) (json.RawMessage, error) {
	return encodeBlock(block)
}

// encodeBlock marshals a block with its type discriminator injected. Keys
// are emitted sorted, keeping the output byte-stable across saves.
func encodeBlock(block Block) (json.RawMessage, error) {
	raw, err := json.Marshal(block)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["type"] = json.RawMessage(fmt.Sprintf("%q", block.Type()))
	return json.Marshal(fields)
}

func decodeBlock(raw json.RawMessage) (Block, error) {
	var probe struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProjectInvalid, err)
	}

	switch probe.Type {
	case TypeTopImage:
		block := &TopImageBlock{}
		if err := json.Unmarshal(raw, block); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProjectInvalid, err)
		}
		ensureBlockID(&block.ID)
		return block, nil

	case TypeBannerList:
		block := &BannerListBlock{}
		if err := json.Unmarshal(raw, block); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProjectInvalid, err)
		}
		ensureBlockID(&block.ID)
		if block.Banners == nil {
			block.Banners = []ImageItem{}
		}
		if strings.TrimSpace(block.Layout) == "" {
			block.Layout = DefaultBannerLayout
		}
		return block, nil

	case TypeCouponList:
		block := &CouponListBlock{}
		if err := json.Unmarshal(raw, block); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProjectInvalid, err)
		}
		ensureBlockID(&block.ID)
		if block.Coupons == nil {
			block.Coupons = []ImageItem{}
		}
		return block, nil

	case TypeCustomHTML:
		block := &CustomHTMLBlock{}
		if err := json.Unmarshal(raw, block); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProjectInvalid, err)
		}
		ensureBlockID(&block.ID)
		return block, nil

	case TypeSpacer:
		block := &SpacerBlock{}
		if err := json.Unmarshal(raw, block); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProjectInvalid, err)
		}
		ensureBlockID(&block.ID)
		if block.Height == 0 {
			block.Height = DefaultSpacerHeight
		}
		return block, nil

	case TypeTimerBanner:
		return decodeTimerBanner(raw)

	case TypeProductGrid:
		return decodeProductGrid(raw)

	default:
		return nil, fmt.Errorf("%w: unknown block type %q", ErrProjectInvalid, probe.Type)
	}
}

// decodeTimerBanner accepts both the current banner-list shape and the
// original single-banner shape whose image and window fields sat directly on
// the block.
func decodeTimerBanner(raw json.RawMessage) (Block, error) {
	var envelope struct {
		TimerBannerBlock
		ImageURL  string `json:"imageUrl"`
		LinkURL   string `json:"linkUrl"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProjectInvalid, err)
	}

	block := envelope.TimerBannerBlock
	ensureBlockID(&block.ID)
	if block.Banners == nil {
		block.Banners = []TimerBannerItem{
			{
				ImageItem: ImageItem{ImageURL: envelope.ImageURL, LinkURL: envelope.LinkURL},
				StartTime: envelope.StartTime,
				EndTime:   envelope.EndTime,
			},
		}
	}
	return &block, nil
}

// decodeProductGrid migrates the original single hero fields to the list
// model and backfills the optional styling fields added since.
func decodeProductGrid(raw json.RawMessage) (Block, error) {
	var envelope struct {
		ProductGridBlock
		HeroProduct *catalog.Product `json:"heroProduct"`
		HeroBanner  *ImageItem       `json:"heroBanner"`

		MobileCommentShow     *bool `json:"mobileCommentShow"`
		MobileCommentDuration *int  `json:"mobileCommentDuration"`
		MobileCommentInterval *int  `json:"mobileCommentInterval"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProjectInvalid, err)
	}

	block := envelope.ProductGridBlock
	ensureBlockID(&block.ID)

	if block.HeroProducts == nil {
		block.HeroProducts = []catalog.Product{}
		if envelope.HeroProduct != nil && *envelope.HeroProduct != (catalog.Product{}) {
			block.HeroProducts = append(block.HeroProducts, *envelope.HeroProduct)
		}
	}
	if block.HeroBanners == nil {
		block.HeroBanners = []ImageItem{}
		if envelope.HeroBanner != nil && *envelope.HeroBanner != (ImageItem{}) {
			block.HeroBanners = append(block.HeroBanners, *envelope.HeroBanner)
		}
	}
	if block.GridProducts == nil {
		block.GridProducts = []catalog.Product{}
	}

	if block.HeroMode == "" {
		block.HeroMode = HeroModeProduct
	}
	if block.BgColor == "" {
		block.BgColor = DefaultGridBgColor
	}
	if block.BottomButtonBgColor == "" {
		block.BottomButtonBgColor = DefaultBottomButtonBgColor
	}
	if block.BottomButtonTextColor == "" {
		block.BottomButtonTextColor = DefaultBottomButtonTextColor
	}

	block.MobileCommentShow = envelope.MobileCommentShow == nil || *envelope.MobileCommentShow
	if envelope.MobileCommentDuration != nil && *envelope.MobileCommentDuration > 0 {
		block.MobileCommentDuration = *envelope.MobileCommentDuration
	} else {
		block.MobileCommentDuration = DefaultMobileCommentDuration
	}
	if envelope.MobileCommentInterval != nil && *envelope.MobileCommentInterval >= 0 {
		block.MobileCommentInterval = *envelope.MobileCommentInterval
	} else {
		block.MobileCommentInterval = DefaultMobileCommentInterval
	}

	return &block, nil
}

// ensureBlockID backfills identifiers for blocks saved before ids existed.
func ensureBlockID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

const projectSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["shopId", "blocks"],
  "properties": {
    "shopId": {"type": "string"},
    "popupImage": {"type": "string"},
    "popupLink": {"type": "string"},
    "savedAt": {"type": "string"},
    "blocks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type"],
        "properties": {
          "type": {"type": "string"}
        }
      }
    }
  }
}`

var (
	projectSchemaOnce     sync.Once
	projectSchemaCompiled *jsonschema.Schema
	projectSchemaErr      error
)

func compiledProjectSchema() (*jsonschema.Schema, error) {
	projectSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("project.schema.json", strings.NewReader(projectSchema)); err != nil {
			projectSchemaErr = err
			return
		}
		projectSchemaCompiled, projectSchemaErr = compiler.Compile("project.schema.json")
	})
	return projectSchemaCompiled, projectSchemaErr
}

func validateProjectSchema(data []byte) error {
	schema, err := compiledProjectSchema()
	if err != nil {
		return err
	}
	var instance any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&instance); err != nil {
		return fmt.Errorf("%w: %v", ErrProjectInvalid, err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("%w: %v", ErrProjectInvalid, err)
	}
	return nil
}
