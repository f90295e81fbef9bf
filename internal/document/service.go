package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-salepage/internal/catalog"
	"github.com/goliatone/go-salepage/internal/logging"
	"github.com/goliatone/go-salepage/pkg/interfaces"
)

// ProductList selects which of a product grid's two lists an operation
// targets.
type ProductList string

const (
	// ListHero targets the featured products above the grid.
	ListHero ProductList = "hero"
	// ListGrid targets the regular card grid.
	ListGrid ProductList = "grid"
)

// HeaderInput carries a banner-list header authored either as raw HTML or as
// Markdown. When Markdown is set it takes precedence and is rendered to HTML.
type HeaderInput struct {
	HTML     string
	Markdown string
}

// Service exposes the document lifecycle: block operations, nested product
// operations and bulk refresh. Every operation is copy-on-write: it returns
// a new Document and never mutates its input, so a failed operation always
// leaves the caller's state intact.
type Service interface {
	New(shopID string) *Document

	AddBlock(ctx context.Context, doc *Document, blockType BlockType) (*Document, Block, error)
	RemoveBlock(ctx context.Context, doc *Document, id uuid.UUID) (*Document, error)
	MoveBlock(ctx context.Context, doc *Document, index, direction int) (*Document, error)
	UpdateBlock(ctx context.Context, doc *Document, id uuid.UUID, mutate func(Block) (Block, error)) (*Document, error)
	SetBannerHeader(ctx context.Context, doc *Document, id uuid.UUID, header HeaderInput) (*Document, error)

	AddProduct(ctx context.Context, doc *Document, blockID uuid.UUID, list ProductList, code string, dataset *catalog.Dataset) (*Document, error)
	RemoveProduct(ctx context.Context, doc *Document, blockID uuid.UUID, list ProductList, index int) (*Document, error)
	ReplaceProduct(ctx context.Context, doc *Document, blockID uuid.UUID, list ProductList, index int, code string, dataset *catalog.Dataset) (*Document, error)
	SetProductComment(ctx context.Context, doc *Document, blockID uuid.UUID, list ProductList, index int, comment string) (*Document, error)
	MoveGridProduct(ctx context.Context, doc *Document, blockID uuid.UUID, index, direction int) (*Document, error)

	Refresh(ctx context.Context, doc *Document, dataset *catalog.Dataset) (*Document, error)
}

// Dependencies lists the collaborators the document service needs.
type Dependencies struct {
	Resolver *catalog.Resolver
	Markdown interfaces.MarkdownParser
	Logger   interfaces.Logger
}

// NewService wires a document service.
func NewService(deps Dependencies) Service {
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &service{deps: deps}
}

type service struct {
	deps Dependencies
}

func (s *service) New(shopID string) *Document {
	return &Document{
		ShopID: strings.TrimSpace(shopID),
		Blocks: []Block{},
	}
}

func (s *service) AddBlock(_ context.Context, doc *Document, blockType BlockType) (*Document, Block, error) {
	if doc == nil {
		return nil, nil, ErrDocumentRequired
	}
	block := NewBlock(blockType)
	if block == nil {
		return doc, nil, fmt.Errorf("%w: %s", ErrBlockTypeUnknown, blockType)
	}

	next := doc.Clone()
	next.Blocks = append(next.Blocks, block)
	s.deps.Logger.Debug("block added", "type", string(blockType), "id", block.BlockID().String())
	return next, block, nil
}

func (s *service) RemoveBlock(_ context.Context, doc *Document, id uuid.UUID) (*Document, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	if doc.BlockByID(id) == nil {
		return doc, nil
	}

	next := doc.Clone()
	kept := next.Blocks[:0]
	for _, block := range next.Blocks {
		if block.BlockID() != id {
			kept = append(kept, block)
		}
	}
	next.Blocks = kept
	return next, nil
}

func (s *service) MoveBlock(_ context.Context, doc *Document, index, direction int) (*Document, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	target := index + direction
	if index < 0 || index >= len(doc.Blocks) || target < 0 || target >= len(doc.Blocks) {
		return doc, nil
	}

	next := doc.Clone()
	next.Blocks[index], next.Blocks[target] = next.Blocks[target], next.Blocks[index]
	return next, nil
}

func (s *service) UpdateBlock(_ context.Context, doc *Document, id uuid.UUID, mutate func(Block) (Block, error)) (*Document, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	if mutate == nil {
		return doc, nil
	}

	next := doc.Clone()
	for i, block := range next.Blocks {
		if block.BlockID() != id {
			continue
		}
		mutated, err := mutate(block.Clone())
		if err != nil {
			return doc, err
		}
		if mutated == nil || mutated.Type() != block.Type() || mutated.BlockID() != id {
			return doc, ErrBlockVariantChanged
		}
		if err := mutated.Validate(); err != nil {
			return doc, err
		}
		next.Blocks[i] = mutated
		return next, nil
	}
	return doc, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
}

func (s *service) SetBannerHeader(ctx context.Context, doc *Document, id uuid.UUID, header HeaderInput) (*Document, error) {
	html := header.HTML
	if strings.TrimSpace(header.Markdown) != "" {
		if s.deps.Markdown == nil {
			return doc, fmt.Errorf("document: markdown parser not configured")
		}
		rendered, err := s.deps.Markdown.Parse([]byte(header.Markdown))
		if err != nil {
			return doc, err
		}
		html = string(rendered)
	}

	return s.UpdateBlock(ctx, doc, id, func(block Block) (Block, error) {
		banners, ok := block.(*BannerListBlock)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %s", ErrBlockNotFound, id, block.Type())
		}
		banners.HeaderHTML = html
		return banners, nil
	})
}

func (s *service) AddProduct(_ context.Context, doc *Document, blockID uuid.UUID, list ProductList, code string, dataset *catalog.Dataset) (*Document, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	product, err := s.deps.Resolver.Resolve(code, dataset, doc.ShopID)
	if err != nil {
		return doc, err
	}

	return s.withGrid(doc, blockID, func(grid *ProductGridBlock) error {
		switch list {
		case ListHero:
			grid.HeroProducts = append(grid.HeroProducts, *product)
		default:
			grid.GridProducts = append(grid.GridProducts, *product)
		}
		return nil
	})
}

func (s *service) RemoveProduct(_ context.Context, doc *Document, blockID uuid.UUID, list ProductList, index int) (*Document, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	return s.withGrid(doc, blockID, func(grid *ProductGridBlock) error {
		products := grid.productList(list)
		if index < 0 || index >= len(*products) {
			return nil
		}
		*products = append((*products)[:index], (*products)[index+1:]...)
		return nil
	})
}

// ReplaceProduct re-resolves the slot at index using the new code. The
// operator's comment survives the swap; everything else comes from the
// fresh lookup.
func (s *service) ReplaceProduct(_ context.Context, doc *Document, blockID uuid.UUID, list ProductList, index int, code string, dataset *catalog.Dataset) (*Document, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	product, err := s.deps.Resolver.Resolve(code, dataset, doc.ShopID)
	if err != nil {
		return doc, err
	}

	return s.withGrid(doc, blockID, func(grid *ProductGridBlock) error {
		products := grid.productList(list)
		if index < 0 || index >= len(*products) {
			return fmt.Errorf("%w: %d", ErrProductIndexOutOfRange, index)
		}
		replacement := *product
		replacement.Comment = (*products)[index].Comment
		(*products)[index] = replacement
		return nil
	})
}

func (s *service) SetProductComment(_ context.Context, doc *Document, blockID uuid.UUID, list ProductList, index int, comment string) (*Document, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	return s.withGrid(doc, blockID, func(grid *ProductGridBlock) error {
		products := grid.productList(list)
		if index < 0 || index >= len(*products) {
			return fmt.Errorf("%w: %d", ErrProductIndexOutOfRange, index)
		}
		(*products)[index].Comment = comment
		return nil
	})
}

func (s *service) MoveGridProduct(_ context.Context, doc *Document, blockID uuid.UUID, index, direction int) (*Document, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	return s.withGrid(doc, blockID, func(grid *ProductGridBlock) error {
		target := index + direction
		if index < 0 || index >= len(grid.GridProducts) || target < 0 || target >= len(grid.GridProducts) {
			return nil
		}
		grid.GridProducts[index], grid.GridProducts[target] = grid.GridProducts[target], grid.GridProducts[index]
		return nil
	})
}

// Refresh re-resolves every placed product against a freshly loaded price
// list. Comments are carried forward; products whose code no longer matches
// keep their prior value untouched. Non-grid blocks pass through unchanged.
func (s *service) Refresh(_ context.Context, doc *Document, dataset *catalog.Dataset) (*Document, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}

	next := doc.Clone()
	refreshed, missed := 0, 0
	for _, block := range next.Blocks {
		grid, ok := block.(*ProductGridBlock)
		if !ok {
			continue
		}
		for _, products := range []*[]catalog.Product{&grid.HeroProducts, &grid.GridProducts} {
			for i, prior := range *products {
				found, err := s.deps.Resolver.Resolve(prior.Code, dataset, next.ShopID)
				if err != nil {
					missed++
					continue
				}
				updated := *found
				updated.Comment = prior.Comment
				(*products)[i] = updated
				refreshed++
			}
		}
	}
	s.deps.Logger.Info("products refreshed", "updated", refreshed, "missed", missed)
	return next, nil
}

// withGrid clones the document, locates the product-grid block and applies
// apply to the clone. Any error leaves the original document untouched.
func (s *service) withGrid(doc *Document, blockID uuid.UUID, apply func(*ProductGridBlock) error) (*Document, error) {
	next := doc.Clone()
	block := next.BlockByID(blockID)
	if block == nil {
		return doc, fmt.Errorf("%w: %s", ErrBlockNotFound, blockID)
	}
	grid, ok := block.(*ProductGridBlock)
	if !ok {
		return doc, fmt.Errorf("%w: %s", ErrNotProductGrid, blockID)
	}
	if err := apply(grid); err != nil {
		return doc, err
	}
	return next, nil
}

// productList maps the list selector onto the grid's backing slice.
func (b *ProductGridBlock) productList(list ProductList) *[]catalog.Product {
	if list == ListHero {
		return &b.HeroProducts
	}
	return &b.GridProducts
}
