package catalog

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-salepage/internal/logging"
	"github.com/goliatone/go-salepage/internal/pricing"
	"github.com/goliatone/go-salepage/pkg/interfaces"
)

// Resolver merges price-list rows into canonical product records.
type Resolver struct {
	cfg    Config
	logger interfaces.Logger
}

// ResolverOption customises resolver construction.
type ResolverOption func(*Resolver)

// WithLogger attaches a logger to the resolver.
func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver constructs a resolver for the given storefront settings.
// Zero-value config fields fall back to the production defaults.
func NewResolver(cfg Config, opts ...ResolverOption) *Resolver {
	defaults := DefaultConfig()
	if cfg.Domain == "" {
		cfg.Domain = defaults.Domain
	}
	if cfg.PlaceholderImageURL == "" {
		cfg.PlaceholderImageURL = defaults.PlaceholderImageURL
	}
	if cfg.FallbackName == "" {
		cfg.FallbackName = defaults.FallbackName
	}
	if cfg.Columns == (Columns{}) {
		cfg.Columns = defaults.Columns
	}

	resolver := &Resolver{
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(resolver)
	}
	return resolver
}

// Resolve looks up code in the dataset and merges every matching row into one
// product record. Later rows win for any field they fill in, modelling
// multi-row exports where a child SKU row carries the authoritative value.
// The returned product always has an empty comment; callers carry prior
// comments forward themselves.
func (r *Resolver) Resolve(code string, dataset *Dataset, shopID string) (*Product, error) {
	if strings.TrimSpace(shopID) == "" {
		return nil, ErrShopRequired
	}
	if dataset.Len() == 0 {
		return nil, ErrNoDataset
	}

	cols := r.cfg.Columns
	var (
		matched             bool
		name, price         string
		refPrice, imagePath string
	)
	for _, row := range dataset.Rows {
		if row[cols.Code] != code {
			continue
		}
		matched = true
		if strings.TrimSpace(row[cols.Name]) != "" {
			name = row[cols.Name]
		}
		rowPrice := row[cols.Price]
		if rowPrice == "" {
			rowPrice = row[cols.PriceFallback]
		}
		if strings.TrimSpace(rowPrice) != "" {
			price = rowPrice
		}
		if rp := row[cols.RefPrice]; strings.TrimSpace(rp) != "" {
			refPrice = rp
		}
		if ip := row[cols.ImagePath]; strings.TrimSpace(ip) != "" {
			imagePath = ip
		}
	}
	if !matched {
		r.logger.Debug("product code missed price list", "code", code)
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, code)
	}

	if price == "" {
		price = "0"
	}
	if name == "" {
		name = r.cfg.FallbackName
	}

	taxedRef := ""
	if refPrice != "" {
		taxedRef = pricing.TaxIncluded(refPrice)
	}

	return &Product{
		Code:     code,
		Name:     name,
		Price:    pricing.TaxIncluded(price),
		RefPrice: taxedRef,
		ImageURL: r.imageURL(imagePath, shopID),
		URL:      fmt.Sprintf("https://item.%s/%s/%s/", r.cfg.Domain, shopID, code),
		Comment:  "",
	}, nil
}

func (r *Resolver) imageURL(path, shopID string) string {
	switch {
	case strings.HasPrefix(path, "http"):
		return path
	case path != "":
		return fmt.Sprintf("https://image.%s/%s/cabinet%s", r.cfg.Domain, shopID, path)
	default:
		return r.cfg.PlaceholderImageURL
	}
}
