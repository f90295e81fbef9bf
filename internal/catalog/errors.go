package catalog

import "errors"

var (
	// ErrShopRequired signals that no shop has been selected yet.
	ErrShopRequired = errors.New("catalog: shop id is required")
	// ErrNoDataset signals that no price list has been loaded.
	ErrNoDataset = errors.New("catalog: no price list loaded")
	// ErrProductNotFound signals that the code matched no price-list row.
	ErrProductNotFound = errors.New("catalog: product code not found")
)
