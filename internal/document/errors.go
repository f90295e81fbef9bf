package document

import "errors"

var (
	// ErrDocumentRequired signals a nil document passed to an operation.
	ErrDocumentRequired = errors.New("document: document is required")
	// ErrBlockNotFound signals that no block carries the requested id.
	ErrBlockNotFound = errors.New("document: block not found")
	// ErrBlockTypeUnknown signals a block type outside the fixed variant set.
	ErrBlockTypeUnknown = errors.New("document: unknown block type")
	// ErrBlockVariantChanged signals a mutator that attempted to swap a
	// block's variant or identifier; updates must be variant preserving.
	ErrBlockVariantChanged = errors.New("document: block mutation must preserve variant and id")
	// ErrNotProductGrid signals a product operation aimed at a block of a
	// different variant.
	ErrNotProductGrid = errors.New("document: block is not a product grid")
	// ErrProductIndexOutOfRange signals a product slot index outside the list.
	ErrProductIndexOutOfRange = errors.New("document: product index out of range")
	// ErrProjectInvalid signals a saved project file that failed shape
	// validation; the current document is left untouched.
	ErrProjectInvalid = errors.New("document: project file invalid")
)
