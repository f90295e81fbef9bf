// Package importer ingests storefront price-list exports (dl-normal-item.csv)
// into catalog datasets. The exports are Shift-JIS encoded with a header row.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/goliatone/go-salepage/internal/catalog"
	"github.com/goliatone/go-salepage/internal/logging"
	"github.com/goliatone/go-salepage/pkg/interfaces"
)

var (
	// ErrEmptyFile signals a price list without a header row.
	ErrEmptyFile = errors.New("importer: price list has no header row")
)

// Encoding selects the character encoding of the uploaded file.
type Encoding string

const (
	// EncodingShiftJIS is the storefront export default.
	EncodingShiftJIS Encoding = "shift-jis"
	// EncodingUTF8 covers files re-saved by spreadsheet tools.
	EncodingUTF8 Encoding = "utf-8"
)

// Service parses uploaded price lists into datasets.
type Service struct {
	logger interfaces.Logger
}

// Option customises importer construction.
type Option func(*Service)

// WithLogger attaches a logger to the importer.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a price-list importer.
func New(opts ...Option) *Service {
	svc := &Service{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Parse reads a CSV price list into a dataset. The reader is consumed fully;
// parsing is not considered finished until every row has been decoded. Blank
// lines are skipped and short rows tolerated, matching the storefront's
// somewhat loose export format.
func (s *Service) Parse(r io.Reader, source string, enc Encoding) (*catalog.Dataset, error) {
	if enc == "" || enc == EncodingShiftJIS {
		r = transform.NewReader(r, japanese.ShiftJIS.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("importer: read header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	rows := make([]catalog.Row, 0, 256)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: read row %d: %w", len(rows)+2, err)
		}
		row := make(catalog.Row, len(header))
		blank := true
		for i, value := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = value
			if strings.TrimSpace(value) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}

	s.logger.Info("price list parsed", "source", source, "rows", len(rows))
	return &catalog.Dataset{Source: source, Rows: rows}, nil
}
