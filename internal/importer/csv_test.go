package importer_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/goliatone/go-salepage/internal/importer"
)

func TestParseUTF8(t *testing.T) {
	svc := importer.New()
	input := strings.Join([]string{
		"商品管理番号（商品URL）,商品名,通常購入販売価格",
		"ab-123,サンダル,1000",
		",,",
		"ab-123,,1200",
	}, "\n")

	dataset, err := svc.Parse(strings.NewReader(input), "dl-normal-item.csv", importer.EncodingUTF8)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if dataset.Len() != 2 {
		t.Fatalf("expected blank row skipped, got %d rows", dataset.Len())
	}
	if dataset.Rows[0]["商品名"] != "サンダル" {
		t.Fatalf("unexpected first row %v", dataset.Rows[0])
	}
	if dataset.Rows[1]["通常購入販売価格"] != "1200" {
		t.Fatalf("unexpected second row %v", dataset.Rows[1])
	}
	if dataset.Source != "dl-normal-item.csv" {
		t.Fatalf("unexpected source %s", dataset.Source)
	}
}

func TestParseStripsByteOrderMark(t *testing.T) {
	svc := importer.New()
	input := "\ufeff商品管理番号（商品URL）,商品名,通常購入販売価格\nab-123,サンダル,1000\n"

	dataset, err := svc.Parse(strings.NewReader(input), "dl-normal-item.csv", importer.EncodingUTF8)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if dataset.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", dataset.Len())
	}
	if got := dataset.Rows[0]["商品管理番号（商品URL）"]; got != "ab-123" {
		t.Fatalf("expected BOM stripped from first header, got row %v", dataset.Rows[0])
	}
}

func TestParseShiftJIS(t *testing.T) {
	svc := importer.New()
	utf8Input := "商品管理番号（商品URL）,商品名\nab-123,【送料無料】サンダル\n"

	var encoded bytes.Buffer
	writer := transform.NewWriter(&encoded, japanese.ShiftJIS.NewEncoder())
	if _, err := writer.Write([]byte(utf8Input)); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}

	dataset, err := svc.Parse(&encoded, "dl-normal-item.csv", importer.EncodingShiftJIS)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if dataset.Len() != 1 {
		t.Fatalf("expected 1 row got %d", dataset.Len())
	}
	if dataset.Rows[0]["商品名"] != "【送料無料】サンダル" {
		t.Fatalf("expected decoded name got %q", dataset.Rows[0]["商品名"])
	}
}

func TestParseEmptyFile(t *testing.T) {
	svc := importer.New()
	if _, err := svc.Parse(strings.NewReader(""), "empty.csv", importer.EncodingUTF8); !errors.Is(err, importer.ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile got %v", err)
	}
}
