package catalog_test

import (
	"testing"

	"github.com/goliatone/go-salepage/internal/catalog"
)

func TestRedact(t *testing.T) {
	cases := []struct {
		name     string
		filter   string
		expected string
	}{
		{"【送料無料】サンダル", "【送料無料】", "サンダル"},
		{"【送料無料】サンダル", "", "【送料無料】サンダル"},
		{"【送料無料】あす楽 サンダル", "【送料無料】,あす楽", " サンダル"},
		// removal order follows the filter, not the name
		{"あす楽【送料無料】サンダル", "【送料無料】,あす楽", "サンダル"},
		// regex metacharacters are treated literally
		{"(50%OFF) サンダル", "(50%OFF)", " サンダル"},
		// blank terms between commas are skipped
		{"サンダル 赤", " ,赤, ", "サンダル "},
		{"サンダル", "スリッパ", "サンダル"},
	}

	for _, tc := range cases {
		if got := catalog.Redact(tc.name, tc.filter); got != tc.expected {
			t.Fatalf("Redact(%q, %q): expected %q got %q", tc.name, tc.filter, tc.expected, got)
		}
	}
}
