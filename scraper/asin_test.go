package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractASIN(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"dp path", "https://www.amazon.com/SomeProduct/dp/B0DEMO1234/ref=xyz", "B0DEMO1234"},
		{"gp product path", "https://www.amazon.com/gp/product/B0DEMO1234?th=1", "B0DEMO1234"},
		{"lowercase path and asin", "https://www.amazon.com/dp/b0demo1234", "B0DEMO1234"},
		{"mixed case gp", "https://www.amazon.com/GP/Product/b0DEmo1234", "B0DEMO1234"},
		{"bare canonical", "https://www.amazon.com/dp/B0TESTASIN", "B0TESTASIN"},
		{"no asin", "https://www.amazon.com/s?k=t-shirt", ""},
		{"too short", "https://www.amazon.com/dp/B0SHORT", ""},
		{"homepage", "https://www.amazon.com/", ""},
		{"not a url", "definitely not a product link", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractASIN(tt.url))
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	got := NormalizeURL("https://www.amazon.com/SomeProduct/dp/B0DEMO1234/ref=xyz")
	assert.Equal(t, "https://www.amazon.com/dp/B0DEMO1234", got)
}

func TestNormalizeURL_Idempotent(t *testing.T) {
	once := NormalizeURL("https://www.amazon.com/gp/product/b0demo1234?tag=foo")
	twice := NormalizeURL(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeURL_PassthroughWithoutASIN(t *testing.T) {
	url := "https://www.amazon.com/s?k=jeans"
	assert.Equal(t, url, NormalizeURL(url))
}
