package scraper

import (
	"regexp"
	"strings"
)

// canonicalBase is the product-page prefix a resolved ASIN canonicalizes to.
const canonicalBase = "https://www.amazon.com"

var (
	reDP        = regexp.MustCompile(`(?i)/dp/([A-Z0-9]{10})`)
	reGPProduct = regexp.MustCompile(`(?i)/gp/product/([A-Z0-9]{10})`)
)

// ExtractASIN pulls the 10-character catalog identifier out of a product URL.
// Two path shapes are recognized: /dp/<asin> and /gp/product/<asin>, matched
// case-insensitively. Returns the ASIN upper-cased, or "" if neither matches.
func ExtractASIN(url string) string {
	if m := reDP.FindStringSubmatch(url); len(m) > 1 {
		return strings.ToUpper(m[1])
	}
	if m := reGPProduct.FindStringSubmatch(url); len(m) > 1 {
		return strings.ToUpper(m[1])
	}
	return ""
}

// NormalizeURL converts any recognizable product URL to the canonical
// product-page form. URLs without a resolvable ASIN pass through unchanged.
func NormalizeURL(url string) string {
	if asin := ExtractASIN(url); asin != "" {
		return canonicalBase + "/dp/" + asin
	}
	return url
}
