package scraper

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Se9uencer/FitCheck/models"
)

// UnknownTitle is the sentinel used when no title selector matches.
const UnknownTitle = "Unknown Product"

const (
	maxImages       = 10
	maxFeatures     = 10
	maxDescription  = 2000
	minDescription  = 20
	minFeatureChars = 5
)

// Each extractor is an independent, best-effort pass over the parsed
// document: an ordered selector chain where the first usable text wins and
// absence is a normal outcome, never an error.

func extractTitle(doc *goquery.Document) string {
	selectors := []string{
		"#productTitle",
		"#title span",
		"h1.a-size-large",
		"h1#title",
	}
	for _, sel := range selectors {
		if title := strings.TrimSpace(doc.Find(sel).First().Text()); title != "" {
			return title
		}
	}
	return UnknownTitle
}

var (
	reBrandPrefix = regexp.MustCompile(`^(Visit the |Brand:\s*|Store\s*)`)
	reBrandSuffix = regexp.MustCompile(`\s+Store$`)
)

func extractBrand(doc *goquery.Document) string {
	selectors := []string{
		"#bylineInfo",
		"a#bylineInfo",
		".po-brand .a-span9 .a-size-base",
	}
	for _, sel := range selectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		text = reBrandPrefix.ReplaceAllString(text, "")
		text = reBrandSuffix.ReplaceAllString(text, "")
		if text != "" {
			return text
		}
	}
	return ""
}

// extractPrice returns the current and original (strikethrough) price
// independently; either half may be empty. A candidate only counts when its
// text carries the currency symbol, which filters out empty offscreen spans.
func extractPrice(doc *goquery.Document) (current, original string) {
	priceSelectors := []string{
		".a-price .a-offscreen",
		"#priceblock_ourprice",
		"#priceblock_dealprice",
		"span.a-price span.a-offscreen",
		"#corePrice_feature_buybox .a-offscreen",
	}
	for _, sel := range priceSelectors {
		doc.Find(sel).EachWithBreak(func(i int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if text != "" && strings.Contains(text, "$") {
				current = text
				return false
			}
			return true
		})
		if current != "" {
			break
		}
	}

	originalSelectors := []string{
		".a-text-price .a-offscreen",
		".basisPrice .a-offscreen",
	}
	for _, sel := range originalSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" && strings.Contains(text, "$") {
			original = text
			break
		}
	}

	return current, original
}

var imagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"hiRes"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"large"\s*:\s*"([^"]+)"`),
}

// extractImages collects image URLs in two phases: embedded-JSON keys in the
// raw HTML first, then img-tag fallbacks. Order is first-seen, duplicates are
// dropped by exact URL, the list is capped at 10.
func extractImages(doc *goquery.Document, html string) (mainImage string, images []string) {
	seen := make(map[string]bool)
	add := func(url string) {
		if url != "" && !seen[url] {
			seen[url] = true
			images = append(images, url)
		}
	}

	for _, re := range imagePatterns {
		for _, m := range re.FindAllStringSubmatch(html, -1) {
			if strings.Contains(m[1], "images-amazon") {
				add(m[1])
			}
		}
	}

	for _, sel := range []string{"#landingImage", "#imgBlkFront", "#main-image"} {
		elem := doc.Find(sel).First()
		if elem.Length() == 0 {
			continue
		}
		src := elem.AttrOr("data-old-hires", "")
		if src == "" {
			src = elem.AttrOr("data-a-dynamic-image", "")
		}
		if src == "" {
			src = elem.AttrOr("src", "")
		}
		if strings.HasPrefix(src, "{") {
			src = firstJSONKey(src)
		}
		if src != "" {
			if mainImage == "" {
				mainImage = src
			}
			add(src)
		}
	}

	if len(images) > maxImages {
		images = images[:maxImages]
	}
	if mainImage == "" && len(images) > 0 {
		mainImage = images[0]
	}
	return mainImage, images
}

// firstJSONKey returns the first key of a JSON object literal, preserving the
// document's own ordering (data-a-dynamic-image keys are URLs, largest first).
func firstJSONKey(raw string) string {
	dec := json.NewDecoder(strings.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return ""
	}
	tok, err := dec.Token()
	if err != nil {
		return ""
	}
	key, _ := tok.(string)
	return key
}

var sizePlaceholders = map[string]bool{
	"":            true,
	"select":      true,
	"select size": true,
}

// extractSizes merges the size dropdown and size swatches, deduplicating by
// exact label text. Swatch availability comes from the "swatchUnavailable"
// class token; dropdown entries are assumed available.
func extractSizes(doc *goquery.Document) []models.SizeOption {
	var sizes []models.SizeOption
	seen := make(map[string]bool)

	doc.Find("#native_dropdown_selected_size_name option").Each(func(i int, s *goquery.Selection) {
		size := strings.TrimSpace(s.Text())
		if sizePlaceholders[strings.ToLower(size)] || seen[size] {
			return
		}
		seen[size] = true
		sizes = append(sizes, models.SizeOption{Size: size, Available: true})
	})

	doc.Find(`#variation_size_name li, [data-csa-c-element-id*="size"] li`).Each(func(i int, li *goquery.Selection) {
		size := strings.TrimSpace(li.Find(".a-size-base, .swatch-title-text").First().Text())
		if size == "" || seen[size] {
			return
		}
		seen[size] = true
		available := !strings.Contains(li.AttrOr("class", ""), "swatchUnavailable")
		sizes = append(sizes, models.SizeOption{Size: size, Available: available})
	})

	return sizes
}

func extractColors(doc *goquery.Document) (selected string, colors []string) {
	for _, sel := range []string{"#variation_color_name .selection", ".selection.po-truncate"} {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			selected = text
			break
		}
	}

	seen := make(map[string]bool)
	doc.Find("#variation_color_name img[alt]").Each(func(i int, s *goquery.Selection) {
		color := strings.TrimSpace(s.AttrOr("alt", ""))
		if color != "" && !seen[color] {
			seen[color] = true
			colors = append(colors, color)
		}
	})

	return selected, colors
}

// extractFeatures reads the bullet list, skipping very short items and the
// "Make sure" sizing disclaimer, in document order, capped at 10.
func extractFeatures(doc *goquery.Document) []string {
	var features []string
	doc.Find("#feature-bullets li span.a-list-item").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > minFeatureChars && !strings.HasPrefix(text, "Make sure") {
			features = append(features, text)
		}
	})
	if len(features) > maxFeatures {
		features = features[:maxFeatures]
	}
	return features
}

func extractDescription(doc *goquery.Document) string {
	for _, sel := range []string{"#productDescription p", "#productDescription"} {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if len(text) > minDescription {
			if runes := []rune(text); len(runes) > maxDescription {
				text = string(runes[:maxDescription])
			}
			return text
		}
	}
	return ""
}

var fiberKeywords = []string{"cotton", "polyester", "nylon", "wool", "silk", "blend"}

// extractMaterial tries three strategies in order: a labeled spec-table row,
// a generic detail block mentioning Material/Fabric, and finally the feature
// bullets scanned for known fiber keywords.
func extractMaterial(doc *goquery.Document) string {
	material := ""
	doc.Find("#productDetails_techSpec_section_1 tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		label := strings.ToLower(strings.TrimSpace(row.Find("th").Text()))
		value := strings.TrimSpace(row.Find("td").Text())
		if value != "" && (strings.Contains(label, "material") || strings.Contains(label, "fabric")) {
			material = value
			return false
		}
		return true
	})
	if material != "" {
		return material
	}

	doc.Find(".a-section.a-spacing-small").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if strings.Contains(text, "Material") || strings.Contains(text, "Fabric") {
			material = text
			return false
		}
		return true
	})
	if material != "" {
		return material
	}

	doc.Find("#feature-bullets li").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		lower := strings.ToLower(text)
		for _, kw := range fiberKeywords {
			if strings.Contains(lower, kw) {
				material = text
				return false
			}
		}
		return true
	})
	return material
}

var (
	reRating      = regexp.MustCompile(`[\d.]+`)
	reReviewCount = regexp.MustCompile(`[\d,]+`)
)

// extractRating parses the star rating from the icon's title attribute (or
// text) and the review count from its labeled element. Either may be absent
// independently.
func extractRating(doc *goquery.Document) (rating *float64, reviewCount *int) {
	ratingElem := doc.Find("#acrPopover, .a-icon-star span.a-icon-alt").First()
	if ratingElem.Length() > 0 {
		text := ratingElem.AttrOr("title", "")
		if text == "" {
			text = strings.TrimSpace(ratingElem.Text())
		}
		if m := reRating.FindString(text); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				rating = &v
			}
		}
	}

	countText := strings.TrimSpace(doc.Find("#acrCustomerReviewText").First().Text())
	if m := reReviewCount.FindString(countText); m != "" {
		if v, err := strconv.Atoi(strings.ReplaceAll(m, ",", "")); err == nil {
			reviewCount = &v
		}
	}

	return rating, reviewCount
}
