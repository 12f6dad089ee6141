package scraper

import (
	"context"
	"crypto/tls"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/Se9uencer/FitCheck/models"
)

// blockMarkers are fixed substrings that identify a CAPTCHA/robot-check page
// served in place of product content. A hit is a terminal failure: retrying
// from the same address would serve the same page.
var blockMarkers = []string{
	"Enter the characters you see below",
	"api-services-support@amazon.com",
}

// Options tunes the fetch behavior of an Amazon scraper.
type Options struct {
	MaxAttempts     int
	Timeout         time.Duration
	RetryWait       time.Duration // linear wait after non-503 failures
	BackoffBase     time.Duration // doubled per attempt after a 503
	UserAgents      []string
	BrowserFallback bool   // try headless strategies after plain HTTP exhausts its attempts
	BaseURL         string // product-page origin, overridable in tests
}

// DefaultOptions mirrors a cautious browser session: 20s socket timeout,
// three attempts, one-second linear retry wait.
func DefaultOptions() Options {
	return Options{
		MaxAttempts: 3,
		Timeout:     20 * time.Second,
		RetryWait:   time.Second,
		BackoffBase: time.Second,
		UserAgents:  defaultUserAgents,
		BaseURL:     canonicalBase,
	}
}

// Amazon extracts product records from product pages. Construct it once with
// New and inject it into request handlers; the only shared mutable state is
// the outbound header map, whose user-agent entry is rotated under a mutex.
type Amazon struct {
	client  *http.Client
	headers map[string]string
	mu      sync.Mutex
	opts    Options
	log     *logrus.Logger
}

// New creates an Amazon scraper with its own HTTP client and header set.
func New(log *logrus.Logger, opts Options) *Amazon {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.BaseURL == "" {
		opts.BaseURL = canonicalBase
	}
	if log == nil {
		log = logrus.New()
	}
	return &Amazon{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				ForceAttemptHTTP2:     false,
				TLSNextProto:          make(map[string]func(string, *tls.Conn) http.RoundTripper),
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		headers: defaultHeaders(),
		opts:    opts,
		log:     log,
	}
}

func (a *Amazon) productURL(asin string) string {
	return a.opts.BaseURL + "/dp/" + asin
}

// ExtractByASIN extracts a product directly from its catalog identifier.
func (a *Amazon) ExtractByASIN(ctx context.Context, asin string) models.ExtractionResult {
	return a.ExtractProduct(ctx, a.productURL(asin))
}

// ExtractProduct runs the full pipeline for one URL: resolve the ASIN, fetch
// the page, check for a block page, parse once, run every field extractor and
// the classifiers, then assemble the record. Individual extractors finding
// nothing is not an error; a curated subset of gaps becomes warnings.
func (a *Amazon) ExtractProduct(ctx context.Context, rawURL string) (result models.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorf("Extraction panic for %s: %v", rawURL, r)
			result = models.Failure("Extraction failed due to an internal error. Please try again.")
		}
	}()

	asin := ExtractASIN(rawURL)
	if asin == "" {
		return models.Failure("Could not extract ASIN from URL. Please provide a valid Amazon product URL.")
	}

	a.log.WithField("asin", asin).Info("Extracting product")

	html, err := a.FetchPage(ctx, a.productURL(asin))
	if err != nil && a.opts.BrowserFallback {
		html, err = a.fetchWithBrowser(ctx, a.productURL(asin))
	}
	if err != nil || html == "" {
		return models.Failure("Failed to fetch product page. Amazon may be blocking requests or the product doesn't exist.")
	}

	if isBlockPage(html) {
		return models.Failure("Amazon is requesting CAPTCHA verification. Please try again later.")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.Failure("Failed to parse product page: " + err.Error())
	}

	title := extractTitle(doc)
	brand := extractBrand(doc)
	currentPrice, originalPrice := extractPrice(doc)
	mainImage, images := extractImages(doc, html)
	sizes := extractSizes(doc)
	selectedColor, colors := extractColors(doc)
	features := extractFeatures(doc)
	description := extractDescription(doc)
	material := extractMaterial(doc)
	rating, reviewCount := extractRating(doc)
	clothingType := DetectClothingType(title, features)
	gender := DetectGender(title, features)

	warnings := []string{}
	if len(sizes) == 0 {
		warnings = append(warnings, "Could not extract size options - you can add sizes manually")
	}
	if material == "" {
		warnings = append(warnings, "Material composition not found")
	}
	if currentPrice == "" {
		warnings = append(warnings, "Price not found")
	}

	product := &models.ProductInfo{
		ASIN:            asin,
		Title:           title,
		Brand:           brand,
		Price:           currentPrice,
		OriginalPrice:   originalPrice,
		Currency:        "USD",
		MainImage:       mainImage,
		Images:          images,
		AvailableSizes:  sizes,
		SizeChart:       []models.SizeChartEntry{}, // user enters measurements downstream
		Material:        material,
		Color:           selectedColor,
		AvailableColors: colors,
		Features:        features,
		Description:     description,
		ClothingType:    clothingType,
		Gender:          gender,
		Rating:          rating,
		ReviewCount:     reviewCount,
		URL:             NormalizeURL(rawURL),
		ScrapedAt:       time.Now().Format(time.RFC3339),
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.AvailableSizes == nil {
		product.AvailableSizes = []models.SizeOption{}
	}
	if product.AvailableColors == nil {
		product.AvailableColors = []string{}
	}
	if product.Features == nil {
		product.Features = []string{}
	}

	return models.ExtractionResult{Success: true, Product: product, Warnings: warnings}
}

func isBlockPage(html string) bool {
	for _, marker := range blockMarkers {
		if strings.Contains(html, marker) {
			return true
		}
	}
	return false
}
