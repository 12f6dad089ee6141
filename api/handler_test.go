package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Se9uencer/FitCheck/models"
	"github.com/Se9uencer/FitCheck/scraper"
)

const fixturePage = `<html><body>
	<span id="productTitle">Men's Everyday Tee</span>
	<span class="a-price"><span class="a-offscreen">$19.99</span></span>
	<script>
		var colorImages = {"hiRes":"https://m.images-amazon.com/images/I/one.jpg","large":"https://m.images-amazon.com/images/I/two.jpg"};
	</script>
	<select id="native_dropdown_selected_size_name">
		<option>Select</option><option>Medium</option>
	</select>
	<div id="feature-bullets"><ul>
		<li><span class="a-list-item">100% Cotton classic fit</span></li>
	</ul></div>
</body></html>`

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestHandler wires a handler whose scraper targets the given test server.
func newTestHandler(baseURL string) *Handler {
	opts := scraper.DefaultOptions()
	opts.BaseURL = baseURL
	opts.RetryWait = time.Millisecond
	opts.BackoffBase = time.Millisecond
	return NewHandler(scraper.New(quietLogger(), opts), quietLogger())
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) models.ExtractionResult {
	t.Helper()
	var result models.ExtractionResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	return result
}

func TestRoot(t *testing.T) {
	h := newTestHandler("http://unused.invalid")
	rec := doJSON(t, h.Routes(), http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "FitCheck API", body["service"])
}

func TestHealth(t *testing.T) {
	h := newTestHandler("http://unused.invalid")
	rec := doJSON(t, h.Routes(), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, true, body["scraper_ready"])
}

func TestHealth_NilScraper(t *testing.T) {
	h := NewHandler(nil, quietLogger())
	rec := doJSON(t, h.Routes(), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, false, body["scraper_ready"])
}

func TestExtract_MissingURL(t *testing.T) {
	h := newTestHandler("http://unused.invalid")
	rec := doJSON(t, h.Routes(), http.MethodPost, "/api/extract", models.ExtractionRequest{URL: "   "})

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	assert.False(t, result.Success)
	assert.Equal(t, "URL is required", result.Error)
}

func TestExtract_NonAmazonURL(t *testing.T) {
	h := newTestHandler("http://unused.invalid")
	rec := doJSON(t, h.Routes(), http.MethodPost, "/api/extract", models.ExtractionRequest{URL: "https://www.example.com/product/123"})

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	assert.False(t, result.Success)
	assert.Equal(t, "Please provide a valid Amazon URL", result.Error)
}

func TestExtract_InvalidBody(t *testing.T) {
	h := newTestHandler("http://unused.invalid")
	req := httptest.NewRequest(http.MethodPost, "/api/extract", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtract_NilScraper(t *testing.T) {
	h := NewHandler(nil, quietLogger())
	rec := doJSON(t, h.Routes(), http.MethodPost, "/api/extract", models.ExtractionRequest{URL: "https://www.amazon.com/dp/B0TESTASIN"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestExtract_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, fixturePage)
	}))
	defer srv.Close()

	h := newTestHandler(srv.URL)
	rec := doJSON(t, h.Routes(), http.MethodPost, "/api/extract", models.ExtractionRequest{URL: "https://www.amazon.com/dp/B0TESTASIN"})

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	require.True(t, result.Success, "error: %s", result.Error)
	require.NotNil(t, result.Product)
	assert.Equal(t, "B0TESTASIN", result.Product.ASIN)
	assert.Equal(t, "Men's Everyday Tee", result.Product.Title)
	assert.Len(t, result.Product.Images, 2)
}

func TestExtract_MainImageOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, fixturePage)
	}))
	defer srv.Close()

	includeAll := false
	h := newTestHandler(srv.URL)
	rec := doJSON(t, h.Routes(), http.MethodPost, "/api/extract", models.ExtractionRequest{
		URL:              "https://www.amazon.com/dp/B0TESTASIN",
		IncludeAllImages: &includeAll,
	})

	result := decodeResult(t, rec)
	require.True(t, result.Success)
	assert.Equal(t, []string{"https://m.images-amazon.com/images/I/one.jpg"}, result.Product.Images)
	assert.Equal(t, "https://m.images-amazon.com/images/I/one.jpg", result.Product.MainImage)
}

func TestProductByASIN_InvalidFormatSkipsFetch(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		io.WriteString(w, fixturePage)
	}))
	defer srv.Close()

	h := newTestHandler(srv.URL)
	for _, asin := range []string{"short", "B0TESTASIN1", "B0TEST-SIN"} {
		rec := doJSON(t, h.Routes(), http.MethodGet, "/api/product/"+asin, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		result := decodeResult(t, rec)
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "Invalid ASIN format")
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits), "malformed identifiers must never reach the network")
}

func TestProductByASIN_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dp/B0TESTASIN", r.URL.Path)
		io.WriteString(w, fixturePage)
	}))
	defer srv.Close()

	h := newTestHandler(srv.URL)
	rec := doJSON(t, h.Routes(), http.MethodGet, "/api/product/B0TESTASIN", nil)

	result := decodeResult(t, rec)
	require.True(t, result.Success)
	assert.Equal(t, "B0TESTASIN", result.Product.ASIN)
}

func TestDemoProduct(t *testing.T) {
	h := newTestHandler("http://unused.invalid")
	rec := doJSON(t, h.Routes(), http.MethodGet, "/api/demo/product", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var product models.ProductInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&product))
	assert.Equal(t, "B0DEMO1234", product.ASIN)
	assert.Len(t, product.ASIN, 10)
	assert.NotEmpty(t, product.Title)
	assert.Len(t, product.AvailableSizes, 5)
	assert.NotEmpty(t, product.SizeChart)
}
