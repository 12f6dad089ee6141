package scraper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productPage = `<html><body>
	<span id="productTitle">Men's Classic Crew Neck T-Shirt</span>
	<a id="bylineInfo">Visit the Acme Store</a>
	<span class="a-price"><span class="a-offscreen">$24.99</span></span>
	<span class="a-text-price"><span class="a-offscreen">$34.99</span></span>
	<script>
		var colorImages = {"hiRes":"https://m.images-amazon.com/images/I/main.jpg","large":"https://m.images-amazon.com/images/I/alt.jpg"};
	</script>
	<select id="native_dropdown_selected_size_name">
		<option>Select Size</option>
		<option>Small</option>
		<option>Medium</option>
		<option>Large</option>
	</select>
	<div id="variation_color_name">
		<span class="selection">Heather Grey</span>
		<ul><li><img alt="Heather Grey"></li><li><img alt="Black"></li></ul>
	</div>
	<div id="feature-bullets"><ul>
		<li><span class="a-list-item">Make sure this fits by entering your model number.</span></li>
		<li><span class="a-list-item">60% Cotton 40% Polyester blend</span></li>
		<li><span class="a-list-item">Machine washable, tumble dry low</span></li>
	</ul></div>
	<div id="productDescription"><p>A soft everyday tee with a classic fit and tagless collar for comfort.</p></div>
	<span id="acrPopover" title="4.3 out of 5 stars"></span>
	<span id="acrCustomerReviewText">2,481 ratings</span>
</body></html>`

func TestExtractProduct_FullPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dp/B0TESTASIN", r.URL.Path)
		io.WriteString(w, productPage)
	}))
	defer srv.Close()

	a := New(quietLogger(), testOptions(srv.URL))
	result := a.ExtractProduct(context.Background(), "https://www.amazon.com/dp/B0TESTASIN")

	require.True(t, result.Success, "error: %s", result.Error)
	require.NotNil(t, result.Product)
	p := result.Product

	assert.Equal(t, "B0TESTASIN", p.ASIN)
	assert.Equal(t, "Men's Classic Crew Neck T-Shirt", p.Title)
	assert.Equal(t, "Acme", p.Brand)
	assert.Equal(t, "$24.99", p.Price)
	assert.Equal(t, "$34.99", p.OriginalPrice)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, "https://m.images-amazon.com/images/I/main.jpg", p.MainImage)
	assert.Len(t, p.Images, 2)
	require.Len(t, p.AvailableSizes, 3)
	assert.Equal(t, "Small", p.AvailableSizes[0].Size)
	assert.True(t, p.AvailableSizes[0].Available)
	assert.Equal(t, "Heather Grey", p.Color)
	assert.Equal(t, []string{"Heather Grey", "Black"}, p.AvailableColors)
	assert.Len(t, p.Features, 2)
	assert.Contains(t, p.Description, "everyday tee")
	assert.Equal(t, "60% Cotton 40% Polyester blend", p.Material)
	assert.Equal(t, "shirt", p.ClothingType)
	assert.Equal(t, "men", p.Gender)
	require.NotNil(t, p.Rating)
	assert.InDelta(t, 4.3, *p.Rating, 0.001)
	require.NotNil(t, p.ReviewCount)
	assert.Equal(t, 2481, *p.ReviewCount)
	assert.Equal(t, "https://www.amazon.com/dp/B0TESTASIN", p.URL)
	assert.NotEmpty(t, p.ScrapedAt)
	assert.Empty(t, result.Warnings)
}

func TestExtractProduct_InvalidURL(t *testing.T) {
	a := New(quietLogger(), testOptions("http://unused.invalid"))
	result := a.ExtractProduct(context.Background(), "https://www.amazon.com/s?k=shirts")

	assert.False(t, result.Success)
	assert.Nil(t, result.Product)
	assert.Contains(t, result.Error, "Could not extract ASIN")
	assert.NotNil(t, result.Warnings)
}

func TestExtractProduct_BlockPageIsTerminal(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		io.WriteString(w, `<html><body>Enter the characters you see below</body></html>`)
	}))
	defer srv.Close()

	a := New(quietLogger(), testOptions(srv.URL))
	result := a.ExtractProduct(context.Background(), "https://www.amazon.com/dp/B0TESTASIN")

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "CAPTCHA")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "a block page must not be retried")
}

func TestExtractProduct_FetchExhaustion(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := New(quietLogger(), testOptions(srv.URL))
	result := a.ExtractProduct(context.Background(), "https://www.amazon.com/dp/B0TESTASIN")

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Failed to fetch product page")
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestExtractProduct_SparsePageStillSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body><p>minimal listing</p></body></html>`)
	}))
	defer srv.Close()

	a := New(quietLogger(), testOptions(srv.URL))
	result := a.ExtractProduct(context.Background(), "https://www.amazon.com/dp/B0TESTASIN")

	require.True(t, result.Success)
	require.NotNil(t, result.Product)
	assert.Equal(t, UnknownTitle, result.Product.Title)
	assert.Equal(t, []string{
		"Could not extract size options - you can add sizes manually",
		"Material composition not found",
		"Price not found",
	}, result.Warnings)
	assert.NotNil(t, result.Product.Images)
	assert.NotNil(t, result.Product.AvailableSizes)
	assert.NotNil(t, result.Product.Features)
}

func TestExtractByASIN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dp/B0TESTASIN", r.URL.Path)
		io.WriteString(w, productPage)
	}))
	defer srv.Close()

	a := New(quietLogger(), testOptions(srv.URL))
	result := a.ExtractByASIN(context.Background(), "B0TESTASIN")
	require.True(t, result.Success)
	assert.Equal(t, "B0TESTASIN", result.Product.ASIN)
}
