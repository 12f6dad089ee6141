package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Se9uencer/FitCheck/config"
	"github.com/Se9uencer/FitCheck/models"
	"github.com/Se9uencer/FitCheck/utils"
)

// Root is the basic health check endpoint
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "FitCheck API",
		"version": "0.1.0",
	})
}

// Health is the detailed health check
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "healthy",
		"scraper_ready": h.Scraper != nil,
	})
}

// Extract handles POST /api/extract: full pipeline for a product URL.
// All extraction outcomes, including failures, are reported as a tagged
// result with HTTP 200; protocol-level errors are reserved for unusable
// requests.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	if h.Scraper == nil {
		utils.RespondError(w, h.Log, "Scraper not initialized", http.StatusServiceUnavailable)
		return
	}

	var req models.ExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, h.Log, "Invalid request body", http.StatusBadRequest)
		return
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		utils.RespondJSON(w, http.StatusOK, models.Failure("URL is required"))
		return
	}

	lower := strings.ToLower(url)
	if !strings.Contains(lower, "amazon.com") && !strings.Contains(lower, "amzn.") {
		utils.RespondJSON(w, http.StatusOK, models.Failure("Please provide a valid Amazon URL"))
		return
	}

	result := h.Scraper.ExtractProduct(r.Context(), url)

	// include_all_images defaults to true; false trims to the main image
	includeAllImages := req.IncludeAllImages == nil || *req.IncludeAllImages
	h.finishExtraction(w, r, result, includeAllImages)
}

// ProductByASIN handles GET /api/product/{asin}. A malformed identifier is
// rejected before any network call happens.
func (h *Handler) ProductByASIN(w http.ResponseWriter, r *http.Request) {
	if h.Scraper == nil {
		utils.RespondError(w, h.Log, "Scraper not initialized", http.StatusServiceUnavailable)
		return
	}

	asin := r.PathValue("asin")
	if len(asin) != 10 || !isAlnum(asin) {
		utils.RespondJSON(w, http.StatusOK, models.Failure("Invalid ASIN format. ASIN should be 10 alphanumeric characters."))
		return
	}

	result := h.Scraper.ExtractByASIN(r.Context(), asin)
	h.finishExtraction(w, r, result, true)
}

func (h *Handler) finishExtraction(w http.ResponseWriter, r *http.Request, result models.ExtractionResult, includeAllImages bool) {
	if !result.Success || result.Product == nil {
		utils.RespondJSON(w, http.StatusOK, result)
		return
	}
	product := result.Product

	if !includeAllImages {
		if product.MainImage != "" {
			product.Images = []string{product.MainImage}
		} else {
			product.Images = []string{}
		}
	}

	if config.SaveHistory {
		h.saveProduct(r.Context(), product)
	}

	if config.MirrorImages {
		mirrorProductImages(r.Context(), product)
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// saveProduct records a copy of the extraction in Mongo. Failures are logged
// and never affect the response.
func (h *Handler) saveProduct(ctx context.Context, product *models.ProductInfo) {
	stored := *product
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = time.Now()

	collection := utils.GetCollection("products")
	if _, err := collection.InsertOne(ctx, stored); err != nil {
		h.Log.WithError(err).Warn("Failed to save product history")
		return
	}
	h.Log.WithField("asin", product.ASIN).Info("Product saved to history")
}

// mirrorProductImages uploads the extracted image URLs to S3 and swaps in
// presigned URLs; images that fail to mirror keep their origin URL.
func mirrorProductImages(ctx context.Context, product *models.ProductInfo) {
	urlToKey := utils.MirrorImagesToS3(ctx, product.Images, "product_images")

	mirrored := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		if key, ok := urlToKey[img]; ok {
			if url, err := utils.GetPresignedURL(ctx, key); err == nil {
				mirrored = append(mirrored, url)
				if img == product.MainImage {
					product.MainImage = url
				}
				continue
			}
		}
		mirrored = append(mirrored, img)
	}
	product.Images = mirrored
}

func isAlnum(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
