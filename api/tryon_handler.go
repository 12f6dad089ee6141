package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Se9uencer/FitCheck/models"
	"github.com/Se9uencer/FitCheck/utils"
)

// TryOnRequest is the payload for a garment preview
type TryOnRequest struct {
	MeasurementID string `json:"measurement_id"`
	ProductURL    string `json:"product_url"`
}

// TryOn generates a garment preview: the product is extracted fresh, its
// images are fed to Gemini together with the measurement profile, and the
// generated preview is stored in S3 alongside a try-on record.
func (h *Handler) TryOn(w http.ResponseWriter, r *http.Request) {
	if h.Scraper == nil {
		utils.RespondError(w, h.Log, "Scraper not initialized", http.StatusServiceUnavailable)
		return
	}

	var req TryOnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, h.Log, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.MeasurementID == "" || req.ProductURL == "" {
		utils.RespondError(w, h.Log, "measurement_id and product_url are required", http.StatusBadRequest)
		return
	}

	objID, err := primitive.ObjectIDFromHex(req.MeasurementID)
	if err != nil {
		utils.RespondError(w, h.Log, "Invalid measurement ID", http.StatusBadRequest)
		return
	}

	collection := utils.GetCollection("measurements")
	var m models.UserMeasurement
	if err := collection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&m); err != nil {
		utils.RespondError(w, h.Log, "Measurement not found", http.StatusNotFound)
		return
	}

	result := h.Scraper.ExtractProduct(r.Context(), req.ProductURL)
	if !result.Success || result.Product == nil {
		utils.RespondError(w, h.Log, "Product extraction failed: "+result.Error, http.StatusBadRequest)
		return
	}
	product := result.Product

	images := product.Images
	if len(images) > 3 {
		images = images[:3]
	}
	if len(images) == 0 {
		utils.RespondError(w, h.Log, "Product has no images to preview", http.StatusBadRequest)
		return
	}

	personDetails := fmt.Sprintf(
		"Gender: %s, Height: %.1f cm, Chest: %.1f cm, Waist: %.1f cm, Hips: %.1f cm",
		m.Gender, m.HeightCm, m.ChestCm, m.WaistCm, m.HipsCm)

	// The generation call can take minutes; detach it from the request
	// deadline but keep it bounded.
	genCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	preview, err := utils.GeneratePreviewImage(genCtx, personDetails, images)
	if err != nil {
		h.Log.WithError(err).Error("Failed to generate try-on preview")
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "429") || strings.Contains(msg, "quota") {
			utils.RespondError(w, h.Log, "Quota exceeded. Please try again later.", http.StatusTooManyRequests)
		} else {
			utils.RespondError(w, h.Log, "Failed to generate try-on preview", http.StatusInternalServerError)
		}
		return
	}

	objectKey := fmt.Sprintf("generated_images/tryon_%d.jpg", time.Now().UnixNano())
	if _, err := utils.UploadFileToS3(r.Context(), bytes.NewReader(preview), objectKey, "image/jpeg"); err != nil {
		utils.RespondError(w, h.Log, "Failed to upload generated preview", http.StatusInternalServerError)
		return
	}

	record := models.TryOn{
		ID:                primitive.NewObjectID(),
		MeasurementID:     req.MeasurementID,
		ProductURL:        product.URL,
		ASIN:              product.ASIN,
		GeneratedImageKey: objectKey,
		Status:            "completed",
		CreatedAt:         time.Now(),
	}
	if _, err := utils.GetCollection("tryons").InsertOne(r.Context(), record); err != nil {
		// Record keeping is secondary to returning the preview
		h.Log.WithError(err).Warn("Failed to save try-on record")
	}

	previewURL, _ := utils.GetPresignedURL(r.Context(), objectKey)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"result": previewURL,
		"tryon":  record,
	})
}
