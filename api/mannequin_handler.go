package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Se9uencer/FitCheck/config"
	"github.com/Se9uencer/FitCheck/models"
	"github.com/Se9uencer/FitCheck/utils"
)

// MannequinRequest is the payload for mannequin generation
type MannequinRequest struct {
	MeasurementID string `json:"measurement_id"`
}

// mannequinServicePayload is what the external generator service expects
type mannequinServicePayload struct {
	Gender   string  `json:"gender"`
	HeightCm float64 `json:"height_cm"`
	WaistCm  float64 `json:"waist_cm,omitempty"`
	HipsCm   float64 `json:"hips_cm,omitempty"`
	ChestCm  float64 `json:"chest_cm,omitempty"`
	ArmCm    float64 `json:"arm_cm,omitempty"`
	LegCm    float64 `json:"leg_cm,omitempty"`
	BicepCm  float64 `json:"bicep_cm,omitempty"`
	ThighCm  float64 `json:"thigh_cm,omitempty"`
	Format   string  `json:"format"`
}

// GenerateMannequin builds a 3D mannequin for a stored measurement profile:
// it calls the external generator service, uploads the GLB to S3, marks the
// profile as generated and returns a presigned URL for the asset.
func (h *Handler) GenerateMannequin(w http.ResponseWriter, r *http.Request) {
	var req MannequinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, h.Log, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.MeasurementID == "" {
		utils.RespondError(w, h.Log, "measurement_id is required", http.StatusBadRequest)
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

	payload := mannequinServicePayload{
		Gender:   m.Gender,
		HeightCm: m.HeightCm,
		WaistCm:  m.WaistCm,
		HipsCm:   m.HipsCm,
		ChestCm:  m.ChestCm,
		ArmCm:    m.ArmCm,
		LegCm:    m.LegCm,
		BicepCm:  m.BicepCm,
		ThighCm:  m.ThighCm,
		Format:   "glb",
	}
	if payload.Gender == "" {
		payload.Gender = "neutral"
	}

	body, _ := json.Marshal(payload)
	serviceURL := config.MannequinServiceURL + "/generate-mannequin"

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Post(serviceURL, "application/json", bytes.NewReader(body))
	if err != nil {
		h.Log.WithError(err).Error("Mannequin service unreachable")
		utils.RespondError(w, h.Log, "Mannequin service failed", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		h.Log.Errorf("Mannequin service returned %d", resp.StatusCode)
		utils.RespondError(w, h.Log, "Mannequin service failed", http.StatusBadGateway)
		return
	}

	glb, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.RespondError(w, h.Log, "Failed to read mannequin data", http.StatusBadGateway)
		return
	}

	objectKey := fmt.Sprintf("mannequins/%s/mannequin.glb", m.ID.Hex())
	if _, err := utils.UploadFileToS3(r.Context(), bytes.NewReader(glb), objectKey, "model/gltf-binary"); err != nil {
		h.Log.WithError(err).Error("Failed to upload mannequin to S3")
		utils.RespondError(w, h.Log, "Upload to storage failed", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"mannequin_status":  models.MannequinGenerated,
		"mannequin_key":     objectKey,
		"last_generated_at": now,
		"updated_at":        now,
	}}
	if _, err := collection.UpdateByID(r.Context(), m.ID, update); err != nil {
		utils.RespondError(w, h.Log, "Failed to update measurement", http.StatusInternalServerError)
		return
	}

	mannequinURL, err := utils.GetPresignedURL(r.Context(), objectKey)
	if err != nil {
		utils.RespondError(w, h.Log, "Failed to get mannequin URL", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"mannequin_url": mannequinURL,
	})
}
