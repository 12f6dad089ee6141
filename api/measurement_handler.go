package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Se9uencer/FitCheck/models"
	"github.com/Se9uencer/FitCheck/utils"
)

// CreateMeasurement stores a body measurement profile
func (h *Handler) CreateMeasurement(w http.ResponseWriter, r *http.Request) {
	var m models.UserMeasurement
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		utils.RespondError(w, h.Log, "Invalid request body", http.StatusBadRequest)
		return
	}

	if m.HeightCm <= 0 {
		utils.RespondError(w, h.Log, "height_cm is required and must be positive", http.StatusBadRequest)
		return
	}
	if m.Gender == "" {
		m.Gender = "neutral"
	}

	now := time.Now()
	m.ID = primitive.NewObjectID()
	m.MannequinStatus = models.MannequinPending
	m.MannequinKey = ""
	m.LastGeneratedAt = nil
	m.CreatedAt = now
	m.UpdatedAt = now

	collection := utils.GetCollection("measurements")
	if _, err := collection.InsertOne(r.Context(), m); err != nil {
		utils.RespondError(w, h.Log, "Failed to save measurement", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"id":          m.ID.Hex(),
		"measurement": m,
	})
}

// GetMeasurement fetches one measurement profile by id
func (h *Handler) GetMeasurement(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
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

	utils.RespondJSON(w, http.StatusOK, m)
}

// ListMeasurements returns all measurement profiles, newest first. Admin only.
func (h *Handler) ListMeasurements(w http.ResponseWriter, r *http.Request) {
	collection := utils.GetCollection("measurements")

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := collection.Find(r.Context(), bson.M{}, opts)
	if err != nil {
		utils.RespondError(w, h.Log, "Failed to list measurements", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	measurements := []models.UserMeasurement{}
	if err := cursor.All(r.Context(), &measurements); err != nil {
		utils.RespondError(w, h.Log, "Failed to decode measurements", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"measurements": measurements,
		"total":        len(measurements),
	})
}
