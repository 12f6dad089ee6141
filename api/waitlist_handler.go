package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Se9uencer/FitCheck/models"
	"github.com/Se9uencer/FitCheck/utils"
)

// WaitlistRequest is the payload for joining the waitlist
type WaitlistRequest struct {
	Email string `json:"email"`
}

// JoinWaitlist stores a waitlist signup and sends a confirmation email.
// Signing up twice with the same address is a no-op, not an error.
func (h *Handler) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	var req WaitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, h.Log, "Invalid request body", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		utils.RespondError(w, h.Log, "A valid email is required", http.StatusBadRequest)
		return
	}

	collection := utils.GetCollection("waitlist")

	var existing models.WaitlistEntry
	err := collection.FindOne(r.Context(), bson.M{"email": email}).Decode(&existing)
	if err == nil {
		utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondError(w, h.Log, "Database error checking waitlist", http.StatusInternalServerError)
		return
	}

	entry := models.WaitlistEntry{Email: email, CreatedAt: time.Now()}
	if _, err := collection.InsertOne(r.Context(), entry); err != nil {
		utils.RespondError(w, h.Log, "Failed to join waitlist", http.StatusInternalServerError)
		return
	}

	// Confirmation is best-effort; a mail failure must not undo the signup
	if err := utils.SendEmail("", email,
		"You're on the FitCheck waitlist",
		"Thanks for joining the FitCheck waitlist. We'll let you know as soon as you can try it.",
		"<p>Thanks for joining the <strong>FitCheck</strong> waitlist. We'll let you know as soon as you can try it.</p>",
	); err != nil {
		h.Log.WithError(err).Warnf("Failed to send waitlist confirmation to %s", email)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListWaitlist returns all waitlist entries, newest first. Admin only.
func (h *Handler) ListWaitlist(w http.ResponseWriter, r *http.Request) {
	collection := utils.GetCollection("waitlist")

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := collection.Find(r.Context(), bson.M{}, opts)
	if err != nil {
		utils.RespondError(w, h.Log, "Failed to list waitlist", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	entries := []models.WaitlistEntry{}
	if err := cursor.All(r.Context(), &entries); err != nil {
		utils.RespondError(w, h.Log, "Failed to decode waitlist entries", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}
