package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Se9uencer/FitCheck/config"
	"github.com/Se9uencer/FitCheck/utils"
)

// LoginRequest is the payload for admin login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLogin checks the configured admin credentials and issues a JWT
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if config.AdminEmail == "" || config.AdminPasswordHash == "" {
		utils.RespondError(w, h.Log, "Admin login is not configured", http.StatusServiceUnavailable)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, h.Log, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !strings.EqualFold(strings.TrimSpace(req.Email), config.AdminEmail) {
		utils.RespondError(w, h.Log, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(config.AdminPasswordHash), []byte(req.Password)); err != nil {
		utils.RespondError(w, h.Log, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(config.AdminEmail)
	if err != nil {
		h.Log.WithError(err).Error("Failed to generate token")
		utils.RespondError(w, h.Log, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}
