package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// RespondJSON sends a JSON response with the given status code and payload
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already sent at this point, nothing left but to log
		logrus.WithError(err).Error("Error encoding JSON response")
	}
}

// RespondError sends a JSON error response and logs the message
func RespondError(w http.ResponseWriter, log *logrus.Logger, message string, status int) {
	if log != nil {
		log.Warn(message)
	} else {
		logrus.Warn(message)
	}
	RespondJSON(w, status, map[string]string{"error": message})
}
