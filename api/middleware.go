package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Se9uencer/FitCheck/config"
	"github.com/Se9uencer/FitCheck/utils"
)

// CORSMiddleware allows the configured frontend origins
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, allowed := range config.AllowedOrigins {
			if origin == allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				break
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LatencyMiddleware logs the duration of each request
func LatencyMiddleware(log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("Request completed")
	})
}

// RequireAdmin guards an endpoint with the admin JWT
func (h *Handler) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			utils.RespondError(w, h.Log, "Authorization header missing or malformed", http.StatusUnauthorized)
			return
		}

		subject, err := utils.ValidateToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil || !strings.EqualFold(subject, config.AdminEmail) {
			utils.RespondError(w, h.Log, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}
