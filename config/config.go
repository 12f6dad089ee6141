package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	Port                string
	MongoURI            string
	AWSRegion           string
	AWSBucketName       string
	GeminiAPIKey        string
	SendGridAPIKey      string
	JWTSecret           string
	AdminEmail          string
	AdminPasswordHash   string
	MannequinServiceURL string
	AllowedOrigins      []string

	// Optional behaviors. All default off so an extraction call has no
	// side effects beyond the outbound GET.
	SaveHistory     bool
	MirrorImages    bool
	BrowserFallback bool
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	Port = getEnv("PORT", "8000")
	MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017/")
	AWSRegion = getEnv("AWS_REGION", "us-east-1")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")
	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	JWTSecret = os.Getenv("JWT_SECRET")
	AdminEmail = os.Getenv("ADMIN_EMAIL")
	AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	MannequinServiceURL = getEnv("MANNEQUIN_SERVICE_URL", "http://127.0.0.1:8001")

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001")
	AllowedOrigins = nil
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			AllowedOrigins = append(AllowedOrigins, o)
		}
	}

	SaveHistory = boolEnv("FITCHECK_SAVE_HISTORY")
	MirrorImages = boolEnv("FITCHECK_MIRROR_IMAGES")
	BrowserFallback = boolEnv("FITCHECK_BROWSER_FALLBACK")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
