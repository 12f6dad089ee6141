package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FITCHECK_SAVE_HISTORY", "")
	t.Setenv("FITCHECK_MIRROR_IMAGES", "")
	t.Setenv("FITCHECK_BROWSER_FALLBACK", "")

	LoadConfig()

	assert.Equal(t, "8000", Port)
	assert.Equal(t, "mongodb://localhost:27017/", MongoURI)
	assert.Contains(t, AllowedOrigins, "http://localhost:3000")
	assert.False(t, SaveHistory)
	assert.False(t, MirrorImages)
	assert.False(t, BrowserFallback)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://fitcheck.app, https://admin.fitcheck.app")
	t.Setenv("FITCHECK_SAVE_HISTORY", "true")

	LoadConfig()

	assert.Equal(t, "9090", Port)
	assert.Equal(t, []string{"https://fitcheck.app", "https://admin.fitcheck.app"}, AllowedOrigins)
	assert.True(t, SaveHistory)
}
