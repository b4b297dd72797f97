package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	for _, key := range []string{"PORT", "REDIS_PORT", "MONGO_URI", "DB_NAME", "JWT_SECRET_KEY", "UPLOAD_DIR", "REDIS_HOST"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "neighbouraid", cfg.DBName)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, "", cfg.RedisHost)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("DB_NAME", "neighbouraid_dev")
	t.Setenv("JWT_SECRET_KEY", "override")
	t.Setenv("UPLOAD_DIR", "/tmp/uploads")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg := LoadConfig()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "neighbouraid_dev", cfg.DBName)
	assert.Equal(t, "override", cfg.JWTSecret)
	assert.Equal(t, "/tmp/uploads", cfg.UploadDir)
	assert.Equal(t, "cache", cfg.RedisHost)
	assert.Equal(t, 6380, cfg.RedisPort)
}
