package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFiles_Precedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"app_port":"9000","jwt_timeout":"1h","ignored":3}`), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte("# comment\nAPP_PORT=9100\nJWT_SECRET=\"from-dotenv\"\n"), 0o644))
	t.Setenv("LOG_LEVEL", "warn")

	require.NoError(t, loadFromFiles(jsonPath, envPath))

	assert.Equal(t, "9100", get("APP_PORT", ""))
	assert.Equal(t, "from-dotenv", get("JWT_SECRET", ""))
	assert.Equal(t, time.Hour, duration("JWT_TIMEOUT", time.Minute))
	assert.Equal(t, "warn", get("LOG_LEVEL", ""))
}

func TestLoadFromFiles_MissingFilesUseDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loadFromFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, ".nope")))

	assert.Equal(t, defaultAppPort, get("APP_PORT", ""))
	assert.Equal(t, defaultJWTTimeout, duration("JWT_TIMEOUT", time.Minute))
}

func TestDuration_InvalidFallsBack(t *testing.T) {
	Set("CACHE_TTL", "soon")
	assert.Equal(t, defaultCacheTTL, CacheTTL())

	Set("CACHE_TTL", "-5s")
	assert.Equal(t, defaultCacheTTL, CacheTTL())

	Set("CACHE_TTL", "30s")
	assert.Equal(t, 30*time.Second, CacheTTL())
}

func TestDatabaseDriver_UnknownFallsBackToSQLite(t *testing.T) {
	Set("DB_DRIVER", "oracle")
	Set("DATABASE_DSN", "")
	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, defaultSQLiteDSN, DatabaseDSN())

	Set("DB_DRIVER", "postgres")
	assert.Equal(t, defaultPostgresDSN, DatabaseDSN())
	Set("DB_DRIVER", defaultDatabaseDriver)
}

func TestHTTPLimits(t *testing.T) {
	Set("AUTH_RATE_LIMIT", "0")
	assert.Equal(t, defaultAuthRateLimit, AuthRateLimit())
	Set("AUTH_RATE_LIMIT", "5")
	assert.Equal(t, 5, AuthRateLimit())

	Set("MAX_BODY_BYTES", "abc")
	assert.Equal(t, int64(defaultMaxBodyBytes), MaxBodyBytes())

	Set("CORS_ORIGINS", "")
	assert.Equal(t, "*", CORSOrigins())

	Set("AUTH_RATE_LIMIT", "")
	Set("MAX_BODY_BYTES", "")
}

func TestJWTTimeoutFloor(t *testing.T) {
	Set("JWT_TIMEOUT", "500ms")
	assert.Equal(t, time.Second, JWTTimeout())
	Set("JWT_TIMEOUT", "90m")
	assert.Equal(t, 90*time.Minute, JWTTimeout())
	Set("JWT_TIMEOUT", "")
}
