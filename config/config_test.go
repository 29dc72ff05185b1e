package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_TTL", "")
	cfg := Load()
	require.Equal(t, EnvDevelopment, cfg.Env)
	require.Equal(t, "/api/v1", cfg.APIPrefix)
	require.Equal(t, 24*time.Hour, cfg.JWTTTL)
	require.Equal(t, int64(5<<20), cfg.UploadMaxBytes)
	require.Equal(t, StorageLocal, cfg.StorageDriver)
	require.NoError(t, cfg.Validate())
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "tomorrow")
	t.Setenv("DB_MAX_CONNS", "many")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")
	cfg := Load()
	require.Equal(t, 24*time.Hour, cfg.JWTTTL)
	require.Equal(t, int32(10), cfg.DBMaxConns)
	require.False(t, cfg.MailSendEnabled)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.Env = "production"
	cfg.JWTSecret = defaultJWTSecret
	require.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg.JWTSecret = "s3cret"
	cfg.StorageDriver = StorageGCS
	cfg.GCSBucket = ""
	require.ErrorContains(t, cfg.Validate(), "GCS_BUCKET")

	cfg.StorageDriver = "ftp"
	require.ErrorContains(t, cfg.Validate(), "unknown STORAGE_DRIVER")

	cfg.StorageDriver = StorageGCS
	cfg.GCSBucket = "bucket"
	require.NoError(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d", DBSSLMode: "disable"}
	require.Equal(t, "postgres://u:p@h:1/d?sslmode=disable", cfg.PostgresDSN())
	cfg.DatabaseURL = "postgres://x"
	require.Equal(t, "postgres://x", cfg.PostgresDSN())
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " https://a.dev, ,https://b.dev ", ElasticsearchAddrs: "http://es:9200"}
	require.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.CORSOrigins())
	require.Equal(t, []string{"http://es:9200"}, cfg.ESAddrs())
}
