package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseFile_JSON(t *testing.T) {
	path := writeTemp(t, "clinic.json", `{
		"endpoint_addr_http": "0.0.0.0:9000",
		"database_dsn": "postgres://json",
		"secret_key": "json-secret",
		"token_validity_duration": "4h",
		"cookie_secure": false,
		"trust_proxy": true,
		"allowed_origins": ["https://a.example"],
		"s3_bucket": "photos"
	}`)

	c := &Config{}
	c.LoadDefaults()
	parseFile(c, path)

	assert.Equal(t, "0.0.0.0:9000", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://json", c.DatabaseDSN)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 4*time.Hour, c.TokenValidityDuration)
	assert.False(t, c.CookieSecure)
	assert.True(t, c.TrustProxy)
	assert.Equal(t, []string{"https://a.example"}, c.AllowedOrigins)
	assert.Equal(t, "photos", c.S3Bucket)
	// untouched fields keep their defaults
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, "us-east-1", c.S3Region)
}

func Test_parseFile_YAML(t *testing.T) {
	path := writeTemp(t, "clinic.yaml", `
endpoint_addr_grpc: ":6000"
secret_key: yaml-secret
token_validity_duration: 30m
login_rate_per_minute: 20
log_level: warn
`)

	c := &Config{}
	c.LoadDefaults()
	parseFile(c, path)

	assert.Equal(t, ":6000", c.EndpointAddrGRPC)
	assert.Equal(t, "yaml-secret", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, 20, c.LoginRatePerMinute)
	assert.Equal(t, "warn", c.LogLevel)
	assert.True(t, c.CookieSecure)
}

func Test_parseFile_EmptyPathIsNoop(t *testing.T) {
	c := &Config{SecretKey: "keep"}
	parseFile(c, "")
	assert.Equal(t, "keep", c.SecretKey)
}

func Test_parseFile_InvalidPanics(t *testing.T) {
	bad := writeTemp(t, "bad.json", `{ this is not valid json`)
	require.Panics(t, func() { parseFile(&Config{}, bad) })

	require.Panics(t, func() { parseFile(&Config{}, filepath.Join(t.TempDir(), "missing.json")) })
}
