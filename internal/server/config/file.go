package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/clinic/internal/timex"
	"github.com/goccy/go-yaml"
)

// FileConfig is the on-disk shape of the configuration, decoded from JSON
// or YAML. Zero values mean "not set" and leave the current value alone.
type FileConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC      string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN           string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey             string         `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	CookieSecure          *bool          `json:"cookie_secure" yaml:"cookie_secure"`
	TrustProxy            *bool          `json:"trust_proxy" yaml:"trust_proxy"`
	AllowedOrigins        []string       `json:"allowed_origins" yaml:"allowed_origins"`
	LoginRatePerMinute    int            `json:"login_rate_per_minute" yaml:"login_rate_per_minute"`
	LoginBurst            int            `json:"login_burst" yaml:"login_burst"`
	PagesDir              string         `json:"pages_dir" yaml:"pages_dir"`
	S3RootUser            string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region              string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	LogLevel              string         `json:"log_level" yaml:"log_level"`
}

// parseFile loads path into config. An empty path is a no-op. Files ending
// in .yaml or .yml are decoded as YAML, anything else as JSON. Unreadable or
// malformed files panic, since the server cannot start on a broken config.
func parseFile(config *Config, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	set := func(src string, dst *string) {
		if src != "" {
			*dst = src
		}
	}

	set(c.EndpointAddrHTTP, &config.EndpointAddrHTTP)
	set(c.EndpointAddrGRPC, &config.EndpointAddrGRPC)
	set(c.DatabaseDSN, &config.DatabaseDSN)
	set(c.SecretKey, &config.SecretKey)
	set(c.PagesDir, &config.PagesDir)
	set(c.S3RootUser, &config.S3RootUser)
	set(c.S3RootPassword, &config.S3RootPassword)
	set(c.S3Bucket, &config.S3Bucket)
	set(c.S3Region, &config.S3Region)
	set(c.S3BaseEndpoint, &config.S3BaseEndpoint)
	set(c.LogLevel, &config.LogLevel)

	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.TrustProxy != nil {
		config.TrustProxy = *c.TrustProxy
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.LoginRatePerMinute > 0 {
		config.LoginRatePerMinute = c.LoginRatePerMinute
	}
	if c.LoginBurst > 0 {
		config.LoginBurst = c.LoginBurst
	}
}
