package config

import (
	"strconv"
	"strings"
	"time"
)

// Environment variable names understood by parseEnv.
const (
	EnvHTTPAddr       = "CLINIC_HTTP_ADDR"
	EnvGRPCAddr       = "CLINIC_GRPC_ADDR"
	EnvDatabaseDSN    = "DATABASE_URL"
	EnvSecretKey      = "JWT_SECRET"
	EnvTokenValidity  = "CLINIC_TOKEN_VALIDITY"
	EnvAdminUsername  = "ADMIN_USERNAME"
	EnvAdminPassword  = "ADMIN_PASSWORD"
	EnvCookieSecure   = "CLINIC_COOKIE_SECURE"
	EnvTrustProxy     = "CLINIC_TRUST_PROXY"
	EnvAllowedOrigins = "CLINIC_ALLOWED_ORIGINS"
	EnvLoginRate      = "CLINIC_LOGIN_RATE_PER_MINUTE"
	EnvLoginBurst     = "CLINIC_LOGIN_BURST"
	EnvPagesDir       = "CLINIC_PAGES_DIR"
	EnvS3User         = "S3_ROOT_USER"
	EnvS3Password     = "S3_ROOT_PASSWORD"
	EnvS3Bucket       = "S3_BUCKET"
	EnvS3Region       = "S3_REGION"
	EnvS3Endpoint     = "S3_BASE_ENDPOINT"
	EnvLogLevel       = "CLINIC_LOG_LEVEL"
)

// parseEnv overlays values found through lookup onto config. Malformed
// numbers, booleans and durations are ignored and keep the previous value.
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	str(EnvHTTPAddr, &config.EndpointAddrHTTP)
	str(EnvGRPCAddr, &config.EndpointAddrGRPC)
	str(EnvDatabaseDSN, &config.DatabaseDSN)
	str(EnvSecretKey, &config.SecretKey)
	str(EnvAdminUsername, &config.AdminUsername)
	str(EnvAdminPassword, &config.AdminPassword)
	str(EnvPagesDir, &config.PagesDir)
	str(EnvS3User, &config.S3RootUser)
	str(EnvS3Password, &config.S3RootPassword)
	str(EnvS3Bucket, &config.S3Bucket)
	str(EnvS3Region, &config.S3Region)
	str(EnvS3Endpoint, &config.S3BaseEndpoint)
	str(EnvLogLevel, &config.LogLevel)

	if v, ok := lookup(EnvTokenValidity); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := lookup(EnvCookieSecure); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.CookieSecure = b
		}
	}
	if v, ok := lookup(EnvTrustProxy); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.TrustProxy = b
		}
	}
	if v, ok := lookup(EnvAllowedOrigins); ok && v != "" {
		config.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup(EnvLoginRate); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.LoginRatePerMinute = n
		}
	}
	if v, ok := lookup(EnvLoginBurst); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.LoginBurst = n
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
