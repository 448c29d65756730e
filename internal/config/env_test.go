package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_VERSION": "3.1.4",

		"SERVER_ADDRESS":           "localhost:8080",
		"SERVER_REQUEST_TIMEOUT":   "5m",
		"SERVER_RATE_LIMIT_WINDOW": "1m",
		"SERVER_RATE_LIMIT_MAX":    "10",

		"OSS_REGION":            "oss-cn-hangzhou",
		"OSS_BUCKET":            "firmware-bucket",
		"OSS_ACCESS_KEY_ID":     "ak-id",
		"OSS_ACCESS_KEY_SECRET": "ak-secret",
		"OSS_UPLOAD_PATH":       "releases/",
		"OSS_CDN_DOMAIN":        "https://cdn.example.com",
		"OSS_TIMEOUT":           "90s",
		"OSS_MULTIPART_ENABLED": "true",
		"OSS_PART_SIZE_MB":      "16",
		"OSS_PARALLEL":          "4",
		"OSS_RETRY":             "3",

		"STS_ROLE_ARN":          "acs:ram::123:role/upload",
		"STS_ROLE_SESSION_NAME": "console-session",
		"STS_DURATION_SECONDS":  "1800",

		"HUAWEI_CLIENT_ID":      "client-id",
		"HUAWEI_CLIENT_SECRET":  "client-secret",
		"HUAWEI_BASE_URL":       "https://connect.example.com",
		"HUAWEI_RC_KEY":         "upgrade_key",
		"HUAWEI_PRODUCT_ID":     "prod-android",
		"HUAWEI_APP_ID":         "app-android",
		"HUAWEI_IOS_PRODUCT_ID": "prod-ios",
		"HUAWEI_IOS_APP_ID":     "app-ios",

		"CDN_BASE_URL":    "https://res-cdn.example.com",
		"ALLOWED_ORIGINS": "https://console.example.com,https://*.vercel.app",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "3.1.4", cfg.App.Version)

	assert.Equal(t, "localhost:8080", cfg.Server.Address)
	assert.Equal(t, 5*time.Minute, cfg.Server.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Server.RateLimitWindow)
	assert.Equal(t, 10, cfg.Server.RateLimitMax)

	assert.Equal(t, "oss-cn-hangzhou", cfg.OSS.Region)
	assert.Equal(t, "firmware-bucket", cfg.OSS.Bucket)
	assert.Equal(t, "ak-id", cfg.OSS.AccessKeyID)
	assert.Equal(t, "ak-secret", cfg.OSS.AccessKeySecret)
	assert.Equal(t, "releases/", cfg.OSS.UploadPath)
	assert.Equal(t, "https://cdn.example.com", cfg.OSS.CDNDomain)
	assert.Equal(t, 90*time.Second, cfg.OSS.Timeout)
	assert.True(t, cfg.OSS.MultipartEnabled)
	assert.Equal(t, int64(16), cfg.OSS.PartSizeMB)
	assert.Equal(t, 4, cfg.OSS.Parallel)
	assert.Equal(t, 3, cfg.OSS.Retry)

	assert.Equal(t, "acs:ram::123:role/upload", cfg.STS.RoleArn)
	assert.Equal(t, "console-session", cfg.STS.RoleSessionName)
	assert.Equal(t, 1800, cfg.STS.DurationSeconds)

	assert.Equal(t, "client-id", cfg.Huawei.ClientID)
	assert.Equal(t, "client-secret", cfg.Huawei.ClientSecret)
	assert.Equal(t, "https://connect.example.com", cfg.Huawei.BaseURL)
	assert.Equal(t, "upgrade_key", cfg.Huawei.RCKey)
	assert.Equal(t, "prod-android", cfg.Huawei.ProductID)
	assert.Equal(t, "app-android", cfg.Huawei.AppID)
	assert.Equal(t, "prod-ios", cfg.Huawei.IOSProductID)
	assert.Equal(t, "app-ios", cfg.Huawei.IOSAppID)

	assert.Equal(t, "https://res-cdn.example.com", cfg.CDNBaseURL)
	assert.Equal(t, []string{"https://console.example.com", "https://*.vercel.app"}, cfg.AllowedOrigins)
}

func TestParseEnv_Defaults(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// tag defaults fill everything that is safe to default
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Minute, cfg.Server.RequestTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Server.RateLimitWindow)
	assert.Equal(t, 100, cfg.Server.RateLimitMax)

	assert.Equal(t, "oss-cn-shenzhen", cfg.OSS.Region)
	assert.Equal(t, "firmware/", cfg.OSS.UploadPath)
	assert.Equal(t, 5*time.Minute, cfg.OSS.Timeout)
	assert.Equal(t, int64(10), cfg.OSS.PartSizeMB)
	assert.Equal(t, 1, cfg.OSS.Parallel)
	assert.Equal(t, 5, cfg.OSS.Retry)

	assert.Equal(t, "firmware-upload-session", cfg.STS.RoleSessionName)
	assert.Equal(t, 3600, cfg.STS.DurationSeconds)

	assert.Equal(t, "https://connect-api.cloud.huawei.com", cfg.Huawei.BaseURL)
	assert.Equal(t, "device_upgrade_info", cfg.Huawei.RCKey)

	// credentials never default
	assert.Empty(t, cfg.OSS.Bucket)
	assert.Empty(t, cfg.OSS.AccessKeyID)
	assert.Empty(t, cfg.Huawei.ClientID)
	assert.Empty(t, cfg.STS.RoleArn)
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_VERSION",

		"SERVER_ADDRESS",
		"SERVER_REQUEST_TIMEOUT",
		"SERVER_RATE_LIMIT_WINDOW",
		"SERVER_RATE_LIMIT_MAX",

		"OSS_REGION",
		"OSS_BUCKET",
		"OSS_ACCESS_KEY_ID",
		"OSS_ACCESS_KEY_SECRET",
		"OSS_UPLOAD_PATH",
		"OSS_CDN_DOMAIN",
		"OSS_TIMEOUT",
		"OSS_MULTIPART_ENABLED",
		"OSS_PART_SIZE_MB",
		"OSS_PARALLEL",
		"OSS_RETRY",

		"STS_ROLE_ARN",
		"STS_ROLE_SESSION_NAME",
		"STS_DURATION_SECONDS",

		"HUAWEI_CLIENT_ID",
		"HUAWEI_CLIENT_SECRET",
		"HUAWEI_BASE_URL",
		"HUAWEI_RC_KEY",
		"HUAWEI_PRODUCT_ID",
		"HUAWEI_APP_ID",
		"HUAWEI_IOS_PRODUCT_ID",
		"HUAWEI_IOS_APP_ID",

		"CDN_BASE_URL",
		"ALLOWED_ORIGINS",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
