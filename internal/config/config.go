package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the firmware
// console backend. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the reported version
	// and the CDN base used when building public download URLs.
	App App `envPrefix:"APP_"`

	// Server holds network address and timeout settings for the HTTP server,
	// plus the inbound-traffic policies (CORS origins, rate limits).
	Server Server `envPrefix:"SERVER_"`

	// OSS holds the object-storage bucket coordinates, credentials and the
	// upload tuning knobs (multipart, part size, parallelism, retry count).
	OSS OSS `envPrefix:"OSS_"`

	// STS holds the role settings for issuing temporary upload credentials.
	STS STS `envPrefix:"STS_"`

	// Huawei holds the AGC Connect API credentials for both mobile
	// platforms and the default remote-config parameter key.
	Huawei Huawei `envPrefix:"HUAWEI_"`

	// CDNBaseURL is the public base prefixed to uploaded object keys when
	// assembling the update manifest (e.g. "https://res-cdn.example.com").
	// Env: CDN_BASE_URL
	CDNBaseURL string `env:"CDN_BASE_URL"`

	// AllowedOrigins is the CORS origin whitelist. Entries may contain `*`
	// wildcard segments (e.g. "https://*.vercel.app"); an empty list allows
	// every origin.
	// Env: ALLOWED_ORIGINS (comma-separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string reported by the health
	// endpoint (e.g. "1.0.0").
	// Env: APP_VERSION
	Version string `env:"VERSION" envDefault:"1.0.0"`
}

// Server holds network and inbound-traffic settings for the HTTP layer.
type Server struct {
	// Address is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	Address string `env:"ADDRESS" envDefault:":8080"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it. Large batch uploads need this
	// to comfortably exceed the object-storage timeout.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10m"`

	// RateLimitWindow is the sliding window over which RateLimitMax
	// requests per client IP are allowed.
	// Env: SERVER_RATE_LIMIT_WINDOW
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`

	// RateLimitMax is the number of API requests allowed per client IP per
	// window. Health endpoints are exempt.
	// Env: SERVER_RATE_LIMIT_MAX
	RateLimitMax int `env:"RATE_LIMIT_MAX" envDefault:"100"`
}

// OSS holds the Alibaba Cloud object-storage settings.
type OSS struct {
	// Region is the OSS region identifier (e.g. "oss-cn-shenzhen"); the
	// endpoint is derived as https://<region>.aliyuncs.com.
	// Env: OSS_REGION
	Region string `env:"REGION" envDefault:"oss-cn-shenzhen"`

	// Bucket is the destination bucket for firmware objects.
	// Env: OSS_BUCKET
	Bucket string `env:"BUCKET"`

	// AccessKeyID / AccessKeySecret are the long-lived credentials used for
	// server-side uploads and as the STS caller identity.
	// Env: OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	AccessKeySecret string `env:"ACCESS_KEY_SECRET"`

	// UploadPath is the key prefix for direct browser uploads.
	// Env: OSS_UPLOAD_PATH
	UploadPath string `env:"UPLOAD_PATH" envDefault:"firmware/"`

	// CDNDomain is the CDN host substituted for the raw bucket host when a
	// completed direct upload is reported (e.g. "https://cdn.example.com").
	// Env: OSS_CDN_DOMAIN
	CDNDomain string `env:"CDN_DOMAIN"`

	// Timeout bounds every object-storage client call.
	// Env: OSS_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5m"`

	// MultipartEnabled switches batch uploads to the chunked multipart
	// strategy with retry; when false every file is a single streamed put.
	// Env: OSS_MULTIPART_ENABLED
	MultipartEnabled bool `env:"MULTIPART_ENABLED"`

	// PartSizeMB is the multipart chunk size in megabytes.
	// Env: OSS_PART_SIZE_MB
	PartSizeMB int64 `env:"PART_SIZE_MB" envDefault:"10"`

	// Parallel is the number of parts uploaded concurrently within one
	// multipart operation. 1 means serial.
	// Env: OSS_PARALLEL
	Parallel int `env:"PARALLEL" envDefault:"1"`

	// Retry is the number of attempts for one multipart operation before
	// falling back to a plain streamed put.
	// Env: OSS_RETRY
	Retry int `env:"RETRY" envDefault:"5"`
}

// PartSize returns the multipart chunk size in bytes.
func (o OSS) PartSize() int64 {
	return o.PartSizeMB * 1024 * 1024
}

// Endpoint returns the regional OSS API endpoint.
func (o OSS) Endpoint() string {
	return "https://" + o.Region + ".aliyuncs.com"
}

// STS holds the settings for issuing temporary upload credentials.
type STS struct {
	// RoleArn is the RAM role assumed when issuing STS tokens. When empty,
	// the STS endpoint reports a configuration error.
	// Env: STS_ROLE_ARN
	RoleArn string `env:"ROLE_ARN"`

	// RoleSessionName labels the assumed-role session.
	// Env: STS_ROLE_SESSION_NAME
	RoleSessionName string `env:"ROLE_SESSION_NAME" envDefault:"firmware-upload-session"`

	// DurationSeconds is the lifetime of issued credentials.
	// Env: STS_DURATION_SECONDS
	DurationSeconds int `env:"DURATION_SECONDS" envDefault:"3600"`
}

// Huawei holds the AGC Connect API settings. One API client (id/secret) is
// shared by both platforms; product and app IDs differ per platform, with
// the legacy unprefixed variables doubling as the Android set and as the
// iOS fallback.
type Huawei struct {
	// ClientID / ClientSecret are the Connect API client credentials.
	// Env: HUAWEI_CLIENT_ID, HUAWEI_CLIENT_SECRET
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`

	// BaseURL is the Connect API root.
	// Env: HUAWEI_BASE_URL
	BaseURL string `env:"BASE_URL" envDefault:"https://connect-api.cloud.huawei.com"`

	// RCKey is the default remote-config parameter patched when a request
	// does not name one explicitly.
	// Env: HUAWEI_RC_KEY
	RCKey string `env:"RC_KEY" envDefault:"device_upgrade_info"`

	// IOSProductID / IOSAppID identify the iOS application.
	// Env: HUAWEI_IOS_PRODUCT_ID, HUAWEI_IOS_APP_ID
	IOSProductID string `env:"IOS_PRODUCT_ID"`
	IOSAppID     string `env:"IOS_APP_ID"`

	// ProductID / AppID identify the Android application and act as the
	// legacy fallback for the iOS set.
	// Env: HUAWEI_PRODUCT_ID, HUAWEI_APP_ID
	ProductID string `env:"PRODUCT_ID"`
	AppID     string `env:"APP_ID"`
}

// Credentials is one platform's resolved AGC API identity.
type Credentials struct {
	ClientID     string
	ClientSecret string
	ProductID    string
	AppID        string
	BaseURL      string
}

// IOS returns the iOS credential set, falling back to the legacy
// unprefixed product/app IDs when the iOS-specific ones are unset.
func (h Huawei) IOS() Credentials {
	productID := h.IOSProductID
	if productID == "" {
		productID = h.ProductID
	}
	appID := h.IOSAppID
	if appID == "" {
		appID = h.AppID
	}

	return Credentials{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		ProductID:    productID,
		AppID:        appID,
		BaseURL:      h.BaseURL,
	}
}

// Android returns the Android credential set.
func (h Huawei) Android() Credentials {
	return Credentials{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		ProductID:    h.ProductID,
		AppID:        h.AppID,
		BaseURL:      h.BaseURL,
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Command-line flags
//  2. Environment variables (including tag defaults)
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags().
		withEnv().
		withJSON().
		build()
}
