package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config json file path with configs
//	-cdn-base public CDN base URL for uploaded objects
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var jsonConfigPath string
	var cdnBaseURL string
	var requestTimeout time.Duration

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&cdnBaseURL, "cdn-base", "", "Public CDN base URL")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		Server: Server{
			Address:        serverAddress,
			RequestTimeout: requestTimeout,
		},
		CDNBaseURL:   cdnBaseURL,
		JSONFilePath: jsonConfigPath,
	}
}
