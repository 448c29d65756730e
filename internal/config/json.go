package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors the subset of [StructuredConfig] that may be
// supplied through a JSON file. Durations accept both "5m"-style strings and
// nanosecond numbers.
type StructuredJSONConfig struct {
	Server struct {
		Address        string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	OSS struct {
		Region           string   `json:"region"`
		Bucket           string   `json:"bucket"`
		UploadPath       string   `json:"upload_path"`
		CDNDomain        string   `json:"cdn_domain"`
		Timeout          Duration `json:"timeout"`
		MultipartEnabled bool     `json:"multipart_enabled"`
		PartSizeMB       int64    `json:"part_size_mb"`
		Parallel         int      `json:"parallel"`
		Retry            int      `json:"retry"`
	} `json:"oss,omitempty"`

	Huawei struct {
		BaseURL string `json:"base_url"`
		RCKey   string `json:"rc_key"`
	} `json:"huawei,omitempty"`

	CDNBaseURL     string   `json:"cdn_base_url"`
	AllowedOrigins []string `json:"allowed_origins"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Server: Server{
			Address:        jsonCfg.Server.Address,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		OSS: OSS{
			Region:           jsonCfg.OSS.Region,
			Bucket:           jsonCfg.OSS.Bucket,
			UploadPath:       jsonCfg.OSS.UploadPath,
			CDNDomain:        jsonCfg.OSS.CDNDomain,
			Timeout:          time.Duration(jsonCfg.OSS.Timeout),
			MultipartEnabled: jsonCfg.OSS.MultipartEnabled,
			PartSizeMB:       jsonCfg.OSS.PartSizeMB,
			Parallel:         jsonCfg.OSS.Parallel,
			Retry:            jsonCfg.OSS.Retry,
		},
		Huawei: Huawei{
			BaseURL: jsonCfg.Huawei.BaseURL,
			RCKey:   jsonCfg.Huawei.RCKey,
		},
		CDNBaseURL:     jsonCfg.CDNBaseURL,
		AllowedOrigins: jsonCfg.AllowedOrigins,
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
