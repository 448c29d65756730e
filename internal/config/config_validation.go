package config

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants required at startup: the object-storage credential trio and
// the AGC API client must be present. The STS role ARN is deliberately not
// required here; the STS endpoint reports its absence per request.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.OSS.Bucket == "" || cfg.OSS.AccessKeyID == "" || cfg.OSS.AccessKeySecret == "" {
		return ErrInvalidOSSConfigs
	}

	if cfg.Huawei.ClientID == "" || cfg.Huawei.ClientSecret == "" {
		return ErrInvalidHuaweiConfigs
	}

	if cfg.Huawei.IOS().ProductID == "" || cfg.Huawei.IOS().AppID == "" {
		return ErrInvalidHuaweiConfigs
	}

	return nil
}
