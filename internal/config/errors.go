package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete.
var (
	// ErrInvalidOSSConfigs indicates missing object-storage settings
	// (bucket name or the access key pair).
	ErrInvalidOSSConfigs = errors.New("invalid OSS configuration: bucket, access key id and secret are required")
	// ErrInvalidHuaweiConfigs indicates missing AGC API settings
	// (client credentials or the product/app identifiers).
	ErrInvalidHuaweiConfigs = errors.New("invalid Huawei configuration: client id/secret and product/app ids are required")
)
