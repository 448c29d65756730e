// Package service implements the application's use cases on top of the
// outbound adapters: batch firmware uploads with multipart retry, the
// remote-config patch pipeline, release-metadata validation, and temporary
// credential issuance.
package service

import (
	"time"

	"github.com/znbflyingant/updateDeviceConfig/internal/adapter"
	"github.com/znbflyingant/updateDeviceConfig/internal/config"
	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
)

// upstreamTimeout bounds every call to the remote-config API.
const upstreamTimeout = 30 * time.Second

// Services aggregates all application services for injection into the HTTP
// handler.
type Services struct {
	Upload       *UploadService
	RemoteConfig *RemoteConfigService
	Validation   *ValidationService
	Credentials  *CredentialService
}

// NewServices wires the full service stack from configuration: one
// remote-config client per platform, the object-storage factory, and the
// credential issuer.
func NewServices(cfg *config.StructuredConfig, log *logger.Logger) *Services {
	ios := adapter.NewRemoteConfigClient(cfg.Huawei.IOS(), upstreamTimeout, log)
	android := adapter.NewRemoteConfigClient(cfg.Huawei.Android(), upstreamTimeout, log)
	factory := adapter.NewOSSStorageFactory(cfg.OSS, log)
	issuer := adapter.NewStsIssuer(cfg.OSS, cfg.STS, log)

	return &Services{
		Upload:       NewUploadService(factory, cfg.OSS, cfg.CDNBaseURL, log),
		RemoteConfig: NewRemoteConfigService(ios, android, cfg.Huawei.RCKey, log),
		Validation:   NewValidationService(),
		Credentials:  NewCredentialService(issuer, log),
	}
}
