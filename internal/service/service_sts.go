package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/znbflyingant/updateDeviceConfig/internal/adapter"
	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/models"
)

// allowedExtensions lists the file extensions a direct browser upload may
// target.
var allowedExtensions = map[string]struct{}{
	".bin": {},
	".zip": {},
}

// CredentialService hands out temporary bucket credentials for direct
// browser-to-bucket uploads.
type CredentialService struct {
	issuer adapter.CredentialIssuer
	logger *logger.Logger
}

func NewCredentialService(issuer adapter.CredentialIssuer, log *logger.Logger) *CredentialService {
	return &CredentialService{issuer: issuer, logger: log}
}

// IssueUploadCredentials validates the intended file name, when given, and
// issues a temporary credential set scoped by the configured role.
func (s *CredentialService) IssueUploadCredentials(ctx context.Context, fileName string) (models.StsCredentials, error) {
	if fileName != "" {
		ext := strings.ToLower(path.Ext(fileName))
		if _, ok := allowedExtensions[ext]; !ok {
			return models.StsCredentials{}, fmt.Errorf("%w: %q", ErrUnsupportedFileType, fileName)
		}
	}

	creds, err := s.issuer.AssumeRole(ctx)
	if err != nil {
		return models.StsCredentials{}, err
	}

	s.logger.Info().Str("file", fileName).Msg("issued direct upload credentials")
	return creds, nil
}
