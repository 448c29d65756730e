package service

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/znbflyingant/updateDeviceConfig/models"
)

// semverPattern accepts plain three-component versions ("1.2.3"); no
// prerelease or build suffixes.
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ValidationService checks release metadata before any upload starts, so a
// malformed release is rejected in one round trip instead of after the
// binaries have already been pushed.
type ValidationService struct{}

func NewValidationService() *ValidationService {
	return &ValidationService{}
}

// ValidateConfig checks the submitted metadata and either echoes it back as
// accepted or fails with a [*ValidationError] listing every problem found.
func (s *ValidationService) ValidateConfig(meta models.ConfigMeta) (models.ValidatedConfig, error) {
	var errs []string

	if meta.Name == "" {
		errs = append(errs, "name is required")
	}
	if meta.Version == "" {
		errs = append(errs, "version is required")
	} else if !semverPattern.MatchString(meta.Version) {
		errs = append(errs, fmt.Sprintf("version %q must look like 1.2.3", meta.Version))
	}
	if len(meta.Description) > 0 && !isJSONString(meta.Description) {
		errs = append(errs, "description must be a string")
	}
	if len(meta.Files) > 0 && !isJSONArray(meta.Files) {
		errs = append(errs, "files must be an array")
	}

	if len(errs) > 0 {
		return models.ValidatedConfig{}, &ValidationError{Errors: errs}
	}

	return models.ValidatedConfig{Valid: true, Config: meta}, nil
}

func isJSONString(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

func isJSONArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
