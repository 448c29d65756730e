package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/aliyun/alibaba-cloud-sdk-go/sdk/requests"
	"github.com/aliyun/alibaba-cloud-sdk-go/services/sts"

	"github.com/znbflyingant/updateDeviceConfig/internal/config"
	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/models"
)

// StsIssuer issues temporary bucket credentials by assuming the configured
// RAM role with the long-lived access key as caller identity.
type StsIssuer struct {
	ossCfg config.OSS
	stsCfg config.STS
	logger *logger.Logger
}

var _ CredentialIssuer = (*StsIssuer)(nil)

func NewStsIssuer(ossCfg config.OSS, stsCfg config.STS, log *logger.Logger) *StsIssuer {
	return &StsIssuer{
		ossCfg: ossCfg,
		stsCfg: stsCfg,
		logger: log,
	}
}

// AssumeRole implements [CredentialIssuer].
func (s *StsIssuer) AssumeRole(ctx context.Context) (models.StsCredentials, error) {
	if s.stsCfg.RoleArn == "" {
		return models.StsCredentials{}, ErrMissingRoleArn
	}
	if err := ctx.Err(); err != nil {
		return models.StsCredentials{}, err
	}

	client, err := sts.NewClientWithAccessKey(
		stsRegion(s.ossCfg.Region),
		s.ossCfg.AccessKeyID,
		s.ossCfg.AccessKeySecret,
	)
	if err != nil {
		return models.StsCredentials{}, fmt.Errorf("create sts client: %w", err)
	}

	request := sts.CreateAssumeRoleRequest()
	request.Scheme = "https"
	request.RoleArn = s.stsCfg.RoleArn
	request.RoleSessionName = s.stsCfg.RoleSessionName
	request.DurationSeconds = requests.NewInteger(s.stsCfg.DurationSeconds)

	response, err := client.AssumeRole(request)
	if err != nil {
		return models.StsCredentials{}, fmt.Errorf("assume role %q: %w", s.stsCfg.RoleArn, err)
	}

	s.logger.Debug().
		Str("session", s.stsCfg.RoleSessionName).
		Str("expiration", response.Credentials.Expiration).
		Msg("issued temporary upload credentials")

	return models.StsCredentials{
		AccessKeyID:     response.Credentials.AccessKeyId,
		AccessKeySecret: response.Credentials.AccessKeySecret,
		SecurityToken:   response.Credentials.SecurityToken,
		Expiration:      response.Credentials.Expiration,
		Region:          s.ossCfg.Region,
		Bucket:          s.ossCfg.Bucket,
		UploadPath:      s.ossCfg.UploadPath,
	}, nil
}

// stsRegion converts an OSS region identifier ("oss-cn-shenzhen") into the
// plain region id the STS endpoint expects ("cn-shenzhen").
func stsRegion(ossRegion string) string {
	return strings.TrimPrefix(ossRegion, "oss-")
}
