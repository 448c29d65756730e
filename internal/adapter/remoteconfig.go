package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/znbflyingant/updateDeviceConfig/internal/config"
	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/models"
)

const (
	tokenPath        = "/api/oauth2/v1/token"
	remoteConfigPath = "/api/remote-config/v1/config"

	// tokenExpiryMargin is subtracted from the advertised token lifetime
	// so a token is never used in the final stretch before it expires.
	tokenExpiryMargin = 5 * time.Minute

	// tokenFallbackLifetime is assumed when the grant response omits
	// expires_in.
	tokenFallbackLifetime = 50 * time.Minute
)

// tokenSession is a cached access token with its computed expiry.
type tokenSession struct {
	accessToken string
	expiresAt   time.Time
}

func (s tokenSession) valid(now time.Time) bool {
	return s.accessToken != "" && now.Before(s.expiresAt)
}

// RemoteConfigClient talks to one platform's AGC remote configuration over
// REST. Safe for concurrent use; the token session is refreshed lazily
// under a mutex.
type RemoteConfigClient struct {
	client *resty.Client
	creds  config.Credentials
	logger *logger.Logger
	now    func() time.Time

	mu      sync.Mutex
	session tokenSession
}

var _ RemoteConfigAPI = (*RemoteConfigClient)(nil)

// NewRemoteConfigClient creates a client bound to one platform's
// credential set.
func NewRemoteConfigClient(creds config.Credentials, timeout time.Duration, log *logger.Logger) *RemoteConfigClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(creds.BaseURL, "/")).
		SetTimeout(timeout)

	return &RemoteConfigClient{
		client: client,
		creds:  creds,
		logger: log,
		now:    time.Now,
	}
}

// Token implements [RemoteConfigAPI].
func (c *RemoteConfigClient) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.valid(c.now()) {
		return c.session.accessToken, nil
	}

	var tokenResp models.TokenResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.creds.ClientID,
			"client_secret": c.creds.ClientSecret,
		}).
		SetResult(&tokenResp).
		Post(tokenPath)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: %w", ErrAuth, newUpstreamError("token", resp.StatusCode(), resp.Body()))
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("%w: response carried no access token", ErrAuth)
	}

	lifetime := tokenFallbackLifetime
	if tokenResp.ExpiresIn > 0 {
		lifetime = time.Duration(tokenResp.ExpiresIn) * time.Second
	}
	if lifetime > tokenExpiryMargin {
		lifetime -= tokenExpiryMargin
	}
	c.session = tokenSession{
		accessToken: tokenResp.AccessToken,
		expiresAt:   c.now().Add(lifetime),
	}
	c.logger.Debug().
		Time("expires_at", c.session.expiresAt).
		Msg("acquired remote config access token")

	return c.session.accessToken, nil
}

// Query implements [RemoteConfigAPI].
func (c *RemoteConfigClient) Query(ctx context.Context) (models.RemoteConfigSnapshot, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return models.RemoteConfigSnapshot{}, err
	}

	var snapshot models.RemoteConfigSnapshot
	resp, err := c.configRequest(ctx, token).
		SetResult(&snapshot).
		Get(remoteConfigPath)
	if err != nil {
		return models.RemoteConfigSnapshot{}, fmt.Errorf("query remote config: %w", err)
	}
	if resp.IsError() {
		return models.RemoteConfigSnapshot{}, newUpstreamError("query", resp.StatusCode(), resp.Body())
	}
	if snapshot.Ret != nil && snapshot.Ret.Code != 0 {
		return models.RemoteConfigSnapshot{}, fmt.Errorf("query remote config: ret code %d: %s", snapshot.Ret.Code, snapshot.Ret.Msg)
	}

	c.logger.Debug().
		Int("items", len(snapshot.ConfigItems)).
		Int64("version", snapshot.VersionInfo.Version).
		Msg("fetched remote config snapshot")

	return snapshot, nil
}

// Update implements [RemoteConfigAPI].
func (c *RemoteConfigClient) Update(ctx context.Context, items []models.UpdateConfigItem, filters json.RawMessage, version int64) (models.UpdateConfigResponse, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return models.UpdateConfigResponse{}, err
	}

	var updateResp models.UpdateConfigResponse
	resp, err := c.configRequest(ctx, token).
		SetBody(models.UpdateConfigRequest{
			ConfigItems: items,
			Filters:     filters,
			Version:     version,
		}).
		SetResult(&updateResp).
		Put(remoteConfigPath)
	if err != nil {
		return models.UpdateConfigResponse{}, fmt.Errorf("update remote config: %w", err)
	}
	if resp.IsError() {
		return models.UpdateConfigResponse{}, newUpstreamError("update", resp.StatusCode(), resp.Body())
	}
	if updateResp.Ret != nil && updateResp.Ret.Code != 0 {
		return models.UpdateConfigResponse{}, fmt.Errorf("%w: code %d: %s", ErrUpdateRejected, updateResp.Ret.Code, updateResp.Ret.Msg)
	}

	return updateResp, nil
}

func (c *RemoteConfigClient) configRequest(ctx context.Context, token string) *resty.Request {
	return c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("productId", c.creds.ProductID).
		SetHeader("client_id", c.creds.ClientID).
		SetHeader("appId", c.creds.AppID)
}
