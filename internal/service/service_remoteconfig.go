package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/znbflyingant/updateDeviceConfig/internal/adapter"
	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/models"
)

// Platform selects which application's remote configuration a patch
// targets. An empty platform defaults to iOS.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// RemoteConfigService patches individual remote-config parameters through
// the full-config update protocol: every write fetches a fresh snapshot,
// rewrites the one target parameter, and submits the complete item list
// back with the snapshot's version.
type RemoteConfigService struct {
	ios        adapter.RemoteConfigAPI
	android    adapter.RemoteConfigAPI
	defaultKey string
	logger     *logger.Logger
}

func NewRemoteConfigService(ios, android adapter.RemoteConfigAPI, defaultKey string, log *logger.Logger) *RemoteConfigService {
	return &RemoteConfigService{
		ios:        ios,
		android:    android,
		defaultKey: defaultKey,
		logger:     log,
	}
}

// Patch merges value into the named parameter on one platform and returns
// the parameter's value as read back after the update. An empty key patches
// the configured default parameter.
func (s *RemoteConfigService) Patch(ctx context.Context, platform Platform, key, value string) (models.PatchResult, error) {
	client, err := s.clientFor(platform)
	if err != nil {
		return models.PatchResult{}, err
	}
	return s.patchByKey(ctx, client, s.resolveKey(key), value)
}

// PatchBoth applies the same patch to both platforms concurrently. It fails
// if either platform fails; the other platform's update may already have
// been applied by then.
func (s *RemoteConfigService) PatchBoth(ctx context.Context, key, value string) (models.DualPatchResult, error) {
	resolved := s.resolveKey(key)

	var result models.DualPatchResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.patchByKey(gctx, s.ios, resolved, value)
		if err != nil {
			return fmt.Errorf("ios: %w", err)
		}
		result.IOS = r
		return nil
	})
	g.Go(func() error {
		r, err := s.patchByKey(gctx, s.android, resolved, value)
		if err != nil {
			return fmt.Errorf("android: %w", err)
		}
		result.Android = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.DualPatchResult{}, err
	}

	return result, nil
}

func (s *RemoteConfigService) patchByKey(ctx context.Context, client adapter.RemoteConfigAPI, key, value string) (models.PatchResult, error) {
	snapshot, err := client.Query(ctx)
	if err != nil {
		return models.PatchResult{}, err
	}

	target, found := snapshot.FindItem(key)
	if !found {
		return models.PatchResult{}, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}

	merged := mergeValue(target.DefaultValue.Value, value)

	items := make([]models.UpdateConfigItem, 0, len(snapshot.ConfigItems))
	for _, item := range snapshot.ConfigItems {
		update := item.ToUpdateItem()
		if item.Name == key {
			update.DefaultValue.Value = merged
		}
		items = append(items, update)
	}

	if _, err := client.Update(ctx, items, snapshot.Filters, snapshot.VersionInfo.Version); err != nil {
		return models.PatchResult{}, err
	}

	// read back so the caller sees what the service actually stored
	latest, err := client.Query(ctx)
	if err != nil {
		return models.PatchResult{}, fmt.Errorf("verify update: %w", err)
	}
	item, found := latest.FindItem(key)
	if !found {
		return models.PatchResult{}, fmt.Errorf("verify update: %w: %q", ErrKeyNotFound, key)
	}

	s.logger.Info().
		Str("key", key).
		Int64("version", latest.VersionInfo.Version).
		Msg("remote config parameter updated")

	return models.PatchResult{Latest: item.DefaultValue.Value}, nil
}

func (s *RemoteConfigService) resolveKey(key string) string {
	if key == "" {
		return s.defaultKey
	}
	return key
}

func (s *RemoteConfigService) clientFor(platform Platform) (adapter.RemoteConfigAPI, error) {
	switch platform {
	case "", PlatformIOS:
		return s.ios, nil
	case PlatformAndroid:
		return s.android, nil
	default:
		return nil, &ValidationError{Errors: []string{fmt.Sprintf("unknown platform %q", platform)}}
	}
}

// mergeValue combines the stored parameter value with the incoming patch.
// When both sides are JSON objects the patch is shallow-merged over the
// stored object, so fields absent from the patch survive. An empty patch
// preserves the stored value; in every other case the patch replaces the
// stored value wholesale.
func mergeValue(existing, patch string) string {
	if strings.TrimSpace(patch) == "" {
		return existing
	}

	var base map[string]any
	if err := json.Unmarshal([]byte(existing), &base); err != nil || base == nil {
		return patch
	}

	var overlay map[string]any
	if err := json.Unmarshal([]byte(patch), &overlay); err != nil || overlay == nil {
		return patch
	}

	for k, v := range overlay {
		base[k] = v
	}

	merged, err := json.Marshal(base)
	if err != nil {
		return patch
	}
	return string(merged)
}
