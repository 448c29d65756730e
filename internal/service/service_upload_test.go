package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/znbflyingant/updateDeviceConfig/internal/adapter"
	"github.com/znbflyingant/updateDeviceConfig/internal/config"
	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/internal/mock"
	"github.com/znbflyingant/updateDeviceConfig/models"
)

// storageQueue hands out pre-built storages in order: the first one plays
// the shared base client, the rest play the fresh per-retry clients.
func storageQueue(t *testing.T, storages ...adapter.ObjectStorage) adapter.ObjectStorageFactory {
	t.Helper()
	i := 0
	return func() (adapter.ObjectStorage, error) {
		require.Less(t, i, len(storages), "factory called more often than expected")
		s := storages[i]
		i++
		return s, nil
	}
}

func newUploadService(factory adapter.ObjectStorageFactory, cfg config.OSS) *UploadService {
	svc := NewUploadService(factory, cfg, "https://cdn.example.com", logger.Nop())
	svc.jitter = func() time.Duration { return 0 }
	return svc
}

func TestUploadService_UploadBatch(t *testing.T) {
	t.Run("empty batch is rejected", func(t *testing.T) {
		svc := newUploadService(storageQueue(t), config.OSS{})

		_, err := svc.UploadBatch(context.Background(), models.BatchUploadRequest{})
		require.ErrorIs(t, err, ErrEmptyBatch)
	})

	t.Run("two files of the same role are rejected before any upload", func(t *testing.T) {
		svc := newUploadService(storageQueue(t), config.OSS{})

		_, err := svc.UploadBatch(context.Background(), models.BatchUploadRequest{
			Files: []models.BatchFile{
				{OriginalName: "a.bin", KeyPrefix: "firmware"},
				{OriginalName: "b.BIN", KeyPrefix: "firmware"},
			},
		})
		require.ErrorIs(t, err, ErrDuplicateRole)
	})

	t.Run("assembles manifest regardless of file order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storage := mock.NewMockObjectStorage(ctrl)
		storage.EXPECT().
			Put(gomock.Any(), "firmware/res.zip", gomock.Any()).
			Return("firmware/res.zip", nil)
		storage.EXPECT().
			Put(gomock.Any(), "firmware/app.bin", gomock.Any()).
			Return("firmware/app.bin", nil)

		svc := newUploadService(storageQueue(t, storage), config.OSS{})

		// archive listed first must not end up in the firmware slot
		manifest, err := svc.UploadBatch(context.Background(), models.BatchUploadRequest{
			Version:   "1.2.3",
			UpdateLog: "bugfixes",
			Files: []models.BatchFile{
				{OriginalName: "res.zip", Data: []byte("zip"), KeyPrefix: "firmware", MD5: "md5-zip"},
				{OriginalName: "app.bin", Data: []byte("bin"), KeyPrefix: "firmware", MD5: "md5-bin"},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "1.2.3", manifest.Version)
		assert.Equal(t, "bugfixes", manifest.UpdateLog)
		assert.Equal(t, "https://cdn.example.com/firmware/app.bin", manifest.EspURL)
		assert.Equal(t, "md5-bin", manifest.EspMD5)
		assert.Equal(t, "https://cdn.example.com/firmware/res.zip", manifest.ClipZipURL)
		assert.Equal(t, "md5-zip", manifest.ClipZipMD5)
	})

	t.Run("upload failure fails the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storage := mock.NewMockObjectStorage(ctrl)
		storage.EXPECT().
			Put(gomock.Any(), "firmware/app.bin", gomock.Any()).
			Return("", errors.New("connection reset"))

		svc := newUploadService(storageQueue(t, storage), config.OSS{})

		_, err := svc.UploadBatch(context.Background(), models.BatchUploadRequest{
			Files: []models.BatchFile{
				{OriginalName: "app.bin", Data: []byte("bin"), KeyPrefix: "firmware"},
			},
		})
		require.ErrorContains(t, err, `upload "app.bin"`)
	})
}

func TestUploadService_MultipartRetry(t *testing.T) {
	cfg := config.OSS{MultipartEnabled: true, Retry: 5}
	request := models.BatchUploadRequest{
		Version: "1.0.0",
		Files: []models.BatchFile{
			{OriginalName: "app.bin", Data: []byte("payload"), KeyPrefix: "firmware", MD5: "m"},
		},
	}

	t.Run("succeeds on third attempt with growing delays and fresh clients", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		base := mock.NewMockObjectStorage(ctrl)
		base.EXPECT().
			MultipartPut(gomock.Any(), "firmware/app.bin", gomock.Any()).
			Return("", errors.New("attempt 1 failed"))

		fresh1 := mock.NewMockObjectStorage(ctrl)
		fresh1.EXPECT().
			MultipartPut(gomock.Any(), "firmware/app.bin", gomock.Any()).
			Return("", errors.New("attempt 2 failed"))

		fresh2 := mock.NewMockObjectStorage(ctrl)
		fresh2.EXPECT().
			MultipartPut(gomock.Any(), "firmware/app.bin", gomock.Any()).
			Return("firmware/app.bin", nil)

		svc := newUploadService(storageQueue(t, base, fresh1, fresh2), cfg)

		var delays []time.Duration
		svc.sleep = func(_ context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		}

		manifest, err := svc.UploadBatch(context.Background(), request)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/firmware/app.bin", manifest.EspURL)
		assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, delays)
	})

	t.Run("falls back to streamed put after exhausting retries", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		base := mock.NewMockObjectStorage(ctrl)
		base.EXPECT().
			MultipartPut(gomock.Any(), "firmware/app.bin", gomock.Any()).
			Return("", errors.New("broken"))
		base.EXPECT().
			Put(gomock.Any(), "firmware/app.bin", gomock.Any()).
			Return("firmware/app.bin", nil)

		fresh := mock.NewMockObjectStorage(ctrl)
		fresh.EXPECT().
			MultipartPut(gomock.Any(), "firmware/app.bin", gomock.Any()).
			Return("", errors.New("still broken"))

		retryCfg := cfg
		retryCfg.Retry = 2

		svc := newUploadService(storageQueue(t, base, fresh), retryCfg)
		svc.sleep = func(context.Context, time.Duration) error { return nil }

		manifest, err := svc.UploadBatch(context.Background(), request)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/firmware/app.bin", manifest.EspURL)
	})

	t.Run("cancelled context stops the retry loop", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		base := mock.NewMockObjectStorage(ctrl)
		base.EXPECT().
			MultipartPut(gomock.Any(), "firmware/app.bin", gomock.Any()).
			Return("", errors.New("broken"))

		svc := newUploadService(storageQueue(t, base), cfg)
		svc.sleep = func(ctx context.Context, _ time.Duration) error { return context.Canceled }

		_, err := svc.UploadBatch(context.Background(), request)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestUploadService_Backoff(t *testing.T) {
	svc := newUploadService(nil, config.OSS{})
	svc.jitter = func() time.Duration { return maxJitter }

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 1, want: 1*time.Second + maxJitter},
		{attempt: 4, want: 4*time.Second + maxJitter},
		{attempt: 7, want: 7*time.Second + maxJitter},
		{attempt: 8, want: maxBackoff},
		{attempt: 20, want: maxBackoff},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.backoff(tt.attempt), "attempt %d", tt.attempt)
	}
}
