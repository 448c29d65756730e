package service

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/znbflyingant/updateDeviceConfig/internal/adapter"
	"github.com/znbflyingant/updateDeviceConfig/internal/config"
	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/models"
)

const (
	// maxBackoff caps the delay between multipart retry attempts.
	maxBackoff = 8 * time.Second

	// maxJitter is the upper bound of the random component added to each
	// retry delay.
	maxJitter = 400 * time.Millisecond

	// maxConcurrentFiles bounds how many files of one batch are uploaded
	// at the same time.
	maxConcurrentFiles = 4
)

// UploadService pushes firmware batches to object storage and assembles the
// update manifest from the uploaded objects.
//
// Multipart uploads are retried with linearly growing, jittered delays; each
// retry runs on a fresh storage client so a poisoned connection from the
// failed attempt is never reused. When every attempt fails the file is
// uploaded once more as a plain streamed put before giving up.
type UploadService struct {
	factory adapter.ObjectStorageFactory
	cfg     config.OSS
	cdnBase string
	logger  *logger.Logger

	// sleep and jitter are swapped out in tests.
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() time.Duration

	mu   sync.Mutex
	base adapter.ObjectStorage
}

func NewUploadService(factory adapter.ObjectStorageFactory, cfg config.OSS, cdnBase string, log *logger.Logger) *UploadService {
	return &UploadService{
		factory: factory,
		cfg:     cfg,
		cdnBase: cdnBase,
		logger:  log,
		sleep:   sleepCtx,
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(maxJitter)))
		},
	}
}

// UploadBatch uploads every file of the batch concurrently and returns the
// assembled manifest. The batch is rejected up front when it is empty or
// when two files map to the same manifest slot.
func (s *UploadService) UploadBatch(ctx context.Context, req models.BatchUploadRequest) (models.ToUpdateContent, error) {
	if len(req.Files) == 0 {
		return models.ToUpdateContent{}, ErrEmptyBatch
	}

	seen := make(map[models.FileRole]string, len(req.Files))
	for _, f := range req.Files {
		role := f.Role()
		if prev, ok := seen[role]; ok {
			return models.ToUpdateContent{}, fmt.Errorf("%w: %q and %q are both %s", ErrDuplicateRole, prev, f.OriginalName, role)
		}
		seen[role] = f.OriginalName
	}

	manifest := models.ToUpdateContent{
		Version:   req.Version,
		UpdateLog: req.UpdateLog,
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFiles)
	for _, f := range req.Files {
		g.Go(func() error {
			key, err := s.uploadFile(gctx, f)
			if err != nil {
				return fmt.Errorf("upload %q: %w", f.OriginalName, err)
			}

			obj := models.UploadedObject{
				OriginalName: f.OriginalName,
				MD5:          f.MD5,
				URL:          joinURL(s.cdnBase, key),
			}

			mu.Lock()
			manifest.Assign(f.Role(), obj)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.ToUpdateContent{}, err
	}

	s.logger.Info().
		Int("files", len(req.Files)).
		Str("version", req.Version).
		Msg("batch upload complete")

	return manifest, nil
}

// uploadFile pushes one file, choosing the strategy from configuration.
func (s *UploadService) uploadFile(ctx context.Context, f models.BatchFile) (string, error) {
	key := f.ObjectKey()

	if !s.cfg.MultipartEnabled {
		storage, err := s.baseStorage()
		if err != nil {
			return "", err
		}
		return storage.Put(ctx, key, bytes.NewReader(f.Data))
	}

	var lastErr error
	for attempt := 1; attempt <= s.retries(); attempt++ {
		if attempt > 1 {
			if err := s.sleep(ctx, s.backoff(attempt-1)); err != nil {
				return "", err
			}
		}

		storage, err := s.storageForAttempt(attempt)
		if err != nil {
			lastErr = err
			continue
		}

		stored, err := storage.MultipartPut(ctx, key, f.Data)
		if err == nil {
			return stored, nil
		}
		lastErr = err

		s.logger.Warn().
			Err(err).
			Str("key", key).
			Int("attempt", attempt).
			Msg("multipart upload attempt failed")
	}

	// last resort: one plain streamed put
	storage, err := s.baseStorage()
	if err != nil {
		return "", fmt.Errorf("multipart upload failed: %w", lastErr)
	}
	stored, err := storage.Put(ctx, key, bytes.NewReader(f.Data))
	if err != nil {
		return "", fmt.Errorf("multipart upload failed (%v); fallback put failed: %w", lastErr, err)
	}

	s.logger.Warn().Str("key", key).Msg("multipart upload fell back to streamed put")
	return stored, nil
}

// backoff computes the delay before retry number attempt (1-based over the
// retries that already failed): attempt seconds plus jitter, capped.
func (s *UploadService) backoff(attempt int) time.Duration {
	delay := time.Duration(attempt)*time.Second + s.jitter()
	if delay > maxBackoff {
		delay = maxBackoff
	}
	return delay
}

func (s *UploadService) retries() int {
	if s.cfg.Retry < 1 {
		return 1
	}
	return s.cfg.Retry
}

// storageForAttempt returns the shared base client for the first attempt
// and a freshly dialed client for every retry.
func (s *UploadService) storageForAttempt(attempt int) (adapter.ObjectStorage, error) {
	if attempt == 1 {
		return s.baseStorage()
	}
	return s.factory()
}

func (s *UploadService) baseStorage() (adapter.ObjectStorage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.base == nil {
		storage, err := s.factory()
		if err != nil {
			return nil, err
		}
		s.base = storage
	}
	return s.base, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
