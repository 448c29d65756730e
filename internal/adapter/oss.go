package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"golang.org/x/sync/errgroup"

	"github.com/znbflyingant/updateDeviceConfig/internal/config"
	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
)

// connectTimeoutSec bounds the TCP dial of every OSS client call; the
// read/write bound comes from configuration.
const connectTimeoutSec = 30

// ossStorage implements [ObjectStorage] against one Alibaba Cloud bucket.
type ossStorage struct {
	bucket   *oss.Bucket
	partSize int64
	parallel int
	logger   *logger.Logger
}

// NewOSSStorageFactory returns a factory that dials a fresh OSS client on
// every call. The retrying uploader relies on that freshness: a retry never
// reuses the connection pool of the attempt that just failed.
func NewOSSStorageFactory(cfg config.OSS, log *logger.Logger) ObjectStorageFactory {
	return func() (ObjectStorage, error) {
		client, err := oss.New(
			cfg.Endpoint(),
			cfg.AccessKeyID,
			cfg.AccessKeySecret,
			oss.Timeout(connectTimeoutSec, int64(cfg.Timeout.Seconds())),
		)
		if err != nil {
			return nil, fmt.Errorf("create oss client: %w", err)
		}

		bucket, err := client.Bucket(cfg.Bucket)
		if err != nil {
			return nil, fmt.Errorf("open oss bucket %q: %w", cfg.Bucket, err)
		}

		parallel := cfg.Parallel
		if parallel < 1 {
			parallel = 1
		}

		return &ossStorage{
			bucket:   bucket,
			partSize: cfg.PartSize(),
			parallel: parallel,
			logger:   log,
		}, nil
	}
}

// Put implements [ObjectStorage].
func (s *ossStorage) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	err := s.bucket.PutObject(key, r, oss.ObjectStorageClass(oss.StorageStandard))
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}

	s.logger.Debug().Str("key", key).Msg("streamed object to bucket")
	return key, nil
}

// MultipartPut implements [ObjectStorage]. Parts are uploaded with at most
// s.parallel in flight; any part failure aborts the whole upload.
func (s *ossStorage) MultipartPut(ctx context.Context, key string, data []byte) (string, error) {
	imur, err := s.bucket.InitiateMultipartUpload(key)
	if err != nil {
		return "", fmt.Errorf("initiate multipart upload %q: %w", key, err)
	}

	chunks := splitChunks(data, s.partSize)

	var (
		mu    sync.Mutex
		parts = make([]oss.UploadPart, 0, len(chunks))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i, chunk := range chunks {
		partNumber := i + 1
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			part, err := s.bucket.UploadPart(imur, bytes.NewReader(chunk), int64(len(chunk)), partNumber)
			if err != nil {
				return fmt.Errorf("upload part %d of %q: %w", partNumber, key, err)
			}

			mu.Lock()
			parts = append(parts, part)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if abortErr := s.bucket.AbortMultipartUpload(imur); abortErr != nil {
			s.logger.Warn().Err(abortErr).Str("key", key).Msg("failed to abort multipart upload")
		}
		return "", err
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].PartNumber < parts[j].PartNumber })

	result, err := s.bucket.CompleteMultipartUpload(imur, parts)
	if err != nil {
		if abortErr := s.bucket.AbortMultipartUpload(imur); abortErr != nil {
			s.logger.Warn().Err(abortErr).Str("key", key).Msg("failed to abort multipart upload")
		}
		return "", fmt.Errorf("complete multipart upload %q: %w", key, err)
	}

	s.logger.Debug().
		Str("key", result.Key).
		Int("parts", len(parts)).
		Msg("completed multipart upload")

	return result.Key, nil
}

// splitChunks slices data into consecutive chunks of at most partSize bytes.
// An empty input still yields one empty chunk so the multipart upload has at
// least one part.
func splitChunks(data []byte, partSize int64) [][]byte {
	if partSize <= 0 {
		return [][]byte{data}
	}

	size := int(partSize)
	chunks := make([][]byte, 0, len(data)/size+1)
	for start := 0; start < len(data); start += size {
		end := start + size
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[start:end])
	}
	if len(chunks) == 0 {
		chunks = append(chunks, data)
	}
	return chunks
}
