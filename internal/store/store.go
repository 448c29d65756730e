// Package store keeps the operator-facing bookkeeping of the backend:
// reported direct uploads and published release configurations. Everything
// lives in process memory; the store exists for console visibility, not
// durability, and starts empty on every boot.
package store

import (
	"path"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/znbflyingant/updateDeviceConfig/models"
)

// bucketHostPattern matches the raw bucket host of an OSS object URL
// (https://<bucket>.oss-<region>.aliyuncs.com) so it can be swapped for the
// CDN domain.
var bucketHostPattern = regexp.MustCompile(`^https://[^/]+\.oss-[a-z0-9-]+\.aliyuncs\.com`)

// Store is a mutex-guarded in-memory record keeper. Safe for concurrent use.
type Store struct {
	cdnDomain string
	now       func() time.Time

	mu      sync.RWMutex
	uploads []models.UploadRecord
	configs []models.SavedConfig
}

func New(cdnDomain string) *Store {
	return &Store{
		cdnDomain: cdnDomain,
		now:       time.Now,
	}
}

// RecordUpload books a completed direct upload and returns the stored
// record, including the CDN-rewritten URL the frontend should use from now
// on.
func (s *Store) RecordUpload(fileName string, fileSize int64, md5, ossURL, fileType string) models.UploadRecord {
	if fileType == "" {
		fileType = strings.TrimPrefix(strings.ToLower(path.Ext(fileName)), ".")
	}
	record := models.UploadRecord{
		FileID:     uuid.NewString(),
		FileName:   fileName,
		FileSize:   fileSize,
		MD5:        md5,
		OssURL:     ossURL,
		CdnURL:     s.RewriteCDN(ossURL),
		FileType:   fileType,
		UploadTime: s.now(),
	}

	s.mu.Lock()
	s.uploads = append(s.uploads, record)
	s.mu.Unlock()

	return record
}

// SaveConfig snapshots a published release configuration.
func (s *Store) SaveConfig(cfg models.ToUpdateContent, espFile, zipFile string) models.SavedConfig {
	saved := models.SavedConfig{
		ID:         uuid.NewString(),
		Version:    cfg.Version,
		Config:     cfg,
		EspFile:    espFile,
		ZipFile:    zipFile,
		CreateTime: s.now(),
	}

	s.mu.Lock()
	s.configs = append(s.configs, saved)
	s.mu.Unlock()

	return saved
}

// History returns saved configurations newest first. A non-positive limit
// returns everything.
func (s *Store) History(limit int) []models.SavedConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SavedConfig, 0, len(s.configs))
	for i := len(s.configs) - 1; i >= 0; i-- {
		out = append(out, s.configs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Uploads returns recorded uploads newest first.
func (s *Store) Uploads() []models.UploadRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.UploadRecord, 0, len(s.uploads))
	for i := len(s.uploads) - 1; i >= 0; i-- {
		out = append(out, s.uploads[i])
	}
	return out
}

// RewriteCDN replaces the raw bucket host of an OSS object URL with the
// configured CDN domain. URLs that do not look like bucket URLs, and every
// URL when no CDN domain is configured, pass through unchanged.
func (s *Store) RewriteCDN(ossURL string) string {
	if s.cdnDomain == "" {
		return ossURL
	}
	return bucketHostPattern.ReplaceAllString(ossURL, strings.TrimRight(s.cdnDomain, "/"))
}
