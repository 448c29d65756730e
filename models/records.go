package models

import "time"

// UploadRecord is the bookkeeping entry written when the frontend reports a
// completed direct upload. Records live in process memory only; they exist
// for operator visibility, not durability.
type UploadRecord struct {
	FileID     string    `json:"fileId"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	MD5        string    `json:"md5"`
	OssURL     string    `json:"ossUrl"`
	CdnURL     string    `json:"cdnUrl"`
	FileType   string    `json:"fileType"`
	UploadTime time.Time `json:"uploadTime"`
}

// SavedConfig is a snapshot of a published release configuration.
type SavedConfig struct {
	ID         string          `json:"id"`
	Version    string          `json:"version"`
	Config     ToUpdateContent `json:"config"`
	EspFile    string          `json:"espFile"`
	ZipFile    string          `json:"zipFile"`
	CreateTime time.Time       `json:"createTime"`
}
