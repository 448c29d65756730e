package models

import (
	"encoding/json"
	"strings"
)

// FileRole classifies an uploaded file by what it means to the device:
// the firmware binary itself or the auxiliary resource archive.
type FileRole string

const (
	// RoleFirmware is assigned to ".bin" files (case-insensitive).
	RoleFirmware FileRole = "firmware"

	// RoleArchive is assigned to every other extension; in practice these
	// are the resource ZIP archives shipped alongside the firmware.
	RoleArchive FileRole = "archive"
)

// ClassifyFile returns the role of a file by its name suffix.
func ClassifyFile(name string) FileRole {
	if strings.HasSuffix(strings.ToLower(name), ".bin") {
		return RoleFirmware
	}
	return RoleArchive
}

// BatchFile is one file of a batch upload together with its aligned
// metadata: the destination key prefix inside the bucket and the MD5 the
// frontend computed before uploading.
type BatchFile struct {
	OriginalName string
	Data         []byte
	KeyPrefix    string
	MD5          string
}

// Role returns the file's role derived from its original name.
func (f BatchFile) Role() FileRole {
	return ClassifyFile(f.OriginalName)
}

// ObjectKey is the full object key inside the bucket: key prefix plus the
// original file name.
func (f BatchFile) ObjectKey() string {
	return f.KeyPrefix + "/" + f.OriginalName
}

// BatchUploadRequest is a validated batch of files plus the release
// metadata that ends up in the update manifest.
type BatchUploadRequest struct {
	Files     []BatchFile
	Version   string
	UpdateLog string
}

// UploadedObject is the outcome of pushing one file to object storage.
type UploadedObject struct {
	OriginalName string `json:"originalName"`
	MD5          string `json:"md5"`
	URL          string `json:"url"`
}

// ToUpdateContent is the flat manifest handed to the remote-config update
// step: release metadata merged with the per-role URL and MD5 fields.
// Field names are part of the device contract and must not change.
type ToUpdateContent struct {
	Version    string `json:"version,omitempty"`
	UpdateLog  string `json:"updateLog,omitempty"`
	EspURL     string `json:"espUrl,omitempty"`
	EspMD5     string `json:"espMd5,omitempty"`
	ClipZipURL string `json:"clipZipUrl,omitempty"`
	ClipZipMD5 string `json:"clipZipMd5,omitempty"`
}

// Assign records an uploaded object under the manifest field pair that
// matches its role.
func (c *ToUpdateContent) Assign(role FileRole, obj UploadedObject) {
	switch role {
	case RoleFirmware:
		c.EspURL = obj.URL
		c.EspMD5 = obj.MD5
	default:
		c.ClipZipURL = obj.URL
		c.ClipZipMD5 = obj.MD5
	}
}

// Encode serializes the manifest as the JSON string the frontend forwards
// to the config-update endpoint.
func (c ToUpdateContent) Encode() (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
