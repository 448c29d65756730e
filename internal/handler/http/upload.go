package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/internal/service"
	"github.com/znbflyingant/updateDeviceConfig/models"
)

// maxUploadMemory bounds how much of the multipart form is held in memory
// before spilling to disk.
const maxUploadMemory = 64 << 20

// maxFileSize caps a single uploaded file.
const maxFileSize = 100 << 20

// uploadBatch accepts a multipart form with the firmware files and their
// aligned metadata:
//
//	files - one part per file (at most one .bin and one archive)
//	md5s  - JSON string array, one checksum per file, same order
//	keys  - JSON string array of object-key prefixes, same order
//	version, updateLog - release metadata for the manifest
func (h *Handler) uploadBatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		log.Err(err).Str("func", "*Handler.uploadBatch").Msg("invalid multipart form was passed")
		h.writeError(w, r, ErrInvalidForm)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Err(err).Msg("error removing multipart temp files")
		}
	}()

	req, err := h.parseBatchForm(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	manifest, err := h.services.Upload.UploadBatch(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	encoded, err := manifest.Encode()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeData(w, r, "batch uploaded", models.UploadBatchResult{ToUpdateContent: encoded})
}

// stringArrayField decodes a form field that carries a JSON-encoded string
// array, e.g. `["a","b"]`.
func stringArrayField(r *http.Request, field string) ([]string, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return nil, nil
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, &service.ValidationError{Errors: []string{
			fmt.Sprintf("%s must be a JSON string array", field),
		}}
	}
	return values, nil
}

// parseBatchForm turns the parsed multipart form into an upload request.
// The aligned-array contract is checked before any file content is read, so
// a mismatched request never reaches object storage.
func (h *Handler) parseBatchForm(r *http.Request) (models.BatchUploadRequest, error) {
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		return models.BatchUploadRequest{}, service.ErrEmptyBatch
	}

	md5s, err := stringArrayField(r, "md5s")
	if err != nil {
		return models.BatchUploadRequest{}, err
	}
	keys, err := stringArrayField(r, "keys")
	if err != nil {
		return models.BatchUploadRequest{}, err
	}

	if len(md5s) != len(files) {
		return models.BatchUploadRequest{}, &service.ValidationError{Errors: []string{
			fmt.Sprintf("got %d files but %d md5 values", len(files), len(md5s)),
		}}
	}
	if len(keys) != len(files) {
		return models.BatchUploadRequest{}, &service.ValidationError{Errors: []string{
			fmt.Sprintf("got %d files but %d keys", len(files), len(keys)),
		}}
	}

	defaultPrefix := strings.TrimSuffix(h.cfg.OSS.UploadPath, "/")

	batch := make([]models.BatchFile, 0, len(files))
	for i, header := range files {
		if header.Size > maxFileSize {
			return models.BatchUploadRequest{}, &service.ValidationError{Errors: []string{
				fmt.Sprintf("file %q exceeds the %dMB limit", header.Filename, maxFileSize>>20),
			}}
		}
		f, err := header.Open()
		if err != nil {
			return models.BatchUploadRequest{}, fmt.Errorf("open uploaded file %q: %w", header.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return models.BatchUploadRequest{}, fmt.Errorf("read uploaded file %q: %w", header.Filename, err)
		}

		prefix := defaultPrefix
		if keys[i] != "" {
			prefix = strings.Trim(keys[i], "/")
		}

		batch = append(batch, models.BatchFile{
			OriginalName: header.Filename,
			Data:         data,
			KeyPrefix:    prefix,
			MD5:          md5s[i],
		})
	}

	return models.BatchUploadRequest{
		Files:     batch,
		Version:   r.FormValue("version"),
		UpdateLog: r.FormValue("updateLog"),
	}, nil
}

type uploadCompleteRequest struct {
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	MD5      string `json:"md5"`
	OssURL   string `json:"ossUrl"`
	FileType string `json:"fileType"`
}

// uploadComplete books a direct browser-to-bucket upload the frontend
// performed with STS credentials.
func (h *Handler) uploadComplete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req uploadCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.uploadComplete").Msg("invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	var errs []string
	if req.FileName == "" {
		errs = append(errs, "fileName is required")
	}
	if req.FileSize <= 0 {
		errs = append(errs, "fileSize is required")
	}
	if req.MD5 == "" {
		errs = append(errs, "md5 is required")
	}
	if req.OssURL == "" {
		errs = append(errs, "ossUrl is required")
	}
	if req.FileType == "" {
		errs = append(errs, "fileType is required")
	}
	if len(errs) > 0 {
		h.writeError(w, r, &service.ValidationError{Errors: errs})
		return
	}

	record := h.store.RecordUpload(req.FileName, req.FileSize, req.MD5, req.OssURL, req.FileType)
	h.writeData(w, r, "upload recorded", record)
}

func (h *Handler) stsToken(w http.ResponseWriter, r *http.Request) {
	creds, err := h.services.Credentials.IssueUploadCredentials(r.Context(), r.URL.Query().Get("fileName"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeData(w, r, "temporary credentials issued", creds)
}
