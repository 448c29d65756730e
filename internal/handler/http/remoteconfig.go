package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/internal/service"
)

type updateConfigRequest struct {
	Key      string          `json:"key"`
	Content  json.RawMessage `json:"content"`
	Platform string          `json:"platform"`
}

// patchValue returns the patch content as a plain string: a JSON string
// is unquoted, any other JSON value is passed through verbatim.
func (req updateConfigRequest) patchValue() (string, error) {
	trimmed := bytes.TrimSpace(req.Content)
	if len(trimmed) == 0 {
		return "", &service.ValidationError{Errors: []string{"content is required"}}
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", ErrInvalidJSON
		}
		return s, nil
	}
	return string(trimmed), nil
}

func (h *Handler) updateConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req updateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updateConfig").Msg("invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	value, err := req.patchValue()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.RemoteConfig.Patch(r.Context(), service.Platform(req.Platform), req.Key, value)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeData(w, r, "remote config updated", result)
}

func (h *Handler) updateConfigBoth(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req updateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updateConfigBoth").Msg("invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	value, err := req.patchValue()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.RemoteConfig.PatchBoth(r.Context(), req.Key, value)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeData(w, r, "remote config updated on both platforms", result)
}
