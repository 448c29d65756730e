package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/models"
)

func (h *Handler) validateConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var meta models.ConfigMeta
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		log.Err(err).Str("func", "*Handler.validateConfig").Msg("invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	validated, err := h.services.Validation.ValidateConfig(meta)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeData(w, r, "config is valid", validated)
}

type saveConfigRequest struct {
	Config  models.ToUpdateContent `json:"config"`
	EspFile string                 `json:"espFile"`
	ZipFile string                 `json:"zipFile"`
}

func (h *Handler) saveConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req saveConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.saveConfig").Msg("invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	saved := h.store.SaveConfig(req.Config, req.EspFile, req.ZipFile)
	h.writeData(w, r, "config saved", saved)
}

func (h *Handler) configHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}

	h.writeData(w, r, "config history", h.store.History(limit))
}
