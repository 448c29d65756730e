package http

import (
	"net/http"
	"runtime"
	"time"

	"github.com/znbflyingant/updateDeviceConfig/models"
)

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, r, "firmware update console backend", map[string]string{
		"version": h.cfg.App.Version,
		"health":  "/health",
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, r, "ok", models.HealthData{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       h.cfg.App.Version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
	})
}
