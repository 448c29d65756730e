package models

// Envelope is the single response convention used by every endpoint:
// code mirrors the HTTP status, message is human-readable, data carries the
// endpoint payload and errors the validation error list when present.
type Envelope struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// UploadBatchResult is the data payload of a successful batch upload:
// the manifest, pre-serialized, ready to be forwarded to the config-update
// endpoint.
type UploadBatchResult struct {
	ToUpdateContent string `json:"toUpdateContent"`
}

// PatchResult is the data payload of a single-platform config update:
// the resolved value of the parameter after the update round-trip.
type PatchResult struct {
	Latest string `json:"latest"`
}

// DualPatchResult carries the per-platform results of the dual update.
type DualPatchResult struct {
	IOS     PatchResult `json:"ios"`
	Android PatchResult `json:"android"`
}

// HealthData is the liveness payload of the health endpoints.
type HealthData struct {
	Timestamp     string `json:"timestamp"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime"`
	GoVersion     string `json:"goVersion"`
	Platform      string `json:"platform"`
}
