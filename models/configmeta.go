package models

import "encoding/json"

// ConfigMeta is the release metadata the frontend submits for validation
// before starting an upload.
//
// Description and Files are optional but type-checked: the frontend sends
// free-form JSON, so both are decoded as raw messages and validated for
// shape (string / array) by the validation service.
type ConfigMeta struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description json.RawMessage `json:"description,omitempty"`
	Files       json.RawMessage `json:"files,omitempty"`
}

// ValidatedConfig echoes the accepted metadata back to the caller.
type ValidatedConfig struct {
	Valid  bool       `json:"valid"`
	Config ConfigMeta `json:"config"`
}
