package models

import (
	"bytes"
	"encoding/json"
)

// DefaultValue is the stored value of a remote-config parameter.
//
// The AGC query endpoint usually returns it as an object
// ({"value": "...", "useSdkValue": false}), but older parameters may come
// back as a bare string. UnmarshalJSON accepts both forms so callers can
// always read Value.
type DefaultValue struct {
	Value       string `json:"value"`
	UseSdkValue bool   `json:"useSdkValue"`
}

func (d *DefaultValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &d.Value)
	}

	type plain DefaultValue
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = DefaultValue(p)
	return nil
}

// FilterValue is one conditional value of a parameter as returned by the
// query endpoint. The nested value may be an object with a "value" field or
// a bare string.
type FilterValue struct {
	Condition json.RawMessage `json:"condition,omitempty"`
	Value     FlexString      `json:"value"`
}

// FlexString decodes either a JSON string or an object of the form
// {"value": "..."} into its string content.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		*f = FlexString(wrapped.Value)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = FlexString(s)
	return nil
}

// RemoteConfigItem is a parameter in the query shape of the AGC remote-config
// API: the description lives in "desc" (with "description" as a fallback)
// and conditional values arrive under "filterValues".
type RemoteConfigItem struct {
	Name         string        `json:"name"`
	Desc         string        `json:"desc,omitempty"`
	Description  string        `json:"description,omitempty"`
	DefaultValue DefaultValue  `json:"defaultValue"`
	FilterValues []FilterValue `json:"filterValues,omitempty"`
}

// ResolvedDescription returns the parameter description regardless of which
// of the two field names the service used.
func (i RemoteConfigItem) ResolvedDescription() string {
	if i.Desc != "" {
		return i.Desc
	}
	return i.Description
}

// ConditionalValue is one conditional value in the update shape.
type ConditionalValue struct {
	Condition json.RawMessage `json:"condition"`
	Value     string          `json:"value"`
}

// UpdateConfigItem is a parameter in the update shape expected by the PUT
// config endpoint. Both Key and Name carry the parameter name; the service
// validates one or the other depending on API version.
type UpdateConfigItem struct {
	Key               string             `json:"key"`
	Name              string             `json:"name"`
	DefaultValue      DefaultValue       `json:"defaultValue"`
	Description       string             `json:"description"`
	ConditionalValues []ConditionalValue `json:"conditionalValues"`
}

// VersionInfo carries the optimistic-concurrency version counter of the
// whole configuration set. UpdateTime is a millisecond epoch.
type VersionInfo struct {
	Version    int64 `json:"version"`
	UpdateTime int64 `json:"updateTime,omitempty"`
}

// RetInfo is the service-embedded result code that AGC returns inside an
// HTTP 200 body. A non-zero Code means the operation failed.
type RetInfo struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg,omitempty"`
}

// RemoteConfigSnapshot is the complete current state of the remote
// configuration: every item, every filter, and the version counter.
// It is fetched fresh before every mutating operation.
type RemoteConfigSnapshot struct {
	ConfigItems []RemoteConfigItem `json:"configItems"`
	Filters     json.RawMessage    `json:"filters,omitempty"`
	VersionInfo VersionInfo        `json:"versionInfo"`
	Ret         *RetInfo           `json:"ret,omitempty"`
}

// FindItem returns the config item whose name equals key, or false if the
// snapshot does not contain it.
func (s RemoteConfigSnapshot) FindItem(key string) (RemoteConfigItem, bool) {
	for _, item := range s.ConfigItems {
		if item.Name == key {
			return item, true
		}
	}
	return RemoteConfigItem{}, false
}

// UpdateConfigRequest is the body of the full-config PUT: the entire item
// list (not a delta) plus the version the caller believes is current.
type UpdateConfigRequest struct {
	ConfigItems []UpdateConfigItem `json:"configItems"`
	Filters     json.RawMessage    `json:"filters"`
	Version     int64              `json:"version"`
}

// UpdateConfigResponse is the body returned by the PUT config endpoint.
type UpdateConfigResponse struct {
	Ret         *RetInfo    `json:"ret,omitempty"`
	VersionInfo VersionInfo `json:"versionInfo,omitempty"`
}

// TokenResponse is the body of the OAuth2 client-credentials grant.
type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	TokenType   string   `json:"token_type,omitempty"`
	Ret         *RetInfo `json:"ret,omitempty"`
}

// ToUpdateItem converts a query-shape item into the update shape required by
// the PUT endpoint: key+name duplicated, description resolved, filterValues
// flattened into conditionalValues.
func (i RemoteConfigItem) ToUpdateItem() UpdateConfigItem {
	conditional := make([]ConditionalValue, 0, len(i.FilterValues))
	for _, fv := range i.FilterValues {
		condition := fv.Condition
		if len(condition) == 0 {
			condition = json.RawMessage(`{}`)
		}
		conditional = append(conditional, ConditionalValue{
			Condition: condition,
			Value:     string(fv.Value),
		})
	}

	return UpdateConfigItem{
		Key:               i.Name,
		Name:              i.Name,
		DefaultValue:      DefaultValue{Value: i.DefaultValue.Value, UseSdkValue: i.DefaultValue.UseSdkValue},
		Description:       i.ResolvedDescription(),
		ConditionalValues: conditional,
	}
}
