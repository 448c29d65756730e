// Package adapter provides outbound integrations with the two upstream
// services this backend orchestrates: the Huawei AGC remote-config REST API
// and Alibaba Cloud object storage (plus its STS credential issuance).
//
// The service layer depends only on the interfaces defined here.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level failures to the error values
// defined in errors.go so that callers can use [errors.Is] / [errors.As]
// for transport-agnostic error handling.
package adapter

import (
	"context"
	"encoding/json"
	"io"

	"github.com/znbflyingant/updateDeviceConfig/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mocks.go -package=mock

// RemoteConfigAPI is a client of one platform's AGC remote configuration.
// A client instance is bound to a single credential set; the dual-platform
// update constructs one client per platform.
type RemoteConfigAPI interface {
	// Token returns a valid access token, acquiring or refreshing it
	// through the client-credentials grant when the cached session is
	// absent or expired. Fails with [ErrAuth] when the grant is rejected
	// or the response carries no token.
	Token(ctx context.Context) (string, error)

	// Query fetches the complete current configuration: every item, every
	// filter, and the version counter. Called fresh before every mutating
	// operation so merges never run against a stale snapshot.
	Query(ctx context.Context) (models.RemoteConfigSnapshot, error)

	// Update submits the entire item list (not a delta) together with the
	// version the caller believes is current. A non-2xx response maps to
	// [*UpstreamError]; an HTTP 200 whose body carries a non-zero ret code
	// maps to [ErrUpdateRejected] and is never treated as success.
	Update(ctx context.Context, items []models.UpdateConfigItem, filters json.RawMessage, version int64) (models.UpdateConfigResponse, error)
}

// ObjectStorage pushes byte streams into the configured bucket.
type ObjectStorage interface {
	// Put streams one object in a single request. Returns the stored
	// object key. No retry.
	Put(ctx context.Context, key string, r io.Reader) (string, error)

	// MultipartPut uploads one object in fixed-size chunks with bounded
	// part parallelism, completing the upload only after every part has
	// been acknowledged. Returns the stored object key.
	MultipartPut(ctx context.Context, key string, data []byte) (string, error)
}

// ObjectStorageFactory constructs a fresh [ObjectStorage] with its own
// client connection. The upload orchestrator calls it once per retry
// attempt to avoid reusing a possibly poisoned session.
type ObjectStorageFactory func() (ObjectStorage, error)

// CredentialIssuer issues short-lived credentials for direct
// browser-to-bucket uploads.
type CredentialIssuer interface {
	// AssumeRole issues a temporary credential set for the configured RAM
	// role. Fails with [ErrMissingRoleArn] when no role is configured.
	AssumeRole(ctx context.Context) (models.StsCredentials, error)
}
