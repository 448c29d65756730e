package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/znbflyingant/updateDeviceConfig/internal/config"
	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/models"
)

func testCredentials(baseURL string) config.Credentials {
	return config.Credentials{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		ProductID:    "product-1",
		AppID:        "app-1",
		BaseURL:      baseURL,
	}
}

func TestRemoteConfigClient_Token(t *testing.T) {
	t.Run("acquires and caches token", func(t *testing.T) {
		var grants atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, tokenPath, r.URL.Path)
			require.Equal(t, http.MethodPost, r.Method)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "client_credentials", body["grant_type"])
			assert.Equal(t, "client-1", body["client_id"])
			assert.Equal(t, "secret-1", body["client_secret"])

			grants.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"tok-abc","expires_in":3600}`))
		}))
		defer srv.Close()

		client := NewRemoteConfigClient(testCredentials(srv.URL), 5*time.Second, logger.Nop())

		token, err := client.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-abc", token)

		// second call must hit the session, not the server
		token, err = client.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-abc", token)
		assert.Equal(t, int64(1), grants.Load())
	})

	t.Run("refreshes expired session", func(t *testing.T) {
		var grants atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			n := grants.Add(1)
			w.Header().Set("Content-Type", "application/json")
			if n == 1 {
				_, _ = w.Write([]byte(`{"access_token":"tok-old","expires_in":3600}`))
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"tok-new","expires_in":3600}`))
		}))
		defer srv.Close()

		client := NewRemoteConfigClient(testCredentials(srv.URL), 5*time.Second, logger.Nop())

		now := time.Now()
		client.now = func() time.Time { return now }

		token, err := client.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-old", token)

		// jump past the advertised lifetime
		client.now = func() time.Time { return now.Add(2 * time.Hour) }

		token, err = client.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-new", token)
		assert.Equal(t, int64(2), grants.Load())
	})

	t.Run("rejected grant maps to ErrAuth", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewRemoteConfigClient(testCredentials(srv.URL), 5*time.Second, logger.Nop())

		_, err := client.Token(context.Background())
		require.ErrorIs(t, err, ErrAuth)

		var upstreamErr *UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, http.StatusUnauthorized, upstreamErr.StatusCode)
	})

	t.Run("missing access token maps to ErrAuth", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"expires_in":3600}`))
		}))
		defer srv.Close()

		client := NewRemoteConfigClient(testCredentials(srv.URL), 5*time.Second, logger.Nop())

		_, err := client.Token(context.Background())
		require.ErrorIs(t, err, ErrAuth)
	})
}

func TestRemoteConfigClient_Query(t *testing.T) {
	t.Run("fetches snapshot with auth headers", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Path == tokenPath {
				_, _ = w.Write([]byte(`{"access_token":"tok-abc","expires_in":3600}`))
				return
			}

			require.Equal(t, remoteConfigPath, r.URL.Path)
			require.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
			assert.Equal(t, "product-1", r.Header.Get("productId"))
			assert.Equal(t, "client-1", r.Header.Get("client_id"))
			assert.Equal(t, "app-1", r.Header.Get("appId"))

			_, _ = w.Write([]byte(`{
				"configItems": [
					{"name": "device_upgrade_info", "desc": "upgrade manifest", "defaultValue": {"value": "{}"}}
				],
				"versionInfo": {"version": 42}
			}`))
		}))
		defer srv.Close()

		client := NewRemoteConfigClient(testCredentials(srv.URL), 5*time.Second, logger.Nop())

		snapshot, err := client.Query(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(42), snapshot.VersionInfo.Version)

		item, found := snapshot.FindItem("device_upgrade_info")
		require.True(t, found)
		assert.Equal(t, "upgrade manifest", item.ResolvedDescription())
	})

	t.Run("non-2xx maps to UpstreamError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == tokenPath {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"access_token":"tok-abc","expires_in":3600}`))
				return
			}
			http.Error(w, `{"message":"boom"}`, http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewRemoteConfigClient(testCredentials(srv.URL), 5*time.Second, logger.Nop())

		_, err := client.Query(context.Background())

		var upstreamErr *UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, http.StatusBadGateway, upstreamErr.StatusCode)
		assert.Contains(t, upstreamErr.Body, "boom")
	})
}

func TestRemoteConfigClient_Update(t *testing.T) {
	t.Run("submits full item list with version", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Path == tokenPath {
				_, _ = w.Write([]byte(`{"access_token":"tok-abc","expires_in":3600}`))
				return
			}

			require.Equal(t, http.MethodPut, r.Method)

			var body models.UpdateConfigRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, int64(42), body.Version)
			require.Len(t, body.ConfigItems, 1)
			assert.Equal(t, "device_upgrade_info", body.ConfigItems[0].Key)

			_, _ = w.Write([]byte(`{"ret":{"code":0},"versionInfo":{"version":43}}`))
		}))
		defer srv.Close()

		client := NewRemoteConfigClient(testCredentials(srv.URL), 5*time.Second, logger.Nop())

		items := []models.UpdateConfigItem{{
			Key:               "device_upgrade_info",
			Name:              "device_upgrade_info",
			DefaultValue:      models.DefaultValue{Value: "{}"},
			ConditionalValues: []models.ConditionalValue{},
		}}

		resp, err := client.Update(context.Background(), items, json.RawMessage(`[]`), 42)
		require.NoError(t, err)
		assert.Equal(t, int64(43), resp.VersionInfo.Version)
	})

	t.Run("non-zero ret code inside HTTP 200 is a rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Path == tokenPath {
				_, _ = w.Write([]byte(`{"access_token":"tok-abc","expires_in":3600}`))
				return
			}
			_, _ = w.Write([]byte(`{"ret":{"code":204944401,"msg":"version mismatch"}}`))
		}))
		defer srv.Close()

		client := NewRemoteConfigClient(testCredentials(srv.URL), 5*time.Second, logger.Nop())

		_, err := client.Update(context.Background(), nil, nil, 42)
		require.ErrorIs(t, err, ErrUpdateRejected)
		assert.Contains(t, err.Error(), "version mismatch")
	})
}
