package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"buildmart/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authConfig() config.APIConfig {
	return config.APIConfig{
		Enabled: true,
		HTTP:    config.APIHTTPConfig{Enabled: true, Port: 8080},
		Auth: config.APIAuthConfig{
			Enabled:      true,
			HeaderAPIKey: "x-api-key",
			HeaderExtra:  "x-api-extra",
			APIKeys: []config.APIClientKey{
				{Key: "full-key", Extra: "full-secret", Name: "backoffice"},
				{Key: "catalog-key", Extra: "catalog-secret", Name: "storefront", Permissions: []string{"read:catalog"}},
			},
		},
	}
}

func wrapOK(cfg config.APIConfig) http.Handler {
	return NewHTTPAuth(cfg).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doAuth(handler http.Handler, path, key, extra string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if key != "" {
		req.Header.Set("x-api-key", key)
	}
	if extra != "" {
		req.Header.Set("x-api-extra", extra)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthMissingHeaders(t *testing.T) {
	handler := wrapOK(authConfig())

	rec := doAuth(handler, "/api/v1/products", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doAuth(handler, "/api/v1/products", "full-key", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthInvalidKey(t *testing.T) {
	handler := wrapOK(authConfig())

	rec := doAuth(handler, "/api/v1/products", "unknown", "whatever")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doAuth(handler, "/api/v1/products", "full-key", "wrong-secret")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthValidKey(t *testing.T) {
	handler := wrapOK(authConfig())

	rec := doAuth(handler, "/api/v1/products", "full-key", "full-secret")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthPermissions(t *testing.T) {
	handler := wrapOK(authConfig())

	// Scoped key can read the catalog but not place orders.
	rec := doAuth(handler, "/api/v1/products", "catalog-key", "catalog-secret")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doAuth(handler, "/api/v1/orders", "catalog-key", "catalog-secret")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Unscoped key passes everywhere.
	rec = doAuth(handler, "/api/v1/orders", "full-key", "full-secret")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHealthBypass(t *testing.T) {
	handler := wrapOK(authConfig())

	rec := doAuth(handler, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthDisabled(t *testing.T) {
	cfg := authConfig()
	cfg.Auth.Enabled = false
	handler := wrapOK(cfg)

	rec := doAuth(handler, "/api/v1/products", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := authConfig()
	cfg.RateLimit = config.APIRateLimitConfig{RPS: 1, Burst: 2}
	handler := wrapOK(cfg)

	for i := 0; i < 2; i++ {
		rec := doAuth(handler, "/api/v1/products", "full-key", "full-secret")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doAuth(handler, "/api/v1/products", "full-key", "full-secret")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different key has its own limiter.
	rec = doAuth(handler, "/api/v1/products", "catalog-key", "catalog-secret")
	assert.Equal(t, http.StatusOK, rec.Code)
}
