package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proxyRouter(upstreamURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.GET("/irradiance", NewProxyHandler(upstreamURL).Irradiance)
	return router
}

func TestProxy_MissingParameters(t *testing.T) {
	router := proxyRouter("http://example.invalid")

	for _, path := range []string{"/irradiance", "/irradiance?lat=40.4", "/irradiance?lon=-3.7"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "MISSING_PARAMETERS")
	}
}

func TestProxy_MethodNotAllowed(t *testing.T) {
	router := proxyRouter("http://example.invalid")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/irradiance?lat=1&lon=2", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestProxy_ForwardsFixedParameters(t *testing.T) {
	var got *http.Request
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		fmt.Fprint(w, `{"outputs": {"totals": {"fixed": {"E_y": 1500}}}}`)
	}))
	defer upstream.Close()

	router := proxyRouter(upstream.URL)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/irradiance?lat=40.4168&lon=-3.7038&peakpower=1&angle=30&aspect=0", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	q := got.URL.Query()
	assert.Equal(t, "40.4168", q.Get("lat"))
	assert.Equal(t, "30", q.Get("angle"))
	assert.Equal(t, "14", q.Get("loss"))
	assert.Equal(t, "building", q.Get("mountingplace"))
	assert.Equal(t, "json", q.Get("outputformat"))
	assert.Equal(t, proxyUserAgent, got.Header.Get("User-Agent"))

	// Upstream body passes through untouched.
	assert.Contains(t, w.Body.String(), `"E_y": 1500`)
}

func TestProxy_DefaultsOptionalParameters(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("peakpower"))
		assert.Equal(t, "35", q.Get("angle"))
		assert.Equal(t, "0", q.Get("aspect"))
		fmt.Fprint(w, `{}`)
	}))
	defer upstream.Close()

	router := proxyRouter(upstream.URL)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/irradiance?lat=1&lon=2", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProxy_UpstreamErrorBecomesFallbackMarker(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer upstream.Close()

	router := proxyRouter(upstream.URL)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/irradiance?lat=1&lon=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["fallback"])
}

func TestProxy_UnreachableUpstreamBecomesFallbackMarker(t *testing.T) {
	router := proxyRouter("http://127.0.0.1:1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/irradiance?lat=1&lon=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["fallback"])
}
