package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("success"))
})

func TestAPIKeyAuth(t *testing.T) {
	authHandler := APIKeyAuth([]string{"apitest", "testkey123"})(okHandler)

	tests := []struct {
		name           string
		apiKey         string
		expectedStatus int
	}{
		{name: "valid API key - apitest", apiKey: "apitest", expectedStatus: http.StatusOK},
		{name: "valid API key - testkey123", apiKey: "testkey123", expectedStatus: http.StatusOK},
		{name: "missing API key", apiKey: "", expectedStatus: http.StatusUnauthorized},
		{name: "invalid API key", apiKey: "wrongkey", expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tt.apiKey != "" {
				req.Header.Set("api_key", tt.apiKey)
			}

			w := httptest.NewRecorder()
			authHandler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "success", w.Body.String())
			}
		})
	}
}

func TestAPIKeyAuth_NoKeysConfigured(t *testing.T) {
	w := httptest.NewRecorder()
	APIKeyAuth(nil)(okHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
