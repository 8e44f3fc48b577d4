package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maksimkurb/ztproxy/src/internal/mocks"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLocalOnly(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       int
	}{
		{"loopback v4", "127.0.0.1:50000", http.StatusOK},
		{"loopback v6", "[::1]:50000", http.StatusOK},
		{"private 10/8", "10.1.2.3:50000", http.StatusOK},
		{"private 172.16/12", "172.31.255.1:50000", http.StatusOK},
		{"private 192.168/16", "192.168.1.20:50000", http.StatusOK},
		{"ula", "[fd00::1]:50000", http.StatusOK},
		{"link-local with zone", "[fe80::1%eth0]:50000", http.StatusOK},
		{"v4-mapped loopback", "[::ffff:127.0.0.1]:50000", http.StatusOK},
		{"public v4", "203.0.113.7:50000", http.StatusForbidden},
		{"outside 172.16/12", "172.32.0.1:50000", http.StatusForbidden},
		{"public v6", "[2001:db8::1]:50000", http.StatusForbidden},
		{"garbage", "not-an-address", http.StatusForbidden},
	}

	handler := LocalOnly(okHandler())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.RemoteAddr = tt.remoteAddr
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestLocalOnly_IgnoresForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.7:50000"
	req.Header.Set("X-Forwarded-For", "127.0.0.1")
	rec := httptest.NewRecorder()

	LocalOnly(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, ErrCodeForbidden, decodeError(t, rec).Code)
}

func TestRouter_LocalOnlyOption(t *testing.T) {
	router := newTestRouter(mocks.NewMockControllerClient(), RouterOptions{LocalOnly: true})

	// httptest requests come from 192.0.2.1
	rec := doRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, seen)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "client-id-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "client-id-1", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "client-id-1", seen)
	})
}

func TestRecovery(t *testing.T) {
	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrCodeInternalError, decodeError(t, rec).Code)
}
