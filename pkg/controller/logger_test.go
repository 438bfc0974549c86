package controller_test

import (
	"net/http"
	"net/http/httptest"
	"safesurf/pkg/controller"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{name: "forwarded for", header: map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, want: "1.2.3.4"},
		{name: "real ip", header: map[string]string{"X-Real-IP": "9.8.7.6"}, want: "9.8.7.6"},
		{name: "remote addr", remote: "10.0.0.1:12345", want: "10.0.0.1"},
		{name: "invalid remote addr", remote: "not-an-addr", want: "not-an-addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if tt.remote != "" {
				req.RemoteAddr = tt.remote
			}
			require.Equal(t, tt.want, controller.ClientIP(req))
		})
	}
}

func TestWithLogger_SetsRequestIDAndPassesStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Echo-Request-Id", controller.RequestID(r.Context()))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(controller.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	controller.WithLogger(next).ServeHTTP(rec, req)

	res := rec.Result()
	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Equal(t, "abc-123", res.Header.Get("X-Echo-Request-Id"))
	require.Equal(t, "abc-123", res.Header.Get(controller.RequestIDHeader))

	rec = httptest.NewRecorder()
	controller.WithLogger(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	generated := rec.Result().Header.Get(controller.RequestIDHeader)
	require.NotEmpty(t, generated)
	require.Equal(t, generated, rec.Result().Header.Get("X-Echo-Request-Id"))
}
