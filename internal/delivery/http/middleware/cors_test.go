package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	tests := []struct {
		name        string
		origins     []string
		method      string
		origin      string
		wantStatus  int
		wantAllowed string
		wantCreds   string
		wantBody    string
	}{
		{name: "preflight from allowed origin", origins: []string{"https://goonj.in/"}, method: http.MethodOptions, origin: "https://goonj.in", wantStatus: http.StatusNoContent, wantAllowed: "https://goonj.in", wantCreds: "true"},
		{name: "preflight from unknown origin", origins: []string{"https://goonj.in"}, method: http.MethodOptions, origin: "https://evil.example", wantStatus: http.StatusNoContent},
		{name: "simple request from allowed origin", origins: []string{"https://goonj.in"}, method: http.MethodGet, origin: "https://goonj.in", wantStatus: http.StatusOK, wantAllowed: "https://goonj.in", wantCreds: "true", wantBody: "ok"},
		{name: "wildcard allows any origin without credentials", origins: []string{"*"}, method: http.MethodGet, origin: "http://localhost:3000", wantStatus: http.StatusOK, wantAllowed: "*", wantBody: "ok"},
		{name: "wildcard preflight without credentials", origins: []string{"*"}, method: http.MethodOptions, origin: "http://localhost:3000", wantStatus: http.StatusNoContent, wantAllowed: "*"},
		{name: "listed origin keeps credentials next to a wildcard", origins: []string{"*", "https://goonj.in"}, method: http.MethodGet, origin: "https://goonj.in", wantStatus: http.StatusOK, wantAllowed: "https://goonj.in", wantCreds: "true", wantBody: "ok"},
		{name: "unknown origin passes through without headers", origins: []string{"https://goonj.in"}, method: http.MethodGet, origin: "https://evil.example", wantStatus: http.StatusOK, wantBody: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://test/catalog", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()

			CORS(tt.origins, next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllowed, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, rr.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, tt.wantBody, rr.Body.String())
			if tt.wantAllowed != "" && tt.method == http.MethodOptions {
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key")
			}
			if tt.wantAllowed != "" && tt.method != http.MethodOptions {
				assert.Contains(t, rr.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
			}
		})
	}
}
