package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsHTTPS(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://backoffice.local/", nil)
	if IsHTTPS(req) {
		t.Fatal("expected plain http")
	}
	req.Header.Set("X-Forwarded-Proto", "https")
	if IsHTTPS(req) {
		t.Fatal("forwarded proto must not be trusted by default")
	}
	if !IsHTTPSWithPolicy(req, SchemePolicy{TrustForwardedProto: true}) {
		t.Fatal("expected trusted forwarded proto to win")
	}
	req.TLS = &tls.ConnectionState{}
	if !IsHTTPS(req) {
		t.Fatal("expected TLS request to be https")
	}
	if IsHTTPS(nil) {
		t.Fatal("nil request is not https")
	}
}

func TestHasSameOriginProof(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		host    string
		origin  string
		referer string
		want    bool
	}{
		{name: "matching origin", host: "backoffice.local", origin: "http://backoffice.local", want: true},
		{name: "matching origin with explicit port", host: "localhost:8090", origin: "http://localhost:8090", want: true},
		{name: "default port equivalence", host: "backoffice.local:80", origin: "http://backoffice.local", want: true},
		{name: "other host", host: "backoffice.local", origin: "http://evil.example", want: false},
		{name: "other scheme", host: "backoffice.local", origin: "https://backoffice.local", want: false},
		{name: "referer fallback", host: "backoffice.local", referer: "http://backoffice.local/users?q=a", want: true},
		{name: "null origin", host: "backoffice.local", origin: "null", want: false},
		{name: "no proof", host: "backoffice.local", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/users", nil)
			req.Host = tc.host
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			if got := HasSameOriginProof(req); got != tc.want {
				t.Fatalf("HasSameOriginProof = %v, want %v", got, tc.want)
			}
		})
	}
	if HasSameOriginProof(nil) {
		t.Fatal("nil request has no proof")
	}
}
