package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/beaconhq/beacon/internal/telemetry/metric"
)

// newTestHandler builds a handler over a temp static root containing
// index.html and nested/notes.txt.
func newTestHandler(t *testing.T, offset int64) (*Handler, string) {
	t.Helper()
	root := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>hello</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "nested", "notes.txt"), []byte("climb on"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := New(Config{
		PingOffset:   offset,
		StaticPrefix: "/page",
		StaticRoot:   root,
		Metrics:      metric.NewRegistry(),
	})
	return h, root
}

func doRequest(h http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	h, _ := newTestHandler(t, 2)

	tests := []struct {
		value string
		want  int64
	}{
		{"5", 7},
		{"0", 2},
		{"-10", -8},
		{"9223372036854775805", 9223372036854775807},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			rec := doRequest(h, "GET", "/ping", map[string]string{"value": tt.value})

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}

			var got int64
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("body %q is not a JSON integer: %v", rec.Body.String(), err)
			}
			if got != tt.want {
				t.Errorf("ping(%s) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestPing_MissingValue(t *testing.T) {
	h, _ := newTestHandler(t, 2)

	rec := doRequest(h, "GET", "/ping", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if errResp.Code != CodeMissingValue {
		t.Errorf("error code = %q, want %q", errResp.Code, CodeMissingValue)
	}
}

func TestPing_MalformedValue(t *testing.T) {
	h, _ := newTestHandler(t, 2)

	for _, value := range []string{"abc", "1.5", "0x10", "1e3", "  7", "9223372036854775808"} {
		t.Run(value, func(t *testing.T) {
			rec := doRequest(h, "GET", "/ping", map[string]string{"value": value})

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (never 5xx)", rec.Code)
			}

			var errResp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if errResp.Code != CodeInvalidValue {
				t.Errorf("error code = %q, want %q", errResp.Code, CodeInvalidValue)
			}
		})
	}
}

func TestPing_MethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t, 2)

	rec := doRequest(h, "POST", "/ping", map[string]string{"value": "5"})
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestStatic_ServesExactBytes(t *testing.T) {
	h, _ := newTestHandler(t, 2)

	rec := doRequest(h, "GET", "/page/index.html", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "<h1>hello</h1>" {
		t.Errorf("body = %q, want exact file content", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct == "" {
		t.Error("Content-Type should be set for static files")
	}

	rec = doRequest(h, "GET", "/page/nested/notes.txt", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "climb on" {
		t.Errorf("nested file: status = %d, body = %q", rec.Code, rec.Body.String())
	}
}

func TestStatic_NotFound(t *testing.T) {
	h, _ := newTestHandler(t, 2)

	rec := doRequest(h, "GET", "/page/missing.html", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestStatic_DirectoryNotListed(t *testing.T) {
	h, _ := newTestHandler(t, 2)

	rec := doRequest(h, "GET", "/page/nested/", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("directory request: status = %d, want 404", rec.Code)
	}
}

func TestStatic_TraversalRejected(t *testing.T) {
	h, root := newTestHandler(t, 2)

	// A file one level above the static root that must stay unreachable.
	outside := filepath.Join(filepath.Dir(root), "secret-"+filepath.Base(root)+".txt")
	if err := os.WriteFile(outside, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}
	defer os.Remove(outside)

	paths := []string{
		"/page/../" + filepath.Base(outside),
		"/page/%2e%2e/" + filepath.Base(outside),
		"/page/nested/../../" + filepath.Base(outside),
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			req := httptest.NewRequest("GET", p, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code == http.StatusOK {
				t.Errorf("traversal path %q served with 200; body = %q", p, rec.Body.String())
			}
		})
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t, 2)

	rec := doRequest(h, "GET", "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("health body is not JSON: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Version == "" {
		t.Error("version should be reported")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t, 2)

	// Generate one ping so the counter is non-zero.
	doRequest(h, "GET", "/ping", map[string]string{"value": strconv.Itoa(1)})

	rec := doRequest(h, "GET", "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("metrics body should not be empty")
	}
}

func TestNew_NoStatic(t *testing.T) {
	h := New(Config{PingOffset: 2})

	rec := doRequest(h, "GET", "/page/index.html", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 without a static route", rec.Code)
	}
}
