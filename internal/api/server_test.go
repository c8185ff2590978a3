package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/curveplot/pkg/cache"
	"github.com/matzehuels/curveplot/pkg/observability"
	"github.com/matzehuels/curveplot/pkg/pipeline"
)

const lineScene = `
name: line
image:
  width: 40
  height: 20
  bounds: {x: {min: -1, max: 1}, y: {min: -1, max: 1}}
render:
  policy: skip
curves:
  - name: diagonal
    kind: function
    domain: {min: -1, max: 1}
    f: x
  - name: far
    kind: implicit
    left: x
    right: y
    bounds: {x: {min: 10, max: 11}, y: {min: 10, max: 11}}
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(fc, cache.NewScopedKeyer(nil, "api:"), log.New(io.Discard))
	srv := httptest.NewServer(New(runner, log.New(io.Discard)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request ID header")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
}

func TestRequestIDEcho(t *testing.T) {
	srv := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request ID = %q, want abc-123", got)
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/render", RenderRequest{
		Scene:   lineScene,
		Formats: []string{"png", "txt"},
	})
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, b)
	}

	var out RenderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "line" || out.Cached {
		t.Errorf("name, cached = %q, %v", out.Name, out.Cached)
	}
	if len(out.Drawn) != 1 || out.Drawn[0].Name != "diagonal" || out.Drawn[0].Painted == 0 {
		t.Errorf("drawn = %+v", out.Drawn)
	}
	if len(out.Skipped) != 1 || out.Skipped[0].Code != "GEOMETRY" {
		t.Errorf("skipped = %+v", out.Skipped)
	}
	img, err := png.Decode(bytes.NewReader(out.Artifacts["png"]))
	if err != nil {
		t.Fatalf("png artifact: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("png size = %dx%d, want 40x20", b.Dx(), b.Dy())
	}
	if len(out.Artifacts["txt"]) == 0 {
		t.Error("missing txt artifact")
	}
}

func TestRenderRaw(t *testing.T) {
	srv := newTestServer(t)
	scene := strings.Replace(lineScene, "policy: skip", "policy: fail-fast", 1)
	scene = scene[:strings.Index(scene, "  - name: far")]

	for _, want := range []string{"miss", "hit"} {
		resp := postJSON(t, srv.URL+"/render/png", RenderRequest{Scene: scene})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("Content-Type = %q, want image/png", ct)
		}
		if got := resp.Header.Get("X-Cache"); got != want {
			t.Errorf("X-Cache = %q, want %q", got, want)
		}
		if _, err := png.Decode(resp.Body); err != nil {
			t.Errorf("decode body: %v", err)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	srv := newTestServer(t)
	failFast := strings.Replace(lineScene, "policy: skip", "policy: fail-fast", 1)
	huge := strings.Replace(strings.Replace(lineScene, "width: 40", "width: 4294967296", 1), "height: 20", "height: 4294967296", 1)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"bad json", "/render", `{`, http.StatusBadRequest, ""},
		{"unknown field", "/render", `{"scene":"x","bogus":1}`, http.StatusBadRequest, ""},
		{"missing scene", "/render", `{}`, http.StatusBadRequest, ""},
		{"bad output format", "/render", `{"scene":"name: x","formats":["gif"]}`, http.StatusBadRequest, ""},
		{"bad scene", "/render", `{"scene":"curves: [1, 2"}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown raw format", "/render/gif", `{"scene":"x"}`, http.StatusNotFound, ""},
		{"geometry", "/render", mustJSON(t, RenderRequest{Scene: failFast}), http.StatusUnprocessableEntity, "GEOMETRY"},
		{"oversized canvas", "/render/png", mustJSON(t, RenderRequest{Scene: huge}), http.StatusBadRequest, "INVALID_CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+tt.path, "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				b, _ := io.ReadAll(resp.Body)
				t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, b)
			}
			var out ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Fatal(err)
			}
			if out.Code != tt.code {
				t.Errorf("code = %q, want %q", out.Code, tt.code)
			}
			if out.RequestID == "" {
				t.Error("missing request ID in error body")
			}
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	h := New(pipeline.NewRunner(nil, nil, log.New(io.Discard)), log.New(io.Discard)).Handler()
	body := mustJSON(t, RenderRequest{Scene: strings.Repeat("#", DefaultMaxBodyBytes+1)})
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	resp, err = http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.statuses) != 2 || hooks.statuses[0] != 200 || hooks.statuses[1] != 404 {
		t.Errorf("statuses = %v, want [200 404]", hooks.statuses)
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
