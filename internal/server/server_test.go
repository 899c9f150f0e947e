package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tikzlayout/pkg/cache"
	"github.com/matzehuels/tikzlayout/pkg/io"
	"github.com/matzehuels/tikzlayout/pkg/observability"
	"github.com/matzehuels/tikzlayout/pkg/pipeline"
)

const testScene = `
[[shapes]]
id = "a"
kind = "square"
size = 1
style = "fill=red"

[[shapes]]
id = "b"
kind = "circle"
radius = 0.5

[[ops]]
op = "place"
target = "b"
ref = "a"
direction = "right"
align = "center"
spacing = 1
`

const jsonScene = `{"shapes": [{"id": "dot", "kind": "circle", "radius": 2}]}`

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	runner := pipeline.NewRunner(fc, nil, nil)
	t.Cleanup(func() { runner.Close() })
	return New(runner, opts, nil)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body %q is not JSON: %v", rec.Body.String(), err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := do(t, s, http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" {
		t.Errorf("Status = %q, want ok", resp.Status)
	}
	if resp.Version.Version == "" {
		t.Error("Version should not be empty")
	}
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("%s = %q, want a uuid", RequestIDHeader, rec.Header().Get(RequestIDHeader))
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	s := newTestServer(t, Options{})
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("%s = %q, want %q", RequestIDHeader, got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("invalid request ids should be replaced")
	}
}

func TestRenderTeX(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, http.MethodPost, "/render?format=tex", testScene)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/x-tex" {
		t.Errorf("Content-Type = %q, want application/x-tex", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{`\begin{tikzpicture}`, `\draw[fill=red] (0.000000, 0.000000)`, `circle (0.500000)`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	if got := rec.Header().Get(CacheHitHeader); got != cacheMissValue {
		t.Errorf("%s = %q, want %q", CacheHitHeader, got, cacheMissValue)
	}

	id := rec.Header().Get(RenderIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("%s = %q, want a uuid", RenderIDHeader, id)
	}
	if loc := rec.Header().Get("Location"); loc != "/renders/"+id {
		t.Errorf("Location = %q, want /renders/%s", loc, id)
	}

	again := do(t, s, http.MethodPost, "/render", testScene)
	if got := again.Header().Get(CacheHitHeader); got != cacheHitValue {
		t.Errorf("second render %s = %q, want %q", CacheHitHeader, got, cacheHitValue)
	}
	if again.Header().Get(RenderIDHeader) == id {
		t.Error("every render should get a fresh id")
	}

	stored := do(t, s, http.MethodGet, "/renders/"+id, "")
	if stored.Code != http.StatusOK {
		t.Fatalf("GET /renders/{id} status = %d, want 200", stored.Code)
	}
	if stored.Body.String() != body {
		t.Error("stored render differs from the original response")
	}
	if ct := stored.Header().Get("Content-Type"); ct != "application/x-tex" {
		t.Errorf("stored Content-Type = %q, want application/x-tex", ct)
	}
}

// recordingEngine stands in for pdflatex and writes the file-access
// settings it was started with into the pdf.
func recordingEngine(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script engine")
	}
	path := filepath.Join(t.TempDir(), "fakelatex")
	script := `#!/bin/sh
out=""
prev=""
for a in "$@"; do
	if [ "$prev" = "-output-directory" ]; then out="$a"; fi
	prev="$a"
done
printf 'openin=%s openout=%s args=%s' "$openin_any" "$openout_any" "$*" > "$out/figure.pdf"
`
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderPDFRestricted(t *testing.T) {
	s := newTestServer(t, Options{Engine: recordingEngine(t), BaseDir: t.TempDir()})
	hostile := `
[[shapes]]
id = "leak"
kind = "text"
text = '\input{/etc/passwd}'
style = '\immediate\write18{id}'
`
	rec := do(t, s, http.MethodPost, "/render?format=pdf", hostile)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	got := rec.Body.String()
	for _, want := range []string{"openin=p", "openout=p", "-no-shell-escape"} {
		if !strings.Contains(got, want) {
			t.Errorf("engine ran with %q, want %q", got, want)
		}
	}
}

func TestRenderJSONReport(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/render?format=json", strings.NewReader(jsonScene))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	report, err := io.ReadReport(rec.Body)
	if err != nil {
		t.Fatalf("ReadReport() error: %v", err)
	}
	if len(report.Leaves) != 1 {
		t.Fatalf("len(Leaves) = %d, want 1", len(report.Leaves))
	}
	if report.Leaves[0].ID != "dot" {
		t.Errorf("ID = %q, want dot", report.Leaves[0].ID)
	}
	want := io.Box{Left: -2, Top: 2, Right: 2, Bottom: -2}
	if report.BBox != want {
		t.Errorf("BBox = %+v, want %+v", report.BBox, want)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		method   string
		target   string
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "bad format",
			method:   http.MethodPost,
			target:   "/render?format=svg",
			body:     testScene,
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_FORMAT",
		},
		{
			name:     "empty body",
			method:   http.MethodPost,
			target:   "/render",
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_INPUT",
		},
		{
			name:     "unknown kind",
			method:   http.MethodPost,
			target:   "/render",
			body:     "[[shapes]]\nid = \"x\"\nkind = \"blob\"\n",
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_SCENE",
		},
		{
			name:     "path traversal",
			method:   http.MethodPost,
			target:   "/render",
			body:     "[[shapes]]\nid = \"img\"\nkind = \"image\"\npath = \"../secret.png\"\nwidth = 1\nheight = 1\n",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "body too large",
			opts:     Options{MaxBodyBytes: 16},
			method:   http.MethodPost,
			target:   "/render",
			body:     testScene,
			wantCode: http.StatusRequestEntityTooLarge,
			wantErr:  "INVALID_INPUT",
		},
		{
			name:     "missing engine",
			opts:     Options{Engine: "tikzlayout-no-such-engine"},
			method:   http.MethodPost,
			target:   "/render?format=pdf",
			body:     testScene,
			wantCode: http.StatusBadGateway,
			wantErr:  "RENDER_FAILED",
		},
		{
			name:     "invalid render id",
			method:   http.MethodGet,
			target:   "/renders/nope",
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_INPUT",
		},
		{
			name:     "unknown render id",
			method:   http.MethodGet,
			target:   "/renders/" + uuid.NewString(),
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
		{
			name:     "unknown route",
			method:   http.MethodGet,
			target:   "/nowhere",
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.opts)
			rec := do(t, s, tt.method, tt.target, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			resp := decodeError(t, rec)
			if tt.wantErr != "" && resp.Code != tt.wantErr {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantErr)
			}
			if resp.Error == "" {
				t.Error("error message should not be empty")
			}
			if resp.RequestID != rec.Header().Get(RequestIDHeader) {
				t.Errorf("request_id = %q, want %q", resp.RequestID, rec.Header().Get(RequestIDHeader))
			}
		})
	}
}

type recordingHooks struct {
	observability.NoopServerHooks
	mu        sync.Mutex
	requests  []string
	responses []string
}

func (h *recordingHooks) OnRequest(_ context.Context, method, route string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, method+" "+route)
}

func (h *recordingHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, method+" "+route+" "+http.StatusText(status))
}

func TestServerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetServerHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newTestServer(t, Options{})
	do(t, s, http.MethodPost, "/render", testScene)
	do(t, s, http.MethodGet, "/renders/"+uuid.NewString(), "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.requests) != 2 {
		t.Fatalf("requests = %v, want 2 entries", hooks.requests)
	}
	want := []string{"POST /render OK", "GET /renders/{id} Not Found"}
	for i, w := range want {
		if hooks.responses[i] != w {
			t.Errorf("responses[%d] = %q, want %q", i, hooks.responses[i], w)
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s := newTestServer(t, Options{Addr: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil && err != context.Canceled {
			t.Errorf("ListenAndServe() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe() did not return after cancel")
	}
}
