package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depgraph/pkg/errors"
	"github.com/matzehuels/depgraph/pkg/pipeline"
)

func setupTestRouter() http.Handler {
	logger := log.New(io.Discard)
	return NewRouter(NewHandlers(pipeline.NewRunner(nil, logger), logger))
}

func post(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v\n%s", err, w.Body.String())
	}
	return resp
}

func TestHandlers_Health(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
}

func TestHandlers_Traverse(t *testing.T) {
	router := setupTestRouter()

	w := post(t, router, "/v1/traverse", `{"text": "A: B C\nB: D\nC: D\nD:", "root": "A"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	resp := decodeResponse(t, w)
	if resp.ID == "" || w.Header().Get(HeaderAnalysisID) != resp.ID {
		t.Errorf("analysis id mismatch: body %q, header %q", resp.ID, w.Header().Get(HeaderAnalysisID))
	}
	if want := []string{"A", "B", "C", "D"}; !slices.Equal(resp.Visit, want) {
		t.Errorf("visit = %v, want %v", resp.Visit, want)
	}
	if len(resp.Edges) != 4 {
		t.Errorf("expected 4 edges, got %d", len(resp.Edges))
	}
	if resp.Mode != kindText {
		t.Errorf("mode = %q, want %q", resp.Mode, kindText)
	}
}

func TestHandlers_TraverseUnknownRoot(t *testing.T) {
	router := setupTestRouter()

	w := post(t, router, "/v1/traverse", `{"graph": {"A": ["B"]}, "root": "Z"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	resp := decodeResponse(t, w)
	if !slices.Equal(resp.Visit, []string{"Z"}) || len(resp.Edges) != 0 {
		t.Errorf("visit = %v edges = %v, want [Z] and none", resp.Visit, resp.Edges)
	}
	if len(resp.Notes) != 1 {
		t.Errorf("expected one note, got %v", resp.Notes)
	}
}

func TestHandlers_TextSkippedLines(t *testing.T) {
	router := setupTestRouter()

	w := post(t, router, "/v1/traverse", `{"text": "A: B\nthis line has no colon\nB:"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	resp := decodeResponse(t, w)
	if len(resp.Notes) != 1 {
		t.Errorf("expected one skipped-line note, got %v", resp.Notes)
	}
	if resp.Root != "A" {
		t.Errorf("default root = %q, want A", resp.Root)
	}
}

func TestHandlers_Order(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantOrder []string
		wantCycle []string
	}{
		{
			name:      "acyclic",
			body:      `{"nodes": [{"id": "A", "deps": ["B"]}, {"id": "B", "deps": ["C"]}, {"id": "C"}]}`,
			wantOrder: []string{"C", "B", "A"},
		},
		{
			name:      "cycle",
			body:      `{"text": "A: B\nB: C\nC: A"}`,
			wantOrder: []string{},
			wantCycle: []string{"A", "B", "C"},
		},
	}

	router := setupTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, router, "/v1/order", tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
			}
			resp := decodeResponse(t, w)
			if resp.LoadOrder == nil {
				t.Fatal("expected load_order in response")
			}
			if !slices.Equal(resp.LoadOrder.Order, tt.wantOrder) {
				t.Errorf("order = %v, want %v", resp.LoadOrder.Order, tt.wantOrder)
			}
			if resp.LoadOrder.HasCycle != (tt.wantCycle != nil) {
				t.Errorf("has_cycle = %v", resp.LoadOrder.HasCycle)
			}
			if tt.wantCycle != nil && !slices.Equal(resp.LoadOrder.CycleNodes, tt.wantCycle) {
				t.Errorf("cycle_nodes = %v, want %v", resp.LoadOrder.CycleNodes, tt.wantCycle)
			}
		})
	}
}

func TestHandlers_Export(t *testing.T) {
	router := setupTestRouter()

	w := post(t, router, "/v1/export", `{"text": "A: B\nB:\nX: Y", "root": "A"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if got := decodeResponse(t, w).D2; got != "A -> B" {
		t.Errorf("d2 = %q, want %q", got, "A -> B")
	}

	w = post(t, router, "/v1/export", `{"text": "A: B\nB:\nX: Y", "all": true}`)
	if got := decodeResponse(t, w).D2; got != "A -> B\nX -> Y" {
		t.Errorf("d2 (all) = %q, want %q", got, "A -> B\nX -> Y")
	}
}

func TestHandlers_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode errors.Code
	}{
		{"invalid json", `{"text": `, errors.ErrCodeInvalidInput},
		{"unknown field", `{"graf": {}}`, errors.ErrCodeInvalidInput},
		{"no graph", `{"root": "A"}`, errors.ErrCodeInvalidInput},
		{"two graphs", `{"text": "A:", "graph": {"A": []}}`, errors.ErrCodeInvalidInput},
		{"bad name", `{"graph": {"A B": []}}`, errors.ErrCodeMalformedSource},
		{"bad dep", `{"graph": {"A": ["->"]}}`, errors.ErrCodeMalformedSource},
		{"duplicate node", `{"nodes": [{"id": "A"}, {"id": "A"}]}`, errors.ErrCodeMalformedSource},
		{"bad root", `{"graph": {"A": []}, "root": "a b"}`, errors.ErrCodeInvalidPackage},
	}

	router := setupTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, router, "/v1/traverse", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal error: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Code, tt.wantCode)
			}
			if resp.ID == "" || resp.Message == "" {
				t.Errorf("incomplete error response: %+v", resp)
			}
		})
	}
}

func TestHandlers_MethodNotAllowed(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/order", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeMalformedSource, http.StatusBadRequest},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeNetwork, http.StatusBadGateway},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := New(ln.Addr().String(), setupTestRouter(), log.New(io.Discard))

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := <-done; err != nil {
		t.Errorf("Serve returned %v after shutdown", err)
	}
}

func TestNew_DefaultAddr(t *testing.T) {
	if got := New("", http.NotFoundHandler(), nil).Addr(); got != DefaultAddr {
		t.Errorf("Addr() = %q, want %q", got, DefaultAddr)
	}
}
