package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/noteflow/noteflow/internal/artifact"
	"github.com/noteflow/noteflow/internal/metrics"
	"github.com/noteflow/noteflow/internal/tools"
)

func testHandler(t *testing.T, origins []string) http.Handler {
	t.Helper()
	d := tools.Deps{Writer: artifact.NewWriter(t.TempDir())}
	s := NewMCP(d, func(string) bool { return true }, "test")
	return NewHTTPHandler(s, origins)
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(testHandler(t, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("healthz: %d %q", resp.StatusCode, body)
	}
}

func TestMetricsExposed(t *testing.T) {
	metrics.RecordPoll()
	srv := httptest.NewServer(testHandler(t, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status: %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "noteflow_asr_polls_total") {
		t.Fatalf("plugin metrics missing from exposition")
	}
}

func TestMCPInitialize(t *testing.T) {
	srv := httptest.NewServer(testHandler(t, []string{"*"}))
	defer srv.Close()

	reqBody := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"1.0"}}`
	resp, err := http.Post(srv.URL+"/mcp", "application/json", strings.NewReader(reqBody))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("initialize status %d", resp.StatusCode)
	}
	var js map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&js); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if js["result"] == nil {
		t.Fatalf("missing result")
	}
}
