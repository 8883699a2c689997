package render

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := New(srv.URL, "", time.Second).Healthy(context.Background()); err != nil {
		t.Fatalf("healthy: %v", err)
	}
}

func TestHealthyUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	if err := New(srv.URL, "", time.Second).Healthy(context.Background()); err == nil {
		t.Fatalf("expected error against closed server")
	}
}

func TestRenderDiagram(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/render" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req["kind"] != KindDiagram || req["code"] != "graph TD" {
			t.Errorf("unexpected request: %v", req)
		}
		if req["format"] != "png" || req["theme"] != "dark" {
			t.Errorf("format/theme not set: %v", req)
		}
		fmt.Fprint(w, `{"image":"cGln"}`)
	}))
	defer srv.Close()

	img, err := New(srv.URL, "dark", time.Second).RenderDiagram(context.Background(), "graph TD", Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if img != "cGln" {
		t.Fatalf("image = %q", img)
	}
}

func TestRenderMarkdownErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "render failed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := New(srv.URL, "", time.Second).RenderMarkdown(context.Background(), "# x", Options{}); err == nil {
		t.Fatalf("expected error on http 500")
	}
}

func TestRenderEmptyImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	if _, err := New(srv.URL, "", time.Second).RenderMarkdown(context.Background(), "# x", Options{}); err == nil {
		t.Fatalf("expected error on missing image payload")
	}
}
