package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSetDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	if c.Transport != "stdio" {
		t.Fatalf("expected stdio transport, got %q", c.Transport)
	}
	if c.ASR.MaxRetries != 100 {
		t.Fatalf("expected 100 max retries, got %d", c.ASR.MaxRetries)
	}
	if c.ASR.PollInterval != 10*time.Second {
		t.Fatalf("expected 10s poll interval, got %s", c.ASR.PollInterval)
	}
	if !c.ToolEnabled("mindmap") {
		t.Fatalf("expected all tools enabled by default")
	}
}

func TestSetDefaultsKeepsExisting(t *testing.T) {
	c := Config{Port: 9090, ASR: ASRConfig{MaxRetries: 5}}
	c.SetDefaults()
	if c.Port != 9090 {
		t.Fatalf("port overwritten: %d", c.Port)
	}
	if c.ASR.MaxRetries != 5 {
		t.Fatalf("max retries overwritten: %d", c.ASR.MaxRetries)
	}
	if c.MetricsAddr != ":9090" {
		t.Fatalf("metrics addr should follow port, got %q", c.MetricsAddr)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ASR_APP_ID", "app42")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("TOOLS", "transcribe, summarize")
	t.Setenv("METRICS_PORT", "9100")
	var c Config
	c.SetDefaults()
	c.ApplyEnv()
	if c.ASR.AppID != "app42" {
		t.Fatalf("ASR_APP_ID not applied: %q", c.ASR.AppID)
	}
	if c.OutputDir != "/tmp/out" {
		t.Fatalf("OUTPUT_DIR not applied: %q", c.OutputDir)
	}
	if len(c.Tools) != 2 || c.Tools[1] != "summarize" {
		t.Fatalf("TOOLS not applied: %v", c.Tools)
	}
	if c.ToolEnabled("mindmap") {
		t.Fatalf("mindmap should be disabled by explicit tool list")
	}
	if c.MetricsAddr != ":9100" {
		t.Fatalf("METRICS_PORT not applied: %q", c.MetricsAddr)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "noteflow.yaml")
	data := []byte(`
log_level: debug
output_dir: /data/notes
asr:
  url: https://asr.example.com
  app_id: a1
  access_key_secret: s3cret
tool_options:
  mindmap:
    render_image: "true"
`)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var c Config
	if err := c.LoadFile(p); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.LogLevel != "debug" || c.ASR.URL != "https://asr.example.com" {
		t.Fatalf("unexpected config: %+v", c)
	}
	if !ToolOptionBool(c.ToolOptions, "mindmap", "render_image", false) {
		t.Fatalf("tool option not parsed")
	}
}

func TestToolOptionFallbacks(t *testing.T) {
	if got := ToolOption(nil, "x", "y", "def"); got != "def" {
		t.Fatalf("nil map: %q", got)
	}
	opts := map[string]map[string]string{"diagram": {"width": "1200", "bad": "zz"}}
	if got := ToolOptionInt(opts, "diagram", "width", 800); got != 1200 {
		t.Fatalf("width: %d", got)
	}
	if got := ToolOptionInt(opts, "diagram", "bad", 7); got != 7 {
		t.Fatalf("bad int should fall back: %d", got)
	}
	if got := ToolOptionBool(opts, "diagram", "missing", true); !got {
		t.Fatalf("missing bool should fall back")
	}
}
