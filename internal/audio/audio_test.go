package audio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestValidateAllowedExtensions(t *testing.T) {
	for _, name := range []string{"a.wav", "b.mp3", "c.m4a", "d.MP3"} {
		p := writeFile(t, name, []byte("audio"))
		if err := Validate(p); err != nil {
			t.Fatalf("Validate(%s): %v", name, err)
		}
	}
}

func TestValidateRejectsUnknownExtension(t *testing.T) {
	p := writeFile(t, "notes.ogg", []byte("audio"))
	err := Validate(p)
	if err == nil {
		t.Fatalf("expected error for .ogg")
	}
	if !strings.Contains(err.Error(), "unsupported audio format") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsMissingFile(t *testing.T) {
	if err := Validate(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidateRejectsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "d.wav")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := Validate(dir); err == nil {
		t.Fatalf("expected error for directory")
	}
}

func TestFingerprint(t *testing.T) {
	p := writeFile(t, "x.wav", []byte("hello world"))
	sum, err := Fingerprint(p)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	const want = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if sum != want {
		t.Fatalf("unexpected checksum: got %s want %s", sum, want)
	}
}
