// Package audio validates local audio inputs before they are shipped to the
// transcription service.
package audio

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// allowedExtensions is the fixed allow-list the transcription vendor accepts.
var allowedExtensions = map[string]struct{}{
	".wav": {},
	".mp3": {},
	".m4a": {},
}

// Validate checks that path names an existing regular file with an allowed
// audio extension. It runs before any network call is attempted.
func Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("audio file not found: %s", path)
		}
		return fmt.Errorf("stat audio file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("unsupported audio format %q (want wav, mp3 or m4a)", ext)
	}
	return nil
}

// Fingerprint computes the SHA-256 checksum of the file at path, used as the
// transcript cache key so identical recordings are never uploaded twice.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
