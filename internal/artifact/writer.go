// Package artifact writes the Markdown and image files tools produce.
package artifact

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer places artifacts in a fixed output directory, creating it on first
// use. File names follow {date}_{prefix}_{base36 unix-millis}{suffix} so
// repeated runs of the same tool sort chronologically and never collide.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// WriteMarkdown stores content as a Markdown artifact and returns its path.
func (w *Writer) WriteMarkdown(prefix, content string) (string, error) {
	return w.write(prefix, ".md", []byte(content))
}

// WritePNG decodes the base64 payload the renderer returned and stores it as
// a PNG artifact, returning its path.
func (w *Writer) WritePNG(prefix, b64 string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}
	return w.write(prefix, ".png", data)
}

func (w *Writer) write(prefix, suffix string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	now := w.now()
	name := fmt.Sprintf("%s_%s_%s%s",
		now.Format("20060102"),
		prefix,
		strconv.FormatInt(now.UnixMilli(), 36),
		suffix,
	)
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}
