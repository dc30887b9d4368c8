package journal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImportPhoto copies a local image into the journal's photo tree so the
// entry keeps pointing at a file the daemon owns even if the source is
// deleted. Files land under dir/<room>/<timestamp><ext> and the stored
// path is returned.
func ImportPhoto(dir, room, src string, now time.Time) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("journal photo: %w", err)
	}
	defer in.Close()

	if now.IsZero() {
		now = time.Now()
	}
	ext := strings.ToLower(filepath.Ext(src))
	if ext == "" {
		ext = ".jpg"
	}
	roomDir := filepath.Join(dir, room)
	if err := os.MkdirAll(roomDir, 0o755); err != nil {
		return "", fmt.Errorf("journal photo: %w", err)
	}
	dst := filepath.Join(roomDir, now.Format("20060102_150405")+ext)

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("journal photo: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("journal photo copy: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("journal photo: %w", err)
	}
	return dst, nil
}
