package notify

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed assets/icon.png
var iconPNG []byte

// DefaultIcon writes the bundled icon to the user cache directory, once,
// and returns its path. Notification tools only accept icons by path.
func DefaultIcon() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache directory: %w", err)
	}
	return writeIcon(filepath.Join(dir, "standupclock"))
}

func writeIcon(dir string) (string, error) {
	path := filepath.Join(dir, "icon.png")
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, iconPNG) {
		return path, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := os.WriteFile(path, iconPNG, 0o644); err != nil {
		return "", fmt.Errorf("writing icon: %w", err)
	}
	return path, nil
}
