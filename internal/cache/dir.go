package cache

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// cacheDirEnv overrides the platform cache directory when set.
const cacheDirEnv = "CODE_INDEX_CACHE_DIR"

// CacheDir resolves the directory holding persisted index documents:
// the CODE_INDEX_CACHE_DIR override, or the platform default.
func CacheDir() (string, error) {
	if dir := os.Getenv(cacheDirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "code-index"), nil
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "code-index", "Cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "code-index", "Cache"), nil
	default:
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "code-index"), nil
		}
		return filepath.Join(home, ".cache", "code-index"), nil
	}
}

// DocumentPath returns the persisted document path for a project root:
// one file per root, named by the first 16 hex digits of sha256(root).
func DocumentPath(cacheDir, root string) string {
	sum := sha256.Sum256([]byte(root))
	return filepath.Join(cacheDir, fmt.Sprintf("%x", sum[:8])+".json")
}
