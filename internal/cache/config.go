package cache

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// configRelPath is the project-level config file under the root.
const configRelPath = ".code-index/config.json"

// Config is the optional per-project configuration. Ignore patterns append
// to the built-in list; path tiers prepend to the default tier table.
type Config struct {
	Ignore    []string           `json:"ignore"`
	PathTiers map[string]float64 `json:"pathTiers"`
}

// LoadConfig reads the project config. A missing file yields the zero
// Config; an unreadable or malformed file is logged and ignored so a bad
// config never blocks indexing.
func LoadConfig(root string) Config {
	var cfg Config
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(configRelPath)))
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		slog.Warn("ignoring malformed project config", "path", configRelPath, "err", err)
		return Config{}
	}
	return cfg
}
