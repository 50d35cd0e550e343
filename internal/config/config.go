// Package config loads the JSON configuration that the lsp package's core
// treats purely as explicit parameters. The core never reads a file or
// flag itself; this package is the external collaborator the spec names
// but leaves undefined.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config is the on-disk project configuration for the bridge: which
// server to spawn, where the project root is, how long to wait on
// requests, and where to log.
type Config struct {
	ServerPath     string        `json:"server_path"`
	ServerArgs     []string      `json:"server_args,omitempty"`
	ProjectRoot    string        `json:"project_root"`
	RequestTimeout time.Duration `json:"-"`
	TimeoutSeconds int           `json:"timeout_seconds"`
	LogDir         string        `json:"log_dir"`
	LogLevel       string        `json:"log_level"`
}

// DefaultConfig returns a Config with sane defaults: clangd on PATH, a
// 30 second request timeout, and info-level logging.
func DefaultConfig() *Config {
	return &Config{
		ServerPath:     "clangd",
		ServerArgs:     []string{"--background-index"},
		TimeoutSeconds: 30,
		RequestTimeout: 30 * time.Second,
		LogLevel:       "info",
	}
}

// Load reads <projectRoot>/.clangdmcp/config.json, applying it on top of
// DefaultConfig. A missing file is not an error: the defaults alone are a
// valid configuration.
func Load(projectRoot string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.ProjectRoot = projectRoot

	path := filepath.Join(projectRoot, ".clangdmcp", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if len(data) == 0 {
		return cfg, nil
	}

	var onDisk Config
	if err := json.Unmarshal(data, &onDisk); err != nil {
		return cfg, err
	}
	mergeOnto(cfg, &onDisk)
	return cfg, nil
}

// mergeOnto copies every non-zero field of override onto cfg (a shallow
// merge of the on-disk file over the defaults).
func mergeOnto(cfg, override *Config) {
	if override.ServerPath != "" {
		cfg.ServerPath = override.ServerPath
	}
	if len(override.ServerArgs) > 0 {
		cfg.ServerArgs = override.ServerArgs
	}
	if override.ProjectRoot != "" {
		cfg.ProjectRoot = override.ProjectRoot
	}
	if override.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = override.TimeoutSeconds
		cfg.RequestTimeout = time.Duration(override.TimeoutSeconds) * time.Second
	}
	if override.LogDir != "" {
		cfg.LogDir = override.LogDir
	}
	if override.LogLevel != "" {
		cfg.LogLevel = override.LogLevel
	}
}
