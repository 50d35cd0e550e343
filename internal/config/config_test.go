package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigHasSaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ServerPath != "clangd" {
		t.Errorf("ServerPath = %q, want clangd", cfg.ServerPath)
	}
	if cfg.TimeoutSeconds != 30 || cfg.RequestTimeout != 30*time.Second {
		t.Errorf("timeout = %d/%v, want 30/30s", cfg.TimeoutSeconds, cfg.RequestTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadToleratesMissingConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPath != "clangd" {
		t.Errorf("ServerPath = %q, want clangd (defaults only)", cfg.ServerPath)
	}
	if cfg.ProjectRoot != dir {
		t.Errorf("ProjectRoot = %q, want %q", cfg.ProjectRoot, dir)
	}
}

func TestLoadMergesOnDiskOverridesOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, ".clangdmcp")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	onDisk := map[string]interface{}{
		"server_path":     "/usr/local/bin/clangd",
		"server_args":     []string{"--log=verbose"},
		"timeout_seconds": 60,
		"log_level":       "debug",
	}
	data, err := json.Marshal(onDisk)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPath != "/usr/local/bin/clangd" {
		t.Errorf("ServerPath = %q, want override", cfg.ServerPath)
	}
	if len(cfg.ServerArgs) != 1 || cfg.ServerArgs[0] != "--log=verbose" {
		t.Errorf("ServerArgs = %v, want [--log=verbose]", cfg.ServerArgs)
	}
	if cfg.TimeoutSeconds != 60 || cfg.RequestTimeout != 60*time.Second {
		t.Errorf("timeout = %d/%v, want 60/60s", cfg.TimeoutSeconds, cfg.RequestTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadToleratesEmptyConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, ".clangdmcp")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPath != "clangd" {
		t.Errorf("ServerPath = %q, want clangd (defaults preserved for empty file)", cfg.ServerPath)
	}
}
