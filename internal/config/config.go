// Package config loads the tool configuration from layered JSON5 files.
//
// A config file is optional: defaults cover every setting. When a path is
// given, the file plus an optional <name>.local.<ext> sibling are merged
// over the defaults, the local file winning.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// Config holds every tunable of the tool.
type Config struct {
	// DataDir stores presets; supports a leading ~/
	DataDir string `json:"data_dir"`
	// DatasetPath is the default local dataset file
	DatasetPath string `json:"dataset_path"`

	UserAgent          string `json:"user_agent"`
	HTTPTimeoutSeconds int    `json:"http_timeout_seconds"`

	BoletinBaseURL string `json:"boletin_base_url"`
	BienesBaseURL  string `json:"bienes_base_url"`

	// Default fields searched by keyword criteria
	MatchFields []string `json:"match_fields"`
}

// HTTPTimeout returns the request timeout as a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:            "~/.local/share/rematierra",
		DatasetPath:        "data/remates.json",
		UserAgent:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		HTTPTimeoutSeconds: 30,
		BoletinBaseURL:     "https://boletinconcursal.cl",
		BienesBaseURL:      "https://licitaciones.bienes.cl",
		MatchFields:        []string{"descripcion", "tipo_bienes", "tipo_bien", "tipo_procedimiento"},
	}
}

// Load reads the config file at path (plus its .local sibling) and merges
// it over the defaults. An empty path or a missing file yields the
// defaults; a present-but-broken file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var fromFile Config
	found := false

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if len(data) > 0 {
		if err := json5.Unmarshal(data, &fromFile); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
		found = true
	}

	localData, err := os.ReadFile(localPath(path))
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading local config: %w", err)
	}
	if len(localData) > 0 {
		var local Config
		if err := json5.Unmarshal(localData, &local); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", localPath(path), err)
		}
		if err := mergo.Merge(&fromFile, local, mergo.WithOverride); err != nil {
			return cfg, fmt.Errorf("merging local config: %w", err)
		}
		found = true
	}

	if found {
		if err := mergo.Merge(&cfg, fromFile, mergo.WithOverride); err != nil {
			return cfg, fmt.Errorf("merging config: %w", err)
		}
	}

	return cfg, nil
}

// localPath turns config.json5 into config.local.json5.
func localPath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	return filepath.Join(dir, fmt.Sprintf("%s.local%s", name, ext))
}
