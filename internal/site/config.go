// Package site serves the conformance matrix: it loads the published result
// document, keeps it in memory, and exposes every derived view over HTTP.
package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string              `json:"listen_addr" yaml:"listen_addr"`
	Source     SourceConfig        `json:"source" yaml:"source"`
	Database   DatabaseConfig      `json:"database" yaml:"database"`
	Security   SecurityConfig      `json:"security" yaml:"security"`
	Observer   ObservabilityConfig `json:"observability" yaml:"observability"`
}

// SourceConfig points at the published result artifact. One immutable
// document per test run; the loader only ever reads it.
type SourceConfig struct {
	URL        string `json:"url" yaml:"url"`
	TimeoutSec int    `json:"timeout_sec" yaml:"timeout_sec"`
	MaxBytes   int64  `json:"max_bytes" yaml:"max_bytes"`
}

// DatabaseConfig enables the optional document archive when a DSN is set.
type DatabaseConfig struct {
	DSN      string `json:"dsn" yaml:"dsn"`
	MaxConns int32  `json:"max_conns" yaml:"max_conns"`
}

// SecurityConfig gates the admin endpoints (refresh, archive listing).
// AdminTokenBcrypt takes precedence over the plain token when both are set.
type SecurityConfig struct {
	AdminToken       string `json:"admin_token" yaml:"admin_token"`
	AdminTokenBcrypt string `json:"admin_token_bcrypt" yaml:"admin_token_bcrypt"`
}

type ObservabilityConfig struct {
	OTLPEndpoint string  `json:"otlp_endpoint" yaml:"otlp_endpoint"`
	ServiceName  string  `json:"service_name" yaml:"service_name"`
	SampleRatio  float64 `json:"sample_ratio" yaml:"sample_ratio"`
}

func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8080",
		Source: SourceConfig{
			TimeoutSec: 30,
			MaxBytes:   32 << 20,
		},
		Database: DatabaseConfig{
			MaxConns: 5,
		},
		Observer: ObservabilityConfig{
			ServiceName: "kernel-matrix",
			SampleRatio: 1,
		},
	}
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse json config: %w", err)
		}
	default:
		if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, errors.New("config format not recognized (expected yaml/json)")
			}
		}
	}
	normalizeConfig(&cfg)
	return cfg, nil
}

func normalizeConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.Source.TimeoutSec <= 0 {
		cfg.Source.TimeoutSec = 30
	}
	if cfg.Source.MaxBytes <= 0 {
		cfg.Source.MaxBytes = 32 << 20
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 5
	}
	if strings.TrimSpace(cfg.Observer.ServiceName) == "" {
		cfg.Observer.ServiceName = "kernel-matrix"
	}
	if cfg.Observer.SampleRatio <= 0 || cfg.Observer.SampleRatio > 1 {
		cfg.Observer.SampleRatio = 1
	}
}
