// Package config loads oxidekit-core's process configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all oxidekit-core configuration.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	HotReload  HotReloadConfig  `yaml:"hot_reload"`
	TextEdit   TextEditConfig   `yaml:"text_edit"`
	Devtools   DevtoolsConfig   `yaml:"devtools"`
	Attestation AttestationConfig `yaml:"attestation"`
}

// LoggingConfig controls the process-wide logger.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	JSONFormat bool   `yaml:"json_format"`
}

// HotReloadConfig configures the C6 WebSocket dev server.
type HotReloadConfig struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	MaxClients       int    `yaml:"max_clients"`
	PingIntervalSec  int    `yaml:"ping_interval_seconds"`
	BroadcastBuffer  int    `yaml:"broadcast_buffer"`
	ShutdownDeadline int    `yaml:"shutdown_deadline_seconds"`
	Verbose          bool   `yaml:"verbose"`
}

// TextEditConfig configures the C4 text-edit core.
type TextEditConfig struct {
	GroupingTimeoutMs int  `yaml:"grouping_timeout_ms"`
	MaxUndoHistory    int  `yaml:"max_undo_history"`
	BlinkEnabled      bool `yaml:"blink_enabled"`
	BlinkHalfPeriodMs int  `yaml:"blink_half_period_ms"`
}

// DevtoolsConfig configures the C5 patch pipeline.
type DevtoolsConfig struct {
	MaxPatchHistory int    `yaml:"max_patch_history"`
	BackupSuffix    string `yaml:"backup_suffix"`
}

// AttestationConfig configures the C7 binary scanner.
type AttestationConfig struct {
	MaxFileSizeBytes int64 `yaml:"max_file_size_bytes"`
	PrivacyThreshold uint8 `yaml:"privacy_threshold"`
}

// DefaultConfig returns the defaults spelled out in the component contracts.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		HotReload: HotReloadConfig{
			Host:             "127.0.0.1",
			Port:             7342,
			MaxClients:       64,
			PingIntervalSec:  30,
			BroadcastBuffer:  100,
			ShutdownDeadline: 5,
		},
		TextEdit: TextEditConfig{
			GroupingTimeoutMs: 500,
			MaxUndoHistory:    1000,
			BlinkEnabled:      true,
			BlinkHalfPeriodMs: 530,
		},
		Devtools: DevtoolsConfig{
			MaxPatchHistory: 100,
			BackupSuffix:    ".oxidebak",
		},
		Attestation: AttestationConfig{
			MaxFileSizeBytes: 500 * 1024 * 1024,
			PrivacyThreshold: 70,
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults for
// anything the file does not set and returning defaults outright if the
// file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating parent directories
// as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PingInterval returns the hot-reload ping interval as a Duration.
func (c *HotReloadConfig) PingInterval() time.Duration {
	return time.Duration(c.PingIntervalSec) * time.Second
}

// ShutdownTimeout returns the hot-reload graceful-stop deadline as a Duration.
func (c *HotReloadConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownDeadline) * time.Second
}

// GroupingTimeout returns the text-edit operation merge window as a Duration.
func (c *TextEditConfig) GroupingTimeout() time.Duration {
	return time.Duration(c.GroupingTimeoutMs) * time.Millisecond
}

// BlinkHalfPeriod returns the cursor-blink half period as a Duration.
func (c *TextEditConfig) BlinkHalfPeriod() time.Duration {
	return time.Duration(c.BlinkHalfPeriodMs) * time.Millisecond
}
