package waste

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"yashubustudio/wastesorter/vision"
)

const defaultConfigFile = "config.json"

// Config aggregates runtime settings persisted to config.json.
type Config struct {
	TopK           int           `json:"topK"`
	MaxLabels      int           `json:"maxLabels"`
	ScanIntervalMs int           `json:"scanIntervalMs"`
	RulesPath      string        `json:"rulesPath"`
	SnapshotPath   string        `json:"snapshotPath"`
	Model          vision.Config `json:"model"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.TopK <= 0 {
		c.TopK = MaxPredictions
	}
	if c.MaxLabels <= 0 || c.MaxLabels > MaxRawLabels {
		c.MaxLabels = MaxRawLabels
	}
	if c.ScanIntervalMs <= 0 {
		c.ScanIntervalMs = 1000
	}
	if c.Model.ModelPath == "" {
		c.Model.ModelPath = "./models/mobilenetv2/model.onnx"
	}
	if c.Model.LabelsPath == "" {
		c.Model.LabelsPath = "./models/mobilenetv2/labels.txt"
	}
	c.Model.ApplyDefaults()
}

// ScanInterval is the live capture cadence.
func (c Config) ScanInterval() time.Duration {
	return time.Duration(c.ScanIntervalMs) * time.Millisecond
}

// LoadConfig loads configuration from the given path or the default config.json.
// A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
