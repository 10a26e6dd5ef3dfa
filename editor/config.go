package editor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/quill/buffer"
)

// Config configures an Editor.
type Config struct {
	// TabStop is the rendered width of a tab key.
	TabStop int `yaml:"tab_stop"`

	// Encoding selects the input decoder. See reader.Encodings.
	Encoding string `yaml:"encoding"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		TabStop:  buffer.DefaultTabStop,
		Encoding: "utf-8",
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their defaults; an unreadable file returns the defaults and the error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TabStop < 1 {
		cfg.TabStop = buffer.DefaultTabStop
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "utf-8"
	}
	return cfg, nil
}
