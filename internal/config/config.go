package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ToolOverride replaces the default flag list for one external tool.
// The target file path is always appended after the args.
type ToolOverride struct {
	Args []string `yaml:"args"`
}

type FormatGate struct {
	DisabledExtensions []string                `yaml:"disabledExtensions,omitempty"`
	Tools              map[string]ToolOverride `yaml:"tools,omitempty"`
}

type Notify struct {
	Title   string `yaml:"title,omitempty"`
	Message string `yaml:"message,omitempty"`
}

type Config struct {
	Version    int        `yaml:"version"`
	FormatGate FormatGate `yaml:"formatGate,omitempty"`
	Notify     Notify     `yaml:"notify,omitempty"`
}

// Default returns the configuration used when no config file is found.
func Default() *Config {
	return &Config{Version: 1}
}

// ExtensionDisabled reports whether format-gate is switched off for ext
// (without the leading dot).
func (c *Config) ExtensionDisabled(ext string) bool {
	for _, e := range c.FormatGate.DisabledExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ToolArgs returns the flag list for tool, either the configured override or
// the given defaults.
func (c *Config) ToolArgs(tool string, defaults []string) []string {
	if o, ok := c.FormatGate.Tools[tool]; ok && len(o.Args) > 0 {
		return o.Args
	}
	return defaults
}

// FindConfigPath searches upward from the current working directory for a
// configuration file and returns the file path and the directory containing
// it. It looks for ".hooks/config.yaml" first and then "hooks/config.yaml"
// in each directory.
func FindConfigPath() (configPath, workDir string, err error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	startDir := dir
	for {
		p := filepath.Join(dir, ".hooks", "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p, dir, nil
		}
		p = filepath.Join(dir, "hooks", "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p, dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", fmt.Errorf("no .hooks/config.yaml or hooks/config.yaml found (searched up from %s)", startDir)
		}
		dir = parent
	}
}

// Load reads a YAML configuration file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save marshals cfg to YAML and writes it to the given path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadOrDefault loads the nearest config file, falling back to defaults when
// none exists or it cannot be parsed. Hooks never fail because of a missing
// or broken config.
func LoadOrDefault() *Config {
	path, _, err := FindConfigPath()
	if err != nil {
		return Default()
	}
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}
