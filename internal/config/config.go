// Package config loads snode's optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/HaPhanBaoMinh/snode/help"
)

const (
	BackendScontrol  = "scontrol"
	BackendSlurmrest = "slurmrestd"
	BackendMock      = "mock"
)

type Config struct {
	Backend   string    `yaml:"backend" validate:"oneof=scontrol slurmrestd mock"`
	Color     string    `yaml:"color" validate:"oneof=auto always never"`
	Log       Log       `yaml:"log"`
	Scontrol  Scontrol  `yaml:"scontrol"`
	Slurmrest Slurmrest `yaml:"slurmrest"`
	Jobs      Jobs      `yaml:"jobs"`
}

type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
	Output string `yaml:"output" validate:"oneof=stdout stderr file"`
	File   string `yaml:"file" validate:"required_if=Output file"`
}

type Scontrol struct {
	Path string `yaml:"path" validate:"required"`
}

type Slurmrest struct {
	URL        string        `yaml:"url" validate:"omitempty,url"`
	User       string        `yaml:"user"`
	Token      string        `yaml:"token"`
	APIVersion string        `yaml:"apiVersion" validate:"required,startswith=v"`
	Timeout    time.Duration `yaml:"timeout" validate:"gte=0s"`
}

type Jobs struct {
	// MaxWidth caps the JOBID column; 0 leaves it unbounded.
	MaxWidth int `yaml:"maxWidth" validate:"gte=0"`
}

func Default() *Config {
	return &Config{
		Backend: BackendScontrol,
		Color:   "auto",
		Log: Log{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
		Scontrol: Scontrol{Path: "scontrol"},
		Slurmrest: Slurmrest{
			APIVersion: "v0.0.40",
			Timeout:    10 * time.Second,
		},
	}
}

// DefaultPath is ~/.config/snode/config.yaml.
func DefaultPath() string {
	return filepath.Join(help.HomeDir(), ".config", "snode", "config.yaml")
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error when missingOK is set.
func Load(path string, missingOK bool) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if missingOK && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values and the settings the chosen backend needs.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Backend == BackendSlurmrest && c.Slurmrest.URL == "" {
		return fmt.Errorf("invalid config: backend %s needs slurmrest.url", BackendSlurmrest)
	}
	return nil
}
